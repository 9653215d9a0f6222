package entity

import (
	"gorm.io/gorm"
)

type Dish struct {
	gorm.Model
	Name      string `json:"name"`
	Detail    string `json:"detail"`
	BasePrice int64  `json:"basePrice"`
	Picture   string `json:"picture"`

	BranchID uint   `gorm:"index" json:"branchId"`
	Branch   Branch `json:"-"`

	OrderItems []OrderItem `json:"-"`
}
