package entity

import (
	"gorm.io/gorm"
)

// Combo is a fixed-price bundle sold as a single line item.
type Combo struct {
	gorm.Model
	Name      string `json:"name"`
	Detail    string `json:"detail"`
	BasePrice int64  `json:"basePrice"`
	Picture   string `json:"picture"`

	BranchID uint   `gorm:"index" json:"branchId"`
	Branch   Branch `json:"-"`

	OrderItems []OrderItem `json:"-"`
}
