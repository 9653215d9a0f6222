package entity

import (
	"gorm.io/gorm"
)

type Table struct {
	gorm.Model
	Number      int         `json:"number"`
	Status      TableStatus `gorm:"size:20;index" json:"status"`
	CapacityMin int         `json:"capacityMin"`
	CapacityMax int         `json:"capacityMax"`
	Area        string      `json:"area"`
	VIP         bool        `json:"vip"`

	// id of the order currently seated here; the claim/release guard
	// compares against this column, never read-then-write
	CurrentOrderID *uint `json:"currentOrderId,omitempty"`

	BranchID uint   `gorm:"index" json:"branchId"`
	Branch   Branch `json:"-"`
}
