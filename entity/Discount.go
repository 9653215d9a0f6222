package entity

import (
	"time"

	"gorm.io/gorm"
)

// Discount stores an absolute replacement price for one dish or one combo,
// not a percentage. A row with a Code is a customer-entered voucher; one
// without is a branch discount applied automatically inside its window.
type Discount struct {
	gorm.Model
	Code     *string        `gorm:"size:50;uniqueIndex" json:"code,omitempty"`
	Detail   string         `json:"detail"`
	NewPrice int64          `json:"newPrice"`
	StartAt  *time.Time     `json:"startAt,omitempty"`
	EndAt    *time.Time     `json:"endAt,omitempty"`
	Status   DiscountStatus `gorm:"size:20;index" json:"status"`

	// targets exactly one of dish / combo
	DishID  *uint  `gorm:"index" json:"dishId,omitempty"`
	Dish    *Dish  `json:"-"`
	ComboID *uint  `gorm:"index" json:"comboId,omitempty"`
	Combo   *Combo `json:"-"`

	BranchID uint   `gorm:"index" json:"branchId"`
	Branch   Branch `json:"-"`
}
