package entity

import (
	"time"

	"gorm.io/gorm"
)

type OrderItem struct {
	gorm.Model
	Qty            int             `json:"qty"`
	UnitPrice      int64           `json:"unitPrice"` // base price snapshot at add-time, immutable
	Total          int64           `json:"total"`     // unit price x qty, before discount
	DiscountAmount int64           `json:"discountAmount"`
	FinalPrice     int64           `json:"finalPrice"` // total - discount, never below zero
	Status         OrderItemStatus `gorm:"size:20;index" json:"status"`
	Note           string          `json:"note,omitempty"`
	CompletedAt    *time.Time      `json:"completedAt,omitempty"`

	OrderID uint  `gorm:"index" json:"orderId"`
	Order   Order `json:"-"`

	// exactly one of dish / combo
	DishID  *uint  `gorm:"index" json:"dishId,omitempty"`
	Dish    *Dish  `json:"-"`
	ComboID *uint  `gorm:"index" json:"comboId,omitempty"`
	Combo   *Combo `json:"-"`

	DiscountID *uint     `json:"discountId,omitempty"`
	Discount   *Discount `json:"-"`
}
