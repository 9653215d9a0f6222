package entity

import (
	"gorm.io/gorm"
)

type Order struct {
	gorm.Model
	Status        OrderStatus `gorm:"size:30;index" json:"status"`
	SubTotal      int64       `json:"subTotal"`      // sum of item totals before discounts
	DiscountTotal int64       `json:"discountTotal"` // sum of item discount amounts
	Total         int64       `json:"total"`         // always sum of item final prices
	VoucherCode   string      `gorm:"size:50" json:"voucherCode,omitempty"`
	CustomerName  string      `json:"customerName,omitempty"`
	CustomerPhone string      `json:"customerPhone,omitempty"`

	BranchID uint   `gorm:"index" json:"branchId"`
	Branch   Branch `json:"-"`

	// nil for delivery orders
	TableID *uint  `gorm:"index" json:"tableId,omitempty"`
	Table   *Table `json:"-"`

	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"`
}
