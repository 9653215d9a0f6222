package services

import (
	"time"

	"github.com/khoalevan2535/Goldenbamboo-sub001/entity"
)

// PriceQuote is the resolved price of one line item. Total keeps the
// pre-discount amount so clients can render strikethrough pricing next to
// the final price.
type PriceQuote struct {
	BasePrice      int64 `json:"basePrice"`      // per unit, the immutable reference value
	UnitPrice      int64 `json:"unitPrice"`      // per unit after discount
	Total          int64 `json:"total"`          // base price x qty
	DiscountAmount int64 `json:"discountAmount"` // total - final
	FinalPrice     int64 `json:"finalPrice"`     // unit price x qty
	DiscountID     *uint `json:"discountId,omitempty"`
}

// PricingService resolves the effective price of a dish or combo against its
// attached discount at a point in time. Pure computation, no storage access;
// callers snapshot the result onto the order item at add-time, so later
// discount edits never reach already-added items.
type PricingService struct{}

func NewPricingService() *PricingService {
	return &PricingService{}
}

// Resolve prices one line. dishID/comboID identify the item so a discount
// targeting something else is ignored. The discount model stores an absolute
// replacement price (NewPrice), not a percentage.
func (s *PricingService) Resolve(basePrice int64, qty int, dishID, comboID *uint, d *entity.Discount, now time.Time) PriceQuote {
	q := PriceQuote{
		BasePrice:  basePrice,
		UnitPrice:  basePrice,
		Total:      basePrice * int64(qty),
		FinalPrice: basePrice * int64(qty),
	}

	if !s.applies(d, dishID, comboID, now) {
		return q
	}

	// clamp to [0, basePrice]: a misconfigured discount must never raise
	// the price, and a negative NewPrice must never push the line below zero
	perUnit := basePrice - d.NewPrice
	if perUnit < 0 {
		perUnit = 0
	}
	if perUnit > basePrice {
		perUnit = basePrice
	}

	q.UnitPrice = basePrice - perUnit
	q.DiscountAmount = perUnit * int64(qty)
	q.FinalPrice = q.Total - q.DiscountAmount
	q.DiscountID = &d.ID
	return q
}

func (s *PricingService) applies(d *entity.Discount, dishID, comboID *uint, now time.Time) bool {
	if d == nil || !d.Status.Redeemable() {
		return false
	}
	if d.StartAt != nil && now.Before(*d.StartAt) {
		return false
	}
	if d.EndAt != nil && now.After(*d.EndAt) {
		return false
	}
	// a discount targets exactly one dish or combo; anything else is a no-op
	switch {
	case d.DishID != nil:
		return dishID != nil && *dishID == *d.DishID
	case d.ComboID != nil:
		return comboID != nil && *comboID == *d.ComboID
	}
	return false
}
