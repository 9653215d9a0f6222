package entity

type DiscountStatus string

const (
	DiscountActive   DiscountStatus = "ACTIVE"
	DiscountExpiring DiscountStatus = "EXPIRING"
	DiscountExpired  DiscountStatus = "EXPIRED"
)

// Redeemable reports whether a discount in this status may still be
// applied; one nearing expiry still counts.
func (s DiscountStatus) Redeemable() bool {
	return s == DiscountActive || s == DiscountExpiring
}
