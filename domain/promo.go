package domain

import "time"

// DiscountType selects how a promo code reduces an order total.
type DiscountType string

const (
	DiscountPercentage DiscountType = "percentage"
	DiscountFixed      DiscountType = "fixed"
)

// PromoCode is a redeemable discount code. Codes are stored uppercase and
// matched case-insensitively by uppercasing the input before lookup.
// Monetary fields are integer minor units (cents).
type PromoCode struct {
	ID             string       `json:"id"`
	Code           string       `json:"code"`
	Description    string       `json:"description,omitempty"`
	DiscountType   DiscountType `json:"discount_type"`
	DiscountValue  float64      `json:"discount_value"`
	IsActive       bool         `json:"is_active"`
	ValidFrom      *time.Time   `json:"valid_from,omitempty"`
	ValidUntil     *time.Time   `json:"valid_until,omitempty"`
	MaxUses        *int         `json:"max_uses,omitempty"`
	CurrentUses    int          `json:"current_uses"`
	MinOrderAmount *int64       `json:"min_order_amount,omitempty"`
	StripeCouponID string       `json:"stripe_coupon_id,omitempty"`
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`
}

// PromoSummary is the redacted view returned to callers after a
// successful evaluation. Usage counters and windows stay internal.
type PromoSummary struct {
	ID             string       `json:"id"`
	Code           string       `json:"code"`
	Description    string       `json:"description,omitempty"`
	DiscountType   DiscountType `json:"discount_type"`
	DiscountValue  float64      `json:"discount_value"`
	StripeCouponID string       `json:"stripe_coupon_id,omitempty"`
}

// Summary redacts the promo code for external consumption.
func (p *PromoCode) Summary() PromoSummary {
	return PromoSummary{
		ID:             p.ID,
		Code:           p.Code,
		Description:    p.Description,
		DiscountType:   p.DiscountType,
		DiscountValue:  p.DiscountValue,
		StripeCouponID: p.StripeCouponID,
	}
}

// ExhaustedAt reports whether the usage cap is reached for the given
// usage count. A nil cap means unlimited.
func (p *PromoCode) Exhausted() bool {
	return p != nil && p.MaxUses != nil && p.CurrentUses >= *p.MaxUses
}

// PromoRedemption records one confirmed use of a promo code.
type PromoRedemption struct {
	ID         string    `json:"id"`
	PromoID    string    `json:"promo_id"`
	BookingID  string    `json:"booking_id"`
	Amount     int64     `json:"amount"`
	RedeemedAt time.Time `json:"redeemed_at"`
}
