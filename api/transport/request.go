package transport

import "time"

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// PromoValidateRequest mirrors the public validation contract: an order
// total in minor units and the code as typed by the customer.
type PromoValidateRequest struct {
	Code       string `json:"code"`
	OrderTotal int64  `json:"orderTotal"`
}

type BookingCreateRequest struct {
	ActivityID    string `json:"activity_id"`
	BookingDate   string `json:"booking_date"`
	PartySize     int    `json:"party_size"`
	CustomerName  string `json:"customer_name"`
	CustomerEmail string `json:"customer_email"`
	PromoCode     string `json:"promo_code,omitempty"`
}

type BookingStatusRequest struct {
	Status string `json:"status"`
}

type PromoUpsertRequest struct {
	Code           string     `json:"code"`
	Description    string     `json:"description"`
	DiscountType   string     `json:"discount_type"`
	DiscountValue  float64    `json:"discount_value"`
	IsActive       bool       `json:"is_active"`
	ValidFrom      *time.Time `json:"valid_from,omitempty"`
	ValidUntil     *time.Time `json:"valid_until,omitempty"`
	MaxUses        *int       `json:"max_uses,omitempty"`
	MinOrderAmount *int64     `json:"min_order_amount,omitempty"`
	StripeCouponID string     `json:"stripe_coupon_id,omitempty"`
}

type AdminCreateRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type AdminUpdateRequest struct {
	Role     string `json:"role"`
	IsActive bool   `json:"is_active"`
}
