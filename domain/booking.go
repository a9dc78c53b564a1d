package domain

import "time"

// Booking statuses. A booking starts pending and moves exactly once to
// confirmed, cancelled or expired.
const (
	BookingPending   = "pending"
	BookingConfirmed = "confirmed"
	BookingCancelled = "cancelled"
	BookingExpired   = "expired"
)

// Booking represents a paid (or to-be-paid) reservation for an activity.
// Amounts are integer minor units (cents).
type Booking struct {
	ID              string            `json:"id"`
	ActivityID      string            `json:"activity_id"`
	CustomerName    string            `json:"customer_name"`
	CustomerEmail   string            `json:"customer_email"`
	BookingDate     time.Time         `json:"booking_date"`
	PartySize       int               `json:"party_size"`
	TotalAmount     int64             `json:"total_amount"`
	DiscountAmount  int64             `json:"discount_amount"`
	PromoCodeID     string            `json:"promo_code_id,omitempty"`
	Status          string            `json:"status"`
	StripeSessionID string            `json:"stripe_session_id,omitempty"`
	Metadata        map[string]string `json:"metadata,omitempty"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
}

// AmountDue is the total after the discount, never negative.
func (b *Booking) AmountDue() int64 {
	if b == nil {
		return 0
	}
	due := b.TotalAmount - b.DiscountAmount
	if due < 0 {
		return 0
	}
	return due
}

func (b *Booking) IsPending() bool {
	return b != nil && b.Status == BookingPending
}

// DashboardSummary aggregates the admin dashboard counters. Each field is
// the result of an independent read query.
type DashboardSummary struct {
	TotalBookings     int       `json:"total_bookings"`
	PendingBookings   int       `json:"pending_bookings"`
	ConfirmedBookings int       `json:"confirmed_bookings"`
	CancelledBookings int       `json:"cancelled_bookings"`
	Revenue           int64     `json:"revenue"`
	UpcomingBookings  int       `json:"upcoming_bookings"`
	ActivePromoCodes  int       `json:"active_promo_codes"`
	AdminAccounts     int       `json:"admin_accounts"`
	GeneratedAt       time.Time `json:"generated_at"`
}
