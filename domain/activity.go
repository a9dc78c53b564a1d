package domain

import "time"

// Activity is a bookable park experience (zipline, climbing wall, trail
// tour). Price is integer minor units per participant.
type Activity struct {
	ID          string    `json:"id"`
	Slug        string    `json:"slug"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Price       int64     `json:"price"`
	DurationMin int       `json:"duration_minutes"`
	Capacity    int       `json:"capacity"`
	ImageURL    string    `json:"image_url,omitempty"`
	IsPublished bool      `json:"is_published"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// FitsParty reports whether the requested party size is bookable.
func (a *Activity) FitsParty(size int) bool {
	return a != nil && size > 0 && size <= a.Capacity
}
