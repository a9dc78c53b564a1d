package buffer

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Item is a promo redemption waiting to be written to Postgres. Items are
// enqueued when the primary store rejects the write and drained in
// timestamp order once it is reachable again.
type Item struct {
	ID        string          `json:"id"`
	BookingID string          `json:"booking_id"`
	Data      json.RawMessage `json:"data"`
	Retries   int             `json:"retries"`
	Timestamp time.Time       `json:"timestamp"`

	bucketKey []byte
}

func (i *Item) normalize() {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	if i.Timestamp.IsZero() {
		i.Timestamp = time.Now()
	}
}
