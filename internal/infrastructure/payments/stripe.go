package payments

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/client"
	"github.com/stripe/stripe-go/v79/webhook"
	"go.uber.org/zap"

	"github.com/ridgelinepark/backend/domain"
	bookingUC "github.com/ridgelinepark/backend/usecase/booking"
)

// Config carries the Stripe credentials and redirect URLs.
type Config struct {
	APIKey        string
	WebhookSecret string
	SuccessURL    string
	CancelURL     string
	Currency      string
}

// Client wraps the Stripe SDK behind an explicit handle. The underlying
// SDK client is built once per process; callers share the same instance.
type Client struct {
	api    *client.API
	cfg    Config
	logger *zap.Logger
}

var (
	initOnce sync.Once
	shared   *Client
)

// NewClient returns the process-wide payment client, constructing it on
// the first call. Later calls ignore their arguments and return the same
// handle.
func NewClient(cfg Config, logger *zap.Logger) *Client {
	initOnce.Do(func() {
		if logger == nil {
			logger = zap.NewNop()
		}
		if cfg.Currency == "" {
			cfg.Currency = "usd"
		}
		api := &client.API{}
		api.Init(cfg.APIKey, nil)
		shared = &Client{
			api:    api,
			cfg:    cfg,
			logger: logger,
		}
	})
	return shared
}

// CreateCheckoutSession opens a hosted checkout for the booking's amount
// due. The booking id travels in session metadata so the webhook can find
// it back.
func (c *Client) CreateCheckoutSession(ctx context.Context, bk *domain.Booking, activityName string) (*bookingUC.CheckoutSession, error) {
	params := &stripe.CheckoutSessionParams{
		Mode:          stripe.String(string(stripe.CheckoutSessionModePayment)),
		CustomerEmail: stripe.String(bk.CustomerEmail),
		SuccessURL:    stripe.String(c.cfg.SuccessURL),
		CancelURL:     stripe.String(c.cfg.CancelURL),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Quantity: stripe.Int64(1),
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(c.cfg.Currency),
					UnitAmount: stripe.Int64(bk.AmountDue()),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(activityName),
					},
				},
			},
		},
	}
	params.Context = ctx
	params.AddMetadata("booking_id", bk.ID)

	sess, err := c.api.CheckoutSessions.New(params)
	if err != nil {
		return nil, err
	}
	return &bookingUC.CheckoutSession{
		ID:  sess.ID,
		URL: sess.URL,
	}, nil
}

// WebhookEvent is the subset of a Stripe event the booking flow consumes.
type WebhookEvent struct {
	Type      string
	SessionID string
}

// ParseWebhook verifies the payload signature and extracts the checkout
// session reference. An invalid signature is an error; an event type we
// do not handle still parses.
func (c *Client) ParseWebhook(payload []byte, signature string) (*WebhookEvent, error) {
	event, err := webhook.ConstructEvent(payload, signature, c.cfg.WebhookSecret)
	if err != nil {
		return nil, err
	}

	parsed := &WebhookEvent{Type: string(event.Type)}
	switch event.Type {
	case "checkout.session.completed", "checkout.session.expired":
		var sess stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
			return nil, err
		}
		parsed.SessionID = sess.ID
	}
	return parsed, nil
}

var _ bookingUC.PaymentProvider = (*Client)(nil)
