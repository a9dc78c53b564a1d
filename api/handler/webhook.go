package handler

import (
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/ridgelinepark/backend/api/transport"
	"github.com/ridgelinepark/backend/domain"
	"github.com/ridgelinepark/backend/internal/infrastructure/payments"
	"github.com/ridgelinepark/backend/pkg/httpcontext"
	bookingUC "github.com/ridgelinepark/backend/usecase/booking"
)

type WebhookHandler struct {
	baseHandler
	payments *payments.Client
	bookings *bookingUC.UseCase
}

func NewWebhookHandler(paymentsClient *payments.Client, bookings *bookingUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *WebhookHandler {
	return &WebhookHandler{
		baseHandler: newBaseHandler(adapter, logger),
		payments:    paymentsClient,
		bookings:    bookings,
	}
}

// Stripe receives checkout lifecycle events. Signature verification is
// mandatory; unhandled event types are acknowledged so Stripe stops
// retrying them.
//
// @Summary Stripe webhook
// @Tags webhooks
// @Router /api/v1/webhooks/stripe [post]
func (h *WebhookHandler) Stripe(ctx *fasthttp.RequestCtx) {
	signature := string(ctx.Request.Header.Peek("Stripe-Signature"))
	event, err := h.payments.ParseWebhook(ctx.PostBody(), signature)
	if err != nil {
		h.logger.Warn("webhook signature verification failed", zap.Error(err))
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "invalid webhook payload", nil))
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	switch event.Type {
	case "checkout.session.completed":
		err = h.bookings.ConfirmCheckout(stdCtx, event.SessionID)
	case "checkout.session.expired":
		err = h.bookings.CancelCheckout(stdCtx, event.SessionID)
	default:
		h.respondSuccess(ctx, http.StatusOK, nil)
		return
	}

	if err != nil {
		if domain.IsDomainError(err, domain.ErrCodeNotFound) {
			// session from another environment; acknowledge and move on
			h.logger.Warn("webhook for unknown checkout session", zap.String("session_id", event.SessionID))
			h.respondSuccess(ctx, http.StatusOK, nil)
			return
		}
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, nil)
}
