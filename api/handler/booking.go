package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/ridgelinepark/backend/api/transport"
	"github.com/ridgelinepark/backend/domain"
	"github.com/ridgelinepark/backend/pkg/httpcontext"
	"github.com/ridgelinepark/backend/repository"
	bookingUC "github.com/ridgelinepark/backend/usecase/booking"
)

type BookingHandler struct {
	baseHandler
	uc *bookingUC.UseCase
}

func NewBookingHandler(uc *bookingUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary Create a booking and open checkout
// @Tags bookings
// @Router /api/v1/bookings [post]
func (h *BookingHandler) Create(ctx *fasthttp.RequestCtx) {
	var req transport.BookingCreateRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "invalid payload", nil))
		return
	}

	bookingDate, err := time.Parse("2006-01-02", req.BookingDate)
	if err != nil {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "booking_date must be YYYY-MM-DD", nil))
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	result, err := h.uc.Create(stdCtx, bookingUC.CreateInput{
		ActivityID:    req.ActivityID,
		BookingDate:   bookingDate,
		PartySize:     req.PartySize,
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		PromoCode:     req.PromoCode,
	})
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, result)
}

// @Summary List bookings
// @Tags admin
// @Router /api/v1/admin/bookings [get]
func (h *BookingHandler) List(ctx *fasthttp.RequestCtx) {
	filter := repository.BookingFilter{
		Status: string(ctx.QueryArgs().Peek("status")),
		Limit:  parseInt(string(ctx.QueryArgs().Peek("limit")), 50),
		Offset: parseInt(string(ctx.QueryArgs().Peek("offset")), 0),
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	bookings, err := h.uc.List(stdCtx, filter)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, bookings)
}

// @Summary Get a booking
// @Tags admin
// @Router /api/v1/admin/bookings/{id} [get]
func (h *BookingHandler) Get(ctx *fasthttp.RequestCtx) {
	id, _ := ctx.UserValue("id").(string)
	if id == "" {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "missing booking id", nil))
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	booking, err := h.uc.Get(stdCtx, id)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, booking)
}

// @Summary Update booking status
// @Tags admin
// @Router /api/v1/admin/bookings/{id} [patch]
func (h *BookingHandler) UpdateStatus(ctx *fasthttp.RequestCtx) {
	id, _ := ctx.UserValue("id").(string)
	if id == "" {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "missing booking id", nil))
		return
	}

	var req transport.BookingStatusRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil || req.Status == "" {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "invalid payload", nil))
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.uc.SetStatus(stdCtx, id, req.Status); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, nil)
}
