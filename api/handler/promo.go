package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/ridgelinepark/backend/api/transport"
	"github.com/ridgelinepark/backend/domain"
	"github.com/ridgelinepark/backend/pkg/httpcontext"
	"github.com/ridgelinepark/backend/repository"
	promoUC "github.com/ridgelinepark/backend/usecase/promo"
)

type PromoHandler struct {
	baseHandler
	evaluator *promoUC.Evaluator
	manager   *promoUC.Manager
}

func NewPromoHandler(evaluator *promoUC.Evaluator, manager *promoUC.Manager, adapter *httpcontext.Adapter, logger *zap.Logger) *PromoHandler {
	return &PromoHandler{
		baseHandler: newBaseHandler(adapter, logger),
		evaluator:   evaluator,
		manager:     manager,
	}
}

// Validate is the public promo check. Its wire shape is fixed: a missing
// code is the only non-200 business response (400); every other business
// outcome, valid or not, is a 200.
//
// @Summary Validate a promo code against an order total
// @Tags promo
// @Router /api/v1/promo/validate [post]
func (h *PromoHandler) Validate(ctx *fasthttp.RequestCtx) {
	var req transport.PromoValidateRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		respondRaw(ctx, http.StatusBadRequest, transport.ErrorBody{Error: "invalid payload"})
		return
	}
	code := strings.TrimSpace(req.Code)
	if code == "" {
		respondRaw(ctx, http.StatusBadRequest, transport.ErrorBody{Error: promoUC.MsgCodeRequired})
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	evaluation, err := h.evaluator.Evaluate(stdCtx, code, req.OrderTotal)
	if err != nil {
		h.logger.Error("promo evaluation failed", zap.Error(err))
		respondRaw(ctx, http.StatusInternalServerError, transport.ErrorBody{Error: "Internal server error"})
		return
	}
	respondRaw(ctx, http.StatusOK, evaluation)
}

// @Summary List promo codes
// @Tags admin
// @Router /api/v1/admin/promo-codes [get]
func (h *PromoHandler) List(ctx *fasthttp.RequestCtx) {
	filter := repository.PromoFilter{
		ActiveOnly: string(ctx.QueryArgs().Peek("active")) == "true",
		Limit:      parseInt(string(ctx.QueryArgs().Peek("limit")), 50),
		Offset:     parseInt(string(ctx.QueryArgs().Peek("offset")), 0),
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	promos, err := h.manager.List(stdCtx, filter)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, promos)
}

// @Summary Create promo code
// @Tags admin
// @Router /api/v1/admin/promo-codes [post]
func (h *PromoHandler) Create(ctx *fasthttp.RequestCtx) {
	promo, ok := h.parsePromo(ctx)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	created, err := h.manager.Create(stdCtx, promo)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, created)
}

// @Summary Update promo code
// @Tags admin
// @Router /api/v1/admin/promo-codes/{id} [put]
func (h *PromoHandler) Update(ctx *fasthttp.RequestCtx) {
	promo, ok := h.parsePromo(ctx)
	if !ok {
		return
	}
	promo.ID, _ = ctx.UserValue("id").(string)

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.manager.Update(stdCtx, promo); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, promo)
}

// @Summary Delete promo code
// @Tags admin
// @Router /api/v1/admin/promo-codes/{id} [delete]
func (h *PromoHandler) Delete(ctx *fasthttp.RequestCtx) {
	id, _ := ctx.UserValue("id").(string)
	if id == "" {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "missing promo code id", nil))
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.manager.Delete(stdCtx, id); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusNoContent, nil)
}

func (h *PromoHandler) parsePromo(ctx *fasthttp.RequestCtx) (*domain.PromoCode, bool) {
	var req transport.PromoUpsertRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "invalid payload", nil))
		return nil, false
	}
	return &domain.PromoCode{
		Code:           req.Code,
		Description:    req.Description,
		DiscountType:   domain.DiscountType(req.DiscountType),
		DiscountValue:  req.DiscountValue,
		IsActive:       req.IsActive,
		ValidFrom:      req.ValidFrom,
		ValidUntil:     req.ValidUntil,
		MaxUses:        req.MaxUses,
		MinOrderAmount: req.MinOrderAmount,
		StripeCouponID: req.StripeCouponID,
	}, true
}

func parseInt(value string, fallback int) int {
	if v, err := strconv.Atoi(value); err == nil {
		return v
	}
	return fallback
}
