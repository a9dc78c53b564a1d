package handler

import (
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/ridgelinepark/backend/api/transport"
	"github.com/ridgelinepark/backend/domain"
	"github.com/ridgelinepark/backend/pkg/httpcontext"
	catalogUC "github.com/ridgelinepark/backend/usecase/catalog"
)

type ActivityHandler struct {
	baseHandler
	uc *catalogUC.UseCase
}

func NewActivityHandler(uc *catalogUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *ActivityHandler {
	return &ActivityHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary List published activities
// @Tags activities
// @Router /api/v1/activities [get]
func (h *ActivityHandler) List(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	activities, err := h.uc.ListActivities(stdCtx)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, activities)
}

// @Summary Get an activity by id or slug
// @Tags activities
// @Router /api/v1/activities/{id} [get]
func (h *ActivityHandler) Get(ctx *fasthttp.RequestCtx) {
	id, _ := ctx.UserValue("id").(string)
	if id == "" {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "missing activity id", nil))
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	activity, err := h.uc.GetActivity(stdCtx, id)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, activity)
}
