package handler

import (
	"encoding/json"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/ridgelinepark/backend/api/transport"
	"github.com/ridgelinepark/backend/domain"
	"github.com/ridgelinepark/backend/internal/middleware"
	"github.com/ridgelinepark/backend/pkg/httpcontext"
	directoryUC "github.com/ridgelinepark/backend/usecase/directory"
)

// AdminHandler manages admin accounts. All routes sit behind the
// superadmin gate.
type AdminHandler struct {
	baseHandler
	uc *directoryUC.UseCase
}

func NewAdminHandler(uc *directoryUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary List admin accounts
// @Tags admin
// @Router /api/v1/admin/admins [get]
func (h *AdminHandler) List(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	admins, err := h.uc.List(stdCtx)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, admins)
}

// @Summary Create admin account
// @Tags admin
// @Router /api/v1/admin/admins [post]
func (h *AdminHandler) Create(ctx *fasthttp.RequestCtx) {
	var req transport.AdminCreateRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "invalid payload", nil))
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	created, err := h.uc.Create(stdCtx, req.Email, req.Password, domain.Role(req.Role))
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, created)
}

// @Summary Update admin role or active flag
// @Tags admin
// @Router /api/v1/admin/admins/{id} [put]
func (h *AdminHandler) Update(ctx *fasthttp.RequestCtx) {
	id, _ := ctx.UserValue("id").(string)
	if id == "" {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "missing admin id", nil))
		return
	}

	var req transport.AdminUpdateRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "invalid payload", nil))
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	updated, err := h.uc.Update(stdCtx, middleware.IdentityFromRequest(ctx), id, domain.Role(req.Role), req.IsActive)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, updated)
}

// @Summary Delete admin account
// @Tags admin
// @Router /api/v1/admin/admins/{id} [delete]
func (h *AdminHandler) Delete(ctx *fasthttp.RequestCtx) {
	id, _ := ctx.UserValue("id").(string)
	if id == "" {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "missing admin id", nil))
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.uc.Delete(stdCtx, middleware.IdentityFromRequest(ctx), id); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusNoContent, nil)
}
