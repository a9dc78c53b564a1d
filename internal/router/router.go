package router

import (
	"github.com/fasthttp/router"

	apiHandler "github.com/ridgelinepark/backend/api/handler"
	"github.com/ridgelinepark/backend/internal/middleware"
)

type Handlers struct {
	Auth      *apiHandler.AuthHandler
	Activity  *apiHandler.ActivityHandler
	Booking   *apiHandler.BookingHandler
	Promo     *apiHandler.PromoHandler
	Dashboard *apiHandler.DashboardHandler
	Admin     *apiHandler.AdminHandler
	Webhook   *apiHandler.WebhookHandler
	Health    *apiHandler.HealthHandler
}

func New(handlers Handlers, gate *middleware.AdminGate) *router.Router {
	r := router.New()

	r.GET("/health", handlers.Health.Check)

	// Public surface
	r.GET("/api/v1/activities", handlers.Activity.List)
	r.GET("/api/v1/activities/{id}", handlers.Activity.Get)
	r.POST("/api/v1/promo/validate", handlers.Promo.Validate)
	r.POST("/api/v1/bookings", handlers.Booking.Create)
	r.POST("/api/v1/webhooks/stripe", handlers.Webhook.Stripe)

	// Auth
	r.POST("/api/v1/auth/login", handlers.Auth.Login)
	r.POST("/api/v1/auth/logout", gate.RequireAdmin(handlers.Auth.Logout))

	// Admin console
	r.GET("/api/v1/admin/dashboard", gate.RequireAdmin(handlers.Dashboard.Summary))
	r.GET("/api/v1/admin/bookings", gate.RequireAdmin(handlers.Booking.List))
	r.GET("/api/v1/admin/bookings/{id}", gate.RequireAdmin(handlers.Booking.Get))
	r.PATCH("/api/v1/admin/bookings/{id}", gate.RequireAdmin(handlers.Booking.UpdateStatus))
	r.GET("/api/v1/admin/promo-codes", gate.RequireAdmin(handlers.Promo.List))
	r.POST("/api/v1/admin/promo-codes", gate.RequireAdmin(handlers.Promo.Create))
	r.PUT("/api/v1/admin/promo-codes/{id}", gate.RequireAdmin(handlers.Promo.Update))
	r.DELETE("/api/v1/admin/promo-codes/{id}", gate.RequireAdmin(handlers.Promo.Delete))

	// Superadmin only
	r.GET("/api/v1/admin/admins", gate.RequireSuperAdmin(handlers.Admin.List))
	r.POST("/api/v1/admin/admins", gate.RequireSuperAdmin(handlers.Admin.Create))
	r.PUT("/api/v1/admin/admins/{id}", gate.RequireSuperAdmin(handlers.Admin.Update))
	r.DELETE("/api/v1/admin/admins/{id}", gate.RequireSuperAdmin(handlers.Admin.Delete))

	return r
}
