package router

import (
	"fieldbook/internal/handlers/booking"
	"fieldbook/internal/handlers/field"
	"fieldbook/internal/handlers/health"
	"fieldbook/internal/handlers/payment"
	"fieldbook/internal/handlers/report"
	"fieldbook/internal/handlers/session"
	"fieldbook/internal/handlers/tag"
	"fieldbook/transport/http/middleware"

	"github.com/go-chi/chi/v5"
)

type DomainHandlers struct {
	Health  health.Handler
	Field   field.Handler
	Booking booking.Handler
	Payment payment.Handler
	Session session.Handler
	Report  report.Handler
	Tag     tag.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
	AuthMiddleware middleware.AuthRole
	AppMiddleware  middleware.AppMiddleware
}

// SetupRoutes mounts all domain routers under /v1. The health check and the
// tag verification endpoint are public; everything else goes through the
// auth and RBAC middleware per the embedded permission table.
func (r *Router) SetupRoutes(router chi.Router) {
	router.Use(r.AppMiddleware.Tracing)
	router.Use(r.AppMiddleware.RateLimit())

	router.Route("/v1", func(routerGroup chi.Router) {
		r.DomainHandlers.Health.Router(routerGroup)
		r.DomainHandlers.Tag.PublicRouter(routerGroup)

		routerGroup.Group(func(authed chi.Router) {
			authed.Use(r.AuthMiddleware.APIKey)
			authed.Use(r.AuthMiddleware.Auth)
			authed.Use(r.AuthMiddleware.RBAC)

			r.DomainHandlers.Field.Router(authed)
			r.DomainHandlers.Booking.Router(authed)
			r.DomainHandlers.Payment.Router(authed)
			r.DomainHandlers.Session.Router(authed)
			r.DomainHandlers.Report.Router(authed)
			r.DomainHandlers.Tag.Router(authed)
		})
	})
}

func New(domainHandlers DomainHandlers, authMiddleware middleware.AuthRole, appMiddleware middleware.AppMiddleware) Router {
	return Router{
		DomainHandlers: domainHandlers,
		AuthMiddleware: authMiddleware,
		AppMiddleware:  appMiddleware,
	}
}
