package router

import (
	"stayledger/internal/handlers/admin"
	"stayledger/internal/handlers/affiliate"
	"stayledger/internal/handlers/auth"
	"stayledger/internal/handlers/booking"
	"stayledger/internal/handlers/coupon"
	"stayledger/internal/handlers/product"
	"stayledger/internal/handlers/user"
	"stayledger/internal/handlers/withdrawal"

	"github.com/go-chi/chi/v5"
)

type DomainHandlers struct {
	Auth       auth.Handler
	User       user.Handler
	Product    product.Handler
	Booking    booking.Handler
	Affiliate  affiliate.Handler
	Withdrawal withdrawal.Handler
	Admin      admin.Handler
	Coupon     coupon.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/v1", func(routerGroup chi.Router) {
		r.DomainHandlers.Auth.Router(routerGroup)
		r.DomainHandlers.User.Router(routerGroup)
		r.DomainHandlers.Product.Router(routerGroup)
		r.DomainHandlers.Booking.Router(routerGroup)
		r.DomainHandlers.Affiliate.Router(routerGroup)
		r.DomainHandlers.Withdrawal.Router(routerGroup)
		r.DomainHandlers.Admin.Router(routerGroup)
		r.DomainHandlers.Coupon.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers) Router {
	return Router{
		DomainHandlers: domainHandlers,
	}
}
