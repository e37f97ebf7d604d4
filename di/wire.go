//go:build wireinject
// +build wireinject

package di

import (
	"stayledger/config"
	"stayledger/infras/jwt"
	"stayledger/infras/kafka"
	"stayledger/infras/metrics"
	"stayledger/infras/otel"
	"stayledger/infras/postgres"
	"stayledger/infras/promptpay"
	"stayledger/infras/redis"
	"stayledger/infras/s3"
	"stayledger/permissions"
	"stayledger/shared/cache"
	gRepo "stayledger/shared/repository"
	"stayledger/transport/http"
	"stayledger/transport/http/middleware"
	"stayledger/transport/http/router"
	"stayledger/transport/worker"

	"github.com/google/wire"

	affiliateRepository "stayledger/internal/domains/affiliate/repository"
	affiliateService "stayledger/internal/domains/affiliate/service"
	authService "stayledger/internal/domains/auth/service"
	bookingRepository "stayledger/internal/domains/booking/repository"
	bookingService "stayledger/internal/domains/booking/service"
	couponRepository "stayledger/internal/domains/coupon/repository"
	couponService "stayledger/internal/domains/coupon/service"
	dashboardRepository "stayledger/internal/domains/dashboard/repository"
	dashboardService "stayledger/internal/domains/dashboard/service"
	ledgerRepository "stayledger/internal/domains/ledger/repository"
	ledgerService "stayledger/internal/domains/ledger/service"
	productRepository "stayledger/internal/domains/product/repository"
	productService "stayledger/internal/domains/product/service"
	userRepository "stayledger/internal/domains/user/repository"
	userService "stayledger/internal/domains/user/service"
	withdrawalRepository "stayledger/internal/domains/withdrawal/repository"
	withdrawalService "stayledger/internal/domains/withdrawal/service"

	adminHandler "stayledger/internal/handlers/admin"
	affiliateHandler "stayledger/internal/handlers/affiliate"
	authHandler "stayledger/internal/handlers/auth"
	bookingHandler "stayledger/internal/handlers/booking"
	couponHandler "stayledger/internal/handlers/coupon"
	productHandler "stayledger/internal/handlers/product"
	userHandler "stayledger/internal/handlers/user"
	withdrawalHandler "stayledger/internal/handlers/withdrawal"
)

var configurations = wire.NewSet(
	config.Get,
	permissions.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	jwt.New,
	kafka.New,
	s3.New,
	promptpay.New,
	metrics.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
	gRepo.NewTransactor,
)

var ledgerDomain = wire.NewSet(
	ledgerRepository.New,
	ledgerService.New,
)

var productDomain = wire.NewSet(
	productRepository.New,
	productService.New,
	wire.Bind(new(productService.Catalog), new(productService.Product)),
)

var couponDomain = wire.NewSet(
	couponRepository.New,
	couponService.New,
	wire.Bind(new(couponService.Redeemer), new(couponService.Coupon)),
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	bookingRepository.NewItem,
	bookingService.New,
)

var affiliateDomain = wire.NewSet(
	affiliateRepository.New,
	affiliateService.New,
)

var withdrawalDomain = wire.NewSet(
	withdrawalRepository.New,
	withdrawalService.New,
)

var dashboardDomain = wire.NewSet(
	dashboardRepository.New,
	dashboardService.New,
)

var userDomain = wire.NewSet(
	userRepository.New,
	userService.New,
	authService.New,
)

var domains = wire.NewSet(
	ledgerDomain,
	productDomain,
	couponDomain,
	bookingDomain,
	affiliateDomain,
	withdrawalDomain,
	dashboardDomain,
	userDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	userHandler.New,
	productHandler.New,
	bookingHandler.New,
	affiliateHandler.New,
	withdrawalHandler.New,
	adminHandler.New,
	couponHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}
}

func InitializeWorker() *worker.Worker {
	wire.Build(
		config.Get,
		postgres.New,
		otel.New,
		s3.New,
		metrics.New,
		ledgerDomain,
		worker.New,
	)

	return &worker.Worker{}
}
