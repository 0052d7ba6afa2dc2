//go:build wireinject
// +build wireinject

package di

import (
	"fieldbook/config"
	"fieldbook/infras/jwt"
	"fieldbook/infras/kafka"
	"fieldbook/infras/otel"
	"fieldbook/infras/postgres"
	"fieldbook/infras/redis"
	"fieldbook/infras/s3"
	"fieldbook/internal/notifications"
	"fieldbook/permissions"
	"fieldbook/shared/cache"
	"fieldbook/transport/http"
	"fieldbook/transport/http/middleware"
	"fieldbook/transport/http/router"

	bookingRepository "fieldbook/internal/domains/booking/repository"
	bookingService "fieldbook/internal/domains/booking/service"
	fieldRepository "fieldbook/internal/domains/field/repository"
	fieldService "fieldbook/internal/domains/field/service"
	paymentRepository "fieldbook/internal/domains/payment/repository"
	paymentService "fieldbook/internal/domains/payment/service"
	reportRepository "fieldbook/internal/domains/report/repository"
	reportService "fieldbook/internal/domains/report/service"
	sessionRepository "fieldbook/internal/domains/session/repository"
	sessionService "fieldbook/internal/domains/session/service"
	tagRepository "fieldbook/internal/domains/tag/repository"
	tagService "fieldbook/internal/domains/tag/service"
	userRepository "fieldbook/internal/domains/user/repository"

	bookingHandler "fieldbook/internal/handlers/booking"
	fieldHandler "fieldbook/internal/handlers/field"
	healthHandler "fieldbook/internal/handlers/health"
	paymentHandler "fieldbook/internal/handlers/payment"
	reportHandler "fieldbook/internal/handlers/report"
	sessionHandler "fieldbook/internal/handlers/session"
	tagHandler "fieldbook/internal/handlers/tag"

	"github.com/google/wire"
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
	s3.New,
	kafka.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
	notifications.New,
)

var fieldDomain = wire.NewSet(
	fieldRepository.New,
	fieldService.New,
)

var bookingDomain = wire.NewSet(
	userRepository.New,
	bookingRepository.New,
	bookingService.New,
)

var paymentDomain = wire.NewSet(
	paymentRepository.New,
	paymentService.New,
)

var huntDomain = wire.NewSet(
	sessionRepository.New,
	sessionService.New,
	reportRepository.New,
	reportService.New,
	tagRepository.New,
	tagService.New,
)

var domains = wire.NewSet(
	fieldDomain,
	bookingDomain,
	paymentDomain,
	huntDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	healthHandler.New,
	fieldHandler.New,
	bookingHandler.New,
	paymentHandler.New,
	sessionHandler.New,
	reportHandler.New,
	tagHandler.New,
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
