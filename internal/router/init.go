package router

import (
	"github.com/realtora/realtor-api/internal/application"
	"github.com/realtora/realtor-api/internal/container"
	pginfra "github.com/realtora/realtor-api/internal/infrastructure/postgres"
	handlers "github.com/realtora/realtor-api/internal/interface/http"
	"github.com/realtora/realtor-api/internal/router/modules"
	"github.com/realtora/realtor-api/pkg/helpers"
)

func buildAuthHandler() *handlers.AuthHandler {
	cfg := container.GetConfig()
	users := pginfra.NewUserRepository(container.GetPGPool())

	service := application.NewAuthService(
		users,
		container.GetJWT(),
		container.GetRedis(),
		container.GetLogger(),
		cfg.ProductKeySecret,
	)
	cookies := helpers.NewCookie(cfg.CookieDomain, cfg.CookieSecure)

	return handlers.NewAuthHandler(service, cookies, container.GetLogger())
}

func buildHomeHandler() *handlers.HomeHandler {
	cfg := container.GetConfig()
	homes := pginfra.NewHomeRepository(container.GetPGPool())
	messages := pginfra.NewMessageRepository(container.GetPGPool())
	users := pginfra.NewUserRepository(container.GetPGPool())
	guard := application.NewOwnershipGuard(homes)

	homeSvc := application.NewHomeService(
		homes,
		guard,
		container.GetRedis(),
		container.GetLogger(),
		container.GetES(),
		cfg.ESHomesIndex,
	)
	inquirySvc := application.NewInquiryService(
		homes,
		messages,
		users,
		guard,
		container.GetRabbitPub(),
		container.GetLogger(),
		cfg.MailSendEnabled,
	)

	return handlers.NewHomeHandler(homeSvc, inquirySvc, container.GetGCS(), cfg.GCSBucket, container.GetLogger())
}

// InitModules initializes all application modules and registers them with the router registry
// This function should be called once during application startup to wire up all modules
func InitModules(r *Registry) {
	jwt := container.GetJWT()

	r.Add(modules.NewAuthModule(buildAuthHandler(), jwt))
	r.Add(modules.NewHomeModule(buildHomeHandler(), jwt))

	if cfg := container.GetConfig(); cfg == nil || cfg.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule())
	}
}
