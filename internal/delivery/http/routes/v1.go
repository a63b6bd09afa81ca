package routes

import (
	"github.com/gofiber/fiber/v3"

	"github.com/rocker1166/skilllink/internal/delivery/http/handler"
	"github.com/rocker1166/skilllink/internal/delivery/http/middleware"
	"github.com/rocker1166/skilllink/internal/infrastructure/persistence/postgres"
	"github.com/rocker1166/skilllink/internal/pkg/jwt"
	"github.com/rocker1166/skilllink/internal/pkg/magiclink"
	ucauth "github.com/rocker1166/skilllink/internal/usecase/auth"
	bookinguc "github.com/rocker1166/skilllink/internal/usecase/booking"
	notificationuc "github.com/rocker1166/skilllink/internal/usecase/notification"
	paymentuc "github.com/rocker1166/skilllink/internal/usecase/payment"
	"github.com/rocker1166/skilllink/internal/usecase/profile"
	reviewuc "github.com/rocker1166/skilllink/internal/usecase/review"
	"github.com/rocker1166/skilllink/internal/ws"
)

// RegisterV1 wires the v1 API: repositories over the shared pool, usecases
// over the repositories, handlers over the usecases.
func RegisterV1(r fiber.Router, deps Deps) {
	if r == nil {
		return
	}

	cfg := deps.Config

	jwtSvc := jwt.NewHMACService(
		cfg.JWT.AccessSecret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessExpiresIn,
		cfg.JWT.RefreshExpiresIn,
	)
	authMw := middleware.NewAuthMiddleware(jwtSvc)

	userRepo := postgres.NewUserRepository(deps.DB)
	reviewRepo := postgres.NewReviewRepository(deps.DB)
	bookingRepo := postgres.NewBookingRepository(deps.DB)
	notificationRepo := postgres.NewNotificationRepository(deps.DB)
	sessionRepo := postgres.NewSessionRepository(deps.DB)

	links := magiclink.NewService(deps.Cache)
	notifier := ws.NewNotifier(deps.Hub)

	authUC := ucauth.NewService(
		userRepo, sessionRepo, links, deps.Mail, jwtSvc,
		cfg.JWT.RefreshExpiresIn, cfg.App.BaseURL, deps.Logger,
	)
	profileUC := profile.NewService(userRepo, reviewRepo, deps.Cache, deps.Logger)
	reviewUC := reviewuc.NewService(reviewRepo, userRepo, profileUC)
	orchestrator := bookinguc.NewOrchestrator(bookingRepo, notificationRepo, notifier, deps.Logger, cfg.App.RequestTimeout)
	finalizer := paymentuc.NewFinalizer(bookingRepo, deps.Logger, cfg.App.RequestTimeout)
	notificationUC := notificationuc.NewService(notificationRepo)

	authHandler := handler.NewAuthHandler(authUC)
	providerHandler := handler.NewProviderHandler(profileUC, reviewUC)
	bookingHandler := handler.NewBookingHandler(orchestrator, finalizer)
	reviewHandler := handler.NewReviewHandler(reviewUC)
	notificationHandler := handler.NewNotificationHandler(notificationUC)
	wsHandler := ws.NewHandler(deps.Hub, deps.Logger)

	authHandler.RegisterRoutes(r.Group("/auth"))

	// Provider pages are readable anonymously; a valid token upgrades the
	// response with viewer-scoped fields.
	providerHandler.RegisterRoutes(r.Group("/providers", authMw.OptionalMiddleware()))

	protected := r.Group("", authMw.Middleware())
	bookingHandler.RegisterRoutes(protected.Group("/bookings"))
	reviewHandler.RegisterRoutes(protected.Group("/reviews"))
	notificationHandler.RegisterRoutes(protected.Group("/notifications"))
	protected.Get("/ws/notifications", wsHandler.HandleNotificationsWS)
}
