package routes

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/likelemba/likelemba/internal/auth"
	"github.com/likelemba/likelemba/internal/config"
	"github.com/likelemba/likelemba/internal/contribution"
	"github.com/likelemba/likelemba/internal/identity"
	"github.com/likelemba/likelemba/internal/membership"
	"github.com/likelemba/likelemba/internal/middleware"
	"github.com/likelemba/likelemba/internal/notification"
	"github.com/likelemba/likelemba/internal/payout"
	"github.com/likelemba/likelemba/internal/stats"
	"github.com/likelemba/likelemba/internal/tontine"
)

// Deps aggregates shared dependencies required to wire routes.
type Deps struct {
	Cfg    config.Config
	DB     *pgxpool.Pool
	Cache  *redis.Client
	Logger *slog.Logger
}

// Setup configures middlewares and all application routes.
func Setup(app *fiber.App, d Deps) error {
	// Enforce DB/Redis presence outside of dev, even though main also checks.
	if !isDev(d.Cfg.AppEnv) {
		if d.DB == nil {
			return fmt.Errorf("database is required when APP_ENV=%s", d.Cfg.AppEnv)
		}
		if d.Cache == nil {
			return fmt.Errorf("redis is required when APP_ENV=%s", d.Cfg.AppEnv)
		}
	}
	// Middlewares
	app.Use(recover.New())
	app.Use(middleware.RequestID())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} -  ${latency} ${method} ${path}\n",
		TimeFormat: "15:04:05",
		TimeZone:   "Local",
	}))
	if d.Cache != nil {
		app.Use(middleware.Idempotency(d.Cache, d.Cfg.IdempotencyTTL, d.Logger))
	}

	// Health
	RegisterHealthRoutes(app, d)

	// Repositories
	var (
		identityRepo     identity.Repository
		tontineRepo      tontine.Repository
		membershipRepo   membership.Repository
		contributionRepo contribution.Repository
		payoutRepo       payout.Repository
	)
	if d.DB != nil {
		identityRepo = identity.NewPostgresRepository(d.DB)
		tontineRepo = tontine.NewPostgresRepository(d.DB)
		membershipRepo = membership.NewPostgresRepository(d.DB)
		contributionRepo = contribution.NewPostgresRepository(d.DB)
		payoutRepo = payout.NewPostgresRepository(d.DB)
	} else {
		identityRepo = identity.NewMemoryRepository()
		tontineRepo = tontine.NewMemoryRepository()
		membershipRepo = membership.NewMemoryRepository(tontineRepo)
		contributionRepo = contribution.NewMemoryRepository()
		payoutRepo = payout.NewMemoryRepository()
	}

	// Services and handlers
	notifier := notification.NewLoggerNotifier(d.Logger)
	identitySvc := identity.NewService(identityRepo)
	tokenSvc := auth.NewService(d.Cfg)
	membershipSvc := membership.NewService(membershipRepo, tontineRepo, identityRepo, notifier)
	tontineSvc := tontine.NewService(tontineRepo, membershipSvc)
	contributionSvc := contribution.NewService(contributionRepo, tontineRepo, membershipSvc)
	payoutSvc := payout.NewService(payoutRepo, tontineRepo, membershipSvc, notifier)
	statsSvc := stats.NewService(tontineRepo, contributionSvc, payoutSvc, membershipSvc)

	authHandler := auth.NewHandler(identitySvc, tokenSvc)
	userHandler := identity.NewHandler(identitySvc)
	tontineHandler := tontine.NewHandler(tontineSvc)
	membershipHandler := membership.NewHandler(membershipSvc)
	paymentHandler := contribution.NewHandler(contributionSvc)
	turnHandler := payout.NewHandler(payoutSvc)
	statsHandler := stats.NewHandler(statsSvc)

	// API routes
	api := app.Group("/api/v1")
	api.Get("/ping", func(c *fiber.Ctx) error {
		reqID, _ := c.Locals("X-Request-ID").(string)
		return c.Status(http.StatusOK).JSON(fiber.Map{
			"status":     "ok",
			"request_id": reqID,
			"timestamp":  time.Now().UTC().Format(time.RFC3339Nano),
		})
	})

	// Public routes
	rateLimiter := middleware.LoginRateLimit(d.Cache, 5)
	RegisterAuthRoutes(api, authHandler, rateLimiter)

	// Protected routes
	jwtmw := middleware.JWTAuth(tokenSvc, identityRepo)
	protected := api.Group("", jwtmw)
	protected.Use(middleware.Audit(d.Logger))

	RegisterUserRoutes(api, protected, userHandler)
	RegisterTontineRoutes(protected, tontineHandler, statsHandler)
	RegisterMemberRoutes(protected, membershipHandler)
	RegisterPaymentRoutes(protected, paymentHandler)
	RegisterTurnRoutes(protected, turnHandler)

	return nil
}

func isDev(env string) bool {
	switch strings.ToLower(env) {
	case "dev", "development", "local":
		return true
	default:
		return false
	}
}
