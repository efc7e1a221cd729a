// Package server contains the Fiber app wiring and HTTP handlers for the
// content API.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"inkwell/internal/config"
	"inkwell/internal/database"
	"inkwell/internal/mailer"
	"inkwell/internal/middleware"
	"inkwell/internal/repository"
	"inkwell/internal/service"
	"inkwell/internal/storage"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	db             *gorm.DB
	redis          *redis.Client
	promMiddleware *fiberprometheus.FiberPrometheus

	postRepo       repository.PostRepository
	subscriberRepo repository.SubscriberRepository

	postService       *service.PostService
	subscriberService *service.SubscriberService
	uploadService     *service.UploadService
	newsletterService *service.NewsletterService
}

// NewServer creates a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	redisClient := connectRedis(cfg.RedisURL)

	store, err := storage.NewS3Storage(context.Background(), cfg)
	if err != nil {
		return nil, fmt.Errorf("object storage init failed: %w", err)
	}

	sender, err := mailer.NewSMTPSender(cfg)
	if err != nil {
		return nil, fmt.Errorf("smtp client init failed: %w", err)
	}

	return NewServerWithDeps(cfg, db, redisClient, store, sender)
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Use this in tests or when a bootstrap layer establishes DB/Redis and the
// outbound storage/mail clients itself.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client,
	store storage.ObjectStorage, sender mailer.EmailSender) (*Server, error) {

	postRepo := repository.NewPostRepository(db)
	subscriberRepo := repository.NewSubscriberRepository(db)

	prom := middleware.InitMetrics("inkwell-api")

	server := &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		promMiddleware: prom,
		postRepo:       postRepo,
		subscriberRepo: subscriberRepo,
	}
	server.postService = service.NewPostService(server.postRepo)
	server.subscriberService = service.NewSubscriberService(server.subscriberRepo)
	server.uploadService = service.NewUploadService(store, cfg.S3Bucket)
	server.newsletterService = service.NewNewsletterService(server.subscriberRepo, sender)

	return server, nil
}

// connectRedis parses the URL and pings the instance. Redis is optional; the
// rate limiter fails open without it, so a connection failure only logs.
func connectRedis(url string) *redis.Client {
	if url == "" {
		return nil
	}
	opts, err := redis.ParseURL(url)
	if err != nil {
		middleware.Logger.Warn("invalid REDIS_URL, continuing without redis",
			slog.String("error", err.Error()))
		return nil
	}
	return redis.NewClient(opts)
}

// Shutdown releases server-held resources (database pool, redis connection).
func (s *Server) Shutdown(ctx context.Context) error {
	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			middleware.Logger.Warn("redis close failed", slog.String("error", err.Error()))
		}
	}
	if s.db != nil {
		sqlDB, err := s.db.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}
	return nil
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Panic recovery
	app.Use(recover.New())

	// Request ID for tracing
	app.Use(requestid.New())

	// Context middleware to propagate the request ID into UserContext
	app.Use(middleware.ContextMiddleware())

	// Prometheus metrics
	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	// Security headers
	app.Use(helmet.New())

	if s.config.TracingEnabled {
		app.Use(middleware.TracingMiddleware())
	}

	// Structured logging middleware (after requestid and context middleware)
	app.Use(middleware.StructuredLogger())

	// CORS runs before middlewares that can short-circuit (e.g. limiter)
	// so browser clients still receive CORS headers on error responses.
	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173"
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins: origins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		MaxAge:       86400, // 24 hours
	}))

	// Global rate limiting (100 requests per minute per IP)
	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
		// Never rate-limit preflight requests; they are handled by CORS.
		Next: func(c *fiber.Ctx) bool {
			return c.Method() == fiber.MethodOptions
		},
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests, please try again later.",
			})
		},
	}))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	api := app.Group("/api")

	// Health checks
	api.Get("/health", s.HealthCheck)
	app.Get("/health/live", s.LivenessCheck)

	// Metrics endpoint for Prometheus
	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}
	api.Get("/metrics/dashboard", monitor.New(monitor.Config{
		Title: "Inkwell Metrics Dashboard",
	}))

	admin := middleware.AdminRequired(s.config.AdminToken)

	// Post routes; public reads, admin writes
	posts := api.Group("/posts")
	posts.Get("/", s.GetPosts)
	posts.Post("/", admin, s.CreatePost)
	posts.Get("/:id", s.GetPost)
	posts.Put("/:id", admin, s.UpdatePost)
	posts.Delete("/:id", admin, s.DeletePost)

	// Image upload proxy
	api.Post("/upload", admin, s.UploadImage)

	// Newsletter routes
	newsletter := api.Group("/newsletter")
	newsletter.Post("/signup", middleware.RateLimit(
		s.redis, 5, 10*time.Minute, "newsletter_signup"), s.NewsletterSignup)
	newsletter.Post("/send", admin, s.SendNewsletter)
	newsletter.Get("/subscribers", admin, s.GetSubscribers)
	newsletter.Delete("/unsubscribe/:id", admin, s.Unsubscribe)

	// JSON 404 for anything unmatched
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Resource not found",
		})
	})
}
