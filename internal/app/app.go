// Package app assembles the HTTP service from configuration.
package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"partshop/internal/cart"
	"partshop/internal/config"
	"partshop/internal/database"
	"partshop/internal/handlers"
	"partshop/internal/middleware"
	"partshop/internal/repositories"
	"partshop/internal/services"
	"partshop/pkg/rabbitmq"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	amqp "github.com/streadway/amqp"
	"gorm.io/gorm"
)

// App is a fully wired service ready to listen.
type App struct {
	Fiber *fiber.App

	cfg config.Config
	log *slog.Logger
	db  *gorm.DB
	mq  *rabbitmq.Client
}

// Repositories bundles the record stores used by the services.
type Repositories struct {
	Categories repositories.CategoryRepository
	Products   repositories.ProductRepository
}

// OpenRepositories returns in-memory stores for the memory driver and GORM
// stores otherwise. The returned db is nil for the memory driver.
func OpenRepositories(cfg config.Config, log *slog.Logger) (Repositories, *gorm.DB, error) {
	if cfg.DBDriver == database.DriverMemory {
		return Repositories{
			Categories: repositories.NewMockCategoryRepository(),
			Products:   repositories.NewMockProductRepository(),
		}, nil, nil
	}

	db, err := database.Open(cfg.Database(), log)
	if err != nil {
		return Repositories{}, nil, err
	}
	if err := database.Migrate(db); err != nil {
		LogCleanupError(log, "database", database.Close(db))
		return Repositories{}, nil, err
	}
	return Repositories{
		Categories: repositories.NewGORMCategoryRepository(db),
		Products:   repositories.NewGORMProductRepository(db),
	}, db, nil
}

// New connects the record store and the event broker and registers every route.
func New(cfg config.Config, log *slog.Logger) (*App, error) {
	repos, db, err := OpenRepositories(cfg, log)
	if err != nil {
		return nil, err
	}
	a := &App{cfg: cfg, log: log, db: db}

	var publisher services.EventPublisher
	if cfg.RabbitMQURL != "" {
		mq, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL, Queue: cfg.EventsQueue}, log)
		if err != nil {
			LogCleanupError(log, "database", a.closeStores())
			return nil, err
		}
		a.mq = mq
		publisher = mq
	} else {
		log.Info("catalog events disabled")
	}

	categoryService := services.NewCategoryService(repos.Categories, repos.Products, publisher, log)
	productService := services.NewProductService(repos.Products, repos.Categories, publisher, log)
	dashboardService := services.NewDashboardService(repos.Products, repos.Categories)

	a.Fiber = fiber.New(fiber.Config{
		AppName:               "partshop",
		DisableStartupMessage: true,
		ErrorHandler:          errorHandler(log),
	})
	a.Fiber.Use(recover.New())
	a.Fiber.Use(middleware.RequestContext(log))
	a.Fiber.Use(logger.New(logger.Config{
		Format: "${time} | ${status} | ${latency} | ${method} ${path} | ${respHeader:" + middleware.RequestIDHeader + "}\n",
	}))

	apiV1 := a.Fiber.Group("/api/v1")
	handlers.NewCategoryHandler(categoryService, log).RegisterRoutes(apiV1)
	handlers.NewProductHandler(productService, log).RegisterRoutes(apiV1)
	handlers.NewDashboardHandler(dashboardService, log).RegisterRoutes(apiV1)
	handlers.NewCartHandler(cart.NewRegistry()).RegisterRoutes(apiV1)

	a.Fiber.Get("/health", a.handleHealth)
	return a, nil
}

func (a *App) handleHealth(c *fiber.Ctx) error {
	status := fiber.Map{
		"status":   "healthy",
		"time":     time.Now().Format(time.RFC3339),
		"database": a.cfg.DBDriver,
		"events":   a.mq != nil,
	}
	if a.db != nil {
		sqlDB, err := a.db.DB()
		if err == nil {
			err = sqlDB.PingContext(c.UserContext())
		}
		if err != nil {
			status["status"] = "degraded"
			return c.Status(fiber.StatusServiceUnavailable).JSON(status)
		}
	}
	return c.Status(fiber.StatusOK).JSON(status)
}

// errorHandler renders fiber routing errors (unknown route, bad method) in
// the response envelope.
func errorHandler(log *slog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		message := "Internal server error"
		var fe *fiber.Error
		if errors.As(err, &fe) {
			code = fe.Code
			message = fe.Message
		} else {
			middleware.Logger(c, log).Error("unhandled error", "method", c.Method(), "path", c.Path(), "error", err)
		}
		return c.Status(code).JSON(handlers.Response{Error: message})
	}
}

// ConsumeEvents logs every catalog event delivered by the broker. It is a
// no-op when events are disabled.
func (a *App) ConsumeEvents() error {
	if a.mq == nil {
		return nil
	}
	return a.mq.ConsumeCatalogEvents(func(msg amqp.Delivery) error {
		var event services.CatalogEvent
		if err := json.Unmarshal(msg.Body, &event); err != nil {
			return fmt.Errorf("failed to decode catalog event: %w", err)
		}
		a.log.Info("catalog event received", "type", event.Type, "id", event.ID, "name", event.Name)
		return nil
	})
}

// Listen serves HTTP on the configured port until Shutdown.
func (a *App) Listen() error {
	a.log.Info("starting server", "port", a.cfg.AppPort)
	return a.Fiber.Listen(a.cfg.AppPort)
}

// Shutdown stops the server and releases the broker and database connections.
func (a *App) Shutdown(ctx context.Context) error {
	var errs []error
	if err := a.Fiber.ShutdownWithContext(ctx); err != nil {
		errs = append(errs, fmt.Errorf("failed to stop server: %w", err))
	}
	if err := a.closeStores(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// LogCleanupError reports a failure to release resource on a path that is
// already returning another error. A nil err is ignored.
func LogCleanupError(log *slog.Logger, resource string, err error) {
	if err != nil {
		log.Warn("failed to release resource", "resource", resource, "error", err)
	}
}

func (a *App) closeStores() error {
	var errs []error
	if a.mq != nil {
		if err := a.mq.Close(); err != nil {
			errs = append(errs, err)
		}
		a.mq = nil
	}
	if a.db != nil {
		if err := database.Close(a.db); err != nil {
			errs = append(errs, err)
		}
		a.db = nil
	}
	return errors.Join(errs...)
}
