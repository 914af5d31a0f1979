package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/terraincognita07/grimoire/internal/api"
	"github.com/terraincognita07/grimoire/internal/config"
	"github.com/terraincognita07/grimoire/internal/db"
	"github.com/terraincognita07/grimoire/internal/i18n"
	"github.com/terraincognita07/grimoire/internal/logging"
	"github.com/terraincognita07/grimoire/internal/metrics"
)

const shutdownTimeout = 10 * time.Second

func runServe(ctx context.Context, configPath string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	log, err := logging.New(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		return fmt.Errorf("logger init failed: %w", err)
	}
	defer func() { _ = log.Sync() }()

	location, err := cfg.Location()
	if err != nil {
		log.Warn("invalid timezone, falling back to UTC", zap.String("tz", cfg.Timezone), zap.Error(err))
	}

	database, err := db.Open(cfg.DatabaseURL, cfg.DBPath)
	if err != nil {
		return fmt.Errorf("database init failed: %w", err)
	}
	defer closeDatabase(database, log)

	app, err := buildApp(cfg, database, location, log)
	if err != nil {
		return err
	}

	port, _ := cfg.PortNumber()
	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		log.Info("grimoire listening",
			zap.Int("port", port),
			zap.String("env", cfg.Env),
			zap.String("tz", location.String()),
			zap.Bool("postgres", cfg.DatabaseURL != ""),
		)
		if err := app.Listen(":" + strconv.Itoa(port)); err != nil {
			return fmt.Errorf("server exited: %w", err)
		}
		return nil
	})

	group.Go(func() error {
		<-groupCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			log.Error("server shutdown failed", zap.Error(err))
		}
		return nil
	})

	if err := group.Wait(); err != nil {
		return err
	}
	log.Info("grimoire stopped")
	return nil
}

func loadConfig(configPath string) (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// buildApp wires middleware, API routes and, in production, the client bundle.
func buildApp(cfg *config.Config, database *gorm.DB, location *time.Location, log *zap.Logger) (*fiber.App, error) {
	i18nManager, err := i18n.NewEmbeddedManager(cfg.DefaultLanguage)
	if err != nil {
		return nil, fmt.Errorf("i18n init failed: %w", err)
	}

	handler, err := api.NewHandler(database, cfg.SecretKey, location, i18nManager, log)
	if err != nil {
		return nil, fmt.Errorf("handler init failed: %w", err)
	}

	app := fiber.New(fiber.Config{
		AppName:               "Grimoire",
		DisableStartupMessage: true,
		ErrorHandler:          handler.ErrorHandler,
	})

	app.Use(recover.New())
	if cfg.MetricsEnabled() {
		recorder := metrics.New()
		if sqlDB, err := database.DB(); err == nil {
			if err := recorder.WatchDB(sqlDB); err != nil {
				log.Warn("database pool metrics unavailable", zap.Error(err))
			}
		}
		app.Use(recorder.Middleware())
		app.Get(cfg.MetricsPath, recorder.Handler())
	}
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(logger.New(logger.Config{
		Format: "${time} ${locals:requestid} ${status} ${method} ${path} ${latency}\n",
	}))
	app.Use(helmet.New(helmetMiddlewareConfig()))
	app.Use(compress.New())
	if origins := cfg.AllowedOrigins(); len(origins) > 0 {
		app.Use(cors.New(corsMiddlewareConfig(origins)))
	}
	app.Use(handler.LanguageMiddleware)

	api.RegisterRoutes(app, handler)

	if cfg.IsProduction() {
		if err := api.RegisterClient(app, cfg.StaticDir); err != nil {
			return nil, fmt.Errorf("client bundle: %w", err)
		}
	}
	return app, nil
}

// helmetMiddlewareConfig leaves Content-Security-Policy unset; the client
// bundle ships its own inline bootstrap.
func helmetMiddlewareConfig() helmet.Config {
	return helmet.Config{
		ContentSecurityPolicy:     "",
		CrossOriginEmbedderPolicy: "unsafe-none",
		ReferrerPolicy:            "no-referrer",
	}
}

func corsMiddlewareConfig(origins []string) cors.Config {
	return cors.Config{
		AllowOrigins:     strings.Join(origins, ","),
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin,Content-Type,Accept,Accept-Language,Authorization",
		AllowCredentials: true,
		MaxAge:           int((12 * time.Hour).Seconds()),
	}
}

func closeDatabase(database *gorm.DB, log *zap.Logger) {
	sqlDB, err := database.DB()
	if err != nil {
		return
	}
	if err := sqlDB.Close(); err != nil {
		log.Warn("database close failed", zap.Error(err))
	}
}
