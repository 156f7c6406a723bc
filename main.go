package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/Vikesh2608/EagleReach/cache"
	"github.com/Vikesh2608/EagleReach/config"
	"github.com/Vikesh2608/EagleReach/database"
	"github.com/Vikesh2608/EagleReach/handlers"
	"github.com/Vikesh2608/EagleReach/models"
	"github.com/Vikesh2608/EagleReach/pkg/monitoring"
	"github.com/Vikesh2608/EagleReach/providers"
	"github.com/Vikesh2608/EagleReach/services"
	"github.com/Vikesh2608/EagleReach/shared/utils"
)

const serviceName = "eaglereach-api"

func main() {
	// Load .env file if it exists (optional - fails silently if not found)
	_ = godotenv.Load()

	cfg := config.LoadConfig(serviceName)
	utils.SetupLogging(cfg.Logging.Format, cfg.Logging.Level)

	slog.Info("Starting EagleReach API initialization", "environment", cfg.Environment, "demo_mode", cfg.DemoMode)

	ctx := context.Background()

	// Telemetry (OTel metrics with Prometheus exporter)
	shutdownTelemetry, err := monitoring.Setup(ctx, monitoring.Config{ServiceName: serviceName})
	if err != nil {
		slog.Error("Failed to set up telemetry", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := shutdownTelemetry(context.Background()); err != nil {
			slog.Error("Telemetry shutdown error", "error", err)
		}
	}()

	// Report category enums (YAML with compiled-in defaults)
	enums, err := config.LoadReportEnums(utils.GetEnvOrDefault("REPORT_CATEGORIES_FILE", ""))
	if err != nil {
		slog.Error("Failed to load report categories", "error", err)
		os.Exit(1)
	}
	models.SetEnumConfig(enums)

	// Officials cache: Redis when configured, in-process otherwise
	var officialsCache cache.OfficialsCache
	if cfg.Cache.RedisAddr != "" {
		redisCache, err := cache.NewRedisCache(cache.RedisConfig{
			Addr:     cfg.Cache.RedisAddr,
			Password: cfg.Cache.RedisPassword,
			DB:       cfg.Cache.RedisDB,
			TTL:      cfg.Cache.TTL,
		})
		if err != nil {
			slog.Error("Failed to connect to Redis, falling back to in-memory cache", "error", err)
			officialsCache = cache.NewMemoryCache(cfg.Cache.TTL)
		} else {
			defer redisCache.Close()
			officialsCache = redisCache
			slog.Info("Using Redis officials cache", "addr", cfg.Cache.RedisAddr)
		}
	} else {
		officialsCache = cache.NewMemoryCache(cfg.Cache.TTL)
	}

	// Upstream provider clients
	resolver := providers.NewResolver(providers.ResolverConfig{
		Census:        providers.NewCensusClient(cfg.Providers.CensusBaseURL),
		Zippopotam:    providers.NewZippopotamClient(cfg.Providers.ZippopotamURL),
		Legislators:   providers.NewLegislatorsClient(cfg.Providers.LegislatorsURL),
		OpenStates:    providers.NewOpenStatesClient(cfg.Providers.OpenStatesURL, cfg.Providers.OpenStatesAPIKey),
		UseOpenStates: cfg.Providers.UseOpenStates && cfg.Providers.OpenStatesAPIKey != "",
	})

	lookupService := services.NewLookupService(resolver, officialsCache, cfg.DemoMode)
	civicHandler := handlers.NewCivicHandler(lookupService, cfg.Debug)

	// Reports subsystem; the lookup path keeps working when the DB is down
	var reportService *services.ReportService
	gormDB, err := database.ConnectGormDB(cfg.DB)
	if err != nil {
		slog.Warn("Running without database - report filing disabled", "error", err)
		gormDB = nil
	} else {
		reportService = services.NewReportService(database.NewGormRepository(gormDB))
	}
	reportHandler := handlers.NewReportHandler(reportService)

	mux := handlers.SetupRouter(handlers.RouterConfig{
		Civic:          civicHandler,
		Reports:        reportHandler,
		DB:             gormDB,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		ServiceName:    serviceName,
	})

	serverConfig := utils.DefaultServerConfig()
	serverConfig.Port = cfg.Service.Port
	server := utils.CreateServer(serverConfig, mux)

	if err := utils.StartServerWithGracefulShutdown(server, serviceName); err != nil {
		os.Exit(1)
	}
}
