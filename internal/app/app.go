package app

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/go-playground/validator/v10"
	redisClient "github.com/redis/go-redis/v9"
	"github.com/sm8ta/garage_maintenance_microservice/internal/adapter/handler/http"
	"github.com/sm8ta/garage_maintenance_microservice/internal/adapter/logger"
	"github.com/sm8ta/garage_maintenance_microservice/internal/adapter/postgres"
	"github.com/sm8ta/garage_maintenance_microservice/internal/adapter/prometheus"
	"github.com/sm8ta/garage_maintenance_microservice/internal/adapter/redis"
	"github.com/sm8ta/garage_maintenance_microservice/internal/config"
	"github.com/sm8ta/garage_maintenance_microservice/internal/core/ports"
	"github.com/sm8ta/garage_maintenance_microservice/internal/core/services"
)

type App struct {
	Config       *config.Container
	Logger       *logger.LoggerAdapter
	DB           *sql.DB
	RedisClient  *redisClient.Client
	RedisAdapter ports.CachePort
	HTTPRouter   *http.Router
}

func New(ctx context.Context, cfg *config.Container) (*App, error) {
	// Set logger
	loggerAdapter := logger.NewLoggerAdapter(cfg.App.Env)
	loggerAdapter.Info("Starting the application", map[string]interface{}{
		"app": cfg.App.Name,
		"env": cfg.App.Env,
	})

	// Set redis
	redisConn := redisClient.NewClient(&redisClient.Options{
		Addr:     cfg.Redis.Address,
		Password: cfg.Redis.Password,
		DB:       0,
	})
	if _, err := redisConn.Ping(ctx).Result(); err != nil {
		redisConn.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	cacheAdapter := redis.NewRedisAdapter(redisConn)

	// Connect DB
	db, err := postgres.Open(ctx, cfg.DB.DSN())
	if err != nil {
		redisConn.Close()
		return nil, err
	}

	// Migrate DB
	if err := postgres.Migrate(db, cfg.DB.MigrationsDir); err != nil {
		db.Close()
		redisConn.Close()
		return nil, err
	}

	// Validate
	validate := validator.New()

	// Observability
	metrics := prometheus.NewPrometheusAdapter()

	// Repositories
	vehicleRepo := postgres.NewVehicleRepository(db)
	componentRepo := postgres.NewComponentRepository(db)
	typeRepo := postgres.NewMaintenanceTypeRepository(db)
	eventRepo := postgres.NewMaintenanceEventRepository(db)

	// Services
	vehicleService := services.NewVehicleService(vehicleRepo, loggerAdapter, validate, cacheAdapter, cfg.Cache.TTL)
	componentService := services.NewComponentCatalogService(componentRepo, vehicleService, loggerAdapter, validate)
	typeService := services.NewMaintenanceTypeService(typeRepo, componentRepo, loggerAdapter, validate)
	eventService := services.NewMaintenanceEventService(eventRepo, componentRepo, typeRepo, vehicleService, loggerAdapter, validate)

	// HTTP Handlers
	tokenService := http.NewJWTTokenService(cfg.Token.Secret, loggerAdapter)
	vehicleHandler := http.NewVehicleHandler(vehicleService, loggerAdapter, metrics)
	componentHandler := http.NewComponentHandler(componentService, loggerAdapter, metrics)
	typeHandler := http.NewMaintenanceTypeHandler(typeService, loggerAdapter, metrics)
	maintenanceHandler := http.NewMaintenanceHandler(eventService, vehicleService, loggerAdapter, metrics)

	// Init HTTP router
	router, err := http.NewRouter(
		cfg.HTTP,
		cfg.RateLimit,
		tokenService,
		vehicleHandler,
		componentHandler,
		typeHandler,
		maintenanceHandler,
	)
	if err != nil {
		db.Close()
		redisConn.Close()
		return nil, fmt.Errorf("failed to initialize router: %w", err)
	}

	return &App{
		Config:       cfg,
		Logger:       loggerAdapter,
		DB:           db,
		RedisClient:  redisConn,
		RedisAdapter: cacheAdapter,
		HTTPRouter:   router,
	}, nil
}

// Run blocks serving HTTP until the server fails or Stop is called.
func (a *App) Run() error {
	listenAddr := fmt.Sprintf("%s:%s", a.Config.HTTP.URL, a.Config.HTTP.Port)
	a.Logger.Info("Starting HTTP server", map[string]interface{}{
		"addr": listenAddr,
	})

	if err := a.HTTPRouter.Serve(listenAddr); err != nil {
		a.Logger.Error("HTTP server error", map[string]interface{}{
			"error": err.Error(),
		})
		return err
	}
	return nil
}

// Stop drains the HTTP server, then releases the database and redis connections.
func (a *App) Stop(ctx context.Context) error {
	a.Logger.Info("Shutting down gracefully...", nil)

	if err := a.HTTPRouter.Shutdown(ctx); err != nil {
		a.Logger.Error("HTTP server shutdown error", map[string]interface{}{
			"error": err.Error(),
		})
	}

	if err := a.DB.Close(); err != nil {
		a.Logger.Error("Database close error", map[string]interface{}{
			"error": err.Error(),
		})
	}

	if err := a.RedisClient.Close(); err != nil {
		a.Logger.Error("Redis close error", map[string]interface{}{
			"error": err.Error(),
		})
	}

	a.Logger.Info("Application stopped successfully", nil)
	_ = a.Logger.Sync()
	return nil
}
