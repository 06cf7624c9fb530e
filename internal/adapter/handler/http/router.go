package http

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sm8ta/garage_maintenance_microservice/internal/config"
	"github.com/sm8ta/garage_maintenance_microservice/internal/core/ports"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type Router struct {
	router *gin.Engine
	server *http.Server
}

func NewRouter(
	cfg *config.HTTP,
	limits *config.RateLimit,
	tokenService ports.TokenService,
	vehicleHandler *VehicleHandler,
	componentHandler *ComponentHandler,
	typeHandler *MaintenanceTypeHandler,
	maintenanceHandler *MaintenanceHandler,
) (*Router, error) {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()

	// CORS
	router.Use(cors.New(cors.Config{
		AllowOrigins:     splitOrigins(cfg.AllowedOrigins),
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	// Swagger
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Metrics
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	limiter := NewRateLimiter(limits.RPS, limits.Burst, limits.Idle)

	// Vehicles routes
	vehicles := router.Group("/vehicles")
	vehicles.Use(AuthMiddleware(tokenService), limiter.Middleware())
	{
		vehicles.POST("", vehicleHandler.CreateVehicle)
		vehicles.GET("/my", vehicleHandler.GetMyVehicles)
		vehicles.GET("/:id", vehicleHandler.GetVehicle)
		vehicles.PUT("/:id/mileage", vehicleHandler.UpdateMileage)
		vehicles.DELETE("/:id", vehicleHandler.DeleteVehicle)

		vehicles.GET("/:id/components", componentHandler.ListVehicleComponents)
		vehicles.POST("/:id/components", componentHandler.EnsureInstance)
		vehicles.PUT("/:id/components/:instance_id/alias", componentHandler.SetAlias)

		vehicles.GET("/:id/maintenance", maintenanceHandler.ListHistory)
		vehicles.POST("/:id/maintenance", maintenanceHandler.RecordEvent)
		vehicles.GET("/:id/maintenance/:event_id", maintenanceHandler.GetEvent)
		vehicles.PUT("/:id/maintenance/:event_id", maintenanceHandler.UpdateEvent)
	}

	// Components routes
	components := router.Group("/components")
	components.Use(AuthMiddleware(tokenService), limiter.Middleware())
	{
		components.GET("", componentHandler.ListCatalog)
		components.POST("", componentHandler.CreateComponent)
		components.GET("/:id/maintenance-types", typeHandler.ListForComponent)
	}

	// Maintenance types routes
	types := router.Group("/maintenance-types")
	types.Use(AuthMiddleware(tokenService), limiter.Middleware())
	{
		types.POST("", typeHandler.CreateType)
		types.PUT("/:id/components/:component_id", typeHandler.Link)
		types.DELETE("/:id/components/:component_id", typeHandler.Unlink)
	}

	return &Router{
		router: router,
		server: &http.Server{
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}, nil
}

func splitOrigins(raw string) []string {
	var origins []string
	for _, o := range strings.Split(raw, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

// Serve blocks until the listener fails or Shutdown is called. A shutdown is
// not reported as an error.
func (r *Router) Serve(addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	if err := r.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting connections and waits for in-flight requests
// until ctx is done.
func (r *Router) Shutdown(ctx context.Context) error {
	return r.server.Shutdown(ctx)
}

func (r *Router) Engine() *gin.Engine {
	return r.router
}
