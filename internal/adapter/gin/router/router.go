package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"

	"simple-crud-api/api"
	"simple-crud-api/internal/adapter/gin/handler"
	"simple-crud-api/internal/adapter/gin/middleware"
	"simple-crud-api/pkg/i18n"
	"simple-crud-api/pkg/metrics"
)

// Config controls the optional parts of the router
type Config struct {
	ServerHeader   string
	PoweredBy      string
	MetricsPath    string
	SwaggerEnabled bool
	// RateLimit is applied only when Redis is also set
	RateLimit *middleware.RateLimitConfig
}

// Dependencies are the handlers and shared components the router wires together
type Dependencies struct {
	UserHandler   *handler.UserHandler
	ItemHandler   *handler.ItemHandler
	SystemHandler *handler.SystemHandler
	Translator    *i18n.Translator
	Metrics       *metrics.Manager // optional
	Redis         *redis.Client    // optional
	Logger        *zap.Logger
}

// SetupRouter configures and returns a Gin router with all routes and middleware
func SetupRouter(cfg Config, deps Dependencies) *gin.Engine {
	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.RedirectTrailingSlash = false

	// Global middleware. Recovery sits inside Logger and Metrics so they see the 500.
	router.Use(middleware.RequestID())
	router.Use(middleware.Headers(cfg.ServerHeader, cfg.PoweredBy))
	router.Use(middleware.Logger(deps.Logger))
	if deps.Metrics != nil {
		router.Use(middleware.Metrics(deps.Metrics))
	}
	router.Use(middleware.Recovery(deps.Logger, deps.Translator))
	if cfg.RateLimit != nil && deps.Redis != nil {
		router.Use(middleware.RateLimiter(*cfg.RateLimit, deps.Redis, deps.Translator, deps.Logger))
	}

	router.NoRoute(deps.SystemHandler.NotFound)
	router.NoMethod(deps.SystemHandler.MethodNotAllowed)

	router.GET("/", deps.SystemHandler.Home)
	router.GET("/health", deps.SystemHandler.Health)

	users := router.Group("/users")
	{
		users.GET("", deps.UserHandler.ListUsers)
		users.POST("", deps.UserHandler.CreateUser)
		users.GET("/:id", deps.UserHandler.GetUser)
		users.PUT("/:id", deps.UserHandler.UpdateUser)
		users.DELETE("/:id", deps.UserHandler.DeleteUser)
	}

	items := router.Group("/items")
	{
		items.GET("", deps.ItemHandler.ListItems)
		items.POST("", deps.ItemHandler.CreateItem)
		items.DELETE("/:id", deps.ItemHandler.DeleteItem)
	}

	if deps.Metrics != nil && cfg.MetricsPath != "" {
		router.GET(cfg.MetricsPath, gin.WrapH(deps.Metrics.Handler()))
	}

	if cfg.SwaggerEnabled {
		router.GET("/openapi.json", func(c *gin.Context) {
			c.Data(http.StatusOK, "application/json; charset=utf-8", api.OpenAPI)
		})
		router.GET("/swagger/*any", gin.WrapH(httpSwagger.Handler(httpSwagger.URL("/openapi.json"))))
	}

	return router
}
