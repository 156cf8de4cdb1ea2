package di

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"simple-crud-api/cmd/api/infrastructure"
	sqliterepo "simple-crud-api/internal/adapter/db/sqlite"
	ginhandler "simple-crud-api/internal/adapter/gin/handler"
	"simple-crud-api/internal/adapter/gin/middleware"
	ginrouter "simple-crud-api/internal/adapter/gin/router"
	"simple-crud-api/internal/adapter/memory"
	"simple-crud-api/internal/config"
	"simple-crud-api/internal/domain/identity"
	"simple-crud-api/internal/usecase/item"
	"simple-crud-api/internal/usecase/user"
	"simple-crud-api/pkg/i18n"
	"simple-crud-api/pkg/metrics"
	redisclient "simple-crud-api/pkg/redis"
)

// Container holds all application dependencies
type Container struct {
	Config        *config.Config
	Logger        *zap.Logger
	DB            *gorm.DB            // nil with the memory driver
	RedisClient   *redisclient.Client // nil unless rate limiting is enabled
	Translator    *i18n.Translator
	Metrics       *metrics.Manager // nil when metrics are disabled
	UserUC        user.UserUsecase
	ItemUC        item.ItemUsecase
	UserHandler   *ginhandler.UserHandler
	ItemHandler   *ginhandler.ItemHandler
	SystemHandler *ginhandler.SystemHandler
}

// NewContainer creates and initializes all application dependencies
func NewContainer(cfg *config.Config, l *zap.Logger) (*Container, error) {
	// Validate configuration before initializing any dependencies
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	c := &Container{Config: cfg, Logger: l}

	tr, err := i18n.New(cfg.App.Locale)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize translator: %w", err)
	}
	c.Translator = tr

	userIDs, err := identity.NewGenerator(cfg.Store.IDStrategy)
	if err != nil {
		return nil, err
	}
	itemIDs, err := identity.NewGenerator(cfg.Store.IDStrategy)
	if err != nil {
		return nil, err
	}

	// Initialize repositories
	var (
		userRepo user.Repository
		itemRepo item.Repository
	)
	switch cfg.Store.Driver {
	case config.DriverSQLite:
		db, err := infrastructure.NewDatabase(cfg, l)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		c.DB = db
		userRepo = sqliterepo.NewUserRepo(db, userIDs, l)
		itemRepo = sqliterepo.NewItemRepo(db, itemIDs, l)
	default:
		userRepo = memory.NewUserRepo(userIDs, l)
		itemRepo = memory.NewItemRepo(itemIDs, l)
	}

	l.Info("store initialized",
		zap.String("driver", cfg.Store.Driver),
		zap.String("id_strategy", cfg.Store.IDStrategy),
	)

	// Initialize Redis client
	if cfg.RateLimit.Enabled {
		rdb, err := infrastructure.NewRedisClient(cfg, l)
		if err != nil {
			_ = c.Close()
			return nil, fmt.Errorf("failed to initialize Redis: %w", err)
		}
		c.RedisClient = rdb
	}

	if cfg.Metrics.Enabled {
		c.Metrics = metrics.New(metrics.Config{Namespace: cfg.Metrics.Namespace})
	}

	// Initialize use cases
	c.UserUC = user.New(userRepo, l)
	c.ItemUC = item.New(itemRepo, l)

	// Initialize Gin handlers
	c.UserHandler = ginhandler.NewUserHandler(c.UserUC, tr, l)
	c.ItemHandler = ginhandler.NewItemHandler(c.ItemUC, tr, l)
	c.SystemHandler = ginhandler.NewSystemHandler(tr)

	return c, nil
}

// RouterConfig derives the router options from the configuration
func (c *Container) RouterConfig() ginrouter.Config {
	rc := ginrouter.Config{
		ServerHeader:   c.Config.App.ServerHeader,
		PoweredBy:      c.Config.App.PoweredBy,
		SwaggerEnabled: c.Config.App.SwaggerEnabled,
	}
	if c.Config.Metrics.Enabled {
		rc.MetricsPath = c.Config.Metrics.Path
	}
	if c.Config.RateLimit.Enabled {
		rc.RateLimit = &middleware.RateLimitConfig{
			RequestsPerSecond: float64(c.Config.RateLimit.RPS),
			BurstCapacity:     c.Config.RateLimit.Burst,
		}
	}
	return rc
}

// RouterDependencies returns the handlers and components the router needs
func (c *Container) RouterDependencies() ginrouter.Dependencies {
	deps := ginrouter.Dependencies{
		UserHandler:   c.UserHandler,
		ItemHandler:   c.ItemHandler,
		SystemHandler: c.SystemHandler,
		Translator:    c.Translator,
		Metrics:       c.Metrics,
		Logger:        c.Logger,
	}
	if c.RedisClient != nil {
		deps.Redis = c.RedisClient.Client
	}
	return deps
}

// Close closes all resources held by the container
func (c *Container) Close() error {
	var errs []error

	// Close Redis connection
	if c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close Redis: %w", err))
		}
	}

	// Close database connection
	if c.DB != nil {
		if err := infrastructure.CloseDatabase(c.DB); err != nil {
			errs = append(errs, fmt.Errorf("failed to close database: %w", err))
		}
	}

	return errors.Join(errs...)
}
