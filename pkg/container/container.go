package container

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"eduresource-api/internal/config"
	"eduresource-api/internal/data"
	"eduresource-api/internal/infrastructure/database"
	"eduresource-api/pkg/jwt"
	"eduresource-api/pkg/logger"

	authorHandler "eduresource-api/internal/domains/author/handler"
	categoryHandler "eduresource-api/internal/domains/category/handler"
	materialHandler "eduresource-api/internal/domains/material/handler"
	reviewHandler "eduresource-api/internal/domains/review/handler"
	"eduresource-api/internal/domains/user"
	userHandler "eduresource-api/internal/domains/user/handler"
	userService "eduresource-api/internal/domains/user/service"
)

// Container holds every long-lived dependency of the API.
// Build order: config, database, store, services, handlers.
type Container struct {
	// Infrastructure
	Config     *config.Config
	DB         *database.DB // nil when built from an existing store
	Store      *data.Store
	JWTManager *jwt.Manager

	// Services
	AuthService user.Service

	// Handlers
	AuthHandler     *userHandler.AuthHandler
	AuthorHandler   *authorHandler.AuthorHandler
	CategoryHandler *categoryHandler.CategoryHandler
	MaterialHandler *materialHandler.MaterialHandler
	ReviewHandler   *reviewHandler.ReviewHandler
}

// NewContainer loads configuration from the environment and builds the
// full dependency graph.
func NewContainer() (*Container, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	logger.Init(cfg.App.Environment, cfg.App.LogLevel)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	return Build(ctx, cfg)
}

// Build opens the database, migrates and seeds it when configured to,
// and wires services and handlers.
func Build(ctx context.Context, cfg *config.Config) (*Container, error) {
	log.Info().Str("env", cfg.App.Environment).Msg("[CONTAINER] Initializing")

	db, err := database.Open(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.Ping(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	log.Info().Str("driver", cfg.Database.Driver).Msg("[CONTAINER] Database connected")

	if cfg.Database.AutoMigrate {
		if err := data.Migrate(ctx, db.SQL, db.Dialect); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to migrate database: %w", err)
		}
		log.Info().Msg("[CONTAINER] Schema migrated")
	}

	store := data.NewStore(db.SQL, db.Dialect)
	if err := Seed(ctx, cfg, store); err != nil {
		_ = db.Close()
		return nil, err
	}

	c := NewWithStore(cfg, store)
	c.DB = db

	log.Info().Msg("[CONTAINER] Initialized")
	return c, nil
}

// Seed runs the bootstrap seeder. A missing initial admin is only a
// warning so the API can still start against an empty database.
func Seed(ctx context.Context, cfg *config.Config, store *data.Store) error {
	seeder := data.NewSeeder(store, data.AdminAccount{
		Email:    cfg.InitialAdmin.Email,
		UserName: cfg.InitialAdmin.UserName,
		Password: cfg.InitialAdmin.Password,
	}, cfg.Security.BcryptCost)

	_, err := seeder.Seed(ctx)
	if errors.Is(err, data.ErrInitialAdminMissing) {
		log.Warn().Msg("[CONTAINER] Database is empty and INITIAL_ADMIN_* is not set, skipping seed")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to seed database: %w", err)
	}
	return nil
}

// NewWithStore wires services and handlers over an already prepared store.
func NewWithStore(cfg *config.Config, store *data.Store) *Container {
	c := &Container{
		Config:     cfg,
		Store:      store,
		JWTManager: jwt.NewManager(cfg.JWT.Secret, time.Duration(cfg.JWT.ExpiryHours)*time.Hour),
	}
	c.initServices()
	c.initHandlers()
	return c
}

func (c *Container) initServices() {
	c.AuthService = userService.NewAuthService(c.Store, c.JWTManager, c.Config.Security.BcryptCost)
}

func (c *Container) initHandlers() {
	c.AuthHandler = userHandler.NewAuthHandler(c.AuthService)
	c.AuthorHandler = authorHandler.NewAuthorHandler(c.Store)
	c.CategoryHandler = categoryHandler.NewCategoryHandler(c.Store)
	c.MaterialHandler = materialHandler.NewMaterialHandler(c.Store)
	c.ReviewHandler = reviewHandler.NewReviewHandler(c.Store)
}

// Cleanup releases the database connections.
func (c *Container) Cleanup() {
	if c.DB == nil {
		return
	}
	if err := c.DB.Close(); err != nil {
		log.Warn().Err(err).Msg("[CONTAINER] Failed to close database")
		return
	}
	log.Info().Msg("[CONTAINER] Database connections closed")
}
