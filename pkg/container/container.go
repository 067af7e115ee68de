package container

import (
	"context"
	"fmt"
	"time"

	"library-catalog/internal/config"
	infraCache "library-catalog/internal/infrastructure/cache"
	"library-catalog/internal/infrastructure/database"
	"library-catalog/pkg/cache"
	"library-catalog/pkg/logger"

	"library-catalog/internal/domains/author"
	authorHandler "library-catalog/internal/domains/author/handler"
	authorRepo "library-catalog/internal/domains/author/repository"
	authorService "library-catalog/internal/domains/author/service"

	"library-catalog/internal/domains/genre"
	genreHandler "library-catalog/internal/domains/genre/handler"
	genreRepo "library-catalog/internal/domains/genre/repository"
	genreService "library-catalog/internal/domains/genre/service"

	"library-catalog/internal/domains/book"
	bookHandler "library-catalog/internal/domains/book/handler"
	bookRepo "library-catalog/internal/domains/book/repository"
	bookService "library-catalog/internal/domains/book/service"

	"library-catalog/internal/domains/bookinstance"
	instanceHandler "library-catalog/internal/domains/bookinstance/handler"
	instanceRepo "library-catalog/internal/domains/bookinstance/repository"
	instanceService "library-catalog/internal/domains/bookinstance/service"
)

// Container is the root of the dependency graph. Everything in it is a
// singleton wired at startup: config, then infrastructure, then
// repositories, services and handlers.
type Container struct {
	Config *config.Config
	DB     *database.PostgresDB
	Cache  cache.Cache

	AuthorRepo   author.Repository
	GenreRepo    genre.Repository
	BookRepo     book.Repository
	InstanceRepo bookinstance.Repository

	AuthorService   author.Service
	GenreService    genre.Service
	BookService     book.Service
	InstanceService bookinstance.Service

	AuthorHandler   *authorHandler.AuthorHandler
	GenreHandler    *genreHandler.GenreHandler
	BookHandler     *bookHandler.BookHandler
	InstanceHandler *instanceHandler.BookInstanceHandler
}

// NewContainer builds the full dependency graph. A database failure is
// fatal; a cache failure is logged and the app continues without warm
// caches, since every repository treats the cache as best effort.
func NewContainer() (*Container, error) {
	c := &Container{}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg
	logger.Info("configuration loaded", map[string]interface{}{
		"environment": cfg.App.Environment,
	})

	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load database config: %w", err)
	}

	db := database.NewPostgresDB(dbConfig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.HealthCheck(context.Background()); err != nil {
		return nil, fmt.Errorf("database health check failed: %w", err)
	}
	c.DB = db
	logger.Info("database connected", nil)

	c.Cache = infraCache.NewRedisCache(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
	if err := c.Cache.Ping(context.Background()); err != nil {
		logger.Warn("redis unavailable, continuing without cache", map[string]interface{}{
			"error": err.Error(),
		})
	} else {
		logger.Info("redis connected", nil)
	}

	c.initRepositories()
	c.initServices()
	c.initHandlers()

	return c, nil
}

func (c *Container) initRepositories() {
	pool := c.DB.Pool

	c.AuthorRepo = authorRepo.NewPostgresRepository(pool, c.Cache)
	c.GenreRepo = genreRepo.NewPostgresRepository(pool, c.Cache)
	c.BookRepo = bookRepo.NewPostgresRepository(pool, c.Cache)
	c.InstanceRepo = instanceRepo.NewPostgresRepository(pool, c.Cache)
}

func (c *Container) initServices() {
	c.AuthorService = authorService.NewAuthorService(c.AuthorRepo)
	c.GenreService = genreService.NewGenreService(c.GenreRepo)
	c.BookService = bookService.NewBookService(c.BookRepo)
	c.InstanceService = instanceService.NewBookInstanceService(c.InstanceRepo)
}

func (c *Container) initHandlers() {
	c.AuthorHandler = authorHandler.NewAuthorHandler(c.AuthorService)
	c.GenreHandler = genreHandler.NewGenreHandler(c.GenreService)
	c.BookHandler = bookHandler.NewBookHandler(c.BookService)
	c.InstanceHandler = instanceHandler.NewBookInstanceHandler(c.InstanceService)
}

// Cleanup releases infrastructure resources during graceful shutdown.
func (c *Container) Cleanup() {
	if c.DB != nil {
		c.DB.Close()
		logger.Info("database connections closed", nil)
	}

	if c.Cache != nil {
		if err := infraCache.Close(c.Cache); err != nil {
			logger.Warn("failed to close redis client", map[string]interface{}{
				"error": err.Error(),
			})
		} else {
			logger.Info("redis client closed", nil)
		}
	}
}
