package container

import (
	"context"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"devevent-backend/internal/config"
	infraCache "devevent-backend/internal/infrastructure/cache"
	"devevent-backend/internal/infrastructure/database"
	"devevent-backend/internal/infrastructure/storage"
	"devevent-backend/pkg/cache"

	bookingHandler "devevent-backend/internal/domains/booking/handler"
	bookingRepo "devevent-backend/internal/domains/booking/repository"
	bookingService "devevent-backend/internal/domains/booking/service"
	eventHandler "devevent-backend/internal/domains/event/handler"
	eventRepo "devevent-backend/internal/domains/event/repository"
	eventService "devevent-backend/internal/domains/event/service"
)

// ========================================
// CONTAINER STRUCT
// ========================================

// Container chứa toàn bộ dependencies của application, dùng chung cho api và worker
type Container struct {
	// ========================================
	// INFRASTRUCTURE LAYER
	// ========================================

	Config         *config.Config
	DB             *database.Manager
	Redis          *infraCache.RedisClient // nil khi Redis không kết nối được
	Cache          cache.Cache             // nil khi Redis không kết nối được
	Storage        *storage.MinIOStorage
	ImageProcessor *storage.ImageProcessor
	AsynqClient    *asynq.Client

	// ========================================
	// REPOSITORY LAYER
	// ========================================

	EventRepo   eventRepo.EventRepository
	BookingRepo bookingRepo.BookingRepository

	// ========================================
	// SERVICE LAYER
	// ========================================

	EventService   eventService.ServiceInterface
	BookingService bookingService.ServiceInterface

	// ========================================
	// HANDLER LAYER
	// ========================================

	EventHandler   *eventHandler.EventHandler
	BookingHandler *bookingHandler.BookingHandler
}

// ========================================
// CONSTRUCTOR: BUILD CONTAINER
// ========================================

// NewContainer build dependency graph theo thứ tự:
// config -> infrastructure -> repositories -> services -> handlers
func NewContainer() (*Container, error) {
	log.Info().Msg("Initializing DI container...")

	c := &Container{}

	// ========================================
	// STEP 1: LOAD CONFIGURATION
	// ========================================
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg
	log.Info().Str("environment", cfg.App.Environment).Msg("Config loaded")

	// ========================================
	// STEP 2: DATABASE
	// ========================================
	if err := c.initDatabase(); err != nil {
		c.Cleanup()
		return nil, err
	}

	// ========================================
	// STEP 3: REDIS CACHE (non-critical)
	// ========================================
	c.initCache()

	// ========================================
	// STEP 4: IMAGE HOST + QUEUE
	// ========================================
	if err := c.initStorage(); err != nil {
		c.Cleanup()
		return nil, err
	}

	c.AsynqClient = asynq.NewClient(asynq.RedisClientOpt{
		Addr:     cfg.Queue.RedisAddr,
		Password: cfg.Redis.Password,
	})

	// ========================================
	// STEP 5: DOMAINS
	// ========================================
	c.initRepositories()
	c.initServices()
	c.initHandlers()

	log.Info().Msg("DI container initialized successfully")
	return c, nil
}

// ========================================
// PRIVATE INITIALIZATION METHODS
// ========================================

func (c *Container) initDatabase() error {
	dbConfig, err := config.LoadDatabaseConfig(c.Config.Database.URL)
	if err != nil {
		return fmt.Errorf("failed to load database config: %w", err)
	}

	c.DB = database.NewPostgresManager(dbConfig)

	// Connect sớm để fail fast khi database không tới được
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := c.DB.HealthCheck(ctx); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	log.Info().Msg("Database connected")
	return nil
}

func (c *Container) initCache() {
	client := infraCache.NewRedisClient(
		c.Config.Redis.Host,
		c.Config.Redis.Password,
		c.Config.Redis.DB,
	)

	if err := client.Connect(context.Background()); err != nil {
		// Feed cache là optional, service fallback về database
		log.Warn().Err(err).Msg("Redis connection failed (non-critical), feed cache disabled")
		_ = client.Close()
		return
	}

	c.Redis = client
	c.Cache = infraCache.NewRedisCache(client)
}

func (c *Container) initStorage() error {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	minioStorage, err := storage.NewMinIOStorage(ctx, c.Config.MinIO)
	if err != nil {
		return fmt.Errorf("failed to init image storage: %w", err)
	}

	c.Storage = minioStorage
	c.ImageProcessor = storage.NewImageProcessor(c.Config.Upload.MaxImageBytes)
	log.Info().Str("bucket", c.Config.MinIO.Bucket).Msg("Image storage ready")
	return nil
}

func (c *Container) initRepositories() {
	c.EventRepo = eventRepo.NewPostgresEventRepository(c.DB)
	c.BookingRepo = bookingRepo.NewPostgresBookingRepository(c.DB)
}

func (c *Container) initServices() {
	c.EventService = eventService.NewEventService(
		c.EventRepo,
		c.Storage,
		c.ImageProcessor,
		c.Cache, // nil interface khi cache disabled
		c.AsynqClient,
		eventService.Options{
			Folder:        c.Config.Upload.Folder,
			UploadTimeout: c.Config.Upload.Timeout,
			HomeLimit:     c.Config.Feed.HomeLimit,
			FeedCacheTTL:  c.Config.Feed.CacheTTL,
		},
	)

	// Booking chỉ cần capability Exists của event domain
	c.BookingService = bookingService.NewBookingService(c.BookingRepo, c.EventService)
}

func (c *Container) initHandlers() {
	c.EventHandler = eventHandler.NewEventHandler(c.EventService, c.Config.Upload.MaxImageBytes)
	c.BookingHandler = bookingHandler.NewBookingHandler(c.BookingService)
}

// Cleanup dọn dẹp resources khi shutdown
func (c *Container) Cleanup() {
	log.Info().Msg("Cleaning up container resources...")

	if c.AsynqClient != nil {
		if err := c.AsynqClient.Close(); err != nil {
			log.Warn().Err(err).Msg("Failed to close asynq client")
		}
	}

	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			log.Warn().Err(err).Msg("Failed to close Redis")
		}
	}

	if c.DB != nil {
		c.DB.Close()
		log.Info().Msg("Database connections closed")
	}
}
