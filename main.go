package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"laptopstore/internal/config"
	"laptopstore/internal/handlers"
	"laptopstore/internal/middleware"
	"laptopstore/internal/repositories"
	"laptopstore/internal/services"
	"laptopstore/pkg/database"
	"laptopstore/pkg/rabbitmq"
)

// Server is the wired application plus the handles it owns.
type Server struct {
	App *fiber.App
	// MQ is nil when RABBITMQ_URL is unset.
	MQ      *rabbitmq.Client
	closers []func() error
}

// Close releases every handle opened by NewApp, last opened first.
func (s *Server) Close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](); err != nil {
			log.Printf("Error during close: %v", err)
		}
	}
	s.closers = nil
}

// NewApp builds storage, cache, event publishing and routes from cfg.
func NewApp(cfg config.Config) (*Server, error) {
	srv := &Server{}

	repo, err := srv.openRepository(cfg)
	if err != nil {
		srv.Close()
		return nil, err
	}

	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := client.Ping(ctx).Err()
		cancel()
		if err != nil {
			client.Close()
			srv.Close()
			return nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}
		srv.closers = append(srv.closers, client.Close)
		repo = repositories.NewCachedLaptopRepository(repo, client, cfg.CacheTTL)
		log.Printf("Laptop read cache enabled (Redis %s, ttl %s)", cfg.RedisAddr, cfg.CacheTTL)
	}

	var publisher services.EventPublisher
	if cfg.RabbitMQURL != "" {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL})
		if err != nil {
			srv.Close()
			return nil, fmt.Errorf("failed to initialize RabbitMQ client: %w", err)
		}
		srv.closers = append(srv.closers, mqClient.Close)
		srv.MQ = mqClient
		publisher = mqClient
	}

	// --- Services and handlers ---
	laptopService := services.NewLaptopService(repo, publisher)
	laptopHandler := handlers.NewLaptopHandler(laptopService)

	app := fiber.New(fiber.Config{AppName: "laptopstore"})

	// --- Middleware ---
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${locals:requestid} ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(middleware.StaticCORS(cfg.CORSAllowOrigin))

	// --- Routes ---
	laptopHandler.RegisterRoutes(app)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status":  "healthy",
			"time":    time.Now().Format(time.RFC3339),
			"storage": cfg.StorageBackend,
		})
	})

	app.Use(middleware.NotFound())

	srv.App = app
	return srv, nil
}

func (s *Server) openRepository(cfg config.Config) (repositories.LaptopRepository, error) {
	dbCfg := database.Config{Driver: cfg.DatabaseDriver, DSN: cfg.DatabaseURL}

	switch cfg.StorageBackend {
	case config.BackendGORM:
		db, err := database.OpenGORM(dbCfg)
		if err != nil {
			return nil, fmt.Errorf("failed to open database: %w", err)
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get sql db: %w", err)
		}
		s.closers = append(s.closers, sqlDB.Close)
		return repositories.NewGORMLaptopRepository(db), nil
	case config.BackendSQL:
		db, err := database.OpenSQL(dbCfg)
		if err != nil {
			return nil, fmt.Errorf("failed to open database: %w", err)
		}
		s.closers = append(s.closers, db.Close)
		return repositories.NewSQLLaptopRepository(db), nil
	case config.BackendMemory:
		log.Println("Using in-memory laptop storage; data is lost on exit")
		return repositories.NewMockLaptopRepository(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}
}

func main() {
	// --- Configuration ---
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	srv, err := NewApp(cfg)
	if err != nil {
		log.Fatalf("Failed to create app: %v", err)
	}

	if srv.MQ != nil {
		if err := srv.MQ.ConsumeLaptopEvents(rabbitmq.LogLaptopEvent); err != nil {
			log.Printf("Failed to start RabbitMQ consumer: %v", err)
		}
	}

	log.Printf("Starting server on port %s", cfg.AppPort)
	if err := srv.App.Listen(cfg.AppPort); err != nil {
		srv.Close()
		log.Fatalf("Server failed to start: %v", err)
	}
}
