package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sanchari2023/AIFinverse-v8-sub000/internal/backend"
	"github.com/sanchari2023/AIFinverse-v8-sub000/internal/config"
	"github.com/sanchari2023/AIFinverse-v8-sub000/internal/database"
	"github.com/sanchari2023/AIFinverse-v8-sub000/internal/handlers"
	"github.com/sanchari2023/AIFinverse-v8-sub000/internal/routes"
	"github.com/sanchari2023/AIFinverse-v8-sub000/internal/services"
	"github.com/sanchari2023/AIFinverse-v8-sub000/internal/store"
)

func main() {
	// Parse command line flags
	configFile := flag.String("config", "config.yaml", "Path to configuration file")
	flag.Parse()

	// Load .env before the config so environment overrides apply
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on config file and environment")
	}

	// Load configuration
	cfg, err := config.LoadConfig(*configFile)
	if err != nil {
		log.Fatalf("Failed to load config from %s: %v", *configFile, err)
	}
	if cfg.Backend.BaseURL == "" {
		log.Fatal("backend.base_url is required (config file or AIFINVERSE_BACKEND_URL)")
	}

	// Initialize database
	if err := database.InitDatabase(cfg.Database.DSN); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	// Set up the preference cache store
	prefStore := buildStore(cfg)

	// Set up the backend client
	client := backend.NewHTTPClient(cfg.Backend.BaseURL, time.Duration(cfg.Backend.TimeoutSeconds)*time.Second)

	// Set up Gin
	gin.SetMode(gin.ReleaseMode)
	r := gin.Default()

	// Add middleware
	r.Use(gin.Logger())
	r.Use(gin.Recovery())

	// Set up the handler and routes
	pageHandler := handlers.NewPageHandler(client, prefStore, &cfg.Alerts)
	handlers.SetGlobalHandler(pageHandler)
	routes.SetupRoutes(r)

	// Start background jobs
	scheduler := services.NewJobScheduler(client, prefStore)
	if err := scheduler.Start(cfg.Jobs.CompanyRefresh, cfg.Jobs.ShareSweep); err != nil {
		log.Fatalf("Failed to start job scheduler: %v", err)
	}
	defer scheduler.Stop()

	// Start server
	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	log.Printf("Starting server on %s", addr)
	log.Printf("Alerts pages: http://%s/api/v1/alerts/{india|us}", addr)
	log.Printf("Health check: http://%s/health", addr)

	if err := r.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// buildStore selects the preference cache backend from configuration
func buildStore(cfg *config.Config) store.PreferenceStore {
	switch cfg.Cache.Backend {
	case "redis":
		log.Printf("Using Redis preference cache at %s", cfg.Cache.RedisAddr)
		return store.NewRedisStore(cfg.Cache.RedisAddr)
	case "memory":
		log.Println("Using in-memory preference cache")
		return store.NewMemoryStore()
	default:
		return store.NewSQLiteStore(database.GetDB())
	}
}
