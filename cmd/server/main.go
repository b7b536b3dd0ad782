package main

import (
	"fmt"
	"log"
	"os"

	"github.com/convenuence/backend/config"
	httpDelivery "github.com/convenuence/backend/internal/delivery/http"
	"github.com/convenuence/backend/internal/domain"
	"github.com/convenuence/backend/internal/infrastructure/foursquare"
	"github.com/convenuence/backend/internal/infrastructure/kvstore"
	"github.com/convenuence/backend/internal/infrastructure/venuecache"
	"github.com/convenuence/backend/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting ConVenuence Backend v1.0.0")
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Port: %s", cfg.Server.Port)
	log.Printf("Store Type: %s", cfg.Store.Type)

	// Initialize infrastructure dependencies
	var store domain.KeyValueStore
	switch cfg.Store.Type {
	case "file":
		fileStore, err := kvstore.NewFileStore(cfg.Store.Path)
		if err != nil {
			log.Fatalf("Failed to open file store at %s: %v", cfg.Store.Path, err)
		}
		store = fileStore
		log.Printf("File store path: %s", cfg.Store.Path)
	default:
		store = kvstore.NewMemoryStore()
	}

	cache := venuecache.NewRepository(store)

	apiClient := foursquare.NewClient(foursquare.Config{
		APIKey:     cfg.Foursquare.APIKey,
		BaseURL:    cfg.Foursquare.BaseURL,
		MaxRetries: cfg.Foursquare.MaxRetries,
		RetryDelay: cfg.Foursquare.RetryDelay,
		Timeout:    cfg.Foursquare.Timeout,
	})

	log.Printf("Foursquare API configured: %s (retries: %d, delay: %s)",
		cfg.Foursquare.BaseURL, cfg.Foursquare.MaxRetries, cfg.Foursquare.RetryDelay)

	// Initialize usecase layer
	venueService := usecase.NewVenueService(apiClient, cache)

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(venueService)

	// Setup router
	router := httpDelivery.SetupRouter(cfg, handler)

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("Server listening on %s", addr)

	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func init() {
	// Set log flags for better debugging
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stdout)
}
