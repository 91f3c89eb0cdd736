package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/fortuna/cedar/internal/api/rest"
	"github.com/fortuna/cedar/internal/api/websocket"
	"github.com/fortuna/cedar/internal/cache"
	"github.com/fortuna/cedar/internal/league"
	"github.com/fortuna/cedar/internal/scheduler"
	"github.com/fortuna/cedar/internal/scrape"
)

const (
	serviceName    = "cedar"
	serviceVersion = "1.0"
)

func main() {
	log.Printf("Starting %s v%s - Lebanese Basketball League Live Data Service", serviceName, serviceVersion)

	// Load configuration from environment
	config := loadConfig()

	// Page fetcher, optionally backed by a headless browser
	client := scrape.NewClient(config.BaseURL, config.UserAgent)
	if config.EnableBrowserFetch {
		browser := scrape.NewBrowserFetcher(config.UserAgent)
		defer browser.Close()
		client.WithBrowser(browser)
		log.Println("✓ Headless-browser fallback enabled")
	}

	// In-memory snapshot cache, primed empty
	leagueCache := league.NewCache()

	// Optional Redis warm-start store
	var store scheduler.SnapshotStore
	if config.RedisURL != "" {
		redisStore, err := cache.NewSnapshotStore(config.RedisURL)
		if err != nil {
			log.Printf("⚠️  Redis unavailable: %v (continuing without warm start)", err)
		} else {
			defer redisStore.Close()
			store = redisStore
			log.Println("✓ Connected to Redis")
		}
	}

	// Websocket hub for live snapshot pushes
	hub := websocket.NewHub()
	go hub.Run()

	// Refresh orchestrator
	schedulerConfig := &scheduler.Config{
		RefreshInterval: config.RefreshInterval,
	}
	orchestrator := scheduler.NewOrchestrator(client, leagueCache, store, hub, schedulerConfig)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go orchestrator.Start(ctx)
	log.Println("✓ Refresh loop started")

	// REST API server
	restServer := rest.NewServer(config.Port, leagueCache, orchestrator, hub.Handler())
	go func() {
		if err := restServer.Start(); err != nil {
			log.Printf("REST server error: %v", err)
		}
	}()

	log.Printf("✓ API listening on :%s", config.Port)

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	log.Println("Shutting down cedar gracefully...")

	cancel()
	orchestrator.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := restServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("REST server shutdown error: %v", err)
	}

	log.Println("cedar stopped")
}

type Config struct {
	Port               string
	BaseURL            string
	UserAgent          string
	RedisURL           string
	RefreshInterval    time.Duration
	EnableBrowserFetch bool
}

func loadConfig() Config {
	return Config{
		Port:               getEnv("PORT", "5000"),
		BaseURL:            getEnv("BASE_URL", scrape.DefaultBaseURL),
		UserAgent:          getEnv("USER_AGENT", scrape.UserAgent),
		RedisURL:           getEnv("REDIS_URL", ""),
		RefreshInterval:    time.Duration(getEnvInt("REFRESH_INTERVAL", 300)) * time.Second,
		EnableBrowserFetch: getEnv("ENABLE_BROWSER_FETCH", "false") == "true",
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil && n > 0 {
			return n
		}
	}
	return defaultValue
}
