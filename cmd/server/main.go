package main

import (
	"fmt"
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"socialscope/internal/apify"
	"socialscope/internal/config"
	"socialscope/internal/export"
	"socialscope/internal/handlers"
	"socialscope/internal/scraper"
	"socialscope/internal/storage"
	"socialscope/internal/tasks"
	"socialscope/internal/version"
)

func main() {
	// Load .env if present; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := storage.Open(cfg.DBPath)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	client := apify.NewClient(cfg.APIBaseURL, cfg.APIToken)
	poller := apify.NewPoller(client)
	registry := tasks.NewRegistry()
	store := storage.NewSnapshotStore(cfg.DataDir)
	history := storage.NewHistoryRepository(db)

	svc := scraper.NewService(
		client,
		poller,
		registry,
		store,
		history,
		export.NewExporter(),
		scraper.Actors{YouTube: cfg.YouTubeActor, Instagram: cfg.InstagramActor},
		[]string{export.FormatJSON, export.FormatCSV, export.FormatHTML},
	)

	e := echo.New()
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	scrapeHandler := handlers.NewScrapeHandler(svc)
	taskHandler := handlers.NewTaskHandler(registry)
	dataHandler := handlers.NewDataHandler(store)
	historyHandler := handlers.NewHistoryHandler(history)
	configHandler := handlers.NewConfigHandler(cfg)

	e.POST("/api/scrape/:platform", scrapeHandler.Start)
	e.GET("/api/tasks/:id", taskHandler.Get)
	e.GET("/api/data/list", dataHandler.List)
	e.GET("/api/data/*", dataHandler.Get)
	e.GET("/api/history", historyHandler.List)
	e.GET("/api/config", configHandler.Get)
	e.GET("/api/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{
			"status":  "ok",
			"version": version.Version,
		})
	})

	log.Printf("Starting socialscope v%s on port %s", version.Version, cfg.Port)
	if err := e.Start(fmt.Sprintf(":%s", cfg.Port)); err != nil {
		log.Fatal(err)
	}
}
