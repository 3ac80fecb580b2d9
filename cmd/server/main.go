package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/lenslate/lenslate/internal/api"
	"github.com/lenslate/lenslate/internal/browser"
	"github.com/lenslate/lenslate/internal/config"
	"github.com/lenslate/lenslate/internal/translate"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// Banner
	log.Printf("Starting %s v%s", config.AppName, config.Version)

	// Chromium setup
	chromeBin, err := browser.InstallChromium(context.Background(), cfg.ChromeRevision)
	if err != nil {
		log.Fatalf("Failed to install Chromium: %v", err)
	}

	pool := browser.NewPool(browser.LaunchConfig{
		Headless: cfg.Headless,
		Proxy:    cfg.ProxyServer(),
		Bin:      chromeBin,
	}, cfg.BrowserPool)
	defer pool.Shutdown()

	translator := translate.New(translate.Config{
		WorkDir: cfg.WorkDir,
		Delay: translate.Delay{
			Min: cfg.NaturalDelayMin,
			Max: cfg.NaturalDelayMax,
		},
	}, pool)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      config.AppName,
		ErrorHandler: api.ErrorHandler,
		BodyLimit:    32 * 1024 * 1024,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New())

	// Setup routes
	handler := api.NewHandler(translator, cfg.DebugErrors)
	api.SetupRoutes(app, handler, cfg.APIKey)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("Shutting down server...")
		if err := app.Shutdown(); err != nil {
			log.Printf("Error during shutdown: %v", err)
		}
	}()

	// Start server
	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	log.Printf("Starting server on %s", addr)
	if cfg.TorEnabled {
		log.Printf("Routing browser traffic through %s", cfg.TorSocksProxy)
	}

	if err := app.Listen(addr); err != nil {
		log.Fatalf("Server failed: %v", err)
	}

	log.Println("Server stopped")
}
