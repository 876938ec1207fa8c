package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"figuremaker/internal/common/config"
	"figuremaker/internal/common/middleware"
	"figuremaker/internal/figure/handlers"
	"figuremaker/internal/figure/repository"
	"figuremaker/internal/figure/service"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/log"
	"github.com/gofiber/fiber/v3/middleware/recover"
)

// ============================================================
// Figure Editor Service
// ============================================================

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	log.SetLevel(logLevel(cfg.LogLevel))

	db, err := repository.OpenSQLite(cfg.DBPath)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer db.Close()

	repo := repository.New(db)
	if err := repo.Init(context.Background(), cfg.MigrationsPath); err != nil {
		log.Fatalf("init db: %v", err)
	}

	workspaces := service.NewManager(repo)
	fileStorage := service.NewFileStorage(cfg.UploadsPath)
	documentHandler := handlers.NewDocumentHandler(workspaces, fileStorage, cfg.CanvasWidth, cfg.CanvasHeight)

	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Second,
		BodyLimit:    cfg.BodyLimitMB * 1024 * 1024,
		AppName:      "Figure Editor",
	})

	// ============================================================
	// Global Middleware
	// ============================================================

	app.Use(recover.New())
	app.Use(middleware.Logger())
	app.Use(middleware.CORS(cfg.Environment == "production", splitList(cfg.AllowOrigins)))

	handlers.Register(app, documentHandler)

	// ============================================================
	// Server Start
	// ============================================================

	addr := fmt.Sprintf(":%s", cfg.Port)
	log.Infof("Starting Figure Editor on %s (env: %s)", addr, cfg.Environment)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func logLevel(name string) log.Level {
	switch strings.ToLower(name) {
	case "trace":
		return log.LevelTrace
	case "debug":
		return log.LevelDebug
	case "warn", "warning":
		return log.LevelWarn
	case "error":
		return log.LevelError
	}
	return log.LevelInfo
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
