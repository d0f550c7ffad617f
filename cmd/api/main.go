package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"growth_analyzer/pkg/api"
	"growth_analyzer/pkg/core/app"
	"growth_analyzer/pkg/core/config"
	"growth_analyzer/pkg/core/logger"

	"github.com/joho/godotenv"
)

func main() {
	configPath := flag.String("config", config.DefaultPath, "path to app.yaml")
	flag.Parse()

	// Load environment variables
	godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Log.Fatalf("Failed to load config: %v", err)
	}
	if err := logger.InitLogger(cfg.Log.Level, cfg.Log.File); err != nil {
		logger.Log.Fatalf("Failed to open log file: %v", err)
	}
	log := logger.Component("main")

	if cfg.Credentials.Gemini == "" {
		log.Warn("GEMINI_API_KEY is not set; oracle calls will fail until it is provided")
	}

	svc, err := app.New(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize services: %v", err)
	}
	log.Infof("Loaded %d prompts, active provider %s", svc.Prompts.Count(), svc.Agents.GetActiveProvider())

	db := svc.Dashboard()
	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           api.NewRouter(db, svc.Agents),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Infof("API server starting on %s", cfg.Server.Addr)
		log.Info("  - GET  /api/stocks, POST /api/stocks, POST /api/stocks/select")
		log.Info("  - GET  /api/criteria, /api/panel, /api/chart")
		log.Info("  - GET  /api/config, POST /api/config/switch")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Info("Shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.WithError(err).Error("Graceful shutdown failed")
	}
	db.Wait()
}
