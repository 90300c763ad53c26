package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/MaximJrr/drf-movies/internal/config"
	"github.com/MaximJrr/drf-movies/internal/lib/logger"
	"github.com/MaximJrr/drf-movies/internal/storage/postgres"
)

const version = "1.0.0"

func main() {
	cfgPath := flag.String("config", "config/local.yml", "path to config file")

	flag.Parse()
	cfg := config.MustLoad(*cfgPath)
	log := logger.SetupLogger(cfg.Debug)
	if err := postgres.Migrate(cfg.DB.Dsn); err != nil {
		panic(err)
	}
	log.Info("migrations applied")
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	storage, err := postgres.New(ctx, cfg.DB.Dsn, cfg.DB.MaxConns, cfg.DB.MaxConnIdleTime)
	if err != nil {
		panic(err)
	}
	defer storage.Conn.Close()
	log.Info("database connection established")
	app := NewApplication(cfg, log, storage)
	app.bgTasks.Run()
	if err := app.serve(); err != nil {
		log.Error("shutting down the server", "reason", err.Error())
		os.Exit(1)
	}
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancelShutdown()
	app.bgTasks.Shutdown(shutdownCtx)
}
