package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/ogurasousui/codex-user-greeter/internal/adapters/repository/postgres"
	"github.com/ogurasousui/codex-user-greeter/internal/core/hello"
	"github.com/ogurasousui/codex-user-greeter/internal/core/user"
	"github.com/ogurasousui/codex-user-greeter/internal/platform/config"
	pg "github.com/ogurasousui/codex-user-greeter/internal/platform/db/postgres"
	"github.com/ogurasousui/codex-user-greeter/internal/platform/logging"
	"github.com/ogurasousui/codex-user-greeter/internal/platform/server"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "assets/local.yaml"
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := logging.New(cfg.Log, os.Stderr)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}

	var journal hello.Journal
	if cfg.Journal.Enabled {
		dbPool, err := pg.NewPool(ctx, cfg.Database)
		if err != nil {
			log.Fatalf("failed to initialize database pool: %v", err)
		}
		defer dbPool.Close()

		journal = postgres.NewGreetingRepository(dbPool, cfg.Journal.Retention)
		logger.Info("greeting journal enabled", "retention", cfg.Journal.Retention)
	}

	greeterSvc := hello.NewService(user.NewService(), journal, nil)
	grpcServer := server.New(cfg.Server.ListenAddr, greeterSvc, logger)

	if err := grpcServer.Run(ctx); err != nil {
		logger.Error("server stopped with error", "err", err)
		os.Exit(1)
	}
}
