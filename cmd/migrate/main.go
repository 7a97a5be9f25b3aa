package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/ogurasousui/codex-user-greeter/internal/platform/config"
	"github.com/ogurasousui/codex-user-greeter/internal/platform/logging"
)

// migrator は *migrate.Migrate のうち、このコマンドが使う操作だけを切り出したものです。
type migrator interface {
	Up() error
	Down() error
	Drop() error
	Version() (uint, bool, error)
	Close() (error, error)
}

func main() {
	var (
		configPath    = flag.String("config", "", "path to config file (defaults to CONFIG_PATH env or assets/local.yaml)")
		migrationsDir = flag.String("dir", "assets/migrations", "directory containing greeting journal migrations")
	)
	flag.Parse()

	action := "up"
	if flag.NArg() > 0 {
		action = flag.Arg(0)
	}

	cfgPath := effectiveConfigPath(*configPath)
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := logging.New(cfg.Log, os.Stderr)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}

	if !cfg.Journal.Enabled {
		logger.Error("greeting journal is disabled; nothing to migrate", "config", cfgPath)
		os.Exit(1)
	}

	m, err := openMigrator(*migrationsDir, cfg.Database.DSN())
	if err != nil {
		logger.Error("failed to open migrations", "dir", *migrationsDir, "error", err)
		os.Exit(1)
	}

	err = apply(action, m, logger)
	if srcErr, dbErr := m.Close(); srcErr != nil || dbErr != nil {
		logger.Warn("failed to close migrator", "source_error", srcErr, "database_error", dbErr)
	}
	if err != nil {
		logger.Error("migration failed", "action", action, "error", err)
		os.Exit(1)
	}

	logger.Info("migration completed", "action", action)
}

func effectiveConfigPath(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if env := os.Getenv("CONFIG_PATH"); env != "" {
		return env
	}
	return "assets/local.yaml"
}

func openMigrator(dir, dsn string) (*migrate.Migrate, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve path for %s: %w", dir, err)
	}

	m, err := migrate.New("file://"+filepath.ToSlash(absDir), dsn)
	if err != nil {
		return nil, fmt.Errorf("create migrate instance: %w", err)
	}
	return m, nil
}

// apply は action に応じて greetings テーブルのマイグレーションを実行します。
// 適用済み・未適用で変化がない場合はエラーにしません。
func apply(action string, m migrator, logger *slog.Logger) error {
	switch action {
	case "up":
		return ignoreNoChange(m.Up(), logger)
	case "down":
		return ignoreNoChange(m.Down(), logger)
	case "drop":
		return m.Drop()
	case "version":
		version, dirty, err := m.Version()
		if errors.Is(err, migrate.ErrNilVersion) {
			logger.Info("no migration applied")
			return nil
		}
		if err != nil {
			return err
		}
		logger.Info("current migration", "version", version, "dirty", dirty)
		if dirty {
			return fmt.Errorf("schema version %d is dirty", version)
		}
		return nil
	default:
		return fmt.Errorf("unsupported action %q", action)
	}
}

func ignoreNoChange(err error, logger *slog.Logger) error {
	if errors.Is(err, migrate.ErrNoChange) {
		logger.Info("schema already up to date")
		return nil
	}
	return err
}
