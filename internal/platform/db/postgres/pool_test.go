package postgres

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/ogurasousui/codex-user-greeter/internal/platform/config"
)

func baseDatabaseConfig() config.DatabaseConfig {
	return config.DatabaseConfig{
		Host:     "localhost",
		Port:     15432,
		User:     "greeter",
		Password: "greeter",
		Name:     "greeter",
		SSLMode:  "disable",
	}
}

func TestBuildPoolConfig_AppliesJournalLimits(t *testing.T) {
	t.Parallel()

	dbCfg := baseDatabaseConfig()
	dbCfg.MaxOpenConns = 10
	dbCfg.MaxIdleConns = 2
	dbCfg.ConnMaxLifetime = 30 * time.Minute
	dbCfg.ConnMaxIdleTime = 5 * time.Minute

	poolCfg, err := BuildPoolConfig(dbCfg)
	if err != nil {
		t.Fatalf("BuildPoolConfig returned error: %v", err)
	}

	if poolCfg.MaxConns != 10 || poolCfg.MinConns != 2 {
		t.Errorf("unexpected conns max=%d min=%d", poolCfg.MaxConns, poolCfg.MinConns)
	}

	if poolCfg.MaxConnLifetime != 30*time.Minute || poolCfg.MaxConnIdleTime != 5*time.Minute {
		t.Errorf("unexpected lifetimes %v / %v", poolCfg.MaxConnLifetime, poolCfg.MaxConnIdleTime)
	}

	if poolCfg.ConnConfig.Database != "greeter" {
		t.Errorf("expected database greeter, got %s", poolCfg.ConnConfig.Database)
	}

	if got := poolCfg.ConnConfig.RuntimeParams["application_name"]; got != ApplicationName {
		t.Errorf("expected application_name %s, got %q", ApplicationName, got)
	}
}

func TestBuildPoolConfig_ClampsMinConns(t *testing.T) {
	t.Parallel()

	dbCfg := baseDatabaseConfig()
	dbCfg.MaxOpenConns = 3
	dbCfg.MaxIdleConns = 8

	poolCfg, err := BuildPoolConfig(dbCfg)
	if err != nil {
		t.Fatalf("BuildPoolConfig returned error: %v", err)
	}

	if poolCfg.MinConns != 3 {
		t.Fatalf("expected MinConns clamped to 3, got %d", poolCfg.MinConns)
	}
}

func TestNewPool_PingFailure(t *testing.T) {
	t.Parallel()

	dbCfg := baseDatabaseConfig()
	dbCfg.Host = "127.0.0.1"
	dbCfg.Port = 1

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	pool, err := NewPool(ctx, dbCfg)
	if err == nil {
		pool.Close()
		t.Fatal("expected ping error for unreachable database")
	}

	if !strings.Contains(err.Error(), "postgres: ping 127.0.0.1:1/greeter") {
		t.Fatalf("unexpected error: %v", err)
	}
}
