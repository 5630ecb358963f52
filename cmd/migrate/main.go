package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"employee-service/internal/config"
	"employee-service/internal/logging"
	"employee-service/internal/platform/postgres"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/golang-migrate/migrate/v4"
)

var (
	flagconf string
	dbURL    string
	command  string
	steps    int
)

func init() {
	flag.StringVar(&flagconf, "conf", os.Getenv("CONFIG_PATH"), "config path, eg: -conf configs/config.yaml")
	flag.StringVar(&dbURL, "database-url", "", "Database connection URL, overrides the config store url")
	flag.StringVar(&command, "command", "up", "Migration command: up, down, steps, version")
	flag.IntVar(&steps, "steps", 0, "Number of steps for steps (negative rolls back)")
}

func main() {
	flag.Parse()

	store, err := config.LoadStore(flagconf, dbURL)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.New(config.LogConfig{Level: os.Getenv("LOG_LEVEL")}, "employee-migrate", "dev")
	helper := log.NewHelper(log.With(logger, "module", "migrate"))

	if err := run(store, helper); err != nil {
		helper.Errorf("migration %s failed: %v", command, err)
		os.Exit(1)
	}
}

func run(cfg config.StoreConfig, helper *log.Helper) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := postgres.Open(ctx, cfg)
	if err != nil {
		return err
	}

	m, err := postgres.NewMigrator(db)
	if err != nil {
		_ = db.Close()
		return err
	}
	defer func() {
		_, _ = m.Close()
	}()

	switch command {
	case "up":
		helper.Info("applying all migrations up")
		return ignoreNoChange(m.Up())
	case "down":
		helper.Info("rolling back all migrations")
		return ignoreNoChange(m.Down())
	case "steps":
		if steps == 0 {
			return errors.New("-steps must be non-zero")
		}
		helper.Infof("migrating %d step(s)", steps)
		return ignoreNoChange(m.Steps(steps))
	case "version":
		version, dirty, err := m.Version()
		if errors.Is(err, migrate.ErrNilVersion) {
			helper.Info("no migrations applied yet")
			return nil
		}
		if err != nil {
			return err
		}
		helper.Infof("current version: %d (dirty: %v)", version, dirty)
		return nil
	default:
		return fmt.Errorf("unknown command %q", command)
	}
}

func ignoreNoChange(err error) error {
	if errors.Is(err, migrate.ErrNoChange) {
		return nil
	}
	return err
}
