package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"employee-service/internal/config"
	"employee-service/internal/core"
	"employee-service/internal/handler"
	"employee-service/internal/logging"
	"employee-service/internal/metrics"
	"employee-service/internal/middleware"
	"employee-service/internal/platform/kafka"
	"employee-service/internal/platform/memory"
	natspub "employee-service/internal/platform/nats"
	"employee-service/internal/platform/postgres"
	"employee-service/internal/service"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/nats-io/nats.go"
	_ "go.uber.org/automaxprocs"
)

// go build -ldflags "-X main.Version=x.y.z"
var (
	Name    = "employee-service"
	Version = "dev"

	flagconf string
)

func init() {
	flag.StringVar(&flagconf, "conf", os.Getenv("CONFIG_PATH"), "config path, eg: -conf configs/config.yaml")
}

func main() {
	flag.Parse()

	cfg, err := config.LoadOptional(flagconf)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.New(cfg.Log, Name, Version)
	helper := log.NewHelper(log.With(logger, "module", "main"))

	if err := run(cfg, logger, helper); err != nil {
		helper.Errorf("server stopped: %v", err)
		os.Exit(1)
	}
	helper.Info("server stopped gracefully")
}

func run(cfg *config.Config, logger log.Logger, helper *log.Helper) error {
	ctx := context.Background()
	checks := make(map[string]handler.HealthCheck)

	repo, db, err := initStore(ctx, cfg.Store, helper)
	if err != nil {
		return err
	}
	if db != nil {
		defer db.Close()
		checks["database"] = db.PingContext
	}

	m := metrics.New("employee_service")

	publisher, nc, err := initPublisher(cfg.Broker, logger, helper)
	if err != nil {
		return err
	}
	if nc != nil {
		defer nc.Close()
		checks["nats"] = func(context.Context) error {
			if !nc.IsConnected() {
				return fmt.Errorf("connection status %s", nc.Status())
			}
			return nil
		}
	}
	publisher = metrics.InstrumentPublisher(publisher, m)
	defer func() {
		if err := publisher.Close(); err != nil {
			helper.Warnf("close publisher: %v", err)
		}
	}()

	// Initialize service and handlers
	employeeSvc := service.NewEmployeeService(repo, publisher, logger)
	router := handler.NewRouter(
		handler.NewHandler(employeeSvc, logger),
		handler.NewHealthHandler(checks),
		handler.RouterOptions{
			RequestTimeout: cfg.Server.RequestTimeout,
			Auth:           middleware.JWTAuth(cfg.Auth.JWTSecret),
			Metrics:        m,
			Logger:         logger,
		},
	)

	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		helper.Infof("server listening on %s (store=%s, broker=%s)", cfg.Server.Addr, cfg.Store.Driver, cfg.Broker.Driver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return fmt.Errorf("listen: %w", err)
	case sig := <-quit:
		helper.Infof("received %s, shutting down", sig)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// initStore returns the configured repository, plus the database handle when
// one was opened.
func initStore(ctx context.Context, cfg config.StoreConfig, helper *log.Helper) (core.Repository, *sql.DB, error) {
	if cfg.Driver == config.StoreDriverMemory {
		helper.Warn("using in-memory store, data is lost on restart")
		return memory.NewStore(), nil, nil
	}

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	db, err := postgres.Open(connectCtx, cfg)
	if err != nil {
		return nil, nil, err
	}

	if cfg.MigrateOnStart {
		if err := postgres.Migrate(db); err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		helper.Info("database migrations completed")
	}

	return postgres.NewRepository(db), db, nil
}

// initPublisher returns the configured event publisher, plus the NATS
// connection when one was dialed.
func initPublisher(cfg config.BrokerConfig, logger log.Logger, helper *log.Helper) (core.EventPublisher, *nats.Conn, error) {
	switch cfg.Driver {
	case config.BrokerDriverKafka:
		helper.Infof("publishing to kafka topic %s on %v", cfg.Topic, cfg.Brokers)
		return kafka.NewProducer(cfg, logger), nil, nil
	case config.BrokerDriverNATS:
		nc, err := natspub.Connect(cfg.NATSURL, logger)
		if err != nil {
			return nil, nil, err
		}
		helper.Infof("publishing to nats subject %s", cfg.Topic)
		return natspub.NewPublisher(nc, cfg.Topic, logger), nc, nil
	default:
		helper.Warn("event publishing disabled")
		return kafka.NewNoOpProducer(), nil, nil
	}
}
