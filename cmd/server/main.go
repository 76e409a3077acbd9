package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"project-dashboard/bootstrap"
	"project-dashboard/config"
	"project-dashboard/db"
	"project-dashboard/events"
	"project-dashboard/handlers"
	"project-dashboard/logging"
	"project-dashboard/service"

	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "server:", err)
		os.Exit(1)
	}
}

type stores struct {
	employees   service.EmployeeStore
	projects    service.ProjectStore
	assignments service.AssignmentStore
	pinger      handlers.Pinger
	close       func(ctx context.Context) error
}

func run() error {
	if err := config.LoadDotEnv(); err != nil {
		return err
	}
	cfg, err := config.LoadServer()
	if err != nil {
		return err
	}
	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := openStores(ctx, cfg, logger.Named("db"))
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := st.close(closeCtx); err != nil {
			logger.Warn("close store", zap.Error(err))
		}
	}()

	var publisher events.Publisher = events.Noop{}
	if cfg.NATSURL != "" {
		nc, err := events.Connect(cfg.NATSURL, logger.Named("events"))
		if err != nil {
			return err
		}
		publisher = nc
	}
	defer publisher.Close()

	svcLogger := logger.Named("service")
	resolver := service.NewResolver(st.employees, st.projects)
	employees := service.NewEmployeeService(st.employees, nil, svcLogger)
	projects := service.NewProjectService(st.projects, nil, svcLogger)
	assignments := service.NewAssignmentService(st.assignments, resolver, publisher, nil, svcLogger)

	err = bootstrap.InsertInitialData(ctx, logger.Named("bootstrap"), cfg.EnableBootstrap, bootstrap.Services{
		Employees:   employees,
		Projects:    projects,
		Assignments: assignments,
	})
	if err != nil {
		logger.Error("bootstrap failed", zap.Error(err))
	}

	router := handlers.NewRouter(logger.Named("handlers"), handlers.Services{
		Assignments: assignments,
		Employees:   employees,
		Projects:    projects,
		Store:       st.pinger,
	}, handlers.Options{CORSOrigins: cfg.CORSOrigins, RequestTimeout: cfg.RequestTimeout})

	server := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
		ErrorLog:     logging.StdLogger(logger.Named("http")),
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", zap.String("addr", server.Addr), zap.String("store", cfg.StoreDriver))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen on %s: %w", server.Addr, err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	logger.Info("server stopped gracefully")
	return nil
}

func openStores(ctx context.Context, cfg *config.Server, logger *zap.Logger) (*stores, error) {
	if cfg.StoreDriver == config.StoreMemory {
		logger.Warn("using in-memory store, data is lost on exit")
		mem := db.NewMemoryStore()
		return &stores{
			employees:   mem.Employees(),
			projects:    mem.Projects(),
			assignments: mem.Assignments(),
			pinger:      mem,
			close:       func(context.Context) error { return nil },
		}, nil
	}

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	client, err := db.ConnectToMongo(connectCtx, cfg.MongoURI)
	if err != nil {
		return nil, err
	}
	m := db.New(client, cfg.MongoDB, logger)
	if err := m.EnsureIndexes(connectCtx); err != nil {
		_ = m.Disconnect(context.Background())
		return nil, err
	}
	logger.Info("connected to MongoDB", zap.String("database", cfg.MongoDB))
	return &stores{
		employees:   m.Employees(),
		projects:    m.Projects(),
		assignments: m.Assignments(),
		pinger:      m,
		close:       m.Disconnect,
	}, nil
}
