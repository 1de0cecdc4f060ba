package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v7"

	"go-ticket-tracker/internal/config"
	"go-ticket-tracker/internal/database"
	"go-ticket-tracker/internal/handler"
	"go-ticket-tracker/internal/lock"
	"go-ticket-tracker/internal/metrics"
	"go-ticket-tracker/internal/middleware"
	"go-ticket-tracker/internal/repository"
	"go-ticket-tracker/internal/repository/memory"
	"go-ticket-tracker/internal/repository/mongodb"
	"go-ticket-tracker/internal/repository/postgres"
	"go-ticket-tracker/internal/router"
	"go-ticket-tracker/internal/service"
	"go-ticket-tracker/internal/token"
)

type App struct {
	server       *http.Server
	cleanupFuncs []func()
}

// Deps are the collaborators the HTTP surface is assembled from.
type Deps struct {
	Store   *repository.Store
	Locker  lock.Locker
	Metrics *metrics.Metrics
	Checks  map[string]handler.Pinger
}

func New(ctx context.Context, cfg *config.Config) (*App, error) {
	deps := Deps{Metrics: metrics.New(), Checks: map[string]handler.Pinger{}}
	var cleanups []func()
	cleanup := func() {
		for i := len(cleanups) - 1; i >= 0; i-- {
			cleanups[i]()
		}
	}

	store, err := openStore(ctx, cfg, deps.Checks)
	if err != nil {
		return nil, err
	}
	deps.Store = store
	if store.Close != nil {
		cleanups = append(cleanups, store.Close)
	}

	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword, DB: cfg.RedisDB})
		if err := lock.Ping(client); err != nil {
			_ = client.Close()
			cleanup()
			return nil, err
		}
		cleanups = append(cleanups, func() { _ = client.Close() })
		deps.Checks["redis"] = func(ctx context.Context) error {
			return client.WithContext(ctx).Ping().Err()
		}
		deps.Locker = lock.NewRedisLocker(client, cfg.RefreshLockTTL)
		slog.Info("refresh lock backed by redis", "addr", cfg.RedisAddr)
	} else {
		deps.Locker = lock.NewMemoryLocker()
	}

	h, users, err := NewHandler(cfg, deps)
	if err != nil {
		cleanup()
		return nil, err
	}

	if cfg.AdminEmail != "" {
		if err := users.EnsureAdmin(ctx, cfg.AdminEmail, cfg.AdminPassword); err != nil {
			cleanup()
			return nil, fmt.Errorf("seed admin: %w", err)
		}
	}

	server := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           h,
		ReadHeaderTimeout: cfg.ServerReadHeaderTimeout,
		WriteTimeout:      cfg.ServerWriteTimeout,
		IdleTimeout:       cfg.ServerIdleTimeout,
	}

	return &App{server: server, cleanupFuncs: []func(){cleanup}}, nil
}

// NewHandler wires services, middleware and handlers over an already opened store.
func NewHandler(cfg *config.Config, deps Deps) (http.Handler, *service.UserService, error) {
	issuer, err := token.NewIssuer(token.Config{
		AccessSecret:  cfg.JWTAccessSecret,
		RefreshSecret: cfg.JWTRefreshSecret,
		AccessTTL:     cfg.JWTAccessTTL,
		RefreshTTL:    cfg.JWTRefreshTTL,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize token issuer: %w", err)
	}

	authService := service.NewAuthService(deps.Store.Users, deps.Store.Tokens, issuer, deps.Locker, deps.Metrics, service.AuthConfig{
		RefreshRotation: cfg.RefreshRotation,
	})
	userService := service.NewUserService(deps.Store.Users, deps.Store.Tokens, authService)
	ticketService := service.NewTicketService(deps.Store.Tickets, deps.Store.Users)

	authMiddleware := middleware.NewAuthMiddleware(issuer, authService, deps.Metrics)

	h := router.New(cfg, authMiddleware, deps.Metrics, router.Handlers{
		Auth:   handler.NewAuthHandler(authService),
		User:   handler.NewUserHandler(userService),
		Ticket: handler.NewTicketHandler(ticketService),
		Health: handler.NewHealthHandler(deps.Checks),
		Docs:   handler.NewDocsHandler(),
	})

	return h, userService, nil
}

func openStore(ctx context.Context, cfg *config.Config, checks map[string]handler.Pinger) (*repository.Store, error) {
	switch cfg.StoreBackend {
	case config.BackendMongo:
		slog.Info("connecting to MongoDB")
		m, err := database.NewMongo(ctx, cfg.MongoURI, cfg.MongoDatabase)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to mongo: %w", err)
		}
		if err := m.EnsureIndexes(ctx); err != nil {
			m.Close()
			return nil, fmt.Errorf("failed to ensure mongo indexes: %w", err)
		}
		checks["mongo"] = func(ctx context.Context) error { return m.Client.Ping(ctx, nil) }
		return mongodb.NewStore(m), nil

	case config.BackendPostgres:
		slog.Info("connecting to PostgreSQL")
		db, err := database.NewPostgres(ctx, database.PostgresConfig{
			URL:      cfg.DatabaseURL,
			MaxConns: cfg.DBMaxConns,
			MinConns: cfg.DBMinConns,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		if err := db.EnsureSchema(ctx); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to ensure database schema: %w", err)
		}
		checks["postgres"] = func(ctx context.Context) error { return db.Pool.Ping(ctx) }
		return postgres.NewStore(db.Pool, db.Close), nil

	default:
		slog.Warn("using in-memory store; data is lost on restart")
		return memory.NewStore(), nil
	}
}

func (a *App) Run() error {
	go func() {
		slog.Info("server starting", "addr", a.server.Addr)
		if serveErr := a.server.ListenAndServe(); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			slog.Error("server failed", "error", serveErr)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	shutdownErr := a.server.Shutdown(ctx)

	for _, cleanup := range a.cleanupFuncs {
		cleanup()
	}

	if shutdownErr != nil {
		return fmt.Errorf("graceful shutdown failed: %w", shutdownErr)
	}

	slog.Info("server stopped")
	return nil
}
