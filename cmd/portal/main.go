// @title           Hospital Portal
// @version         1.0
// @description     Session-gated portal in front of the hospital management REST API.
// @BasePath        /
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/hospital-ms/portal/internal/api"
	"github.com/hospital-ms/portal/internal/api/middleware"
	"github.com/hospital-ms/portal/internal/core/policy"
	"github.com/hospital-ms/portal/internal/core/ports"
	"github.com/hospital-ms/portal/internal/core/service"
	"github.com/hospital-ms/portal/internal/infrastructure/config"
	"github.com/hospital-ms/portal/internal/infrastructure/db/memory"
	mongodb "github.com/hospital-ms/portal/internal/infrastructure/db/mongo"
	redisdb "github.com/hospital-ms/portal/internal/infrastructure/db/redis"
	"github.com/hospital-ms/portal/internal/infrastructure/hmsapi"
	"github.com/hospital-ms/portal/internal/infrastructure/queue"
	"github.com/hospital-ms/portal/pkg/logger"
)

const devCookieSecret = "dev-only-cookie-secret"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		boot := logger.Init(logger.Options{})
		boot.Fatal().Err(err).Msg("failed to load configuration")
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.LogPretty,
		Service: "hms-portal",
		Env:     cfg.Env,
	})

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("portal stopped")
	}
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	var (
		db  *mongo.Database
		rdb *redis.Client
	)

	if cfg.NeedsMongo() {
		client, database, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return err
		}
		defer func() {
			dctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = client.Disconnect(dctx)
		}()
		db = database
		log.Info().Str("database", cfg.Mongo.Database).Msg("connected to mongodb")
	}

	if cfg.NeedsRedis() {
		client, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		if err != nil {
			return err
		}
		defer client.Close()
		rdb = client
		log.Info().Str("addr", cfg.Redis.Addr).Msg("connected to redis")
	}

	// --- Session slots ---
	var slots ports.SlotStorage
	switch cfg.SessionBackend {
	case config.BackendRedis:
		slots = redisdb.NewSlotStorage(rdb)
	case config.BackendMongo:
		mslots := mongodb.NewSlotStorage(db)
		if err := mongodb.EnsureIndexes(ctx, mslots); err != nil {
			return err
		}
		slots = mslots
	default:
		slots = memory.NewSlotStorage()
	}
	sessions := service.NewSessionStore(slots, cfg.SessionPrefix, cfg.SessionTTL, logger.Component("session"))

	// --- Access audit ---
	var auditor ports.AccessAuditor = service.NoopAuditor{}
	if cfg.AuditEnabled {
		repo := mongodb.NewAuditRepository(db)
		if err := mongodb.EnsureIndexes(ctx, repo); err != nil {
			return err
		}
		dispatcher := queue.NewDispatcher(cfg.AuditWorkers, service.NewAuditService(repo, logger.Component("audit")), logger.Component("audit"))
		dispatcher.Start(ctx)
		auditor = dispatcher
	}

	// --- REST API ---
	table := policy.Default()
	apiClient := hmsapi.NewClient(cfg.APIBaseURL, hmsapi.NewAuthorizer(nil, sessions), cfg.APITimeout)

	var auth ports.Authenticator = hmsapi.NewRemoteAuthenticator(apiClient)
	if cfg.AuthMode == config.AuthModeLocal {
		users := mongodb.NewUserRepository(db)
		if err := mongodb.EnsureIndexes(ctx, users); err != nil {
			return err
		}
		auth = service.NewAuthService(users)
	}

	secret := cfg.CookieSecret
	if secret == "" {
		log.Warn().Msg("COOKIE_SECRET not set, using the development secret")
		secret = devCookieSecret
	}

	e := api.NewRouter(api.Deps{
		Log: log,
		Client: middleware.ClientConfig{
			Secret: secret,
			Cookie: cfg.CookieName,
			Secure: cfg.CookieSecure,
		},
		Guard:    service.NewRouteGuard(table, sessions, auditor, logger.Component("guard")),
		Sessions: sessions,
		Auth:     auth,
		Menu:     service.NewMenuProjector(table, sessions),
		API:      apiClient,
		Mongo:    db,
		Redis:    rdb,
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info().
			Str("port", cfg.Port).
			Str("api", cfg.APIBaseURL).
			Str("auth_mode", cfg.AuthMode).
			Str("session_backend", cfg.SessionBackend).
			Msg("portal listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
