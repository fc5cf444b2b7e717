package main

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

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/MrJamesThe3rd/intima/internal/account"
	accountStore "github.com/MrJamesThe3rd/intima/internal/account/store"
	"github.com/MrJamesThe3rd/intima/internal/audit"
	auditStore "github.com/MrJamesThe3rd/intima/internal/audit/store"
	"github.com/MrJamesThe3rd/intima/internal/config"
	"github.com/MrJamesThe3rd/intima/internal/consent"
	consentStore "github.com/MrJamesThe3rd/intima/internal/consent/store"
	"github.com/MrJamesThe3rd/intima/internal/cycle"
	cycleStore "github.com/MrJamesThe3rd/intima/internal/cycle/store"
	"github.com/MrJamesThe3rd/intima/internal/database"
	"github.com/MrJamesThe3rd/intima/internal/generate"
	intimaHttp "github.com/MrJamesThe3rd/intima/internal/http"
	adminHandler "github.com/MrJamesThe3rd/intima/internal/http/admin"
	coupleHandler "github.com/MrJamesThe3rd/intima/internal/http/couple"
	cycleHandler "github.com/MrJamesThe3rd/intima/internal/http/cycle"
	meHandler "github.com/MrJamesThe3rd/intima/internal/http/me"
	"github.com/MrJamesThe3rd/intima/internal/http/middleware"
	walletHandler "github.com/MrJamesThe3rd/intima/internal/http/wallet"
	"github.com/MrJamesThe3rd/intima/internal/ledger"
	ledgerStore "github.com/MrJamesThe3rd/intima/internal/ledger/store"
	"github.com/MrJamesThe3rd/intima/internal/media"
	"github.com/MrJamesThe3rd/intima/internal/media/gcs"
	mediaStore "github.com/MrJamesThe3rd/intima/internal/media/store"
	"github.com/MrJamesThe3rd/intima/internal/notify"
	"github.com/MrJamesThe3rd/intima/internal/pairing"
	pairingStore "github.com/MrJamesThe3rd/intima/internal/pairing/store"
	"github.com/MrJamesThe3rd/intima/internal/retry"
	"github.com/MrJamesThe3rd/intima/internal/session"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	slog.SetDefault(cfg.NewLogger(os.Stdout))

	if err := run(cfg); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.New(ctx, cfg.ConnectionString())
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer db.Close()

	if cfg.DB.Migrate {
		if err := database.Migrate(ctx, db); err != nil {
			return err
		}
	}

	notifier, closeNotifier := newNotifier(ctx, cfg)
	defer closeNotifier()

	blobs, closeBlobs, err := newBlobStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeBlobs()

	policy := retry.Policy{MaxTries: cfg.Retry.MaxTries, Initial: cfg.Retry.Initial, Max: cfg.Retry.Max}

	var (
		accountService = account.NewService(accountStore.New(db))
		ledgerService  = ledger.NewService(ledgerStore.New(db), policy)
		pairingService = pairing.NewService(pairingStore.New(db), policy)
		consentService = consent.NewService(consentStore.New(db), policy)
		cycleService   = cycle.NewService(cycleStore.New(db))
		auditService   = audit.NewService(auditStore.New(db))
		mediaService   = media.NewService(mediaStore.New(db), blobs)
	)

	facade := session.New(session.Deps{
		Accounts:  accountService,
		Registry:  pairingService,
		Gate:      consentService,
		Ledger:    ledgerService,
		Vault:     mediaService,
		Generator: generate.NewLimiter(newGenerator(cfg), cfg.OpenAI.RatePerMin, cfg.OpenAI.Burst),
		Auditor:   auditService,
		Notifier:  notifier,
		Counters: session.StatsSources{
			Accounts:           accountService.Count,
			ActiveCouples:      pairingService.CountActive,
			PendingWithdrawals: ledgerService.CountPendingWithdrawals,
			Circulation:        ledgerService.TotalCirculation,
		},
	})

	handlers := intimaHttp.Handlers{
		Me:     meHandler.NewHandler(accountService, auditService),
		Couple: coupleHandler.NewHandler(facade),
		Wallet: walletHandler.NewHandler(ledgerService, facade),
		Cycle:  cycleHandler.NewHandler(cycleService),
		Admin:  adminHandler.NewHandler(ledgerService, facade, auditService),
	}

	router := intimaHttp.New(
		intimaHttp.Options{AllowedOrigins: cfg.Server.AllowedOrigins, Timeout: cfg.Server.Timeout},
		middleware.NewAuth(accountService, cfg.Auth.JWTSecret, cfg.Auth.Issuer),
		db,
		handlers,
	)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)

	go func() {
		slog.Info("starting server", "port", cfg.App.Port)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	case <-ctx.Done():
		slog.Info("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}

func newNotifier(ctx context.Context, cfg *config.Config) (notify.Notifier, func()) {
	if cfg.Redis.Addr == "" {
		slog.Info("redis not configured, notifications go to the log")
		return notify.Log{}, func() {}
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		slog.Warn("redis ping failed, publishing anyway", "addr", cfg.Redis.Addr, "error", err)
	}

	return notify.NewRedis(rdb), func() { _ = rdb.Close() }
}

func newGenerator(cfg *config.Config) generate.Generator {
	if cfg.OpenAI.APIKey == "" {
		slog.Info("OPENAI_API_KEY not set, icebreakers disabled")
		return generate.Disabled{}
	}

	return generate.NewOpenAI(cfg.OpenAI.APIKey, cfg.OpenAI.Model)
}

// newBlobStore returns a nil store when no bucket is configured; the vault
// then rejects uploads.
func newBlobStore(ctx context.Context, cfg *config.Config) (media.BlobStore, func(), error) {
	if cfg.Storage.Bucket == "" {
		slog.Info("MEDIA_BUCKET not set, vault uploads disabled")
		return nil, func() {}, nil
	}

	store, err := gcs.New(ctx, cfg.Storage.Bucket, cfg.Storage.CredentialsFile)
	if err != nil {
		return nil, nil, err
	}

	return store, func() { _ = store.Close() }, nil
}
