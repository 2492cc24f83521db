package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"gpupricewatcher/config"
	"gpupricewatcher/internal/scraper"
	"gpupricewatcher/internal/source"
	"gpupricewatcher/logger"
	"gpupricewatcher/services/cache"
	"gpupricewatcher/services/notifier"
	"gpupricewatcher/services/publisher"
	"gpupricewatcher/services/store"
	"gpupricewatcher/services/worker"
)

func main() {
	// Load environment variables
	godotenv.Load()

	// Initialize logger first
	logger.Init()
	log := logger.Default

	// Load and validate configuration
	cfg := config.LoadConfig()
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	// Load the source registry
	sources := source.Builtin()
	if cfg.SourcesFile != "" {
		loaded, err := source.LoadFile(cfg.SourcesFile)
		if err != nil {
			log.Fatal().Err(err).Str("file", cfg.SourcesFile).Msg("Failed to load sources")
		}
		sources = loaded
	}

	log.Info().
		Str("environment", cfg.Environment).
		Int("sources", len(sources)).
		Int("deal_threshold", cfg.DealThreshold).
		Msg("Starting price watcher")

	// Set up context with cancellation on shutdown signals
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig := <-sigChan
		log.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	// Initialize services
	st, err := newStore(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize store")
	}
	defer st.Close()

	dispatcher, err := newDispatcher(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize notifier")
	}

	var seen cache.Cache
	if cfg.MemcacheAddr != "" {
		seen = cache.NewMemcache(cfg.MemcacheAddr)
		log.Info().Str("addr", cfg.MemcacheAddr).Msg("Using memcache deal seen-cache")
	}

	var pub publisher.Publisher
	if cfg.RedisAddr != "" {
		redisPub := publisher.NewRedisPublisher(cfg.RedisAddr, cfg.RedisDB, cfg.RedisStream, cfg.RedisMaxLen)
		defer redisPub.Close()
		pub = redisPub
		log.Info().Str("addr", cfg.RedisAddr).Str("stream", cfg.RedisStream).Msg("Publishing records to Redis")
	}

	n := notifier.New(dispatcher, seen, cfg.SeenTTL, logger.ForComponent("notifier"))
	s := scraper.New(cfg.FetchTimeout, cfg.DealThreshold)
	w := worker.New(sources, s, st, n, pub, logger.ForComponent("worker"))

	if cfg.WatchInterval > 0 {
		runForever(ctx, w, cfg.WatchInterval, log)
		return
	}

	// One-shot run: the exit code is the machine-readable success signal
	if _, err := w.Run(ctx); err != nil {
		log.Error().Err(err).Msg("Run failed")
		os.Exit(1)
	}
}

// runForever re-runs the pipeline on a fixed cadence until the context
// is cancelled; per-run failures are logged and the loop continues
func runForever(ctx context.Context, w *worker.Worker, interval time.Duration, log *logger.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if _, err := w.Run(ctx); err != nil {
			log.Error().Err(err).Msg("Run failed")
		}

		select {
		case <-ctx.Done():
			log.Info().Msg("Shutting down gracefully...")
			return
		case <-ticker.C:
		}
	}
}

// newStore builds the configured record store
func newStore(ctx context.Context, cfg config.Config) (store.Store, error) {
	switch cfg.StoreDriver {
	case config.StoreDriverPostgres:
		return store.NewPostgresStore(ctx, cfg.PostgresDSN)
	default:
		return store.NewSQLiteStore(cfg.SQLitePath)
	}
}

// newDispatcher builds the configured notification channel
func newDispatcher(cfg config.Config) (notifier.Dispatcher, error) {
	switch cfg.NotifyChannel {
	case config.NotifyChannelSMTP:
		return notifier.NewMailer(cfg.SMTPAddr, cfg.SMTPSender, cfg.SMTPPassword, cfg.SMTPRecipient), nil
	case config.NotifyChannelTelegram:
		return notifier.NewTelegramDispatcher(cfg.TelegramToken, cfg.TelegramChatID)
	default:
		return noopDispatcher{}, nil
	}
}

// noopDispatcher drops alerts when no channel is configured
type noopDispatcher struct{}

func (noopDispatcher) Send(subject, body string) error { return nil }
