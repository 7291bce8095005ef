package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	sqlitejournal "github.com/bnema/fundme-cli/internal/adapters/journal/sqlite"
	httpfeed "github.com/bnema/fundme-cli/internal/adapters/pricefeed/http"
	mockfeed "github.com/bnema/fundme-cli/internal/adapters/pricefeed/mock"
	statusadapter "github.com/bnema/fundme-cli/internal/adapters/render/status"
	tomlrepo "github.com/bnema/fundme-cli/internal/adapters/repo/toml"
	filestore "github.com/bnema/fundme-cli/internal/adapters/secrets/file"
	"github.com/bnema/fundme-cli/internal/application"
	"github.com/bnema/fundme-cli/internal/ports"
	"github.com/spf13/viper"
)

type app struct {
	service        *application.Service
	wallets        *tomlrepo.WalletBook
	feed           ports.PriceFeed
	mockFeed       *mockfeed.Feed
	secretStore    ports.SecretStore
	journal        ports.Journal
	statusRenderer func(application.Status, statusadapter.RenderOptions) (string, error)
	cfg            *viper.Viper
	maxPriceAge    time.Duration
	now            func() time.Time
}

func wireApp() (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	level, err := parseLogLevel(cfg.GetString("log.level"))
	if err != nil {
		return nil, err
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	ledgers, err := tomlrepo.NewLedgerRepository(cfg)
	if err != nil {
		return nil, fmt.Errorf("wire ledger repository: %w", err)
	}

	wallets, err := tomlrepo.NewWalletBook(cfg)
	if err != nil {
		return nil, fmt.Errorf("wire wallet book: %w", err)
	}

	secretsPath, err := tomlrepo.NormalizePath(cfg.GetString("secrets.path"))
	if err != nil {
		return nil, fmt.Errorf("wire secret store: %w", err)
	}
	secretStore := filestore.NewStore(secretsPath)

	a := &app{
		wallets:        wallets,
		secretStore:    secretStore,
		statusRenderer: statusadapter.Render,
		cfg:            cfg,
		maxPriceAge:    cfg.GetDuration("feed.max_age"),
		now:            time.Now,
	}

	switch kind := strings.ToLower(strings.TrimSpace(cfg.GetString("feed.kind"))); kind {
	case feedKindMock:
		feed, err := mockfeed.NewFeed(cfg, ports.SystemClock{})
		if err != nil {
			return nil, fmt.Errorf("wire mock price feed: %w", err)
		}
		a.feed = feed
		a.mockFeed = feed
	case feedKindHTTP:
		feed, err := httpfeed.NewFeed(cfg, secretStore, &http.Client{Timeout: 15 * time.Second})
		if err != nil {
			return nil, fmt.Errorf("wire http price feed: %w", err)
		}
		a.feed = feed
	default:
		return nil, fmt.Errorf("unsupported feed.kind %q (want %s or %s)", kind, feedKindMock, feedKindHTTP)
	}

	a.journal, err = openJournal(cfg.GetString("journal.path"), logger)
	if err != nil {
		return nil, err
	}

	a.service = application.NewService(
		ledgers,
		a.feed,
		wallets,
		a.journal,
		ports.SystemClock{},
		application.WithLogger(logger),
		application.WithMaxPriceAge(a.maxPriceAge),
		application.WithLocker(tomlrepo.NewFileLock(ledgers.Path())),
	)

	return a, nil
}

func openJournal(path string, logger *slog.Logger) (ports.Journal, error) {
	if strings.EqualFold(strings.TrimSpace(path), journalOff) {
		return sqlitejournal.Noop{}, nil
	}

	path, err := tomlrepo.NormalizePath(path)
	if err != nil {
		return nil, fmt.Errorf("wire journal: %w", err)
	}

	journal, err := sqlitejournal.Open(context.Background(), path, logger)
	if err != nil {
		return nil, fmt.Errorf("wire journal: %w", err)
	}
	return journal, nil
}

func (a *app) close() error {
	if a == nil || a.journal == nil {
		return nil
	}
	return a.journal.Close()
}

// remoteFeed reports whether price reads leave the machine.
func (a *app) remoteFeed() bool {
	return a.mockFeed == nil
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
