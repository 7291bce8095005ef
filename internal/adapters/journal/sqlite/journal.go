// Package sqlite keeps the ledger's audit trail in a SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"math/big"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/bnema/fundme-cli/internal/domain"
	"github.com/bnema/fundme-cli/internal/ports"
	_ "modernc.org/sqlite"
)

// Journal appends ledger events to a SQLite table.
type Journal struct {
	db     *sql.DB
	mu     sync.Mutex
	logger *slog.Logger
}

var _ ports.Journal = (*Journal)(nil)

// Open opens (or creates) the database at path and runs migrations.
func Open(ctx context.Context, path string, logger *slog.Logger) (*Journal, error) {
	if logger == nil {
		logger = slog.Default()
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("create journal directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)

	// Other fm processes may hold the write lock briefly.
	if _, err := db.ExecContext(ctx, "PRAGMA busy_timeout=5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set busy timeout: %w", err)
	}
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	j := &Journal{db: db, logger: logger}
	if err := j.migrate(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	logger.Debug("journal opened", "path", path)
	return j, nil
}

func (j *Journal) migrate(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS ledger_events (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp   INTEGER NOT NULL,
			kind        TEXT NOT NULL,
			actor       TEXT NOT NULL,
			amount_wei  TEXT NOT NULL,
			funders     INTEGER NOT NULL,
			variant     TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE INDEX IF NOT EXISTS idx_ledger_events_ts ON ledger_events(timestamp)`,
	}

	for _, s := range stmts {
		if _, err := j.db.ExecContext(ctx, s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (j *Journal) Record(ctx context.Context, event domain.Event) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	at := event.At
	if at.IsZero() {
		at = time.Now().UTC()
	}
	amount := "0"
	if event.Amount != nil {
		amount = event.Amount.String()
	}

	_, err := j.db.ExecContext(ctx, `INSERT INTO ledger_events
		(timestamp, kind, actor, amount_wei, funders, variant)
		VALUES (?,?,?,?,?,?)`,
		at.UnixNano(), string(event.Kind), string(event.Actor), amount, event.Funders, string(event.Variant),
	)
	if err != nil {
		return fmt.Errorf("insert ledger event: %w", err)
	}
	return nil
}

func (j *Journal) List(ctx context.Context, limit int) ([]domain.Event, error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	query := `SELECT id, timestamp, kind, actor, amount_wei, funders, variant
		FROM ledger_events ORDER BY id DESC`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := j.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query ledger events: %w", err)
	}
	defer rows.Close()

	var events []domain.Event
	for rows.Next() {
		var (
			event     domain.Event
			timestamp int64
			kind      string
			actor     string
			amount    string
			variant   string
		)
		if err := rows.Scan(&event.ID, &timestamp, &kind, &actor, &amount, &event.Funders, &variant); err != nil {
			return nil, fmt.Errorf("scan ledger event: %w", err)
		}

		value, ok := new(big.Int).SetString(amount, 10)
		if !ok {
			return nil, fmt.Errorf("ledger event %d has invalid amount %q", event.ID, amount)
		}

		event.At = time.Unix(0, timestamp).UTC()
		event.Kind = domain.EventKind(kind)
		event.Actor = domain.Address(actor)
		event.Amount = value
		event.Variant = domain.WithdrawVariant(variant)
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate ledger events: %w", err)
	}

	return events, nil
}

func (j *Journal) Close() error {
	j.logger.Debug("closing journal")
	return j.db.Close()
}
