package vocab

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"wordmatch-pk-server/matcherrors"
)

const createTableSQL = `
CREATE TABLE IF NOT EXISTS vocab_list (
	id         TEXT PRIMARY KEY,
	name       TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE TABLE IF NOT EXISTS vocab_pair (
	list_id  TEXT NOT NULL REFERENCES vocab_list(id),
	pair_id  TEXT NOT NULL,
	position INT  NOT NULL DEFAULT 0,
	word     TEXT NOT NULL,
	meaning  TEXT NOT NULL,
	PRIMARY KEY (list_id, pair_id)
);
CREATE INDEX IF NOT EXISTS idx_vocab_pair_list ON vocab_pair(list_id, position);
`

// PostgresSource reads vocabulary lists from Postgres.
type PostgresSource struct {
	pool *pgxpool.Pool
}

// NewPostgresSource connects to Postgres and ensures the vocabulary tables exist.
// If databaseURL is empty, it returns (nil, nil) and callers fall back to another source.
func NewPostgresSource(ctx context.Context, databaseURL string) (*PostgresSource, error) {
	if databaseURL == "" {
		return nil, nil
	}
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	if _, err := pool.Exec(ctx, createTableSQL); err != nil {
		pool.Close()
		return nil, err
	}
	slog.Info("connected to Postgres", "tag", "vocab")
	return &PostgresSource{pool: pool}, nil
}

// Close closes the connection pool.
func (s *PostgresSource) Close() {
	if s != nil && s.pool != nil {
		s.pool.Close()
	}
}

// Lists returns every list with its pair count, newest first.
func (s *PostgresSource) Lists(ctx context.Context) ([]ListSummary, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT l.id, l.name, COUNT(p.pair_id)
		FROM vocab_list l
		LEFT JOIN vocab_pair p ON p.list_id = l.id
		GROUP BY l.id, l.name, l.created_at
		ORDER BY l.created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("query vocab lists: %w", err)
	}
	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (ListSummary, error) {
		var ls ListSummary
		err := row.Scan(&ls.ID, &ls.Name, &ls.Count)
		return ls, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan vocab lists: %w", err)
	}
	return out, nil
}

// Pairs returns the validated pairs of listID in stored order.
func (s *PostgresSource) Pairs(ctx context.Context, listID string) ([]VocabularyPair, error) {
	var exists bool
	if err := s.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM vocab_list WHERE id = $1)`, listID).Scan(&exists); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, matcherrors.ErrListNotFound
		}
		return nil, fmt.Errorf("lookup vocab list %q: %w", listID, err)
	}
	if !exists {
		return nil, matcherrors.ErrListNotFound
	}

	rows, err := s.pool.Query(ctx, `
		SELECT pair_id, word, meaning
		FROM vocab_pair
		WHERE list_id = $1
		ORDER BY position, pair_id`, listID)
	if err != nil {
		return nil, fmt.Errorf("query vocab pairs: %w", err)
	}
	pairs, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (VocabularyPair, error) {
		var p VocabularyPair
		err := row.Scan(&p.ID, &p.Word, &p.Meaning)
		return p, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan vocab pairs: %w", err)
	}
	return Validate(pairs)
}

var _ Source = (*PostgresSource)(nil)
var _ Source = (*FileSource)(nil)
