package store

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// migration is one forward-only schema step.
type migration struct {
	Version     int
	Description string
	SQL         string
}

// migrations must stay in ascending Version order.
var migrations = []migration{
	{
		Version:     1,
		Description: "create models table",
		SQL: `CREATE TABLE models (
			seq        INTEGER PRIMARY KEY AUTOINCREMENT,
			id         TEXT NOT NULL UNIQUE,
			name       TEXT NOT NULL,
			kind       TEXT NOT NULL,
			dims       INTEGER NOT NULL,
			labels     TEXT NOT NULL,
			created_at TEXT NOT NULL,
			model      BLOB NOT NULL
		)`,
	},
	{
		Version:     2,
		Description: "index models by name",
		SQL:         `CREATE INDEX idx_models_name ON models (name, seq)`,
	},
}

// migrate applies every migration not yet recorded in _migrations.
func (s *Store) migrate(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS _migrations (
		version     INTEGER PRIMARY KEY,
		description TEXT NOT NULL,
		applied_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`)
	if err != nil {
		return fmt.Errorf("create _migrations table: %w", err)
	}

	for _, m := range migrations {
		var n int
		err := s.db.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM _migrations WHERE version = ?`, m.Version,
		).Scan(&n)
		if err != nil {
			return fmt.Errorf("check migration %d: %w", m.Version, err)
		}
		if n > 0 {
			continue
		}

		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin tx: %w", err)
		}
		if _, err := tx.ExecContext(ctx, m.SQL); err != nil {
			tx.Rollback()
			return fmt.Errorf("migration %d (%s): %w", m.Version, m.Description, err)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO _migrations (version, description) VALUES (?, ?)`,
			m.Version, m.Description,
		); err != nil {
			tx.Rollback()
			return fmt.Errorf("record migration %d: %w", m.Version, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit migration %d: %w", m.Version, err)
		}
		s.log.Debug("migration applied", zap.Int("version", m.Version), zap.String("description", m.Description))
	}
	return nil
}
