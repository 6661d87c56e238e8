// Package store is a SQLite registry of trained classifier models.
//
// Each record keeps the serialized model next to a little metadata (name,
// kind, input dimensions, class labels) so models can be listed without
// being decoded. Records are addressed by UUID; names need not be unique and
// GetByName returns the most recent record with that name.
package store

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	_ "modernc.org/sqlite" // Pure-Go SQLite driver

	"github.com/katalvlaran/dtwgesture/classifier"
)

var (
	// ErrNotFound is returned when no record matches the query.
	ErrNotFound = errors.New("store: model not found")

	// ErrUntrained is returned by Put for a model that has not been trained.
	ErrUntrained = errors.New("store: refusing to store an untrained model")
)

// Record is one stored model. Model is only populated by Get and GetByName.
type Record struct {
	ID        uuid.UUID
	Name      string
	Kind      string
	Dims      int
	Labels    []int
	CreatedAt time.Time
	Model     []byte
}

// describer is implemented by classifiers that expose their shape.
type describer interface {
	Dims() int
	ClassLabels() []int
}

// Store wraps a SQLite database holding the model table.
type Store struct {
	db  *sql.DB
	mu  sync.Mutex // serialize writes
	log *zap.Logger
}

// Open opens (or creates) the database at path and applies pending
// migrations. ":memory:" gives a private in-memory registry.
func Open(ctx context.Context, path string, log *zap.Logger) (*Store, error) {
	if log == nil {
		log = zap.NewNop()
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %q: %w", path, err)
	}

	// A single connection keeps ":memory:" databases alive and writes serial.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite %q: %w", path, err)
	}

	// modernc.org/sqlite takes pragmas as statements, not DSN params.
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			db.Close()
			return nil, fmt.Errorf("exec %q: %w", p, err)
		}
	}

	s := &Store{db: db, log: log}
	if err := s.migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Put serializes m and stores it under name, returning the new record
// without its model bytes.
func (s *Store) Put(ctx context.Context, name string, m classifier.Classifier) (Record, error) {
	if !m.Trained() {
		return Record{}, ErrUntrained
	}
	var buf bytes.Buffer
	if err := m.Save(&buf); err != nil {
		return Record{}, fmt.Errorf("serialize model: %w", err)
	}

	rec := Record{
		ID:        uuid.New(),
		Name:      name,
		Kind:      m.Kind().String(),
		CreatedAt: time.Now().UTC(),
	}
	if d, ok := m.(describer); ok {
		rec.Dims = d.Dims()
		rec.Labels = d.ClassLabels()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO models (id, name, kind, dims, labels, created_at, model)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.ID.String(), rec.Name, rec.Kind, rec.Dims, joinLabels(rec.Labels),
		rec.CreatedAt.Format(time.RFC3339Nano), buf.Bytes(),
	)
	if err != nil {
		return Record{}, fmt.Errorf("insert model %q: %w", name, err)
	}

	s.log.Info("model stored",
		zap.String("id", rec.ID.String()),
		zap.String("name", name),
		zap.Int("bytes", buf.Len()),
	)
	return rec, nil
}

// Get returns the record with the given id, including its model bytes.
func (s *Store) Get(ctx context.Context, id uuid.UUID) (Record, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, kind, dims, labels, created_at, model FROM models WHERE id = ?`,
		id.String(),
	)
	return scanRecord(row, true)
}

// GetByName returns the most recently stored record called name.
func (s *Store) GetByName(ctx context.Context, name string) (Record, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, kind, dims, labels, created_at, model FROM models
		 WHERE name = ? ORDER BY seq DESC LIMIT 1`,
		name,
	)
	return scanRecord(row, true)
}

// Resolve accepts either a UUID or a model name.
func (s *Store) Resolve(ctx context.Context, ref string) (Record, error) {
	if id, err := uuid.Parse(ref); err == nil {
		return s.Get(ctx, id)
	}
	return s.GetByName(ctx, ref)
}

// Load decodes the model of rec into a new classifier of the recorded kind.
func Load(rec Record, opts ...classifier.Option) (classifier.Classifier, error) {
	kind, err := classifier.ParseKind(rec.Kind)
	if err != nil {
		return nil, err
	}
	c, err := classifier.New(kind, opts...)
	if err != nil {
		return nil, err
	}
	if err := c.Load(bytes.NewReader(rec.Model)); err != nil {
		return nil, fmt.Errorf("model %s: %w", rec.ID, err)
	}
	return c, nil
}

// List returns every record in insertion order, without model bytes.
func (s *Store) List(ctx context.Context) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, kind, dims, labels, created_at FROM models ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("list models: %w", err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		rec, err := scanRecord(rows, false)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// Delete removes the record with the given id.
func (s *Store) Delete(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	res, err := s.db.ExecContext(ctx, `DELETE FROM models WHERE id = ?`, id.String())
	if err != nil {
		return fmt.Errorf("delete model %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	s.log.Info("model deleted", zap.String("id", id.String()))
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(sc scanner, withModel bool) (Record, error) {
	var (
		rec            Record
		id, labels, ts string
		dest           = []any{&id, &rec.Name, &rec.Kind, &rec.Dims, &labels, &ts}
	)
	if withModel {
		dest = append(dest, &rec.Model)
	}
	if err := sc.Scan(dest...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Record{}, ErrNotFound
		}
		return Record{}, fmt.Errorf("scan model: %w", err)
	}

	var err error
	if rec.ID, err = uuid.Parse(id); err != nil {
		return Record{}, fmt.Errorf("scan model id %q: %w", id, err)
	}
	if rec.CreatedAt, err = time.Parse(time.RFC3339Nano, ts); err != nil {
		return Record{}, fmt.Errorf("scan model %s time: %w", id, err)
	}
	if rec.Labels, err = splitLabels(labels); err != nil {
		return Record{}, fmt.Errorf("scan model %s labels: %w", id, err)
	}
	return rec, nil
}

func joinLabels(labels []int) string {
	parts := make([]string, len(labels))
	for i, l := range labels {
		parts[i] = strconv.Itoa(l)
	}
	return strings.Join(parts, ",")
}

func splitLabels(s string) ([]int, error) {
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	out := make([]int, len(parts))
	for i, p := range parts {
		v, err := strconv.Atoi(p)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}
