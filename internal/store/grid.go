package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound is returned when no grid matches the requested identifier.
var ErrNotFound = errors.New("grid not found")

// StoredGrid is one persisted grid row. Data is the raw grid_data JSON.
type StoredGrid struct {
	ID     int64
	Family string
	Date   time.Time
	Data   []byte
}

// GridStore persists and serves grids. Scheduled grids are idempotent on
// (family, date); custom grids get an auto id and a 24-hour retention.
type GridStore struct {
	pool *pgxpool.Pool
}

// NewGridStore creates a grid store over a connection pool.
func NewGridStore(pool *pgxpool.Pool) *GridStore {
	return &GridStore{pool: pool}
}

// Exists reports whether a grid is already stored for the family and date.
func (s *GridStore) Exists(ctx context.Context, family, date string) (bool, error) {
	var one int
	err := s.pool.QueryRow(ctx, "grid_exists", family, date).Scan(&one)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("grid exists: %w", err)
	}
	return true, nil
}

// UpsertScheduled stores a scheduled grid; an existing (family, date) row
// wins, making retried batch passes idempotent.
func (s *GridStore) UpsertScheduled(ctx context.Context, family, date string, data []byte) error {
	if _, err := s.pool.Exec(ctx, "upsert_grid", family, date, data); err != nil {
		return fmt.Errorf("upsert grid %s/%s: %w", family, date, err)
	}
	return nil
}

// InsertCustom stores an ad-hoc grid and returns its share id.
func (s *GridStore) InsertCustom(ctx context.Context, data []byte) (int64, error) {
	var id int64
	if err := s.pool.QueryRow(ctx, "insert_custom_grid", data).Scan(&id); err != nil {
		return 0, fmt.Errorf("insert custom grid: %w", err)
	}
	return id, nil
}

// LatestByFamily returns the most recent grid data for a family.
func (s *GridStore) LatestByFamily(ctx context.Context, family string) ([]byte, error) {
	var data []byte
	err := s.pool.QueryRow(ctx, "latest_grid", family).Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("latest grid %s: %w", family, err)
	}
	return data, nil
}

// CustomByID returns a custom grid's data by share id.
func (s *GridStore) CustomByID(ctx context.Context, id int64) ([]byte, error) {
	var data []byte
	err := s.pool.QueryRow(ctx, "custom_grid", id).Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("custom grid %d: %w", id, err)
	}
	return data, nil
}

// MissingAnswers lists current and future grids whose data lacks the
// precomputed answers cache.
func (s *GridStore) MissingAnswers(ctx context.Context) ([]StoredGrid, error) {
	return s.collect(ctx, "grids_missing_answers")
}

// FutureGrids lists grids dated today or later; family narrows to one
// family, empty means all.
func (s *GridStore) FutureGrids(ctx context.Context, family string) ([]StoredGrid, error) {
	if family == "" {
		return s.collect(ctx, "future_grids")
	}
	return s.collect(ctx, "future_family_grids", family)
}

// UpdateData replaces a grid's data in place (answer backfill).
func (s *GridStore) UpdateData(ctx context.Context, id int64, data []byte) error {
	if _, err := s.pool.Exec(ctx, "update_grid_data", data, id); err != nil {
		return fmt.Errorf("update grid %d: %w", id, err)
	}
	return nil
}

// DeleteExpiredCustom removes custom grids past their 24-hour retention and
// returns how many were dropped.
func (s *GridStore) DeleteExpiredCustom(ctx context.Context) (int64, error) {
	tag, err := s.pool.Exec(ctx, "delete_expired_custom")
	if err != nil {
		return 0, fmt.Errorf("delete expired custom grids: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (s *GridStore) collect(ctx context.Context, stmt string, args ...any) ([]StoredGrid, error) {
	rows, err := s.pool.Query(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", stmt, err)
	}
	defer rows.Close()

	var out []StoredGrid
	for rows.Next() {
		var g StoredGrid
		if err := rows.Scan(&g.ID, &g.Family, &g.Date, &g.Data); err != nil {
			return nil, fmt.Errorf("scan grid: %w", err)
		}
		out = append(out, g)
	}
	return out, rows.Err()
}
