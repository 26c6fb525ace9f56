// Package store executes the domain queries against Postgres: intersection
// counts over compiled predicates, player search and guess validation, and
// grid persistence. It is the only package that sees SQL result rows.
package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vschuh/eurogrid/internal/intersect"
)

// PlayerStore runs player-side queries. Fixed-shape queries go through the
// prepared statements registered in internal/db; predicate queries are
// composed per call.
type PlayerStore struct {
	pool *pgxpool.Pool
}

// NewPlayerStore creates a player store over a connection pool.
func NewPlayerStore(pool *pgxpool.Pool) *PlayerStore {
	return &PlayerStore{pool: pool}
}

// CountPlayers counts distinct players satisfying the predicate fragment.
func (s *PlayerStore) CountPlayers(ctx context.Context, condition string, args []any) (int, error) {
	query := "SELECT COUNT(DISTINCT p.id) FROM player p WHERE " + condition
	var n int
	if err := s.pool.QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count players: %w", err)
	}
	return n, nil
}

// ListPlayers returns distinct players satisfying the predicate fragment,
// ordered by surname then given name.
func (s *PlayerStore) ListPlayers(ctx context.Context, condition string, args []any) ([]intersect.Player, error) {
	query := "SELECT DISTINCT p.id, p.firstname, p.lastname FROM player p WHERE " +
		condition + " ORDER BY p.lastname, p.firstname"
	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}
	defer rows.Close()

	var out []intersect.Player
	for rows.Next() {
		var p intersect.Player
		if err := rows.Scan(&p.ID, &p.FirstName, &p.LastName); err != nil {
			return nil, fmt.Errorf("scan player: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// SearchResult is one name-search hit, before canonical deduplication.
type SearchResult struct {
	ID        string
	FirstName string
	LastName  string
	DOB       *time.Time
}

// SearchByName finds players whose full name contains the fragment,
// accent-insensitively.
func (s *PlayerStore) SearchByName(ctx context.Context, fragment string) ([]SearchResult, error) {
	rows, err := s.pool.Query(ctx, "player_search", "%"+fragment+"%")
	if err != nil {
		return nil, fmt.Errorf("player search: %w", err)
	}
	defer rows.Close()

	var out []SearchResult
	for rows.Next() {
		var r SearchResult
		if err := rows.Scan(&r.ID, &r.FirstName, &r.LastName, &r.DOB); err != nil {
			return nil, fmt.Errorf("scan search result: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// ValidateGuess reports whether any of the player's identity ids satisfies
// the predicate fragment. The fragment's placeholders must start after the
// id placeholders, i.e. at len(playerIDs)+1.
func (s *PlayerStore) ValidateGuess(ctx context.Context, playerIDs []string, condition string, args []any) (bool, error) {
	ph := make([]string, len(playerIDs))
	queryArgs := make([]any, 0, len(playerIDs)+len(args))
	for i, id := range playerIDs {
		ph[i] = fmt.Sprintf("$%d", i+1)
		queryArgs = append(queryArgs, id)
	}
	queryArgs = append(queryArgs, args...)

	query := fmt.Sprintf(
		"SELECT EXISTS (SELECT 1 FROM player p WHERE p.id IN (%s) AND %s)",
		strings.Join(ph, ","), condition)

	var ok bool
	if err := s.pool.QueryRow(ctx, query, queryArgs...).Scan(&ok); err != nil {
		return false, fmt.Errorf("validate guess: %w", err)
	}
	return ok, nil
}

// PlayerImage returns the most recent non-default record photo for a
// player, or the default placeholder.
func (s *PlayerStore) PlayerImage(ctx context.Context, playerID string) (string, error) {
	var img string
	if err := s.pool.QueryRow(ctx, "player_image", playerID).Scan(&img); err != nil {
		return "", fmt.Errorf("player image: %w", err)
	}
	return img, nil
}

// TeamInfo carries the presentation fields of a team.
type TeamInfo struct {
	Name string
	Flag string
}

// TeamFlags loads the id -> name/flag map used to decorate team categories.
func (s *PlayerStore) TeamFlags(ctx context.Context) (map[string]TeamInfo, error) {
	rows, err := s.pool.Query(ctx, "team_flags")
	if err != nil {
		return nil, fmt.Errorf("team flags: %w", err)
	}
	defer rows.Close()

	out := make(map[string]TeamInfo)
	for rows.Next() {
		var id string
		var info TeamInfo
		var flag *string
		if err := rows.Scan(&id, &info.Name, &flag); err != nil {
			return nil, fmt.Errorf("scan team: %w", err)
		}
		if flag != nil {
			info.Flag = *flag
		}
		out[id] = info
	}
	return out, rows.Err()
}
