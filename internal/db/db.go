// Package db provides a pgxpool-based connection pool with prepared
// statement registration and health checking.
package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vschuh/eurogrid/internal/config"
)

// Pool wraps pgxpool.Pool with application-specific helpers.
type Pool struct {
	*pgxpool.Pool
}

// New creates and validates a new connection pool.
func New(ctx context.Context, cfg *config.Config) (*Pool, error) {
	return NewForURL(ctx, cfg.DatabaseURL, cfg)
}

// NewForURL creates a pool against an explicit URL. The gridgen upload
// command uses this to open the hosted database alongside the primary one.
func NewForURL(ctx context.Context, url string, cfg *config.Config) (*Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, fmt.Errorf("parse database URL: %w", err)
	}

	poolCfg.MinConns = int32(cfg.DBPoolMinConns)
	poolCfg.MaxConns = int32(cfg.DBPoolMaxConns)
	poolCfg.MaxConnLifetime = cfg.DBPoolMaxLife
	poolCfg.MaxConnIdleTime = 5 * time.Minute

	// Register prepared statements on every new connection.
	poolCfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		return registerPreparedStatements(ctx, conn)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	// Verify connectivity
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &Pool{Pool: pool}, nil
}

// HealthCheck runs a trivial query to verify the database is reachable.
func (p *Pool) HealthCheck(ctx context.Context) error {
	var n int
	return p.QueryRow(ctx, "health_check").Scan(&n)
}

// registerPreparedStatements registers the fixed-shape queries the API and
// the generator reuse on every request. Intersection predicates are composed
// dynamically per category pair and cannot be prepared here.
func registerPreparedStatements(ctx context.Context, conn *pgx.Conn) error {
	stmts := map[string]string{
		// Health
		"health_check": "SELECT 1",

		// Teams (grid enrichment: club crest/flag images)
		"team_flags": "SELECT id, name, flag FROM team",

		// Players
		"player_search": "SELECT p.id, p.firstname, p.lastname, p.dob FROM player p WHERE unaccent(p.firstname || ' ' || p.lastname) ILIKE unaccent($1) ORDER BY p.lastname, p.firstname LIMIT 20",
		"player_image": `SELECT COALESCE(
			(SELECT imglink FROM player_record pr2
			 JOIN tournamentevent te2 ON te2.id = pr2.tournamentid
			 WHERE pr2.playerid = $1 AND pr2.imglink != 'https://static.wbsc.org/assets/images/default-player.jpg'
			 ORDER BY te2.year DESC, pr2.id ASC LIMIT 1),
			'https://static.wbsc.org/assets/images/default-player.jpg'
		) AS imglink`,

		// Grids
		"latest_grid":           "SELECT grid_data FROM grids WHERE type = $1 ORDER BY grid_date DESC LIMIT 1",
		"custom_grid":           "SELECT grid_data FROM grids WHERE id = $1 AND type = 'custom'",
		"grid_exists":           "SELECT 1 FROM grids WHERE type = $1 AND grid_date = $2",
		"upsert_grid":           "INSERT INTO grids (type, grid_date, grid_data) VALUES ($1, $2, $3) ON CONFLICT (type, grid_date) DO NOTHING",
		"insert_custom_grid":    "INSERT INTO grids (type, grid_data) VALUES ('custom', $1) RETURNING id",
		"delete_expired_custom": "DELETE FROM grids WHERE type = 'custom' AND created_at < NOW() - INTERVAL '24 hours'",
		"grids_missing_answers": "SELECT id, type, grid_date, grid_data FROM grids WHERE NOT (grid_data ? 'answers') AND grid_date >= CURRENT_DATE",
		"update_grid_data":      "UPDATE grids SET grid_data = $1 WHERE id = $2",
		"future_grids":          "SELECT id, type, grid_date, grid_data FROM grids WHERE grid_date >= CURRENT_DATE",
		"future_family_grids":   "SELECT id, type, grid_date, grid_data FROM grids WHERE type = $1 AND grid_date >= CURRENT_DATE",
	}

	for name, sql := range stmts {
		if _, err := conn.Prepare(ctx, name, sql); err != nil {
			return fmt.Errorf("prepare %q: %w", name, err)
		}
	}
	return nil
}
