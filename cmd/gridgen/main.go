// Command gridgen is the Eurogrid batch CLI.
//
// Usage:
//
//	gridgen generate --days 7
//	gridgen generate --days 3 --family daily
//	gridgen backfill
//	gridgen export --dir docs/grids
//	gridgen upload
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/vschuh/eurogrid/internal/batch"
	"github.com/vschuh/eurogrid/internal/category"
	"github.com/vschuh/eurogrid/internal/condition"
	"github.com/vschuh/eurogrid/internal/config"
	"github.com/vschuh/eurogrid/internal/db"
	"github.com/vschuh/eurogrid/internal/intersect"
	"github.com/vschuh/eurogrid/internal/merge"
	"github.com/vschuh/eurogrid/internal/search"
	"github.com/vschuh/eurogrid/internal/store"
)

var logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

func main() {
	// Load .env if present
	_ = godotenv.Load(".env")

	root := &cobra.Command{
		Use:   "gridgen",
		Short: "Eurogrid batch grid generation CLI",
	}

	root.AddCommand(generateCmd())
	root.AddCommand(backfillCmd())
	root.AddCommand(exportCmd())
	root.AddCommand(uploadCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// --------------------------------------------------------------------------
// generate command
// --------------------------------------------------------------------------

func generateCmd() *cobra.Command {
	var days int
	var family string
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate scheduled grids for the coming days",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithPool(func(ctx context.Context, cfg *config.Config, pool *db.Pool) error {
				runner, families, err := buildRunner(ctx, cfg, pool)
				if err != nil {
					return err
				}
				if family != "" {
					families = filterFamilies(families, family)
					if len(families) == 0 {
						return fmt.Errorf("unknown family %q", family)
					}
				}

				start := time.Now()
				result := runner.Run(ctx, families, days)
				logger.Info("Generation finished",
					"duration", time.Since(start).Round(time.Second),
					"summary", result.Summary())
				for _, e := range result.Errors {
					logger.Error("generation error", "error", e)
				}
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&days, "days", 7, "Number of days to schedule, starting today")
	cmd.Flags().StringVar(&family, "family", "", "Generate only this family; empty = all")
	return cmd
}

func filterFamilies(families []batch.Family, name string) []batch.Family {
	out := families[:0]
	for _, f := range families {
		if f.Name == name {
			out = append(out, f)
		}
	}
	return out
}

// --------------------------------------------------------------------------
// backfill command
// --------------------------------------------------------------------------

func backfillCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "backfill",
		Short: "Precompute answer counts for grids missing them",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithPool(func(ctx context.Context, cfg *config.Config, pool *db.Pool) error {
				runner, _, err := buildRunner(ctx, cfg, pool)
				if err != nil {
					return err
				}
				start := time.Now()
				n, err := runner.Backfill(ctx)
				if err != nil {
					return err
				}
				logger.Info("Backfill finished",
					"updated", n,
					"duration", time.Since(start).Round(time.Second))
				return nil
			})
		},
	}
}

// --------------------------------------------------------------------------
// export command
// --------------------------------------------------------------------------

func exportCmd() *cobra.Command {
	var dir string
	var family string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write future grids to JSON files for static hosting",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithPool(func(ctx context.Context, cfg *config.Config, pool *db.Pool) error {
				grids := store.NewGridStore(pool.Pool)
				rows, err := grids.FutureGrids(ctx, family)
				if err != nil {
					return err
				}
				if err := os.MkdirAll(dir, 0o755); err != nil {
					return fmt.Errorf("create export dir: %w", err)
				}

				for _, g := range rows {
					name := fmt.Sprintf("%s-%s.json", g.Family, g.Date.Format("2006-01-02"))
					path := filepath.Join(dir, name)
					if err := os.WriteFile(path, g.Data, 0o644); err != nil {
						return fmt.Errorf("write %s: %w", path, err)
					}
					logger.Info("grid exported", "file", name)
				}
				logger.Info("Export finished", "count", len(rows), "dir", dir)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "docs/grids", "Output directory")
	cmd.Flags().StringVar(&family, "family", "", "Export only this family; empty = all")
	return cmd
}

// --------------------------------------------------------------------------
// upload command
// --------------------------------------------------------------------------

func uploadCmd() *cobra.Command {
	var family string
	cmd := &cobra.Command{
		Use:   "upload",
		Short: "Copy future grids from the local database to the hosted one",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithPool(func(ctx context.Context, cfg *config.Config, pool *db.Pool) error {
				if cfg.HostedDatabaseURL == "" {
					return fmt.Errorf("HOSTED_DATABASE_URL is required")
				}
				hosted, err := db.NewForURL(ctx, cfg.HostedDatabaseURL, cfg)
				if err != nil {
					return fmt.Errorf("connect to hosted database: %w", err)
				}
				defer hosted.Close()

				local := store.NewGridStore(pool.Pool)
				remote := store.NewGridStore(hosted.Pool)

				rows, err := local.FutureGrids(ctx, family)
				if err != nil {
					return err
				}

				uploaded := 0
				for _, g := range rows {
					date := g.Date.Format("2006-01-02")
					if err := remote.UpsertScheduled(ctx, g.Family, date, g.Data); err != nil {
						logger.Error("upload failed", "family", g.Family, "date", date, "error", err)
						continue
					}
					uploaded++
					logger.Info("grid uploaded", "family", g.Family, "date", date)
				}
				logger.Info("Upload finished", "uploaded", uploaded, "total", len(rows))
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&family, "family", config.FamilyDaily, "Upload only this family; empty = all")
	return cmd
}

// --------------------------------------------------------------------------
// Shared setup
// --------------------------------------------------------------------------

// buildRunner wires the search engine, counter, and batch runner over the
// given pool.
func buildRunner(ctx context.Context, cfg *config.Config, pool *db.Pool) (*batch.Runner, []batch.Family, error) {
	merges, err := merge.Load(cfg.MergeFile)
	if err != nil {
		return nil, nil, fmt.Errorf("load merge table: %w", err)
	}
	lists, err := category.Load(cfg.CategoryFile)
	if err != nil {
		return nil, nil, fmt.Errorf("load category lists: %w", err)
	}

	compiler := condition.NewCompiler(merges)
	players := store.NewPlayerStore(pool.Pool)
	counter := intersect.NewCounter(compiler, players, merges, logger)
	engine := search.NewEngine(counter, search.Config{
		MaxAttempts:       cfg.SearchMaxAttempts,
		MinIntersection:   cfg.SearchMinIntersection,
		PrecomputeAnswers: cfg.SearchPrecomputeAnswers,
	}, logger)

	teams, err := players.TeamFlags(ctx)
	if err != nil {
		logger.Warn("team flag lookup failed, grids go undecorated", "error", err)
		teams = nil
	}

	grids := store.NewGridStore(pool.Pool)
	runner := batch.NewRunner(engine, counter, grids, teams, cfg.PoolRefillFloor, logger)
	return runner, batch.Families(lists), nil
}

// runWithPool handles config loading, DB connection, and context cancellation.
func runWithPool(fn func(ctx context.Context, cfg *config.Config, pool *db.Pool) error) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	pool, err := db.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	return fn(ctx, cfg, pool)
}
