// Package batch drives scheduled grid generation: for each date in a
// forward window and each grid family, it runs the search engine and
// persists the result. One exhausted family or failed insert never aborts
// sibling work.
package batch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/vschuh/eurogrid/internal/category"
	"github.com/vschuh/eurogrid/internal/config"
	"github.com/vschuh/eurogrid/internal/search"
	"github.com/vschuh/eurogrid/internal/store"
)

// Family bundles a grid family's name, master pools, and template set.
type Family struct {
	Name      string
	Pools     category.Pools
	Templates []search.Template
}

// Families expands the category lists into every schedulable grid family:
// the global daily grid, one family per configured country, and the
// international grid.
func Families(lists *category.Lists) []Family {
	out := []Family{
		{Name: config.FamilyDaily, Pools: lists.DailyPools(), Templates: search.DailyTemplates},
	}
	for _, c := range lists.Countries {
		out = append(out, Family{
			Name:      c.Name,
			Pools:     lists.CountryPools(c),
			Templates: search.CountryTemplates,
		})
	}
	out = append(out, Family{
		Name:      config.FamilyInternational,
		Pools:     lists.InternationalPools(),
		Templates: search.InternationalTemplates,
	})
	return out
}

// GridStore is the persistence surface the runner needs.
type GridStore interface {
	Exists(ctx context.Context, family, date string) (bool, error)
	UpsertScheduled(ctx context.Context, family, date string, data []byte) error
	MissingAnswers(ctx context.Context) ([]store.StoredGrid, error)
	UpdateData(ctx context.Context, id int64, data []byte) error
}

// Result tracks the outcome of one batch pass.
type Result struct {
	Generated int
	Skipped   int
	Exhausted int
	Errors    []string
}

// AddErrorf records a formatted error message.
func (r *Result) AddErrorf(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

// Summary returns a human-readable summary of the batch pass.
func (r *Result) Summary() string {
	return fmt.Sprintf("generated=%d skipped=%d exhausted=%d errors=%d",
		r.Generated, r.Skipped, r.Exhausted, len(r.Errors))
}

// Runner owns the cross-date working sets and the persistence wiring.
type Runner struct {
	engine      *search.Engine
	counter     search.Counter
	grids       GridStore
	teams       map[string]store.TeamInfo
	refillFloor int
	log         *slog.Logger
}

// NewRunner creates a batch runner. teams decorates team categories with
// their flag images before persisting; it may be nil.
func NewRunner(engine *search.Engine, counter search.Counter, grids GridStore, teams map[string]store.TeamInfo, refillFloor int, log *slog.Logger) *Runner {
	return &Runner{
		engine:      engine,
		counter:     counter,
		grids:       grids,
		teams:       teams,
		refillFloor: refillFloor,
		log:         log,
	}
}

// Run generates grids for today plus the following days-1 dates, for every
// family. Existing (family, date) grids are skipped; failed persists are
// left for the next scheduled pass.
func (r *Runner) Run(ctx context.Context, families []Family, days int) Result {
	var res Result

	working := make(map[string]*search.WorkingSet, len(families))
	for _, f := range families {
		working[f.Name] = search.NewWorkingSet(f.Pools, r.refillFloor)
	}

	for day := 0; day < days; day++ {
		date := time.Now().UTC().AddDate(0, 0, day).Format("2006-01-02")

		for _, fam := range families {
			if err := ctx.Err(); err != nil {
				res.AddErrorf("batch interrupted: %v", err)
				return res
			}

			exists, err := r.grids.Exists(ctx, fam.Name, date)
			if err != nil {
				res.AddErrorf("%s/%s: %v", fam.Name, date, err)
				continue
			}
			if exists {
				res.Skipped++
				continue
			}

			ws := working[fam.Name]
			grid, err := r.engine.Generate(ctx, ws.Pools(), fam.Templates)
			if errors.Is(err, search.ErrExhausted) {
				// Normal outcome for depleted or incompatible pools; the
				// date/family stays unfilled until the next run.
				r.log.Warn("no valid grid found", "family", fam.Name, "date", date)
				res.Exhausted++
				continue
			}
			if err != nil {
				res.AddErrorf("%s/%s: %v", fam.Name, date, err)
				continue
			}

			r.decorate(grid)
			data, err := json.Marshal(grid)
			if err != nil {
				res.AddErrorf("%s/%s: marshal: %v", fam.Name, date, err)
				continue
			}
			if err := r.grids.UpsertScheduled(ctx, fam.Name, date, data); err != nil {
				res.AddErrorf("%s/%s: %v", fam.Name, date, err)
				continue
			}

			ws.MarkUsed(grid)
			res.Generated++
			r.log.Info("grid saved", "family", fam.Name, "date", date)
		}
	}
	return res
}

// decorate attaches team flag images to team categories for display.
func (r *Runner) decorate(g *search.Grid) {
	if r.teams == nil {
		return
	}
	fix := func(cats []category.Category) {
		for i, c := range cats {
			if c.Kind != category.KindTeam {
				continue
			}
			if info, ok := r.teams[c.Value]; ok && info.Flag != "" {
				cats[i].Image = info.Flag
			}
		}
	}
	fix(g.Rows)
	fix(g.Cols)
}

// Backfill computes and stores the nine-cell answer counts for every grid
// still missing them, so reveal never pays per-cell query latency.
func (r *Runner) Backfill(ctx context.Context) (int, error) {
	grids, err := r.grids.MissingAnswers(ctx)
	if err != nil {
		return 0, err
	}

	updated := 0
	for _, g := range grids {
		if err := ctx.Err(); err != nil {
			return updated, err
		}

		// Decode loosely to preserve fields beyond rows/cols.
		var full map[string]json.RawMessage
		if err := json.Unmarshal(g.Data, &full); err != nil {
			r.log.Error("backfill: bad grid data", "id", g.ID, "error", err)
			continue
		}
		var grid search.Grid
		if err := json.Unmarshal(g.Data, &grid); err != nil || len(grid.Rows) != 3 || len(grid.Cols) != 3 {
			r.log.Error("backfill: bad grid shape", "id", g.ID, "error", err)
			continue
		}

		answers := make(map[string]int, 9)
		for i, row := range grid.Rows {
			for j, col := range grid.Cols {
				answers[fmt.Sprintf("%d-%d", i, j)] = r.counter.Count(ctx, row, col)
			}
		}
		raw, err := json.Marshal(answers)
		if err != nil {
			return updated, fmt.Errorf("marshal answers: %w", err)
		}
		full["answers"] = raw

		data, err := json.Marshal(full)
		if err != nil {
			return updated, fmt.Errorf("marshal grid %d: %w", g.ID, err)
		}
		if err := r.grids.UpdateData(ctx, g.ID, data); err != nil {
			r.log.Error("backfill: update failed", "id", g.ID, "error", err)
			continue
		}
		updated++
		r.log.Info("answers backfilled", "family", g.Family, "date", g.Date.Format("2006-01-02"))
	}
	return updated, nil
}
