package search

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/vschuh/eurogrid/internal/category"
)

// ErrExhausted reports that every template was tried without producing a
// valid grid. It is an expected outcome for depleted or incompatible pools,
// not a fault.
var ErrExhausted = errors.New("all templates exhausted")

// Counter supplies pairwise intersection counts. Invalid categories and
// failed queries count as zero.
type Counter interface {
	Count(ctx context.Context, a, b category.Category) int
}

// Config tunes the search. Zero values fall back to the defaults below.
type Config struct {
	// MaxAttempts bounds anchor draws per template.
	MaxAttempts int
	// MinIntersection is the qualifying-player floor every cell must clear.
	MinIntersection int
	// PrecomputeAnswers attaches the nine exact cell counts on success.
	PrecomputeAnswers bool
}

const (
	defaultMaxAttempts     = 250
	defaultMinIntersection = 3
)

func (c Config) withDefaults() Config {
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = defaultMaxAttempts
	}
	if c.MinIntersection <= 0 {
		c.MinIntersection = defaultMinIntersection
	}
	return c
}

// Engine searches category pools for a valid grid.
type Engine struct {
	counter Counter
	cfg     Config
	log     *slog.Logger
}

// NewEngine creates a search engine.
func NewEngine(counter Counter, cfg Config, log *slog.Logger) *Engine {
	return &Engine{counter: counter, cfg: cfg.withDefaults(), log: log}
}

// Generate tries the templates in uniformly random order against the given
// pools and returns the first valid grid found, or ErrExhausted. The pools
// are never mutated; every template attempt works on its own copy.
func (e *Engine) Generate(ctx context.Context, pools category.Pools, templates []Template) (*Grid, error) {
	order := append([]Template(nil), templates...)
	rand.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })

	for _, tpl := range order {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if g := e.tryTemplate(ctx, pools, tpl); g != nil {
			return g, nil
		}
	}
	return nil, ErrExhausted
}

// tryTemplate runs the bounded anchor-draw loop for one template.
func (e *Engine) tryTemplate(ctx context.Context, master category.Pools, tpl Template) *Grid {
	avail := master.Copy()
	for _, cats := range avail {
		shuffleCategories(cats)
	}

	for attempt := 0; attempt < e.cfg.MaxAttempts; attempt++ {
		anchorPool := avail[tpl.Rows[0]]
		if len(anchorPool) == 0 {
			return nil
		}
		// Pool is shuffled, so popping the tail is a uniform random draw.
		anchor := anchorPool[len(anchorPool)-1]
		avail[tpl.Rows[0]] = anchorPool[:len(anchorPool)-1]

		cols, ok := e.findCompatibleColumns(ctx, avail, tpl.Cols, anchor)
		if !ok {
			continue
		}
		rows, ok := fillRemainingRows(avail, tpl.Rows, anchor, cols)
		if !ok {
			continue
		}
		if !e.validateRemaining(ctx, rows, cols) {
			continue
		}

		g := &Grid{Rows: append([]category.Category{anchor}, rows...), Cols: cols}
		if e.cfg.PrecomputeAnswers {
			g.Answers = e.answers(ctx, g)
		}
		e.log.Info("grid found", "attempt", attempt+1, "template", tpl)
		return g
	}
	return nil
}

// findCompatibleColumns picks, for each column slot, the first shuffled
// candidate whose intersection with the anchor clears the floor. Failing any
// one slot fails the whole attempt.
func (e *Engine) findCompatibleColumns(ctx context.Context, avail category.Pools, slots [3]category.Slot, anchor category.Category) ([]category.Category, bool) {
	used := map[string]bool{anchor.Value: true}
	cols := make([]category.Category, 0, 3)

	for _, slot := range slots {
		candidates := append([]category.Category(nil), avail[slot]...)
		shuffleCategories(candidates)

		found := false
		for _, cand := range candidates {
			if used[cand.Value] {
				continue
			}
			if e.counter.Count(ctx, anchor, cand) < e.cfg.MinIntersection {
				continue
			}
			cols = append(cols, cand)
			used[cand.Value] = true
			avail[slot] = removeByValue(avail[slot], cand.Value)
			found = true
			break
		}
		if !found {
			return nil, false
		}
	}
	return cols, true
}

// fillRemainingRows takes the first pool item per remaining row slot whose
// value is not already on the grid.
func fillRemainingRows(avail category.Pools, rowSlots [3]category.Slot, anchor category.Category, cols []category.Category) ([]category.Category, bool) {
	used := map[string]bool{anchor.Value: true}
	for _, c := range cols {
		used[c.Value] = true
	}

	rows := make([]category.Category, 0, 2)
	for _, slot := range rowSlots[1:] {
		for _, cand := range avail[slot] {
			if used[cand.Value] {
				continue
			}
			rows = append(rows, cand)
			used[cand.Value] = true
			break
		}
	}
	return rows, len(rows) == 2
}

// validateRemaining checks the 2x3 cells not already covered by column
// selection; with those, all nine cells clear the floor.
func (e *Engine) validateRemaining(ctx context.Context, rows, cols []category.Category) bool {
	for _, row := range rows {
		for _, col := range cols {
			if e.counter.Count(ctx, row, col) < e.cfg.MinIntersection {
				return false
			}
		}
	}
	return true
}

// answers computes the exact count for all nine cells, keyed "row-col".
func (e *Engine) answers(ctx context.Context, g *Grid) map[string]int {
	out := make(map[string]int, 9)
	for i, row := range g.Rows {
		for j, col := range g.Cols {
			out[fmt.Sprintf("%d-%d", i, j)] = e.counter.Count(ctx, row, col)
		}
	}
	return out
}

func shuffleCategories(cats []category.Category) {
	rand.Shuffle(len(cats), func(i, j int) { cats[i], cats[j] = cats[j], cats[i] })
}

func removeByValue(cats []category.Category, value string) []category.Category {
	out := cats[:0]
	for _, c := range cats {
		if c.Value != value {
			out = append(out, c)
		}
	}
	return out
}
