// Package intersect counts and lists the players satisfying two categories
// at once. Cell counts drive grid-validity search; name lists back the
// answer-reveal endpoint.
package intersect

import (
	"context"
	"log/slog"

	"github.com/vschuh/eurogrid/internal/category"
	"github.com/vschuh/eurogrid/internal/condition"
	"github.com/vschuh/eurogrid/internal/merge"
)

// Player is one matching player row.
type Player struct {
	ID        string
	FirstName string
	LastName  string
}

// Store executes parameterized predicate fragments against the player table.
// The fragment is a boolean condition over the alias "p"; implementations
// wrap it in the appropriate COUNT/SELECT query.
type Store interface {
	// CountPlayers returns COUNT(DISTINCT p.id) for players matching the
	// condition.
	CountPlayers(ctx context.Context, condition string, args []any) (int, error)
	// ListPlayers returns distinct matching players ordered by surname then
	// given name.
	ListPlayers(ctx context.Context, condition string, args []any) ([]Player, error)
}

// Counter evaluates category pairs. A category that fails to compile yields
// zero matches rather than an error, so one bad category never aborts a
// batch search; query failures likewise degrade to zero after logging the
// predicate and bound values.
type Counter struct {
	compiler *condition.Compiler
	store    Store
	merges   *merge.Resolver
	log      *slog.Logger
}

// NewCounter wires a counter to its compiler, store, and alias resolver.
func NewCounter(c *condition.Compiler, s Store, m *merge.Resolver, log *slog.Logger) *Counter {
	return &Counter{compiler: c, store: s, merges: m, log: log}
}

// conjoin compiles both categories with non-overlapping placeholder ranges
// and joins them into a single condition. ok is false when either category
// is invalid.
func (c *Counter) conjoin(a, b category.Category) (cond string, args []any, ok bool) {
	fragA, valuesA, err := c.compiler.Build(a, "p", 1)
	if err != nil {
		c.log.Warn("intersection skipped: invalid category", "kind", a.Kind, "value", a.Value, "error", err)
		return "", nil, false
	}
	fragB, valuesB, err := c.compiler.Build(b, "p", len(valuesA)+1)
	if err != nil {
		c.log.Warn("intersection skipped: invalid category", "kind", b.Kind, "value", b.Value, "error", err)
		return "", nil, false
	}
	args = append(args, valuesA...)
	args = append(args, valuesB...)
	return fragA + " AND " + fragB, args, true
}

// Count returns the number of distinct players satisfying both categories.
func (c *Counter) Count(ctx context.Context, a, b category.Category) int {
	cond, args, ok := c.conjoin(a, b)
	if !ok {
		return 0
	}
	n, err := c.store.CountPlayers(ctx, cond, args)
	if err != nil {
		c.log.Error("intersection count failed", "condition", cond, "values", args, "error", err)
		return 0
	}
	return n
}

// Names returns the display names of players satisfying both categories,
// ordered by surname then given name and deduplicated by canonical player
// identity so alias records never double-count one real player.
func (c *Counter) Names(ctx context.Context, a, b category.Category) []string {
	cond, args, ok := c.conjoin(a, b)
	if !ok {
		return nil
	}
	players, err := c.store.ListPlayers(ctx, cond, args)
	if err != nil {
		c.log.Error("intersection list failed", "condition", cond, "values", args, "error", err)
		return nil
	}

	seen := make(map[string]bool, len(players))
	names := make([]string, 0, len(players))
	for _, p := range players {
		canon := c.merges.PlayerID(p.ID)
		if seen[canon] {
			continue
		}
		seen[canon] = true
		names = append(names, p.FirstName+" "+p.LastName)
	}
	return names
}
