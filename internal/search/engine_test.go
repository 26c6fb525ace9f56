package search

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vschuh/eurogrid/internal/category"
)

// countFunc adapts a function to the Counter interface.
type countFunc func(a, b category.Category) int

func (f countFunc) Count(_ context.Context, a, b category.Category) int { return f(a, b) }

func discard() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

func pool(prefix string, n int) []category.Category {
	out := make([]category.Category, n)
	for i := range out {
		out[i] = category.Category{
			Label: prefix,
			Kind:  category.KindTeam,
			Value: prefix + string(rune('a'+i)),
		}
	}
	return out
}

func testPools() category.Pools {
	return category.Pools{
		"T": pool("team-", 6),
		"N": pool("nat-", 4),
		"R": pool("tour-", 4),
		"S": pool("stat-", 6),
		"A": pool("ncode-", 4),
		"Y": pool("year-", 4),
	}
}

var testTemplates = []Template{
	{Rows: [3]category.Slot{"T", "T", "R"}, Cols: [3]category.Slot{"N", "S", "S"}},
	{Rows: [3]category.Slot{"T", "S", "R"}, Cols: [3]category.Slot{"A", "Y", "N"}},
}

func TestGenerateProducesValidGrid(t *testing.T) {
	allPass := countFunc(func(a, b category.Category) int { return 5 })
	e := NewEngine(allPass, Config{MinIntersection: 3, PrecomputeAnswers: true}, discard())

	g, err := e.Generate(context.Background(), testPools(), testTemplates)
	require.NoError(t, err)

	require.Len(t, g.Rows, 3)
	require.Len(t, g.Cols, 3)

	// Six distinct category values.
	values := map[string]bool{}
	for _, c := range append(append([]category.Category{}, g.Rows...), g.Cols...) {
		values[c.Value] = true
	}
	assert.Len(t, values, 6)

	// Nine precomputed answers, all at the counter's value.
	require.Len(t, g.Answers, 9)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			key := string(rune('0'+i)) + "-" + string(rune('0'+j))
			assert.Equal(t, 5, g.Answers[key])
		}
	}
}

func TestGenerateSkipsAnswersWhenDisabled(t *testing.T) {
	allPass := countFunc(func(a, b category.Category) int { return 5 })
	e := NewEngine(allPass, Config{MinIntersection: 3}, discard())

	g, err := e.Generate(context.Background(), testPools(), testTemplates)
	require.NoError(t, err)
	assert.Nil(t, g.Answers)
}

func TestGenerateExhaustsWhenNoPairQualifies(t *testing.T) {
	nonePass := countFunc(func(a, b category.Category) int { return 0 })
	e := NewEngine(nonePass, Config{MaxAttempts: 10, MinIntersection: 3}, discard())

	_, err := e.Generate(context.Background(), testPools(), testTemplates)
	assert.ErrorIs(t, err, ErrExhausted)
}

func TestGenerateHonorsMinIntersection(t *testing.T) {
	// Counts of exactly 2 must fail a floor of 3.
	twoEach := countFunc(func(a, b category.Category) int { return 2 })
	e := NewEngine(twoEach, Config{MaxAttempts: 10, MinIntersection: 3}, discard())

	_, err := e.Generate(context.Background(), testPools(), testTemplates)
	assert.ErrorIs(t, err, ErrExhausted)

	// The same counts pass a floor of 2.
	e = NewEngine(twoEach, Config{MaxAttempts: 10, MinIntersection: 2}, discard())
	_, err = e.Generate(context.Background(), testPools(), testTemplates)
	assert.NoError(t, err)
}

func TestGenerateDoesNotMutateMasterPools(t *testing.T) {
	allPass := countFunc(func(a, b category.Category) int { return 5 })
	e := NewEngine(allPass, Config{MinIntersection: 3}, discard())

	master := testPools()
	want := map[category.Slot]int{}
	for slot, cats := range master {
		want[slot] = len(cats)
	}

	_, err := e.Generate(context.Background(), master, testTemplates)
	require.NoError(t, err)

	for slot, cats := range master {
		assert.Equal(t, want[slot], len(cats), "slot %s", slot)
	}
}

func TestGenerateStopsOnCancelledContext(t *testing.T) {
	allPass := countFunc(func(a, b category.Category) int { return 5 })
	e := NewEngine(allPass, Config{MinIntersection: 3}, discard())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := e.Generate(ctx, testPools(), testTemplates)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestGenerateEmptyAnchorPoolFailsCleanly(t *testing.T) {
	allPass := countFunc(func(a, b category.Category) int { return 5 })
	e := NewEngine(allPass, Config{MinIntersection: 3}, discard())

	pools := testPools()
	pools["T"] = nil

	_, err := e.Generate(context.Background(), pools, testTemplates)
	assert.ErrorIs(t, err, ErrExhausted)
}
