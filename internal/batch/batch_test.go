package batch

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vschuh/eurogrid/internal/category"
	"github.com/vschuh/eurogrid/internal/search"
	"github.com/vschuh/eurogrid/internal/store"
)

type staticCounter int

func (s staticCounter) Count(context.Context, category.Category, category.Category) int {
	return int(s)
}

type memGridStore struct {
	saved   map[string][]byte // family/date -> data
	updated map[int64][]byte
	missing []store.StoredGrid
}

func newMemGridStore() *memGridStore {
	return &memGridStore{saved: map[string][]byte{}, updated: map[int64][]byte{}}
}

func (m *memGridStore) Exists(_ context.Context, family, date string) (bool, error) {
	_, ok := m.saved[family+"/"+date]
	return ok, nil
}

func (m *memGridStore) UpsertScheduled(_ context.Context, family, date string, data []byte) error {
	m.saved[family+"/"+date] = data
	return nil
}

func (m *memGridStore) MissingAnswers(context.Context) ([]store.StoredGrid, error) {
	return m.missing, nil
}

func (m *memGridStore) UpdateData(_ context.Context, id int64, data []byte) error {
	m.updated[id] = data
	return nil
}

func discard() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

func testPools() category.Pools {
	mk := func(prefix string, n int) []category.Category {
		out := make([]category.Category, n)
		for i := range out {
			out[i] = category.Category{Kind: category.KindTeam, Value: prefix + string(rune('a'+i))}
		}
		return out
	}
	return category.Pools{
		"T": mk("team-", 8),
		"N": mk("nat-", 6),
		"R": mk("tour-", 6),
		"S": mk("stat-", 8),
		"A": mk("ncode-", 6),
		"Y": mk("year-", 6),
	}
}

func testFamilies() []Family {
	return []Family{{
		Name:  "daily",
		Pools: testPools(),
		Templates: []search.Template{
			{Rows: [3]category.Slot{"T", "T", "R"}, Cols: [3]category.Slot{"N", "S", "S"}},
		},
	}}
}

func testRunner(counter search.Counter, grids GridStore, teams map[string]store.TeamInfo) *Runner {
	engine := search.NewEngine(counter, search.Config{MaxAttempts: 20, MinIntersection: 3}, discard())
	return NewRunner(engine, counter, grids, teams, 0, discard())
}

func TestRunGeneratesAndPersists(t *testing.T) {
	grids := newMemGridStore()
	r := testRunner(staticCounter(5), grids, nil)

	res := r.Run(context.Background(), testFamilies(), 2)

	assert.Equal(t, 2, res.Generated)
	assert.Zero(t, res.Skipped)
	assert.Empty(t, res.Errors)
	require.Len(t, grids.saved, 2)

	for key, data := range grids.saved {
		var g search.Grid
		require.NoError(t, json.Unmarshal(data, &g), key)
		assert.Len(t, g.Rows, 3)
		assert.Len(t, g.Cols, 3)
	}
}

func TestRunSkipsExistingDates(t *testing.T) {
	grids := newMemGridStore()
	r := testRunner(staticCounter(5), grids, nil)

	first := r.Run(context.Background(), testFamilies(), 1)
	require.Equal(t, 1, first.Generated)

	second := r.Run(context.Background(), testFamilies(), 1)
	assert.Zero(t, second.Generated)
	assert.Equal(t, 1, second.Skipped)
}

func TestRunCountsExhaustedFamilies(t *testing.T) {
	grids := newMemGridStore()
	r := testRunner(staticCounter(0), grids, nil)

	res := r.Run(context.Background(), testFamilies(), 1)

	assert.Equal(t, 1, res.Exhausted)
	assert.Zero(t, res.Generated)
	assert.Empty(t, res.Errors, "exhaustion is not an error")
	assert.Empty(t, grids.saved, "no grid may be persisted on exhaustion")
	assert.Contains(t, res.Summary(), "exhausted=1")
}

func TestRunDecoratesTeamFlags(t *testing.T) {
	grids := newMemGridStore()
	teams := map[string]store.TeamInfo{
		"team-a": {Name: "Team A", Flag: "https://example.com/a.png"},
	}
	r := testRunner(staticCounter(5), grids, teams)

	res := r.Run(context.Background(), testFamilies(), 1)
	require.Equal(t, 1, res.Generated)

	for _, data := range grids.saved {
		var g search.Grid
		require.NoError(t, json.Unmarshal(data, &g))
		for _, c := range append(g.Rows, g.Cols...) {
			if c.Value == "team-a" {
				assert.Equal(t, "https://example.com/a.png", c.Image)
			}
		}
	}
}

func TestBackfillFillsAnswersAndPreservesFields(t *testing.T) {
	grids := newMemGridStore()
	raw, err := json.Marshal(map[string]any{
		"rows": []category.Category{
			{Kind: category.KindTeam, Value: "1"},
			{Kind: category.KindTeam, Value: "2"},
			{Kind: category.KindTeam, Value: "3"},
		},
		"cols": []category.Category{
			{Kind: category.KindTeam, Value: "4"},
			{Kind: category.KindTeam, Value: "5"},
			{Kind: category.KindTeam, Value: "6"},
		},
		"note": "keep me",
	})
	require.NoError(t, err)
	grids.missing = []store.StoredGrid{{ID: 42, Family: "daily", Data: raw}}

	r := testRunner(staticCounter(7), grids, nil)
	n, err := r.Backfill(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	var out map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(grids.updated[42], &out))
	assert.Contains(t, out, "note")

	var answers map[string]int
	require.NoError(t, json.Unmarshal(out["answers"], &answers))
	require.Len(t, answers, 9)
	assert.Equal(t, 7, answers["0-0"])
	assert.Equal(t, 7, answers["2-2"])
}

func TestBackfillSkipsMalformedGrid(t *testing.T) {
	grids := newMemGridStore()
	grids.missing = []store.StoredGrid{
		{ID: 1, Data: []byte(`{"rows": [], "cols": []}`)},
		{ID: 2, Data: []byte(`not json`)},
	}

	r := testRunner(staticCounter(7), grids, nil)
	n, err := r.Backfill(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Empty(t, grids.updated)
}
