package intersect

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vschuh/eurogrid/internal/category"
	"github.com/vschuh/eurogrid/internal/condition"
	"github.com/vschuh/eurogrid/internal/merge"
)

type fakeStore struct {
	gotCond string
	gotArgs []any
	count   int
	players []Player
	err     error
}

func (f *fakeStore) CountPlayers(ctx context.Context, cond string, args []any) (int, error) {
	f.gotCond = cond
	f.gotArgs = args
	return f.count, f.err
}

func (f *fakeStore) ListPlayers(ctx context.Context, cond string, args []any) ([]Player, error) {
	f.gotCond = cond
	f.gotArgs = args
	return f.players, f.err
}

func testCounter(store *fakeStore) *Counter {
	merges := merge.NewResolver(merge.Table{
		Teams:   map[string][]string{"101": {"111"}},
		Players: map[string][]string{"900": {"901"}},
	})
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewCounter(condition.NewCompiler(merges), store, merges, log)
}

func TestCountConjoinsWithoutPlaceholderCollision(t *testing.T) {
	store := &fakeStore{count: 7}
	c := testCounter(store)

	n := c.Count(context.Background(),
		category.Category{Kind: category.KindTeam, Value: "101"},
		category.Category{Kind: category.KindYear, Value: "2019"})

	assert.Equal(t, 7, n)
	assert.Contains(t, store.gotCond, " AND ")
	// Team expands to two ids, so the year predicate starts at $3.
	assert.Contains(t, store.gotCond, "IN ($1,$2)")
	assert.Contains(t, store.gotCond, "te.year = $3")
	require.Len(t, store.gotArgs, 3)
	assert.Equal(t, 2019, store.gotArgs[2])
}

func TestCountIsSymmetric(t *testing.T) {
	store := &fakeStore{count: 4}
	c := testCounter(store)

	team := category.Category{Kind: category.KindTeam, Value: "101"}
	year := category.Category{Kind: category.KindYear, Value: "2019"}

	ab := c.Count(context.Background(), team, year)
	abArgs := store.gotArgs
	ba := c.Count(context.Background(), year, team)

	assert.Equal(t, ab, ba)
	assert.ElementsMatch(t, abArgs, store.gotArgs)
}

func TestCountInvalidCategoryIsZero(t *testing.T) {
	store := &fakeStore{count: 99}
	c := testCounter(store)

	n := c.Count(context.Background(),
		category.Category{Kind: "nonsense", Value: "1"},
		category.Category{Kind: category.KindYear, Value: "2019"})

	assert.Zero(t, n)
	assert.Empty(t, store.gotCond, "invalid categories must not reach the store")
}

func TestCountQueryErrorDegradesToZero(t *testing.T) {
	store := &fakeStore{err: errors.New("connection reset")}
	c := testCounter(store)

	n := c.Count(context.Background(),
		category.Category{Kind: category.KindYear, Value: "2018"},
		category.Category{Kind: category.KindYear, Value: "2019"})
	assert.Zero(t, n)
}

func TestNamesDeduplicatesAliasRecords(t *testing.T) {
	store := &fakeStore{players: []Player{
		{ID: "900", FirstName: "Rob", LastName: "Cordemans"},
		{ID: "901", FirstName: "Rob", LastName: "Cordemans"},
		{ID: "333", FirstName: "Nick", LastName: "Stuifbergen"},
	}}
	c := testCounter(store)

	names := c.Names(context.Background(),
		category.Category{Kind: category.KindYear, Value: "2010"},
		category.Category{Kind: category.KindNationality, Value: "NL"})

	assert.Equal(t, []string{"Rob Cordemans", "Nick Stuifbergen"}, names)
}

func TestNamesInvalidCategoryIsNil(t *testing.T) {
	c := testCounter(&fakeStore{})
	names := c.Names(context.Background(),
		category.Category{Kind: category.KindTeam, Value: ""},
		category.Category{Kind: category.KindYear, Value: "2010"})
	assert.Nil(t, names)
}
