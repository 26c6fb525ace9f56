package merge

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testResolver() *Resolver {
	return NewResolver(Table{
		Teams: map[string][]string{
			"101": {"111", "112"},
			"202": {},
		},
		Players: map[string][]string{
			"900": {"901", "902"},
		},
	})
}

func TestTeamIDsExpandsAliases(t *testing.T) {
	r := testResolver()

	ids := r.TeamIDs("101")
	assert.ElementsMatch(t, []string{"101", "111", "112"}, ids)

	// Lookup through an alias resolves the same identity set.
	assert.ElementsMatch(t, ids, r.TeamIDs("112"))
}

func TestTeamIDsUnknownResolvesToSelf(t *testing.T) {
	r := testResolver()
	assert.Equal(t, []string{"999"}, r.TeamIDs("999"))
	assert.Equal(t, []string{"202"}, r.TeamIDs("202"))
}

func TestPlayerIDIsIdempotent(t *testing.T) {
	r := testResolver()

	assert.Equal(t, "900", r.PlayerID("901"))
	assert.Equal(t, "900", r.PlayerID("900"))
	assert.Equal(t, r.PlayerID("902"), r.PlayerID(r.PlayerID("902")))
	assert.Equal(t, "555", r.PlayerID("555"))
}

func TestPlayerIDsFullIdentitySet(t *testing.T) {
	r := testResolver()
	assert.ElementsMatch(t, []string{"900", "901", "902"}, r.PlayerIDs("901"))
	assert.Equal(t, []string{"555"}, r.PlayerIDs("555"))
}

func TestReturnedSlicesAreCopies(t *testing.T) {
	r := testResolver()
	ids := r.TeamIDs("101")
	ids[0] = "mutated"
	assert.ElementsMatch(t, []string{"101", "111", "112"}, r.TeamIDs("101"))
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "merges.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"teams":{"1":["2"]},"players":{}}`), 0o644))

	r, err := Load(path)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"1", "2"}, r.TeamIDs("2"))
}

func TestLoadRejectsBadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "merges.json")
	require.NoError(t, os.WriteFile(path, []byte(`{`), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}
