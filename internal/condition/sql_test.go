package condition

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vschuh/eurogrid/internal/category"
)

func TestSQLTeamMembership(t *testing.T) {
	frag, values := SQL(TeamMembership{TeamIDs: []string{"101", "111"}}, "p", 1)

	assert.Contains(t, frag, "pr.playerid=p.id")
	assert.Contains(t, frag, "tr.teamid::text IN ($1,$2)")
	assert.Equal(t, []any{"101", "111"}, values)
}

func TestSQLPlaceholderOffsets(t *testing.T) {
	// Fragments joined into one query must not collide on placeholders.
	frag, values := SQL(TournamentMatch{Pattern: "Haarlem"}, "p", 3)
	assert.Contains(t, frag, "te.category ILIKE $3")
	assert.Equal(t, []any{"Haarlem"}, values)

	frag, values = SQL(YearMatch{Year: 2019}, "p", 5)
	assert.Contains(t, frag, "te.year = $5")
	assert.Equal(t, []any{2019}, values)

	frag, _ = SQL(NationalityMatch{Code: "CW"}, "pl", 2)
	assert.Equal(t, "pl.nationality = $2", frag)
}

func TestSQLPosition(t *testing.T) {
	frag, values := SQL(PositionMatch{Position: "SS"}, "p", 1)
	assert.Contains(t, frag, "$1 = ANY(pg.pos)")
	assert.Equal(t, []any{"SS"}, values)
}

func TestSQLSeasonalCountingStat(t *testing.T) {
	frag, values := SQL(StatThreshold{
		Scope: ScopeSeasonal, Stat: "homeruns", Column: "homerun", Op: OpAtLeast, Value: int64(10),
	}, "p", 1)

	assert.Contains(t, frag, "ps.homerun >= $1")
	assert.NotContains(t, frag, "ps.pa >=")
	assert.Equal(t, []any{int64(10)}, values)
}

func TestSQLSeasonalRateCarriesQualifier(t *testing.T) {
	frag, _ := SQL(StatThreshold{
		Scope: ScopeSeasonal, Stat: "avg", Column: "avg", Rate: true, Op: OpAtLeast, Value: 0.350,
	}, "p", 1)
	assert.Contains(t, frag, "ps.avg >= $1")
	assert.Contains(t, frag, "ps.pa >= 10")

	frag, _ = SQL(StatThreshold{
		Scope: ScopeSeasonal, Stat: "pitching_era", Column: "pitching_era", Rate: true, Op: OpAtMost, Value: 2.50,
	}, "p", 1)
	assert.Contains(t, frag, "ps.pitching_era <= $1")
	assert.Contains(t, frag, "ps.pitching_ip >= 30")
}

func TestSQLYearScopeGroupsByYear(t *testing.T) {
	frag, values := SQL(StatThreshold{
		Scope: ScopeYear, Stat: "hits", Column: "h", Op: OpAtLeast, Value: int64(60),
	}, "p", 1)

	assert.Contains(t, frag, "GROUP BY te.year")
	assert.Contains(t, frag, "HAVING SUM(ps.h) >= $1")
	assert.Equal(t, []any{int64(60)}, values)
}

func TestSQLCareerRateRecomputesFromComponents(t *testing.T) {
	frag, _ := SQL(StatThreshold{
		Scope: ScopeCareer, Stat: "avg", Column: "avg", Rate: true, Op: OpAtLeast, Value: 0.300,
	}, "p", 1)

	// A career average is hits over at-bats, not an average of seasonal rates.
	assert.Contains(t, frag, "SUM(ps.h)::decimal / NULLIF(SUM(ps.ab), 0)")
	assert.Contains(t, frag, "SUM(ps.pa) >= 100")

	frag, _ = SQL(StatThreshold{
		Scope: ScopeCareer, Stat: "pitching_era", Column: "pitching_era", Rate: true, Op: OpAtMost, Value: 3.0,
	}, "p", 1)
	assert.Contains(t, frag, "(SUM(ps.pitching_er) * 27) / NULLIF(SUM(ps.pitching_ip), 0)")
	assert.Contains(t, frag, "SUM(ps.pitching_ip) >= 300")
}

func TestSQLRareFeats(t *testing.T) {
	frag, values := SQL(RareFeat{Feat: FeatCycle}, "p", 1)
	assert.Contains(t, frag, "pg.double >= 1")
	assert.Contains(t, frag, "pg.triple >= 1")
	assert.Empty(t, values)

	frag, values = SQL(RareFeat{Feat: FeatPerfectGame, Op: OpAtLeast, Innings: 7}, "p", 1)
	assert.Contains(t, frag, "pg.pitch_bb = 0")
	assert.Contains(t, frag, "pg.pitch_hbp = 0")
	assert.Contains(t, frag, "pg.pitch_ip >= $1")
	assert.Equal(t, []any{7.0}, values)

	// A no-hitter allows walks and hit batters.
	frag, _ = SQL(RareFeat{Feat: FeatNoHitter, Op: OpAtLeast, Innings: 7}, "p", 1)
	assert.Contains(t, frag, "pg.pitch_h = 0")
	assert.NotContains(t, frag, "pg.pitch_bb")
}

func TestBuildNumbersPlaceholdersFromStart(t *testing.T) {
	c := testCompiler()

	frag, values, err := c.Build(category.Category{Kind: category.KindTeam, Value: "101"}, "p", 4)
	require.NoError(t, err)
	assert.Contains(t, frag, "IN ($4,$5)")
	assert.Len(t, values, 2)
}
