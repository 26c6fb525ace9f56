package condition

import (
	"fmt"
	"strings"
)

// Minimum sample-size qualifiers for rate stats, keyed by scope. Without
// them a two-at-bat .500 hitter satisfies every batting-average category.
const (
	seasonalMinPA = 10
	seasonalMinIP = 30
	yearMinPA     = 30
	yearMinIP     = 90
	careerMinPA   = 100
	careerMinIP   = 300
)

// SQL lowers an expression to a Postgres boolean fragment over the player
// row aliased by playerAlias. Placeholders are numbered consecutively from
// start so two fragments can be conjoined into one query without collisions.
func SQL(e Expr, playerAlias string, start int) (string, []any) {
	id := playerAlias + ".id"

	switch x := e.(type) {
	case TeamMembership:
		ph := make([]string, len(x.TeamIDs))
		values := make([]any, len(x.TeamIDs))
		for i, teamID := range x.TeamIDs {
			ph[i] = fmt.Sprintf("$%d", start+i)
			values[i] = teamID
		}
		frag := fmt.Sprintf(
			"EXISTS (SELECT 1 FROM player_record pr JOIN teamrecord tr ON pr.teamid=tr.id WHERE pr.playerid=%s AND tr.teamid::text IN (%s))",
			id, strings.Join(ph, ","))
		return frag, values

	case TournamentMatch:
		frag := fmt.Sprintf(
			"EXISTS (SELECT 1 FROM player_record pr JOIN tournamentevent te ON pr.tournamentid=te.id WHERE pr.playerid=%s AND te.category ILIKE $%d)",
			id, start)
		return frag, []any{x.Pattern}

	case YearMatch:
		frag := fmt.Sprintf(
			"EXISTS (SELECT 1 FROM player_record pr JOIN tournamentevent te ON pr.tournamentid=te.id WHERE pr.playerid=%s AND te.year = $%d)",
			id, start)
		return frag, []any{x.Year}

	case NationalityMatch:
		return fmt.Sprintf("%s.nationality = $%d", playerAlias, start), []any{x.Code}

	case PositionMatch:
		frag := fmt.Sprintf(
			"EXISTS (SELECT 1 FROM player_record pr JOIN player_game pg ON pg.playerid = pr.id WHERE pr.playerid = %s AND $%d = ANY(pg.pos))",
			id, start)
		return frag, []any{x.Position}

	case StatThreshold:
		return statSQL(x, id, start)

	case RareFeat:
		return featSQL(x, id, start)
	}

	// Unreachable for expressions produced by Compile.
	return "", nil
}

func statSQL(x StatThreshold, id string, start int) (string, []any) {
	switch x.Scope {
	case ScopeSeasonal:
		cond := fmt.Sprintf("ps.%s %s $%d", x.Column, x.Op, start)
		if x.Rate {
			cond += rateQualifier(x.Stat, seasonalMinPA, seasonalMinIP)
		}
		frag := fmt.Sprintf(
			"EXISTS (SELECT 1 FROM player_record pr JOIN player_statistics ps ON pr.id = ps.player_record_id WHERE pr.playerid = %s AND %s)",
			id, cond)
		return frag, []any{x.Value}

	case ScopeYear:
		having := fmt.Sprintf("SUM(ps.%s) %s $%d", x.Column, x.Op, start)
		if x.Rate {
			having = aggregateRate(x, yearMinPA, yearMinIP, start)
		}
		frag := fmt.Sprintf(
			"EXISTS (SELECT 1 FROM player_record pr JOIN player_statistics ps ON pr.id = ps.player_record_id JOIN tournamentevent te ON pr.tournamentid = te.id WHERE pr.playerid = %s GROUP BY te.year HAVING %s)",
			id, having)
		return frag, []any{x.Value}

	case ScopeCareer:
		if x.Rate {
			frag := fmt.Sprintf(
				"(SELECT %s FROM player_record pr JOIN player_statistics ps ON pr.id = ps.player_record_id WHERE pr.playerid = %s)",
				aggregateRate(x, careerMinPA, careerMinIP, start), id)
			return frag, []any{x.Value}
		}
		frag := fmt.Sprintf(
			"(SELECT SUM(ps.%s) FROM player_statistics ps JOIN player_record pr ON ps.player_record_id = pr.id WHERE pr.playerid = %s) %s $%d",
			x.Column, id, x.Op, start)
		return frag, []any{x.Value}

	case ScopeGame:
		frag := fmt.Sprintf(
			"EXISTS (SELECT 1 FROM player_game pg JOIN player_record pr ON pg.playerid = pr.id WHERE pr.playerid = %s AND pg.%s %s $%d)",
			id, x.Column, x.Op, start)
		return frag, []any{x.Value}
	}
	return "", nil
}

// rateQualifier appends the seasonal small-sample guard for a rate stat.
func rateQualifier(stat string, minPA, minIP int) string {
	if strings.HasPrefix(stat, "pitching_") {
		return fmt.Sprintf(" AND ps.pitching_ip >= %d", minIP)
	}
	return fmt.Sprintf(" AND ps.pa >= %d", minPA)
}

// aggregateRate recomputes a rate stat from aggregated numerator and
// denominator rather than averaging per-season rates.
func aggregateRate(x StatThreshold, minPA, minIP, start int) string {
	switch x.Stat {
	case "avg":
		return fmt.Sprintf(
			"SUM(ps.pa) >= %d AND (SUM(ps.h)::decimal / NULLIF(SUM(ps.ab), 0)) %s $%d",
			minPA, x.Op, start)
	case "pitching_era":
		return fmt.Sprintf(
			"SUM(ps.pitching_ip) >= %d AND ((SUM(ps.pitching_er) * 27) / NULLIF(SUM(ps.pitching_ip), 0)) %s $%d",
			minIP, x.Op, start)
	}
	// Compile only emits aggregatable rates at year/career scope.
	return ""
}

func featSQL(x RareFeat, id string, start int) (string, []any) {
	switch x.Feat {
	case FeatCycle:
		frag := fmt.Sprintf(
			"EXISTS (SELECT 1 FROM player_game pg JOIN player_record pr ON pg.playerid = pr.id WHERE pr.playerid = %s AND (pg.h-pg.double-pg.triple-pg.hr) >= 1 AND pg.double >= 1 AND pg.triple >= 1 AND pg.hr >= 1)",
			id)
		return frag, nil
	case FeatPerfectGame:
		frag := fmt.Sprintf(
			"EXISTS (SELECT 1 FROM player_game pg JOIN player_record pr ON pg.playerid = pr.id WHERE pr.playerid = %s AND pg.pitch_cg = 1 AND pg.pitch_h = 0 AND pg.pitch_bb = 0 AND pg.pitch_hbp = 0 AND pg.pitch_ip %s $%d)",
			id, x.Op, start)
		return frag, []any{x.Innings}
	case FeatNoHitter:
		frag := fmt.Sprintf(
			"EXISTS (SELECT 1 FROM player_game pg JOIN player_record pr ON pg.playerid = pr.id WHERE pr.playerid = %s AND pg.pitch_cg = 1 AND pg.pitch_h = 0 AND pg.pitch_ip %s $%d)",
			id, x.Op, start)
		return frag, []any{x.Innings}
	}
	return "", nil
}
