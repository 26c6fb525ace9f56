package condition

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/vschuh/eurogrid/internal/category"
	"github.com/vschuh/eurogrid/internal/merge"
)

// --------------------------------------------------------------------------
// Stat name resolution
// --------------------------------------------------------------------------

// Counting stats resolved to their player_statistics column.
var summableHitting = map[string]string{
	"hits":     "h",
	"homeruns": "homerun",
	"sb":       "sb",
	"bb":       "bb",
	"doubles":  "double",
	"triples":  "triple",
	"rbi":      "rbi",
	"runs":     "r",
	"hbp":      "hbp",
}

var summablePitching = map[string]string{
	"pitching_k":   "pitching_strikeout",
	"pitching_ip":  "pitching_ip",
	"pitching_hbp": "pitching_hbp",
}

// Rate stats resolved to their (quoted where needed) seasonal column.
var rateColumns = map[string]string{
	"avg":          "avg",
	"ops":          `"OPS"`,
	"wOBA":         `"wOBA"`,
	"pitching_era": "pitching_era",
	"pitching_fip": "pitching_fip",
}

// Year/career rate stats are recomputed from aggregated numerators and
// denominators, so only stats whose components the schema carries per season
// are supported at those scopes.
var aggregatableRates = map[string]bool{
	"avg":          true,
	"pitching_era": true,
}

// Single-game stats resolved to their player_game column.
var gameColumns = map[string]string{
	"h":   "h",
	"hr":  "hr",
	"rbi": "rbi",
	"k":   "pitch_so",
}

// --------------------------------------------------------------------------
// Compiler
// --------------------------------------------------------------------------

// Compiler translates category descriptors into predicate expressions. Team
// categories are alias-expanded through the injected merge resolver.
type Compiler struct {
	merges *merge.Resolver
}

// NewCompiler creates a compiler using the given alias resolver.
func NewCompiler(r *merge.Resolver) *Compiler {
	return &Compiler{merges: r}
}

// Compile translates one category into an expression. It returns
// ErrInvalidCategory for unrecognized kinds and for values that do not parse
// to the expected type.
func (c *Compiler) Compile(cat category.Category) (Expr, error) {
	op := OpAtLeast
	if cat.Condition == category.ConditionMax {
		op = OpAtMost
	}

	switch cat.Kind {
	case category.KindTeam:
		if cat.Value == "" {
			return nil, fmt.Errorf("%w: team category without id", ErrInvalidCategory)
		}
		return TeamMembership{TeamIDs: c.merges.TeamIDs(cat.Value)}, nil

	case category.KindNationalTeam, category.KindTournament:
		if cat.Value == "" {
			return nil, fmt.Errorf("%w: %s category without pattern", ErrInvalidCategory, cat.Kind)
		}
		return TournamentMatch{Pattern: cat.Value}, nil

	case category.KindYear:
		year, err := strconv.Atoi(cat.Value)
		if err != nil {
			return nil, fmt.Errorf("%w: year %q", ErrInvalidCategory, cat.Value)
		}
		return YearMatch{Year: year}, nil

	case category.KindNationality:
		if cat.Value == "" {
			return nil, fmt.Errorf("%w: nationality category without code", ErrInvalidCategory)
		}
		return NationalityMatch{Code: cat.Value}, nil

	case category.KindPosition:
		if cat.Value == "" {
			return nil, fmt.Errorf("%w: position category without value", ErrInvalidCategory)
		}
		return PositionMatch{Position: cat.Value}, nil

	case category.KindCycle:
		return RareFeat{Feat: FeatCycle}, nil

	case category.KindPerfectGame, category.KindNoHitter:
		return c.compileFeat(cat.Kind, cat.Value, op)
	}

	return c.compileStat(cat, op)
}

func (c *Compiler) compileFeat(kind, value string, op Op) (Expr, error) {
	innings, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: %s innings %q", ErrInvalidCategory, kind, value)
	}
	return RareFeat{Feat: kind, Op: op, Innings: innings}, nil
}

// compileStat handles the "<scope>_<stat>" kinds.
func (c *Compiler) compileStat(cat category.Category, op Op) (Expr, error) {
	scopeName, statName, ok := strings.Cut(cat.Kind, "_")
	if !ok {
		return nil, fmt.Errorf("%w: unknown kind %q", ErrInvalidCategory, cat.Kind)
	}
	scope := Scope(scopeName)

	switch scope {
	case ScopeSeasonal, ScopeYear, ScopeCareer:
		if col, found := summableHitting[statName]; found {
			return c.countingStat(scope, statName, col, op, cat.Value)
		}
		if col, found := summablePitching[statName]; found {
			return c.countingStat(scope, statName, col, op, cat.Value)
		}
		col, found := rateColumns[statName]
		if !found || (scope != ScopeSeasonal && !aggregatableRates[statName]) {
			return nil, fmt.Errorf("%w: unknown %s stat %q", ErrInvalidCategory, scope, statName)
		}
		value, err := strconv.ParseFloat(cat.Value, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %s threshold %q", ErrInvalidCategory, cat.Kind, cat.Value)
		}
		return StatThreshold{Scope: scope, Stat: statName, Column: col, Rate: true, Op: op, Value: value}, nil

	case ScopeGame:
		switch statName {
		case category.KindPerfectGame, category.KindNoHitter:
			return c.compileFeat(statName, cat.Value, op)
		}
		col, found := gameColumns[statName]
		if !found {
			return nil, fmt.Errorf("%w: unknown game stat %q", ErrInvalidCategory, statName)
		}
		return c.countingStat(scope, statName, col, op, cat.Value)
	}

	return nil, fmt.Errorf("%w: unknown kind %q", ErrInvalidCategory, cat.Kind)
}

func (c *Compiler) countingStat(scope Scope, stat, col string, op Op, value string) (Expr, error) {
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: %s_%s threshold %q", ErrInvalidCategory, scope, stat, value)
	}
	return StatThreshold{Scope: scope, Stat: stat, Column: col, Op: op, Value: n}, nil
}

// Build compiles a category and renders it to a SQL fragment over the given
// player table alias, with positional placeholders starting at start. The
// returned values consume exactly len(values) consecutive placeholders.
func (c *Compiler) Build(cat category.Category, playerAlias string, start int) (string, []any, error) {
	expr, err := c.Compile(cat)
	if err != nil {
		return "", nil, err
	}
	frag, values := SQL(expr, playerAlias, start)
	return frag, values, nil
}
