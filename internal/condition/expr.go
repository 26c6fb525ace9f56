// Package condition compiles category descriptors into boolean predicates
// over a player. Compilation is split in two: a pure translation from a
// Category into a small expression tree, and a renderer that lowers the tree
// to a parameterized Postgres fragment. The tree keeps the domain rules
// testable without a database.
package condition

import "errors"

// ErrInvalidCategory is returned when a category kind is unrecognized or its
// value does not parse to the expected type. Compilation fails closed:
// callers must treat this as a hard validation failure, never as an
// always-true or always-false predicate.
var ErrInvalidCategory = errors.New("invalid category")

// Op is the comparison direction of a threshold predicate.
type Op string

const (
	OpAtLeast Op = ">="
	OpAtMost  Op = "<="
)

// Scope is the aggregation granularity of a statistical threshold: whether
// satisfying the category is a single-record or an aggregate fact.
type Scope string

const (
	ScopeSeasonal Scope = "seasonal"
	ScopeYear     Scope = "year"
	ScopeCareer   Scope = "career"
	ScopeGame     Scope = "game"
)

// Expr is a compiled predicate over a single player.
type Expr interface {
	isExpr()
}

// TeamMembership matches players with an affiliation record for any id in
// the alias-expanded team identity set.
type TeamMembership struct {
	TeamIDs []string
}

// TournamentMatch matches players with a record in a tournament event whose
// category label matches the pattern case-insensitively.
type TournamentMatch struct {
	Pattern string
}

// YearMatch matches players with a record in a tournament event of the year.
type YearMatch struct {
	Year int
}

// NationalityMatch matches players by exact nationality code.
type NationalityMatch struct {
	Code string
}

// PositionMatch matches players with a game record listing the position.
type PositionMatch struct {
	Position string
}

// StatThreshold matches players whose statistic clears a threshold at the
// given scope. Column is the resolved storage column; Value is an int64 for
// counting stats and a float64 for rate stats.
type StatThreshold struct {
	Scope  Scope
	Stat   string
	Column string
	Rate   bool
	Op     Op
	Value  any
}

// Feat kinds for RareFeat.
const (
	FeatCycle       = "cycle"
	FeatNoHitter    = "no_hitter"
	FeatPerfectGame = "perfect_game"
)

// RareFeat matches single-game feats: hitting for the cycle, or a complete
// pitching game with zero hits (no-hitter) or zero baserunners allowed
// (perfect game) and innings pitched meeting the threshold. Innings is unset
// for the cycle.
type RareFeat struct {
	Feat    string
	Op      Op
	Innings float64
}

func (TeamMembership) isExpr()   {}
func (TournamentMatch) isExpr()  {}
func (YearMatch) isExpr()        {}
func (NationalityMatch) isExpr() {}
func (PositionMatch) isExpr()    {}
func (StatThreshold) isExpr()    {}
func (RareFeat) isExpr()         {}
