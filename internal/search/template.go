// Package search implements the randomized constructive search for a valid
// 3x3 grid: six distinct categories whose nine row/column intersections all
// have enough qualifying players. It is a bounded best-effort search, not a
// completeness guarantee.
package search

import "github.com/vschuh/eurogrid/internal/category"

// Template declares which category pool each of the six grid slots draws
// from. Each grid family has a fixed small template set.
type Template struct {
	Rows [3]category.Slot `json:"rows"`
	Cols [3]category.Slot `json:"cols"`
}

// DailyTemplates are tried for the global daily grid.
var DailyTemplates = []Template{
	{Rows: [3]category.Slot{"T", "T", "R"}, Cols: [3]category.Slot{"N", "S", "S"}},
	{Rows: [3]category.Slot{"T", "N", "S"}, Cols: [3]category.Slot{"T", "R", "S"}},
	{Rows: [3]category.Slot{"T", "A", "S"}, Cols: [3]category.Slot{"T", "R", "S"}},
	{Rows: [3]category.Slot{"R", "S", "T"}, Cols: [3]category.Slot{"T", "A", "N"}},
	{Rows: [3]category.Slot{"T", "S", "R"}, Cols: [3]category.Slot{"A", "Y", "N"}},
	{Rows: [3]category.Slot{"T", "T", "N"}, Cols: [3]category.Slot{"S", "S", "R"}},
}

// CountryTemplates are tried for the per-country grids, whose club pools are
// much smaller.
var CountryTemplates = []Template{
	{Rows: [3]category.Slot{"T", "T", "R"}, Cols: [3]category.Slot{"S", "Y", "N"}},
	{Rows: [3]category.Slot{"S", "A", "Y"}, Cols: [3]category.Slot{"T", "T", "R"}},
	{Rows: [3]category.Slot{"T", "T", "N"}, Cols: [3]category.Slot{"S", "S", "R"}},
	{Rows: [3]category.Slot{"S", "Y", "A"}, Cols: [3]category.Slot{"T", "T", "N"}},
}

// InternationalTemplates draw team slots from the U pool, the union of clubs
// and national teams.
var InternationalTemplates = []Template{
	{Rows: [3]category.Slot{"U", "U", "R"}, Cols: [3]category.Slot{"S", "S", "A"}},
	{Rows: [3]category.Slot{"U", "S", "R"}, Cols: [3]category.Slot{"U", "A", "Y"}},
	{Rows: [3]category.Slot{"U", "U", "S"}, Cols: [3]category.Slot{"R", "S", "A"}},
	{Rows: [3]category.Slot{"U", "A", "S"}, Cols: [3]category.Slot{"U", "R", "Y"}},
}

// Grid is the finished search artifact: three row and three column
// categories, optionally with the nine precomputed intersection counts keyed
// "row-col" for instant reveal.
type Grid struct {
	Rows    []category.Category `json:"rows"`
	Cols    []category.Category `json:"cols"`
	Answers map[string]int      `json:"answers,omitempty"`
}
