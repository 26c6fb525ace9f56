// Package category defines the category descriptors a grid cell is built
// from and the static category-list resource they are loaded from.
package category

import (
	"encoding/json"
	"fmt"
	"os"
)

// --------------------------------------------------------------------------
// Category descriptor
// --------------------------------------------------------------------------

// Recognized category kinds. Statistical kinds are composed as
// "<scope>_<stat>" (e.g. "seasonal_homeruns", "career_hits") and are not
// enumerated here; the condition compiler resolves them.
const (
	KindTeam         = "team"
	KindNationalTeam = "national_team"
	KindTournament   = "tournament"
	KindYear         = "year"
	KindNationality  = "nationality"
	KindPosition     = "position"
	KindCycle        = "cycle"
	KindPerfectGame  = "perfect_game"
	KindNoHitter     = "no_hitter"
)

// Threshold conditions for statistical kinds. The zero value means min.
const (
	ConditionMin = "min"
	ConditionMax = "max"
)

// Category is an immutable filter descriptor: a player either satisfies it
// or does not. Label and Image are presentation-only.
type Category struct {
	Label        string `json:"label"`
	Kind         string `json:"type"`
	Value        string `json:"value"`
	Condition    string `json:"condition,omitempty"`
	Image        string `json:"image,omitempty"`
	FederationID int    `json:"federation_id,omitempty"`
}

// --------------------------------------------------------------------------
// Slot types and pools
// --------------------------------------------------------------------------

// Slot tags identify which pool a grid row/column position draws from.
type Slot string

const (
	SlotTeam         Slot = "T"
	SlotNationalTeam Slot = "N"
	SlotTournament   Slot = "R"
	SlotStat         Slot = "S"
	SlotNationality  Slot = "A"
	SlotYear         Slot = "Y"
	SlotUnion        Slot = "U" // clubs and national teams combined
)

// Pools maps a slot tag to its ordered category list. Pools handed to the
// search engine are working copies; the master lists stay untouched.
type Pools map[Slot][]Category

// Copy returns a deep copy so one search attempt can consume categories
// without mutating a pool visible to a sibling attempt.
func (p Pools) Copy() Pools {
	out := make(Pools, len(p))
	for slot, cats := range p {
		cp := make([]Category, len(cats))
		copy(cp, cats)
		out[slot] = cp
	}
	return out
}

// --------------------------------------------------------------------------
// Static category lists
// --------------------------------------------------------------------------

// Country describes one per-country grid family: which federations its
// national-team and tournament categories belong to, and its club list key.
type Country struct {
	Name          string `json:"name"`
	FederationIDs []int  `json:"federation_ids"`
}

// Lists is the versioned category-list resource, loaded once at startup and
// read-only afterwards.
type Lists struct {
	Clubs         map[string][]Category `json:"clubs"` // keyed by country name
	NationalTeams []Category            `json:"national_teams"`
	Tournaments   []Category            `json:"tournaments"`
	Stats         []Category            `json:"stats"`
	Nationalities []string              `json:"nationalities"`
	YearFrom      int                   `json:"year_from"`
	YearTo        int                   `json:"year_to"`
	Countries     []Country             `json:"countries"`
}

// Load reads and validates the category-list resource.
func Load(path string) (*Lists, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read category lists: %w", err)
	}
	var l Lists
	if err := json.Unmarshal(raw, &l); err != nil {
		return nil, fmt.Errorf("parse category lists: %w", err)
	}
	if len(l.Clubs) == 0 || len(l.NationalTeams) == 0 || len(l.Stats) == 0 {
		return nil, fmt.Errorf("category lists %s: clubs, national_teams and stats must be non-empty", path)
	}
	if l.YearTo < l.YearFrom {
		return nil, fmt.Errorf("category lists %s: invalid year range %d-%d", path, l.YearFrom, l.YearTo)
	}
	return &l, nil
}

// AllClubs returns the club categories of every country combined, for the
// daily grid family.
func (l *Lists) AllClubs() []Category {
	var out []Category
	for _, cats := range l.Clubs {
		out = append(out, cats...)
	}
	return out
}

// YearCategories expands the configured year range into year categories.
func (l *Lists) YearCategories() []Category {
	out := make([]Category, 0, l.YearTo-l.YearFrom+1)
	for y := l.YearFrom; y <= l.YearTo; y++ {
		out = append(out, Category{
			Label: fmt.Sprintf("%d", y),
			Kind:  KindYear,
			Value: fmt.Sprintf("%d", y),
		})
	}
	return out
}

// NationalityCategories expands the nationality code list.
func (l *Lists) NationalityCategories() []Category {
	out := make([]Category, 0, len(l.Nationalities))
	for _, code := range l.Nationalities {
		out = append(out, Category{
			Label: "Nationality: " + code,
			Kind:  KindNationality,
			Value: code,
		})
	}
	return out
}

// DailyPools builds the pools for the global daily grid.
func (l *Lists) DailyPools() Pools {
	return Pools{
		SlotTeam:         l.AllClubs(),
		SlotNationalTeam: append([]Category(nil), l.NationalTeams...),
		SlotTournament:   append([]Category(nil), l.Tournaments...),
		SlotStat:         append([]Category(nil), l.Stats...),
		SlotNationality:  l.NationalityCategories(),
		SlotYear:         l.YearCategories(),
	}
}

// CountryPools builds the pools for one per-country grid: clubs from that
// country only, national teams and tournaments filtered by federation.
func (l *Lists) CountryPools(c Country) Pools {
	member := make(map[int]bool, len(c.FederationIDs))
	for _, id := range c.FederationIDs {
		member[id] = true
	}
	filter := func(cats []Category) []Category {
		out := make([]Category, 0, len(cats))
		for _, cat := range cats {
			if member[cat.FederationID] {
				out = append(out, cat)
			}
		}
		return out
	}
	return Pools{
		SlotTeam:         append([]Category(nil), l.Clubs[c.Name]...),
		SlotNationalTeam: filter(l.NationalTeams),
		SlotTournament:   filter(l.Tournaments),
		SlotStat:         append([]Category(nil), l.Stats...),
		SlotNationality:  l.NationalityCategories(),
		SlotYear:         l.YearCategories(),
	}
}

// InternationalPools builds the pools for the international grid family,
// whose team slots draw from the union of clubs and national teams.
func (l *Lists) InternationalPools() Pools {
	p := l.DailyPools()
	union := make([]Category, 0, len(p[SlotTeam])+len(p[SlotNationalTeam]))
	union = append(union, p[SlotTeam]...)
	union = append(union, p[SlotNationalTeam]...)
	p[SlotUnion] = union
	return p
}
