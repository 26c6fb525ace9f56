// Package merge resolves duplicate team and player identifiers to a single
// canonical identity. The alias table is a static JSON resource loaded once
// at startup; the resolver is read-only for the process lifetime.
package merge

import (
	"encoding/json"
	"fmt"
	"os"
)

// Table is the on-disk alias structure: canonical id -> secondary ids that
// refer to the same real-world team or player.
type Table struct {
	Teams   map[string][]string `json:"teams"`
	Players map[string][]string `json:"players"`
}

// Resolver answers canonical-identity questions for team and player ids.
// Lookups are symmetric-safe: an alias and its canonical id resolve to the
// same identity.
type Resolver struct {
	teamCanon   map[string]string
	teamSets    map[string][]string
	playerCanon map[string]string
	playerSets  map[string][]string
}

// NewResolver builds a resolver from an alias table.
func NewResolver(t Table) *Resolver {
	r := &Resolver{
		teamCanon:   make(map[string]string),
		teamSets:    make(map[string][]string),
		playerCanon: make(map[string]string),
		playerSets:  make(map[string][]string),
	}
	index(t.Teams, r.teamCanon, r.teamSets)
	index(t.Players, r.playerCanon, r.playerSets)
	return r
}

// Load reads the alias table resource and builds a resolver from it.
func Load(path string) (*Resolver, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read merge table: %w", err)
	}
	var t Table
	if err := json.Unmarshal(raw, &t); err != nil {
		return nil, fmt.Errorf("parse merge table: %w", err)
	}
	return NewResolver(t), nil
}

func index(src map[string][]string, canon map[string]string, sets map[string][]string) {
	for main, aliases := range src {
		set := append([]string{main}, aliases...)
		sets[main] = set
		canon[main] = main
		for _, a := range aliases {
			canon[a] = main
		}
	}
}

// TeamIDs returns the full identity set for a team id: the canonical id plus
// every known alias. Unknown ids resolve to themselves.
func (r *Resolver) TeamIDs(id string) []string {
	if main, ok := r.teamCanon[id]; ok {
		return append([]string(nil), r.teamSets[main]...)
	}
	return []string{id}
}

// PlayerID returns the canonical player id for any known alias, or the id
// itself. Idempotent: PlayerID(PlayerID(x)) == PlayerID(x).
func (r *Resolver) PlayerID(id string) string {
	if main, ok := r.playerCanon[id]; ok {
		return main
	}
	return id
}

// PlayerIDs returns the full identity set for a player id, for querying the
// union of a player's historical records.
func (r *Resolver) PlayerIDs(id string) []string {
	if main, ok := r.playerCanon[id]; ok {
		return append([]string(nil), r.playerSets[main]...)
	}
	return []string{id}
}
