package search

import "github.com/vschuh/eurogrid/internal/category"

// WorkingSet tracks pool consumption across a batch of dates so consecutive
// grids do not immediately reuse the same categories. When a slot runs too
// low to keep producing valid grids it resets to the full master pool
// instead of permanently failing.
type WorkingSet struct {
	master  category.Pools
	current category.Pools
	floor   int
}

// NewWorkingSet creates a working set over a master pool. floor is the
// minimum number of categories a slot keeps before it is refilled; pass 0
// to refill only fully empty slots.
func NewWorkingSet(master category.Pools, floor int) *WorkingSet {
	return &WorkingSet{
		master:  master,
		current: master.Copy(),
		floor:   floor,
	}
}

// Pools returns a copy of the current working pools for one generation run,
// refilling depleted slots first. The returned copy is the caller's to
// consume; the working set itself only shrinks through MarkUsed.
func (w *WorkingSet) Pools() category.Pools {
	for slot, masterCats := range w.master {
		if len(w.current[slot]) <= w.floor {
			w.current[slot] = append([]category.Category(nil), masterCats...)
		}
	}
	return w.current.Copy()
}

// MarkUsed removes the grid's six categories from the working pools so the
// next date draws from fresher material.
func (w *WorkingSet) MarkUsed(g *Grid) {
	used := make(map[string]bool, 6)
	for _, c := range g.Rows {
		used[c.Value] = true
	}
	for _, c := range g.Cols {
		used[c.Value] = true
	}
	for slot, cats := range w.current {
		kept := cats[:0]
		for _, c := range cats {
			if !used[c.Value] {
				kept = append(kept, c)
			}
		}
		w.current[slot] = kept
	}
}
