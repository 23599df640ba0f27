// Package scoring turns answer state into category totals.
package scoring

import (
	"github.com/somdipdey/Learning-Styles/internal/questionnaire"
)

// Lookup is the read side of the answer state.
type Lookup interface {
	Get(id int) bool
	Ticked() int
}

// MapLookup adapts a plain map to Lookup.
type MapLookup map[int]bool

func (m MapLookup) Get(id int) bool { return m[id] }

func (m MapLookup) Ticked() int {
	n := 0
	for _, v := range m {
		if v {
			n++
		}
	}
	return n
}

// Snapshot is the derived score state for one answer state.
type Snapshot struct {
	Totals map[questionnaire.Category]int `json:"totals"`
	Ticked int                            `json:"ticked"`
	Items  int                            `json:"items"`
}

// Of returns the total for c, zero for unknown categories.
func (s Snapshot) Of(c questionnaire.Category) int {
	return s.Totals[c]
}

// Total returns the number of items the snapshot was computed over, falling
// back to the full inventory size when nothing was loaded.
func (s Snapshot) Total() int {
	if s.Items > 0 {
		return s.Items
	}
	return questionnaire.MaxItemID
}

// ScoreCategory counts the identifiers in ids answered true.
func ScoreCategory(answers Lookup, ids []int) int {
	total := 0
	for _, id := range ids {
		if answers.Get(id) {
			total++
		}
	}
	return total
}

// Compute scores every category against the fixed scoring table.
func Compute(answers Lookup, itemCount int) Snapshot {
	snap := Snapshot{
		Totals: make(map[questionnaire.Category]int, 4),
		Items:  itemCount,
	}
	if answers == nil {
		for _, c := range questionnaire.Categories() {
			snap.Totals[c] = 0
		}
		return snap
	}
	for _, c := range questionnaire.Categories() {
		snap.Totals[c] = ScoreCategory(answers, c.IDs())
	}
	snap.Ticked = answers.Ticked()
	return snap
}

// Dominant returns the categories sharing the highest total, in display
// order. It is empty when nothing is ticked.
func Dominant(s Snapshot) []questionnaire.Category {
	best := 0
	for _, c := range questionnaire.Categories() {
		if v := s.Of(c); v > best {
			best = v
		}
	}
	if best == 0 {
		return nil
	}
	var out []questionnaire.Category
	for _, c := range questionnaire.Categories() {
		if s.Of(c) == best {
			out = append(out, c)
		}
	}
	return out
}
