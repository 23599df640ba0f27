// Package answers holds the in-memory answer state of the questionnaire.
package answers

import (
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"sort"
	"strconv"

	"github.com/somdipdey/Learning-Styles/internal/questionnaire"
)

// DefaultTickProbability is the share of items ticked by Randomize in the demo.
const DefaultTickProbability = 0.4

// Store maps item identifiers to the user's yes/no response.
// It is not safe for concurrent use; the UI mutates it from a single loop.
type Store struct {
	answers map[int]bool
	order   []int

	// OnChange, when set, runs after every mutation.
	OnChange func(*Store)
}

// New creates a store with every item initialised to false.
func New(items []questionnaire.Item) *Store {
	s := &Store{answers: make(map[int]bool, len(items))}
	s.Ensure(items)
	return s
}

// Ensure adds any item missing from the store as unticked. Restored values
// for known items are kept.
func (s *Store) Ensure(items []questionnaire.Item) {
	for _, it := range items {
		if _, ok := s.answers[it.ID]; !ok {
			s.answers[it.ID] = false
		}
	}
	s.order = s.order[:0]
	for _, it := range items {
		s.order = append(s.order, it.ID)
	}
}

// Get returns the answer for id. Unknown identifiers read as false.
func (s *Store) Get(id int) bool {
	return s.answers[id]
}

// Set records v for id.
func (s *Store) Set(id int, v bool) {
	s.answers[id] = v
	s.changed()
}

// Toggle flips the answer for id and returns the new value.
func (s *Store) Toggle(id int) bool {
	v := !s.answers[id]
	s.Set(id, v)
	return v
}

// SetAll sets every loaded item to v.
func (s *Store) SetAll(v bool) {
	for _, id := range s.order {
		s.answers[id] = v
	}
	s.changed()
}

// Clear unticks every identifier the store holds, including restored ones
// for items the current questions file does not load. OnChange is not
// triggered.
func (s *Store) Clear() {
	for id := range s.answers {
		s.answers[id] = false
	}
}

// Randomize ticks each loaded item with probability p.
func (s *Store) Randomize(r *rand.Rand, p float64) {
	for _, id := range s.order {
		s.answers[id] = r.Float64() < p
	}
	s.changed()
}

// Ticked counts true answers regardless of category membership.
func (s *Store) Ticked() int {
	n := 0
	for _, v := range s.answers {
		if v {
			n++
		}
	}
	return n
}

// Len returns the number of identifiers the store knows about.
func (s *Store) Len() int {
	return len(s.answers)
}

// Map returns a copy of the answer state.
func (s *Store) Map() map[int]bool {
	out := make(map[int]bool, len(s.answers))
	for k, v := range s.answers {
		out[k] = v
	}
	return out
}

// Restore merges previously persisted answers. Identifiers outside the
// questionnaire range are ignored. OnChange is not triggered.
func (s *Store) Restore(m map[int]bool) {
	for id, v := range m {
		if id < questionnaire.MinItemID || id > questionnaire.MaxItemID {
			continue
		}
		s.answers[id] = v
	}
}

// MarshalJSON encodes the state as {"<id>": bool, ...}.
func (s *Store) MarshalJSON() ([]byte, error) {
	ids := make([]int, 0, len(s.answers))
	for id := range s.answers {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	out := make(map[string]bool, len(ids))
	for _, id := range ids {
		out[strconv.Itoa(id)] = s.answers[id]
	}
	return json.Marshal(out)
}

// Decode parses a persisted answer object. Keys that are not integers are
// skipped and values that are not booleans are read by truthiness.
func Decode(data []byte) (map[int]bool, error) {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode answers: %w", err)
	}
	out := make(map[int]bool, len(raw))
	for k, v := range raw {
		id, err := strconv.Atoi(k)
		if err != nil {
			continue
		}
		out[id] = truthy(v)
	}
	return out, nil
}

func truthy(v any) bool {
	switch x := v.(type) {
	case bool:
		return x
	case float64:
		return x != 0
	case string:
		return x != ""
	default:
		return false
	}
}

func (s *Store) changed() {
	if s.OnChange != nil {
		s.OnChange(s)
	}
}
