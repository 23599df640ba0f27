package questionnaire

import (
	"fmt"
	"sort"
)

const (
	MinItemID        = 1
	MaxItemID        = 80
	ItemsPerCategory = 20

	// DefaultName is the display identity used when none has been entered.
	DefaultName = "Anonymous"
)

// Category is one of the four Honey & Mumford learning styles.
type Category string

const (
	Activist   Category = "activist"
	Reflector  Category = "reflector"
	Theorist   Category = "theorist"
	Pragmatist Category = "pragmatist"
)

// Categories returns the four categories in display order.
func Categories() []Category {
	return []Category{Activist, Reflector, Theorist, Pragmatist}
}

// scoringKeys is the scoring table of the questionnaire document.
// Column 1 = Activist, 2 = Reflector, 3 = Theorist, 4 = Pragmatist.
var scoringKeys = map[Category][]int{
	Activist:   {2, 4, 6, 10, 17, 23, 24, 32, 34, 38, 40, 43, 45, 48, 58, 64, 71, 72, 74, 79},
	Reflector:  {7, 13, 15, 16, 25, 28, 29, 31, 33, 36, 39, 41, 46, 52, 55, 60, 62, 66, 67, 76},
	Theorist:   {1, 3, 8, 12, 14, 18, 20, 22, 26, 30, 42, 47, 51, 57, 61, 63, 68, 75, 77, 78},
	Pragmatist: {5, 9, 11, 19, 21, 27, 35, 37, 44, 49, 50, 53, 54, 56, 59, 65, 69, 70, 73, 80},
}

// Label returns the human-readable category name.
func (c Category) Label() string {
	switch c {
	case Activist:
		return "Activist"
	case Reflector:
		return "Reflector"
	case Theorist:
		return "Theorist"
	case Pragmatist:
		return "Pragmatist"
	default:
		return string(c)
	}
}

// IDs returns a copy of the item identifiers scored under c.
func (c Category) IDs() []int {
	ids := scoringKeys[c]
	out := make([]int, len(ids))
	copy(out, ids)
	return out
}

// Valid reports whether c is one of the four known categories.
func (c Category) Valid() bool {
	_, ok := scoringKeys[c]
	return ok
}

// CategoryOf returns the category that owns item id.
func CategoryOf(id int) (Category, bool) {
	for _, c := range Categories() {
		for _, k := range scoringKeys[c] {
			if k == id {
				return c, true
			}
		}
	}
	return "", false
}

// ValidateKeys checks that the scoring table partitions 1..80 into four
// disjoint sets of twenty identifiers.
func ValidateKeys() error {
	seen := make(map[int]Category, MaxItemID)
	for _, c := range Categories() {
		ids := scoringKeys[c]
		if len(ids) != ItemsPerCategory {
			return fmt.Errorf("category %s has %d items, want %d", c, len(ids), ItemsPerCategory)
		}
		for _, id := range ids {
			if id < MinItemID || id > MaxItemID {
				return fmt.Errorf("category %s references item %d outside %d..%d", c, id, MinItemID, MaxItemID)
			}
			if prev, dup := seen[id]; dup {
				return fmt.Errorf("item %d is scored under both %s and %s", id, prev, c)
			}
			seen[id] = c
		}
	}
	if len(seen) != MaxItemID {
		missing := make([]int, 0)
		for id := MinItemID; id <= MaxItemID; id++ {
			if _, ok := seen[id]; !ok {
				missing = append(missing, id)
			}
		}
		sort.Ints(missing)
		return fmt.Errorf("items not scored under any category: %v", missing)
	}
	return nil
}
