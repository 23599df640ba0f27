package scoring

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"github.com/somdipdey/Learning-Styles/internal/answers"
	"github.com/somdipdey/Learning-Styles/internal/questionnaire"
)

func fullStore() *answers.Store {
	items := make([]questionnaire.Item, questionnaire.MaxItemID)
	for i := range items {
		items[i] = questionnaire.Item{ID: i + 1, Text: "x"}
	}
	return answers.New(items)
}

func totals(s Snapshot) []int {
	out := make([]int, 0, 4)
	for _, c := range questionnaire.Categories() {
		out = append(out, s.Of(c))
	}
	return out
}

func TestCompute_AllFalse(t *testing.T) {
	st := fullStore()
	snap := Compute(st, questionnaire.MaxItemID)
	assert.Equal(t, []int{0, 0, 0, 0}, totals(snap))
	assert.Equal(t, 0, snap.Ticked)
	assert.Equal(t, 80, snap.Total())
}

func TestCompute_OneCategory(t *testing.T) {
	for _, target := range questionnaire.Categories() {
		t.Run(string(target), func(t *testing.T) {
			st := fullStore()
			for _, id := range target.IDs() {
				st.Set(id, true)
			}
			snap := Compute(st, questionnaire.MaxItemID)
			for _, c := range questionnaire.Categories() {
				want := 0
				if c == target {
					want = 20
				}
				assert.Equal(t, want, snap.Of(c), "category %s", c)
			}
			assert.Equal(t, 20, snap.Ticked)
		})
	}
}

func TestCompute_AllTrue(t *testing.T) {
	st := fullStore()
	st.SetAll(true)
	snap := Compute(st, questionnaire.MaxItemID)
	assert.Equal(t, []int{20, 20, 20, 20}, totals(snap))
	assert.Equal(t, 80, snap.Ticked)
}

func TestCompute_Idempotent(t *testing.T) {
	st := fullStore()
	st.Set(2, true)
	st.Set(7, true)
	st.Set(80, true)
	before := st.Map()

	a := Compute(st, 80)
	b := Compute(st, 80)
	if diff := cmp.Diff(a, b); diff != "" {
		t.Fatalf("second computation differs (-first +second):\n%s", diff)
	}
	if diff := cmp.Diff(before, st.Map()); diff != "" {
		t.Fatalf("computation mutated answers:\n%s", diff)
	}
}

func TestScoreCategory_Bounds(t *testing.T) {
	m := MapLookup{}
	for id := 1; id <= 80; id += 3 {
		m[id] = true
	}
	for _, c := range questionnaire.Categories() {
		got := ScoreCategory(m, c.IDs())
		assert.GreaterOrEqual(t, got, 0)
		assert.LessOrEqual(t, got, 20)
	}
}

func TestCompute_TickedIgnoresMembership(t *testing.T) {
	// 99 is outside every category but still counts as ticked.
	m := MapLookup{2: true, 99: true, 3: false}
	snap := Compute(m, 0)
	assert.Equal(t, 2, snap.Ticked)
	assert.Equal(t, 1, snap.Of(questionnaire.Activist))
	assert.Equal(t, 80, snap.Total())
}

func TestCompute_MissingIDsReadFalse(t *testing.T) {
	snap := Compute(MapLookup{}, 0)
	assert.Equal(t, []int{0, 0, 0, 0}, totals(snap))
}

func TestDominant(t *testing.T) {
	assert.Nil(t, Dominant(Compute(MapLookup{}, 80)))

	m := MapLookup{2: true, 4: true, 1: true, 3: true, 5: true}
	got := Dominant(Compute(m, 80))
	assert.Equal(t, []questionnaire.Category{questionnaire.Activist, questionnaire.Theorist}, got)
}
