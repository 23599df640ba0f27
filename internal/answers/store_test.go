package answers

import (
	"encoding/json"
	"math/rand/v2"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/somdipdey/Learning-Styles/internal/questionnaire"
)

func testItems(n int) []questionnaire.Item {
	items := make([]questionnaire.Item, n)
	for i := range items {
		items[i] = questionnaire.Item{ID: i + 1, Text: "item"}
	}
	return items
}

func TestNew_AllFalse(t *testing.T) {
	s := New(testItems(80))
	assert.Equal(t, 80, s.Len())
	assert.Equal(t, 0, s.Ticked())
	for id := 1; id <= 80; id++ {
		assert.False(t, s.Get(id))
	}
}

func TestToggleSetAndHook(t *testing.T) {
	s := New(testItems(80))
	calls := 0
	s.OnChange = func(*Store) { calls++ }

	assert.True(t, s.Toggle(5))
	assert.False(t, s.Toggle(5))
	s.Set(6, true)
	assert.Equal(t, 3, calls)
	assert.Equal(t, 1, s.Ticked())
}

func TestSetAll(t *testing.T) {
	s := New(testItems(80))
	s.SetAll(true)
	assert.Equal(t, 80, s.Ticked())
	s.SetAll(false)
	assert.Equal(t, 0, s.Ticked())
}

func TestRandomizeDeterministic(t *testing.T) {
	a := New(testItems(80))
	b := New(testItems(80))
	a.Randomize(rand.New(rand.NewPCG(1, 2)), DefaultTickProbability)
	b.Randomize(rand.New(rand.NewPCG(1, 2)), DefaultTickProbability)
	if diff := cmp.Diff(a.Map(), b.Map()); diff != "" {
		t.Fatalf("same seed produced different answers (-a +b):\n%s", diff)
	}
}

func TestEnsureKeepsRestored(t *testing.T) {
	s := New(nil)
	s.Restore(map[int]bool{3: true, 99: true, 0: true})
	s.Ensure(testItems(5))
	assert.True(t, s.Get(3))
	assert.False(t, s.Get(99))
	assert.Equal(t, 5, s.Len())
}

func TestPersistRoundTrip(t *testing.T) {
	s := New(testItems(80))
	s.Set(2, true)
	s.Set(79, true)

	data, err := json.Marshal(s)
	require.NoError(t, err)

	restored, err := Decode(data)
	require.NoError(t, err)

	fresh := New(testItems(80))
	fresh.Restore(restored)
	if diff := cmp.Diff(s.Map(), fresh.Map()); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestDecode_Tolerant(t *testing.T) {
	got, err := Decode([]byte(`{"1": true, "2": 0, "3": "yes", "x": true}`))
	require.NoError(t, err)
	assert.Equal(t, map[int]bool{1: true, 2: false, 3: true}, got)

	_, err = Decode([]byte(`not json`))
	assert.Error(t, err)
}

func TestClearIncludesRestored(t *testing.T) {
	s := New(testItems(10))
	s.Restore(map[int]bool{5: true, 70: true})
	calls := 0
	s.OnChange = func(*Store) { calls++ }
	require.Equal(t, 2, s.Ticked())

	s.Clear()
	assert.Equal(t, 0, s.Ticked())
	assert.False(t, s.Get(70))
	assert.Equal(t, 11, s.Len())
	assert.Zero(t, calls)
}
