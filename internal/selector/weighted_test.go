package selector

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	name   string
	weight int
}

func byWeight(i item) int { return i.weight }

// fixedIntn always returns the same draw (clamped into range)
type fixedIntn int

func (f fixedIntn) Intn(n int) int {
	if int(f) >= n {
		return n - 1
	}
	return int(f)
}

func TestSelectNoneEligible(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	_, ok := Select([]item{}, byWeight, rng)
	assert.False(t, ok)

	_, ok = Select([]item{{"a", 0}, {"b", -3}}, byWeight, rng)
	assert.False(t, ok)
}

func TestSelectSkipsZeroWeight(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	items := []item{{"zero", 0}, {"one", 1}, {"neg", -1}}

	for i := 0; i < 50; i++ {
		got, ok := Select(items, byWeight, rng)
		require.True(t, ok)
		assert.Equal(t, "one", got.name)
	}
}

func TestSelectCumulativeBoundaries(t *testing.T) {
	items := []item{{"a", 2}, {"skip", 0}, {"b", 3}, {"c", 5}}

	cases := []struct {
		draw int
		want string
	}{
		{0, "a"},
		{1, "a"},
		{2, "b"},
		{4, "b"},
		{5, "c"},
		{9, "c"},
	}
	for _, tc := range cases {
		got, ok := Select(items, byWeight, fixedIntn(tc.draw))
		require.True(t, ok)
		assert.Equal(t, tc.want, got.name, "draw %d", tc.draw)
	}
}

// brokenIntn returns a draw outside of [0, n), which should never happen
// but must still pick something.
type brokenIntn struct{}

func (brokenIntn) Intn(n int) int { return n + 10 }

func TestSelectFallsBackToLast(t *testing.T) {
	got, ok := Select([]item{{"a", 1}, {"b", 1}}, byWeight, brokenIntn{})
	require.True(t, ok)
	assert.Equal(t, "b", got.name)
}

func TestSelectDistribution(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	items := []item{{"tunnel", 10}, {"deadend", 5}}

	counts := map[string]int{}
	for i := 0; i < 3000; i++ {
		got, _ := Select(items, byWeight, rng)
		counts[got.name]++
	}
	// roughly 2:1
	ratio := float64(counts["tunnel"]) / float64(counts["deadend"])
	assert.InDelta(t, 2.0, ratio, 0.3)
}

func TestSelectDeterministic(t *testing.T) {
	items := []item{{"a", 3}, {"b", 1}, {"c", 6}}

	run := func() []string {
		rng := rand.New(rand.NewSource(99))
		out := []string{}
		for i := 0; i < 20; i++ {
			got, _ := Select(items, byWeight, rng)
			out = append(out, got.name)
		}
		return out
	}
	assert.Equal(t, run(), run())
}
