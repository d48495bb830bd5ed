package placement

import (
	"testing"

	"github.com/voidshard/piecegraph/internal/align"
	"github.com/voidshard/piecegraph/internal/graph"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/unixpickle/model3d/model3d"
)

// layout commits pieces at the given positions, linking each to the previous one
func layout(t *testing.T, linked bool, pts ...model3d.Coord3D) (*Occupied, *graph.Graph) {
	o := NewOccupied()
	g := graph.New()
	for i, p := range pts {
		h := g.Add()
		o.Add(h, p)
		if linked && i > 0 {
			require.NoError(t, g.Link(h-1, h))
		}
	}
	return o, g
}

func TestOverlapsExcludesAnchor(t *testing.T) {
	o, g := layout(t, true, model3d.XYZ(0, 0, 0))
	v := NewValidator(1.0, true, o, g)

	// right on top of the anchor, but the anchor doesn't count
	assert.False(t, v.Overlaps(model3d.XYZ(0.5, 0, 0), 0))
	// .. unless some other piece is the anchor
	assert.True(t, v.Overlaps(model3d.XYZ(0.5, 0, 0), 7))
}

func TestOverlapsRadius(t *testing.T) {
	o, g := layout(t, true, model3d.XYZ(0, 0, 0), model3d.XYZ(2, 0, 0), model3d.XYZ(4, 0, 0))
	v := NewValidator(1.0, true, o, g)

	assert.True(t, v.Overlaps(model3d.XYZ(0.9, 0, 0), 2))
	assert.False(t, v.Overlaps(model3d.XYZ(1.0, 0, 0), 2)) // exactly at radius is fine
	assert.False(t, v.Overlaps(model3d.XYZ(6, 0, 0), 2))
}

func TestOverlapsZeroRadius(t *testing.T) {
	o, g := layout(t, true, model3d.XYZ(0, 0, 0), model3d.XYZ(1, 0, 0))
	v := NewValidator(0, true, o, g)
	assert.False(t, v.Overlaps(model3d.XYZ(0, 0, 0), 1))
}

func TestWouldLoop(t *testing.T) {
	// a U shape: 0 at origin, running east then north then west
	o, g := layout(t, true,
		model3d.XYZ(0, 0, 0),
		model3d.XYZ(2, 0, 0),
		model3d.XYZ(2, 2, 0),
		model3d.XYZ(0, 2, 0),
	)
	v := NewValidator(1.0, true, o, g)

	// hanging off piece 3 heading south, we'd land next to piece 0 which
	// 3 already reaches
	assert.True(t, v.WouldLoop(3, model3d.XYZ(0, 1.2, 0)))

	// far away from anything
	assert.False(t, v.WouldLoop(3, model3d.XYZ(-4, 2, 0)))

	v.PreventLoops = false
	assert.False(t, v.WouldLoop(3, model3d.XYZ(0, 1.2, 0)))
}

func TestWouldLoopUnreachable(t *testing.T) {
	// same positions but nothing linked; close by isn't a loop
	o, g := layout(t, false,
		model3d.XYZ(0, 0, 0),
		model3d.XYZ(0, 2, 0),
	)
	v := NewValidator(1.0, true, o, g)
	assert.False(t, v.WouldLoop(1, model3d.XYZ(0, 1.2, 0)))
}

func TestWouldLoopEnlargedRadius(t *testing.T) {
	o, g := layout(t, true, model3d.XYZ(0, 0, 0), model3d.XYZ(5, 0, 0))
	v := NewValidator(1.0, true, o, g)

	// 1.4 away from piece 0: no overlap but inside the 1.5x loop gate
	pos := model3d.XYZ(1.4, 0, 0)
	assert.False(t, v.Overlaps(pos, 1))
	assert.True(t, v.WouldLoop(1, pos))

	// 1.6 is outside it
	assert.False(t, v.WouldLoop(1, model3d.XYZ(1.6, 0, 0)))
}

func TestThresholds(t *testing.T) {
	assert.True(t, DefaultThresholds.Accepts(align.Joint{Distance: 2.0, Angle: 60}))
	assert.False(t, DefaultThresholds.Accepts(align.Joint{Distance: 2.1, Angle: 0}))
	assert.False(t, DefaultThresholds.Accepts(align.Joint{Distance: 0, Angle: 61}))
	assert.True(t, RelaxedThresholds.Accepts(align.Joint{Distance: 3.9, Angle: 89}))
	assert.False(t, RelaxedThresholds.Accepts(align.Joint{Distance: 4.1, Angle: 0}))
}

func TestOccupiedPosition(t *testing.T) {
	o := NewOccupied()
	o.Add(3, model3d.XYZ(1, 2, 3))

	p, ok := o.Position(3)
	require.True(t, ok)
	assert.Equal(t, model3d.XYZ(1, 2, 3), p)

	_, ok = o.Position(1)
	assert.False(t, ok)
	assert.Equal(t, 1, o.Len())
}
