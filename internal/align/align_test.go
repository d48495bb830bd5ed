package align

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/unixpickle/model3d/model3d"
)

func TestQuantize(t *testing.T) {
	cases := []struct {
		dir  model3d.Coord3D
		want Cardinal
	}{
		{model3d.XYZ(0, 1, 0), North},
		{model3d.XYZ(1, 0, 0), East},
		{model3d.XYZ(0, -1, 0), South},
		{model3d.XYZ(-1, 0, 0), West},
		{model3d.XYZ(0.2, 0.9, 0.3), North},
		{model3d.XYZ(0.9, -0.2, -0.5), East},
		{model3d.XYZ(0, 0, 1), North},             // nothing horizontal
		{model3d.XYZ(1, 1, 0), North},             // tie -> enum order
		{model3d.XYZ(1, -1, 0), East},             // tie -> enum order
		{model3d.XYZ(-0.7071, -0.7071, 0), South}, // tie -> enum order
	}

	for _, tc := range cases {
		t.Run(fmt.Sprintf("%v", tc.dir), func(t *testing.T) {
			assert.Equal(t, tc.want, Quantize(tc.dir))
		})
	}
}

func TestYaw(t *testing.T) {
	assert.Equal(t, 0.0, Yaw(North, North))
	assert.Equal(t, 90.0, Yaw(North, East))
	assert.Equal(t, -90.0, Yaw(North, West))
	assert.Equal(t, -90.0, Yaw(East, North))
	assert.Equal(t, 90.0, Yaw(West, North))
	assert.InDelta(t, 180.0, abs(Yaw(North, South)), 0)

	for _, a := range allCardinals {
		for _, b := range allCardinals {
			y := Yaw(a, b)
			assert.GreaterOrEqual(t, y, -180.0)
			assert.LessOrEqual(t, y, 180.0)
		}
	}
}

func TestOpposite(t *testing.T) {
	assert.Equal(t, South, North.Opposite())
	assert.Equal(t, West, East.Opposite())
	assert.Equal(t, North, South.Opposite())
	assert.Equal(t, East, West.Opposite())
}

func TestAlignAllCardinalPairs(t *testing.T) {
	anchorPos := model3d.XYZ(3, -2, 1)

	for _, ac := range allCardinals {
		for _, cc := range allCardinals {
			t.Run(fmt.Sprintf("%s->%s", ac, cc), func(t *testing.T) {
				candPos := model3d.XYZ(0.5, 1.5, 0).Add(cc.Vector())
				candDir := cc.Vector()

				tr := Align(anchorPos, ac.Vector(), candPos, candDir)

				placedPos := tr.Apply(candPos)
				placedDir := tr.ApplyDir(candDir)

				j := Measure(anchorPos, ac.Vector(), placedPos, placedDir)
				assert.Less(t, j.Distance, 1e-4)
				assert.Less(t, j.Angle, 1e-6)
				assert.Equal(t, ac.Opposite(), Quantize(placedDir))
			})
		}
	}
}

func TestAlignSloppyAuthoring(t *testing.T) {
	// a few degrees off grid on both sides
	anchorDir := model3d.XYZ(1, 0.05, 0).Normalize()
	candDir := model3d.XYZ(0.03, 1, 0).Normalize()
	anchorPos := model3d.XYZ(2, 0, 0)
	candPos := model3d.XYZ(0, 1, 0)

	tr := Align(anchorPos, anchorDir, candPos, candDir)
	j := Measure(anchorPos, anchorDir, tr.Apply(candPos), tr.ApplyDir(candDir))

	assert.Less(t, j.Distance, 1e-4)
	assert.Less(t, j.Angle, 5.0)
	assert.Equal(t, -90.0, tr.Yaw) // north turns to face west
}

func TestAlignYawDirection(t *testing.T) {
	// anchor faces east, goal is west. A north facing candidate turns -90.
	tr := Align(model3d.Coord3D{}, model3d.XYZ(1, 0, 0), model3d.Coord3D{}, model3d.XYZ(0, 1, 0))
	require.Equal(t, -90.0, tr.Yaw)

	got := tr.ApplyDir(model3d.XYZ(0, 1, 0))
	assert.InDelta(t, -1, got.X, 1e-12)
	assert.InDelta(t, 0, got.Y, 1e-12)
}

func TestIdentity(t *testing.T) {
	p := model3d.XYZ(1, 2, 3)
	assert.Equal(t, p, Identity().Apply(p))
}

func TestMeasureQuantizationBound(t *testing.T) {
	// pathological: 44 degrees off on the candidate side
	anchorDir := model3d.XYZ(0, 1, 0)
	candDir := model3d.XYZ(0.69, -0.72, 0).Normalize()

	tr := Align(model3d.Coord3D{}, anchorDir, model3d.Coord3D{}, candDir)
	j := Measure(model3d.Coord3D{}, anchorDir, tr.Apply(model3d.Coord3D{}), tr.ApplyDir(candDir))
	assert.LessOrEqual(t, j.Angle, 45.0)
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
