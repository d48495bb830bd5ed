package piecegraph

import (
	"math"

	"github.com/unixpickle/model3d/model3d"
)

// bounds returns the min & max corners of the box holding every piece &
// socket position
func bounds(pieces []*PlacedPiece) (model3d.Coord3D, model3d.Coord3D) {
	if len(pieces) == 0 {
		return model3d.Coord3D{}, model3d.Coord3D{}
	}

	min := model3d.XYZ(math.Inf(1), math.Inf(1), math.Inf(1))
	max := model3d.XYZ(math.Inf(-1), math.Inf(-1), math.Inf(-1))
	for _, p := range pieces {
		min = min.Min(p.Position)
		max = max.Max(p.Position)
		for _, s := range p.Sockets {
			min = min.Min(s.Position)
			max = max.Max(s.Position)
		}
	}
	return min, max
}

// maxf returns the highest of two floats
func maxf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

// maxint returns the highest of two ints
func maxint(a, b int) int {
	if a > b {
		return a
	}
	return b
}
