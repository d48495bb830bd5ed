package align

import (
	"math"

	"github.com/unixpickle/model3d/model3d"
)

// Cardinal is one of the four horizontal grid directions pieces are authored on.
// Up is +Z, North is +Y & East is +X.
type Cardinal int

const (
	North Cardinal = iota
	East
	South
	West
)

var (
	// nb. order matters, ties go to whichever comes first
	allCardinals = []Cardinal{North, East, South, West}

	cardinalBasis = map[Cardinal]model3d.Coord3D{
		North: model3d.XYZ(0, 1, 0),
		East:  model3d.XYZ(1, 0, 0),
		South: model3d.XYZ(0, -1, 0),
		West:  model3d.XYZ(-1, 0, 0),
	}

	cardinalNames = map[Cardinal]string{
		North: "north",
		East:  "east",
		South: "south",
		West:  "west",
	}
)

// String returns a readable name
func (c Cardinal) String() string {
	name, ok := cardinalNames[c]
	if !ok {
		return "unknown"
	}
	return name
}

// Heading in degrees, clockwise from North
func (c Cardinal) Heading() float64 {
	return float64(c) * 90
}

// Opposite returns the cardinal 180 degrees away.
func (c Cardinal) Opposite() Cardinal {
	return (c + 2) % 4
}

// Vector returns the unit vector of this cardinal.
func (c Cardinal) Vector() model3d.Coord3D {
	return cardinalBasis[c]
}

// Quantize snaps the horizontal part of dir to the closest cardinal.
// A direction with no horizontal part (straight up / down) lands on North.
func Quantize(dir model3d.Coord3D) Cardinal {
	flat := model3d.XYZ(dir.X, dir.Y, 0)

	best := North
	bestDot := math.Inf(-1)
	for _, c := range allCardinals {
		d := flat.Dot(cardinalBasis[c])
		if d > bestDot {
			best = c
			bestDot = d
		}
	}
	return best
}

// Yaw returns the shortest signed rotation (degrees, clockwise positive)
// taking `from` onto `to`. Result is within [-180, 180].
func Yaw(from, to Cardinal) float64 {
	return normalizeDegrees(to.Heading() - from.Heading())
}

// normalizeDegrees wraps d into [-180, 180]
func normalizeDegrees(d float64) float64 {
	d = math.Mod(d, 360)
	if d > 180 {
		d -= 360
	} else if d < -180 {
		d += 360
	}
	return d
}
