package align

import (
	"math"

	"github.com/golang/geo/r3"
	"github.com/unixpickle/model3d/model3d"
)

// Transform is a rigid placement: rotate about +Z by Yaw, then translate.
type Transform struct {
	// Yaw in degrees, clockwise positive (see Cardinal.Heading)
	Yaw         float64
	Rotation    model3d.Matrix3
	Translation model3d.Coord3D
}

// Identity returns the transform that leaves everything where it is.
func Identity() Transform {
	return Transform{Rotation: yawMatrix(0)}
}

// Apply transforms a point.
func (t Transform) Apply(p model3d.Coord3D) model3d.Coord3D {
	return t.Rotation.MulColumn(p).Add(t.Translation)
}

// ApplyDir transforms a direction (no translation).
func (t Transform) ApplyDir(d model3d.Coord3D) model3d.Coord3D {
	return t.Rotation.MulColumn(d)
}

// Align works out where a floating candidate piece must go so that its socket
// (candPos, candDir; in the candidate's local space) meets the anchor socket
// (anchorPos, anchorDir; world space).
//
// Both facings are snapped to cardinals. The candidate is yawed until its
// cardinal faces directly back at the anchor's, then moved so the two socket
// positions coincide. Facings are only as anti-parallel as the authoring is
// grid aligned, Measure tells you how close it came.
func Align(anchorPos, anchorDir, candPos, candDir model3d.Coord3D) Transform {
	goal := Quantize(anchorDir).Opposite()
	yaw := Yaw(Quantize(candDir), goal)

	rot := yawMatrix(yaw)
	return Transform{
		Yaw:         yaw,
		Rotation:    rot,
		Translation: anchorPos.Sub(rot.MulColumn(candPos)),
	}
}

// Joint is how well two sockets actually meet once placed.
type Joint struct {
	Distance float64 // between socket positions
	Angle    float64 // degrees between anchor facing & negated candidate facing
}

// Measure the realized joint between an anchor socket & an (already placed)
// candidate socket, both in world space.
func Measure(anchorPos, anchorDir, candPos, candDir model3d.Coord3D) Joint {
	a := r3.Vector{X: anchorDir.X, Y: anchorDir.Y, Z: anchorDir.Z}
	b := r3.Vector{X: -candDir.X, Y: -candDir.Y, Z: -candDir.Z}

	angle := 0.0
	if a.Norm() > 0 && b.Norm() > 0 {
		angle = a.Angle(b).Degrees()
	}

	return Joint{
		Distance: anchorPos.Dist(candPos),
		Angle:    angle,
	}
}

// yawMatrix builds a rotation about +Z, clockwise by deg when viewed from above.
// Quarter turns are written out exactly so cardinal placements stay on the grid.
func yawMatrix(deg float64) model3d.Matrix3 {
	var s, c float64
	switch normalizeDegrees(deg) {
	case 0:
		s, c = 0, 1
	case 90:
		s, c = 1, 0
	case -90:
		s, c = -1, 0
	case 180, -180:
		s, c = 0, -1
	default:
		rad := deg * math.Pi / 180
		s, c = math.Sin(rad), math.Cos(rad)
	}
	return model3d.Matrix3{
		c, s, 0,
		-s, c, 0,
		0, 0, 1,
	}
}
