package placement

import (
	"github.com/voidshard/piecegraph/internal/align"
	"github.com/voidshard/piecegraph/internal/graph"

	"github.com/unixpickle/model3d/model3d"
)

const (
	// DefaultLoopFactor enlarges the overlap radius for the loop proximity gate
	DefaultLoopFactor = 1.5
)

// Thresholds bound how poor a joint may be.
type Thresholds struct {
	MaxDistance float64 `yaml:"max_distance" json:"max_distance"`
	MaxAngle    float64 `yaml:"max_angle" json:"max_angle"` // degrees
}

var (
	// DefaultThresholds apply to normal placements
	DefaultThresholds = Thresholds{MaxDistance: 2.0, MaxAngle: 60}

	// RelaxedThresholds apply when we're forcing a run to completion
	RelaxedThresholds = Thresholds{MaxDistance: 4.0, MaxAngle: 90}
)

// Accepts returns if the joint is within thresholds.
func (t Thresholds) Accepts(j align.Joint) bool {
	return j.Distance <= t.MaxDistance && j.Angle <= t.MaxAngle
}

// Validator checks overlap & loops for candidate placements.
//
// Loop detection is a BFS per nearby piece, so worst case O(pieces) per candidate.
// That's fine at tens to low hundreds of pieces.
type Validator struct {
	Radius       float64
	LoopFactor   float64
	PreventLoops bool

	occupied *Occupied
	graph    *graph.Graph
}

// NewValidator wires a validator to the occupied set & connection graph it inspects.
// Neither is modified by the validator.
func NewValidator(radius float64, preventLoops bool, o *Occupied, g *graph.Graph) *Validator {
	return &Validator{
		Radius:       radius,
		LoopFactor:   DefaultLoopFactor,
		PreventLoops: preventLoops,
		occupied:     o,
		graph:        g,
	}
}

// Overlaps returns true if any occupied position other than the anchor piece's
// lies within Radius of pos. The anchor piece is always excluded since the
// candidate sits right next to it by definition.
func (v *Validator) Overlaps(pos model3d.Coord3D, anchor int) bool {
	if v.Radius <= 0 {
		return false
	}
	return !v.occupied.accepted(pos, anchor, MinDistance(v.Radius))
}

// WouldLoop returns true if placing a piece at pos (hanging off the anchor piece)
// would close a cycle: some other piece sits within Radius*LoopFactor of pos
// and the anchor can already reach it through linked sockets.
// Always false if PreventLoops is off.
func (v *Validator) WouldLoop(anchor int, pos model3d.Coord3D) bool {
	if !v.PreventLoops {
		return false
	}
	factor := v.LoopFactor
	if factor <= 0 {
		factor = DefaultLoopFactor
	}

	// proximity is cheap, so gate the BFS on it
	for _, h := range v.occupied.near(pos, anchor, v.Radius*factor) {
		if v.graph.Reachable(anchor, h) {
			return true
		}
	}
	return false
}
