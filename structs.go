package piecegraph

import (
	"github.com/unixpickle/model3d/model3d"
)

// Socket is a connector on a piece prototype, in the prototype's local space.
type Socket struct {
	Name string `yaml:"name"`

	// Position of the socket relative to the piece origin
	Position model3d.Coord3D `yaml:"position"`

	// Direction the socket faces, ie. where a neighbouring piece would sit.
	// Must not be the zero vector.
	Direction model3d.Coord3D `yaml:"direction"`
}

// Prototype is a piece template from the library. Prototypes are never
// modified by a run.
type Prototype struct {
	ID      string    `yaml:"id"`
	Sockets []*Socket `yaml:"sockets"`

	// Terminal pieces close off an open socket (usually single socket dead ends)
	Terminal bool `yaml:"terminal"`

	// Weight is the relative chance of being picked, 0 means never.
	Weight int `yaml:"weight"`

	// Disabled prototypes are never picked
	Disabled bool `yaml:"disabled"`
}

// eligible returns if the prototype can ever be picked
func (p *Prototype) eligible() bool {
	return p != nil && !p.Disabled && p.Weight > 0 && len(p.Sockets) > 0
}

// SocketRef points at a socket on a placed piece by handle.
type SocketRef struct {
	Piece  int
	Socket int
}

// PlacedSocket is a socket on a placed piece, in world space.
type PlacedSocket struct {
	Name      string
	Position  model3d.Coord3D
	Direction model3d.Coord3D

	// Used is true once the socket is linked to another piece
	Used bool

	// LinkedTo is the socket on the other side (always points straight back at us)
	LinkedTo *SocketRef `json:",omitempty"`
}

// PlacedPiece is a prototype placed into the world.
// Nothing about it changes after it's committed except the Used / LinkedTo
// of its sockets.
type PlacedPiece struct {
	// Handle is the index of this piece in Piecegraph.Pieces
	Handle int

	PrototypeID string
	Position    model3d.Coord3D

	// Yaw in degrees (clockwise from above) & the matching rotation matrix
	Yaw         float64
	Orientation model3d.Matrix3

	// Depth is the number of links between this piece & the seed
	Depth int

	// Cap is true for terminals attached during end capping
	Cap bool `json:",omitempty"`

	// Forced is true if this piece was only accepted by relaxing checks
	Forced bool `json:",omitempty"`

	Sockets []*PlacedSocket

	proto *Prototype
}

// Prototype this piece was made from.
func (p *PlacedPiece) Prototype() *Prototype {
	return p.proto
}

// OpenSockets returns the indexes of sockets not yet linked
func (p *PlacedPiece) OpenSockets() []int {
	out := []int{}
	for i, s := range p.Sockets {
		if !s.Used {
			out = append(out, i)
		}
	}
	return out
}

// Stats holds counts about a generation run
type Stats struct {
	// Seed the run was started with (needed to reproduce it)
	Seed int64

	// Placed pieces during seeding & growth (not counting caps)
	Placed int

	// Capped sockets (one terminal piece each)
	Capped int

	// OpenSockets left unlinked when the run finished
	OpenSockets int `json:",omitempty"`

	// Steps taken
	Steps int

	// Forced placements, & which checks were waived for them
	Forced         int `json:",omitempty"`
	ForcedOverlaps int `json:",omitempty"`
	ForcedLoops    int `json:",omitempty"`
	ForcedQuality  int `json:",omitempty"`

	// DepthSkipped open sockets not grown because of MaxDepth
	DepthSkipped int `json:",omitempty"`

	// Exhausted is true if growth ran out of sockets before reaching the target
	Exhausted bool `json:",omitempty"`

	// Rejections of candidate pieces by reason
	Rejections map[RejectReason]int
}

// newStats returns blank Stats
func newStats(seed int64) *Stats {
	return &Stats{Seed: seed, Rejections: map[RejectReason]int{}}
}

// reject increments Rejections for r by 1
func (s *Stats) reject(r RejectReason) {
	count, _ := s.Rejections[r]
	s.Rejections[r] = count + 1
}

// Rejected returns number of rejections for the given reason
func (s *Stats) Rejected(r RejectReason) int {
	count, _ := s.Rejections[r]
	return count
}

// TotalRejected across all reasons
func (s *Stats) TotalRejected() int {
	total := 0
	for _, r := range allRejectReasons {
		total += s.Rejected(r)
	}
	return total
}
