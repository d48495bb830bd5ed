// Package placement decides if a candidate piece position is acceptable given
// everything placed so far.
package placement

import (
	"github.com/unixpickle/model3d/model3d"
)

// Site is a committed piece position.
type Site struct {
	Handle   int
	Position model3d.Coord3D
}

// Occupied is the ordered set of committed piece positions.
// One entry per committed piece, never removed.
type Occupied struct {
	sites []Site
}

// NewOccupied returns an empty set
func NewOccupied() *Occupied {
	return &Occupied{sites: []Site{}}
}

// Add records a committed piece position.
func (o *Occupied) Add(handle int, pos model3d.Coord3D) {
	o.sites = append(o.sites, Site{Handle: handle, Position: pos})
}

// Len returns how many positions are occupied
func (o *Occupied) Len() int {
	return len(o.sites)
}

// Sites returns all occupied positions in commit order.
func (o *Occupied) Sites() []Site {
	return o.sites
}

// Position of the given handle, if it's been committed.
func (o *Occupied) Position(handle int) (model3d.Coord3D, bool) {
	for _, s := range o.sites {
		if s.Handle == handle {
			return s.Position, true
		}
	}
	return model3d.Coord3D{}, false
}

// accepted returns if candidate passes every filter against every site,
// skipping the excluded handle.
func (o *Occupied) accepted(candidate model3d.Coord3D, exclude int, filters ...SiteFilter) bool {
	for _, s := range o.sites {
		if s.Handle == exclude {
			continue
		}
		for _, fn := range filters {
			if !fn(candidate, s.Position) {
				return false
			}
		}
	}
	return true
}

// near returns handles (other than exclude) within dist of candidate, in commit order.
func (o *Occupied) near(candidate model3d.Coord3D, exclude int, dist float64) []int {
	out := []int{}
	for _, s := range o.sites {
		if s.Handle == exclude {
			continue
		}
		if !MinDistance(dist)(candidate, s.Position) {
			out = append(out, s.Handle)
		}
	}
	return out
}
