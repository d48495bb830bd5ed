package placement

import (
	"github.com/unixpickle/model3d/model3d"
)

// SiteFilter is run for a candidate position against every occupied site.
// The candidate must be accepted when compared with each of them.
type SiteFilter func(candidate, site model3d.Coord3D) bool

// MinDistance ensures the candidate is at least `dist` away from a site.
func MinDistance(dist float64) SiteFilter {
	return func(candidate, site model3d.Coord3D) bool {
		return candidate.Dist(site) >= dist
	}
}
