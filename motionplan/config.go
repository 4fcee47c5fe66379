// Package motionplan builds collision-free angular paths for a triple-axis
// spectrometer: it rasterizes the configuration space of the instrument's
// two free angles, extracts obstacle contours from the rasterization,
// builds a line-segment Voronoi roadmap over those contours, and searches
// the roadmap for a path between a start and target configuration.
package motionplan

import "math"

// Config collects the engine's tunable parameters, mirroring the original's
// single settings struct.
type Config struct {
	// Eps collapses near-equal Voronoi vertices during construction.
	Eps float64
	// EpsAngular is the general angular tolerance used wherever two angles
	// are compared for near-equality.
	EpsAngular float64
	// VoroedgeEps bounds the maximum chord error when a parabolic bisector
	// is discretized into a polyline.
	VoroedgeEps float64
	// SubdivLen is the target maximum step length (radians, or
	// motor-speed-weighted length) the post-processor subdivides to.
	SubdivLen float64
	// MinAngularDistToWalls is the safety clearance Voronoi vertices and
	// retraction/shortcut lines must maintain from any wall, in radians.
	MinAngularDistToWalls float64
	// RemoveBisectorsBelowMinWallDist discards Voronoi vertices closer to a
	// wall than MinAngularDistToWalls.
	RemoveBisectorsBelowMinWallDist bool
	// SimplifyMinDist is the minimum-distance filter applied alongside the
	// angular bend-angle filter when simplifying traced contours, in pixels.
	SimplifyMinDist float64
	// UseMotorSpeeds rescales each axis by its angular speed when computing
	// path length, so edge weight approximates motion time.
	UseMotorSpeeds bool
	// Directpath enables the direct-shortcut check before falling back to
	// roadmap retraction.
	Directpath bool
	// DirectpathSearchRadius bounds the angular distance within which a
	// direct shortcut is attempted, in radians.
	DirectpathSearchRadius float64
	// NumClosestVoronoiVertices bounds how many roadmap vertices are
	// considered during retraction.
	NumClosestVoronoiVertices int
	// VerifyPath re-checks collisions along the decoded angular path before
	// returning it.
	VerifyPath bool
	// MaxnumThreads bounds the C-space builder's worker pool.
	MaxnumThreads int
}

// DefaultConfig returns the engine's default tunables.
func DefaultConfig() Config {
	return Config{
		Eps:                             1e-3,
		EpsAngular:                      1e-3,
		VoroedgeEps:                     1e-2,
		SubdivLen:                       0.1,
		MinAngularDistToWalls:           5 * math.Pi / 180,
		RemoveBisectorsBelowMinWallDist: true,
		SimplifyMinDist:                 3,
		UseMotorSpeeds:                  true,
		Directpath:                      true,
		DirectpathSearchRadius:          20 * math.Pi / 180,
		NumClosestVoronoiVertices:       64,
		VerifyPath:                      true,
		MaxnumThreads:                   4,
	}
}
