package blob

import (
	"fmt"
	"math"
	"math/rand/v2"
	"strings"
)

// Point is a vertex in unit-square coordinates.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// WobbleMode selects how wobble perturbs each vertex radius.
type WobbleMode int

const (
	// Relative perturbs by a fraction of the base radius.
	Relative WobbleMode = iota
	// Absolute perturbs by a fixed distance in unit-square space.
	Absolute
)

// String returns the configuration name of the mode.
func (m WobbleMode) String() string {
	switch m {
	case Absolute:
		return "absolute"
	default:
		return "relative"
	}
}

// ParseWobbleMode converts a configuration name into a WobbleMode.
// The empty string selects Relative.
func ParseWobbleMode(s string) (WobbleMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "relative", "fraction":
		return Relative, nil
	case "absolute":
		return Absolute, nil
	default:
		return Relative, fmt.Errorf("unknown wobble mode %q (must be 'relative' or 'absolute')", s)
	}
}

// Generate returns points vertices of a wobbly outline around center.
//
// Angles are evenly spaced over a full turn with the endpoint excluded, so the
// polygon closes implicitly from the last vertex back to the first. Generate
// consumes exactly points draws from rng.
func Generate(rng *rand.Rand, center Point, radius float64, points int, wobble float64, mode WobbleMode) []Point {
	if points <= 0 {
		return nil
	}
	pts := make([]Point, points)
	step := 2 * math.Pi / float64(points)
	for i := range pts {
		theta := float64(i) * step
		r := perturb(radius, wobble, rng.Float64(), mode)
		pts[i] = Point{
			X: center.X + r*math.Cos(theta),
			Y: center.Y + r*math.Sin(theta),
		}
	}
	return pts
}

func perturb(radius, wobble, u float64, mode WobbleMode) float64 {
	if mode == Absolute {
		return max(0, radius+wobble*(u-0.5))
	}
	return radius * (1 + wobble*(u-0.5))
}

// MaxRadius is the furthest any vertex can sit from the center for the
// given parameters.
func MaxRadius(radius, wobble float64, mode WobbleMode) float64 {
	if mode == Absolute {
		return radius + wobble/2
	}
	return radius * (1 + wobble/2)
}

// MaxDistance returns the largest distance from center to any point.
func MaxDistance(center Point, pts []Point) float64 {
	var d float64
	for _, p := range pts {
		d = max(d, math.Hypot(p.X-center.X, p.Y-center.Y))
	}
	return d
}

// Bounds returns the axis-aligned bounding box of pts.
// An empty slice yields the zero box.
func Bounds(pts []Point) (minPt, maxPt Point) {
	if len(pts) == 0 {
		return Point{}, Point{}
	}
	minPt, maxPt = pts[0], pts[0]
	for _, p := range pts[1:] {
		minPt.X, minPt.Y = min(minPt.X, p.X), min(minPt.Y, p.Y)
		maxPt.X, maxPt.Y = max(maxPt.X, p.X), max(maxPt.Y, p.Y)
	}
	return minPt, maxPt
}
