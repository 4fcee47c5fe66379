package motionplan

import (
	"github.com/ill-paths/tasengine/spatialmath"
)

// PixelPoint is an integer pixel coordinate, as traced contours are stored
// before being converted to the floating-point Vec2 used by line segments.
type PixelPoint struct{ Col, Row int }

// WallContour is an ordered loop of pixel coordinates traced around one
// maximal connected region of non-free pixels. Inverted is true when the
// loop encircles allowed coordinates instead of forbidden ones; the
// outermost bounding contour is always inverted and is excluded from the
// roadmap by the caller.
type WallContour struct {
	Points   []PixelPoint
	Inverted bool
}

var moore8 = [8]PixelPoint{
	{0, -1}, {1, -1}, {1, 0}, {1, 1}, {0, 1}, {-1, 1}, {-1, 0}, {-1, -1},
}

func (img *ConfigSpaceImage) isWall(p PixelPoint) bool {
	if p.Col < 0 || p.Col >= img.W || p.Row < 0 || p.Row >= img.H {
		return false
	}
	return img.At(p.Col, p.Row) != PixelFree
}

// ExtractContours traces one ordered pixel loop per maximal 8-connected
// region of non-free pixels, via Moore-neighbour boundary tracing. Each
// foreground pixel is visited by at most one contour: an "already traced"
// marker prevents retracing a region's boundary once a component has been
// walked, and isolated single-pixel regions degenerate to a one-point loop.
func ExtractContours(img *ConfigSpaceImage) []WallContour {
	visited := make([]bool, img.W*img.H)
	var contours []WallContour

	for row := 0; row < img.H; row++ {
		for col := 0; col < img.W; col++ {
			idx := row*img.W + col
			if visited[idx] || img.Pixels[idx] == PixelFree {
				continue
			}
			if isBoundaryStart(img, visited, col, row) {
				loop := traceMoore(img, PixelPoint{col, row})
				for _, p := range loop {
					visited[p.Row*img.W+p.Col] = true
				}
				contours = append(contours, WallContour{Points: loop})
			}
		}
	}
	markInverted(img, contours)
	return contours
}

// isBoundaryStart reports whether (col,row) is an unvisited wall pixel that
// has not already been swallowed by a previously traced loop covering the
// same component (a single connected region can touch multiple raster
// scan-order starting points only through its already-visited interior).
func isBoundaryStart(img *ConfigSpaceImage, visited []bool, col, row int) bool {
	return !visited[row*img.W+col] && img.At(col, row) != PixelFree
}

// traceMoore walks the boundary of the connected wall region containing
// start using Moore-neighbour tracing: at each step it scans the 8
// neighbours in clockwise order starting just past the direction it
// arrived from, and moves to the first wall pixel found.
func traceMoore(img *ConfigSpaceImage, start PixelPoint) []PixelPoint {
	loop := []PixelPoint{start}
	seen := map[PixelPoint]bool{start: true}

	// Degenerate case: an isolated pixel with no wall neighbours.
	entryDir := 6 // "came from the west"
	current := start
	steps := 0
	maxSteps := img.W*img.H + 8
	for steps < maxSteps {
		steps++
		found := false
		for i := 1; i <= 8; i++ {
			dirIdx := (entryDir + i) % 8
			cand := PixelPoint{current.Col + moore8[dirIdx].Col, current.Row + moore8[dirIdx].Row}
			if img.isWall(cand) {
				entryDir = (dirIdx + 4) % 8
				current = cand
				found = true
				break
			}
		}
		if !found {
			break // isolated pixel
		}
		if current == start {
			break
		}
		if !seen[current] {
			loop = append(loop, current)
			seen[current] = true
		}
	}
	return loop
}

// markInverted flags, for every contour, whether the region it bounds is
// "inverted" (encircles allowed coordinates): a pixel one step outside the
// contour's minimum vertex is tested; if that pixel is not free, the region
// is inverted. This always fires for the outermost bounding contour, since
// stepping outside the image's minimum corner lands outside the raster,
// which this engine treats as non-free (see ConfigSpaceImage.At).
func markInverted(img *ConfigSpaceImage, contours []WallContour) {
	for i := range contours {
		pts := contours[i].Points
		if len(pts) == 0 {
			continue
		}
		minPt := pts[0]
		for _, p := range pts[1:] {
			if p.Col < minPt.Col || (p.Col == minPt.Col && p.Row < minPt.Row) {
				minPt = p
			}
		}
		outside := PixelPoint{minPt.Col - 1, minPt.Row - 1}
		contours[i].Inverted = img.At(outside.Col, outside.Row) != PixelFree
	}
}

// SimplifyAndSplit converts a traced pixel loop into one or more convex
// Vec2 polygons: it first drops near-straight interior vertices using an
// angular-tolerance/minimum-distance filter, then optionally recursively
// splits the remainder into convex parts.
func SimplifyAndSplit(c WallContour, cfg Config, angularEps float64, convexSplit bool) []spatialmath.Polygon {
	pts := make([]spatialmath.Vec2, len(c.Points))
	for i, p := range c.Points {
		pts[i] = spatialmath.NewVec2(float64(p.Col), float64(p.Row))
	}
	simplified := spatialmath.SimplifyContour(pts, angularEps, cfg.SimplifyMinDist)
	if len(simplified) < 3 {
		return nil
	}
	poly := spatialmath.Polygon{Vertices: simplified}
	if !convexSplit {
		return []spatialmath.Polygon{poly}
	}
	return spatialmath.ConvexSplit(poly)
}

// LineSegment is a pair of 2D pixel-space points, the unit the Voronoi
// roadmap is built over.
type LineSegment struct{ A, B spatialmath.Vec2 }

// LineGroup identifies the half-open range [Start, End) of segments that
// originated from one traced contour, and whether that contour's region is
// inverted.
type LineGroup struct {
	Start, End int
	Inverted   bool
}

// BuildLineSegments emits one line segment per consecutive vertex pair of
// every non-outermost, non-degenerate (sub-)polygon derived from contours
// (convex parts when convexSplit is set), grouped by originating contour.
func BuildLineSegments(contours []WallContour, cfg Config, angularEps float64, convexSplit bool) ([]LineSegment, []LineGroup) {
	var segments []LineSegment
	var groups []LineGroup

	outermost := outermostIndex(contours)
	for ci, c := range contours {
		if ci == outermost {
			continue
		}
		polys := SimplifyAndSplit(c, cfg, angularEps, convexSplit)
		start := len(segments)
		for _, poly := range polys {
			n := len(poly.Vertices)
			for i := 0; i < n; i++ {
				segments = append(segments, LineSegment{A: poly.Vertices[i], B: poly.Vertices[(i+1)%n]})
			}
		}
		if len(segments) > start {
			groups = append(groups, LineGroup{Start: start, End: len(segments), Inverted: c.Inverted})
		}
	}
	return segments, groups
}

// outermostIndex returns the index of the inverted contour enclosing the
// largest pixel-space bounding box, the convention used to identify (and
// exclude from the roadmap) the outermost bounding loop. Contours that are
// not inverted are never chosen; with no inverted contour it returns -1.
func outermostIndex(contours []WallContour) int {
	best := -1
	bestArea := -1.0
	for i, c := range contours {
		if len(c.Points) == 0 {
			continue
		}
		minX, minY, maxX, maxY := c.Points[0].Col, c.Points[0].Row, c.Points[0].Col, c.Points[0].Row
		for _, p := range c.Points[1:] {
			if p.Col < minX {
				minX = p.Col
			}
			if p.Col > maxX {
				maxX = p.Col
			}
			if p.Row < minY {
				minY = p.Row
			}
			if p.Row > maxY {
				maxY = p.Row
			}
		}
		area := float64(maxX-minX) * float64(maxY-minY)
		if area > bestArea && contours[i].Inverted {
			bestArea = area
			best = i
		}
	}
	return best
}
