// Package cluster builds a hierarchical map-clustering index over donor
// coordinates and answers viewport queries at a given zoom level. Points are
// projected onto a flat [0,1] web-mercator plane; each zoom level from
// maxZoom down to 0 merges points (and clusters formed one level above)
// lying within the zoom-scaled radius into a parent cluster positioned at
// the weighted centroid of its members.
package cluster

import (
	"math"
	"sort"
)

const (
	defaultRadius    = 60.0
	defaultExtent    = 512
	defaultMaxZoom   = 18
	defaultMinPoints = 2

	// cluster ids reserve 5 bits for the origin zoom level
	zoomBits = 5
	maxZoomCap = 22
)

// Options configure an Index. Zero values fall back to the defaults the map
// frontend was tuned against (radius 60, extent 512, zoom 0..18).
type Options struct {
	MinZoom   int
	MaxZoom   int
	MinPoints int
	Radius    float64
	Extent    int
}

// Point is one indexable donor position.
type Point struct {
	DonorKey string
	Lat      float64
	Lng      float64
}

// Marker is one viewport query result: either an aggregate cluster marker or
// a single donor leaf.
type Marker struct {
	ID         int     `json:"id"`
	Lat        float64 `json:"lat"`
	Lng        float64 `json:"lng"`
	Cluster    bool    `json:"cluster"`
	PointCount int     `json:"pointCount"`
	DonorKey   string  `json:"donorKey,omitempty"`
}

// BBox is a geographic viewport. West/East are longitudes, South/North
// latitudes.
type BBox struct {
	West  float64 `json:"west"`
	South float64 `json:"south"`
	East  float64 `json:"east"`
	North float64 `json:"north"`
}

// entry is one node in a zoom level's arena. Parent links are integer ids
// into the level above, never pointers, so levels stay independently
// garbage-collectible and cycle-free.
type entry struct {
	x, y      float64 // projected world coordinates in [0,1]
	id        int     // leaf: source point index; cluster: encoded id
	numPoints int
	parentID  int // cluster this entry merged into, -1 while unmerged
}

// Index is the built clustering structure. Immutable once Load returns, so
// concurrent read-only queries are safe; a changed point set or radius means
// building a fresh Index and swapping the reference.
type Index struct {
	opts   Options
	points []Point
	levels [][]entry // levels[z], z in [MinZoom, MaxZoom+1], each sorted by x
}

// NewIndex validates options and returns an empty index; call Load next.
func NewIndex(opts Options) *Index {
	if opts.Radius <= 0 {
		opts.Radius = defaultRadius
	}
	if opts.Extent <= 0 {
		opts.Extent = defaultExtent
	}
	if opts.MaxZoom <= 0 {
		opts.MaxZoom = defaultMaxZoom
	}
	if opts.MaxZoom > maxZoomCap {
		opts.MaxZoom = maxZoomCap
	}
	if opts.MinZoom < 0 {
		opts.MinZoom = 0
	}
	if opts.MinZoom > opts.MaxZoom {
		opts.MinZoom = opts.MaxZoom
	}
	if opts.MinPoints <= 0 {
		opts.MinPoints = defaultMinPoints
	}
	return &Index{opts: opts}
}

// Options returns the effective (defaulted) options the index was built with.
func (idx *Index) Options() Options { return idx.opts }

// Size returns the number of indexed points.
func (idx *Index) Size() int { return len(idx.points) }

// Load builds the full zoom hierarchy for a point set. The base level at
// maxZoom+1 holds every point unclustered; each level below re-clusters the
// one above it with a doubled effective radius.
func (idx *Index) Load(points []Point) {
	idx.points = points
	idx.levels = make([][]entry, idx.opts.MaxZoom+2)

	base := make([]entry, 0, len(points))
	for i, p := range points {
		base = append(base, entry{
			x:         lngX(p.Lng),
			y:         latY(p.Lat),
			id:        i,
			numPoints: 1,
			parentID:  -1,
		})
	}
	sortByX(base)
	idx.levels[idx.opts.MaxZoom+1] = base

	for z := idx.opts.MaxZoom; z >= idx.opts.MinZoom; z-- {
		idx.levels[z] = idx.clusterLevel(z)
	}
}

// clusterLevel merges the entries of level z+1 into the entries of level z.
// Entries consumed by a cluster get their parentID stamped in place on the
// z+1 arena; that is the only mutation a built level ever sees, and it
// happens before Load returns.
func (idx *Index) clusterLevel(z int) []entry {
	prev := idx.levels[z+1]
	r := idx.opts.Radius / (float64(idx.opts.Extent) * math.Pow(2, float64(z)))
	next := make([]entry, 0, len(prev))
	merged := make([]bool, len(prev))

	for i := range prev {
		if merged[i] {
			continue
		}
		neighbors := []int{i}
		numPoints := prev[i].numPoints

		// prev is sorted by x, so scanning stops once the x distance alone
		// exceeds the radius
		for j := i + 1; j < len(prev) && prev[j].x-prev[i].x <= r; j++ {
			if merged[j] || !within(prev[i], prev[j], r) {
				continue
			}
			neighbors = append(neighbors, j)
			numPoints += prev[j].numPoints
		}
		for j := i - 1; j >= 0 && prev[i].x-prev[j].x <= r; j-- {
			if merged[j] || !within(prev[i], prev[j], r) {
				continue
			}
			neighbors = append(neighbors, j)
			numPoints += prev[j].numPoints
		}

		if len(neighbors) > 1 && numPoints >= idx.opts.MinPoints {
			// encode the origin index at level z+1 plus that level's zoom,
			// offset past the leaf id space
			clusterID := (i<<zoomBits | (z + 1)) + len(idx.points)
			var wx, wy float64
			for _, j := range neighbors {
				w := float64(prev[j].numPoints)
				wx += prev[j].x * w
				wy += prev[j].y * w
				prev[j].parentID = clusterID
				merged[j] = true
			}
			next = append(next, entry{
				x:         wx / float64(numPoints),
				y:         wy / float64(numPoints),
				id:        clusterID,
				numPoints: numPoints,
				parentID:  -1,
			})
		} else {
			merged[i] = true
			carried := prev[i]
			carried.parentID = -1
			next = append(next, carried)
		}
	}

	sortByX(next)
	return next
}

func within(a, b entry, r float64) bool {
	dx := a.x - b.x
	dy := a.y - b.y
	return dx*dx+dy*dy <= r*r
}

// sortByX orders a level's arena by projected x, breaking ties by id so the
// build is deterministic for identical input.
func sortByX(entries []entry) {
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].x != entries[j].x {
			return entries[i].x < entries[j].x
		}
		return entries[i].id < entries[j].id
	})
}

// lngX projects longitude onto [0,1].
func lngX(lng float64) float64 {
	return lng/360 + 0.5
}

// latY projects latitude onto [0,1] (spherical mercator, clamped at the
// poles).
func latY(lat float64) float64 {
	sin := math.Sin(lat * math.Pi / 180)
	y := 0.5 - 0.25*math.Log((1+sin)/(1-sin))/math.Pi
	if y < 0 {
		return 0
	}
	if y > 1 {
		return 1
	}
	return y
}

func xLng(x float64) float64 {
	return (x - 0.5) * 360
}

func yLat(y float64) float64 {
	y2 := (180 - y*360) * math.Pi / 180
	return 360*math.Atan(math.Exp(y2))/math.Pi - 90
}
