package cluster

import (
	"fmt"
	"math"
)

// GetClusters returns the markers visible in a bounding box at an integer
// zoom level. For a fixed index this is a pure function of (bbox, zoom).
func (idx *Index) GetClusters(bbox BBox, zoom int) []Marker {
	markers := []Marker{}
	if len(idx.points) == 0 {
		return markers
	}
	bbox = clampBBox(bbox)
	level := idx.levels[idx.limitZoom(zoom)]

	minX := lngX(bbox.West)
	maxX := lngX(bbox.East)
	minY := latY(bbox.North) // y grows southward in mercator space
	maxY := latY(bbox.South)

	for i := range level {
		e := &level[i]
		if e.x < minX || e.x > maxX || e.y < minY || e.y > maxY {
			continue
		}
		markers = append(markers, idx.marker(e))
	}
	return markers
}

// GetClusterExpansionZoom returns the smallest zoom (capped at maxZoom) at
// which the given cluster's members stop being merged into it, used to drive
// zoom-in-on-click.
func (idx *Index) GetClusterExpansionZoom(clusterID int) (int, error) {
	originZoom, _, err := idx.decode(clusterID)
	if err != nil {
		return 0, err
	}
	expansionZoom := originZoom - 1
	for expansionZoom <= idx.opts.MaxZoom {
		children, err := idx.GetChildren(clusterID)
		if err != nil {
			return 0, err
		}
		expansionZoom++
		if len(children) != 1 || !children[0].Cluster {
			break
		}
		clusterID = children[0].ID
	}
	if expansionZoom > idx.opts.MaxZoom {
		expansionZoom = idx.opts.MaxZoom
	}
	return expansionZoom, nil
}

// GetChildren returns the markers that merged into a cluster at the level it
// was formed from, in construction order.
func (idx *Index) GetChildren(clusterID int) ([]Marker, error) {
	originZoom, _, err := idx.decode(clusterID)
	if err != nil {
		return nil, err
	}
	level := idx.levels[originZoom]
	var children []Marker
	for i := range level {
		if level[i].parentID == clusterID {
			children = append(children, idx.marker(&level[i]))
		}
	}
	if len(children) == 0 {
		return nil, fmt.Errorf("no cluster with id %d", clusterID)
	}
	return children, nil
}

// GetLeaves returns up to limit donor leaves under a cluster, in index
// construction order. Sorting by any donor attribute is the caller's
// business. limit <= 0 means no cap.
func (idx *Index) GetLeaves(clusterID, limit int) ([]Marker, error) {
	if limit <= 0 {
		limit = len(idx.points)
	}
	leaves := []Marker{}
	if err := idx.appendLeaves(&leaves, clusterID, limit); err != nil {
		return nil, err
	}
	return leaves, nil
}

func (idx *Index) appendLeaves(leaves *[]Marker, clusterID, limit int) error {
	children, err := idx.GetChildren(clusterID)
	if err != nil {
		return err
	}
	for _, child := range children {
		if len(*leaves) >= limit {
			break
		}
		if child.Cluster {
			if err := idx.appendLeaves(leaves, child.ID, limit); err != nil {
				return err
			}
			continue
		}
		*leaves = append(*leaves, child)
	}
	return nil
}

// decode splits an encoded cluster id back into the zoom level and arena
// index it originated from.
func (idx *Index) decode(clusterID int) (originZoom, originIdx int, err error) {
	encoded := clusterID - len(idx.points)
	if encoded < 0 {
		return 0, 0, fmt.Errorf("id %d is a leaf, not a cluster", clusterID)
	}
	originZoom = encoded & (1<<zoomBits - 1)
	originIdx = encoded >> zoomBits
	if originZoom < idx.opts.MinZoom+1 || originZoom > idx.opts.MaxZoom+1 ||
		originIdx >= len(idx.levels[originZoom]) {
		return 0, 0, fmt.Errorf("no cluster with id %d", clusterID)
	}
	return originZoom, originIdx, nil
}

func (idx *Index) marker(e *entry) Marker {
	if e.numPoints > 1 {
		return Marker{
			ID:         e.id,
			Lat:        yLat(e.y),
			Lng:        xLng(e.x),
			Cluster:    true,
			PointCount: e.numPoints,
		}
	}
	p := idx.points[e.id]
	return Marker{
		ID:         e.id,
		Lat:        p.Lat,
		Lng:        p.Lng,
		Cluster:    false,
		PointCount: 1,
		DonorKey:   p.DonorKey,
	}
}

// limitZoom clamps a query zoom into the built level range; anything past
// maxZoom serves the unclustered base level.
func (idx *Index) limitZoom(zoom int) int {
	if zoom < idx.opts.MinZoom {
		return idx.opts.MinZoom
	}
	if zoom > idx.opts.MaxZoom+1 {
		return idx.opts.MaxZoom + 1
	}
	return zoom
}

// clampBBox keeps a viewport inside the valid lat/lng ranges and fixes
// swapped corners.
func clampBBox(b BBox) BBox {
	b.West = math.Max(-180, math.Min(180, b.West))
	b.East = math.Max(-180, math.Min(180, b.East))
	b.South = math.Max(-90, math.Min(90, b.South))
	b.North = math.Max(-90, math.Min(90, b.North))
	if b.West > b.East {
		b.West, b.East = b.East, b.West
	}
	if b.South > b.North {
		b.South, b.North = b.North, b.South
	}
	return b
}
