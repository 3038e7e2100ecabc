package handlers

import (
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"lifeline/cluster"
	"lifeline/metrics"
	"lifeline/store"
)

// GetClustersHandler answers a viewport query: which donor markers are
// visible in the given bounding box at the given zoom. A bloodGroup query
// parameter restricts the index to one group (built lazily per snapshot and
// cached). Cluster ids are only meaningful against the same snapshot and
// bloodGroup filter they were returned with.
func GetClustersHandler(c *gin.Context, st *store.Store) {
	snap := st.Current()
	if snap == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "No dataset loaded"})
		return
	}

	bbox, ok := bboxFromQuery(c)
	if !ok {
		return
	}
	zoomRaw := c.DefaultQuery("zoom", "0")
	zoomF, err := strconv.ParseFloat(zoomRaw, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid zoom", "zoom": zoomRaw})
		return
	}
	zoom := int(math.Round(zoomF))

	idx := snap.Index(c.Query("bloodGroup"))

	start := time.Now()
	markers := idx.GetClusters(bbox, zoom)
	metrics.ClusterQueriesTotal.Inc()
	metrics.ClusterQueryDurationMs.Observe(float64(time.Since(start).Milliseconds()))

	c.JSON(http.StatusOK, gin.H{
		"snapshotId": snap.ID,
		"zoom":       zoom,
		"indexed":    idx.Size(),
		"markers":    markers,
	})
}

// ClusterExpansionHandler returns the zoom level a map should jump to when a
// cluster marker is clicked.
func ClusterExpansionHandler(c *gin.Context, st *store.Store) {
	snap := st.Current()
	if snap == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "No dataset loaded"})
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid cluster id", "id": c.Param("id")})
		return
	}

	idx := snap.Index(c.Query("bloodGroup"))
	zoom, err := idx.GetClusterExpansionZoom(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"snapshotId":    snap.ID,
		"clusterId":     id,
		"expansionZoom": zoom,
	})
}

// ClusterLeavesHandler lists the donors behind a cluster marker for the
// drill-down panel. Default limit mirrors the map frontend's 200.
func ClusterLeavesHandler(c *gin.Context, st *store.Store) {
	snap := st.Current()
	if snap == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "No dataset loaded"})
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid cluster id", "id": c.Param("id")})
		return
	}

	idx := snap.Index(c.Query("bloodGroup"))
	leaves, err := idx.GetLeaves(id, intQuery(c, "limit", 200))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"snapshotId": snap.ID,
		"clusterId":  id,
		"count":      len(leaves),
		"leaves":     leaves,
	})
}

// bboxFromQuery parses the four viewport corners. Writes the error response
// itself so handlers can just bail.
func bboxFromQuery(c *gin.Context) (cluster.BBox, bool) {
	var bbox cluster.BBox
	for _, corner := range []struct {
		name string
		dst  *float64
	}{
		{"west", &bbox.West},
		{"south", &bbox.South},
		{"east", &bbox.East},
		{"north", &bbox.North},
	} {
		raw := c.Query(corner.name)
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid bounding box", "param": corner.name, "value": raw})
			return bbox, false
		}
		*corner.dst = v
	}
	return bbox, true
}
