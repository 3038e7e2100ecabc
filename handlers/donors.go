package handlers

import (
	"net/http"
	"sort"
	"strconv"

	"github.com/gin-gonic/gin"

	"lifeline/store"
	"lifeline/types"
)

// GetDonorsHandler returns the donor directory of the current snapshot.
// Supports ?limit=N for the directory's first-page slice.
func GetDonorsHandler(c *gin.Context, st *store.Store) {
	snap := st.Current()
	if snap == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "No dataset loaded"})
		return
	}

	donors := snap.Donors
	if limit := intQuery(c, "limit", 0); limit > 0 && limit < len(donors) {
		donors = donors[:limit]
	}

	c.JSON(http.StatusOK, gin.H{
		"snapshotId": snap.ID,
		"total":      len(snap.Donors),
		"count":      len(donors),
		"donors":     donors,
	})
}

// GetTopDonorsHandler returns donors ranked by total donations, most first.
// Ranking is stable, so equal totals keep directory order.
func GetTopDonorsHandler(c *gin.Context, st *store.Store) {
	snap := st.Current()
	if snap == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "No dataset loaded"})
		return
	}

	top := make([]types.DonorRecord, len(snap.Donors))
	copy(top, snap.Donors)
	sort.SliceStable(top, func(i, j int) bool {
		return top[i].TotalDonations > top[j].TotalDonations
	})

	limit := intQuery(c, "limit", 10)
	if limit > 0 && limit < len(top) {
		top = top[:limit]
	}

	c.JSON(http.StatusOK, gin.H{
		"snapshotId": snap.ID,
		"count":      len(top),
		"donors":     top,
	})
}

// GetDonorHandler returns a single donor by bridge id, synthesized donation
// history included. Bridge ids may repeat; the first match wins.
func GetDonorHandler(c *gin.Context, st *store.Store) {
	snap := st.Current()
	if snap == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "No dataset loaded"})
		return
	}

	bridgeID := c.Param("bridgeId")
	donor, ok := snap.DonorByBridgeID(bridgeID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Donor not found", "bridgeId": bridgeID})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"snapshotId": snap.ID,
		"donor":      donor,
	})
}

// intQuery reads an integer query parameter, falling back on absence or
// garbage.
func intQuery(c *gin.Context, name string, def int) int {
	raw := c.Query(name)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}
