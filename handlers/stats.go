package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"lifeline/store"
)

// GetStatsHandler returns the dashboard summary for the current snapshot.
// Stats are computed from the same finalized record sequence the donor and
// cluster endpoints serve, never from a partially aggregated one.
func GetStatsHandler(c *gin.Context, st *store.Store) {
	snap := st.Current()
	if snap == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "No dataset loaded"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"snapshotId":  snap.ID,
		"builtAt":     snap.BuiltAt,
		"skippedRows": snap.Skipped,
		"stats":       snap.Stats,
	})
}
