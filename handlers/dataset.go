package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"lifeline/cluster"
	"lifeline/ingest"
	"lifeline/processor"
	"lifeline/store"
)

// UploadDatasetHandler accepts a CSV export in the request body, runs the
// aggregation pipeline and swaps the resulting snapshot in atomically.
// Per-row problems are skipped and reported; only a dataset that yields zero
// records is rejected, so callers can tell "no donors" from "could not
// process input".
func UploadDatasetHandler(c *gin.Context, st *store.Store, opts cluster.Options) {
	rows, err := ingest.ReadRows(c.Request.Body)
	if err != nil {
		log.Printf("Dataset upload rejected: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to parse CSV", "details": err.Error()})
		return
	}

	snap, err := ingest.BuildSnapshot(rows, opts)
	if err != nil {
		if errors.Is(err, processor.ErrNoRecords) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Could not process input", "details": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build dataset", "details": err.Error()})
		return
	}

	st.Swap(snap)
	log.Printf("Dataset snapshot %s installed: %d donors, %d rows skipped", snap.ID, len(snap.Donors), snap.Skipped)

	c.JSON(http.StatusOK, gin.H{
		"snapshotId":  snap.ID,
		"donors":      len(snap.Donors),
		"skippedRows": snap.Skipped,
	})
}
