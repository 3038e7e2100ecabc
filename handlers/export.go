package handlers

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"lifeline/store"
)

// ExportDonorsHandler saves the current donor record set to a local JSON
// file and reports the filename.
func ExportDonorsHandler(c *gin.Context, st *store.Store) {
	snap := st.Current()
	if snap == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "No dataset loaded"})
		return
	}

	if len(snap.Donors) == 0 {
		c.JSON(http.StatusOK, gin.H{
			"message": "No donors found to export.",
			"count":   0,
		})
		return
	}

	jsonData, err := json.MarshalIndent(snap.Donors, "", "  ")
	if err != nil {
		log.Printf("Error marshaling donor data to JSON: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to format donor data",
			"details": err.Error(),
		})
		return
	}

	filename := "donors_export.json"
	if err := os.WriteFile(filename, jsonData, 0o644); err != nil {
		log.Printf("Error writing export file '%s': %v", filename, err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to write export file",
			"details": err.Error(),
		})
		return
	}

	log.Printf("Successfully exported %d donors to %s", len(snap.Donors), filename)

	c.JSON(http.StatusOK, gin.H{
		"message":    fmt.Sprintf("Successfully exported %d donors.", len(snap.Donors)),
		"filename":   filename,
		"count":      len(snap.Donors),
		"snapshotId": snap.ID,
	})
}
