package main

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"lifeline/cluster"
	"lifeline/cronjobs"
	"lifeline/ingest"
	"lifeline/routes"
	"lifeline/store"
)

// clusterOptionsFromEnv reads the map clustering knobs; zero values mean the
// package defaults (radius 60, maxZoom 18).
func clusterOptionsFromEnv() cluster.Options {
	var opts cluster.Options
	if v := os.Getenv("CLUSTER_RADIUS"); v != "" {
		if r, err := strconv.ParseFloat(v, 64); err == nil {
			opts.Radius = r
		}
	}
	if v := os.Getenv("CLUSTER_MAX_ZOOM"); v != "" {
		if z, err := strconv.Atoi(v); err == nil {
			opts.MaxZoom = z
		}
	}
	return opts
}

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	opts := clusterOptionsFromEnv()
	st := store.New()

	// Initial dataset load; the server still starts without one and reports
	// 503 until a dataset is uploaded or the cron reload succeeds.
	datasetPath := os.Getenv("DATASET_PATH")
	if datasetPath != "" {
		snap, err := ingest.LoadSnapshot(datasetPath, opts)
		if err != nil {
			log.Printf("Failed to load initial dataset from %s: %v", datasetPath, err)
		} else {
			st.Swap(snap)
			log.Printf("Loaded dataset snapshot %s: %d donors (%d rows skipped)", snap.ID, len(snap.Donors), snap.Skipped)
		}
	} else {
		log.Println("DATASET_PATH not set, starting without a dataset")
	}

	// Initialize cron jobs
	cronjobs.InitCronJobs(st, datasetPath, opts)

	r := routes.SetupRouter(st, opts)
	if err := r.Run(":" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
