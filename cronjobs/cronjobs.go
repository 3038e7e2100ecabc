package cronjobs

import (
	"log"
	"os"

	"github.com/robfig/cron/v3"

	"lifeline/cluster"
	"lifeline/ingest"
	"lifeline/store"
)

// InitCronJobs schedules the periodic dataset reload. RELOAD_SCHEDULE is a
// standard cron expression; leaving it (or DATASET_PATH) unset disables the
// job. Each run rebuilds the snapshot from the CSV and swaps it in whole,
// in-flight queries keep reading the snapshot they started with.
func InitCronJobs(st *store.Store, datasetPath string, opts cluster.Options) {
	schedule := os.Getenv("RELOAD_SCHEDULE")
	if schedule == "" || datasetPath == "" {
		log.Println("Dataset reload cron disabled (RELOAD_SCHEDULE or DATASET_PATH not set)")
		return
	}

	log.Println("\nStarting Cron Jobs -------------------------------------------------------")
	c := cron.New()

	_, err := c.AddFunc(schedule, func() {
		log.Println("\nCronJob: Dataset reload running")
		snap, err := ingest.LoadSnapshot(datasetPath, opts)
		if err != nil {
			log.Printf("CronJob: dataset reload failed: %v", err)
			return
		}
		st.Swap(snap)
		log.Printf("CronJob: snapshot %s installed, %d donors (%d rows skipped)", snap.ID, len(snap.Donors), snap.Skipped)
	})
	if err != nil {
		log.Println("Error scheduling dataset reload:", err)
	}

	c.Start()
}
