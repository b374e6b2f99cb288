package utils

import (
	"log"

	"github.com/robfig/cron/v3"

	"skillswap/database"
)

// InitializeSnapshotScheduler starts the periodic snapshot flush. The
// debounced writer already persists on every mutation; this is a safety
// net that only runs while the process is still in fallback mode.
func InitializeSnapshotScheduler(store *database.Store) {
	c := cron.New()

	c.AddFunc("@every 5m", func() {
		if store.DatabaseActive() {
			return
		}
		store.FlushSnapshot()
		log.Println("[SNAPSHOT-SCHEDULER] flushed in-memory snapshot")
	})

	c.Start()
	log.Println("[SNAPSHOT-SCHEDULER] snapshot scheduler started - flushes every 5 minutes in fallback mode")
}
