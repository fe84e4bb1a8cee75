package jobs

import (
	"context"
	"log"
	"os"
	"time"

	config "markify/configs"
	"markify/services"
)

// ExportNightlyBackup snapshots every collection to BACKUP_PATH. Failures are
// logged and left for the next run; the export is regenerated wholesale each
// time.
func ExportNightlyBackup() {
	log.Println("Running job: ExportNightlyBackup...")

	path := config.ConfigOr("BACKUP_PATH", "markify_backup.csv")

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	data, err := services.FetchBackupData(ctx)
	if err != nil {
		log.Printf("🔥 Backup job failed to fetch data: %v", err)
		return
	}

	out, err := services.WriteBackup(data)
	if err != nil {
		log.Printf("🔥 Backup job failed to write backup: %v", err)
		return
	}

	if err := os.WriteFile(path, out, 0o644); err != nil {
		log.Printf("🔥 Backup job failed to write %s: %v", path, err)
		return
	}
	log.Printf("✅ Backup exported to %s", path)
}
