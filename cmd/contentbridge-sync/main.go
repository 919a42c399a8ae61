// Command contentbridge-sync refreshes the local content snapshots from the
// CMS and exits. Intended for cron and deploy hooks.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/willowmedia/contentbridge/internal/application/services"
	infracms "github.com/willowmedia/contentbridge/internal/infrastructure/cms"
	"github.com/willowmedia/contentbridge/internal/infrastructure/observability/logging"
	"github.com/willowmedia/contentbridge/internal/infrastructure/persistence/database"
	"github.com/willowmedia/contentbridge/internal/infrastructure/persistence/snapshots"
)

func main() {
	var quiet, force bool
	flag.BoolVar(&quiet, "quiet", false, "suppress progress output")
	flag.BoolVar(&quiet, "q", false, "suppress progress output (shorthand)")
	flag.BoolVar(&force, "force", false, "rewrite all snapshots regardless of content hash")
	flag.BoolVar(&force, "f", false, "rewrite all snapshots regardless of content hash (shorthand)")
	flag.Parse()

	if err := run(quiet, force); err != nil {
		fmt.Fprintf(os.Stderr, "sync failed: %v\n", err)
		os.Exit(1)
	}
}

func run(quiet, force bool) error {
	loggerConfig := logging.DefaultLoggerConfig()
	loggerConfig.OutputToConsole = false
	if quiet {
		loggerConfig.DefaultLevel = slog.LevelWarn
	}
	logger, err := logging.NewChanneledLogger(loggerConfig)
	if err != nil {
		return err
	}
	defer logger.Close()

	db, err := database.New()
	if err != nil {
		return err
	}
	defer db.Close()

	store := snapshots.NewSnapshotRepository(db.Conn, logger)
	client := infracms.NewDeliveryClient(logger)
	syncService := services.NewSyncService(client, client, store, logger)

	if !quiet {
		fmt.Println("Updating content snapshots")
	}

	result, err := syncService.Refresh(context.Background(), force)
	if err != nil {
		return err
	}

	if !quiet {
		fmt.Printf("Done. Added: %d. Updated: %d.\n", result.Added, result.Updated)
	}
	return nil
}
