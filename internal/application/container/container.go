// Package container provides dependency injection for all singleton services
package container

import (
	"fmt"

	"github.com/willowmedia/contentbridge/internal/application/services"
	domaincms "github.com/willowmedia/contentbridge/internal/domain/cms"
	infracms "github.com/willowmedia/contentbridge/internal/infrastructure/cms"
	"github.com/willowmedia/contentbridge/internal/infrastructure/observability/logging"
	"github.com/willowmedia/contentbridge/internal/infrastructure/persistence/database"
	"github.com/willowmedia/contentbridge/internal/infrastructure/persistence/snapshots"
	"github.com/willowmedia/contentbridge/pkg/config"
)

// Container holds all singleton services and infrastructure dependencies.
type Container struct {
	Logger *logging.ChanneledLogger
	DB     *database.Database

	// ContentClient serves page reads per the configured content mode. The
	// delivery client additionally feeds Entry Sync regardless of mode.
	ContentClient  domaincms.Client
	DeliveryClient *infracms.DeliveryClient
	SnapshotStore  domaincms.SnapshotStore

	MapperService *services.MapperService
	PageService   *services.PageService
	SyncService   *services.SyncService
}

// NewContainer creates and wires all singleton services.
func NewContainer(logger *logging.ChanneledLogger, db *database.Database) (*Container, error) {
	snapshotStore := snapshots.NewSnapshotRepository(db.Conn, logger)
	deliveryClient := infracms.NewDeliveryClient(logger)

	var contentClient domaincms.Client
	switch config.ContentMode {
	case "store":
		contentClient = infracms.NewStoreClient(snapshotStore, logger)
	case "live":
		contentClient = deliveryClient
	default:
		return nil, fmt.Errorf("unknown content mode %q", config.ContentMode)
	}

	mapperService := services.NewMapperService(contentClient, logger)
	pageService := services.NewPageService(contentClient, mapperService, logger)
	syncService := services.NewSyncService(deliveryClient, deliveryClient, snapshotStore, logger)

	return &Container{
		Logger:         logger,
		DB:             db,
		ContentClient:  contentClient,
		DeliveryClient: deliveryClient,
		SnapshotStore:  snapshotStore,
		MapperService:  mapperService,
		PageService:    pageService,
		SyncService:    syncService,
	}, nil
}

// Close releases the container's infrastructure resources.
func (c *Container) Close() error {
	if c.DB != nil {
		return c.DB.Close()
	}
	return nil
}
