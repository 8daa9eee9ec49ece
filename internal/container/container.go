package container

import (
	"log/slog"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/memorywall/api/internal/config"
	"github.com/memorywall/api/internal/models"
	"github.com/memorywall/api/internal/services"
	"github.com/memorywall/api/internal/storage"
	"go.mongodb.org/mongo-driver/mongo"
)

// Container holds all application dependencies
type Container struct {
	Logger *slog.Logger
	Config *config.Config

	MongoDBClient *mongo.Client
	BlobStore     storage.Store

	EventService   *services.EventService
	MediaService   *services.MediaService
	ArchiveService *services.ArchiveService
}

// NewContainer creates a new dependency injection container
func NewContainer(
	logger *slog.Logger,
	cfg *config.Config,
	mongoDBClient *mongo.Client,
	blobClient *azblob.Client,
	blobCred *azblob.SharedKeyCredential,
) *Container {
	repo := models.MongodbNewRepo(mongoDBClient, cfg.MongoDBDatabase, cfg.EventsCollection, cfg.MediaCollection)
	store := storage.NewAzureStore(blobClient, blobCred, cfg.StorageAccountName, cfg.MediaContainerName)

	eventService := services.NewEventService(repo, repo, store, logger)
	mediaService := services.NewMediaService(repo, repo, store, logger)
	archiveService := services.NewArchiveService(repo, repo, store, logger, cfg.ArchiveFetchConcurrency)

	return &Container{
		Logger:         logger,
		Config:         cfg,
		MongoDBClient:  mongoDBClient,
		BlobStore:      store,
		EventService:   eventService,
		MediaService:   mediaService,
		ArchiveService: archiveService,
	}
}
