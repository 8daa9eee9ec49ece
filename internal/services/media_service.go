package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/memorywall/api/internal/helpers"
	"github.com/memorywall/api/internal/models"
	"github.com/memorywall/api/internal/storage"
)

type MediaService struct {
	eventRepo models.EventRepo
	mediaRepo models.MediaRepo
	store     storage.Store
	logger    *slog.Logger
}

func NewMediaService(eventRepo models.EventRepo, mediaRepo models.MediaRepo, store storage.Store, logger *slog.Logger) *MediaService {
	return &MediaService{
		eventRepo: eventRepo,
		mediaRepo: mediaRepo,
		store:     store,
		logger:    logger,
	}
}

type CreateMediaInput struct {
	BlobURL     string           `json:"blobUrl"`
	FileName    string           `json:"fileName"`
	ContentType string           `json:"contentType"`
	Size        int64            `json:"size"`
	Type        models.MediaType `json:"type"`
}

type SignUploadInput struct {
	FileName    string `json:"fileName"`
	ContentType string `json:"contentType"`
}

type DeleteMediaReport struct {
	OK      bool   `json:"ok"`
	EventID string `json:"eventId"`
	MediaID string `json:"mediaId"`
}

func (ms *MediaService) ListMedia(ctx context.Context, caller *helpers.Caller, eventID string) ([]*models.Media, error) {
	if _, err := ms.authorizeEvent(ctx, caller, eventID); err != nil {
		return nil, err
	}
	return ms.mediaRepo.ListMediaForEvent(ctx, caller.HostID, eventID)
}

// CreateMedia registers metadata after the client finished its direct upload.
func (ms *MediaService) CreateMedia(ctx context.Context, caller *helpers.Caller, eventID string, input *CreateMediaInput) (*models.Media, error) {
	if _, err := ms.authorizeEvent(ctx, caller, eventID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(input.BlobURL) == "" || strings.TrimSpace(input.FileName) == "" {
		return nil, fmt.Errorf("%w: blobUrl and fileName are required", models.ErrBadRequest)
	}

	media := models.NewMedia(caller.HostID, eventID, caller.UserID,
		input.BlobURL, input.FileName, input.ContentType, input.Size, input.Type)

	if err := models.Validate.Struct(media); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrBadRequest, err)
	}
	if err := ms.mediaRepo.CreateMedia(ctx, media); err != nil {
		return nil, err
	}
	return media, nil
}

// DeleteMedia soft-deletes the metadata record and then tries to remove the
// blob. A failed blob delete is logged and ignored, it never fails the request.
func (ms *MediaService) DeleteMedia(ctx context.Context, caller *helpers.Caller, eventID, mediaID string) (*DeleteMediaReport, error) {
	if _, err := ms.authorizeEvent(ctx, caller, eventID); err != nil {
		return nil, err
	}

	media, err := ms.mediaRepo.GetMediaByID(ctx, caller.HostID, eventID, mediaID)
	if err != nil {
		return nil, err
	}
	if media == nil || media.IsDeleted() {
		return nil, models.ErrNotFound
	}

	if err := media.MarkDeleted(time.Now().UTC()); err != nil {
		return nil, models.ErrNotFound
	}
	if err := ms.mediaRepo.UpsertMedia(ctx, media); err != nil {
		return nil, err
	}

	if media.BlobURL != "" {
		if err := ms.store.Delete(ctx, media.BlobURL); err != nil {
			ms.logger.Warn("blob delete failed (ignored)",
				"media_id", mediaID,
				"error", err,
			)
		}
	}

	return &DeleteMediaReport{OK: true, EventID: eventID, MediaID: mediaID}, nil
}

// SignUpload mints a write SAS for a blob namespaced under host/event. No
// bytes move through the server here; the client uploads straight to storage.
func (ms *MediaService) SignUpload(ctx context.Context, caller *helpers.Caller, eventID string, input *SignUploadInput) (*storage.UploadTicket, error) {
	if _, err := ms.authorizeEvent(ctx, caller, eventID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(input.FileName) == "" || strings.TrimSpace(input.ContentType) == "" {
		return nil, fmt.Errorf("%w: fileName and contentType are required", models.ErrBadRequest)
	}

	safeName := helpers.SanitizeBlobFileName(input.FileName)
	blobName := fmt.Sprintf("%s/%s/%s_%s", caller.HostID, eventID, uuid.NewString(), safeName)

	return ms.store.SignUpload(blobName)
}

func (ms *MediaService) SignRead(ctx context.Context, caller *helpers.Caller, eventID, mediaID string) (*storage.ReadTicket, *models.Media, error) {
	if _, err := ms.authorizeEvent(ctx, caller, eventID); err != nil {
		return nil, nil, err
	}

	media, err := ms.mediaRepo.GetMediaByID(ctx, caller.HostID, eventID, mediaID)
	if err != nil {
		return nil, nil, err
	}
	if media == nil || media.IsDeleted() || media.BlobURL == "" {
		return nil, nil, models.ErrNotFound
	}

	ticket, err := ms.store.SignRead(media.BlobURL)
	if err != nil {
		return nil, nil, err
	}
	return ticket, media, nil
}

func (ms *MediaService) authorizeEvent(ctx context.Context, caller *helpers.Caller, eventID string) (*models.Event, error) {
	if !caller.LoggedIn() {
		return nil, models.ErrUnauthorized
	}

	event, err := ms.eventRepo.GetEventByHostAndID(ctx, caller.HostID, eventID)
	if err != nil {
		return nil, err
	}
	if event == nil || event.IsDeleted() {
		return nil, models.ErrNotFound
	}
	if !caller.CanAccess(event.IsMember(caller.UserID)) {
		return nil, fmt.Errorf("%w: not a member of this event", models.ErrForbidden)
	}
	return event, nil
}
