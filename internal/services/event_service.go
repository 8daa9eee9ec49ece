package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/memorywall/api/internal/helpers"
	"github.com/memorywall/api/internal/models"
	"github.com/memorywall/api/internal/storage"
)

type EventService struct {
	eventRepo models.EventRepo
	mediaRepo models.MediaRepo
	store     storage.Store
	logger    *slog.Logger
}

func NewEventService(eventRepo models.EventRepo, mediaRepo models.MediaRepo, store storage.Store, logger *slog.Logger) *EventService {
	return &EventService{
		eventRepo: eventRepo,
		mediaRepo: mediaRepo,
		store:     store,
		logger:    logger,
	}
}

type CreateEventInput struct {
	Title       string            `json:"title"`
	Description string            `json:"description"`
	StartsAt    *time.Time        `json:"startsAt"`
	EndsAt      *time.Time        `json:"endsAt"`
	Visibility  models.Visibility `json:"visibility"`
	MemberIDs   []string          `json:"memberIds"`
}

// DeleteEventReport aggregates the outcome of a cascading delete. Blob
// cleanup failures are counted, never propagated: the soft delete itself is
// the operation, blob removal is best effort.
type DeleteEventReport struct {
	OK                 bool   `json:"ok"`
	EventID            string `json:"eventId"`
	DeletedMediaCount  int    `json:"deletedMediaCount"`
	BlobDeleteFailures int    `json:"blobDeleteFailures"`
}

// ListEvents returns every non-deleted event for the host when the caller is
// admin, otherwise only events the caller is a member of. Newest first.
func (es *EventService) ListEvents(ctx context.Context, caller *helpers.Caller) ([]*models.Event, error) {
	if !caller.LoggedIn() {
		return nil, models.ErrUnauthorized
	}
	if caller.IsAdmin {
		return es.eventRepo.ListEventsForHost(ctx, caller.HostID)
	}
	return es.eventRepo.ListEventsForMember(ctx, caller.HostID, caller.UserID)
}

func (es *EventService) CreateEvent(ctx context.Context, caller *helpers.Caller, input *CreateEventInput) (*models.Event, error) {
	if !caller.LoggedIn() {
		return nil, models.ErrUnauthorized
	}
	if strings.TrimSpace(input.Title) == "" {
		return nil, fmt.Errorf("%w: title is required", models.ErrBadRequest)
	}
	if input.Visibility != "" && !input.Visibility.Valid() {
		return nil, fmt.Errorf("%w: visibility must be PRIVATE or PUBLIC", models.ErrBadRequest)
	}

	event := models.NewEvent(caller.HostID, caller.UserID, input.Title, input.Description,
		input.Visibility, input.StartsAt, input.EndsAt, input.MemberIDs)

	if err := models.Validate.Struct(event); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrBadRequest, err)
	}

	if err := es.eventRepo.CreateEvent(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

func (es *EventService) GetEvent(ctx context.Context, caller *helpers.Caller, eventID string) (*models.Event, error) {
	if !caller.LoggedIn() {
		return nil, models.ErrUnauthorized
	}

	event, err := es.loadActiveEvent(ctx, caller.HostID, eventID)
	if err != nil {
		return nil, err
	}
	if !caller.CanAccess(event.IsMember(caller.UserID)) {
		return nil, fmt.Errorf("%w: not a member of this event", models.ErrForbidden)
	}
	return event, nil
}

func (es *EventService) PatchEvent(ctx context.Context, caller *helpers.Caller, eventID string, patch *models.EventPatch) (*models.Event, error) {
	if !caller.LoggedIn() {
		return nil, models.ErrUnauthorized
	}
	if !caller.IsAdmin {
		return nil, fmt.Errorf("%w: admin only", models.ErrForbidden)
	}

	event, err := es.loadActiveEvent(ctx, caller.HostID, eventID)
	if err != nil {
		return nil, err
	}
	if err := patch.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrBadRequest, err)
	}

	patch.Apply(event, time.Now().UTC())

	if err := es.eventRepo.UpsertEvent(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

// DeleteEvent soft-deletes the event, then cascades: every active media item
// is soft-deleted and its blob removed best-effort. The cascade is a sequence
// of independent writes with no atomicity guarantee; a crash mid-cascade can
// leave media active under a deleted event.
func (es *EventService) DeleteEvent(ctx context.Context, caller *helpers.Caller, eventID string) (*DeleteEventReport, error) {
	if !caller.LoggedIn() {
		return nil, models.ErrUnauthorized
	}
	if !caller.IsAdmin {
		return nil, fmt.Errorf("%w: admin only", models.ErrForbidden)
	}

	event, err := es.loadActiveEvent(ctx, caller.HostID, eventID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if err := event.MarkDeleted(now); err != nil {
		return nil, models.ErrNotFound
	}
	if err := es.eventRepo.UpsertEvent(ctx, event); err != nil {
		return nil, err
	}

	items, err := es.mediaRepo.ListMediaForEvent(ctx, caller.HostID, eventID)
	if err != nil {
		return nil, err
	}

	report := &DeleteEventReport{OK: true, EventID: eventID}
	for _, m := range items {
		if err := m.MarkDeleted(now); err != nil {
			continue
		}
		if err := es.mediaRepo.UpsertMedia(ctx, m); err != nil {
			return nil, err
		}
		report.DeletedMediaCount++

		if m.BlobURL == "" {
			continue
		}
		if err := es.store.Delete(ctx, m.BlobURL); err != nil {
			report.BlobDeleteFailures++
			es.logger.Warn("blob delete failed during event cascade",
				"event_id", eventID,
				"media_id", m.MediaID,
				"error", err,
			)
		}
	}

	return report, nil
}

// AddMembers merges ids into the member list. Any admin or existing member
// may add; the owner and the caller are always re-included.
func (es *EventService) AddMembers(ctx context.Context, caller *helpers.Caller, eventID string, memberIDs []string) (*models.Event, error) {
	if !caller.LoggedIn() {
		return nil, models.ErrUnauthorized
	}
	if len(models.UniqueStrings(memberIDs)) == 0 {
		return nil, fmt.Errorf("%w: memberIds is required", models.ErrBadRequest)
	}

	event, err := es.loadActiveEvent(ctx, caller.HostID, eventID)
	if err != nil {
		return nil, err
	}
	if !caller.CanAccess(event.IsMember(caller.UserID)) {
		return nil, fmt.Errorf("%w: not a member of this event", models.ErrForbidden)
	}

	event.AddMembers(caller.UserID, memberIDs)
	event.UpdatedAt = time.Now().UTC()

	if err := es.eventRepo.UpsertEvent(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

func (es *EventService) RemoveMember(ctx context.Context, caller *helpers.Caller, eventID, memberID string) (*models.Event, error) {
	if !caller.LoggedIn() {
		return nil, models.ErrUnauthorized
	}
	if strings.TrimSpace(memberID) == "" {
		return nil, fmt.Errorf("%w: memberId is required", models.ErrBadRequest)
	}

	event, err := es.loadActiveEvent(ctx, caller.HostID, eventID)
	if err != nil {
		return nil, err
	}
	if !caller.CanAccess(event.IsMember(caller.UserID)) {
		return nil, fmt.Errorf("%w: not a member of this event", models.ErrForbidden)
	}

	if err := event.RemoveMember(caller.UserID, memberID, caller.IsAdmin); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrForbidden, err)
	}
	event.UpdatedAt = time.Now().UTC()

	if err := es.eventRepo.UpsertEvent(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

func (es *EventService) loadActiveEvent(ctx context.Context, hostID, eventID string) (*models.Event, error) {
	event, err := es.eventRepo.GetEventByHostAndID(ctx, hostID, eventID)
	if err != nil {
		return nil, err
	}
	if event == nil || event.IsDeleted() {
		return nil, models.ErrNotFound
	}
	return event, nil
}
