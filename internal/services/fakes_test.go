package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/memorywall/api/internal/models"
	"github.com/memorywall/api/internal/storage"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeRepo is an in-memory stand-in for the mongo repo, implementing both
// the event and media interfaces the services depend on.
type fakeRepo struct {
	mu     sync.Mutex
	events map[string]*models.Event
	media  map[string]*models.Media
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		events: make(map[string]*models.Event),
		media:  make(map[string]*models.Media),
	}
}

func cloneEvent(e *models.Event) *models.Event {
	c := *e
	c.MemberIDs = append([]string(nil), e.MemberIDs...)
	return &c
}

func cloneMedia(m *models.Media) *models.Media {
	c := *m
	return &c
}

func (f *fakeRepo) ListEventsForHost(ctx context.Context, hostID string) ([]*models.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := []*models.Event{}
	for _, e := range f.events {
		if e.HostID == hostID && !e.IsDeleted() {
			out = append(out, cloneEvent(e))
		}
	}
	sortEventsByCreatedAtDesc(out)
	return out, nil
}

func (f *fakeRepo) ListEventsForMember(ctx context.Context, hostID, userID string) ([]*models.Event, error) {
	all, _ := f.ListEventsForHost(ctx, hostID)
	out := []*models.Event{}
	for _, e := range all {
		if e.IsMember(userID) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeRepo) GetEventByHostAndID(ctx context.Context, hostID, eventID string) (*models.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	e, ok := f.events[eventID]
	if !ok || e.HostID != hostID {
		return nil, nil
	}
	return cloneEvent(e), nil
}

func (f *fakeRepo) CreateEvent(ctx context.Context, event *models.Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, exists := f.events[event.EventID]; exists {
		return fmt.Errorf("duplicate event id %s", event.EventID)
	}
	f.events[event.EventID] = cloneEvent(event)
	return nil
}

func (f *fakeRepo) UpsertEvent(ctx context.Context, event *models.Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.events[event.EventID] = cloneEvent(event)
	return nil
}

func (f *fakeRepo) ListMediaForEvent(ctx context.Context, hostID, eventID string) ([]*models.Media, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := []*models.Media{}
	for _, m := range f.media {
		if m.HostID == hostID && m.EventID == eventID && !m.IsDeleted() {
			out = append(out, cloneMedia(m))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].MediaID < out[j].MediaID
	})
	return out, nil
}

func (f *fakeRepo) GetMediaByID(ctx context.Context, hostID, eventID, mediaID string) (*models.Media, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	m, ok := f.media[mediaID]
	if !ok || m.HostID != hostID || m.EventID != eventID {
		return nil, nil
	}
	return cloneMedia(m), nil
}

func (f *fakeRepo) CreateMedia(ctx context.Context, media *models.Media) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, exists := f.media[media.MediaID]; exists {
		return fmt.Errorf("duplicate media id %s", media.MediaID)
	}
	f.media[media.MediaID] = cloneMedia(media)
	return nil
}

func (f *fakeRepo) UpsertMedia(ctx context.Context, media *models.Media) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.media[media.MediaID] = cloneMedia(media)
	return nil
}

func sortEventsByCreatedAtDesc(events []*models.Event) {
	sort.Slice(events, func(i, j int) bool {
		if !events[i].CreatedAt.Equal(events[j].CreatedAt) {
			return events[i].CreatedAt.After(events[j].CreatedAt)
		}
		return events[i].EventID < events[j].EventID
	})
}

// fakeStore is an in-memory blob store. Blobs are keyed by their URL;
// failReads marks blobs whose download should error.
type fakeStore struct {
	mu          sync.Mutex
	blobs       map[string][]byte
	failReads   map[string]bool
	failDeletes map[string]bool
	deleted     []string
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		blobs:       make(map[string][]byte),
		failReads:   make(map[string]bool),
		failDeletes: make(map[string]bool),
	}
}

func (s *fakeStore) put(blobURL string, data []byte) {
	s.blobs[blobURL] = data
}

func (s *fakeStore) SignUpload(blobName string) (*storage.UploadTicket, error) {
	blobURL := "https://fake.blob.core.windows.net/media/" + blobName
	return &storage.UploadTicket{
		UploadURL: blobURL + "?sig=upload",
		BlobURL:   blobURL,
		BlobName:  blobName,
		ExpiresOn: time.Now().Add(10 * time.Minute),
	}, nil
}

func (s *fakeStore) SignRead(blobURL string) (*storage.ReadTicket, error) {
	return &storage.ReadTicket{
		ReadURL:   blobURL + "?sig=read",
		ExpiresOn: time.Now().Add(10 * time.Minute),
	}, nil
}

func (s *fakeStore) Download(ctx context.Context, blobURL string) (io.ReadCloser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failReads[blobURL] {
		return nil, fmt.Errorf("simulated read failure for %s", blobURL)
	}
	data, ok := s.blobs[blobURL]
	if !ok {
		return nil, fmt.Errorf("blob not found: %s", blobURL)
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (s *fakeStore) Delete(ctx context.Context, blobURL string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failDeletes[blobURL] {
		return fmt.Errorf("simulated delete failure for %s", blobURL)
	}
	delete(s.blobs, blobURL)
	s.deleted = append(s.deleted, blobURL)
	return nil
}
