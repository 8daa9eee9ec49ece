package services

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/memorywall/api/internal/helpers"
	"github.com/memorywall/api/internal/models"
	"github.com/memorywall/api/internal/storage"
)

// blobFetchTimeout caps each per-item download so one unresponsive blob
// cannot stall the whole export.
const blobFetchTimeout = 30 * time.Second

const emptyArchiveNote = "No media has been uploaded to this event yet.\n"

type ArchiveService struct {
	eventRepo        models.EventRepo
	mediaRepo        models.MediaRepo
	store            storage.Store
	logger           *slog.Logger
	fetchConcurrency int
}

func NewArchiveService(eventRepo models.EventRepo, mediaRepo models.MediaRepo, store storage.Store, logger *slog.Logger, fetchConcurrency int) *ArchiveService {
	if fetchConcurrency < 1 {
		fetchConcurrency = 1
	}
	return &ArchiveService{
		eventRepo:        eventRepo,
		mediaRepo:        mediaRepo,
		store:            store,
		logger:           logger,
		fetchConcurrency: fetchConcurrency,
	}
}

// Prepare authorizes the export and loads the media list, so the handler can
// still answer with a JSON error before any archive bytes are written.
func (as *ArchiveService) Prepare(ctx context.Context, caller *helpers.Caller, eventID string) (*models.Event, []*models.Media, error) {
	if !caller.LoggedIn() {
		return nil, nil, models.ErrUnauthorized
	}

	event, err := as.eventRepo.GetEventByHostAndID(ctx, caller.HostID, eventID)
	if err != nil {
		return nil, nil, err
	}
	if event == nil || event.IsDeleted() {
		return nil, nil, models.ErrNotFound
	}
	if !caller.CanAccess(event.IsMember(caller.UserID)) {
		return nil, nil, fmt.Errorf("%w: not a member of this event", models.ErrForbidden)
	}

	items, err := as.mediaRepo.ListMediaForEvent(ctx, caller.HostID, eventID)
	if err != nil {
		return nil, nil, err
	}
	return event, items, nil
}

// WriteArchive streams every readable blob into a ZIP on w. Blobs that fail
// to open are logged and skipped; a write fault on the archive itself aborts,
// since a partially written entry cannot be unwound from the stream. The
// central directory is only written once all entries are in, and an export
// with no entries still yields a valid archive carrying one note entry.
func (as *ArchiveService) WriteArchive(ctx context.Context, items []*models.Media, w io.Writer) error {
	zw := zip.NewWriter(w)
	used := make(map[string]struct{})
	wrote := 0

	results := as.results(ctx, items)
	for res := range results {
		if res.err != nil {
			as.logger.Warn("skipping media in archive",
				"media_id", res.item.MediaID,
				"error", res.err,
			)
			continue
		}

		entryName := helpers.UniqueName(used, entryNameFor(res.item))

		entry, err := zw.Create(entryName)
		if err != nil {
			res.close()
			drain(results)
			return fmt.Errorf("failed to create archive entry %s: %v", entryName, err)
		}

		_, err = io.Copy(entry, res.body)
		res.close()
		if err != nil {
			drain(results)
			return fmt.Errorf("failed to write archive entry %s: %v", entryName, err)
		}
		wrote++
	}

	if wrote == 0 {
		entry, err := zw.Create("README.txt")
		if err != nil {
			return fmt.Errorf("failed to create archive note: %v", err)
		}
		if _, err := io.WriteString(entry, emptyArchiveNote); err != nil {
			return fmt.Errorf("failed to write archive note: %v", err)
		}
	}

	return zw.Close()
}

// entryNameFor derives the archive entry name from the file name (or the
// media id if absent), inferring an extension from the content type when the
// name carries none.
func entryNameFor(item *models.Media) string {
	name := item.FileName
	if name == "" {
		name = item.MediaID
	}
	name = helpers.SafeFileName(name)
	if !strings.Contains(name, ".") {
		name += helpers.ExtFromContentType(item.ContentType)
	}
	return name
}

type fetchResult struct {
	item   *models.Media
	body   io.ReadCloser
	cancel context.CancelFunc
	err    error
}

func (r *fetchResult) close() {
	if r.body != nil {
		r.body.Close()
	}
	if r.cancel != nil {
		r.cancel()
	}
}

// results yields one fetchResult per media item, in input order. With
// fetchConcurrency 1 the fetches run strictly sequentially; above that, up to
// fetchConcurrency blob streams are opened ahead of the consumer while the
// append order stays unchanged.
func (as *ArchiveService) results(ctx context.Context, items []*models.Media) <-chan *fetchResult {
	out := make(chan *fetchResult)

	if as.fetchConcurrency <= 1 {
		go func() {
			defer close(out)
			for _, item := range items {
				out <- as.fetch(ctx, item)
			}
		}()
		return out
	}

	slots := make(chan chan *fetchResult, as.fetchConcurrency-1)
	go func() {
		defer close(slots)
		for _, item := range items {
			slot := make(chan *fetchResult, 1)
			go func(item *models.Media) {
				slot <- as.fetch(ctx, item)
			}(item)
			slots <- slot
		}
	}()
	go func() {
		defer close(out)
		for slot := range slots {
			out <- <-slot
		}
	}()

	return out
}

func (as *ArchiveService) fetch(ctx context.Context, item *models.Media) *fetchResult {
	if item.BlobURL == "" {
		return &fetchResult{item: item, err: fmt.Errorf("media has no blob URL")}
	}

	fctx, cancel := context.WithTimeout(ctx, blobFetchTimeout)
	body, err := as.store.Download(fctx, item.BlobURL)
	if err != nil {
		cancel()
		return &fetchResult{item: item, err: err}
	}
	return &fetchResult{item: item, body: body, cancel: cancel}
}

// drain releases any prefetched streams after an abort.
func drain(results <-chan *fetchResult) {
	for res := range results {
		res.close()
	}
}
