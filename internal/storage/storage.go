package storage

import (
	"context"
	"io"
	"time"
)

// UploadTicket is returned when minting an upload SAS. BlobURL is the
// permanent unsigned URL the client registers after the direct upload.
type UploadTicket struct {
	UploadURL string    `json:"uploadUrl"`
	BlobURL   string    `json:"blobUrl"`
	BlobName  string    `json:"blobName"`
	ExpiresOn time.Time `json:"expiresOn"`
}

type ReadTicket struct {
	ReadURL   string    `json:"readUrl"`
	ExpiresOn time.Time `json:"expiresOn"`
}

// Store is the blob-side contract the handlers and the archive flow depend
// on. The Azure implementation is the production one; tests use a memory fake.
type Store interface {
	// SignUpload mints a short-lived create+write SAS for a new blob.
	SignUpload(blobName string) (*UploadTicket, error)
	// SignRead mints a short-lived read-only SAS for a stored blob URL.
	SignRead(blobURL string) (*ReadTicket, error)
	// Download opens an authenticated stream for a stored blob URL.
	Download(ctx context.Context, blobURL string) (io.ReadCloser, error)
	// Delete removes the blob if it exists. Already-gone blobs are not an error.
	Delete(ctx context.Context, blobURL string) error
}
