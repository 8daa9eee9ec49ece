package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type MediaType string

const (
	MediaTypeImage MediaType = "IMAGE"
	MediaTypeVideo MediaType = "VIDEO"
)

type Media struct {
	ID      string `bson:"_id" json:"id"`
	MediaID string `bson:"mediaId" json:"mediaId"`
	HostID  string `bson:"hostId" json:"hostId"`
	EventID string `bson:"eventId" json:"eventId"`

	UploaderID  string    `bson:"uploaderId" json:"uploaderId"`
	BlobURL     string    `bson:"blobUrl" json:"blobUrl" validate:"required"`
	FileName    string    `bson:"fileName" json:"fileName" validate:"required"`
	ContentType string    `bson:"contentType" json:"contentType"`
	Size        int64     `bson:"size" json:"size"`
	Type        MediaType `bson:"type" json:"type"`
	Status      Status    `bson:"status" json:"status"`

	CreatedAt time.Time  `bson:"createdAt" json:"createdAt"`
	DeletedAt *time.Time `bson:"deletedAt,omitempty" json:"deletedAt,omitempty"`
}

// NewMedia registers metadata for a blob the client already uploaded. The
// uploader is always the authenticated caller, never a body field.
func NewMedia(hostID, eventID, uploaderID, blobURL, fileName, contentType string, size int64, mediaType MediaType) *Media {
	id := "media_" + uuid.NewString()
	if mediaType == "" {
		mediaType = MediaTypeImage
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	return &Media{
		ID:          id,
		MediaID:     id,
		HostID:      hostID,
		EventID:     eventID,
		UploaderID:  uploaderID,
		BlobURL:     blobURL,
		FileName:    fileName,
		ContentType: contentType,
		Size:        size,
		Type:        mediaType,
		Status:      StatusActive,
		CreatedAt:   time.Now().UTC(),
	}
}

func (m *Media) IsDeleted() bool {
	return m.Status == StatusDeleted
}

func (m *Media) MarkDeleted(now time.Time) error {
	if m.Status == StatusDeleted {
		return fmt.Errorf("media %s is already deleted", m.MediaID)
	}
	m.Status = StatusDeleted
	m.DeletedAt = &now
	return nil
}
