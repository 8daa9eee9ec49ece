package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/memorywall/api/internal/helpers"
)

// BlobCreatedNotification is the Event-Grid-style payload storage emits when
// a blob lands in the container.
type BlobCreatedNotification struct {
	ID        string `json:"id"`
	EventType string `json:"eventType"`
	Subject   string `json:"subject"`
	EventTime string `json:"eventTime"`
	Data      struct {
		URL           string `json:"url"`
		API           string `json:"api"`
		ContentType   string `json:"contentType"`
		ContentLength int64  `json:"contentLength"`
	} `json:"data"`
}

// BlobCreatedHook acknowledges blob-created notifications. The upload flow is
// client-driven (SAS upload, then metadata registration), so for now this
// only records the notification.
func BlobCreatedHook(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var event BlobCreatedNotification
		if err := c.ShouldBindJSON(&event); err != nil {
			helpers.BadRequest(c, "invalid or missing JSON body")
			return
		}

		logger.Info("blob created notification",
			"event_type", event.EventType,
			"subject", event.Subject,
			"url", event.Data.URL,
			"content_length", event.Data.ContentLength,
		)

		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
}
