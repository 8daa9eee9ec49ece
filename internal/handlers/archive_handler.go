package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/memorywall/api/internal/helpers"
	"github.com/memorywall/api/internal/services"
)

// DownloadArchive streams a ZIP of every active media blob for the event.
// Authorization and the media query run before any response byte is written,
// so those failures still come back as JSON. Once streaming has begun the
// only option on error is to drop the connection.
func DownloadArchive(as *services.ArchiveService, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, ok := helpers.CallerFrom(c)
		if !ok {
			helpers.Unauthorized(c)
			return
		}

		eventID := strings.TrimSpace(c.Param("eventId"))
		if eventID == "" {
			helpers.BadRequest(c, "eventId is required")
			return
		}

		event, items, err := as.Prepare(c.Request.Context(), caller, eventID)
		if err != nil {
			helpers.RespondError(c, err)
			return
		}

		zipName := helpers.SafeFileName(event.Title)
		if zipName == "file" {
			zipName = "event"
		}

		c.Header("Content-Type", "application/zip")
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", zipName+".zip"))
		c.Header("Cache-Control", "no-store")
		c.Status(http.StatusOK)

		if err := as.WriteArchive(c.Request.Context(), items, c.Writer); err != nil {
			logger.Error("archive export aborted",
				"event_id", eventID,
				"error", err,
			)

			// The zip writer buffers, so a small export can fail before
			// anything reached the wire. Fall back to a JSON error.
			if !c.Writer.Written() {
				header := c.Writer.Header()
				header.Del("Content-Type")
				header.Del("Content-Disposition")
				header.Del("Cache-Control")
				helpers.ServerError(c, err)
				return
			}

			// Bytes are out and the status line is long gone. Drop the
			// connection so the client sees a broken transfer instead of
			// a truncated archive that looks complete.
			c.Abort()
			if conn, _, hijackErr := c.Writer.Hijack(); hijackErr == nil {
				conn.Close()
			}
		}
	}
}
