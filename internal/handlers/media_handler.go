package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/memorywall/api/internal/helpers"
	"github.com/memorywall/api/internal/services"
)

func ListMedia(ms *services.MediaService) gin.HandlerFunc {
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

		items, err := ms.ListMedia(c.Request.Context(), caller, eventID)
		if err != nil {
			helpers.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, items)
	}
}

func CreateMedia(ms *services.MediaService) gin.HandlerFunc {
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

		var input services.CreateMediaInput
		if err := c.ShouldBindJSON(&input); err != nil {
			helpers.BadRequest(c, "invalid or missing JSON body")
			return
		}

		media, err := ms.CreateMedia(c.Request.Context(), caller, eventID, &input)
		if err != nil {
			helpers.RespondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, media)
	}
}

func DeleteMedia(ms *services.MediaService) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, ok := helpers.CallerFrom(c)
		if !ok {
			helpers.Unauthorized(c)
			return
		}

		eventID := strings.TrimSpace(c.Param("eventId"))
		mediaID := strings.TrimSpace(c.Param("mediaId"))
		if eventID == "" || mediaID == "" {
			helpers.BadRequest(c, "eventId and mediaId are required")
			return
		}

		report, err := ms.DeleteMedia(c.Request.Context(), caller, eventID, mediaID)
		if err != nil {
			helpers.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, report)
	}
}

func SignUpload(ms *services.MediaService) gin.HandlerFunc {
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

		var input services.SignUploadInput
		if err := c.ShouldBindJSON(&input); err != nil {
			helpers.BadRequest(c, "invalid or missing JSON body")
			return
		}

		ticket, err := ms.SignUpload(c.Request.Context(), caller, eventID, &input)
		if err != nil {
			helpers.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, ticket)
	}
}

func SignRead(ms *services.MediaService) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, ok := helpers.CallerFrom(c)
		if !ok {
			helpers.Unauthorized(c)
			return
		}

		eventID := strings.TrimSpace(c.Param("eventId"))
		mediaID := strings.TrimSpace(c.Param("mediaId"))
		if eventID == "" || mediaID == "" {
			helpers.BadRequest(c, "eventId and mediaId are required")
			return
		}

		ticket, media, err := ms.SignRead(c.Request.Context(), caller, eventID, mediaID)
		if err != nil {
			helpers.RespondError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"readUrl":   ticket.ReadURL,
			"expiresOn": ticket.ExpiresOn,
			"blobUrl":   media.BlobURL,
			"mediaId":   media.MediaID,
			"eventId":   media.EventID,
		})
	}
}
