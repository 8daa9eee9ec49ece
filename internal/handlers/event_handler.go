package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/memorywall/api/internal/helpers"
	"github.com/memorywall/api/internal/models"
	"github.com/memorywall/api/internal/services"
)

func ListEvents(es *services.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, ok := helpers.CallerFrom(c)
		if !ok {
			helpers.Unauthorized(c)
			return
		}

		events, err := es.ListEvents(c.Request.Context(), caller)
		if err != nil {
			helpers.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, events)
	}
}

func CreateEvent(es *services.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, ok := helpers.CallerFrom(c)
		if !ok {
			helpers.Unauthorized(c)
			return
		}

		var input services.CreateEventInput
		if err := c.ShouldBindJSON(&input); err != nil {
			helpers.BadRequest(c, "invalid or missing JSON body")
			return
		}

		event, err := es.CreateEvent(c.Request.Context(), caller, &input)
		if err != nil {
			helpers.RespondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, event)
	}
}

func GetEvent(es *services.EventService) gin.HandlerFunc {
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

		event, err := es.GetEvent(c.Request.Context(), caller, eventID)
		if err != nil {
			helpers.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, event)
	}
}

func PatchEvent(es *services.EventService) gin.HandlerFunc {
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

		var patch models.EventPatch
		if err := c.ShouldBindJSON(&patch); err != nil {
			helpers.BadRequest(c, "invalid or missing JSON body")
			return
		}

		event, err := es.PatchEvent(c.Request.Context(), caller, eventID, &patch)
		if err != nil {
			helpers.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, event)
	}
}

func DeleteEvent(es *services.EventService) gin.HandlerFunc {
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

		report, err := es.DeleteEvent(c.Request.Context(), caller, eventID)
		if err != nil {
			helpers.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, report)
	}
}
