package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/memorywall/api/internal/helpers"
	"github.com/memorywall/api/internal/services"
)

func AddMembers(es *services.EventService) gin.HandlerFunc {
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

		var body struct {
			MemberIDs []string `json:"memberIds"`
		}
		if err := c.ShouldBindJSON(&body); err != nil {
			helpers.BadRequest(c, "invalid or missing JSON body")
			return
		}

		event, err := es.AddMembers(c.Request.Context(), caller, eventID, body.MemberIDs)
		if err != nil {
			helpers.RespondError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"ok":        true,
			"eventId":   eventID,
			"memberIds": event.MemberIDs,
		})
	}
}

func RemoveMember(es *services.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, ok := helpers.CallerFrom(c)
		if !ok {
			helpers.Unauthorized(c)
			return
		}

		eventID := strings.TrimSpace(c.Param("eventId"))
		memberID := strings.TrimSpace(c.Param("memberId"))
		if eventID == "" || memberID == "" {
			helpers.BadRequest(c, "eventId and memberId are required")
			return
		}

		event, err := es.RemoveMember(c.Request.Context(), caller, eventID, memberID)
		if err != nil {
			helpers.RespondError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"ok":        true,
			"eventId":   eventID,
			"memberIds": event.MemberIDs,
		})
	}
}
