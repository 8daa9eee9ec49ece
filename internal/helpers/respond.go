package helpers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/memorywall/api/internal/models"
)

// Error bodies are always {"error": ..., "message": ...} with message optional.

func BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": "Bad Request", "message": message})
}

func Unauthorized(c *gin.Context) {
	c.JSON(http.StatusUnauthorized, gin.H{"error": "Login required"})
}

func Forbidden(c *gin.Context, message string) {
	c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden", "message": message})
}

func NotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
}

func MethodNotAllowed(c *gin.Context) {
	c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "Method not allowed"})
}

func ServerError(c *gin.Context, err error) {
	c.JSON(http.StatusInternalServerError, gin.H{
		"error":   "Internal server error",
		"message": err.Error(),
	})
}

// RespondError maps service sentinel errors onto the HTTP taxonomy. The error
// is also attached to the gin context so the error middleware logs it with the
// request id.
func RespondError(c *gin.Context, err error) {
	_ = c.Error(err)
	switch {
	case errors.Is(err, models.ErrBadRequest):
		BadRequest(c, err.Error())
	case errors.Is(err, models.ErrUnauthorized):
		Unauthorized(c)
	case errors.Is(err, models.ErrForbidden):
		Forbidden(c, err.Error())
	case errors.Is(err, models.ErrNotFound):
		NotFound(c)
	default:
		ServerError(c, err)
	}
}
