package middleware

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/memorywall/api/internal/helpers"
	"github.com/memorywall/api/internal/models"
)

func TestCallerContextParsesHeaders(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var got *helpers.Caller
	r := gin.New()
	r.Use(CallerContext("secret", "demo-host"))
	r.GET("/", func(c *gin.Context) {
		got, _ = helpers.CallerFrom(c)
		c.Status(http.StatusNoContent)
	})

	serve := func(hostID, userID, passcode string) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if hostID != "" {
			req.Header.Set("x-host-id", hostID)
		}
		if userID != "" {
			req.Header.Set("x-user-id", userID)
		}
		if passcode != "" {
			req.Header.Set("x-admin-passcode", passcode)
		}
		r.ServeHTTP(httptest.NewRecorder(), req)
	}

	serve("", "", "")
	if got.HostID != "demo-host" || got.UserID != "" || got.IsAdmin {
		t.Errorf("no headers: got %+v, want default host and anonymous", got)
	}

	serve("  h1  ", "  alice ", "secret")
	if got.HostID != "h1" || got.UserID != "alice" || !got.IsAdmin {
		t.Errorf("trimmed headers: got %+v", got)
	}

	serve("h1", "alice", "wrong")
	if got.IsAdmin {
		t.Error("wrong passcode must not grant admin")
	}
}

func TestCallerContextEmptyConfiguredPasscode(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var got *helpers.Caller
	r := gin.New()
	r.Use(CallerContext("", "demo-host"))
	r.GET("/", func(c *gin.Context) {
		got, _ = helpers.CallerFrom(c)
		c.Status(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("x-admin-passcode", "anything")
	r.ServeHTTP(httptest.NewRecorder(), req)

	if got.IsAdmin {
		t.Error("admin must stay off when no passcode is configured")
	}
}

func TestErrorHandlerLogsRespondedErrors(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	r := gin.New()
	r.Use(ErrorHandler(logger))
	r.GET("/missing", func(c *gin.Context) {
		helpers.RespondError(c, models.ErrNotFound)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/missing", nil))

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
	if !strings.Contains(buf.String(), "Request error") {
		t.Errorf("error not logged, log output:\n%s", buf.String())
	}
}

func TestErrorHandlerWritesFallbackResponse(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	r := gin.New()
	r.Use(ErrorHandler(logger))
	r.GET("/boom", func(c *gin.Context) {
		_ = c.Error(fmt.Errorf("downstream exploded"))
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Internal server error") {
		t.Errorf("fallback body missing, got %s", w.Body.String())
	}
}
