package discord

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecordCommand(t *testing.T) {
	commandCounter = 0

	RecordCommand()
	RecordCommand()

	status := HealthStatus{
		Status:           "healthy",
		Uptime:           "1h",
		Connected:        true,
		CommandsReceived: 2,
		APIReachable:     true,
	}

	assert.Equal(t, "healthy", status.Status)
	assert.Equal(t, int64(2), status.CommandsReceived)
	assert.False(t, lastCommandTime.IsZero())
}

func TestNotifyEndpoints_RejectBadRequests(t *testing.T) {
	srv := NewHTTPServer("0", &Bot{})

	paths := []string{
		"/notify/game-opened",
		"/notify/betting-closed",
		"/notify/game-resolved",
		"/notify/needs-manual",
	}

	for _, path := range paths {
		t.Run("GET "+path, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, path, nil)
			rec := httptest.NewRecorder()
			srv.server.Handler.ServeHTTP(rec, req)
			assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
		})

		t.Run("Bad JSON "+path, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, path, strings.NewReader("{not json"))
			rec := httptest.NewRecorder()
			srv.server.Handler.ServeHTTP(rec, req)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}
