package server

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/kassalytics/tracker/internal/logger"
)

func TestLoggingMiddleware_RedactsSecrets(t *testing.T) {
	// Debug level so the header line is emitted
	var buf bytes.Buffer
	logger.InitLoggerWithWriter(logger.NewConfig("debug", "text", "test", "dev", "test", false), &buf)

	handler := loggingMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("GET", "/api/v1/balance", nil)
	req.Header.Set("X-API-Key", "secret-key-123")
	req.Header.Set("Authorization", "Bearer mytoken")
	req.Header.Set("User-Agent", "TestAgent")

	handler.ServeHTTP(httptest.NewRecorder(), req)

	logOutput := buf.String()

	if !strings.Contains(logOutput, LogMsgRequestHeaders) {
		t.Fatalf("log output missing header line: %s", logOutput)
	}

	if strings.Contains(logOutput, "secret-key-123") {
		t.Errorf("log output leaks X-API-Key value: %s", logOutput)
	}
	if strings.Contains(logOutput, "Bearer mytoken") {
		t.Errorf("log output leaks Authorization value: %s", logOutput)
	}

	// Non-sensitive headers still make it through
	if !strings.Contains(logOutput, "TestAgent") {
		t.Errorf("log output missing non-sensitive header: %s", logOutput)
	}
}
