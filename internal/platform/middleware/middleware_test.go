package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// run pushes a request through a single middleware wrapping the given handler
// and returns the recorder plus the handler error.
func run(mw echo.MiddlewareFunc, handler echo.HandlerFunc, req *http.Request) (*httptest.ResponseRecorder, error) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	return rec, mw(handler)(c)
}

func okHandler(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

// =========== Request ID ===========

func TestRequestIDAssignsUUID(t *testing.T) {
	var seen string
	handler := func(c echo.Context) error {
		seen, _ = c.Get("request_id").(string)
		return c.NoContent(http.StatusNoContent)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/documents/process", nil)
	rec, err := run(RequestID(), handler, req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := uuid.Parse(seen); err != nil {
		t.Errorf("request_id %q is not a UUID: %v", seen, err)
	}
	if rec.Header().Get(RequestIDHeader) != seen {
		t.Errorf("response header %q does not match context id %q",
			rec.Header().Get(RequestIDHeader), seen)
	}
}

func TestRequestIDHonorsCallerID(t *testing.T) {
	const callerID = "intake-batch-7f2c"

	req := httptest.NewRequest(http.MethodGet, "/api/v1/terminology/normalize", nil)
	req.Header.Set(RequestIDHeader, callerID)

	var seen string
	handler := func(c echo.Context) error {
		seen, _ = c.Get("request_id").(string)
		return c.NoContent(http.StatusNoContent)
	}

	rec, err := run(RequestID(), handler, req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if seen != callerID {
		t.Errorf("context request_id = %q, want %q", seen, callerID)
	}
	if rec.Header().Get(RequestIDHeader) != callerID {
		t.Errorf("response header = %q, want %q", rec.Header().Get(RequestIDHeader), callerID)
	}
}

// =========== Logger ===========

func TestLoggerEmitsRequestFields(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/codes/search?q=diabetes", nil)
	if _, err := run(Logger(logger), okHandler, req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	line := buf.String()
	for _, want := range []string{
		`"method":"GET"`,
		`"path":"/api/v1/codes/search"`,
		`"status":200`,
		`"level":"info"`,
	} {
		if !strings.Contains(line, want) {
			t.Errorf("log line missing %s: %s", want, line)
		}
	}
}

func TestLoggerUsesErrorLevelForServerErrors(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	failing := func(c echo.Context) error {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "boom"})
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/documents/process", nil)
	if _, err := run(Logger(logger), failing, req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	line := buf.String()
	if !strings.Contains(line, `"level":"error"`) {
		t.Errorf("5xx response should log at error level: %s", line)
	}
	if !strings.Contains(line, `"status":500`) {
		t.Errorf("log line missing status: %s", line)
	}
}

// =========== Recovery ===========

func TestRecoveryTurnsPanicInto500(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	panicking := func(c echo.Context) error {
		panic("vocabulary store corrupted")
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/codes/search", nil)
	_, err := run(Recovery(logger), panicking, req)
	if err == nil {
		t.Fatal("expected an error from the recovered panic")
	}
	httpErr, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected *echo.HTTPError, got %T", err)
	}
	if httpErr.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", httpErr.Code)
	}
	if !strings.Contains(buf.String(), "vocabulary store corrupted") {
		t.Errorf("panic value not logged: %s", buf.String())
	}
}

func TestRecoveryLeavesHealthyHandlersAlone(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec, err := run(Recovery(logger), okHandler, req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
	if buf.Len() != 0 {
		t.Errorf("nothing should be logged without a panic: %s", buf.String())
	}
}
