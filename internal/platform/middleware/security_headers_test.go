package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestSecurityHeadersAppliedToEveryResponse(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/terminology/normalize?term=HTN", nil)
	rec, err := run(SecurityHeaders(), okHandler, req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for name, want := range securityHeaders {
		if got := rec.Header().Get(name); got != want {
			t.Errorf("%s = %q, want %q", name, got, want)
		}
	}
	if rec.Header().Get("Cache-Control") != "no-store" {
		t.Error("responses carrying PHI must not be cacheable")
	}
}

func TestSecurityHeadersSurviveHandlerError(t *testing.T) {
	failing := func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusNotFound, "code not found")
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/codes/hierarchy?code=Z99.99", nil)
	rec, err := run(SecurityHeaders(), failing, req)

	httpErr, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected *echo.HTTPError, got %T", err)
	}
	if httpErr.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", httpErr.Code)
	}
	// The headers are set before the handler runs, so error responses
	// still carry them.
	if rec.Header().Get("X-Content-Type-Options") != "nosniff" {
		t.Error("security headers missing from error response")
	}
	if rec.Header().Get("X-Frame-Options") != "DENY" {
		t.Error("security headers missing from error response")
	}
}
