package db

import (
	"errors"
	"net/http"
	"testing"
)

func TestHealthResponse_Healthy(t *testing.T) {
	snap := PoolHealth{TotalConns: 4, IdleConns: 3, AcquiredConns: 1, MaxConns: 10}

	status, body := healthResponse(snap, nil)

	if status != http.StatusOK {
		t.Errorf("status = %d, want 200", status)
	}
	pool, ok := body["pool"].(PoolHealth)
	if !ok {
		t.Fatalf("body missing pool snapshot: %v", body)
	}
	if pool.Status != "healthy" {
		t.Errorf("pool status = %q, want healthy", pool.Status)
	}
	if pool.TotalConns != 4 || pool.MaxConns != 10 {
		t.Errorf("snapshot not preserved: %+v", pool)
	}
	if _, present := body["error"]; present {
		t.Error("healthy response should not carry an error field")
	}
}

func TestHealthResponse_PingFailure(t *testing.T) {
	snap := PoolHealth{TotalConns: 0, MaxConns: 10}

	status, body := healthResponse(snap, errors.New("connection refused"))

	if status != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", status)
	}
	pool, ok := body["pool"].(PoolHealth)
	if !ok {
		t.Fatalf("body missing pool snapshot: %v", body)
	}
	if pool.Status != "unhealthy" {
		t.Errorf("pool status = %q, want unhealthy", pool.Status)
	}
	if msg, _ := body["error"].(string); msg != "connection refused" {
		t.Errorf("error = %q", msg)
	}
}
