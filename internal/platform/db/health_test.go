package db

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestHealth_NilPoolIsUnavailable(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/health/db", nil)
	rec := httptest.NewRecorder()

	if err := Health(nil)(e.NewContext(req, rec)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("got status %d, want 503", rec.Code)
	}

	var body struct {
		Status string `json:"status"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Status != "not configured" {
		t.Errorf("got status %q, want %q", body.Status, "not configured")
	}
}

func TestHealthResponse_Shape(t *testing.T) {
	out, err := json.Marshal(healthResponse{
		Status: "ok",
		Conns:  ConnUsage{InUse: 3, Idle: 7, Max: 10},
	})
	if err != nil {
		t.Fatal(err)
	}

	for _, key := range []string{`"status":"ok"`, `"in_use":3`, `"idle":7`, `"max":10`} {
		if !strings.Contains(string(out), key) {
			t.Errorf("response %s missing %s", out, key)
		}
	}
	if strings.Contains(string(out), "error") {
		t.Errorf("healthy response should omit the error field: %s", out)
	}
}
