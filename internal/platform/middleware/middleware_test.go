package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

func TestRequestID_AssignsAndEchoes(t *testing.T) {
	e := echo.New()
	h := RequestID()(func(c echo.Context) error {
		rid, _ := c.Get("request_id").(string)
		if rid == "" {
			t.Error("request_id not set on context")
		}
		return c.NoContent(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/session", nil)
	rec := httptest.NewRecorder()
	if err := h(e.NewContext(req, rec)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Header().Get(RequestIDHeader) == "" {
		t.Error("response missing " + RequestIDHeader)
	}
}

func TestRequestID_KeepsCallerSupplied(t *testing.T) {
	e := echo.New()
	h := RequestID()(func(c echo.Context) error {
		return c.NoContent(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/session", nil)
	req.Header.Set(RequestIDHeader, "caller-supplied-id")
	rec := httptest.NewRecorder()
	if err := h(e.NewContext(req, rec)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := rec.Header().Get(RequestIDHeader); got != "caller-supplied-id" {
		t.Errorf("request id = %q, caller's id was replaced", got)
	}
}

func TestLogger_LevelTracksOutcome(t *testing.T) {
	cases := []struct {
		name    string
		handler echo.HandlerFunc
		level   string
	}{
		{
			name:    "success logs info",
			handler: func(c echo.Context) error { return c.String(http.StatusOK, "ok") },
			level:   `"level":"info"`,
		},
		{
			name:    "client error logs warn",
			handler: func(c echo.Context) error { return echo.NewHTTPError(http.StatusBadRequest, "bad") },
			level:   `"level":"warn"`,
		},
		{
			name:    "server error logs error",
			handler: func(c echo.Context) error { return echo.NewHTTPError(http.StatusBadGateway, "upstream") },
			level:   `"level":"error"`,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var out bytes.Buffer
			logger := zerolog.New(&out)
			e := echo.New()
			h := Logger(logger)(tc.handler)

			req := httptest.NewRequest(http.MethodGet, "/api/v1/exports", nil)
			rec := httptest.NewRecorder()
			_ = h(e.NewContext(req, rec))

			line := out.String()
			if !strings.Contains(line, tc.level) {
				t.Errorf("log line %s missing %s", line, tc.level)
			}
			if !strings.Contains(line, `"path":"/api/v1/exports"`) {
				t.Errorf("log line %s missing request path", line)
			}
		})
	}
}

func TestRecovery_PanicBecomes500(t *testing.T) {
	var out bytes.Buffer
	logger := zerolog.New(&out)
	e := echo.New()
	h := Recovery(logger)(func(c echo.Context) error {
		panic("boom")
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/session", nil)
	rec := httptest.NewRecorder()
	err := h(e.NewContext(req, rec))

	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusInternalServerError {
		t.Fatalf("got %v, want 500 HTTPError", err)
	}
	if !strings.Contains(out.String(), "handler panicked") {
		t.Error("panic was not logged")
	}
	if !strings.Contains(out.String(), "boom") {
		t.Error("panic value missing from log")
	}
}

func TestRecovery_LeavesNormalErrorsAlone(t *testing.T) {
	logger := zerolog.New(bytes.NewBuffer(nil))
	e := echo.New()
	want := echo.NewHTTPError(http.StatusConflict, "conflict")
	h := Recovery(logger)(func(c echo.Context) error {
		return want
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/session", nil)
	rec := httptest.NewRecorder()
	if err := h(e.NewContext(req, rec)); err != want {
		t.Fatalf("got %v, want the handler's error unchanged", err)
	}
}
