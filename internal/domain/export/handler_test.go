package export

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/carelink/carelink/internal/platform/filesink"
)

func newExportTestContext(t *testing.T, body string, fetcher Fetcher) (*Handler, echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	svc := NewService(fetcher, filesink.NewMemorySink(), zerolog.Nop())
	h := NewHandler(svc)
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return h, e.NewContext(req, rec), rec
}

func TestHandler_CreateExport(t *testing.T) {
	fetcher := &stubFetcher{payload: validPatientPayload()}
	h, c, rec := newExportTestContext(t, `{"role":"patient","subject_id":"u1","format":"json"}`, fetcher)

	if err := h.CreateExport(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	var result Result
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode result: %v", err)
	}
	if result.MimeType != "application/json" {
		t.Errorf("unexpected mime type: %s", result.MimeType)
	}
}

func TestHandler_CreateExport_MissingSubject(t *testing.T) {
	h, c, _ := newExportTestContext(t, `{"role":"patient","format":"json"}`, &stubFetcher{})

	err := h.CreateExport(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %v", err)
	}
}

func TestHandler_CreateExport_ErrorMapping(t *testing.T) {
	cases := []struct {
		name     string
		fetchErr error
		want     int
	}{
		{"not found", ErrNotFound, http.StatusNotFound},
		{"session expired", ErrSessionExpired, http.StatusGone},
		{"fetch failure", &FetchError{StatusCode: 500, Message: "boom"}, http.StatusBadGateway},
		{"unsupported role", ErrUnsupportedRole, http.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h, c, _ := newExportTestContext(t, `{"role":"patient","subject_id":"u1","format":"json"}`, &stubFetcher{err: tc.fetchErr})

			err := h.CreateExport(c)
			httpErr, ok := err.(*echo.HTTPError)
			if !ok {
				t.Fatalf("expected HTTPError, got %v", err)
			}
			if httpErr.Code != tc.want {
				t.Errorf("expected %d, got %d", tc.want, httpErr.Code)
			}
		})
	}
}

func TestHandler_CreateExport_BadFormat(t *testing.T) {
	h, c, _ := newExportTestContext(t, `{"role":"patient","subject_id":"u1","format":"xml"}`, &stubFetcher{payload: validPatientPayload()})

	err := h.CreateExport(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for unsupported format, got %v", err)
	}
}
