package export

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/carelink/carelink/internal/domain/roleconfig"
)

// Fetcher retrieves the raw export payload for a subject.
type Fetcher interface {
	FetchPayload(ctx context.Context, role roleconfig.Role, subjectID string, format Format) ([]byte, error)
}

// Client fetches export payloads from the backend over HTTP. Each call is
// a single attempt; failures surface immediately without retry.
type Client struct {
	baseURL string
	http    *http.Client
	logger  zerolog.Logger
}

// NewClient creates a Client for the backend at baseURL.
func NewClient(baseURL string, logger zerolog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
		logger:  logger,
	}
}

// FetchPayload performs GET {base}/api/{role}/export/{subjectID}?format={format}.
// 404 becomes ErrNotFound, 410 becomes ErrSessionExpired, and any other
// failure is wrapped in a FetchError.
func (c *Client) FetchPayload(ctx context.Context, role roleconfig.Role, subjectID string, format Format) ([]byte, error) {
	pathTemplate, ok := exportPaths[role]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedRole, role)
	}

	endpoint := c.baseURL + fmt.Sprintf(pathTemplate, url.PathEscape(subjectID)) +
		"?format=" + url.QueryEscape(string(format))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, &FetchError{Message: err.Error()}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &FetchError{Message: err.Error()}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &FetchError{StatusCode: resp.StatusCode, Message: err.Error()}
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrNotFound
	case resp.StatusCode == http.StatusGone:
		return nil, ErrSessionExpired
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		c.logger.Debug().Int("status", resp.StatusCode).Str("role", string(role)).Msg("export fetch failed")
		return nil, &FetchError{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(body))}
	}

	return body, nil
}
