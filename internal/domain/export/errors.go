package export

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedRole means the role has no export endpoint. Raised
	// before any network call.
	ErrUnsupportedRole = errors.New("unsupported export role")

	// ErrNotFound maps a backend 404: no profile for the subject.
	ErrNotFound = errors.New("profile not found")

	// ErrSessionExpired maps a backend 410: the guest session is gone.
	ErrSessionExpired = errors.New("session expired")

	// ErrInvalidExportData means the payload is not a JSON object.
	ErrInvalidExportData = errors.New("export payload is not a JSON object")

	// ErrMissingMetadata means the payload has no export_info block.
	ErrMissingMetadata = errors.New("export payload missing export_info")

	// ErrMissingContent means the payload carries neither a profile nor
	// any role data section.
	ErrMissingContent = errors.New("export payload has no profile or role data")

	// ErrUnsupportedFormat means the requested format is not json or csv.
	ErrUnsupportedFormat = errors.New("unsupported export format")
)

// FetchError wraps any backend failure that is not a 404 or 410: transport
// errors and unexpected status codes. It is never retried.
type FetchError struct {
	StatusCode int // zero for transport errors
	Message    string
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("export fetch failed: status %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("export fetch failed: %s", e.Message)
}
