// Package export turns a backend export payload into a downloadable
// artifact: it fetches role-scoped JSON, validates its shape, and
// serializes it as pretty JSON or sectioned CSV.
package export

import (
	"github.com/carelink/carelink/internal/domain/roleconfig"
)

// Format selects the artifact encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
)

// Extension returns the file extension for the format, including the dot.
func (f Format) Extension() (string, error) {
	switch f {
	case FormatJSON:
		return ".json", nil
	case FormatCSV:
		return ".csv", nil
	default:
		return "", ErrUnsupportedFormat
	}
}

// MimeType returns the MIME type for the format.
func (f Format) MimeType() (string, error) {
	switch f {
	case FormatJSON:
		return "application/json", nil
	case FormatCSV:
		return "text/csv", nil
	default:
		return "", ErrUnsupportedFormat
	}
}

// Request identifies one export: whose data, for which role surface, in
// which encoding.
type Request struct {
	Role      roleconfig.Role `json:"role"`
	SubjectID string          `json:"subject_id"`
	Format    Format          `json:"format"`
}

// Result is a finished artifact ready for the file sink.
type Result struct {
	Filename string `json:"filename"`
	MimeType string `json:"mime_type"`
	Content  []byte `json:"content"`
}

// exportPaths is the fixed role → endpoint table. Roles outside it are
// rejected before any network call.
var exportPaths = map[roleconfig.Role]string{
	roleconfig.RolePatient:  "/api/patient/export/%s",
	roleconfig.RoleProvider: "/api/provider/export/%s",
	roleconfig.RoleFamily:   "/api/family/export/%s",
	roleconfig.RoleGuest:    "/api/guest/export/%s",
}
