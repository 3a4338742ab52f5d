package export

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/carelink/carelink/internal/platform/filesink"
)

// Service runs the full export pipeline: fetch, validate, serialize, name,
// and hand off to the sink. Every error is raised before any sink write so
// no partial artifact can appear.
type Service struct {
	fetcher Fetcher
	sink    filesink.Sink
	logger  zerolog.Logger
}

func NewService(fetcher Fetcher, sink filesink.Sink, logger zerolog.Logger) *Service {
	return &Service{fetcher: fetcher, sink: sink, logger: logger}
}

// Export produces the artifact for req without touching the sink.
func (s *Service) Export(ctx context.Context, req Request) (*Result, error) {
	ext, err := req.Format.Extension()
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, req.Format)
	}
	mime, err := req.Format.MimeType()
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, req.Format)
	}

	payload, err := s.fetcher.FetchPayload(ctx, req.Role, req.SubjectID, req.Format)
	if err != nil {
		return nil, err
	}

	if err := Validate(payload); err != nil {
		return nil, err
	}

	var content []byte
	switch req.Format {
	case FormatJSON:
		content, err = SerializeJSON(payload)
	case FormatCSV:
		content, err = SerializeCSV(payload)
	}
	if err != nil {
		return nil, err
	}

	result := &Result{
		Filename: BuildFilename(req.Role, req.SubjectID) + ext,
		MimeType: mime,
		Content:  content,
	}
	s.logger.Info().
		Str("role", string(req.Role)).
		Str("subject_id", req.SubjectID).
		Str("format", string(req.Format)).
		Int("bytes", len(content)).
		Msg("export serialized")
	return result, nil
}

// Download runs Export and writes the artifact through the sink.
func (s *Service) Download(ctx context.Context, req Request) (*Result, error) {
	result, err := s.Export(ctx, req)
	if err != nil {
		return nil, err
	}
	if err := s.sink.Save(ctx, result.Filename, result.MimeType, result.Content); err != nil {
		return nil, fmt.Errorf("save export: %w", err)
	}
	return result, nil
}
