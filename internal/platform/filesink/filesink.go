// Package filesink abstracts where finished export artifacts land. The
// browser front-end triggers a download; server-side the same contract is
// a directory write or an in-memory capture for tests.
package filesink

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Sink receives a finished export artifact. Save is fire-and-forget from
// the caller's perspective; no partial artifact may be observable on error.
type Sink interface {
	Save(ctx context.Context, filename, mimeType string, content []byte) error
}

// DirSink writes artifacts into a directory on the local filesystem.
type DirSink struct {
	dir string
}

// NewDirSink creates a sink rooted at dir, creating it if needed.
func NewDirSink(dir string) (*DirSink, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create export dir: %w", err)
	}
	return &DirSink{dir: dir}, nil
}

func (s *DirSink) Save(_ context.Context, filename, _ string, content []byte) error {
	path := filepath.Join(s.dir, filepath.Base(filename))
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return fmt.Errorf("write export file: %w", err)
	}
	return nil
}

// Path returns where a given artifact would be written.
func (s *DirSink) Path(filename string) string {
	return filepath.Join(s.dir, filepath.Base(filename))
}

// SavedFile is one artifact captured by a MemorySink.
type SavedFile struct {
	Filename string
	MimeType string
	Content  []byte
}

// MemorySink captures artifacts in memory for tests.
type MemorySink struct {
	mu    sync.Mutex
	saved []SavedFile
}

// NewMemorySink creates an empty in-memory sink.
func NewMemorySink() *MemorySink {
	return &MemorySink{}
}

func (s *MemorySink) Save(_ context.Context, filename, mimeType string, content []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saved = append(s.saved, SavedFile{Filename: filename, MimeType: mimeType, Content: content})
	return nil
}

// Saved returns every artifact captured so far.
func (s *MemorySink) Saved() []SavedFile {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]SavedFile, len(s.saved))
	copy(out, s.saved)
	return out
}
