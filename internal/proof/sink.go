package proof

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ErrTooLarge is returned by Persist when the stream exceeds the sink limit.
var ErrTooLarge = errors.New("proof exceeds size limit")

// Sink stores proof files durably and serves them back by name.
type Sink interface {
	// Persist writes r under name and returns the stored path.
	Persist(ctx context.Context, r io.Reader, name string) (string, error)

	// Open returns the stored file for reading.
	Open(name string) (io.ReadCloser, error)

	// URL is the public path the stored file is served from.
	URL(name string) string
}

var _ Sink = (*DiskSink)(nil)

// DiskSink stores proofs as files in a single directory.
type DiskSink struct {
	dir       string
	urlPrefix string
	maxSize   int64
}

// NewDiskSink creates the directory if needed. urlPrefix is joined with the
// stored name to build public URLs, e.g. "/uploads" or
// "https://inscricoes.example.com/uploads".
func NewDiskSink(dir, urlPrefix string, maxSize int64) (*DiskSink, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}
	return &DiskSink{dir: dir, urlPrefix: urlPrefix, maxSize: maxSize}, nil
}

// Dir returns the directory files are stored in.
func (s *DiskSink) Dir() string {
	return s.dir
}

// Persist streams r to a temp file and renames it into place, so a partial
// write never appears under the final name.
func (s *DiskSink) Persist(ctx context.Context, r io.Reader, name string) (string, error) {
	if err := validName(name); err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	tmp, err := os.CreateTemp(s.dir, ".upload-*")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name()) // no-op after a successful rename

	n, err := io.Copy(tmp, io.LimitReader(r, s.maxSize+1))
	if err != nil {
		tmp.Close()
		return "", fmt.Errorf("failed to write proof: %w", err)
	}
	if n > s.maxSize {
		tmp.Close()
		return "", ErrTooLarge
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("failed to close proof: %w", err)
	}

	final := filepath.Join(s.dir, name)
	if err := os.Rename(tmp.Name(), final); err != nil {
		return "", fmt.Errorf("failed to move proof into place: %w", err)
	}
	return final, nil
}

// Open opens a stored proof.
func (s *DiskSink) Open(name string) (io.ReadCloser, error) {
	if err := validName(name); err != nil {
		return nil, err
	}
	return os.Open(filepath.Join(s.dir, name))
}

// URL returns the public URL for a stored name.
func (s *DiskSink) URL(name string) string {
	return strings.TrimRight(s.urlPrefix, "/") + "/" + name
}

func validName(name string) error {
	if name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		return fmt.Errorf("invalid proof name: %q", name)
	}
	return nil
}
