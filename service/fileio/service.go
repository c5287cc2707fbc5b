package fileio

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"github.com/viant/afs/url"
)

// MaxContentLength caps the number of bytes returned by Read.
const MaxContentLength = 1024

// ErrNotFound is returned when the referenced file does not exist.
var ErrNotFound = errors.New("fileio: file not found")

// Service reads and writes program and data files via viant/afs. Relative
// locations resolve against the base URL.
type Service struct {
	fs      afs.Service
	baseURL string
}

// URL resolves location against the base URL.
func (s *Service) URL(location string) string {
	if s.baseURL == "" || strings.Contains(location, "://") || strings.HasPrefix(location, "/") {
		return location
	}
	return url.Join(s.baseURL, location)
}

// Download returns the full content of location.
func (s *Service) Download(ctx context.Context, location string) ([]byte, error) {
	URL := s.URL(location)
	exists, err := s.fs.Exists(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to check %s: %w", URL, err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, URL)
	}
	data, err := s.fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", URL, err)
	}
	return data, nil
}

// Read returns at most MaxContentLength bytes of location as text.
func (s *Service) Read(ctx context.Context, location string) (string, error) {
	data, err := s.Download(ctx, location)
	if err != nil {
		return "", err
	}
	if len(data) > MaxContentLength {
		end := MaxContentLength
		for end > 0 && !utf8.RuneStart(data[end]) {
			end--
		}
		data = data[:end]
	}
	return string(data), nil
}

// Write replaces location content.
func (s *Service) Write(ctx context.Context, location, content string) error {
	URL := s.URL(location)
	if err := s.fs.Upload(ctx, URL, file.DefaultFileOsMode, strings.NewReader(content)); err != nil {
		return fmt.Errorf("failed to write %s: %w", URL, err)
	}
	return nil
}

// New creates a service, a nil fs defaults to afs.New().
func New(fs afs.Service, baseURL string) *Service {
	if fs == nil {
		fs = afs.New()
	}
	return &Service{fs: fs, baseURL: baseURL}
}
