package program

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyProgram is returned for a program without instructions.
var ErrEmptyProgram = errors.New("program: no instructions")

// Program is parsed program text.
type Program struct {
	Location     string   `json:"location"`
	Instructions []string `json:"instructions"`
}

// Parse returns the instruction lines of text. Blank lines and lines
// starting with '#' are skipped.
func Parse(text []byte) []string {
	var ret []string
	for _, line := range strings.Split(string(text), "\n") {
		line = strings.TrimRight(line, "\r")
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		ret = append(ret, trimmed)
	}
	return ret
}

// Downloader returns raw file content.
type Downloader interface {
	Download(ctx context.Context, location string) ([]byte, error)
}

// Loader reads programs through a Downloader.
type Loader struct {
	files Downloader
}

// Load reads and parses the program at location.
func (l *Loader) Load(ctx context.Context, location string) (*Program, error) {
	data, err := l.files.Download(ctx, location)
	if err != nil {
		return nil, err
	}
	instructions := Parse(data)
	if len(instructions) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyProgram, location)
	}
	return &Program{Location: location, Instructions: instructions}, nil
}

// NewLoader creates a loader.
func NewLoader(files Downloader) *Loader {
	return &Loader{files: files}
}
