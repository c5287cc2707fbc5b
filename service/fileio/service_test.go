package fileio

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestService_ReadWrite(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	srv := New(nil, dir)

	assert.NoError(t, srv.Write(ctx, "out.txt", "hello"))
	data, err := os.ReadFile(filepath.Join(dir, "out.txt"))
	assert.NoError(t, err)
	assert.Equal(t, "hello", string(data))

	text, err := srv.Read(ctx, "out.txt")
	assert.NoError(t, err)
	assert.Equal(t, "hello", text)

	text, err = srv.Read(ctx, filepath.Join(dir, "out.txt"))
	assert.NoError(t, err)
	assert.Equal(t, "hello", text)

	_, err = srv.Read(ctx, "missing.txt")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestService_ReadTruncates(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	long := strings.Repeat("x", MaxContentLength+10)
	assert.NoError(t, os.WriteFile(filepath.Join(dir, "long.txt"), []byte(long), 0644))

	srv := New(nil, dir)
	text, err := srv.Read(ctx, "long.txt")
	assert.NoError(t, err)
	assert.Len(t, text, MaxContentLength)

	data, err := srv.Download(ctx, "long.txt")
	assert.NoError(t, err)
	assert.Len(t, data, len(long))
}

func TestService_ReadKeepsRunes(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	// "é" is two bytes; the second one would sit at the cut.
	content := strings.Repeat("x", MaxContentLength-1) + "é" + "tail"
	assert.NoError(t, os.WriteFile(filepath.Join(dir, "runes.txt"), []byte(content), 0644))

	text, err := New(nil, dir).Read(ctx, "runes.txt")
	assert.NoError(t, err)
	assert.True(t, utf8.ValidString(text))
	assert.Equal(t, strings.Repeat("x", MaxContentLength-1), text)
}
