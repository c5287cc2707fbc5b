package program

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/viant/schedsim/service/fileio"
)

func TestParse(t *testing.T) {
	var testCases = []struct {
		description string
		text        string
		expect      []string
	}{
		{description: "plain", text: "assign x 1\nprint x\n", expect: []string{"assign x 1", "print x"}},
		{description: "comments and blanks", text: "# header\n\nassign x 1\n   \n  # note\nprint x", expect: []string{"assign x 1", "print x"}},
		{description: "crlf", text: "semWait file\r\nsemSignal file\r\n", expect: []string{"semWait file", "semSignal file"}},
		{description: "empty", text: "\n# only\n"},
	}
	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			assert.Equal(t, testCase.expect, Parse([]byte(testCase.text)))
		})
	}
}

func TestLoader_Load(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	assert.NoError(t, os.WriteFile(filepath.Join(dir, "p1.txt"), []byte("assign a 3\n# c\nprint a\n"), 0644))
	assert.NoError(t, os.WriteFile(filepath.Join(dir, "empty.txt"), []byte("# nothing\n"), 0644))

	loader := NewLoader(fileio.New(nil, dir))
	prog, err := loader.Load(ctx, "p1.txt")
	if assert.NoError(t, err) {
		assert.Equal(t, []string{"assign a 3", "print a"}, prog.Instructions)
	}

	_, err = loader.Load(ctx, "empty.txt")
	assert.True(t, errors.Is(err, ErrEmptyProgram))

	_, err = loader.Load(ctx, "absent.txt")
	assert.True(t, errors.Is(err, fileio.ErrNotFound))
}
