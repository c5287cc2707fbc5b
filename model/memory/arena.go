package memory

import (
	"errors"
	"fmt"
)

// DefaultSize is the number of words in a simulation arena.
const DefaultSize = 60

// Free marks a word not owned by any process.
const Free = 0

var (
	// ErrNoSpace is returned when no contiguous run of free words is large enough.
	ErrNoSpace = errors.New("memory: no contiguous space")
	// ErrOutOfRange is returned for an index outside the arena.
	ErrOutOfRange = errors.New("memory: index out of range")
	// ErrInvalidOwner is returned when allocating for a non-positive process id.
	ErrInvalidOwner = errors.New("memory: invalid owner")
)

// Word is a single arena cell.
type Word struct {
	Owner int    `json:"owner" yaml:"owner"`
	Label string `json:"label,omitempty" yaml:"label,omitempty"`
	Value string `json:"value,omitempty" yaml:"value,omitempty"`
}

// IsFree reports whether the word is unowned.
func (w Word) IsFree() bool { return w.Owner == Free }

// Arena is a fixed-capacity sequence of words shared by all processes.
type Arena struct {
	words []Word
}

// Size returns arena capacity.
func (a *Arena) Size() int { return len(a.words) }

// Allocate reserves the lowest-indexed run of size free words for owner and
// returns its offset.
func (a *Arena) Allocate(owner, size int) (int, error) {
	if owner <= Free {
		return 0, fmt.Errorf("%w: %d", ErrInvalidOwner, owner)
	}
	if size <= 0 || size > len(a.words) {
		return 0, fmt.Errorf("%w: requested %d of %d", ErrNoSpace, size, len(a.words))
	}
	run := 0
	for i := range a.words {
		if !a.words[i].IsFree() {
			run = 0
			continue
		}
		run++
		if run == size {
			offset := i - size + 1
			for j := offset; j <= i; j++ {
				a.words[j] = Word{Owner: owner}
			}
			return offset, nil
		}
	}
	return 0, fmt.Errorf("%w: requested %d", ErrNoSpace, size)
}

// Deallocate clears every word owned by owner and returns the number of words released.
func (a *Arena) Deallocate(owner int) int {
	if owner <= Free {
		return 0
	}
	released := 0
	for i := range a.words {
		if a.words[i].Owner == owner {
			a.words[i] = Word{}
			released++
		}
	}
	return released
}

// Write replaces label and value of the word at index, ownership is preserved.
func (a *Arena) Write(index int, label, value string) error {
	if index < 0 || index >= len(a.words) {
		return fmt.Errorf("%w: %d", ErrOutOfRange, index)
	}
	a.words[index].Label = label
	a.words[index].Value = value
	return nil
}

// Read returns the word at index.
func (a *Arena) Read(index int) (Word, error) {
	if index < 0 || index >= len(a.words) {
		return Word{}, fmt.Errorf("%w: %d", ErrOutOfRange, index)
	}
	return a.words[index], nil
}

// Words returns a copy of all arena words.
func (a *Arena) Words() []Word {
	ret := make([]Word, len(a.words))
	copy(ret, a.words)
	return ret
}

// FreeWords returns the number of unowned words.
func (a *Arena) FreeWords() int {
	count := 0
	for _, w := range a.words {
		if w.IsFree() {
			count++
		}
	}
	return count
}

// Reset releases every word.
func (a *Arena) Reset() {
	for i := range a.words {
		a.words[i] = Word{}
	}
}

// New creates an arena with size words.
func New(size int) (*Arena, error) {
	if size <= 0 {
		return nil, fmt.Errorf("memory: invalid arena size %d", size)
	}
	return &Arena{words: make([]Word, size)}, nil
}
