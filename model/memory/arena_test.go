package memory

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestArena_Allocate(t *testing.T) {
	type step struct {
		allocate   int
		size       int
		deallocate int
		expect     int
		expectErr  error
	}
	var testCases = []struct {
		description string
		steps       []step
	}{
		{
			description: "sequential allocation",
			steps: []step{
				{allocate: 1, size: 10, expect: 0},
				{allocate: 2, size: 10, expect: 10},
				{allocate: 3, size: 40, expect: 20},
			},
		},
		{
			description: "first fit reuses the lowest hole",
			steps: []step{
				{allocate: 1, size: 10, expect: 0},
				{allocate: 2, size: 10, expect: 10},
				{deallocate: 1},
				{allocate: 3, size: 5, expect: 0},
				{allocate: 4, size: 20, expect: 20},
			},
		},
		{
			description: "hole too small is skipped",
			steps: []step{
				{allocate: 1, size: 5, expect: 0},
				{allocate: 2, size: 5, expect: 5},
				{deallocate: 1},
				{allocate: 3, size: 6, expect: 10},
				{allocate: 4, size: 5, expect: 0},
			},
		},
		{
			description: "no space",
			steps: []step{
				{allocate: 1, size: 49, expect: 0},
				{allocate: 2, size: 12, expectErr: ErrNoSpace},
				{allocate: 3, size: 11, expect: 49},
			},
		},
		{
			description: "invalid owner",
			steps: []step{
				{allocate: -1, size: 3, expectErr: ErrInvalidOwner},
			},
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			arena, err := New(DefaultSize)
			if !assert.NoError(t, err) {
				return
			}
			for i, s := range testCase.steps {
				if s.deallocate != 0 {
					arena.Deallocate(s.deallocate)
					continue
				}
				offset, err := arena.Allocate(s.allocate, s.size)
				if s.expectErr != nil {
					assert.True(t, errors.Is(err, s.expectErr), "step %d: %v", i, err)
					continue
				}
				assert.NoError(t, err, "step %d", i)
				assert.Equal(t, s.expect, offset, "step %d", i)
			}
		})
	}
}

func TestArena_BlocksDoNotOverlap(t *testing.T) {
	arena, _ := New(DefaultSize)
	for owner := 1; owner <= 4; owner++ {
		_, err := arena.Allocate(owner, 12)
		assert.NoError(t, err)
	}
	counts := map[int]int{}
	for _, w := range arena.Words() {
		counts[w.Owner]++
	}
	for owner := 1; owner <= 4; owner++ {
		assert.Equal(t, 12, counts[owner])
	}
	assert.Equal(t, 12, counts[Free])
	assert.Equal(t, 12, arena.Deallocate(2))
	assert.Equal(t, 24, arena.FreeWords())
}

func TestArena_Layout(t *testing.T) {
	arena, _ := New(DefaultSize)
	program := []string{"assign x 1", "print x"}
	offset, err := arena.Allocate(1, BlockSize(len(program)))
	assert.NoError(t, err)
	assert.NoError(t, arena.Load(offset, program))

	assert.Equal(t, program, arena.Instructions(offset, len(program)))
	w, _ := arena.Read(0)
	assert.Equal(t, "Instruction 0", w.Label)
	w, _ = arena.Read(2)
	assert.Equal(t, Word{Owner: 1, Label: VariableLabel, Value: EmptyValue}, w)
	w, _ = arena.Read(10)
	assert.Equal(t, "upperMemoryBound", w.Label)

	upper := offset + BlockSize(len(program)) - 1
	assert.True(t, arena.AssignVariable(upper, "x", "1"))
	assert.True(t, arena.AssignVariable(upper, "y", "2"))
	assert.True(t, arena.AssignVariable(upper, "x", "3"))
	assert.True(t, arena.AssignVariable(upper, "z", "4"))
	assert.False(t, arena.AssignVariable(upper, "w", "5"))

	w, _ = arena.Read(2)
	assert.Equal(t, "x", w.Label)
	assert.Equal(t, "3", w.Value)
	w, _ = arena.Read(4)
	assert.Equal(t, "z", w.Label)

	_, err = arena.Read(DefaultSize)
	assert.True(t, errors.Is(err, ErrOutOfRange))
}
