package interpreter

import (
	"fmt"
	"strings"

	"github.com/viant/parsly"
)

const (
	// MaxCommandLength is the longest accepted opcode.
	MaxCommandLength = 19
	// MaxArgumentLength is the longest accepted argument.
	MaxArgumentLength = 99
	// MaxOutputLength caps the bytes printFromTo emits for one instruction.
	MaxOutputLength = 1024
)

// Instruction is a tokenized program line: command arg1 [rest].
type Instruction struct {
	Command string
	Arg1    string
	Rest    string
}

// Args returns the number of tokens present, command included.
func (i *Instruction) Args() int {
	switch {
	case i.Command == "":
		return 0
	case i.Arg1 == "":
		return 1
	case i.Rest == "":
		return 2
	}
	return 3
}

// Tokenize splits line into command, first argument and remainder.
func Tokenize(line string) (*Instruction, error) {
	cursor := parsly.NewCursor("instruction", []byte(line), 0)
	ret := &Instruction{}

	matched := cursor.MatchAfterOptional(whitespaceToken, wordToken)
	if matched.Code != wordCode {
		return ret, nil
	}
	ret.Command = matched.Text(cursor)
	if len(ret.Command) > MaxCommandLength {
		return nil, fmt.Errorf("%w: command %q", ErrTokenTooLong, ret.Command)
	}

	matched = cursor.MatchAfterOptional(whitespaceToken, wordToken)
	if matched.Code != wordCode {
		return ret, nil
	}
	ret.Arg1 = matched.Text(cursor)

	matched = cursor.MatchAfterOptional(whitespaceToken, restToken)
	if matched.Code == restCode {
		ret.Rest = strings.TrimRight(matched.Text(cursor), " \t\r")
	}
	for _, arg := range []string{ret.Arg1, ret.Rest} {
		if len(arg) > MaxArgumentLength {
			return nil, fmt.Errorf("%w: argument of %s", ErrTokenTooLong, ret.Command)
		}
	}
	return ret, nil
}
