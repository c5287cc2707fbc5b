package interpreter

import (
	"github.com/viant/parsly"
	"github.com/viant/parsly/matcher"
)

const (
	whitespaceCode = iota
	wordCode
	restCode
)

var (
	whitespaceToken = parsly.NewToken(whitespaceCode, "Whitespace", matcher.NewWhiteSpace())
	wordToken       = parsly.NewToken(wordCode, "Word", &wordMatcher{})
	restToken       = parsly.NewToken(restCode, "Rest", &restMatcher{})
)

// wordMatcher matches a run of non-whitespace bytes
type wordMatcher struct{}

func (m *wordMatcher) Match(cursor *parsly.Cursor) int {
	input := cursor.Input
	matched := 0
	for i := cursor.Pos; i < cursor.InputSize; i++ {
		if isWhitespace(input[i]) {
			break
		}
		matched++
	}
	return matched
}

// restMatcher matches everything up to the end of line
type restMatcher struct{}

func (m *restMatcher) Match(cursor *parsly.Cursor) int {
	input := cursor.Input
	matched := 0
	for i := cursor.Pos; i < cursor.InputSize; i++ {
		if input[i] == '\n' {
			break
		}
		matched++
	}
	return matched
}

func isWhitespace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}
