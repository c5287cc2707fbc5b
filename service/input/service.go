// Package input collects values for suspended input requests from a console.
package input

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Service prompts on out and reads answers line by line from in.
type Service struct {
	in  *bufio.Reader
	out io.Writer
}

// New returns a Service bound to stdin and stdout.
func New() *Service {
	return NewWithIO(os.Stdin, os.Stdout)
}

// NewWithIO overrides the streams, handy for tests.
func NewWithIO(in io.Reader, out io.Writer) *Service {
	if in == nil {
		in = os.Stdin
	}
	if out == nil {
		out = os.Stdout
	}
	return &Service{in: bufio.NewReader(in), out: out}
}

// Ask prints message and returns the trimmed answer, or def for an empty line.
// io.EOF is returned once the input is exhausted without an answer.
func (s *Service) Ask(ctx context.Context, message, def string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	prompt := strings.TrimSpace(message)
	if prompt == "" {
		prompt = "?"
	}
	fmt.Fprint(s.out, prompt+" ")
	response, err := s.in.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", err
	}
	eof := err == io.EOF
	response = strings.TrimSpace(response)
	if response == "" {
		if eof && def == "" {
			return "", io.EOF
		}
		response = def
	}
	return response, nil
}

// Choose asks for one of options by number (1-N) or value, case-insensitive.
// Invalid answers repeat the prompt.
func (s *Service) Choose(ctx context.Context, message string, options []string, def string) (string, error) {
	fmt.Fprintf(s.out, "%s\n", strings.TrimSpace(message))
	for i, option := range options {
		fmt.Fprintf(s.out, "  %d) %s\n", i+1, option)
	}
	for {
		answer, err := s.Ask(ctx, ">", def)
		if err != nil {
			return "", err
		}
		if n, err := strconv.Atoi(answer); err == nil && n >= 1 && n <= len(options) {
			return options[n-1], nil
		}
		for _, option := range options {
			if strings.EqualFold(option, answer) {
				return option, nil
			}
		}
		fmt.Fprintf(s.out, "invalid choice %q\n", answer)
	}
}
