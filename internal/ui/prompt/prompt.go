// File: internal/ui/prompt/prompt.go
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Prompter asks the user before destructive operations
type Prompter interface {
	// Requires the user to type expectedValue exactly
	Confirm(message string, expectedValue string) (bool, error)
	// Accepts "y" or "yes", case-insensitive; anything else declines
	ConfirmYes(message string) (bool, error)
}

type StandardPrompter struct {
	reader *bufio.Reader
	writer io.Writer
}

func NewStandardPrompter(in io.Reader, out io.Writer) *StandardPrompter {
	return &StandardPrompter{
		reader: bufio.NewReader(in),
		writer: out,
	}
}

func (p *StandardPrompter) Confirm(message string, expectedValue string) (bool, error) {
	if expectedValue == "" {
		return false, errors.New("expected confirmation value cannot be empty")
	}

	fmt.Fprintln(p.writer, message)
	fmt.Fprintf(p.writer, "To confirm, please type '%s': ", expectedValue)

	input, err := p.readLine()
	if err != nil {
		return false, err
	}
	return input == expectedValue, nil
}

func (p *StandardPrompter) ConfirmYes(message string) (bool, error) {
	fmt.Fprintf(p.writer, "%s [y/N]: ", message)

	input, err := p.readLine()
	if err != nil {
		return false, err
	}
	switch strings.ToLower(input) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

// A closed input declines rather than failing
func (p *StandardPrompter) readLine() (string, error) {
	input, err := p.reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("error reading user input: %w", err)
	}
	return strings.TrimSpace(input), nil
}
