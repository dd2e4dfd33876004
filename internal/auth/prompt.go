package auth

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// TerminalPrompter is a CodePrompter that reads a line from an input stream,
// normally stdin. Prompts go to the output stream, normally stderr, so they
// are visible even when stdout is redirected.
type TerminalPrompter struct {
	in  *bufio.Reader
	out io.Writer
}

// NewTerminalPrompter constructs a TerminalPrompter reading from stdin and
// prompting on stderr.
func NewTerminalPrompter() *TerminalPrompter {
	return &TerminalPrompter{
		in:  bufio.NewReader(os.Stdin),
		out: os.Stderr,
	}
}

// Code prints the prompt and reads one line, trimmed of surrounding
// whitespace.
func (p *TerminalPrompter) Code(_ context.Context, prompt string) (string, error) {
	fmt.Fprint(p.out, prompt)

	line, err := p.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("could not read input: %w", err)
	}

	code := strings.TrimSpace(line)
	if code == "" {
		return "", errors.New("empty two-factor code")
	}

	return code, nil
}

// ReadPassword interactively prompts for the account password with terminal
// echo disabled. It is used when the password is absent from configuration so
// credentials never have to live on disk.
func ReadPassword(prompt string) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", errors.New("no terminal available for interactive password prompt")
	}

	fmt.Fprint(os.Stderr, prompt)
	passwordBytes, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("could not read password: %w", err)
	}

	return string(passwordBytes), nil
}
