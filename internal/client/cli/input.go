package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/term"
)

// readPassword and isTerminal are test seams for golang.org/x/term.
var (
	readPassword = term.ReadPassword
	isTerminal   = term.IsTerminal
)

// prompter asks questions on out and reads the answers from in.
type prompter struct {
	in  *bufio.Reader
	out io.Writer
	// fd of in when it is backed by a file, -1 otherwise
	fd int
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	fd := -1
	if f, ok := in.(interface{ Fd() uintptr }); ok {
		fd = int(f.Fd())
	}
	return &prompter{in: bufio.NewReader(in), out: out, fd: fd}
}

// Line prints question followed by a "> " marker and returns the answer
// with surrounding whitespace trimmed:
//
//	Enter user name
//	> _
func (p *prompter) Line(question string) (string, error) {
	if _, err := fmt.Fprint(p.out, question+"\n> "); err != nil {
		return "", err
	}
	line, err := p.readLine()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// Password reads a password without echo. Piped input (in is not a
// terminal) is taken verbatim from the next line, so scripts can feed it.
func (p *prompter) Password() (string, error) {
	if _, err := fmt.Fprint(p.out, "Enter password: "); err != nil {
		return "", err
	}
	defer fmt.Fprintln(p.out)

	if !isTerminal(p.fd) {
		return p.readLine()
	}

	pw, err := readPassword(p.fd)
	if err != nil {
		return "", err
	}
	return string(pw), nil
}

// readLine returns the next line without its line ending. A final line
// without a newline still counts; EOF before any input is an error.
func (p *prompter) readLine() (string, error) {
	line, err := p.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
