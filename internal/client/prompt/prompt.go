// Package prompt reads interactive form input for the shell.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrAborted is returned when input ends before the form is complete.
var ErrAborted = errors.New("input closed")

// Prompter asks questions on out and reads answers line by line from in.
// It never reads past the current line, so callers can share in with it.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

func New(in io.Reader, out io.Writer) *Prompter {
	br, ok := in.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(in)
	}
	return &Prompter{in: br, out: out}
}

// Line prints label and returns the trimmed answer. A last line without a
// newline is still returned; ErrAborted follows on the next call.
func (p *Prompter) Line(label string) (string, error) {
	fmt.Fprint(p.out, label)
	line, err := p.in.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) {
			return "", err
		}
		if line == "" {
			return "", ErrAborted
		}
	}
	return strings.TrimSpace(line), nil
}

// Required repeats the question until a non-empty answer is given.
func (p *Prompter) Required(label string) (string, error) {
	for {
		v, err := p.Line(label)
		if err != nil {
			return "", err
		}
		if v != "" {
			return v, nil
		}
		fmt.Fprintln(p.out, "A value is required.")
	}
}

// Login asks for email and password.
func (p *Prompter) Login() (email, password string, err error) {
	if email, err = p.Required("Email: "); err != nil {
		return "", "", err
	}
	if password, err = p.Required("Password: "); err != nil {
		return "", "", err
	}
	return email, password, nil
}

// Register asks for name, email and password.
func (p *Prompter) Register() (name, email, password string, err error) {
	if name, err = p.Required("Name: "); err != nil {
		return "", "", "", err
	}
	if email, password, err = p.Login(); err != nil {
		return "", "", "", err
	}
	return name, email, password, nil
}
