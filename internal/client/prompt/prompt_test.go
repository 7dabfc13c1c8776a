package prompt

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestLogin(t *testing.T) {
	var out bytes.Buffer
	p := New(strings.NewReader("  a@x.com \nsecret\n"), &out)

	email, password, err := p.Login()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if email != "a@x.com" {
		t.Errorf("email = %q; want %q", email, "a@x.com")
	}
	if password != "secret" {
		t.Errorf("password = %q; want %q", password, "secret")
	}
	if !strings.Contains(out.String(), "Email: ") || !strings.Contains(out.String(), "Password: ") {
		t.Errorf("missing labels in output %q", out.String())
	}
}

func TestRegister_RepeatsEmptyAnswers(t *testing.T) {
	var out bytes.Buffer
	p := New(strings.NewReader("\nAna\na@x.com\n\nsecret\n"), &out)

	name, email, password, err := p.Register()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if name != "Ana" || email != "a@x.com" || password != "secret" {
		t.Errorf("got %q %q %q", name, email, password)
	}
	if got := strings.Count(out.String(), "A value is required."); got != 2 {
		t.Errorf("expected 2 retries, got %d", got)
	}
}

func TestLine_Aborted(t *testing.T) {
	p := New(strings.NewReader("a@x.com\n"), &bytes.Buffer{})
	if _, _, err := p.Login(); !errors.Is(err, ErrAborted) {
		t.Errorf("expected ErrAborted, got %v", err)
	}
}
