package clipboard

import (
	"bytes"
	"encoding/base64"
	"errors"
	"strings"
	"testing"
)

func TestFallbackStopsAtFirstSuccess(t *testing.T) {
	var calls []string
	failing := WriterFunc(func(string) error {
		calls = append(calls, "failing")
		return errors.New("denied")
	})
	ok := WriterFunc(func(text string) error {
		calls = append(calls, "ok:"+text)
		return nil
	})
	never := WriterFunc(func(string) error {
		calls = append(calls, "never")
		return nil
	})

	if err := (Fallback{failing, ok, never}).WriteAll("ip link"); err != nil {
		t.Fatalf("WriteAll: %v", err)
	}
	if got := strings.Join(calls, ","); got != "failing,ok:ip link" {
		t.Fatalf("unexpected calls: %s", got)
	}
}

func TestFallbackJoinsErrors(t *testing.T) {
	errA := errors.New("a")
	errB := errors.New("b")
	err := Fallback{
		WriterFunc(func(string) error { return errA }),
		WriterFunc(func(string) error { return errB }),
	}.WriteAll("x")
	if !errors.Is(err, errA) || !errors.Is(err, errB) {
		t.Fatalf("expected joined error, got %v", err)
	}
	if err := (Fallback{}).WriteAll("x"); err == nil {
		t.Fatalf("expected error from empty fallback")
	}
}

func TestOSC52WritesEncodedText(t *testing.T) {
	t.Setenv("TMUX", "")
	var buf bytes.Buffer
	text := "[Unit]\nDescription=x"
	if err := (OSC52{Out: &buf}).WriteAll(text); err != nil {
		t.Fatalf("WriteAll: %v", err)
	}
	encoded := base64.StdEncoding.EncodeToString([]byte(text))
	if !strings.Contains(buf.String(), encoded) {
		t.Fatalf("escape %q does not contain %q", buf.String(), encoded)
	}
}

func TestNewModes(t *testing.T) {
	for _, mode := range []string{"", "auto", "system", "osc52", "OSC52"} {
		if _, err := New(mode); err != nil {
			t.Fatalf("New(%q): %v", mode, err)
		}
	}
	if _, err := New("pigeon"); err == nil {
		t.Fatalf("expected error for unknown mode")
	}
}
