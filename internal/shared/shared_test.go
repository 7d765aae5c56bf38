package shared

import (
	"strings"
	"testing"
)

func TestNewLogger(t *testing.T) {
	t.Run("writes to the given writer", func(t *testing.T) {
		var buf strings.Builder
		logger := NewLogger(&buf)
		logger.Info("hello")

		if !strings.Contains(buf.String(), "hello") {
			t.Errorf("expected log output to contain message, got %q", buf.String())
		}
	})

	t.Run("nil writer defaults to stderr", func(t *testing.T) {
		logger := NewLogger(nil)
		if logger == nil {
			t.Fatal("expected a logger")
		}
	})
}

func TestGenerateState(t *testing.T) {
	first, err := GenerateState()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if first == "" {
		t.Fatal("expected non-empty state token")
	}

	second, err := GenerateState()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if first == second {
		t.Error("expected distinct state tokens")
	}
}

func TestTitleCase(t *testing.T) {
	cases := map[string]string{
		"circa waves":                     "Circa Waves",
		"circa waves - 2025 - barrowland": "Circa Waves - 2025 - Barrowland",
		"OASIS":                           "Oasis",
		"":                                "",
	}

	for in, want := range cases {
		if got := TitleCase(in); got != want {
			t.Errorf("TitleCase(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestCollapseWhitespace(t *testing.T) {
	cases := map[string]string{
		"Mar\n29\n2025":     "Mar 29 2025",
		"  Mar   29 2025  ": "Mar 29 2025",
		"one":               "one",
		"":                  "",
		"\n\t ":             "",
	}

	for in, want := range cases {
		if got := CollapseWhitespace(in); got != want {
			t.Errorf("CollapseWhitespace(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestMarshalJSON(t *testing.T) {
	data := map[string]string{"artist": "circa waves"}

	t.Run("compact", func(t *testing.T) {
		out, err := MarshalJSON(data, false)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if string(out) != `{"artist":"circa waves"}` {
			t.Errorf("unexpected output %s", out)
		}
	})

	t.Run("pretty", func(t *testing.T) {
		out, err := MarshalJSON(data, true)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.Contains(string(out), "\n  ") {
			t.Errorf("expected indented output, got %s", out)
		}
	})
}

func TestVisibilityString(t *testing.T) {
	if got := VisibilityString(true); got != "Public" {
		t.Errorf("expected 'Public', got %q", got)
	}
	if got := VisibilityString(false); got != "Private" {
		t.Errorf("expected 'Private', got %q", got)
	}
}
