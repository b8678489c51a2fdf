package execunrar

import (
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	t.Run("default unrar path", func(t *testing.T) {
		u := New()
		if u.unrarPath != "unrar" {
			t.Errorf("expected default unrar path 'unrar', got %q", u.unrarPath)
		}
	})

	t.Run("custom unrar path", func(t *testing.T) {
		u := New(WithUnrarPath("/usr/local/bin/unrar"))
		if u.unrarPath != "/usr/local/bin/unrar" {
			t.Errorf("expected custom path, got %q", u.unrarPath)
		}
	})
}

func TestPasswordSwitch(t *testing.T) {
	t.Run("empty password disables prompting", func(t *testing.T) {
		if got := passwordSwitch(""); got != "-p-" {
			t.Errorf("expected -p-, got %q", got)
		}
	})

	t.Run("password is appended to switch", func(t *testing.T) {
		if got := passwordSwitch("secret"); got != "-psecret" {
			t.Errorf("expected -psecret, got %q", got)
		}
	})
}

func TestOverwriteSwitch(t *testing.T) {
	if got := overwriteSwitch(true); got != "-o+" {
		t.Errorf("expected -o+, got %q", got)
	}
	if got := overwriteSwitch(false); got != "-o-" {
		t.Errorf("expected -o-, got %q", got)
	}
}

func TestRunMissingBinary(t *testing.T) {
	// A nonexistent binary must surface as an error, not a status: the tool
	// never ran, so there is no wait status to report.
	u := New(WithUnrarPath("/nonexistent/unrar-binary"))

	_, status, err := u.List("archive.rar", "")
	if err == nil {
		t.Fatal("expected error for missing binary")
	}
	if status != 0 {
		t.Errorf("expected zero status when binary never ran, got %d", status)
	}
	if !strings.Contains(err.Error(), "unrar failed to run") {
		t.Errorf("unexpected error message: %v", err)
	}
}
