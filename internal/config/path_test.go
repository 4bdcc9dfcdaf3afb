package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("no home directory: %v", err)
	}

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "empty", input: "", want: ""},
		{name: "absolute untouched", input: "/var/lib/tally.db", want: "/var/lib/tally.db"},
		{name: "tilde slash", input: "~/data/tally.db", want: filepath.Join(home, "data/tally.db")},
		{name: "bare tilde", input: "~", want: home},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExpandPath(tt.input); got != tt.want {
				t.Errorf("ExpandPath(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestExpandPathEnvVars(t *testing.T) {
	t.Setenv("TALLY_TEST_DIR", "/tmp/tally-test")

	got := ExpandPath("$TALLY_TEST_DIR/tally.db")
	if got != "/tmp/tally-test/tally.db" {
		t.Errorf("ExpandPath = %q, want /tmp/tally-test/tally.db", got)
	}
}

func TestDefaultPaths(t *testing.T) {
	if p := DefaultDatabasePath(); !strings.HasSuffix(p, filepath.Join("tally", "tally.db")) {
		t.Errorf("DefaultDatabasePath = %q", p)
	}
	if p := DefaultTokenPath(); !strings.HasSuffix(p, filepath.Join("tally", "token")) {
		t.Errorf("DefaultTokenPath = %q", p)
	}
}
