package secrets

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadPrecedence(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "password")
	if err := os.WriteFile(file, []byte("  from-file\n"), 0o600); err != nil {
		t.Fatalf("writing secret: %v", err)
	}
	t.Setenv("CAREERDECK_TEST_SECRET", " from-env ")

	tests := []struct {
		name string
		src  Source
		want string
	}{
		{name: "file wins", src: Source{File: file, Env: "CAREERDECK_TEST_SECRET", Value: "inline"}, want: "from-file"},
		{name: "env over value", src: Source{Env: "CAREERDECK_TEST_SECRET", Value: "inline"}, want: "from-env"},
		{name: "value", src: Source{Env: "CAREERDECK_UNSET_SECRET", Value: " inline "}, want: "inline"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			got, err := Load(tt.src)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	empty := filepath.Join(dir, "empty")
	if err := os.WriteFile(empty, []byte("  \n"), 0o600); err != nil {
		t.Fatalf("writing secret: %v", err)
	}

	tests := []struct {
		name    string
		src     Source
		errPart string
	}{
		{name: "missing file", src: Source{Name: "redis password", File: filepath.Join(dir, "nope")}, errPart: "reading redis password"},
		{name: "empty file", src: Source{File: empty}, errPart: "is empty"},
		{name: "nothing set", src: Source{Name: "token"}, errPart: "token is not configured"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(tt.src)
			if err == nil || !strings.Contains(err.Error(), tt.errPart) {
				t.Fatalf("expected error containing %q, got %v", tt.errPart, err)
			}
		})
	}
}
