package connection

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/yndnr/ztctl-go/internal/core/domain"
)

func TestDefaultTokenPath(t *testing.T) {
	tests := []struct {
		goos string
		want string
	}{
		{"linux", "/var/lib/zerotier-one/authtoken.secret"},
		{"windows", "C:/ProgramData/ZeroTier/One/authtoken.secret"},
		{"darwin", "/Library/Application Support/ZeroTier/One/authtoken.secret"},
	}

	for _, tt := range tests {
		t.Run(tt.goos, func(t *testing.T) {
			got, err := DefaultTokenPath(tt.goos)
			if err != nil {
				t.Fatalf("DefaultTokenPath() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("DefaultTokenPath() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDefaultTokenPath_Unsupported(t *testing.T) {
	for _, goos := range []string{"freebsd", "plan9", ""} {
		t.Run(goos, func(t *testing.T) {
			_, err := DefaultTokenPath(goos)
			if !errors.Is(err, domain.ErrConfig) {
				t.Fatalf("error = %v, want ErrConfig", err)
			}
			if !strings.Contains(err.Error(), "--token-file") {
				t.Errorf("error = %q, should mention --token-file", err.Error())
			}
		})
	}
}

func TestResolveTokenPath(t *testing.T) {
	got, err := ResolveTokenPath("/tmp/custom.secret")
	if err != nil {
		t.Fatalf("ResolveTokenPath() error = %v", err)
	}
	if got != "/tmp/custom.secret" {
		t.Errorf("override = %q, want unchanged", got)
	}

	def, defErr := DefaultTokenPath(runtime.GOOS)
	got, err = ResolveTokenPath("")
	if defErr != nil {
		if !errors.Is(err, domain.ErrConfig) {
			t.Errorf("error = %v, want ErrConfig", err)
		}
		return
	}
	if err != nil || got != def {
		t.Errorf("ResolveTokenPath(\"\") = %q, %v, want %q", got, err, def)
	}
}

func TestReadToken(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"plain", "abcdef0123456789", "abcdef0123456789"},
		{"trailing newline", "abcdef0123456789\n", "abcdef0123456789"},
		{"crlf", "abcdef0123456789\r\n", "abcdef0123456789"},
		{"trailing spaces", "abcdef0123456789  \t\n", "abcdef0123456789"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "authtoken.secret")
			if err := os.WriteFile(path, []byte(tt.content), 0o600); err != nil {
				t.Fatal(err)
			}
			got, err := ReadToken(path)
			if err != nil {
				t.Fatalf("ReadToken() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("ReadToken() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestReadToken_Errors(t *testing.T) {
	dir := t.TempDir()

	missing := filepath.Join(dir, "missing.secret")
	_, err := ReadToken(missing)
	if !errors.Is(err, domain.ErrIO) {
		t.Fatalf("missing file: error = %v, want ErrIO", err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("error should wrap os.ErrNotExist: %v", err)
	}
	if !strings.Contains(err.Error(), missing) {
		t.Errorf("error = %q, should contain path", err.Error())
	}

	invalid := filepath.Join(dir, "invalid.secret")
	if err := os.WriteFile(invalid, []byte{0xff, 0xfe, 0xfd}, 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := ReadToken(invalid); !errors.Is(err, domain.ErrIO) {
		t.Errorf("invalid utf-8: error = %v, want ErrIO", err)
	}
}

func TestNewHTTPClientFromFile(t *testing.T) {
	dir := t.TempDir()

	path := filepath.Join(dir, "authtoken.secret")
	if err := os.WriteFile(path, []byte("secret-token\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := NewHTTPClientFromFile(path); err != nil {
		t.Fatalf("NewHTTPClientFromFile() error = %v", err)
	}

	empty := filepath.Join(dir, "empty.secret")
	if err := os.WriteFile(empty, []byte("\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := NewHTTPClientFromFile(empty); !errors.Is(err, domain.ErrConfig) {
		t.Errorf("empty token: error = %v, want ErrConfig", err)
	}

	if _, err := NewHTTPClientFromFile(filepath.Join(dir, "nope")); !errors.Is(err, domain.ErrIO) {
		t.Errorf("missing token: error = %v, want ErrIO", err)
	}
}

func TestFingerprint(t *testing.T) {
	a := Fingerprint("secret-token")
	b := Fingerprint("other-token")

	if len(a) != 8 {
		t.Errorf("len(Fingerprint()) = %d, want 8", len(a))
	}
	if a == b {
		t.Error("different tokens should have different fingerprints")
	}
	if a != Fingerprint("secret-token") {
		t.Error("Fingerprint should be deterministic")
	}
	if strings.Contains("secret-token", a) {
		t.Error("fingerprint should not reveal the token")
	}
}
