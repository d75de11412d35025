package connection

import (
	"encoding/hex"
	"errors"
	"os"
	"runtime"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/crypto/blake2b"

	"github.com/yndnr/ztctl-go/internal/core/domain"
)

// Default token file locations of the daemon.
const (
	LinuxTokenPath   = "/var/lib/zerotier-one/authtoken.secret"
	WindowsTokenPath = "C:/ProgramData/ZeroTier/One/authtoken.secret"
	DarwinTokenPath  = "/Library/Application Support/ZeroTier/One/authtoken.secret"
)

// DefaultTokenPath returns the well-known token file path for goos.
// Unknown platforms yield ErrConfig.
func DefaultTokenPath(goos string) (string, error) {
	switch goos {
	case "linux":
		return LinuxTokenPath, nil
	case "windows":
		return WindowsTokenPath, nil
	case "darwin":
		return DarwinTokenPath, nil
	default:
		return "", domain.ErrConfig.WithDetailsf(
			"no default token file on %s; pass --token-file to provide a custom path", goos)
	}
}

// ResolveTokenPath returns override when set, otherwise the default path
// for the running platform. The override is not checked for existence.
func ResolveTokenPath(override string) (string, error) {
	if override != "" {
		return override, nil
	}
	return DefaultTokenPath(runtime.GOOS)
}

// ReadToken reads the token file at path and trims trailing whitespace.
func ReadToken(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", domain.ErrIO.WithDetails("read token file " + path).WithCause(err)
	}
	if !utf8.Valid(data) {
		return "", domain.ErrIO.WithDetails("read token file " + path).
			WithCause(errors.New("token file is not valid UTF-8"))
	}
	return strings.TrimRightFunc(string(data), unicode.IsSpace), nil
}

// Fingerprint returns a short non-reversible identifier of token, safe
// to log.
func Fingerprint(token string) string {
	sum := blake2b.Sum256([]byte(token))
	return hex.EncodeToString(sum[:4])
}
