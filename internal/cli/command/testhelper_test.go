package command

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"
)

const testToken = "zt1-test-token"

// mockServer is a fake controller daemon.
type mockServer struct {
	*httptest.Server

	mu       sync.Mutex
	handlers map[string]http.HandlerFunc
	requests []*http.Request
}

// newMockServer creates a mock daemon closed at test cleanup.
func newMockServer(t *testing.T) *mockServer {
	t.Helper()
	m := &mockServer{handlers: make(map[string]http.HandlerFunc)}
	m.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		m.mu.Lock()
		m.requests = append(m.requests, r.Clone(context.Background()))
		handler, ok := m.handlers[r.Method+" "+r.URL.Path]
		m.mu.Unlock()

		if !ok {
			http.NotFound(w, r)
			return
		}
		handler(w, r)
	}))
	t.Cleanup(m.Close)
	return m
}

// handle registers a handler for an exact method and path.
func (m *mockServer) handle(method, path string, handler http.HandlerFunc) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handlers[method+" "+path] = handler
}

// received returns the requests seen so far.
func (m *mockServer) received() []*http.Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*http.Request(nil), m.requests...)
}

// jsonResponse writes a JSON response.
func jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// rawResponse writes body verbatim.
func rawResponse(status int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(body))
	}
}

// errorResponse writes a daemon error body.
func errorResponse(w http.ResponseWriter, status int, message string) {
	jsonResponse(w, status, map[string]string{"message": message})
}

// writeToken writes an auth token file and returns its path.
func writeToken(t *testing.T, token string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "authtoken.secret")
	if err := os.WriteFile(path, []byte(token+"\n"), 0600); err != nil {
		t.Fatalf("write token: %v", err)
	}
	return path
}

// isolate points HOME at a temp dir so the user's config is never read.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)
	t.Setenv("ZTCTL_TOKEN_PATH", "")
	os.Unsetenv("ZTCTL_TOKEN_PATH")
	return home
}

type result struct {
	stdout string
	stderr string
	err    error
}

// runRaw runs the app with exactly args after the program name.
func runRaw(t *testing.T, args ...string) result {
	t.Helper()

	app := App()
	var stdout, stderr bytes.Buffer
	app.Writer = &stdout
	app.ErrWriter = &stderr

	err := app.RunContext(context.Background(), append([]string{"ztctl"}, args...))
	return result{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

// run runs the app against srv with a valid token file.
func run(t *testing.T, srv *mockServer, args ...string) result {
	t.Helper()
	isolate(t)
	argv := []string{"--endpoint", srv.URL, "-T", writeToken(t, testToken)}
	return runRaw(t, append(argv, args...)...)
}

func statusHandler(w http.ResponseWriter, r *http.Request) {
	jsonResponse(w, http.StatusOK, map[string]any{
		"address": "8056c2e21c",
		"version": "1.14.0",
		"online":  true,
		"config": map[string]any{
			"settings": map[string]any{"primaryPort": 9993},
		},
	})
}
