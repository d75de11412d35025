package output

import (
	"bytes"
	"strings"
	"sync"
	"testing"
	"time"
)

// syncBuffer guards a bytes.Buffer shared with the spinner goroutine.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestNewSpinner(t *testing.T) {
	var buf syncBuffer
	s := NewSpinner(&buf, "Waiting for token file")

	if s.message != "Waiting for token file" {
		t.Errorf("Spinner message = %q", s.message)
	}
	if len(s.frames) == 0 {
		t.Error("Spinner frames should not be empty")
	}
	if s.done == nil {
		t.Error("Spinner done channel should be initialized")
	}
}

func TestSpinner_StartStop(t *testing.T) {
	var buf syncBuffer
	s := NewSpinner(&buf, "Processing")

	s.Start()
	time.Sleep(150 * time.Millisecond)
	s.Stop()

	output := buf.String()
	if !strings.Contains(output, "Processing") {
		t.Error("Spinner should draw its message")
	}
	if !strings.HasSuffix(output, "\r\033[K") {
		t.Errorf("Stop should clear the line last, got %q", output)
	}
}

func TestSpinner_Success(t *testing.T) {
	var buf syncBuffer
	s := NewSpinner(&buf, "Loading")

	s.Start()
	s.Success("token file found")

	if !strings.HasSuffix(buf.String(), "✓ token file found\n") {
		t.Errorf("output = %q", buf.String())
	}
}

func TestSpinner_Fail(t *testing.T) {
	var buf syncBuffer
	s := NewSpinner(&buf, "Loading")

	s.Start()
	s.Fail("timed out")

	if !strings.HasSuffix(buf.String(), "✗ timed out\n") {
		t.Errorf("output = %q", buf.String())
	}
}

func TestSpinner_StopTwice(t *testing.T) {
	var buf syncBuffer
	s := NewSpinner(&buf, "Loading")

	s.Start()
	s.Stop()
	s.Fail("ignored")

	if strings.Contains(buf.String(), "ignored") {
		t.Error("second stop should be a no-op")
	}
}

func TestSpinner_StopWithoutStart(t *testing.T) {
	var buf syncBuffer
	s := NewSpinner(&buf, "Loading")

	s.Stop()
	if buf.String() != "\r\033[K" {
		t.Errorf("output = %q", buf.String())
	}
}
