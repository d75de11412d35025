package command

import (
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/yndnr/ztctl-go/internal/core/domain"
)

func TestMetricsExport(t *testing.T) {
	srv := newMockServer(t)
	srv.handle(http.MethodGet, "/controller/network", rawResponse(http.StatusOK, `["nw1"]`))
	srv.handle(http.MethodGet, "/controller/network/nw1", rawResponse(http.StatusOK, `{"id":"nw1"}`))
	srv.handle(http.MethodGet, "/controller/network/nw1/member", rawResponse(http.StatusOK, `{"aaaaaaaaaa":1,"bbbbbbbbbb":1}`))
	srv.handle(http.MethodGet, "/controller/network/nw1/member/aaaaaaaaaa",
		rawResponse(http.StatusOK, `{"id":"aaaaaaaaaa","authorized":true}`))
	srv.handle(http.MethodGet, "/controller/network/nw1/member/bbbbbbbbbb",
		rawResponse(http.StatusOK, `{"id":"bbbbbbbbbb"}`))

	path := filepath.Join(t.TempDir(), "ztctl.prom")
	res := run(t, srv, "metrics", "export", "--textfile", path)
	if res.err != nil {
		t.Fatalf("metrics export error = %v", res.err)
	}
	if res.stdout != "Wrote "+path+"\n" {
		t.Errorf("stdout = %q", res.stdout)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read textfile: %v", err)
	}
	text := string(data)
	for _, want := range []string{
		"ztctl_controller_networks 1",
		`ztctl_controller_members{authorized="true",network="nw1"} 1`,
		`ztctl_controller_members{authorized="false",network="nw1"} 1`,
		"ztctl_controller_scrape_success 1",
		"ztctl_client_requests_total",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("textfile missing %q:\n%s", want, text)
		}
	}
}

func TestMetricsExport_FailureIsExported(t *testing.T) {
	srv := newMockServer(t)
	srv.handle(http.MethodGet, "/controller/network", rawResponse(http.StatusInternalServerError, `{}`))

	path := filepath.Join(t.TempDir(), "ztctl.prom")
	res := run(t, srv, "metrics", "export", "--textfile", path)
	if !errors.Is(res.err, domain.ErrDaemon) {
		t.Fatalf("error = %v, want ErrDaemon", res.err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read textfile: %v", err)
	}
	if !strings.Contains(string(data), "ztctl_controller_scrape_success 0") {
		t.Errorf("textfile should record the failed scrape:\n%s", data)
	}
}

func TestMetricsExport_NeedsPath(t *testing.T) {
	srv := newMockServer(t)

	res := run(t, srv, "metrics", "export")
	if !errors.Is(res.err, domain.ErrConfig) {
		t.Errorf("error = %v, want ErrConfig", res.err)
	}
}
