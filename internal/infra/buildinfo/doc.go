// Package buildinfo provides build information for ztctl.
//
// Values are injected via ldflags:
//
//	go build -ldflags "-X github.com/yndnr/ztctl-go/internal/infra/buildinfo.Version=v0.3.0 -X github.com/yndnr/ztctl-go/internal/infra/buildinfo.Commit=abc123"
//
// The version also forms the User-Agent sent to the controller daemon.
package buildinfo
