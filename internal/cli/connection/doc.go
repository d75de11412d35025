// Package connection builds authenticated HTTP clients for the local
// controller daemon.
//
//   - authtoken.go: token file discovery and reading
//   - watch.go: waiting for the token file to appear
//   - http.go: HTTP client with the X-ZT1-Auth header and error mapping
//
// A client is built once per invocation. The token is read fresh each time
// and never logged; debug logs carry a short fingerprint instead.
package connection
