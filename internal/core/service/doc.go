// Package service provides the controller client for ztctl.
//
// Controller wraps an authenticated HTTP requester with typed operations
// against the daemon's controller API and maps every failure to a domain
// error. It holds no per-call state and is safe for concurrent use.
package service
