// Package domain defines the core domain models for ztctl.
//
// Domain models are value snapshots returned by the controller daemon,
// without any IO dependencies. This package contains:
//
//   - Status: daemon identity and settings (GET /status)
//   - ControllerNetwork: a controller-managed network configuration
//   - Member / MemberSummary: network membership records
//   - Errors: the client error taxonomy
//
// Optional daemon fields are pointers so that absence stays representable.
package domain
