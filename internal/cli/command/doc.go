// Package command provides the ztctl command definitions.
//
//   - root.go: App, global flags, per-invocation setup
//   - status.go: daemon status
//   - network.go: network commands
//   - member.go: member commands
//   - metrics.go: metric export
//   - config.go: CLI configuration file
//   - shell.go: interactive shell
//
// Commands parse their arguments, call the controller client and hand a
// view to the selected output formatter.
package command
