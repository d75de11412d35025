// Package output provides output formatting for ztctl.
//
//   - formatter.go: Formatter interface and factory
//   - table.go: human output, plain lines or aligned tables
//   - json.go: JSON output
//   - yaml.go: YAML output
//   - spinner.go: progress animation on stderr
//
// Human output goes through the table format; json and yaml are for
// scripting and print the daemon's data with its wire field names.
package output
