// Package main provides the entry point for ztctl.
//
// ztctl manages networks on the local ZeroTier controller through the
// daemon's HTTP API, authenticating with the node's auth token:
//
//	ztctl status
//	ztctl list-networks
//	ztctl create-network
//	ztctl network-info 8056c2e21c000001
//	ztctl -o json list-members 8056c2e21c000001
//
// Any error is printed to stderr and exits with status 1.
package main
