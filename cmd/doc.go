// Package cmd implements the command-line interface for the hostlink
// client. It provides a hierarchical command structure for exchanging
// requests with the host and for running a local loopback peer.
//
// The package is organized into several subpackages:
//
//   - call: Send a single request to the host and print the reply
//   - serve: Run a loopback peer that answers framed requests
//   - perf: Measure exchange latency against a backend
//   - backends: List the available transport backends
//   - util: Shared utilities for command-line processing and configuration (internal use)
//
// See hostlink -help for a list of all commands.
package cmd
