package common

import (
	"fmt"
	"strconv"
	"strings"
)

// --------------------------------------------------------------------------
// Client configuration struct
// --------------------------------------------------------------------------

// ClientConfig holds all configuration parameters for the exchange client.
type ClientConfig struct {
	// TimeoutSecond bounds the socket I/O of a single exchange. Zero
	// disables the deadline, so a silent peer blocks the caller until
	// the connection breaks.
	TimeoutSecond int

	// Logging configuration
	LogLevel string
}

// DefaultClientConfig returns the configuration used when no flag or
// environment variable overrides it.
func DefaultClientConfig() ClientConfig {
	return ClientConfig{
		TimeoutSecond: 0,
		LogLevel:      "info",
	}
}

// String returns a formatted string representation of the configuration
func (c *ClientConfig) String() string {
	var sb strings.Builder

	// Create helper functions for consistent formatting
	addSection := func(title string) {
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("%s\n", strings.ToUpper(title)))
	}

	addField := func(name, value string) {
		sb.WriteString(fmt.Sprintf("  %-22s: %s\n", name, value))
	}

	// Client settings
	addSection("Client Configuration")
	if c.TimeoutSecond > 0 {
		addField("Timeout", fmt.Sprintf("%d sec", c.TimeoutSecond))
	} else {
		addField("Timeout", "none (block until reply)")
	}

	// Logging configuration
	addSection("Logging")
	addField("Log Level", c.LogLevel)

	return sb.String()
}

// --------------------------------------------------------------------------
// Peer configuration struct
// --------------------------------------------------------------------------

// PeerConfig holds all configuration parameters for the loopback peer.
type PeerConfig struct {
	// Transport names the listener type: tcp, unix or vsock.
	Transport string

	// Endpoint is the listen address for tcp (host:port) and unix
	// (socket path) listeners.
	Endpoint string

	// Port is the port to listen on for vsock listeners.
	Port uint32

	// TimeoutSecond bounds the socket I/O of a single exchange. Zero
	// disables deadlines.
	TimeoutSecond int

	// MetricsEndpoint, when non-empty, serves Prometheus metrics and
	// pprof on this address.
	MetricsEndpoint string

	// Logging configuration
	LogLevel string
}

// String returns a formatted string representation of the configuration
func (c *PeerConfig) String() string {
	var sb strings.Builder

	// Create helper functions for consistent formatting
	addSection := func(title string) {
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("%s\n", strings.ToUpper(title)))
	}

	addField := func(name, value string) {
		sb.WriteString(fmt.Sprintf("  %-22s: %s\n", name, value))
	}

	// Peer settings
	addSection("Peer Configuration")
	addField("Transport", c.Transport)
	if c.Transport == "vsock" {
		addField("Port", strconv.FormatUint(uint64(c.Port), 10))
	} else {
		addField("Endpoint", c.Endpoint)
	}
	if c.TimeoutSecond > 0 {
		addField("Timeout", fmt.Sprintf("%d sec", c.TimeoutSecond))
	} else {
		addField("Timeout", "none")
	}
	if c.MetricsEndpoint != "" {
		addField("Metrics Endpoint", c.MetricsEndpoint)
	}

	// Logging configuration
	addSection("Logging")
	addField("Log Level", c.LogLevel)

	return sb.String()
}
