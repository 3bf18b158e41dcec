// Package stream implements transports over plain stream sockets (tcp
// and unix). They speak the same framed protocol as the vsocket
// transport and keep its connection-per-exchange lifecycle, which makes
// them the natural counterpart to a loopback peer listening on tcp or
// unix: the full request path can be exercised on hosts without a vsock
// device.
//
// Stream backends are not part of the built-in registry. They are
// registered on demand, keyed by their network name ("tcp" or "unix").
package stream
