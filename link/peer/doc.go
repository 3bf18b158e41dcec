// Package peer implements the reply side of the framing protocol. It
// accepts connections and answers exactly one request per connection,
// synchronously, matching the connection-per-call model of the client.
//
// The production host service is a separate system; this peer exists
// for loopback testing and for the diagnostic serve command. It is
// listener-agnostic and runs on any net.Listener (tcp, unix, vsock).
//
// Key Components:
//
//   - Peer: The accept loop. Each connection is handled in its own
//     goroutine: decode the request, invoke the handler, frame the
//     reply, close. A malformed frame or a handler error closes the
//     connection without a reply.
//
//   - HandlerFunc: Produces the reply payload for one request payload.
//
//   - EchoHandler: Replies with the request payload unchanged, which
//     makes round-trip behavior directly observable.
package peer
