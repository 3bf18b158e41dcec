// Package link provides the communication layer between a management
// process running inside a virtual machine and the privileged service
// on its host. It implements a synchronous, connection-per-call
// request/reply exchange over a length-prefixed, magic-tagged binary
// framing protocol.
//
// The package is organized into several subpackages:
//
//   - common: Shared configuration structures and the logging setup
//     used across the communication layer.
//
//   - wire: The framing protocol itself, encoding requests and decoding
//     replies with a magic integrity check and a hard size ceiling in
//     both directions.
//
//   - backend: The transport abstraction (IBackend, IConn) and the
//     name-keyed registry through which callers select a transport.
//
//   - backend/vsocket: The live transport, connecting to the host over
//     an AF_VSOCK stream socket.
//
//   - backend/dummy: A no-op transport returning a canned reply, used
//     to exercise callers without a live peer.
//
//   - backend/stream: Optional TCP and unix socket transports speaking
//     the same framed protocol, registered on demand for development
//     against a peer that is not reachable over AF_VSOCK.
//
//   - client: The public entry point. One call performs one exchange:
//     resolve the backend, connect, send the request, decode the reply,
//     release the connection.
//
//   - peer: The reply side of the protocol, used for loopback testing
//     and the diagnostic serve command.
package link
