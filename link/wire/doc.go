// Package wire implements the framing protocol spoken between the
// in-guest client and the privileged host service. Every message is a
// single frame:
//
//	[magic:4][length:4][payload:length bytes]
//
// Both integers are big-endian. The magic value is a fixed constant
// shared by both peers; a mismatch means protocol or version skew (or a
// desynchronized stream) and is fatal for the connection, it is never
// resynchronized or retried. The length field is bounded by
// MaxMessageSize in both directions, and inbound frames are rejected
// before any buffer is allocated for them, so a misbehaving peer cannot
// force unbounded allocations.
//
// Requests and replies differ in one convention: the request payload
// carries a single trailing NUL marker byte which the length includes,
// while reply lengths count the payload bytes exactly. ReadRequest
// strips the marker again, so payloads round-trip bitwise.
//
// The package focuses on:
//   - Encoding requests and decoding replies for the calling side
//   - Decoding requests and encoding replies for the reply side
//   - Enforcing the magic integrity check and the size ceiling
//
// Key Components:
//
//   - Request/Reply: The two message types. A Request is built once per
//     exchange from caller-supplied bytes; a Reply owns a buffer sized
//     exactly to the length the peer declared.
//
//   - WriteRequest/ReadReply: The calling side of one exchange.
//
//   - ReadRequest/WriteReply: The reply side, used by the loopback peer.
//
// Error Handling:
//
//	All failures are reported through the sentinel errors ErrSend,
//	ErrReceive, ErrBadMagic and ErrMessageTooLarge, each wrapping the
//	underlying cause where one exists, so callers can match with
//	errors.Is and still reach the system error.
//
// Thread Safety:
//
//	The codec functions hold no state. Frames are written and read with
//	plain blocking calls, so each connection must be driven by a single
//	goroutine at a time.
package wire
