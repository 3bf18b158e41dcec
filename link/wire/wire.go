package wire

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

const (
	// Magic is the integrity constant prefixed to every frame. It spells
	// "HLNK" and must be identical on both ends of the channel.
	Magic uint32 = 0x484C4E4B

	// MaxMessageSize is the hard ceiling for the length field of a frame
	// in either direction. The protocol carries JSON-sized control
	// messages, not bulk data.
	MaxMessageSize = 1 << 20
)

var (
	// ErrSend reports a failed or short write while framing a request.
	ErrSend = errors.New("send failed")

	// ErrReceive reports a failed or short read while decoding a frame.
	// The partially read frame is discarded, never returned.
	ErrReceive = errors.New("receive failed")

	// ErrBadMagic reports a magic value mismatch. The stream is skewed
	// or the peer speaks another protocol version; the connection cannot
	// be recovered.
	ErrBadMagic = errors.New("magic value mismatch")

	// ErrMessageTooLarge reports a message whose length field would
	// exceed MaxMessageSize, on either the send or the receive path.
	ErrMessageTooLarge = errors.New("message exceeds size limit")
)

// --------------------------------------------------------------------------
// Message Types
// --------------------------------------------------------------------------

// Request is a single outbound message. The body holds the caller's
// payload plus the trailing NUL marker that the wire length counts.
type Request struct {
	body []byte
}

// NewRequest builds a Request from caller-supplied bytes. The payload
// is copied, so later mutation by the caller cannot change the frame.
// Fails with ErrMessageTooLarge before any I/O if the wire length
// (payload plus marker) would exceed MaxMessageSize.
func NewRequest(payload []byte) (*Request, error) {
	wireLen := len(payload) + 1
	if wireLen > MaxMessageSize {
		return nil, fmt.Errorf("%w: request is %d bytes, limit is %d", ErrMessageTooLarge, wireLen, MaxMessageSize)
	}

	// The last byte stays zero, it is the marker.
	body := make([]byte, wireLen)
	copy(body, payload)

	return &Request{body: body}, nil
}

// Payload returns the request bytes without the trailing marker.
func (r *Request) Payload() []byte {
	return r.body[:len(r.body)-1]
}

// WireLen returns the value of the frame's length field: the payload
// byte count including the marker.
func (r *Request) WireLen() uint32 {
	return uint32(len(r.body))
}

// Reply is a single inbound message. Its payload buffer is sized
// exactly to the length the peer declared.
type Reply struct {
	Payload []byte
}

// --------------------------------------------------------------------------
// Calling side
// --------------------------------------------------------------------------

// WriteRequest frames one request onto w: magic, then length, then the
// payload with its marker, each as a distinct write. Any I/O error or
// short write fails as ErrSend; the frame is not recoverable and the
// connection should be abandoned.
func WriteRequest(w io.Writer, req *Request) error {
	if err := writeUint32(w, Magic); err != nil {
		return fmt.Errorf("%w: magic: %w", ErrSend, err)
	}
	if err := writeUint32(w, req.WireLen()); err != nil {
		return fmt.Errorf("%w: length: %w", ErrSend, err)
	}
	if err := writeFull(w, req.body); err != nil {
		return fmt.Errorf("%w: payload: %w", ErrSend, err)
	}
	return nil
}

// ReadReply decodes one reply frame from r. The declared length is
// checked against MaxMessageSize before the payload buffer is
// allocated, so a hostile peer cannot trigger unbounded allocations.
func ReadReply(r io.Reader) (*Reply, error) {
	if err := readMagic(r); err != nil {
		return nil, err
	}

	length, err := readUint32(r)
	if err != nil {
		return nil, fmt.Errorf("%w: length: %w", ErrReceive, err)
	}
	if length > MaxMessageSize {
		return nil, fmt.Errorf("%w: peer declared %d bytes, limit is %d", ErrMessageTooLarge, length, MaxMessageSize)
	}

	payload := make([]byte, length)
	if _, err := io.ReadFull(r, payload); err != nil {
		return nil, fmt.Errorf("%w: payload: %w", ErrReceive, err)
	}

	return &Reply{Payload: payload}, nil
}

// --------------------------------------------------------------------------
// Reply side
// --------------------------------------------------------------------------

// ReadRequest decodes one request frame from r, applying the same magic
// and size checks as ReadReply. The trailing marker remains part of the
// Request body; Payload strips it.
func ReadRequest(r io.Reader) (*Request, error) {
	if err := readMagic(r); err != nil {
		return nil, err
	}

	length, err := readUint32(r)
	if err != nil {
		return nil, fmt.Errorf("%w: length: %w", ErrReceive, err)
	}
	if length == 0 {
		return nil, fmt.Errorf("%w: request length 0 omits the payload marker", ErrReceive)
	}
	if length > MaxMessageSize {
		return nil, fmt.Errorf("%w: peer declared %d bytes, limit is %d", ErrMessageTooLarge, length, MaxMessageSize)
	}

	body := make([]byte, length)
	if _, err := io.ReadFull(r, body); err != nil {
		return nil, fmt.Errorf("%w: payload: %w", ErrReceive, err)
	}

	return &Request{body: body}, nil
}

// WriteReply frames one reply onto w. Reply lengths count the payload
// bytes exactly, there is no marker in the return direction.
func WriteReply(w io.Writer, payload []byte) error {
	if len(payload) > MaxMessageSize {
		return fmt.Errorf("%w: reply is %d bytes, limit is %d", ErrMessageTooLarge, len(payload), MaxMessageSize)
	}

	if err := writeUint32(w, Magic); err != nil {
		return fmt.Errorf("%w: magic: %w", ErrSend, err)
	}
	if err := writeUint32(w, uint32(len(payload))); err != nil {
		return fmt.Errorf("%w: length: %w", ErrSend, err)
	}
	if err := writeFull(w, payload); err != nil {
		return fmt.Errorf("%w: payload: %w", ErrSend, err)
	}
	return nil
}

// --------------------------------------------------------------------------
// Helper functions
// --------------------------------------------------------------------------

// readMagic reads and verifies the 4-byte magic at the start of a frame.
func readMagic(r io.Reader) error {
	got, err := readUint32(r)
	if err != nil {
		return fmt.Errorf("%w: magic: %w", ErrReceive, err)
	}
	if got != Magic {
		return fmt.Errorf("%w: got 0x%08x, want 0x%08x", ErrBadMagic, got, Magic)
	}
	return nil
}

func readUint32(r io.Reader) (uint32, error) {
	var buf [4]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(buf[:]), nil
}

func writeUint32(w io.Writer, v uint32) error {
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], v)
	return writeFull(w, buf[:])
}

// writeFull treats a short write as an error even when the writer
// reports none.
func writeFull(w io.Writer, p []byte) error {
	n, err := w.Write(p)
	if err != nil {
		return err
	}
	if n != len(p) {
		return io.ErrShortWrite
	}
	return nil
}
