package wire

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"testing"
)

// TestRequestRoundTrip verifies that request payloads survive framing
// and unframing unchanged
func TestRequestRoundTrip(t *testing.T) {
	tests := map[string][]byte{
		"empty":       {},
		"single byte": {0x42},
		"json":        []byte(`{"cmd":"status"}`),
		"binary":      {0x00, 0xff, 0x13, 0x37, 0x00},
		"largest":     bytes.Repeat([]byte{0xab}, MaxMessageSize-1),
	}

	for name, payload := range tests {
		t.Run(name, func(t *testing.T) {
			req, err := NewRequest(payload)
			if err != nil {
				t.Fatalf("NewRequest failed: %v", err)
			}

			var buf bytes.Buffer
			if err := WriteRequest(&buf, req); err != nil {
				t.Fatalf("WriteRequest failed: %v", err)
			}

			decoded, err := ReadRequest(&buf)
			if err != nil {
				t.Fatalf("ReadRequest failed: %v", err)
			}

			if !bytes.Equal(decoded.Payload(), payload) {
				t.Errorf("payload changed in transit: got %d bytes, want %d bytes", len(decoded.Payload()), len(payload))
			}
		})
	}
}

// TestRequestWireFormat checks the exact byte layout of a framed request
func TestRequestWireFormat(t *testing.T) {
	req, err := NewRequest([]byte("ping"))
	if err != nil {
		t.Fatalf("NewRequest failed: %v", err)
	}

	var buf bytes.Buffer
	if err := WriteRequest(&buf, req); err != nil {
		t.Fatalf("WriteRequest failed: %v", err)
	}

	want := []byte{
		0x48, 0x4c, 0x4e, 0x4b, // magic "HLNK"
		0x00, 0x00, 0x00, 0x05, // length: payload plus marker
		'p', 'i', 'n', 'g', 0x00,
	}
	if !bytes.Equal(buf.Bytes(), want) {
		t.Errorf("unexpected wire bytes:\ngot  %#v\nwant %#v", buf.Bytes(), want)
	}
}

// TestNewRequestSizeLimit verifies the ceiling is enforced when the
// request is built, before any I/O happens
func TestNewRequestSizeLimit(t *testing.T) {
	tests := map[string]struct {
		size    int
		wantErr bool
	}{
		"fits exactly":     {MaxMessageSize - 1, false},
		"marker overflows": {MaxMessageSize, true},
		"way too large":    {MaxMessageSize + 4096, true},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := NewRequest(make([]byte, tc.size))
			if tc.wantErr && !errors.Is(err, ErrMessageTooLarge) {
				t.Errorf("expected ErrMessageTooLarge, got %v", err)
			}
			if !tc.wantErr && err != nil {
				t.Errorf("expected the request to fit, got %v", err)
			}
		})
	}
}

// TestNewRequestCopiesPayload verifies that mutating the caller's slice
// after building the request does not change the frame
func TestNewRequestCopiesPayload(t *testing.T) {
	payload := []byte("stable")

	req, err := NewRequest(payload)
	if err != nil {
		t.Fatalf("NewRequest failed: %v", err)
	}

	payload[0] = 'X'

	if !bytes.Equal(req.Payload(), []byte("stable")) {
		t.Errorf("request shares memory with the caller: %q", req.Payload())
	}
}

// TestReplyRoundTrip verifies that reply payloads survive framing and
// unframing unchanged, including the empty reply
func TestReplyRoundTrip(t *testing.T) {
	tests := map[string][]byte{
		"empty":   {},
		"text":    []byte("none"),
		"binary":  {0x00, 0x01, 0xfe, 0xff},
		"largest": bytes.Repeat([]byte{0xcd}, MaxMessageSize),
	}

	for name, payload := range tests {
		t.Run(name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := WriteReply(&buf, payload); err != nil {
				t.Fatalf("WriteReply failed: %v", err)
			}

			reply, err := ReadReply(&buf)
			if err != nil {
				t.Fatalf("ReadReply failed: %v", err)
			}

			if !bytes.Equal(reply.Payload, payload) {
				t.Errorf("payload changed in transit: got %d bytes, want %d bytes", len(reply.Payload), len(payload))
			}
		})
	}
}

// TestWriteReplySizeLimit verifies the ceiling on the return direction
func TestWriteReplySizeLimit(t *testing.T) {
	var buf bytes.Buffer

	if err := WriteReply(&buf, make([]byte, MaxMessageSize)); err != nil {
		t.Errorf("reply at the ceiling should fit, got %v", err)
	}

	err := WriteReply(&buf, make([]byte, MaxMessageSize+1))
	if !errors.Is(err, ErrMessageTooLarge) {
		t.Errorf("expected ErrMessageTooLarge, got %v", err)
	}
}

// TestReadReplyBadMagic verifies that a frame with a foreign magic
// value is rejected as unrecoverable protocol skew
func TestReadReplyBadMagic(t *testing.T) {
	var buf bytes.Buffer
	binary.Write(&buf, binary.BigEndian, uint32(0xdeadbeef))
	binary.Write(&buf, binary.BigEndian, uint32(4))
	buf.WriteString("junk")

	_, err := ReadReply(&buf)
	if !errors.Is(err, ErrBadMagic) {
		t.Errorf("expected ErrBadMagic, got %v", err)
	}
}

// TestReadReplyOversizedLength verifies that an oversized declared
// length is rejected before the payload buffer is allocated: the frames
// below carry no payload at all, so an attempt to read one would fail
// as ErrReceive instead
func TestReadReplyOversizedLength(t *testing.T) {
	tests := map[string]uint32{
		"one over the ceiling": MaxMessageSize + 1,
		"4 GiB declaration":    0xffffffff,
	}

	for name, length := range tests {
		t.Run(name, func(t *testing.T) {
			var buf bytes.Buffer
			binary.Write(&buf, binary.BigEndian, Magic)
			binary.Write(&buf, binary.BigEndian, length)

			_, err := ReadReply(&buf)
			if !errors.Is(err, ErrMessageTooLarge) {
				t.Errorf("expected ErrMessageTooLarge, got %v", err)
			}
		})
	}
}

// TestReadReplyTruncated verifies that short reads at every frame
// position surface as ErrReceive
func TestReadReplyTruncated(t *testing.T) {
	fullFrame := func() *bytes.Buffer {
		var buf bytes.Buffer
		binary.Write(&buf, binary.BigEndian, Magic)
		binary.Write(&buf, binary.BigEndian, uint32(4))
		buf.WriteString("good")
		return &buf
	}

	tests := map[string]int{
		"empty stream":   0,
		"short magic":    2,
		"missing length": 4,
		"short length":   6,
		"short payload":  10,
	}

	for name, cut := range tests {
		t.Run(name, func(t *testing.T) {
			frame := fullFrame().Bytes()[:cut]

			_, err := ReadReply(bytes.NewReader(frame))
			if !errors.Is(err, ErrReceive) {
				t.Errorf("expected ErrReceive, got %v", err)
			}
		})
	}
}

// TestReadRequestZeroLength verifies that a request frame declaring
// length zero is rejected, the length must cover at least the marker
func TestReadRequestZeroLength(t *testing.T) {
	var buf bytes.Buffer
	binary.Write(&buf, binary.BigEndian, Magic)
	binary.Write(&buf, binary.BigEndian, uint32(0))

	_, err := ReadRequest(&buf)
	if !errors.Is(err, ErrReceive) {
		t.Errorf("expected ErrReceive, got %v", err)
	}
}

// TestReadRequestChecks verifies that the request decoder applies the
// same magic and ceiling checks as the reply decoder
func TestReadRequestChecks(t *testing.T) {
	tests := map[string]struct {
		magic   uint32
		length  uint32
		wantErr error
	}{
		"bad magic": {0x0badbeef, 5, ErrBadMagic},
		"oversized": {Magic, MaxMessageSize + 1, ErrMessageTooLarge},
		"truncated": {Magic, 64, ErrReceive},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			var buf bytes.Buffer
			binary.Write(&buf, binary.BigEndian, tc.magic)
			binary.Write(&buf, binary.BigEndian, tc.length)

			_, err := ReadRequest(&buf)
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("expected %v, got %v", tc.wantErr, err)
			}
		})
	}
}

// brokenWriter accepts limit bytes, then fails
type brokenWriter struct {
	limit int
}

func (w *brokenWriter) Write(p []byte) (int, error) {
	if len(p) > w.limit {
		n := w.limit
		w.limit = 0
		return n, io.ErrClosedPipe
	}
	w.limit -= len(p)
	return len(p), nil
}

// TestWriteRequestBrokenConnection verifies that write failures at
// every frame position surface as ErrSend
func TestWriteRequestBrokenConnection(t *testing.T) {
	tests := map[string]int{
		"fails at magic":   0,
		"fails at length":  4,
		"fails at payload": 8,
	}

	for name, limit := range tests {
		t.Run(name, func(t *testing.T) {
			req, err := NewRequest([]byte("ping"))
			if err != nil {
				t.Fatalf("NewRequest failed: %v", err)
			}

			err = WriteRequest(&brokenWriter{limit: limit}, req)
			if !errors.Is(err, ErrSend) {
				t.Errorf("expected ErrSend, got %v", err)
			}
		})
	}
}

// shortWriter claims to have written fewer bytes than requested without
// reporting an error
type shortWriter struct{}

func (w *shortWriter) Write(p []byte) (int, error) {
	if len(p) > 1 {
		return len(p) - 1, nil
	}
	return len(p), nil
}

// TestWriteRequestShortWrite verifies that a short write is an error
// even when the writer reports none
func TestWriteRequestShortWrite(t *testing.T) {
	req, err := NewRequest([]byte("ping"))
	if err != nil {
		t.Fatalf("NewRequest failed: %v", err)
	}

	err = WriteRequest(&shortWriter{}, req)
	if !errors.Is(err, ErrSend) {
		t.Errorf("expected ErrSend, got %v", err)
	}
	if !errors.Is(err, io.ErrShortWrite) {
		t.Errorf("expected the short write to be preserved as the cause, got %v", err)
	}
}
