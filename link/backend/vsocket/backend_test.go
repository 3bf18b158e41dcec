package vsocket

import (
	"bytes"
	"errors"
	"github.com/ValentinKolb/hostlink/link/backend"
	"github.com/ValentinKolb/hostlink/link/common"
	"github.com/ValentinKolb/hostlink/link/wire"
	"net"
	"sync"
	"testing"
	"time"
)

// TestConnExchange verifies one full framed exchange over an in-memory
// connection
func TestConnExchange(t *testing.T) {
	clientEnd, peerEnd := net.Pipe()
	defer peerEnd.Close()

	// scripted peer: read the request, echo its payload back
	go func() {
		req, err := wire.ReadRequest(peerEnd)
		if err != nil {
			t.Errorf("peer failed to read request: %v", err)
			return
		}
		if err := wire.WriteReply(peerEnd, req.Payload()); err != nil {
			t.Errorf("peer failed to write reply: %v", err)
		}
	}()

	conn := newConn(clientEnd, 5*time.Second)
	defer conn.Close()

	payload := []byte(`{"cmd":"status"}`)
	req, err := wire.NewRequest(payload)
	if err != nil {
		t.Fatalf("NewRequest failed: %v", err)
	}

	reply, err := conn.Exchange(req)
	if err != nil {
		t.Fatalf("Exchange failed: %v", err)
	}
	if !bytes.Equal(reply.Payload, payload) {
		t.Errorf("got reply %q, want %q", reply.Payload, payload)
	}
}

// TestConnExchangeBadMagic verifies that a peer speaking a different
// protocol version fails the exchange as ErrBadMagic
func TestConnExchangeBadMagic(t *testing.T) {
	clientEnd, peerEnd := net.Pipe()
	defer peerEnd.Close()

	go func() {
		if _, err := wire.ReadRequest(peerEnd); err != nil {
			t.Errorf("peer failed to read request: %v", err)
			return
		}
		peerEnd.Write([]byte{0xde, 0xad, 0xbe, 0xef, 0x00, 0x00, 0x00, 0x00})
	}()

	conn := newConn(clientEnd, 5*time.Second)
	defer conn.Close()

	req, err := wire.NewRequest([]byte("ping"))
	if err != nil {
		t.Fatalf("NewRequest failed: %v", err)
	}

	_, err = conn.Exchange(req)
	if !errors.Is(err, wire.ErrBadMagic) {
		t.Errorf("expected ErrBadMagic, got %v", err)
	}
}

// TestConnExchangeTimeout verifies that a silent peer trips the
// configured deadline instead of blocking forever
func TestConnExchangeTimeout(t *testing.T) {
	clientEnd, peerEnd := net.Pipe()
	defer peerEnd.Close()

	// peer reads the request and never answers
	go func() {
		_, _ = wire.ReadRequest(peerEnd)
	}()

	conn := newConn(clientEnd, 1) // one nanosecond, trips immediately
	defer conn.Close()

	req, err := wire.NewRequest([]byte("ping"))
	if err != nil {
		t.Fatalf("NewRequest failed: %v", err)
	}

	done := make(chan error, 1)
	go func() {
		_, err := conn.Exchange(req)
		done <- err
	}()

	select {
	case err := <-done:
		if err == nil {
			t.Error("expected the exchange to fail on the deadline")
		}
	case <-time.After(5 * time.Second):
		t.Error("exchange did not return, deadline had no effect")
	}
}

// TestLocalContextIDCached verifies that the availability probe runs
// once and every caller observes the same outcome
func TestLocalContextIDCached(t *testing.T) {
	type outcome struct {
		cid uint32
		err error
	}

	const numCallers = 16
	results := make(chan outcome, numCallers)

	var wg sync.WaitGroup
	for i := 0; i < numCallers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			cid, err := localContextID()
			results <- outcome{cid: cid, err: err}
		}()
	}
	wg.Wait()
	close(results)

	first := <-results
	for r := range results {
		if r.cid != first.cid || r.err != first.err {
			t.Errorf("probe outcomes diverge: (%d, %v) vs (%d, %v)", first.cid, first.err, r.cid, r.err)
		}
	}
}

// TestDialWithoutVsockSupport verifies the fast failure path on hosts
// without a vsock device
func TestDialWithoutVsockSupport(t *testing.T) {
	if _, err := localContextID(); err == nil {
		t.Skip("vsock is available on this host")
	}

	b := New(common.DefaultClientConfig())

	_, err := b.Dial(1234)
	if !errors.Is(err, backend.ErrConnect) {
		t.Errorf("expected ErrConnect, got %v", err)
	}
}
