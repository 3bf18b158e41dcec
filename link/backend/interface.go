package backend

import (
	"errors"
	"fmt"
	"github.com/ValentinKolb/hostlink/link/wire"
)

// --------------------------------------------------------------------------
// Transport Interfaces
// --------------------------------------------------------------------------

// IBackend is the capability set of a communication transport. A
// backend opens fresh connections to the privileged peer; it never
// holds connection state itself.
type IBackend interface {
	// Name returns the short identifier under which the backend is
	// registered and selected (exact, case-sensitive match).
	Name() string

	// Description returns a human readable description for help output.
	Description() string

	// Dial opens a fresh connection to the privileged peer on the given
	// port. Failures are reported as *ConnectError with the underlying
	// system error preserved.
	Dial(port uint32) (IConn, error)
}

// IConn is a single connection to the peer. A connection carries
// exactly one request and at most one reply, then it is closed. It must
// not be shared between concurrent exchanges or reused after Close.
type IConn interface {
	// Exchange sends one request and blocks until the peer's reply is
	// decoded or the exchange fails.
	Exchange(req *wire.Request) (*wire.Reply, error)

	// Close releases the connection. The owner must call it exactly
	// once, on every path out of the exchange.
	Close() error
}

// --------------------------------------------------------------------------
// Errors
// --------------------------------------------------------------------------

var (
	// ErrUnknownBackend reports a lookup for a name no backend is
	// registered under.
	ErrUnknownBackend = errors.New("unknown backend")

	// ErrConnect matches every *ConnectError via errors.Is.
	ErrConnect = errors.New("connect failed")
)

// ConnectError reports a failed connection attempt. The underlying
// system error is reachable through errors.Unwrap.
type ConnectError struct {
	Backend string
	Port    uint32
	Err     error
}

func (e *ConnectError) Error() string {
	return fmt.Sprintf("connect failed (backend %s, port %d): %v", e.Backend, e.Port, e.Err)
}

func (e *ConnectError) Unwrap() error {
	return e.Err
}

// Is reports ErrConnect as a match so callers can test the failure kind
// without knowing the concrete type.
func (e *ConnectError) Is(target error) bool {
	return target == ErrConnect
}
