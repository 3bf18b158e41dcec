package dummy

import (
	"github.com/ValentinKolb/hostlink/link/backend"
	"github.com/ValentinKolb/hostlink/link/wire"
)

const (
	// BackendName selects this backend in the registry.
	BackendName = "dummy"
)

var cannedReply = []byte("none")

// CannedReply returns a copy of the fixed diagnostic reply bytes.
func CannedReply() []byte {
	reply := make([]byte, len(cannedReply))
	copy(reply, cannedReply)
	return reply
}

// dummyBackend implements backend.IBackend without any I/O.
type dummyBackend struct{}

// New creates the diagnostic no-op backend.
func New() backend.IBackend {
	return &dummyBackend{}
}

// --------------------------------------------------------------------------
// Interface Methods (docu see backend.IBackend)
// --------------------------------------------------------------------------

func (b *dummyBackend) Name() string {
	return BackendName
}

func (b *dummyBackend) Description() string {
	return "Dummy Communication Backend"
}

// Dial always succeeds and allocates no real resource.
func (b *dummyBackend) Dial(_ uint32) (backend.IConn, error) {
	return &dummyConn{}, nil
}

// --------------------------------------------------------------------------
// Connection Handle
// --------------------------------------------------------------------------

type dummyConn struct{}

// Exchange ignores the request and returns the canned reply.
func (c *dummyConn) Exchange(_ *wire.Request) (*wire.Reply, error) {
	return &wire.Reply{Payload: CannedReply()}, nil
}

// Close is a no-op, there is nothing to release.
func (c *dummyConn) Close() error {
	return nil
}
