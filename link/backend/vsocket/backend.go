package vsocket

import (
	"fmt"
	"github.com/ValentinKolb/hostlink/link/backend"
	"github.com/ValentinKolb/hostlink/link/common"
	"github.com/ValentinKolb/hostlink/link/wire"
	"github.com/lni/dragonboat/v4/logger"
	"github.com/mdlayher/vsock"
	"net"
	"sync"
	"time"
)

var Logger = logger.GetLogger("vsocket")

const (
	// BackendName selects this backend in the registry.
	BackendName = "vsocket"

	// hostCID is the fixed context ID of the privileged host peer.
	hostCID = vsock.Host
)

// --------------------------------------------------------------------------
// vsock availability probe
// --------------------------------------------------------------------------

// The probe runs exactly once per process. Concurrent first dials must
// converge on a single resolution.
var (
	probeOnce sync.Once
	probeCID  uint32
	probeErr  error
)

// localContextID resolves the local vsock context ID on first use and
// caches the outcome for the life of the process.
func localContextID() (uint32, error) {
	probeOnce.Do(func() {
		probeCID, probeErr = vsock.ContextID()
		if probeErr != nil {
			Logger.Errorf("vsock probe failed: %v", probeErr)
			return
		}
		Logger.Infof("vsock available, local context ID %d", probeCID)
	})
	return probeCID, probeErr
}

// --------------------------------------------------------------------------
// Backend
// --------------------------------------------------------------------------

// vsocketBackend implements backend.IBackend over AF_VSOCK stream
// sockets to the host.
type vsocketBackend struct {
	config common.ClientConfig
}

// New creates the live transport backend.
func New(config common.ClientConfig) backend.IBackend {
	return &vsocketBackend{config: config}
}

// --------------------------------------------------------------------------
// Interface Methods (docu see backend.IBackend)
// --------------------------------------------------------------------------

func (b *vsocketBackend) Name() string {
	return BackendName
}

func (b *vsocketBackend) Description() string {
	return "vSocket Communication Backend"
}

func (b *vsocketBackend) Dial(port uint32) (backend.IConn, error) {
	if _, err := localContextID(); err != nil {
		return nil, &backend.ConnectError{Backend: BackendName, Port: port, Err: err}
	}

	conn, err := vsock.Dial(hostCID, port, nil)
	if err != nil {
		return nil, &backend.ConnectError{Backend: BackendName, Port: port, Err: err}
	}

	Logger.Debugf("connected to host context ID %d on port %d", hostCID, port)

	return newConn(conn, time.Duration(b.config.TimeoutSecond)*time.Second), nil
}

// --------------------------------------------------------------------------
// Connection Handle
// --------------------------------------------------------------------------

// vsocketConn drives one framed exchange over an established stream
// socket.
type vsocketConn struct {
	conn    net.Conn
	timeout time.Duration
}

func newConn(conn net.Conn, timeout time.Duration) *vsocketConn {
	return &vsocketConn{conn: conn, timeout: timeout}
}

// --------------------------------------------------------------------------
// Interface Methods (docu see backend.IConn)
// --------------------------------------------------------------------------

func (c *vsocketConn) Exchange(req *wire.Request) (*wire.Reply, error) {
	if c.timeout > 0 {
		if err := c.conn.SetDeadline(time.Now().Add(c.timeout)); err != nil {
			return nil, fmt.Errorf("%w: deadline: %w", wire.ErrSend, err)
		}
	}

	if err := wire.WriteRequest(c.conn, req); err != nil {
		return nil, err
	}
	return wire.ReadReply(c.conn)
}

func (c *vsocketConn) Close() error {
	return c.conn.Close()
}
