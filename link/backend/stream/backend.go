package stream

import (
	"fmt"
	"github.com/ValentinKolb/hostlink/link/backend"
	"github.com/ValentinKolb/hostlink/link/common"
	"github.com/ValentinKolb/hostlink/link/wire"
	"github.com/lni/dragonboat/v4/logger"
	"net"
	"strconv"
	"time"
)

var Logger = logger.GetLogger("stream")

// --------------------------------------------------------------------------
// Backend
// --------------------------------------------------------------------------

// streamBackend implements backend.IBackend over stream sockets dialed
// with the net package.
type streamBackend struct {
	network string
	address string
	config  common.ClientConfig
}

// New creates a backend that dials the given network and address with
// one fresh connection per exchange. network must be "tcp" or "unix".
// For tcp the address holds the host and the per-call port completes
// it; for unix the address is the socket path and the port is ignored.
func New(network, address string, config common.ClientConfig) backend.IBackend {
	return &streamBackend{network: network, address: address, config: config}
}

// --------------------------------------------------------------------------
// Interface Methods (docu see backend.IBackend)
// --------------------------------------------------------------------------

func (b *streamBackend) Name() string {
	return b.network
}

func (b *streamBackend) Description() string {
	switch b.network {
	case "tcp":
		return "TCP Stream Communication Backend"
	case "unix":
		return "Unix Socket Communication Backend"
	default:
		return "Stream Communication Backend"
	}
}

func (b *streamBackend) Dial(port uint32) (backend.IConn, error) {
	address := b.address
	if b.network == "tcp" {
		address = net.JoinHostPort(address, strconv.FormatUint(uint64(port), 10))
	}

	conn, err := net.Dial(b.network, address)
	if err != nil {
		return nil, &backend.ConnectError{Backend: b.network, Port: port, Err: err}
	}

	Logger.Debugf("connected to %s (%s)", address, b.network)

	return newConn(conn, time.Duration(b.config.TimeoutSecond)*time.Second), nil
}

// --------------------------------------------------------------------------
// Connection Handle
// --------------------------------------------------------------------------

// streamConn drives one framed exchange over an established stream
// socket.
type streamConn struct {
	conn    net.Conn
	timeout time.Duration
}

func newConn(conn net.Conn, timeout time.Duration) *streamConn {
	return &streamConn{conn: conn, timeout: timeout}
}

// --------------------------------------------------------------------------
// Interface Methods (docu see backend.IConn)
// --------------------------------------------------------------------------

func (c *streamConn) Exchange(req *wire.Request) (*wire.Reply, error) {
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

func (c *streamConn) Close() error {
	return c.conn.Close()
}
