package peer

import (
	"errors"
	"github.com/ValentinKolb/hostlink/link/common"
	"github.com/ValentinKolb/hostlink/link/wire"
	"github.com/VictoriaMetrics/metrics"
	"github.com/lni/dragonboat/v4/logger"
	"net"
	"sync"
	"time"
)

var Logger = logger.GetLogger("peer")

// HandlerFunc produces the reply payload for one request payload. An
// error closes the connection without a reply.
type HandlerFunc func(req []byte) ([]byte, error)

// EchoHandler replies with the request payload unchanged.
func EchoHandler(req []byte) ([]byte, error) {
	return req, nil
}

// Peer is the reply side of the protocol: it accepts connections and
// answers exactly one request per connection, then closes it.
type Peer struct {
	config  common.PeerConfig
	handler HandlerFunc

	mu       sync.Mutex
	listener net.Listener
	wg       sync.WaitGroup
}

// New creates a peer that answers requests with the given handler.
func New(config common.PeerConfig, handler HandlerFunc) *Peer {
	return &Peer{config: config, handler: handler}
}

// Serve accepts connections on the listener until Close is called. It
// blocks the calling goroutine and returns nil after a clean shutdown.
func (p *Peer) Serve(listener net.Listener) error {
	p.mu.Lock()
	if p.listener != nil {
		p.mu.Unlock()
		return errors.New("peer already serving")
	}
	p.listener = listener
	p.mu.Unlock()

	Logger.Infof("peer listening on %s", listener.Addr())

	for {
		conn, err := listener.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				p.wg.Wait()
				return nil
			}
			Logger.Errorf("accept error: %v", err)
			continue
		}

		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			p.handleConnection(conn)
		}()
	}
}

// Close stops the accept loop and waits for in-flight exchanges to
// finish.
func (p *Peer) Close() error {
	p.mu.Lock()
	listener := p.listener
	p.mu.Unlock()

	if listener == nil {
		return nil
	}

	err := listener.Close()
	p.wg.Wait()
	return err
}

// handleConnection answers one request, then closes the connection.
func (p *Peer) handleConnection(conn net.Conn) {
	defer conn.Close()

	if timeout := time.Duration(p.config.TimeoutSecond) * time.Second; timeout > 0 {
		if err := conn.SetDeadline(time.Now().Add(timeout)); err != nil {
			Logger.Errorf("failed to set deadline: %v", err)
			return
		}
	}

	req, err := wire.ReadRequest(conn)
	if err != nil {
		Logger.Errorf("failed to read request: %v", err)
		countRequest("bad_request")
		return
	}

	start := time.Now()
	resp, err := p.handler(req.Payload())
	if err != nil {
		Logger.Errorf("handler rejected request: %v", err)
		countRequest("handler_error")
		return
	}

	if err := wire.WriteReply(conn, resp); err != nil {
		Logger.Errorf("failed to write reply: %v", err)
		countRequest("write_error")
		return
	}

	countRequest("ok")
	Logger.Debugf("answered %d byte request with %d bytes in %s",
		len(req.Payload()), len(resp), time.Since(start))
}

// countRequest increments the per-outcome request counter.
func countRequest(status string) {
	metrics.GetOrCreateCounter(`hostlink_peer_requests_total{status="` + status + `"}`).Inc()
}
