package client

import (
	"fmt"
	"github.com/ValentinKolb/hostlink/link/backend"
	"github.com/ValentinKolb/hostlink/link/backend/dummy"
	"github.com/ValentinKolb/hostlink/link/backend/vsocket"
	"github.com/ValentinKolb/hostlink/link/common"
	"github.com/ValentinKolb/hostlink/link/wire"
	"github.com/VictoriaMetrics/metrics"
	"github.com/lni/dragonboat/v4/logger"
)

var (
	Logger = logger.GetLogger("client")
)

// DefaultRegistry creates a registry holding the built-in backends.
func DefaultRegistry(config common.ClientConfig) *backend.Registry {
	registry, err := backend.NewRegistry(
		vsocket.New(config),
		dummy.New(),
	)
	if err != nil {
		// the built-in backends have distinct names
		panic(err)
	}
	return registry
}

// Client is the request orchestrator. It resolves backend names,
// frames requests and guarantees that every dialed connection is
// released exactly once.
type Client struct {
	registry *backend.Registry
}

// New creates a client with the built-in backends (vsocket and dummy).
func New(config common.ClientConfig) *Client {
	return NewWithRegistry(DefaultRegistry(config))
}

// NewWithRegistry creates a client that resolves backend names against
// the given registry instead of the built-in one.
func NewWithRegistry(registry *backend.Registry) *Client {
	return &Client{registry: registry}
}

// Exchange sends one request to the named backend on the given port
// and returns the reply payload. A connection is dialed per call, used
// for exactly one request/reply pair and always released before the
// method returns, whether the exchange succeeded or not.
func (c *Client) Exchange(backendName string, port uint32, request []byte) ([]byte, error) {
	b, err := c.registry.Resolve(backendName)
	if err != nil {
		countExchange(backendName, "unknown_backend")
		return nil, err
	}

	req, err := wire.NewRequest(request)
	if err != nil {
		countExchange(backendName, "oversized")
		return nil, err
	}

	conn, err := b.Dial(port)
	if err != nil {
		countExchange(backendName, "connect_error")
		return nil, err
	}
	defer func() {
		if err := conn.Close(); err != nil {
			Logger.Warningf("failed to release %s connection: %v", backendName, err)
		}
	}()

	reply, err := conn.Exchange(req)
	if err != nil {
		countExchange(backendName, "exchange_error")
		return nil, err
	}

	countExchange(backendName, "ok")
	Logger.Debugf("exchanged %d byte request for %d byte reply (backend=%s port=%d)",
		len(request), len(reply.Payload), backendName, port)

	return reply.Payload, nil
}

// countExchange increments the per-backend, per-outcome exchange counter.
func countExchange(backendName, status string) {
	metrics.GetOrCreateCounter(
		fmt.Sprintf(`hostlink_exchanges_total{backend=%q,status=%q}`, backendName, status),
	).Inc()
}
