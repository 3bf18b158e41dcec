// Package client implements the request side of the host link: a
// caller hands it a backend name, a port and a request payload, and
// gets back the peer's reply payload or an error.
//
// The package focuses on:
//   - Resolving backend names against a registry of transports
//   - Framing requests and decoding replies via the wire package
//   - Releasing every dialed connection exactly once, on success and
//     on every error path
//
// Key Components:
//
//   - Client: The orchestrator. Its Exchange method performs the full
//     resolve, frame, dial, exchange, release cycle for one request.
//
//   - DefaultRegistry: Factory for a registry holding the built-in
//     backends (vsocket and dummy). Callers with custom transports can
//     assemble their own registry and pass it to NewWithRegistry.
//
// Usage Example:
//
//	// Configure and create the client
//	config := common.DefaultClientConfig()
//	c := client.New(config)
//
//	// Exchange one request with the host
//	reply, err := c.Exchange("vsocket", 2049, []byte(`{"cmd":"status"}`))
//	if err != nil {
//	  log.Fatal(err)
//	}
//	fmt.Printf("host replied: %s\n", reply)
//
// Error Handling:
//
// Every failure is reported as a typed error that callers can test
// with errors.Is: backend.ErrUnknownBackend, backend.ErrConnect,
// wire.ErrSend, wire.ErrReceive, wire.ErrBadMagic and
// wire.ErrMessageTooLarge. Connection failures additionally carry the
// backend name and port via backend.ConnectError.
//
// Thread Safety:
//
//	A Client is stateless apart from its registry and can be used
//	concurrently from multiple goroutines. Every Exchange call dials
//	its own connection.
package client
