// Package common provides configuration structures and logging setup
// shared across the communication layer.
//
// The package focuses on:
//   - Configuration structures for the exchange client and the loopback peer
//   - Custom logging implementation integrated with the dragonboat logger facade
//
// Key Components:
//
//   - ClientConfig: Configuration for the exchange client, controlling
//     socket timeouts and logging.
//
//   - PeerConfig: Configuration for the loopback peer, controlling the
//     listener type, endpoint, timeouts and the optional metrics endpoint.
//
//   - Logger: Custom logging implementation that plugs into the
//     dragonboat logger factory while providing consistent formatting
//     across the application.
package common
