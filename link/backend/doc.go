// Package backend defines the transport abstraction of the
// communication layer and the registry through which callers select a
// transport by its short name.
//
// The package focuses on:
//   - Defining the capability set every transport provides: open a
//     connection, perform one exchange over it, release it
//   - Name-keyed backend lookup with exact, case-sensitive matching
//   - The error values shared by all transports
//
// Key Components:
//
//   - IBackend: Interface for transport implementations. A backend is
//     immutable after construction and registered once at startup.
//
//   - IConn: A single connection to the peer. Each connection belongs
//     to exactly one exchange and is closed exactly once at its end,
//     regardless of outcome.
//
//   - Registry: The process-wide backend table. Populated during
//     startup, read-only afterwards, safe for concurrent lookups.
//
// Thread Safety:
//
//	Backends and the registry are safe for concurrent use. Connections
//	are not: an IConn is owned by the single exchange that dialed it.
package backend
