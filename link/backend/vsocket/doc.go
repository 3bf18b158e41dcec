// Package vsocket implements the live transport of the communication
// layer over AF_VSOCK stream sockets. It connects from inside a virtual
// machine to the privileged service on the host, which always listens
// under the fixed host context ID.
//
// vsock availability of the running kernel is probed lazily, exactly
// once per process, and the outcome is cached: concurrent first dials
// converge on a single probe instead of racing. A host without vsock
// support fails every dial fast with a ConnectError carrying the probe
// error.
//
// Key Components:
//
//   - vsocketBackend: backend.IBackend implementation that dials the
//     host context ID on a caller-supplied port.
//
//   - vsocketConn: Drives one framed request/reply exchange over the
//     established socket, applying the configured I/O deadline.
package vsocket
