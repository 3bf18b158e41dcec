// Package dummy implements the diagnostic no-op transport. It performs
// no I/O: dialing always succeeds, every exchange returns the fixed
// canned reply, and releasing is free. It lets callers exercise the
// full exchange path without a live peer.
package dummy
