package backend

import (
	"fmt"
	"github.com/lni/dragonboat/v4/logger"
	"github.com/puzpuzpuz/xsync/v3"
	"sort"
)

var Logger = logger.GetLogger("backend")

// Registry maps backend short names to implementations. It is populated
// once during process startup and only read afterwards; lookups from
// concurrent exchanges need no further locking.
type Registry struct {
	backends *xsync.MapOf[string, IBackend]
}

// NewRegistry creates a registry holding the given backends.
func NewRegistry(backends ...IBackend) (*Registry, error) {
	r := &Registry{
		backends: xsync.NewMapOf[string, IBackend](),
	}
	for _, b := range backends {
		if err := r.Register(b); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register adds a backend under its short name. Registering a second
// backend under an already taken name is rejected.
func (r *Registry) Register(b IBackend) error {
	if _, loaded := r.backends.LoadOrStore(b.Name(), b); loaded {
		return fmt.Errorf("backend %q already registered", b.Name())
	}
	Logger.Debugf("registered backend %q (%s)", b.Name(), b.Description())
	return nil
}

// Resolve looks up a backend by its exact, case-sensitive short name.
// Fails with ErrUnknownBackend when no backend carries the name.
func (r *Registry) Resolve(name string) (IBackend, error) {
	b, ok := r.backends.Load(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, name)
	}
	return b, nil
}

// Backends returns all registered backends sorted by name.
func (r *Registry) Backends() []IBackend {
	var all []IBackend
	r.backends.Range(func(_ string, b IBackend) bool {
		all = append(all, b)
		return true
	})
	sort.Slice(all, func(i, j int) bool { return all[i].Name() < all[j].Name() })
	return all
}
