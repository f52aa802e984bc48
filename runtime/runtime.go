package runtime

import (
	"sync"

	"go.uber.org/zap"

	hooks "github.com/wippyai/hooks-runtime"
	"github.com/wippyai/hooks-runtime/arena"
	"github.com/wippyai/hooks-runtime/scheduler"
)

// ComponentFunc is a component's render function. It is re-invoked on every
// render of its instance; the return value is the render output handed back
// to the host.
type ComponentFunc func(*Ctx) any

type Runtime struct {
	host      hooks.Host
	eq        scheduler.DepsEqual
	mu        sync.RWMutex
	instances map[hooks.InstanceID]*Instance
	nextID    hooks.InstanceID
}

// Option configures a Runtime.
type Option func(*Runtime)

// WithDepsEqual replaces the effect dependency comparison strategy for all
// instances mounted on this runtime.
func WithDepsEqual(eq scheduler.DepsEqual) Option {
	return func(r *Runtime) {
		r.eq = eq
	}
}

// New creates a runtime bound to a host renderer.
func New(host hooks.Host, opts ...Option) *Runtime {
	r := &Runtime{
		host:      host,
		eq:        scheduler.DefaultDepsEqual,
		instances: make(map[hooks.InstanceID]*Instance),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Mount creates a component instance for fn and registers it. The instance
// holds its hook records until Destroy.
func (r *Runtime) Mount(fn ComponentFunc) *Instance {
	r.mu.Lock()
	r.nextID++
	id := r.nextID
	inst := &Instance{
		id:    id,
		rt:    r,
		fn:    fn,
		arena: arena.New(),
		sched: scheduler.New(r.eq),
	}
	r.instances[id] = inst
	r.mu.Unlock()

	Logger().Debug("instance mounted", zap.Uint64("id", uint64(id)))
	return inst
}

// Get returns the mounted instance with the given id.
func (r *Runtime) Get(id hooks.InstanceID) (*Instance, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	inst, ok := r.instances[id]
	return inst, ok
}

// Len returns the number of mounted instances.
func (r *Runtime) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.instances)
}

func (r *Runtime) remove(id hooks.InstanceID) {
	r.mu.Lock()
	delete(r.instances, id)
	r.mu.Unlock()
}
