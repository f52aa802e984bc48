package hooks

// InstanceID identifies one mounted component instance for the lifetime of
// its mount. IDs are never reused within a runtime.
type InstanceID uint64

// Host is the outbound half of the host renderer boundary. The runtime
// calls it; implementations belong to the host render loop.
type Host interface {
	// RequestRerender signals that state owned by the instance changed while
	// no render was in progress. Calls are coalesced: however many setters
	// fire before the next render, the instance requests at most one.
	RequestRerender(id InstanceID)

	// ReportEffectError surfaces a failed effect callback or cleanup. slot is
	// the hook call position of the offending effect. The runtime has already
	// advanced the slot's dependency bookkeeping; the host decides whether to
	// log, surface, or tear down.
	ReportEffectError(id InstanceID, slot int, err error)
}

// HostFuncs adapts plain functions to the Host interface, for hosts that do
// not need a dedicated type. Nil fields are no-ops.
type HostFuncs struct {
	Rerender    func(id InstanceID)
	EffectError func(id InstanceID, slot int, err error)
}

func (h HostFuncs) RequestRerender(id InstanceID) {
	if h.Rerender != nil {
		h.Rerender(id)
	}
}

func (h HostFuncs) ReportEffectError(id InstanceID, slot int, err error) {
	if h.EffectError != nil {
		h.EffectError(id, slot, err)
	}
}
