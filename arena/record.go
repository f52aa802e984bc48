package arena

// Kind tags a hook record variant.
type Kind uint8

const (
	KindState Kind = iota + 1
	KindRef
	KindEffect
)

func (k Kind) String() string {
	switch k {
	case KindState:
		return "state"
	case KindRef:
		return "ref"
	case KindEffect:
		return "effect"
	}
	return "unknown"
}

// Record is one persisted unit of per-call-position hook data.
type Record interface {
	Kind() Kind
}

// StateRecord holds the current value of one state cell.
type StateRecord struct {
	Value any
}

func (*StateRecord) Kind() Kind { return KindState }

// RefRecord holds the stable mutable box returned by a ref hook. Box is the
// same object on every render; mutating its contents never triggers a
// re-render.
type RefRecord struct {
	Box any
}

func (*RefRecord) Kind() Kind { return KindRef }

// EffectRecord holds the dependency and cleanup bookkeeping for one effect
// slot.
//
// LastDeps == nil with DepsKnown set means the previous render declared no
// dependency array at all (the effect runs every render). A non-nil empty
// LastDeps is the run-once form. HasRun is false until the slot's first
// flush.
type EffectRecord struct {
	LastDeps  []any
	Cleanup   func()
	DepsKnown bool
	HasRun    bool
}

func (*EffectRecord) Kind() Kind { return KindEffect }
