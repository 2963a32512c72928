package grove

// holderSet is an insertion-ordered set of interactors holding one relation.
type holderSet struct {
	holders []*Interactor
}

func (h *holderSet) contains(ir *Interactor) bool {
	for _, x := range h.holders {
		if x == ir {
			return true
		}
	}
	return false
}

// add inserts ir and reports whether it was absent.
func (h *holderSet) add(ir *Interactor) bool {
	if h.contains(ir) {
		return false
	}
	h.holders = append(h.holders, ir)
	return true
}

// remove deletes ir and reports whether it was present.
// Uses copy+nil to avoid retaining a dangling pointer in the backing array.
func (h *holderSet) remove(ir *Interactor) bool {
	for i, x := range h.holders {
		if x == ir {
			copy(h.holders[i:], h.holders[i+1:])
			h.holders[len(h.holders)-1] = nil
			h.holders = h.holders[:len(h.holders)-1]
			return true
		}
	}
	return false
}

// Interactable is a passive target that interactors can focus, select and
// grab. Interactables form a tree; listener traversal bubbles from a target
// up through its ancestors.
type Interactable struct {
	// Identity
	ID   uint32
	Name string

	// Hierarchy
	Parent   *Interactable
	children []*Interactable

	// Interaction
	Enabled  bool
	Collider Collider

	// Metadata
	UserData any
	EntityID uint32

	relations [relationCount]holderSet
	behaviors behaviorList
	listeners listenerRegistry
	active    bool

	sys      *System // owning system, set on registration
	order    uint64  // registration sequence, used for tie-breaks
	alive    bool
	disposed bool
}

// NewInteractable creates an enabled interactable with no collider.
func NewInteractable(name string) *Interactable {
	return &Interactable{Name: name, Enabled: true}
}

// Count returns the number of interactors currently holding rel.
func (ia *Interactable) Count(rel Relation) int {
	if rel >= relationCount {
		return 0
	}
	return len(ia.relations[rel].holders)
}

// Holders returns a copy of the interactors holding rel, in entry order.
func (ia *Interactable) Holders(rel Relation) []*Interactor {
	if rel >= relationCount {
		return nil
	}
	return append([]*Interactor(nil), ia.relations[rel].holders...)
}

// IsHeldBy reports whether ir currently holds rel on this interactable.
func (ia *Interactable) IsHeldBy(rel Relation, ir *Interactor) bool {
	if rel >= relationCount {
		return false
	}
	return ia.relations[rel].contains(ir)
}

// IsActive reports the click toggle state.
func (ia *Interactable) IsActive() bool { return ia.active }

// SetActive sets the toggle state without emitting events.
func (ia *Interactable) SetActive(active bool) { ia.active = active }

// Order returns the registration sequence number. Lower numbers were
// registered earlier and win distance ties.
func (ia *Interactable) Order() uint64 { return ia.order }

// IsAlive reports whether the interactable is registered and not disposed.
func (ia *Interactable) IsAlive() bool { return ia.alive && !ia.disposed }

// IsDisposed returns true if this interactable has been disposed.
func (ia *Interactable) IsDisposed() bool { return ia.disposed }

// --- Tree manipulation ---

// AddChild appends child to this interactable's children.
// If child already has a parent, it is removed from that parent first.
// Panics if child is nil or child is an ancestor of this interactable (cycle).
func (ia *Interactable) AddChild(child *Interactable) {
	if child == nil {
		panic("grove: cannot add nil child")
	}
	if ia.debugging() || child.debugging() {
		debugCheckDisposed(ia, "AddChild (parent)")
		debugCheckDisposed(child, "AddChild (child)")
	}
	if isAncestor(child, ia) {
		panic("grove: adding child would create a cycle")
	}
	if child.Parent != nil {
		child.Parent.removeChildByPtr(child)
	}
	child.Parent = ia
	ia.children = append(ia.children, child)
}

// RemoveChild detaches child from this interactable.
// Panics if child.Parent != ia.
func (ia *Interactable) RemoveChild(child *Interactable) {
	if child.Parent != ia {
		panic("grove: child's parent is not this interactable")
	}
	ia.removeChildByPtr(child)
	child.Parent = nil
}

// RemoveFromParent detaches this interactable from its parent.
// No-op if it has no parent.
func (ia *Interactable) RemoveFromParent() {
	if ia.Parent == nil {
		return
	}
	ia.Parent.RemoveChild(ia)
}

// Children returns the child list. The returned slice MUST NOT be mutated by the caller.
func (ia *Interactable) Children() []*Interactable {
	return ia.children
}

// Walk visits ia and its descendants in pre-order, parents before children.
// Returning false from fn skips the subtree of that node.
func (ia *Interactable) Walk(fn func(*Interactable) bool) {
	if !fn(ia) {
		return
	}
	for _, c := range ia.children {
		c.Walk(fn)
	}
}

// isAncestor reports whether candidate is an ancestor of (or equal to) node.
func isAncestor(candidate, node *Interactable) bool {
	for p := node; p != nil; p = p.Parent {
		if p == candidate {
			return true
		}
	}
	return false
}

func (ia *Interactable) removeChildByPtr(child *Interactable) {
	for i, c := range ia.children {
		if c == child {
			copy(ia.children[i:], ia.children[i+1:])
			ia.children[len(ia.children)-1] = nil
			ia.children = ia.children[:len(ia.children)-1]
			return
		}
	}
}

// Dispose detaches the interactable and marks it disposed. Registered
// interactables should go through System.RemoveInteractable instead so that
// holders exit first; a disposed interactable still listed by interactors is
// dropped from their focus on the next tick.
func (ia *Interactable) Dispose() {
	ia.dispose()
}

// dispose detaches the interactable and drops its behaviors and listeners.
func (ia *Interactable) dispose() {
	if ia.disposed {
		return
	}
	ia.RemoveFromParent()
	for _, c := range ia.children {
		c.Parent = nil
	}
	ia.children = nil
	ia.disposed = true
	ia.alive = false
	ia.behaviors.clear()
	ia.listeners.clear()
	ia.Collider = nil
	ia.UserData = nil
}
