package grove

import (
	"math/rand/v2"

	"github.com/google/uuid"
)

// Registry owns the live interactors and interactables. Both are kept in
// registration order for deterministic iteration and indexed by id.
//
// The registry only tracks membership. System.AddInteractor and friends wrap
// it with the events and forced exits that membership changes imply.
type Registry struct {
	interactors    []*Interactor
	interactorByID map[uint32]*Interactor

	interactables    []*Interactable
	interactableByID map[uint32]*Interactable

	rng *rand.Rand
	seq uint64
}

// NewRegistry creates an empty registry. A nonzero seed makes GenerateID
// reproducible across runs.
func NewRegistry(seed uint64) *Registry {
	var rng *rand.Rand
	if seed != 0 {
		rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	}
	return &Registry{
		interactorByID:   make(map[uint32]*Interactor),
		interactableByID: make(map[uint32]*Interactable),
		rng:              rng,
	}
}

// GenerateID returns a random nonzero id not used by any registered
// interactor or interactable. Collisions are re-rolled.
func (r *Registry) GenerateID() uint32 {
	for {
		var id uint32
		if r.rng != nil {
			id = r.rng.Uint32()
		} else {
			id = rand.Uint32()
		}
		if id == 0 {
			continue
		}
		if _, ok := r.interactorByID[id]; ok {
			continue
		}
		if _, ok := r.interactableByID[id]; ok {
			continue
		}
		return id
	}
}

// AddInteractor registers ir, assigning an id if it has none. Returns false
// if ir is nil or already registered. An interactor whose preset id is taken
// by another entry is given a fresh id.
func (r *Registry) AddInteractor(ir *Interactor) bool {
	if ir == nil || r.hasInteractor(ir) {
		return false
	}
	if ir.ID == 0 || r.idTaken(ir.ID) {
		ir.ID = r.GenerateID()
	}
	r.interactors = append(r.interactors, ir)
	r.interactorByID[ir.ID] = ir
	return true
}

// RemoveInteractor unregisters ir. Returns false if it was not registered.
func (r *Registry) RemoveInteractor(ir *Interactor) bool {
	if ir == nil || !r.hasInteractor(ir) {
		return false
	}
	delete(r.interactorByID, ir.ID)
	next := make([]*Interactor, 0, len(r.interactors))
	for _, x := range r.interactors {
		if x != ir {
			next = append(next, x)
		}
	}
	r.interactors = next
	return true
}

// AddInteractable registers ia, assigning an id if it has none.
// Returns false if ia is nil, disposed or already registered.
func (r *Registry) AddInteractable(ia *Interactable) bool {
	if ia == nil || ia.disposed || r.hasInteractable(ia) {
		return false
	}
	if ia.ID == 0 || r.idTaken(ia.ID) {
		ia.ID = r.GenerateID()
	}
	r.seq++
	ia.order = r.seq
	r.interactables = append(r.interactables, ia)
	r.interactableByID[ia.ID] = ia
	return true
}

// RemoveInteractable unregisters ia. Returns false if it was not registered.
func (r *Registry) RemoveInteractable(ia *Interactable) bool {
	if ia == nil || !r.hasInteractable(ia) {
		return false
	}
	delete(r.interactableByID, ia.ID)
	next := make([]*Interactable, 0, len(r.interactables))
	for _, x := range r.interactables {
		if x != ia {
			next = append(next, x)
		}
	}
	r.interactables = next
	return true
}

// Interactors returns a snapshot of the registered interactors in
// registration order. The slice is a copy and may be kept.
func (r *Registry) Interactors() []*Interactor {
	return append([]*Interactor(nil), r.interactors...)
}

// Interactables returns a snapshot of the registered interactables in
// registration order. The slice is a copy and may be kept.
func (r *Registry) Interactables() []*Interactable {
	return append([]*Interactable(nil), r.interactables...)
}

// Interactor looks up a registered interactor by id.
func (r *Registry) Interactor(id uint32) *Interactor {
	return r.interactorByID[id]
}

// Interactable looks up a registered interactable by id.
func (r *Registry) Interactable(id uint32) *Interactable {
	return r.interactableByID[id]
}

// InteractorBySource finds the interactor bound to a host input source.
func (r *Registry) InteractorBySource(src uuid.UUID) *Interactor {
	for _, ir := range r.interactors {
		if ir.SourceID == src {
			return ir
		}
	}
	return nil
}

// NumInteractors returns the number of registered interactors.
func (r *Registry) NumInteractors() int { return len(r.interactors) }

// NumInteractables returns the number of registered interactables.
func (r *Registry) NumInteractables() int { return len(r.interactables) }

func (r *Registry) hasInteractor(ir *Interactor) bool {
	return ir.ID != 0 && r.interactorByID[ir.ID] == ir
}

func (r *Registry) hasInteractable(ia *Interactable) bool {
	return ia.ID != 0 && r.interactableByID[ia.ID] == ia
}

func (r *Registry) idTaken(id uint32) bool {
	if _, ok := r.interactorByID[id]; ok {
		return true
	}
	_, ok := r.interactableByID[id]
	return ok
}
