package grove

// EnterRelation adds ir to ia's holder set for rel and fires the entry
// events. It is the low-level state machine operation; it does not change
// ir's focus, selection or grab targets. Entering a relation ir already
// holds is a no-op. Returns whether the holder set changed.
func (s *System) EnterRelation(rel Relation, ir *Interactor, ia *Interactable) bool {
	if ir == nil {
		return false
	}
	return s.enter(rel, ir, ia, ir.hit)
}

// ExitRelation removes ir from ia's holder set for rel and fires the exit
// events. Exiting a relation ir does not hold is a silent no-op. Returns
// whether the holder set changed.
func (s *System) ExitRelation(rel Relation, ir *Interactor, ia *Interactable) bool {
	if ir == nil {
		return false
	}
	return s.exit(rel, ir, ia, ir.hit)
}

// enter fires FirstXEntered then XEntered when the set becomes non-empty,
// XEntered alone otherwise. Interactors that are unregistered or being lost
// cannot enter.
func (s *System) enter(rel Relation, ir *Interactor, ia *Interactable, hit Hit) bool {
	if rel >= relationCount || ia == nil || !ia.IsAlive() || !ir.alive || ir.losing {
		return false
	}
	set := &ia.relations[rel]
	if !set.add(ir) {
		return false
	}
	if len(set.holders) == 1 {
		s.emit(&InteractionEvent{Type: firstEntered[rel], Interactor: ir, Target: ia, Hit: hit})
	}
	s.emit(&InteractionEvent{Type: entered[rel], Interactor: ir, Target: ia, Hit: hit})
	return true
}

// exit fires XExited then LastXExited when the set becomes empty, XExited
// alone otherwise.
func (s *System) exit(rel Relation, ir *Interactor, ia *Interactable, hit Hit) bool {
	if rel >= relationCount || ia == nil {
		return false
	}
	set := &ia.relations[rel]
	if !set.remove(ir) {
		return false
	}
	last := len(set.holders) == 0
	s.emit(&InteractionEvent{Type: exited[rel], Interactor: ir, Target: ia, Hit: hit})
	if last {
		s.emit(&InteractionEvent{Type: lastExited[rel], Interactor: ir, Target: ia, Hit: hit})
	}
	return true
}
