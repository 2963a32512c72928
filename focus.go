package grove

// resolveFocus picks the interactor's target for this tick.
// A focus lock wins over hit testing; a lock on a dead target is dropped.
func (s *System) resolveFocus(ir *Interactor) *Interactable {
	if ir.focusLock {
		if ir.lockTarget != nil && ir.lockTarget.IsAlive() {
			return ir.lockTarget
		}
		ir.focusLock = false
		ir.lockTarget = nil
		ir.pointer.locked = false
		return nil
	}
	if !ir.Enabled {
		return nil
	}
	if t := ir.hit.Target; t != nil && t.IsAlive() && t.Enabled {
		return t
	}
	return nil
}

// updateFocus resolves the interactor's target and, if it differs by
// identity from the previous one, runs the focus change sequence.
func (s *System) updateFocus(ir *Interactor) {
	next := s.resolveFocus(ir)
	if next == ir.focus {
		return
	}
	s.changeFocus(ir, next)
}

// changeFocus moves ir's focus to next. Listeners observe exactly
// BeforeFocusChange, the exit pair on the old target, the enter pair on the
// new target, then FocusChanged. The focus pointer is updated before any
// exit fires so that no two interactables believe they hold ir's focus.
func (s *System) changeFocus(ir *Interactor, next *Interactable) {
	prev := ir.focus
	s.emit(&InteractionEvent{Type: EventBeforeFocusChange, Interactor: ir, Target: next, Previous: prev, Hit: ir.hit})

	ir.focus = next
	if prev != nil {
		s.exit(RelationFocus, ir, prev, ir.hit)
	}
	// A handler may have moved focus again during the exit; the nested change
	// already reported the final target.
	if ir.focus != next {
		return
	}
	if next != nil {
		s.enter(RelationFocus, ir, next, ir.hit)
		if ir.focus != next {
			return
		}
	}

	s.emit(&InteractionEvent{Type: EventFocusChanged, Interactor: ir, Target: next, Previous: prev, Hit: ir.hit})
}

// LockFocus pins ir's focus on ia and suspends hit testing until
// UnlockFocus. If ia is not the current focus the change sequence runs
// immediately. A nil or dead ia unlocks instead.
func (s *System) LockFocus(ir *Interactor, ia *Interactable) {
	if ir == nil || !ir.alive || ir.losing {
		return
	}
	if ia == nil || !ia.IsAlive() {
		s.UnlockFocus(ir)
		return
	}
	ir.focusLock = true
	ir.lockTarget = ia
	if ir.focus != ia {
		s.changeFocus(ir, ia)
	}
}

// UnlockFocus resumes hit testing for ir. Focus is re-resolved on the next
// tick.
func (s *System) UnlockFocus(ir *Interactor) {
	if ir == nil {
		return
	}
	ir.focusLock = false
	ir.lockTarget = nil
	ir.pointer.locked = false
}
