package grove

import "github.com/go-gl/mathgl/mgl64"

// processSelect runs the select state machine for a single interactor.
// Press enters Select on the focused target (taking a focus lock when
// configured); holding and moving past the dead zone starts a drag;
// release ends the drag or, when the raw hit is still the pressed target,
// fires Click and toggles activation, then exits Select.
func (s *System) processSelect(ir *Interactor, pressed bool) {
	ps := &ir.pointer
	pos := ir.pose.Position

	switch {
	case pressed && !ps.down:
		// Just pressed. The target is captured for the whole press.
		target := ir.focus
		ps.down = true
		ps.start = pos
		ps.last = pos
		ps.dragging = false
		ps.pressTarget = target
		if target == nil {
			return
		}
		if s.cfg.LockFocusOnSelect && !ir.focusLock {
			ir.focusLock = true
			ir.lockTarget = target
			ps.locked = true
		}
		ir.selected = target
		s.enter(RelationSelect, ir, target, ir.hit)

	case !pressed && ps.down:
		target := ps.pressTarget
		if ps.dragging {
			s.emitDrag(EventDragEnd, ir, target, ps.start, pos.Sub(ps.last))
		} else if target != nil && target.IsAlive() && ir.hit.Target == target {
			s.click(ir, target)
		}
		if ir.alive {
			s.releaseSelect(ir)
		}

	case pressed && ps.down:
		if pos.ApproxEqual(ps.last) {
			return
		}
		if !ps.dragging && pos.Sub(ps.start).Len() > s.cfg.DragDeadZone {
			ps.dragging = true
			s.emitDrag(EventDragStart, ir, ps.pressTarget, ps.start, pos.Sub(ps.start))
		}
		if ps.dragging && ir.alive {
			s.emitDrag(EventDrag, ir, ps.pressTarget, ps.start, pos.Sub(ps.last))
		}
		ps.last = pos
	}
}

// releaseSelect resets the press state, drops a lock taken by the press and
// exits Select on the pressed target. Safe to call when nothing is pressed.
func (s *System) releaseSelect(ir *Interactor) {
	ps := &ir.pointer
	if ps.locked {
		if ir.lockTarget == ps.pressTarget {
			ir.focusLock = false
			ir.lockTarget = nil
		}
		ps.locked = false
	}
	ps.down = false
	ps.dragging = false
	ps.pressTarget = nil

	if sel := ir.selected; sel != nil {
		ir.selected = nil
		s.exit(RelationSelect, ir, sel, ir.hit)
	}
}

// cancelPress ends a drag in progress and releases select without a click.
func (s *System) cancelPress(ir *Interactor) {
	ps := &ir.pointer
	if ps.dragging {
		s.emitDrag(EventDragEnd, ir, ps.pressTarget, ps.start, ir.pose.Position.Sub(ps.last))
	}
	s.releaseSelect(ir)
}

// click fires Click and toggles the target's activation state, emitting
// Activated or Deactivated once per completed press.
func (s *System) click(ir *Interactor, target *Interactable) {
	s.emit(&InteractionEvent{Type: EventClick, Interactor: ir, Target: target, Hit: ir.hit})
	if !target.IsAlive() {
		return
	}
	target.active = !target.active
	t := EventDeactivated
	if target.active {
		t = EventActivated
	}
	s.emit(&InteractionEvent{Type: t, Interactor: ir, Target: target, Hit: ir.hit})
}

func (s *System) emitDrag(t EventType, ir *Interactor, target *Interactable, start, delta mgl64.Vec3) {
	s.emit(&InteractionEvent{
		Type: t, Interactor: ir, Target: target, Hit: ir.hit,
		Start: start, Delta: delta,
	})
}

// processGrab enters Grab on the focused target when the grip closes and
// exits it when the grip opens. Closing the grip over nothing grabs nothing
// for the rest of that grip, even if focus moves onto a target.
func (s *System) processGrab(ir *Interactor, pressed bool) {
	ps := &ir.pointer
	switch {
	case pressed && !ps.grabDown:
		ps.grabDown = true
		if t := ir.focus; t != nil {
			ir.grabbed = t
			s.enter(RelationGrab, ir, t, ir.hit)
		}
	case !pressed && ps.grabDown:
		ps.grabDown = false
		s.releaseGrab(ir)
	}
}

// releaseGrab exits Grab on the grabbed target, if any.
func (s *System) releaseGrab(ir *Interactor) {
	if g := ir.grabbed; g != nil {
		ir.grabbed = nil
		s.exit(RelationGrab, ir, g, ir.hit)
	}
}
