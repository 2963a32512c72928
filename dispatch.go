package grove

// systemOnly reports whether t is a system-wide notification that is not
// delivered to behaviors or bubbled through the interactable tree.
func systemOnly(t EventType) bool {
	switch t {
	case EventBeforeFocusChange, EventFocusChanged, EventSourceDetected, EventSourceLost:
		return true
	}
	return false
}

// emit delivers e synchronously: behaviors of the target first, then the
// listener traversal (system listeners, target, ancestors) until the event is
// used, then the ECS bridge. Handler panics propagate to the caller of Tick.
func (s *System) emit(e *InteractionEvent) {
	e.Time = s.elapsed
	s.stats.events++

	hand := HandNone
	if e.Interactor != nil {
		hand = e.Interactor.Handedness
	}
	target := e.Target
	local := target != nil && !systemOnly(e.Type)

	if s.debug {
		s.logger.Debug("dispatch",
			"event", e.Type.String(),
			"interactor", interactorName(e.Interactor),
			"target", interactableName(target))
	}

	if local && target.IsAlive() {
		for _, b := range target.behaviors.entries {
			if !target.IsAlive() {
				break
			}
			if b.removed {
				continue
			}
			b.behavior.HandleInteraction(e)
		}
	}

	if s.listeners.deliver(e, hand) && local {
		for n := target; n != nil; n = n.Parent {
			if n.disposed {
				break
			}
			if !n.listeners.deliver(e, hand) {
				break
			}
		}
	}

	s.emitToStore(e)
}

// emitToStore forwards the event to the ECS bridge. Events about an
// interactable are only forwarded when it carries an EntityID.
func (s *System) emitToStore(e *InteractionEvent) {
	if s.store == nil {
		return
	}
	if e.Target != nil && e.Target.EntityID == 0 {
		return
	}
	s.store.EmitEvent(*e)
}

func interactorName(ir *Interactor) string {
	if ir == nil {
		return ""
	}
	return ir.Name
}

func interactableName(ia *Interactable) string {
	if ia == nil {
		return ""
	}
	return ia.Name
}
