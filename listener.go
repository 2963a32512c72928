package grove

type listener struct {
	id      uint32
	mask    EventMask
	hands   Handedness
	fn      func(*InteractionEvent)
	removed bool
}

// listenerRegistry holds listeners in registration order. Removal swaps in a
// fresh slice so a dispatch already iterating keeps a stable view; the
// removed flag stops a removed listener from firing later in that dispatch.
type listenerRegistry struct {
	listeners []*listener
	nextID    uint32
}

// CallbackHandle allows removing a registered listener.
type CallbackHandle struct {
	id  uint32
	reg *listenerRegistry
}

// Remove unregisters this callback so it no longer fires.
func (h CallbackHandle) Remove() {
	if h.reg == nil {
		return
	}
	h.reg.remove(h.id)
}

func (r *listenerRegistry) add(mask EventMask, hands Handedness, fn func(*InteractionEvent)) CallbackHandle {
	if fn == nil {
		return CallbackHandle{}
	}
	r.nextID++
	id := r.nextID
	next := make([]*listener, len(r.listeners), len(r.listeners)+1)
	copy(next, r.listeners)
	r.listeners = append(next, &listener{id: id, mask: mask, hands: hands, fn: fn})
	return CallbackHandle{id: id, reg: r}
}

func (r *listenerRegistry) remove(id uint32) {
	for i, l := range r.listeners {
		if l.id == id {
			l.removed = true
			next := make([]*listener, 0, len(r.listeners)-1)
			next = append(next, r.listeners[:i]...)
			next = append(next, r.listeners[i+1:]...)
			r.listeners = next
			return
		}
	}
}

func (r *listenerRegistry) clear() {
	for _, l := range r.listeners {
		l.removed = true
	}
	r.listeners = nil
}

// deliver runs matching listeners until the event is used. It returns false
// once the event has been consumed.
func (r *listenerRegistry) deliver(e *InteractionEvent, hand Handedness) bool {
	for _, l := range r.listeners {
		if e.used {
			return false
		}
		if l.removed || !l.mask.Has(e.Type) || !l.hands.Matches(hand) {
			continue
		}
		l.fn(e)
	}
	return !e.used
}

// --- System-level registration ---

// On registers a system-wide listener for one event type.
func (s *System) On(t EventType, fn func(*InteractionEvent)) CallbackHandle {
	return s.listeners.add(MaskOf(t), HandNone, fn)
}

// OnFiltered registers a system-wide listener for the event types in mask,
// restricted to interactors whose handedness matches hands.
func (s *System) OnFiltered(mask EventMask, hands Handedness, fn func(*InteractionEvent)) CallbackHandle {
	return s.listeners.add(mask, hands, fn)
}

// OnAny registers a system-wide listener for every event type.
func (s *System) OnAny(fn func(*InteractionEvent)) CallbackHandle {
	return s.listeners.add(MaskAll, HandNone, fn)
}

// --- Per-interactable registration ---

// On registers a listener for events targeting this interactable or bubbling
// up from one of its descendants.
func (ia *Interactable) On(t EventType, fn func(*InteractionEvent)) CallbackHandle {
	return ia.listeners.add(MaskOf(t), HandNone, fn)
}

// OnFiltered registers a listener for the event types in mask, restricted to
// interactors whose handedness matches hands.
func (ia *Interactable) OnFiltered(mask EventMask, hands Handedness, fn func(*InteractionEvent)) CallbackHandle {
	return ia.listeners.add(mask, hands, fn)
}
