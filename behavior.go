package grove

import "reflect"

// Behavior reacts to state transitions of the interactable it is attached
// to. Behaviors run synchronously, in ascending sort order, before any
// listener sees the event.
type Behavior interface {
	HandleInteraction(e *InteractionEvent)
}

// BehaviorFunc adapts a plain function to the Behavior interface.
// Function values are not comparable, so adding the same BehaviorFunc twice
// registers it twice; use the returned handle to remove it.
type BehaviorFunc func(e *InteractionEvent)

// HandleInteraction calls f(e).
func (f BehaviorFunc) HandleInteraction(e *InteractionEvent) { f(e) }

// BehaviorFuncs is a Behavior with one optional callback per event.
// Nil fields are skipped. Attach a pointer so that double registration is
// detected.
type BehaviorFuncs struct {
	OnFirstFocusEntered  func(*InteractionEvent)
	OnFocusEntered       func(*InteractionEvent)
	OnFocusExited        func(*InteractionEvent)
	OnLastFocusExited    func(*InteractionEvent)
	OnFirstSelectEntered func(*InteractionEvent)
	OnSelectEntered      func(*InteractionEvent)
	OnSelectExited       func(*InteractionEvent)
	OnLastSelectExited   func(*InteractionEvent)
	OnFirstGrabEntered   func(*InteractionEvent)
	OnGrabEntered        func(*InteractionEvent)
	OnGrabExited         func(*InteractionEvent)
	OnLastGrabExited     func(*InteractionEvent)
	OnClick              func(*InteractionEvent)
	OnActivated          func(*InteractionEvent)
	OnDeactivated        func(*InteractionEvent)
	OnDragStart          func(*InteractionEvent)
	OnDrag               func(*InteractionEvent)
	OnDragEnd            func(*InteractionEvent)
	OnGesture            func(*InteractionEvent) // all four gesture phases
}

// HandleInteraction routes e to the matching callback.
func (b *BehaviorFuncs) HandleInteraction(e *InteractionEvent) {
	var fn func(*InteractionEvent)
	switch e.Type {
	case EventFirstFocusEntered:
		fn = b.OnFirstFocusEntered
	case EventFocusEntered:
		fn = b.OnFocusEntered
	case EventFocusExited:
		fn = b.OnFocusExited
	case EventLastFocusExited:
		fn = b.OnLastFocusExited
	case EventFirstSelectEntered:
		fn = b.OnFirstSelectEntered
	case EventSelectEntered:
		fn = b.OnSelectEntered
	case EventSelectExited:
		fn = b.OnSelectExited
	case EventLastSelectExited:
		fn = b.OnLastSelectExited
	case EventFirstGrabEntered:
		fn = b.OnFirstGrabEntered
	case EventGrabEntered:
		fn = b.OnGrabEntered
	case EventGrabExited:
		fn = b.OnGrabExited
	case EventLastGrabExited:
		fn = b.OnLastGrabExited
	case EventClick:
		fn = b.OnClick
	case EventActivated:
		fn = b.OnActivated
	case EventDeactivated:
		fn = b.OnDeactivated
	case EventDragStart:
		fn = b.OnDragStart
	case EventDrag:
		fn = b.OnDrag
	case EventDragEnd:
		fn = b.OnDragEnd
	case EventGestureStarted, EventGestureUpdated, EventGestureCompleted, EventGestureCanceled:
		fn = b.OnGesture
	}
	if fn != nil {
		fn(e)
	}
}

type behaviorEntry struct {
	id        uint32
	sortOrder int
	behavior  Behavior
	removed   bool
}

// behaviorList keeps entries sorted by sortOrder, ties in registration order.
// Mutations replace the slice so an in-flight dispatch keeps iterating the
// snapshot it started with.
type behaviorList struct {
	entries []*behaviorEntry
	nextID  uint32
}

// BehaviorHandle allows removing an attached behavior.
type BehaviorHandle struct {
	id     uint32
	target *Interactable
}

// Remove detaches the behavior. Removing twice is a no-op.
func (h BehaviorHandle) Remove() {
	if h.target == nil {
		return
	}
	h.target.behaviors.removeID(h.id)
}

// AddBehavior attaches b with the given sort key. Lower keys run first;
// equal keys run in the order they were added. Adding a behavior that is
// already attached (same comparable value) is a no-op and returns the
// existing handle.
func (ia *Interactable) AddBehavior(b Behavior, sortOrder int) BehaviorHandle {
	if b == nil {
		return BehaviorHandle{}
	}
	if e := ia.behaviors.find(b); e != nil {
		return BehaviorHandle{id: e.id, target: ia}
	}
	id := ia.behaviors.insert(b, sortOrder)
	return BehaviorHandle{id: id, target: ia}
}

// RemoveBehavior detaches b. No-op if it is not attached.
func (ia *Interactable) RemoveBehavior(b Behavior) {
	if e := ia.behaviors.find(b); e != nil {
		ia.behaviors.removeID(e.id)
	}
}

// NumBehaviors returns the number of attached behaviors.
func (ia *Interactable) NumBehaviors() int {
	return len(ia.behaviors.entries)
}

func (l *behaviorList) find(b Behavior) *behaviorEntry {
	if b == nil || !reflect.TypeOf(b).Comparable() {
		return nil
	}
	for _, e := range l.entries {
		if reflect.TypeOf(e.behavior) == reflect.TypeOf(b) && e.behavior == b {
			return e
		}
	}
	return nil
}

func (l *behaviorList) insert(b Behavior, sortOrder int) uint32 {
	l.nextID++
	e := &behaviorEntry{id: l.nextID, sortOrder: sortOrder, behavior: b}

	// Insert after every entry with a key <= sortOrder (stable).
	pos := len(l.entries)
	for i, x := range l.entries {
		if x.sortOrder > sortOrder {
			pos = i
			break
		}
	}
	next := make([]*behaviorEntry, 0, len(l.entries)+1)
	next = append(next, l.entries[:pos]...)
	next = append(next, e)
	next = append(next, l.entries[pos:]...)
	l.entries = next
	return e.id
}

func (l *behaviorList) removeID(id uint32) {
	for i, e := range l.entries {
		if e.id == id {
			e.removed = true
			next := make([]*behaviorEntry, 0, len(l.entries)-1)
			next = append(next, l.entries[:i]...)
			next = append(next, l.entries[i+1:]...)
			l.entries = next
			return
		}
	}
}

func (l *behaviorList) clear() {
	for _, e := range l.entries {
		e.removed = true
	}
	l.entries = nil
}
