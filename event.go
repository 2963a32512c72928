package grove

import "github.com/go-gl/mathgl/mgl64"

// EventType identifies a kind of interaction event.
type EventType uint8

const (
	EventBeforeFocusChange   EventType = iota // fires before an interactor's focus target changes
	EventFocusChanged                         // fires after the focus exit/enter pair completes
	EventFirstFocusEntered                    // focus holder count went 0 -> 1
	EventFocusEntered                         // an interactor started focusing the target
	EventFocusExited                          // an interactor stopped focusing the target
	EventLastFocusExited                      // focus holder count went 1 -> 0
	EventFirstSelectEntered                   // select holder count went 0 -> 1
	EventSelectEntered                        // select pressed on the target
	EventSelectExited                         // select released (or forced off) the target
	EventLastSelectExited                     // select holder count went 1 -> 0
	EventFirstGrabEntered                     // grab holder count went 0 -> 1
	EventGrabEntered                          // grab started on the target
	EventGrabExited                           // grab released (or forced off) the target
	EventLastGrabExited                       // grab holder count went 1 -> 0
	EventClick                                // select down then up on the same target without dragging
	EventActivated                            // click toggled the target on
	EventDeactivated                          // click toggled the target off
	EventDragStart                            // select held and moved beyond the drag dead zone
	EventDrag                                 // fires each tick while dragging
	EventDragEnd                              // select released (or lost) after dragging
	EventGestureStarted                       // two interactors grab the same target
	EventGestureUpdated                       // fires each tick while the two-handed gesture holds
	EventGestureCompleted                     // one of the two grabbers released
	EventGestureCanceled                      // a grabber was lost or the target removed
	EventSourceDetected                       // an interactor was registered
	EventSourceLost                           // an interactor is about to be unregistered

	eventTypeCount
)

var eventTypeNames = [...]string{
	EventBeforeFocusChange:  "BeforeFocusChange",
	EventFocusChanged:       "FocusChanged",
	EventFirstFocusEntered:  "FirstFocusEntered",
	EventFocusEntered:       "FocusEntered",
	EventFocusExited:        "FocusExited",
	EventLastFocusExited:    "LastFocusExited",
	EventFirstSelectEntered: "FirstSelectEntered",
	EventSelectEntered:      "SelectEntered",
	EventSelectExited:       "SelectExited",
	EventLastSelectExited:   "LastSelectExited",
	EventFirstGrabEntered:   "FirstGrabEntered",
	EventGrabEntered:        "GrabEntered",
	EventGrabExited:         "GrabExited",
	EventLastGrabExited:     "LastGrabExited",
	EventClick:              "Click",
	EventActivated:          "Activated",
	EventDeactivated:        "Deactivated",
	EventDragStart:          "DragStart",
	EventDrag:               "Drag",
	EventDragEnd:            "DragEnd",
	EventGestureStarted:     "GestureStarted",
	EventGestureUpdated:     "GestureUpdated",
	EventGestureCompleted:   "GestureCompleted",
	EventGestureCanceled:    "GestureCanceled",
	EventSourceDetected:     "SourceDetected",
	EventSourceLost:         "SourceLost",
}

func (t EventType) String() string {
	if t < eventTypeCount {
		return eventTypeNames[t]
	}
	return "Unknown"
}

// EventMask is a set of event types, one bit per EventType.
type EventMask uint32

// MaskAll matches every event type.
const MaskAll EventMask = 1<<eventTypeCount - 1

// MaskOf builds a mask from the given event types.
func MaskOf(types ...EventType) EventMask {
	var m EventMask
	for _, t := range types {
		m |= 1 << t
	}
	return m
}

// Has reports whether t is in the mask.
func (m EventMask) Has(t EventType) bool {
	return m&(1<<t) != 0
}

// relation event tables, indexed by Relation.
var (
	firstEntered = [relationCount]EventType{EventFirstFocusEntered, EventFirstSelectEntered, EventFirstGrabEntered}
	entered      = [relationCount]EventType{EventFocusEntered, EventSelectEntered, EventGrabEntered}
	exited       = [relationCount]EventType{EventFocusExited, EventSelectExited, EventGrabExited}
	lastExited   = [relationCount]EventType{EventLastFocusExited, EventLastSelectExited, EventLastGrabExited}
)

// InteractionEvent carries one dispatched event. Events are delivered
// synchronously and must not be retained past the handler call.
type InteractionEvent struct {
	Type       EventType
	Interactor *Interactor
	Target     *Interactable // interactable the event is about (new target for focus changes)
	Previous   *Interactable // old target, valid for BeforeFocusChange and FocusChanged
	Hit        Hit
	Time       float64 // accumulated tick time in seconds

	// Drag fields (valid for EventDragStart, EventDrag, EventDragEnd)
	Start mgl64.Vec3
	Delta mgl64.Vec3

	// Gesture fields (valid for EventGesture*)
	Center     mgl64.Vec3
	Scale      float64
	ScaleDelta float64

	used bool
}

// Use marks the event consumed. Listeners later in the traversal are skipped.
func (e *InteractionEvent) Use() {
	e.used = true
}

// Used reports whether a listener consumed the event.
func (e *InteractionEvent) Used() bool {
	return e.used
}

// EntityStore is the interface for optional ECS integration.
// When set on a System, interaction events are forwarded to the ECS.
type EntityStore interface {
	EmitEvent(event InteractionEvent)
}
