// Package feedback provides tween-driven visual feedback behaviors for
// grove interactables.
//
// A Highlight is attached to an interactable as a grove.Behavior and eases
// its Hover and Press values toward 0 or 1 as interactors come and go. Hosts
// read the values when drawing. There is no global animation manager; call
// Update yourself, or collect highlights in a Group.
package feedback

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/phanxgames/grove"
)

// Highlight animates focus and press feedback for one interactable.
type Highlight struct {
	Hover  float64 // 0 when unfocused, 1 when focused by at least one interactor
	Press  float64 // 0 when released, 1 when selected
	Active bool    // mirrors the interactable's activation toggle

	duration float32
	fn       ease.TweenFunc
	target   *grove.Interactable
	hover    *gween.Tween
	press    *gween.Tween
	handle   grove.BehaviorHandle
	stopped  bool
}

// NewHighlight creates a Highlight that eases over duration seconds with fn.
// A nil fn uses ease.OutQuad.
func NewHighlight(duration float32, fn ease.TweenFunc) *Highlight {
	if fn == nil {
		fn = ease.OutQuad
	}
	return &Highlight{duration: duration, fn: fn}
}

// Attach adds h to ia as a behavior with the given sort order.
func (h *Highlight) Attach(ia *grove.Interactable, sortOrder int) {
	h.target = ia
	h.stopped = false
	h.handle = ia.AddBehavior(h, sortOrder)
}

// Detach removes h from its interactable.
func (h *Highlight) Detach() {
	h.handle.Remove()
	h.target = nil
	h.hover = nil
	h.press = nil
}

// HandleInteraction implements grove.Behavior.
func (h *Highlight) HandleInteraction(e *grove.InteractionEvent) {
	switch e.Type {
	case grove.EventFirstFocusEntered:
		h.hover = h.tween(h.Hover, 1)
	case grove.EventLastFocusExited:
		h.hover = h.tween(h.Hover, 0)
	case grove.EventFirstSelectEntered:
		h.press = h.tween(h.Press, 1)
	case grove.EventLastSelectExited:
		h.press = h.tween(h.Press, 0)
	case grove.EventActivated:
		h.Active = true
	case grove.EventDeactivated:
		h.Active = false
	}
}

func (h *Highlight) tween(from, to float64) *gween.Tween {
	return gween.New(float32(from), float32(to), h.duration, h.fn)
}

// Update advances the running tweens by dt seconds and writes Hover and
// Press. If the interactable has been disposed, the highlight stops and no
// writes occur.
func (h *Highlight) Update(dt float32) {
	if h.stopped {
		return
	}
	if h.target != nil && h.target.IsDisposed() {
		h.stopped = true
		h.hover = nil
		h.press = nil
		return
	}
	if h.hover != nil {
		val, finished := h.hover.Update(dt)
		h.Hover = float64(val)
		if finished {
			h.hover = nil
		}
	}
	if h.press != nil {
		val, finished := h.press.Update(dt)
		h.Press = float64(val)
		if finished {
			h.press = nil
		}
	}
}

// Animating reports whether a tween is still running.
func (h *Highlight) Animating() bool {
	return h.hover != nil || h.press != nil
}

// Stopped reports whether the highlight stopped because its interactable
// was disposed.
func (h *Highlight) Stopped() bool {
	return h.stopped
}

// Group updates a set of highlights together and drops the ones whose
// interactable has been disposed.
type Group struct {
	items []*Highlight
}

// Add appends h to the group.
func (g *Group) Add(h *Highlight) {
	g.items = append(g.items, h)
}

// Len returns the number of highlights in the group.
func (g *Group) Len() int {
	return len(g.items)
}

// Update advances every highlight by dt.
func (g *Group) Update(dt float32) {
	n := 0
	for _, h := range g.items {
		h.Update(dt)
		if h.stopped {
			continue
		}
		g.items[n] = h
		n++
	}
	clear(g.items[n:])
	g.items = g.items[:n]
}
