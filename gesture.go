package grove

import "github.com/go-gl/mathgl/mgl64"

// gestureState tracks a two-handed manipulation of one interactable.
type gestureState struct {
	a, b        *Interactor
	initialDist float64
	prevDist    float64
}

// updateGestures runs after every interactor has been processed. An
// interactable grabbed by two or more interactors is manipulated by its two
// earliest grabbers; scale is reported relative to their distance when the
// gesture started.
func (s *System) updateGestures() {
	for _, ia := range s.registry.Interactables() {
		if !ia.IsAlive() {
			continue
		}
		g := s.gestures[ia]
		holders := ia.relations[RelationGrab].holders

		if len(holders) < 2 {
			if g != nil {
				s.endGesture(ia, g, EventGestureCompleted)
			}
			continue
		}

		a, b := holders[0], holders[1]
		if g != nil && (g.a != a || g.b != b) {
			// The pair changed; finish the old gesture before starting anew.
			s.endGesture(ia, g, EventGestureCompleted)
			g = nil
		}

		pa := a.pose.Position
		pb := b.pose.Position
		center := pa.Add(pb).Mul(0.5)
		dist := pb.Sub(pa).Len()

		if g == nil {
			g = &gestureState{a: a, b: b, initialDist: dist, prevDist: dist}
			s.gestures[ia] = g
			s.emitGesture(EventGestureStarted, a, ia, center, 1, 0)
			continue
		}

		scale := 1.0
		if g.initialDist > 0 {
			scale = dist / g.initialDist
		}
		scaleDelta := 0.0
		if g.prevDist > 0 {
			scaleDelta = dist/g.prevDist - 1.0
		}
		g.prevDist = dist
		s.emitGesture(EventGestureUpdated, a, ia, center, scale, scaleDelta)
	}
}

// endGesture removes the gesture and emits its final phase.
func (s *System) endGesture(ia *Interactable, g *gestureState, phase EventType) {
	delete(s.gestures, ia)
	center := g.a.pose.Position.Add(g.b.pose.Position).Mul(0.5)
	scale := 1.0
	if g.initialDist > 0 {
		scale = g.prevDist / g.initialDist
	}
	s.emitGesture(phase, g.a, ia, center, scale, 0)
}

// cancelGestures cancels every gesture ir takes part in.
func (s *System) cancelGestures(ir *Interactor) {
	for _, ia := range s.registry.Interactables() {
		if g := s.gestures[ia]; g != nil && (g.a == ir || g.b == ir) {
			s.endGesture(ia, g, EventGestureCanceled)
		}
	}
}

// Gesturing reports whether ia is currently being manipulated with two hands.
func (s *System) Gesturing(ia *Interactable) bool {
	return s.gestures[ia] != nil
}

func (s *System) emitGesture(t EventType, ir *Interactor, ia *Interactable, center mgl64.Vec3, scale, scaleDelta float64) {
	s.emit(&InteractionEvent{
		Type: t, Interactor: ir, Target: ia,
		Center: center, Scale: scale, ScaleDelta: scaleDelta,
	})
}
