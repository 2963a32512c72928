package grove

// buttonState describes what a synthetic sample does to a button.
type buttonState uint8

const (
	buttonKeep buttonState = iota // leave the button as it is
	buttonDown
	buttonUp
)

// syntheticSample represents a single injected input event for one
// interactor. The ray is raycast against registered colliders exactly like
// a real sampler would.
type syntheticSample struct {
	interactorID uint32
	ray          Ray
	sel, grab    buttonState
	lost         bool
}

// InjectAim queues a pose change for the interactor, keeping its buttons as
// they are. The event is consumed on the next Update.
func (s *System) InjectAim(id uint32, r Ray) {
	s.injectQueue = append(s.injectQueue, syntheticSample{interactorID: id, ray: r})
}

// InjectPress queues a select press along r.
func (s *System) InjectPress(id uint32, r Ray) {
	s.injectQueue = append(s.injectQueue, syntheticSample{interactorID: id, ray: r, sel: buttonDown})
}

// InjectRelease queues a select release along r.
func (s *System) InjectRelease(id uint32, r Ray) {
	s.injectQueue = append(s.injectQueue, syntheticSample{interactorID: id, ray: r, sel: buttonUp})
}

// InjectClick is a convenience that queues a press followed by a release
// along the same ray. Consumes two frames.
func (s *System) InjectClick(id uint32, r Ray) {
	s.InjectPress(id, r)
	s.InjectRelease(id, r)
}

// InjectGrab queues a grip close along r.
func (s *System) InjectGrab(id uint32, r Ray) {
	s.injectQueue = append(s.injectQueue, syntheticSample{interactorID: id, ray: r, grab: buttonDown})
}

// InjectUngrab queues a grip open along r.
func (s *System) InjectUngrab(id uint32, r Ray) {
	s.injectQueue = append(s.injectQueue, syntheticSample{interactorID: id, ray: r, grab: buttonUp})
}

// InjectLost queues the loss of the interactor's source.
func (s *System) InjectLost(id uint32) {
	s.injectQueue = append(s.injectQueue, syntheticSample{interactorID: id, lost: true})
}

// InjectDrag queues a full drag sequence: press along from, linearly
// interpolated moves over frames-2 intermediate frames, and release along
// to. The total sequence consumes `frames` frames. Minimum frames is 2.
func (s *System) InjectDrag(id uint32, from, to Ray, frames int) {
	if frames < 2 {
		frames = 2
	}
	s.InjectPress(id, from)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		s.InjectAim(id, Ray{
			Origin:    from.Origin.Add(to.Origin.Sub(from.Origin).Mul(t)),
			Direction: from.Direction.Add(to.Direction.Sub(from.Direction).Mul(t)),
		})
	}
	s.InjectRelease(id, to)
}

// PendingInjections returns the number of queued synthetic events.
func (s *System) PendingInjections() int {
	return len(s.injectQueue)
}

// processInjectedInput pops one event from the inject queue and appends the
// sample it describes to buf. Appended samples override sampler output for
// the same interactor.
func (s *System) processInjectedInput(buf []FrameSample) []FrameSample {
	if len(s.injectQueue) == 0 {
		return buf
	}
	evt := s.injectQueue[0]
	copy(s.injectQueue, s.injectQueue[1:])
	s.injectQueue = s.injectQueue[:len(s.injectQueue)-1]

	ir := s.registry.Interactor(evt.interactorID)
	if ir == nil {
		s.logger.Warn("injected event for unknown interactor", "id", evt.interactorID)
		return buf
	}
	if evt.lost {
		return append(buf, FrameSample{InteractorID: ir.ID, Lost: true})
	}
	sel := evt.sel.apply(ir.pointer.down)
	grab := evt.grab.apply(ir.pointer.grabDown)
	return append(buf, s.SampleRay(ir, evt.ray, sel, grab))
}

func (b buttonState) apply(current bool) bool {
	switch b {
	case buttonDown:
		return true
	case buttonUp:
		return false
	}
	return current
}
