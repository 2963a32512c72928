// Package ebitensrc samples Ebitengine mouse and touch input as grove
// interactors.
//
// The mouse is one interactor: left button selects, right button grabs.
// Each active touch becomes its own interactor that selects while the finger
// is down and is reported lost one frame after it lifts.
//
//	src := ebitensrc.New(ebitensrc.Orthographic(1))
//	sys.SetSampler(src)
//	// in Game.Update
//	sys.Update(1.0 / float64(ebiten.TPS()))
package ebitensrc

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/grove"
)

const maxPointers = 10 // slot 0 = mouse, 1-9 = touch

// Projector maps a screen position to a world-space ray.
type Projector func(sx, sy float64) grove.Ray

// Orthographic returns a Projector that casts along +Z from the screen
// position scaled by unitsPerPixel.
func Orthographic(unitsPerPixel float64) Projector {
	return func(sx, sy float64) grove.Ray {
		return grove.Ray{
			Origin:    mgl64.Vec3{sx * unitsPerPixel, sy * unitsPerPixel, 0},
			Direction: mgl64.Vec3{0, 0, 1},
		}
	}
}

// touchPoint is one touch reported by Ebitengine this frame.
type touchPoint struct {
	id   ebiten.TouchID
	x, y int
}

// Source is a grove.Sampler over Ebitengine pointer input.
type Source struct {
	project Projector
	mouse   bool

	interactors [maxPointers]*grove.Interactor
	lastRay     [maxPointers]grove.Ray
	touches     touchArena

	touchIDs []ebiten.TouchID
	points   []touchPoint
}

// New creates a Source. A nil projector uses Orthographic(1).
func New(project Projector) *Source {
	if project == nil {
		project = Orthographic(1)
	}
	return &Source{project: project, mouse: true}
}

// SetMouseEnabled turns the mouse interactor on or off. Disabling it reports
// the mouse as lost on the next frame.
func (src *Source) SetMouseEnabled(enabled bool) {
	src.mouse = enabled
}

// Interactor returns the interactor bound to a pointer slot, or nil.
// Slot 0 is the mouse.
func (src *Source) Interactor(slot int) *grove.Interactor {
	if slot < 0 || slot >= maxPointers {
		return nil
	}
	return src.interactors[slot]
}

// Sample implements grove.Sampler.
func (src *Source) Sample(s *grove.System, buf []grove.FrameSample) []grove.FrameSample {
	mx, my := ebiten.CursorPosition()
	left := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	right := ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight)
	buf = src.sampleMouse(s, buf, float64(mx), float64(my), left, right)

	src.touchIDs = ebiten.AppendTouchIDs(src.touchIDs[:0])
	src.points = src.points[:0]
	for _, tid := range src.touchIDs {
		tx, ty := ebiten.TouchPosition(tid)
		src.points = append(src.points, touchPoint{id: tid, x: tx, y: ty})
	}
	return src.sampleTouches(s, buf, src.points)
}

func (src *Source) sampleMouse(s *grove.System, buf []grove.FrameSample, sx, sy float64, left, right bool) []grove.FrameSample {
	ir := src.interactors[0]
	if !src.mouse {
		if ir != nil && ir.IsAlive() {
			buf = append(buf, grove.FrameSample{InteractorID: ir.ID, Lost: true})
		}
		src.interactors[0] = nil
		return buf
	}
	ir = src.ensure(s, 0, "mouse", grove.KindMouse)
	ray := src.project(sx, sy)
	src.lastRay[0] = ray
	return append(buf, s.SampleRay(ir, ray, left, right))
}

// sampleTouches reports every active touch, a release for touches that
// ended this frame, and a loss for touches that ended the frame before.
func (src *Source) sampleTouches(s *grove.System, buf []grove.FrameSample, points []touchPoint) []grove.FrameSample {
	for i := 1; i < maxPointers; i++ {
		if src.touches.state[i] != slotEnded {
			continue
		}
		if ir := src.interactors[i]; ir != nil && ir.IsAlive() {
			buf = append(buf, grove.FrameSample{InteractorID: ir.ID, Lost: true})
		}
		src.interactors[i] = nil
		src.touches.free(i)
	}

	var active [maxPointers]bool
	for _, p := range points {
		slot := src.touches.slot(p.id)
		if slot < 0 {
			continue
		}
		active[slot] = true
		ir := src.ensure(s, slot, fmt.Sprintf("touch-%d", slot), grove.KindTouch)
		ray := src.project(float64(p.x), float64(p.y))
		src.lastRay[slot] = ray
		buf = append(buf, s.SampleRay(ir, ray, true, false))
	}

	for i := 1; i < maxPointers; i++ {
		if src.touches.state[i] != slotActive || active[i] {
			continue
		}
		src.touches.end(i)
		if ir := src.interactors[i]; ir != nil && ir.IsAlive() {
			buf = append(buf, s.SampleRay(ir, src.lastRay[i], false, false))
		}
	}
	return buf
}

// ensure returns the live interactor for slot, registering a new one when
// the slot is empty or its previous interactor was removed.
func (src *Source) ensure(s *grove.System, slot int, name string, kind grove.InteractorKind) *grove.Interactor {
	if ir := src.interactors[slot]; ir != nil && ir.IsAlive() {
		return ir
	}
	ir := grove.NewInteractor(name, kind, grove.HandOther)
	s.AddInteractor(ir)
	src.interactors[slot] = ir
	return ir
}

// --- Touch slots ---

type slotState uint8

const (
	slotFree slotState = iota
	slotActive
	slotEnded // released this frame, reported lost on the next
)

// touchArena maps Ebitengine touch ids to pointer slots 1-9.
type touchArena struct {
	state [maxPointers]slotState
	ids   [maxPointers]ebiten.TouchID
}

// slot returns the existing slot for tid or allocates a new one.
// Returns -1 if every slot is taken.
func (a *touchArena) slot(tid ebiten.TouchID) int {
	for i := 1; i < maxPointers; i++ {
		if a.state[i] == slotActive && a.ids[i] == tid {
			return i
		}
	}
	for i := 1; i < maxPointers; i++ {
		if a.state[i] == slotFree {
			a.state[i] = slotActive
			a.ids[i] = tid
			return i
		}
	}
	return -1
}

func (a *touchArena) end(i int) {
	a.state[i] = slotEnded
}

func (a *touchArena) free(i int) {
	a.state[i] = slotFree
	a.ids[i] = 0
}
