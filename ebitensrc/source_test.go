package ebitensrc

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/grove"
)

func newSystem(t *testing.T) *grove.System {
	t.Helper()
	cfg := grove.DefaultConfig()
	cfg.IDSeed = 3
	cfg.PointerExtent = 100
	s, err := grove.NewSystem(cfg)
	if err != nil {
		t.Fatal(err)
	}
	s.SetLogger(nil)
	return s
}

func TestTouchArena_SlotAllocation(t *testing.T) {
	var a touchArena
	s1 := a.slot(ebiten.TouchID(10))
	s2 := a.slot(ebiten.TouchID(20))
	if s1 != 1 || s2 != 2 {
		t.Fatalf("slots = %d,%d, want 1,2", s1, s2)
	}
	if a.slot(ebiten.TouchID(10)) != 1 {
		t.Error("existing touch should keep its slot")
	}

	a.end(1)
	if got := a.slot(ebiten.TouchID(30)); got != 3 {
		t.Errorf("ended slot must not be reused before it is freed, got %d", got)
	}
	a.free(1)
	if got := a.slot(ebiten.TouchID(40)); got != 1 {
		t.Errorf("freed slot should be reused, got %d", got)
	}
}

func TestTouchArena_Full(t *testing.T) {
	var a touchArena
	for i := 0; i < maxPointers-1; i++ {
		if a.slot(ebiten.TouchID(i+1)) < 0 {
			t.Fatalf("slot %d should be available", i)
		}
	}
	if a.slot(ebiten.TouchID(99)) != -1 {
		t.Error("expected -1 when all slots are taken")
	}
}

func TestOrthographic(t *testing.T) {
	r := Orthographic(0.5)(10, 20)
	if r.Origin != (mgl64.Vec3{5, 10, 0}) {
		t.Errorf("origin = %v", r.Origin)
	}
	if r.Direction != (mgl64.Vec3{0, 0, 1}) {
		t.Errorf("direction = %v", r.Direction)
	}
}

func TestSampleMouse_ClickOnButton(t *testing.T) {
	s := newSystem(t)
	button := grove.NewInteractable("button")
	button.Collider = grove.HitBox{Min: mgl64.Vec3{0, 0, 1}, Max: mgl64.Vec3{10, 10, 2}}
	s.AddInteractable(button)

	src := New(nil)
	clicks := 0
	s.On(grove.EventClick, func(e *grove.InteractionEvent) { clicks++ })

	s.Tick(0.016, src.sampleMouse(s, nil, 5, 5, true, false))
	mouse := src.Interactor(0)
	if mouse == nil || mouse.Kind != grove.KindMouse {
		t.Fatal("mouse interactor should be created lazily")
	}
	if mouse.Selected() != button {
		t.Error("left button should select")
	}
	s.Tick(0.016, src.sampleMouse(s, nil, 5, 5, false, false))
	if clicks != 1 {
		t.Errorf("clicks = %d, want 1", clicks)
	}
}

func TestSampleMouse_Disable(t *testing.T) {
	s := newSystem(t)
	src := New(nil)
	s.Tick(0.016, src.sampleMouse(s, nil, 0, 0, false, false))
	mouse := src.Interactor(0)

	src.SetMouseEnabled(false)
	s.Tick(0.016, src.sampleMouse(s, nil, 0, 0, false, false))
	if mouse.IsAlive() {
		t.Error("disabled mouse should be lost")
	}
	if src.Interactor(0) != nil {
		t.Error("slot should be cleared")
	}
}

func TestSampleTouches_Lifecycle(t *testing.T) {
	s := newSystem(t)
	pad := grove.NewInteractable("pad")
	pad.Collider = grove.HitBox{Min: mgl64.Vec3{0, 0, 1}, Max: mgl64.Vec3{100, 100, 2}}
	s.AddInteractable(pad)

	src := New(nil)
	var lost, clicks int
	s.On(grove.EventSourceLost, func(e *grove.InteractionEvent) { lost++ })
	s.On(grove.EventClick, func(e *grove.InteractionEvent) { clicks++ })

	touch := []touchPoint{{id: 7, x: 50, y: 50}}
	s.Tick(0.016, src.sampleTouches(s, nil, touch))
	ir := src.Interactor(1)
	if ir == nil || ir.Kind != grove.KindTouch {
		t.Fatal("touch interactor should occupy slot 1")
	}
	if ir.Selected() != pad {
		t.Error("touch down should select")
	}

	// Finger lifts: release this frame, lost on the next.
	s.Tick(0.016, src.sampleTouches(s, nil, nil))
	if clicks != 1 {
		t.Errorf("clicks = %d, want 1", clicks)
	}
	if !ir.IsAlive() || lost != 0 {
		t.Error("touch should not be lost on the release frame")
	}

	s.Tick(0.016, src.sampleTouches(s, nil, nil))
	if ir.IsAlive() || lost != 1 {
		t.Errorf("touch should be lost one frame after release (lost=%d)", lost)
	}
	if src.Interactor(1) != nil {
		t.Error("slot should be freed")
	}
	if s.Registry().NumInteractors() != 0 {
		t.Errorf("interactors left: %d", s.Registry().NumInteractors())
	}
}
