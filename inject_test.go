package grove

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func newInjectScene(t *testing.T) (*System, *Interactable, *Interactor) {
	t.Helper()
	s := newTestSystem(t)
	a := addInteractable(s, "A")
	a.Collider = HitSphere{Center: mgl64.Vec3{0, 0, 3}, Radius: 1}
	ir := addInteractor(s, "I", HandRight)
	return s, a, ir
}

func TestInjectClick(t *testing.T) {
	s, a, ir := newInjectScene(t)
	rec := record(s, MaskOf(EventClick, EventActivated))

	s.InjectClick(ir.ID, Ray{Direction: forward})
	if s.PendingInjections() != 2 {
		t.Fatalf("pending = %d, want 2", s.PendingInjections())
	}

	s.Update(0.016)
	if s.PendingInjections() != 1 {
		t.Errorf("one event should be consumed per Update, pending = %d", s.PendingInjections())
	}
	if ir.Selected() != a {
		t.Error("press should select A")
	}
	s.Update(0.016)

	expectEvents(t, rec.events, "Click(A)", "Activated(A)")
	if s.PendingInjections() != 0 {
		t.Error("queue should be drained")
	}
}

func TestInjectDrag(t *testing.T) {
	s, _, ir := newInjectScene(t)

	var types []EventType
	s.OnFiltered(MaskOf(EventDragStart, EventDrag, EventDragEnd, EventClick), HandNone, func(e *InteractionEvent) {
		types = append(types, e.Type)
	})

	s.InjectDrag(ir.ID,
		Ray{Direction: forward},
		Ray{Origin: mgl64.Vec3{0.5, 0, 0}, Direction: forward},
		4)
	if s.PendingInjections() != 4 {
		t.Fatalf("pending = %d, want 4", s.PendingInjections())
	}
	for i := 0; i < 4; i++ {
		s.Update(0.016)
	}

	want := []EventType{EventDragStart, EventDrag, EventDrag, EventDragEnd}
	if len(types) != len(want) {
		t.Fatalf("got %v, want %v", types, want)
	}
	for i := range want {
		if types[i] != want[i] {
			t.Errorf("event %d = %v, want %v", i, types[i], want[i])
		}
	}
}

func TestInjectDrag_MinimumFrames(t *testing.T) {
	s, _, ir := newInjectScene(t)
	s.InjectDrag(ir.ID, Ray{Direction: forward}, Ray{Direction: forward}, 0)
	if s.PendingInjections() != 2 {
		t.Errorf("pending = %d, want 2", s.PendingInjections())
	}
}

func TestInjectGrabAndAimKeepButtons(t *testing.T) {
	s, a, ir := newInjectScene(t)

	s.InjectGrab(ir.ID, Ray{Direction: forward})
	s.InjectAim(ir.ID, Ray{Origin: mgl64.Vec3{0.2, 0, 0}, Direction: forward})
	s.Update(0.016)
	s.Update(0.016)
	if ir.Grabbed() != a {
		t.Error("aim should keep the grip closed")
	}

	s.InjectUngrab(ir.ID, Ray{Direction: forward})
	s.Update(0.016)
	if ir.Grabbed() != nil {
		t.Error("ungrab should release")
	}
}

func TestInjectLost(t *testing.T) {
	s, a, ir := newInjectScene(t)
	s.InjectAim(ir.ID, Ray{Direction: forward})
	s.InjectLost(ir.ID)
	s.Update(0.016)
	if ir.Focus() != a {
		t.Fatal("aim should focus A")
	}
	s.Update(0.016)
	if ir.IsAlive() || s.Registry().Interactor(ir.ID) != nil {
		t.Error("lost interactor should be removed")
	}
	if a.Count(RelationFocus) != 0 {
		t.Error("A should have no focus holders")
	}
}

func TestInject_UnknownInteractorDropped(t *testing.T) {
	s, _, ir := newInjectScene(t)
	s.InjectAim(ir.ID+1, Ray{Direction: forward})
	s.Update(0.016)
	if s.PendingInjections() != 0 {
		t.Error("event for an unknown interactor should still be consumed")
	}
}
