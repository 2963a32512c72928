package grove

import "testing"

func TestFocusChange_Ordering(t *testing.T) {
	s := newTestSystem(t)
	a := addInteractable(s, "A")
	b := addInteractable(s, "B")
	ir := addInteractor(s, "I", HandRight)
	rec := record(s, MaskAll)

	s.Tick(0.016, []FrameSample{aim(ir, a)})
	expectEvents(t, rec.events,
		"BeforeFocusChange(->A)", "FirstFocusEntered(A)", "FocusEntered(A)", "FocusChanged(->A)",
	)

	rec.reset()
	s.Tick(0.016, []FrameSample{aim(ir, b)})
	expectEvents(t, rec.events,
		"BeforeFocusChange(A->B)",
		"FocusExited(A)", "LastFocusExited(A)",
		"FirstFocusEntered(B)", "FocusEntered(B)",
		"FocusChanged(A->B)",
	)
	if ir.Focus() != b {
		t.Errorf("Focus = %s, want B", interactableName(ir.Focus()))
	}
}

func TestFocus_SameTargetNoEvents(t *testing.T) {
	s := newTestSystem(t)
	a := addInteractable(s, "A")
	ir := addInteractor(s, "I", HandRight)
	s.Tick(0.016, []FrameSample{aim(ir, a)})

	rec := record(s, MaskAll)
	s.Tick(0.016, []FrameSample{aim(ir, a)})
	if len(rec.events) != 0 {
		t.Errorf("re-resolving the same target should emit nothing, got %v", rec.events)
	}
}

func TestFocus_AtMostOneTargetPerInteractor(t *testing.T) {
	s := newTestSystem(t)
	a := addInteractable(s, "A")
	b := addInteractable(s, "B")
	ir := addInteractor(s, "I", HandRight)

	// During A's exit, nobody may still believe they hold ir's focus besides
	// the new target.
	a.On(EventFocusExited, func(e *InteractionEvent) {
		if e.Interactor.Focus() == a {
			t.Error("focus pointer should already have moved off A")
		}
	})

	s.Tick(0.016, []FrameSample{aim(ir, a)})
	s.Tick(0.016, []FrameSample{aim(ir, b)})

	holders := 0
	for _, ia := range s.Registry().Interactables() {
		if ia.IsHeldBy(RelationFocus, ir) {
			holders++
		}
	}
	if holders != 1 {
		t.Errorf("interactor focuses %d interactables, want 1", holders)
	}
}

func TestFocus_DisabledInteractableIgnored(t *testing.T) {
	s := newTestSystem(t)
	a := addInteractable(s, "A")
	a.Enabled = false
	ir := addInteractor(s, "I", HandRight)

	s.Tick(0.016, []FrameSample{aim(ir, a)})
	if ir.Focus() != nil {
		t.Error("disabled interactable should not take focus")
	}
}

func TestFocus_DisabledInteractorLosesFocus(t *testing.T) {
	s := newTestSystem(t)
	a := addInteractable(s, "A")
	ir := addInteractor(s, "I", HandRight)
	s.Tick(0.016, []FrameSample{aim(ir, a)})

	smp := aim(ir, a)
	smp.Enabled = false
	s.Tick(0.016, []FrameSample{smp})
	if ir.Focus() != nil {
		t.Error("disabled interactor should resolve to no focus")
	}
	if a.Count(RelationFocus) != 0 {
		t.Error("A should have no focus holders")
	}
}

func TestLockFocus(t *testing.T) {
	s := newTestSystem(t)
	a := addInteractable(s, "A")
	b := addInteractable(s, "B")
	ir := addInteractor(s, "I", HandRight)
	s.Tick(0.016, []FrameSample{aim(ir, a)})

	s.LockFocus(ir, a)
	if !ir.IsFocusLocked() {
		t.Fatal("expected focus lock")
	}

	// Hit testing is suspended while locked.
	s.Tick(0.016, []FrameSample{aim(ir, b)})
	s.Tick(0.016, []FrameSample{aim(ir, nil)})
	if ir.Focus() != a {
		t.Errorf("locked focus moved to %s", interactableName(ir.Focus()))
	}

	s.UnlockFocus(ir)
	s.Tick(0.016, []FrameSample{aim(ir, b)})
	if ir.Focus() != b {
		t.Errorf("after unlock focus = %s, want B", interactableName(ir.Focus()))
	}
}

func TestLockFocus_ChangesFocusImmediately(t *testing.T) {
	s := newTestSystem(t)
	a := addInteractable(s, "A")
	b := addInteractable(s, "B")
	ir := addInteractor(s, "I", HandRight)
	s.Tick(0.016, []FrameSample{aim(ir, a)})

	rec := record(s, MaskOf(EventFocusChanged))
	s.LockFocus(ir, b)
	expectEvents(t, rec.events, "FocusChanged(A->B)")
}

func TestLockFocus_TargetRemovedUnlocks(t *testing.T) {
	s := newTestSystem(t)
	a := addInteractable(s, "A")
	b := addInteractable(s, "B")
	ir := addInteractor(s, "I", HandRight)
	s.Tick(0.016, []FrameSample{aim(ir, a)})
	s.LockFocus(ir, a)

	s.RemoveInteractable(a)
	if ir.IsFocusLocked() {
		t.Error("lock on a removed target should be released")
	}
	s.Tick(0.016, []FrameSample{aim(ir, b)})
	if ir.Focus() != b {
		t.Errorf("focus = %s, want B", interactableName(ir.Focus()))
	}
}

func TestLockFocus_NilUnlocks(t *testing.T) {
	s := newTestSystem(t)
	a := addInteractable(s, "A")
	ir := addInteractor(s, "I", HandRight)
	s.LockFocus(ir, a)
	s.LockFocus(ir, nil)
	if ir.IsFocusLocked() {
		t.Error("LockFocus(nil) should unlock")
	}
}

func TestFocusChange_NestedChangeReportsFinalTarget(t *testing.T) {
	s := newTestSystem(t)
	a := addInteractable(s, "A")
	b := addInteractable(s, "B")
	c := addInteractable(s, "C")
	ir := addInteractor(s, "I", HandRight)
	s.Tick(0.016, []FrameSample{aim(ir, a)})

	a.On(EventLastFocusExited, func(e *InteractionEvent) {
		s.LockFocus(e.Interactor, c)
	})
	rec := record(s, MaskAll)
	s.Tick(0.016, []FrameSample{aim(ir, b)})

	expectEvents(t, rec.events,
		"BeforeFocusChange(A->B)",
		"FocusExited(A)", "LastFocusExited(A)",
		"BeforeFocusChange(B->C)",
		"FirstFocusEntered(C)", "FocusEntered(C)",
		"FocusChanged(B->C)",
	)
	if ir.Focus() != c {
		t.Errorf("Focus = %s, want C", interactableName(ir.Focus()))
	}
	if b.Count(RelationFocus) != 0 {
		t.Errorf("B focus count = %d, want 0", b.Count(RelationFocus))
	}
}
