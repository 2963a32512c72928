package grove

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestDebugMode_PanicsOnDisposedTreeOps(t *testing.T) {
	s := newTestSystem(t)
	s.SetDebugMode(true)

	parent := addInteractable(s, "parent")
	child := NewInteractable("child")
	child.Dispose()

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic")
		}
		msg, ok := r.(string)
		if !ok || !strings.Contains(msg, "disposed interactable") {
			t.Errorf("unexpected panic %v", r)
		}
	}()
	parent.AddChild(child)
}

func TestDebugMode_Off_NoPanic(t *testing.T) {
	s := newTestSystem(t)
	s.SetDebugMode(false)

	parent := addInteractable(s, "parent")
	child := NewInteractable("child")
	child.Dispose()
	parent.AddChild(child)
}

func TestDebugMode_LogsDispatchAndTickStats(t *testing.T) {
	s := newTestSystem(t)
	var buf bytes.Buffer
	s.SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	s.SetDebugMode(true)
	defer s.SetDebugMode(false)

	a := addInteractable(s, "A")
	ir := addInteractor(s, "I", HandRight)
	s.Tick(0.016, []FrameSample{aim(ir, a)})

	out := buf.String()
	if !strings.Contains(out, "msg=dispatch") || !strings.Contains(out, "event=FocusEntered") {
		t.Errorf("dispatch not logged: %s", out)
	}
	if !strings.Contains(out, "msg=tick") || !strings.Contains(out, "interactors=1") {
		t.Errorf("tick stats not logged: %s", out)
	}
}

func TestNewSystem_DebugConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Debug = true
	s, err := NewSystem(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if !s.debug {
		t.Error("Debug config should enable debug mode")
	}
}

func TestDebugMode_PerSystem(t *testing.T) {
	loud := newTestSystem(t)
	loud.SetDebugMode(true)
	quiet := newTestSystem(t)

	parent := addInteractable(quiet, "parent")
	child := NewInteractable("child")
	child.Dispose()

	// Debug mode on another System must not affect this tree.
	parent.AddChild(child)
	if child.Parent != parent {
		t.Error("AddChild should succeed outside debug mode")
	}
}
