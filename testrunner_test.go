package grove

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestLoadTestScript_Errors(t *testing.T) {
	tests := []struct {
		name string
		json string
	}{
		{"invalid json", `{`},
		{"no steps", `{"steps":[]}`},
		{"unknown action", `{"steps":[{"action":"teleport"}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadTestScript([]byte(tt.json)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestTestRunner_ClickScript(t *testing.T) {
	s := newTestSystem(t)
	var buf bytes.Buffer
	s.SetLogger(slog.New(slog.NewTextHandler(&buf, nil)))

	a := addInteractable(s, "A")
	a.Collider = HitSphere{Center: mgl64.Vec3{0, 0, 3}, Radius: 1}
	ir := NewInteractor("I", KindControllerRay, HandRight)
	ir.ID = 1
	s.AddInteractor(ir)

	runner, err := LoadTestScript([]byte(`{"steps":[
		{"action":"click","interactor":1,"direction":[0,0,1]},
		{"action":"wait","frames":2},
		{"action":"snapshot","label":"after-click"}
	]}`))
	if err != nil {
		t.Fatalf("LoadTestScript: %v", err)
	}
	s.SetTestRunner(runner)

	for i := 0; i < 20 && !runner.Done(); i++ {
		s.Update(0.016)
	}
	if !runner.Done() {
		t.Fatal("runner did not finish")
	}
	if !a.IsActive() {
		t.Error("scripted click should activate A")
	}
	out := buf.String()
	if !strings.Contains(out, "label=after-click") || !strings.Contains(out, "focus=A") {
		t.Errorf("snapshot not logged: %s", out)
	}
}

func TestTestRunner_DragAndLose(t *testing.T) {
	s := newTestSystem(t)
	a := addInteractable(s, "A")
	a.Collider = HitBox{Min: mgl64.Vec3{-1, -1, 2}, Max: mgl64.Vec3{1, 1, 3}}
	ir := NewInteractor("I", KindHandRay, HandLeft)
	ir.ID = 3
	s.AddInteractor(ir)

	drags := 0
	s.On(EventDragStart, func(e *InteractionEvent) { drags++ })
	lost := 0
	s.On(EventSourceLost, func(e *InteractionEvent) { lost++ })

	runner, err := LoadTestScript([]byte(`{"steps":[
		{"action":"drag","interactor":3,"origin":[0,0,0],"toOrigin":[0.5,0,0],"frames":5},
		{"action":"lose","interactor":3}
	]}`))
	if err != nil {
		t.Fatal(err)
	}
	s.SetTestRunner(runner)
	for i := 0; i < 30 && !runner.Done(); i++ {
		s.Update(0.016)
	}

	if drags != 1 {
		t.Errorf("drags = %d, want 1", drags)
	}
	if lost != 1 {
		t.Errorf("lost = %d, want 1", lost)
	}
	if a.Count(RelationSelect) != 0 {
		t.Error("select should have ended")
	}
}

func TestStepRay_Defaults(t *testing.T) {
	r := stepRay(nil, nil)
	if r.Direction != (mgl64.Vec3{0, 0, 1}) || r.Origin != (mgl64.Vec3{}) {
		t.Errorf("defaults = %+v", r)
	}
	d := mgl64.Vec3{0, 3, 0}
	r = stepRay(nil, &d)
	if !r.Direction.ApproxEqual(mgl64.Vec3{0, 1, 0}) {
		t.Errorf("direction should be normalized, got %v", r.Direction)
	}
}
