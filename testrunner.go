package grove

import (
	"encoding/json"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// testStep represents a single action in a test script.
type testStep struct {
	Action      string      `json:"action"`
	Label       string      `json:"label,omitempty"`
	Interactor  uint32      `json:"interactor,omitempty"`
	Origin      *mgl64.Vec3 `json:"origin,omitempty"`
	Direction   *mgl64.Vec3 `json:"direction,omitempty"`
	ToOrigin    *mgl64.Vec3 `json:"toOrigin,omitempty"`
	ToDirection *mgl64.Vec3 `json:"toDirection,omitempty"`
	Frames      int         `json:"frames,omitempty"`
}

// testScript is the top-level JSON structure for a test script.
type testScript struct {
	Steps []testStep `json:"steps"`
}

var validActions = map[string]bool{
	"aim": true, "press": true, "release": true, "click": true,
	"grab": true, "ungrab": true, "drag": true, "lose": true,
	"wait": true, "snapshot": true,
}

// TestRunner sequences injected input events across frames for scripted
// interaction tests. Attach to a System via SetTestRunner.
type TestRunner struct {
	steps     []testStep
	cursor    int
	waitCount int
	done      bool
}

// LoadTestScript parses a JSON test script and returns a TestRunner ready
// to be attached to a System via SetTestRunner.
//
// Vectors are JSON arrays of three numbers. Missing directions default to
// +Z and missing origins to the world origin.
func LoadTestScript(jsonData []byte) (*TestRunner, error) {
	var script testScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse test script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse test script: no steps")
	}
	for i, st := range script.Steps {
		if !validActions[st.Action] {
			return nil, fmt.Errorf("parse test script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &TestRunner{steps: script.Steps}, nil
}

// SetTestRunner attaches a TestRunner to the system. The runner's step
// method is called from System.Update before samples are collected.
func (s *System) SetTestRunner(runner *TestRunner) {
	s.testRunner = runner
}

// Done reports whether all steps in the test script have been executed.
func (r *TestRunner) Done() bool {
	return r.done
}

func stepRay(origin, dir *mgl64.Vec3) Ray {
	r := Ray{Direction: mgl64.Vec3{0, 0, 1}}
	if origin != nil {
		r.Origin = *origin
	}
	if dir != nil && dir.Len() > 0 {
		r.Direction = dir.Normalize()
	}
	return r
}

// step advances the test runner by one frame. Called from System.Update.
func (r *TestRunner) step(s *System) {
	if r.done {
		return
	}
	// Wait for pending injections to drain before advancing.
	if len(s.injectQueue) > 0 {
		return
	}
	// Count down wait frames.
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	ray := stepRay(st.Origin, st.Direction)
	switch st.Action {
	case "snapshot":
		s.logSnapshot(st.Label)
	case "aim":
		s.InjectAim(st.Interactor, ray)
	case "press":
		s.InjectPress(st.Interactor, ray)
	case "release":
		s.InjectRelease(st.Interactor, ray)
	case "click":
		s.InjectClick(st.Interactor, ray)
	case "grab":
		s.InjectGrab(st.Interactor, ray)
	case "ungrab":
		s.InjectUngrab(st.Interactor, ray)
	case "drag":
		frames := st.Frames
		if frames < 2 {
			frames = 2
		}
		s.InjectDrag(st.Interactor, ray, stepRay(st.ToOrigin, st.ToDirection), frames)
	case "lose":
		s.InjectLost(st.Interactor)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	}

	// Check if we've reached the end after executing.
	if r.cursor >= len(r.steps) && r.waitCount == 0 && len(s.injectQueue) == 0 {
		r.done = true
	}
}

// logSnapshot logs the focus, selection and grab of every interactor.
func (s *System) logSnapshot(label string) {
	for _, ir := range s.registry.interactors {
		s.logger.Info("snapshot",
			"label", label,
			"interactor", ir.Name,
			"focus", interactableName(ir.focus),
			"selected", interactableName(ir.selected),
			"grabbed", interactableName(ir.grabbed))
	}
}
