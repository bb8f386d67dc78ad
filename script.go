package scatter

import (
	"encoding/json"
	"fmt"
	"os"
)

// scriptStep represents a single action in a gesture script. Coordinates
// are device coordinates; angles are in degrees.
type scriptStep struct {
	Action    string  `json:"action"`
	X         float64 `json:"x,omitempty"`
	Y         float64 `json:"y,omitempty"`
	FromX     float64 `json:"fromX,omitempty"`
	FromY     float64 `json:"fromY,omitempty"`
	ToX       float64 `json:"toX,omitempty"`
	ToY       float64 `json:"toY,omitempty"`
	FromDist  float64 `json:"fromDist,omitempty"`
	ToDist    float64 `json:"toDist,omitempty"`
	FromAngle float64 `json:"fromAngle,omitempty"`
	ToAngle   float64 `json:"toAngle,omitempty"`
	DeltaY    float64 `json:"deltaY,omitempty"`
	Frames    int     `json:"frames,omitempty"`
}

// gestureScript is the top-level JSON structure for a gesture script.
type gestureScript struct {
	Steps []scriptStep `json:"steps"`
}

// ScriptRunner sequences injected gestures across frames for automated
// tests and headless replays. Attach to a Stage via SetScriptRunner.
type ScriptRunner struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool
}

var knownActions = map[string]bool{
	"tap": true, "longpress": true, "drag": true, "pinch": true,
	"rotate": true, "wheel": true, "wait": true,
}

// LoadGestureScript parses a JSON gesture script and returns a ScriptRunner
// ready to be attached to a Stage.
func LoadGestureScript(jsonData []byte) (*ScriptRunner, error) {
	var script gestureScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse gesture script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse gesture script: no steps")
	}
	for i, st := range script.Steps {
		if !knownActions[st.Action] {
			return nil, fmt.Errorf("parse gesture script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &ScriptRunner{steps: script.Steps}, nil
}

// LoadGestureScriptFile reads and parses a gesture script file.
func LoadGestureScriptFile(path string) (*ScriptRunner, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read gesture script: %w", err)
	}
	return LoadGestureScript(data)
}

// SetScriptRunner attaches a ScriptRunner to the stage. The runner's step
// method is called from Stage.Update before input is processed.
func (s *Stage) SetScriptRunner(runner *ScriptRunner) {
	s.testRunner = runner
}

// Done reports whether all steps in the script have been executed.
func (r *ScriptRunner) Done() bool {
	return r.done
}

// step advances the runner by one frame. Called from Stage.Update.
func (r *ScriptRunner) step(s *Stage) {
	if r.done {
		return
	}
	// Wait for pending injections to drain before advancing.
	if len(s.injectQueue) > 0 {
		return
	}
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

	frames := st.Frames
	if frames < 2 {
		frames = 2
	}
	switch st.Action {
	case "tap":
		s.InjectTap(st.X, st.Y)
	case "longpress":
		s.InjectHold(st.X, st.Y, frames)
	case "drag":
		s.InjectDrag(st.FromX, st.FromY, st.ToX, st.ToY, frames)
	case "pinch", "rotate":
		fromDist, toDist := st.FromDist, st.ToDist
		if fromDist == 0 {
			fromDist = 100
		}
		if toDist == 0 {
			toDist = fromDist
		}
		s.InjectPinch(st.X, st.Y, fromDist, toDist, Radians(st.FromAngle), Radians(st.ToAngle), frames)
	case "wheel":
		s.InjectWheel(st.X, st.Y, st.DeltaY)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && len(s.injectQueue) == 0 {
		r.done = true
	}
}
