package scrollstage

import (
	"encoding/json"
	"fmt"
)

// scriptStep is a single action in a scroll script.
type scriptStep struct {
	Action string  `json:"action"`
	Label  string  `json:"label,omitempty"`
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`
	Y      float64 `json:"y,omitempty"`
	Delta  float64 `json:"delta,omitempty"`
	Frames int     `json:"frames,omitempty"`
}

// scrollScript is the top-level JSON structure for a scroll script.
type scrollScript struct {
	Steps []scriptStep `json:"steps"`
}

// ScrollRunner plays a scripted sequence of resizes, scrolls and snapshots
// against a Coordinator, one action per frame, for automated scenario tests.
//
// Actions: "resize" (width, height), "scroll" (y), "scrollBy" (delta),
// "wait" (frames), "snapshot" (label), "unmount".
type ScrollRunner struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool
	snapshots map[string]Frame
	pending   string
}

// LoadScrollScript parses a JSON scroll script.
func LoadScrollScript(jsonData []byte) (*ScrollRunner, error) {
	var script scrollScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse scroll script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse scroll script: no steps")
	}
	for i, st := range script.Steps {
		switch st.Action {
		case "resize", "scroll", "scrollBy", "wait", "snapshot", "unmount":
		default:
			return nil, fmt.Errorf("parse scroll script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &ScrollRunner{steps: script.Steps, snapshots: make(map[string]Frame)}, nil
}

// Done reports whether every step has run.
func (r *ScrollRunner) Done() bool { return r.done }

// Snapshot returns the frame captured under label.
func (r *ScrollRunner) Snapshot(label string) (Frame, bool) {
	f, ok := r.snapshots[label]
	return f, ok
}

// Step performs the next action, then runs one coordinator frame of dt
// seconds. Scroll actions require the coordinator's source to be a
// ManualSource.
func (r *ScrollRunner) Step(c *Coordinator, dt float32) error {
	if r.done {
		return nil
	}
	if r.waitCount > 0 {
		r.waitCount--
	} else if r.cursor < len(r.steps) {
		st := r.steps[r.cursor]
		r.cursor++
		if err := r.perform(c, st); err != nil {
			return err
		}
	}

	f, _ := c.Frame(dt)
	if r.pending != "" {
		r.snapshots[r.pending] = f
		r.pending = ""
	}
	if r.cursor >= len(r.steps) && r.waitCount == 0 {
		r.done = true
	}
	return nil
}

func (r *ScrollRunner) perform(c *Coordinator, st scriptStep) error {
	switch st.Action {
	case "resize":
		c.Resize(Viewport{Width: st.Width, Height: st.Height})
	case "scroll", "scrollBy":
		src, ok := c.Source().(*ManualSource)
		if !ok {
			return fmt.Errorf("scroll script: %s needs a ManualSource", st.Action)
		}
		if st.Action == "scroll" {
			src.InjectScroll(st.Y)
		} else {
			src.InjectScrollBy(st.Delta)
		}
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	case "snapshot":
		r.pending = st.Label
	case "unmount":
		c.Unmount()
	}
	return nil
}

// Run steps until the script is done or maxFrames frames have run.
func (r *ScrollRunner) Run(c *Coordinator, dt float32, maxFrames int) error {
	for i := 0; i < maxFrames && !r.done; i++ {
		if err := r.Step(c, dt); err != nil {
			return err
		}
	}
	if !r.done {
		return fmt.Errorf("scroll script: not done after %d frames", maxFrames)
	}
	return nil
}
