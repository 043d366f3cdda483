package thumbstick

import (
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

const defaultFrame = float32(1.0 / 60)

// ScriptStep is a single action in a gesture script.
type ScriptStep struct {
	Action  string  `yaml:"action" json:"action"`
	Label   string  `yaml:"label,omitempty" json:"label,omitempty"`
	Pointer int     `yaml:"pointer,omitempty" json:"pointer,omitempty"`
	X       float64 `yaml:"x,omitempty" json:"x,omitempty"`
	Y       float64 `yaml:"y,omitempty" json:"y,omitempty"`
	ToX     float64 `yaml:"toX,omitempty" json:"toX,omitempty"`
	ToY     float64 `yaml:"toY,omitempty" json:"toY,omitempty"`
	Steps   int     `yaml:"steps,omitempty" json:"steps,omitempty"`
	Width   float64 `yaml:"width,omitempty" json:"width,omitempty"`
	Height  float64 `yaml:"height,omitempty" json:"height,omitempty"`
	// StickWidth and StickHeight are full extents; the runner halves them.
	StickWidth  float64 `yaml:"stickWidth,omitempty" json:"stickWidth,omitempty"`
	StickHeight float64 `yaml:"stickHeight,omitempty" json:"stickHeight,omitempty"`
	Seconds     float64 `yaml:"seconds,omitempty" json:"seconds,omitempty"`
}

// Script is a recorded or hand-written gesture sequence.
type Script struct {
	// Config, if present, is applied to the controller before the first step.
	Config *Config      `yaml:"config,omitempty" json:"config,omitempty"`
	Steps  []ScriptStep `yaml:"steps" json:"steps"`
}

// LoadScript parses a YAML or JSON gesture script.
func LoadScript(r io.Reader) (*Script, error) {
	script := &Script{}
	if err := yaml.NewDecoder(r).Decode(script); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse script: %w", ErrEmptyScript)
	}
	if script.Config != nil {
		if err := script.Config.Validate(); err != nil {
			return nil, fmt.Errorf("parse script: %w", err)
		}
	}
	return script, nil
}

// Record is what one script step produced.
type Record struct {
	Step    int            `json:"step"`
	Label   string         `json:"label,omitempty"`
	Action  string         `json:"action"`
	Handled bool           `json:"handled"`
	Events  []GestureEvent `json:"events,omitempty"`
	State   GestureState   `json:"state"`
	// Stick is the stick translation after the step, when the bound stick is a
	// *TweenStick.
	Stick Vec2 `json:"stick"`
}

// Trace is the outcome of running a script.
type Trace struct {
	ID      uuid.UUID `json:"id"`
	Records []Record  `json:"records"`
}

// Count returns how many events of type t the trace holds.
func (t *Trace) Count(et EventType) int {
	n := 0
	for _, r := range t.Records {
		for _, e := range r.Events {
			if e.Type == et {
				n++
			}
		}
	}
	return n
}

// DragOutputs returns every drag output in order.
func (t *Trace) DragOutputs() []DragOutput {
	var out []DragOutput
	for _, r := range t.Records {
		for _, e := range r.Events {
			if e.Type == EventDrag {
				out = append(out, e.Output)
			}
		}
	}
	return out
}

// Runner plays a Script into a Controller.
type Runner struct {
	script *Script
	queue  EventQueue

	// Frame is the time step in seconds used to advance the stick during
	// wait steps.
	Frame float32
}

// NewRunner returns a runner for script.
func NewRunner(script *Script) *Runner {
	return &Runner{script: script, Frame: defaultFrame}
}

// Run applies the script's config, executes every step against c and returns
// the trace. Handlers registered for recording are removed before returning.
func (r *Runner) Run(c *Controller) (*Trace, error) {
	if r.script == nil || len(r.script.Steps) == 0 {
		return nil, ErrEmptyScript
	}
	if r.script.Config != nil {
		if err := c.Configure(*r.script.Config); err != nil {
			return nil, err
		}
	}

	trace := &Trace{ID: uuid.New()}
	var current *Record
	record := func(e GestureEvent) {
		if current != nil {
			current.Events = append(current.Events, e)
		}
	}
	handles := []CallbackHandle{
		c.OnDown(record),
		c.OnDragStart(record),
		c.OnDrag(record),
		c.OnUp(record),
	}
	defer func() {
		for _, h := range handles {
			h.Remove()
		}
	}()

	for i, st := range r.script.Steps {
		rec := Record{Step: i, Label: st.Label, Action: st.Action}
		current = &rec

		handled, err := r.step(c, st)
		if err != nil {
			return trace, fmt.Errorf("script step %d: %w", i, err)
		}
		rec.Handled = handled
		rec.State = c.State()
		if ts, ok := c.Stick().(*TweenStick); ok {
			rec.Stick = ts.Pos
		}
		trace.Records = append(trace.Records, rec)
	}
	current = nil
	return trace, nil
}

// step executes one action. Handled is true when any event it fed was consumed.
func (r *Runner) step(c *Controller, st ScriptStep) (bool, error) {
	switch st.Action {
	case "press":
		r.queue.InjectPress(st.Pointer, st.X, st.Y)
	case "move":
		r.queue.InjectMove(st.Pointer, st.X, st.Y)
	case "lift":
		r.queue.InjectLift(st.Pointer)
	case "release":
		r.queue.InjectRelease()
	case "cancel":
		r.queue.InjectCancel()
	case "drag":
		r.queue.InjectDrag(st.Pointer, st.X, st.Y, st.ToX, st.ToY, st.Steps)
	case "lock":
		c.Lock()
		return false, nil
	case "enable":
		c.SetEnabled(true)
		return false, nil
	case "disable":
		c.SetEnabled(false)
		return false, nil
	case "geometry":
		c.NotifyGeometry(st.Width, st.Height, st.StickWidth/2, st.StickHeight/2)
		return false, nil
	case "wait":
		r.wait(c, st.Seconds)
		return false, nil
	default:
		return false, fmt.Errorf("unknown action %q", st.Action)
	}

	handled := false
	for _, h := range r.queue.Drain(c) {
		handled = handled || h
	}
	return handled, nil
}

type updater interface {
	Update(dt float32)
}

func (r *Runner) wait(c *Controller, seconds float64) {
	u, ok := c.Stick().(updater)
	if !ok || seconds <= 0 {
		return
	}
	frame := r.Frame
	if frame <= 0 {
		frame = defaultFrame
	}
	remaining := float32(seconds)
	for remaining > 0 {
		dt := frame
		if remaining < dt {
			dt = remaining
		}
		u.Update(dt)
		remaining -= dt
	}
}
