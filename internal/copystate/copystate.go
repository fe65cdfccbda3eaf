// Package copystate drives the transient "Copied!" acknowledgement shown on
// a code block after its text is written to the clipboard.
package copystate

import (
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kyaoi/wikiview/internal/clipboard"
)

// DefaultDelay is how long the Copied state is shown.
const DefaultDelay = 2 * time.Second

var errNoWriter = errors.New("no clipboard writer")

// State is the feedback shown on the copy button.
type State int

const (
	Idle State = iota
	Copied
)

func (s State) String() string {
	if s == Copied {
		return "copied"
	}
	return "idle"
}

// ResultMsg reports the outcome of a clipboard write.
type ResultMsg struct {
	ID  string
	Gen uint64
	Err error
}

// ExpiredMsg is delivered when the feedback delay of a copy has elapsed.
type ExpiredMsg struct {
	ID  string
	Gen uint64
}

// Scheduler delivers the message built by fn after d. tea.Tick satisfies it.
type Scheduler func(d time.Duration, fn func(time.Time) tea.Msg) tea.Cmd

// Tracker owns the copy state of one code block. Each Copy call bumps a
// generation counter; results and expirations carrying an older generation
// are ignored, so only the latest call can change what is displayed.
type Tracker struct {
	id       string
	writer   clipboard.Writer
	delay    time.Duration
	schedule Scheduler

	state State
	gen   uint64
	err   error
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithDelay overrides DefaultDelay.
func WithDelay(d time.Duration) Option {
	return func(t *Tracker) {
		if d > 0 {
			t.delay = d
		}
	}
}

// WithScheduler replaces tea.Tick, mainly for tests.
func WithScheduler(s Scheduler) Option {
	return func(t *Tracker) {
		if s != nil {
			t.schedule = s
		}
	}
}

// New creates an idle tracker for the block identified by id.
func New(id string, w clipboard.Writer, opts ...Option) *Tracker {
	t := &Tracker{
		id:       id,
		writer:   w,
		delay:    DefaultDelay,
		schedule: tea.Tick,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// ID returns the block identifier the tracker was created for.
func (t *Tracker) ID() string { return t.id }

// State returns the current feedback state.
func (t *Tracker) State() State { return t.state }

// Err returns the error of the most recent failed write, if any.
func (t *Tracker) Err() error { return t.err }

// Delay returns the feedback duration.
func (t *Tracker) Delay() time.Duration { return t.delay }

// Copy starts writing text to the clipboard. The returned command performs
// the write off the event loop and reports a ResultMsg.
func (t *Tracker) Copy(text string) tea.Cmd {
	t.gen++
	gen, id, w := t.gen, t.id, t.writer
	return func() tea.Msg {
		var err error
		if w == nil {
			err = errNoWriter
		} else {
			err = w.WriteAll(text)
		}
		return ResultMsg{ID: id, Gen: gen, Err: err}
	}
}

// Update applies a ResultMsg or ExpiredMsg addressed to this tracker. It
// reports whether the message changed the state.
func (t *Tracker) Update(msg tea.Msg) (bool, tea.Cmd) {
	switch msg := msg.(type) {
	case ResultMsg:
		if msg.ID != t.id || msg.Gen != t.gen {
			return false, nil
		}
		if msg.Err != nil {
			t.err = msg.Err
			t.state = Idle
			return true, nil
		}
		t.err = nil
		t.state = Copied
		gen, id := msg.Gen, t.id
		return true, t.schedule(t.delay, func(time.Time) tea.Msg {
			return ExpiredMsg{ID: id, Gen: gen}
		})
	case ExpiredMsg:
		if msg.ID != t.id || msg.Gen != t.gen || t.state != Copied {
			return false, nil
		}
		t.state = Idle
		return true, nil
	}
	return false, nil
}
