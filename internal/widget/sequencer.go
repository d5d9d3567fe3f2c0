package widget

import (
	"errors"
	"fmt"
	"time"

	"golang.org/x/exp/slog"
)

// Phase is the coarse position of a session along the widget's linear path.
type Phase int

const (
	PhaseInitial Phase = iota
	PhaseCollecting
	PhaseAwaitingRemote
	PhaseInteracting
	PhaseRevealed
)

func (p Phase) String() string {
	switch p {
	case PhaseInitial:
		return "initial"
	case PhaseCollecting:
		return "collecting"
	case PhaseAwaitingRemote:
		return "awaiting-remote-result"
	case PhaseInteracting:
		return "interacting"
	case PhaseRevealed:
		return "revealed"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// Screen is one mutually exclusive view of a widget and the phase it puts the
// session in.
type Screen struct {
	Name  string
	Phase Phase
}

// Default timings.
const (
	DefaultThreshold   = 5
	DefaultRevealDelay = time.Second
)

// Options configures a Sequencer. Screens are listed in flow order and the
// first one is the initial screen.
type Options struct {
	Screens     []Screen
	Threshold   int
	RevealDelay time.Duration
	// OnThreshold runs on the loop RevealDelay after the counter reaches Threshold.
	OnThreshold func()
}

// Sequencer owns one widget session: the visible screen, the phase, the
// interaction counter, the revealed result and the in-flight remote call.
// It is not safe for concurrent use; drive it from a single Scheduler loop.
type Sequencer struct {
	screens     []Screen
	index       map[string]int
	threshold   int
	revealDelay time.Duration
	onThreshold func()
	sched       Scheduler
	render      Renderer

	current      int
	phase        Phase
	resumePhase  Phase
	interactions int
	result       string
	inFlight     string
	epoch        uint64
}

// NewSequencer builds a session positioned on the initial screen.
func NewSequencer(opts Options, sched Scheduler, render Renderer) (*Sequencer, error) {
	if len(opts.Screens) == 0 {
		return nil, errors.New("sequencer needs at least one screen")
	}
	if sched == nil || render == nil {
		return nil, errors.New("sequencer needs a scheduler and a renderer")
	}
	index := make(map[string]int, len(opts.Screens))
	for i, s := range opts.Screens {
		if _, dup := index[s.Name]; dup {
			return nil, fmt.Errorf("duplicate screen %q", s.Name)
		}
		index[s.Name] = i
	}
	if opts.Threshold <= 0 {
		opts.Threshold = DefaultThreshold
	}
	if opts.RevealDelay <= 0 {
		opts.RevealDelay = DefaultRevealDelay
	}

	s := &Sequencer{
		screens:     opts.Screens,
		index:       index,
		threshold:   opts.Threshold,
		revealDelay: opts.RevealDelay,
		onThreshold: opts.OnThreshold,
		sched:       sched,
		render:      render,
		phase:       opts.Screens[0].Phase,
	}
	render.ShowScreen(s.Screen())
	return s, nil
}

func (s *Sequencer) Screen() string    { return s.screens[s.current].Name }
func (s *Sequencer) Phase() Phase      { return s.phase }
func (s *Sequencer) Interactions() int { return s.interactions }
func (s *Sequencer) Threshold() int    { return s.threshold }
func (s *Sequencer) Result() string    { return s.result }

// InFlight reports whether a remote call is outstanding.
func (s *Sequencer) InFlight() bool { return s.inFlight != "" }

// Advance makes screen the only visible screen. Unknown screens and moves
// backwards along the flow are logged and ignored.
func (s *Sequencer) Advance(screen string) bool {
	i, ok := s.index[screen]
	if !ok {
		slog.Warn("ignoring unknown screen", "screen", screen, "current", s.Screen())
		return false
	}
	if i < s.current {
		slog.Warn("ignoring backward screen change", "screen", screen, "current", s.Screen())
		return false
	}
	if i == s.current {
		return true
	}
	s.current = i
	s.phase = s.screens[i].Phase
	s.render.ShowScreen(screen)
	return true
}

// MarkCollecting records that the user started filling the initial form.
func (s *Sequencer) MarkCollecting() {
	if s.phase == PhaseInitial {
		s.phase = PhaseCollecting
	}
}

// RecordInteraction counts one interaction. Reaching the threshold schedules
// the reveal once; further interactions only raise the counter.
func (s *Sequencer) RecordInteraction() int {
	s.interactions++
	s.render.ShowProgress(s.interactions, s.threshold)
	if s.interactions == s.threshold && s.onThreshold != nil {
		s.After(s.revealDelay, s.onThreshold)
	}
	return s.interactions
}

// Reveal stores the prize, shows it and moves to screen.
func (s *Sequencer) Reveal(prize, screen string) {
	s.result = prize
	s.render.ShowResult(prize)
	s.Advance(screen)
}

// Reset returns the session to the initial screen with a zero counter and no
// result. Anything scheduled before the reset is dropped when it fires.
func (s *Sequencer) Reset() {
	s.epoch++
	if s.inFlight != "" {
		s.render.SetSubmitEnabled(s.inFlight, true)
		s.inFlight = ""
	}
	s.interactions = 0
	s.result = ""
	s.current = 0
	s.phase = s.screens[0].Phase
	s.resumePhase = s.phase
	s.render.ClearResult()
	s.render.ShowProgress(0, s.threshold)
	s.render.ShowScreen(s.Screen())
}

// After schedules fn on the loop, skipping it if the session was reset meanwhile.
func (s *Sequencer) After(d time.Duration, fn func()) {
	epoch := s.epoch
	s.sched.After(d, func() {
		if epoch != s.epoch {
			slog.Debug("dropping stale timer", "screen", s.Screen())
			return
		}
		fn()
	})
}

// Fail shows err to the user.
func (s *Sequencer) Fail(err error) {
	var verr *ValidationError
	if errors.As(err, &verr) {
		s.render.HighlightFields(verr.Fields)
	}
	s.render.ShowError(UserMessage(err))
}

// Call runs work off the loop while control is disabled. Only one call may be
// in flight. Once work returns the session goes back to the phase it had before
// the call; onSuccess then runs on the loop, or the error is shown.
// Results arriving after a Reset are dropped.
func (s *Sequencer) Call(control string, work func() error, onSuccess func()) bool {
	epoch, ok := s.begin(control)
	if !ok {
		return false
	}
	var err error
	s.sched.Go(func() { err = work() }, func() {
		s.finish(control, epoch, err, onSuccess)
	})
	return true
}

// Simulate behaves like Call for a remote endpoint that does not exist: after
// latency, outcome decides on the loop whether the call succeeded.
func (s *Sequencer) Simulate(control string, latency time.Duration, outcome func() error, onSuccess func()) bool {
	epoch, ok := s.begin(control)
	if !ok {
		return false
	}
	s.sched.After(latency, func() {
		if epoch != s.epoch {
			slog.Info("dropping stale remote result", "control", control)
			return
		}
		s.finish(control, epoch, outcome(), onSuccess)
	})
	return true
}

func (s *Sequencer) begin(control string) (uint64, bool) {
	if s.inFlight != "" {
		slog.Warn("ignoring submit while a call is in flight", "control", control, "inFlight", s.inFlight)
		return 0, false
	}
	s.inFlight = control
	s.resumePhase = s.phase
	s.phase = PhaseAwaitingRemote
	s.render.SetSubmitEnabled(control, false)
	return s.epoch, true
}

func (s *Sequencer) finish(control string, epoch uint64, err error, onSuccess func()) {
	if epoch != s.epoch {
		slog.Info("dropping stale remote result", "control", control)
		return
	}
	s.inFlight = ""
	s.phase = s.resumePhase
	s.render.SetSubmitEnabled(control, true)
	if err != nil {
		slog.Warn("remote call failed", "control", control, "error", err)
		s.Fail(err)
		return
	}
	if onSuccess != nil {
		onSuccess()
	}
}
