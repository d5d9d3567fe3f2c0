// Package widgettest provides a manual scheduler and a recording renderer for
// driving widget controllers deterministically in tests.
package widgettest

import (
	"sort"
	"time"

	"github.com/devpaiola/cadastroLead/internal/widget"
)

type timer struct {
	at  time.Duration
	seq int
	fn  func()
}

type call struct {
	work func()
	done func()
}

// Scheduler is a widget.Scheduler on a virtual clock. Timers fire only from
// Advance and remote calls complete only from Complete.
type Scheduler struct {
	now    time.Duration
	seq    int
	timers []timer
	calls  []call
}

var _ widget.Scheduler = (*Scheduler)(nil)

func NewScheduler() *Scheduler { return &Scheduler{} }

func (s *Scheduler) After(d time.Duration, fn func()) {
	s.seq++
	s.timers = append(s.timers, timer{at: s.now + d, seq: s.seq, fn: fn})
}

func (s *Scheduler) Go(work func(), done func()) {
	s.calls = append(s.calls, call{work: work, done: done})
}

// PendingTimers is the number of timers that have not fired yet.
func (s *Scheduler) PendingTimers() int { return len(s.timers) }

// PendingCalls is the number of remote calls that have not completed yet.
func (s *Scheduler) PendingCalls() int { return len(s.calls) }

// Now is the virtual time elapsed since the scheduler was created.
func (s *Scheduler) Now() time.Duration { return s.now }

// Advance moves the clock forward by d, firing due timers in order. Timers
// scheduled by a firing timer run too if they fall inside the window.
func (s *Scheduler) Advance(d time.Duration) {
	deadline := s.now + d
	for {
		sort.SliceStable(s.timers, func(i, j int) bool {
			if s.timers[i].at != s.timers[j].at {
				return s.timers[i].at < s.timers[j].at
			}
			return s.timers[i].seq < s.timers[j].seq
		})
		if len(s.timers) == 0 || s.timers[0].at > deadline {
			break
		}
		next := s.timers[0]
		s.timers = s.timers[1:]
		s.now = next.at
		next.fn()
	}
	s.now = deadline
}

// Complete runs every pending remote call and its continuation, oldest first.
func (s *Scheduler) Complete() int {
	n := 0
	for len(s.calls) > 0 {
		c := s.calls[0]
		s.calls = s.calls[1:]
		c.work()
		c.done()
		n++
	}
	return n
}

// Renderer records every UI update.
type Renderer struct {
	Screens     []string
	Errors      []string
	Highlighted [][]string
	Results     []string
	Progress    []int
	Enabled     map[string]bool
	Cleared     int
}

var _ widget.Renderer = (*Renderer)(nil)

func NewRenderer() *Renderer {
	return &Renderer{Enabled: map[string]bool{}}
}

func (r *Renderer) ShowScreen(screen string) { r.Screens = append(r.Screens, screen) }

func (r *Renderer) SetSubmitEnabled(control string, enabled bool) { r.Enabled[control] = enabled }

func (r *Renderer) HighlightFields(fields []string) {
	r.Highlighted = append(r.Highlighted, fields)
}

func (r *Renderer) ShowError(message string) { r.Errors = append(r.Errors, message) }

func (r *Renderer) ShowProgress(count, threshold int) { r.Progress = append(r.Progress, count) }

func (r *Renderer) ShowResult(prize string) { r.Results = append(r.Results, prize) }

func (r *Renderer) ClearResult() { r.Cleared++ }

// Visible is the last screen shown.
func (r *Renderer) Visible() string {
	if len(r.Screens) == 0 {
		return ""
	}
	return r.Screens[len(r.Screens)-1]
}

// SubmitEnabled reports the control state; controls never touched are enabled.
func (r *Renderer) SubmitEnabled(control string) bool {
	enabled, seen := r.Enabled[control]
	return !seen || enabled
}
