// Package wheel drives the lead registration and prize wheel widget: the
// registrant signs up, refers 3 to 5 leads, then spins a wheel whose prize is
// chosen by the server.
package wheel

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/exp/slog"

	"github.com/devpaiola/cadastroLead/internal/widget"
)

// Screens in flow order.
const (
	ScreenUser   = "tela-usuario"
	ScreenLeads  = "tela-leads"
	ScreenWheel  = "tela-roleta"
	ScreenResult = "tela-resultado"
)

// Submit controls.
const (
	ControlUser  = "form-usuario"
	ControlLeads = "form-leads"
	ControlSpin  = "btn-girar"
)

const (
	MinLeads            = 3
	MaxLeads            = 5
	DefaultSpinDuration = 3 * time.Second
)

// FallbackCatalog is shown on the wheel when the prize list cannot be fetched.
var FallbackCatalog = []string{"Desconto 50%", "Frete Grátis", "Produto Grátis", "Cashback 20%"}

var screens = []widget.Screen{
	{Name: ScreenUser, Phase: widget.PhaseInitial},
	{Name: ScreenLeads, Phase: widget.PhaseCollecting},
	{Name: ScreenWheel, Phase: widget.PhaseInteracting},
	{Name: ScreenResult, Phase: widget.PhaseRevealed},
}

// Backend is the remote side of the widget.
type Backend interface {
	RegisterUser(ctx context.Context, r widget.Registrant) (widget.Registrant, error)
	RegisterLeads(ctx context.Context, leads []widget.Lead, reference string) (int, error)
	ListPrizes(ctx context.Context) ([]string, error)
	DrawPrize(ctx context.Context) (string, error)
}

// Widget is one wheel session. Like the Sequencer it wraps, it must only be
// used from its scheduler's loop.
type Widget struct {
	seq     *widget.Sequencer
	render  widget.Renderer
	sched   widget.Scheduler
	backend Backend
	spin    time.Duration

	registrant widget.Registrant
	rows       []widget.Lead
	saved      int
	catalog    []string
	spinning   bool
}

// New creates a wheel session on the registration screen. A zero spin uses
// DefaultSpinDuration.
func New(backend Backend, spin time.Duration, sched widget.Scheduler, render widget.Renderer) (*Widget, error) {
	if backend == nil {
		return nil, fmt.Errorf("wheel widget needs a backend")
	}
	seq, err := widget.NewSequencer(widget.Options{Screens: screens}, sched, render)
	if err != nil {
		return nil, fmt.Errorf("failed to create sequencer: %w", err)
	}
	if spin <= 0 {
		spin = DefaultSpinDuration
	}
	return &Widget{
		seq:     seq,
		render:  render,
		sched:   sched,
		backend: backend,
		spin:    spin,
		rows:    make([]widget.Lead, MinLeads),
		catalog: FallbackCatalog,
	}, nil
}

func (w *Widget) Sequencer() *widget.Sequencer { return w.seq }
func (w *Widget) Registrant() widget.Registrant { return w.registrant }
func (w *Widget) Catalog() []string             { return w.catalog }

// SavedLeads is the number of leads the server confirmed.
func (w *Widget) SavedLeads() int { return w.saved }

// Rows returns a copy of the lead form rows.
func (w *Widget) Rows() []widget.Lead {
	return append([]widget.Lead(nil), w.rows...)
}

// SubmitRegistrant validates r and registers it. On success the lead form is shown.
func (w *Widget) SubmitRegistrant(ctx context.Context, r widget.Registrant) error {
	if w.seq.Screen() != ScreenUser {
		return widget.ErrWrongScreen
	}
	w.seq.MarkCollecting()
	if err := r.Validate(); err != nil {
		w.seq.Fail(err)
		return err
	}
	r = r.Trimmed()

	var confirmed widget.Registrant
	ok := w.seq.Call(ControlUser, func() error {
		got, err := w.backend.RegisterUser(ctx, r)
		if err != nil {
			return widget.NewRemoteError("cadastrar-usuario", "Erro no cadastro", err)
		}
		confirmed = got
		return nil
	}, func() {
		if confirmed.Name == "" {
			confirmed = r
		}
		w.registrant = confirmed
		w.seq.Advance(ScreenLeads)
	})
	if !ok {
		return widget.ErrInFlight
	}
	return nil
}

// AddLead appends an empty lead row.
func (w *Widget) AddLead() error {
	if w.seq.Screen() != ScreenLeads {
		return widget.ErrWrongScreen
	}
	if len(w.rows) >= MaxLeads {
		err := &widget.ValidationError{Message: fmt.Sprintf("Máximo de %d leads permitidos", MaxLeads)}
		w.seq.Fail(err)
		return err
	}
	w.rows = append(w.rows, widget.Lead{})
	return nil
}

// RemoveLead drops row i (0-based). The first MinLeads rows are fixed.
func (w *Widget) RemoveLead(i int) error {
	if w.seq.Screen() != ScreenLeads {
		return widget.ErrWrongScreen
	}
	if i < MinLeads || i >= len(w.rows) {
		return fmt.Errorf("lead row %d cannot be removed", i+1)
	}
	w.rows = append(w.rows[:i], w.rows[i+1:]...)
	return nil
}

// SetLead stores the values typed into row i (0-based).
func (w *Widget) SetLead(i int, lead widget.Lead) error {
	if w.seq.Screen() != ScreenLeads {
		return widget.ErrWrongScreen
	}
	if i < 0 || i >= len(w.rows) {
		return fmt.Errorf("lead row %d does not exist", i+1)
	}
	w.rows[i] = lead
	return nil
}

// SubmitLeads validates the lead rows and registers them under the
// registrant's name. On success the wheel is shown and its catalog loaded.
func (w *Widget) SubmitLeads(ctx context.Context) error {
	if w.seq.Screen() != ScreenLeads {
		return widget.ErrWrongScreen
	}
	leads, err := widget.CollectLeads(w.rows, MinLeads)
	if err != nil {
		w.seq.Fail(err)
		return err
	}

	reference := w.registrant.Name
	var saved int
	ok := w.seq.Call(ControlLeads, func() error {
		n, err := w.backend.RegisterLeads(ctx, leads, reference)
		if err != nil {
			return widget.NewRemoteError("cadastrar-leads", "Erro no cadastro dos leads", err)
		}
		saved = n
		return nil
	}, func() {
		w.saved = saved
		if w.seq.Advance(ScreenWheel) {
			w.LoadCatalog(ctx)
		}
	})
	if !ok {
		return widget.ErrInFlight
	}
	return nil
}

// LoadCatalog fetches the prizes painted on the wheel, keeping the fallback
// catalog when the fetch fails or returns nothing.
func (w *Widget) LoadCatalog(ctx context.Context) {
	var (
		prizes []string
		err    error
	)
	w.sched.Go(func() {
		prizes, err = w.backend.ListPrizes(ctx)
	}, func() {
		if err != nil || len(prizes) == 0 {
			slog.Warn("using fallback prize catalog", "error", err)
			w.catalog = FallbackCatalog
			return
		}
		w.catalog = prizes
	})
}

// Spin asks the server for a prize, animates the wheel for the spin duration
// and then shows the result.
func (w *Widget) Spin(ctx context.Context) error {
	if w.seq.Screen() != ScreenWheel {
		return widget.ErrWrongScreen
	}
	if w.spinning {
		return widget.ErrInFlight
	}

	var prize string
	ok := w.seq.Call(ControlSpin, func() error {
		p, err := w.backend.DrawPrize(ctx)
		if err != nil {
			return widget.NewRemoteError("sortear-premio", "Erro no sorteio", err)
		}
		prize = p
		return nil
	}, func() {
		w.spinning = true
		w.render.SetSubmitEnabled(ControlSpin, false)
		w.seq.After(w.spin, func() {
			w.spinning = false
			w.seq.Reveal(prize, ScreenResult)
		})
	})
	if !ok {
		return widget.ErrInFlight
	}
	return nil
}

// Reset starts a new session on the registration screen.
func (w *Widget) Reset() {
	w.seq.Reset()
	w.registrant = widget.Registrant{}
	w.rows = make([]widget.Lead, MinLeads)
	w.saved = 0
	w.spinning = false
	w.render.SetSubmitEnabled(ControlSpin, true)
}
