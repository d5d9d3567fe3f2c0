// Package lamp drives the referral widget: the user refers three people, rubs a
// magic lamp five times and a prize is drawn from a weighted catalog.
package lamp

import (
	"errors"
	"fmt"
	"time"

	"golang.org/x/exp/slog"

	"github.com/devpaiola/cadastroLead/internal/rng"
	"github.com/devpaiola/cadastroLead/internal/widget"
)

const (
	ScreenReferral = "tela-indicacao"
	ScreenLamp     = "tela-lampada"
	ScreenPrize    = "modal-premio"

	ControlReferral = "form-indicacao"
)

const (
	Entries            = 3
	DefaultLatency     = 2 * time.Second
	DefaultSuccessRate = 0.7
)

// DefaultPrizes and DefaultWeights make up the catalog used when none is configured.
var (
	DefaultPrizes  = []string{"Desconto de 10%", "Frete Grátis", "Cashback 15%", "Brinde Surpresa"}
	DefaultWeights = []float64{0.4, 0.3, 0.2, 0.1}
)

var screens = []widget.Screen{
	{Name: ScreenReferral, Phase: widget.PhaseInitial},
	{Name: ScreenLamp, Phase: widget.PhaseInteracting},
	{Name: ScreenPrize, Phase: widget.PhaseRevealed},
}

// Config tunes a lamp session. Zero values take the defaults.
type Config struct {
	Prizes      []string
	Weights     []float64
	Latency     time.Duration
	SuccessRate float64
	Threshold   int
	RevealDelay time.Duration
}

// Widget is one lamp session. It must only be used from its scheduler's loop.
type Widget struct {
	seq     *widget.Sequencer
	src     rng.Source
	prizes  []string
	weights []float64
	latency time.Duration
	success float64
	entries []widget.ReferralEntry
}

// New creates a lamp session on the referral screen. src drives both the
// simulated call outcome and the prize draw.
func New(cfg Config, src rng.Source, sched widget.Scheduler, render widget.Renderer) (*Widget, error) {
	if src == nil {
		return nil, errors.New("lamp widget needs a random source")
	}
	if len(cfg.Prizes) == 0 {
		cfg.Prizes, cfg.Weights = DefaultPrizes, DefaultWeights
	}
	if err := rng.Validate(cfg.Prizes, cfg.Weights); err != nil {
		return nil, fmt.Errorf("invalid prize catalog: %w", err)
	}
	if cfg.Latency <= 0 {
		cfg.Latency = DefaultLatency
	}
	if cfg.SuccessRate <= 0 || cfg.SuccessRate > 1 {
		cfg.SuccessRate = DefaultSuccessRate
	}

	w := &Widget{
		src:     src,
		prizes:  cfg.Prizes,
		weights: cfg.Weights,
		latency: cfg.Latency,
		success: cfg.SuccessRate,
		entries: make([]widget.ReferralEntry, Entries),
	}
	seq, err := widget.NewSequencer(widget.Options{
		Screens:     screens,
		Threshold:   cfg.Threshold,
		RevealDelay: cfg.RevealDelay,
		OnThreshold: w.reveal,
	}, sched, render)
	if err != nil {
		return nil, fmt.Errorf("failed to create sequencer: %w", err)
	}
	w.seq = seq
	return w, nil
}

func (w *Widget) Sequencer() *widget.Sequencer { return w.seq }

// Entries returns a copy of the referral form.
func (w *Widget) Entries() []widget.ReferralEntry {
	return append([]widget.ReferralEntry(nil), w.entries...)
}

// SetEntry stores the values typed into referral i (0-based).
func (w *Widget) SetEntry(i int, e widget.ReferralEntry) error {
	if w.seq.Screen() != ScreenReferral {
		return widget.ErrWrongScreen
	}
	if i < 0 || i >= len(w.entries) {
		return fmt.Errorf("referral %d does not exist", i+1)
	}
	w.entries[i] = e
	w.seq.MarkCollecting()
	return nil
}

// Submit validates the referrals and sends them. There is no endpoint for
// referrals yet, so the call is simulated: it resolves after the configured
// latency and succeeds with the configured rate.
func (w *Widget) Submit() error {
	if w.seq.Screen() != ScreenReferral {
		return widget.ErrWrongScreen
	}
	if err := widget.ValidateReferrals(w.entries); err != nil {
		w.seq.Fail(err)
		return err
	}
	ok := w.seq.Simulate(ControlReferral, w.latency, w.outcome, func() {
		w.seq.Advance(ScreenLamp)
	})
	if !ok {
		return widget.ErrInFlight
	}
	return nil
}

func (w *Widget) outcome() error {
	ok, err := rng.Bernoulli(w.src, w.success)
	if err != nil {
		return err
	}
	if !ok {
		return &widget.RemoteError{Op: "indicar", Message: "Erro ao enviar indicações. Tente novamente."}
	}
	return nil
}

// Rub counts one rub of the lamp and returns the running total.
func (w *Widget) Rub() (int, error) {
	if w.seq.Phase() != widget.PhaseInteracting {
		return w.seq.Interactions(), widget.ErrWrongScreen
	}
	return w.seq.RecordInteraction(), nil
}

func (w *Widget) reveal() {
	prize, err := rng.WeightedDraw(w.src, w.prizes, w.weights)
	if err != nil {
		slog.Error("prize draw failed", "error", err)
		w.seq.Fail(err)
		return
	}
	slog.Info("lamp prize revealed", "prize", prize, "rubs", w.seq.Interactions())
	w.seq.Reveal(prize, ScreenPrize)
}

// Reset clears the referrals and returns to the referral screen.
func (w *Widget) Reset() {
	w.seq.Reset()
	w.entries = make([]widget.ReferralEntry, Entries)
}
