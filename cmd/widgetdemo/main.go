// Command widgetdemo plays one scripted session of the wheel or lamp widget
// against the promo API, logging every screen change.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"
	"golang.org/x/exp/slog"

	"github.com/devpaiola/cadastroLead/internal/config"
	"github.com/devpaiola/cadastroLead/internal/rng"
	"github.com/devpaiola/cadastroLead/internal/widget"
	"github.com/devpaiola/cadastroLead/internal/widget/lamp"
	"github.com/devpaiola/cadastroLead/internal/widget/wheel"
	"github.com/devpaiola/cadastroLead/pkg/promoapi"
)

func main() {
	var (
		kind    string
		name    string
		email   string
		phone   string
		timeout time.Duration
	)
	pflag.StringVar(&kind, "widget", "wheel", "widget to play: wheel or lamp")
	pflag.StringVar(&name, "nome", "Maria Souza", "registrant name")
	pflag.StringVar(&email, "email", "maria@example.com", "registrant email")
	pflag.StringVar(&phone, "telefone", "(11) 98888-7777", "registrant phone")
	pflag.DurationVar(&timeout, "timeout", time.Minute, "give up after this long")
	pflag.Parse()

	cfg, err := config.Load(".")
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	logger := config.NewLogger(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	loop := widget.NewLoop(ctx)
	defer loop.Close()
	render := &errorTracker{Renderer: widget.NewLogRenderer(logger, kind)}

	switch kind {
	case "wheel":
		client := promoapi.NewClient(cfg.PromoAPI.BaseURL, cfg.PromoAPI.MockAPI)
		err = playWheel(ctx, loop, cfg, client, render, widget.Registrant{Name: name, Email: email, Phone: phone})
	case "lamp":
		err = playLamp(ctx, loop, cfg, render)
	default:
		err = fmt.Errorf("unknown widget %q", kind)
	}
	if err != nil {
		logger.Error("Session ended without a prize", "widget", kind, "error", err)
		os.Exit(1)
	}
}

func playWheel(ctx context.Context, loop *widget.Loop, cfg *config.Config, client *promoapi.Client, render *errorTracker, r widget.Registrant) error {
	var w *wheel.Widget
	var err error
	loop.Do(func() {
		w, err = wheel.New(wheel.NewAPIBackend(client), cfg.Widget.SpinDuration, loop, render)
	})
	if err != nil {
		return err
	}
	seq := func() *widget.Sequencer { return w.Sequencer() }

	if err := step(ctx, loop, seq, render, func() error { return w.SubmitRegistrant(ctx, r) }, wheel.ScreenLeads); err != nil {
		return err
	}
	if err := step(ctx, loop, seq, render, func() error {
		for i := 0; i < wheel.MinLeads; i++ {
			n := i + 1
			lead := widget.Lead{
				Name:  fmt.Sprintf("Indicado %d de %s", n, r.Name),
				Email: fmt.Sprintf("indicado%d@example.com", n),
				Phone: fmt.Sprintf("(11) 9000%d-000%d", n, n),
			}
			if err := w.SetLead(i, lead); err != nil {
				return err
			}
		}
		return w.SubmitLeads(ctx)
	}, wheel.ScreenWheel); err != nil {
		return err
	}
	return step(ctx, loop, seq, render, func() error { return w.Spin(ctx) }, wheel.ScreenResult)
}

func playLamp(ctx context.Context, loop *widget.Loop, cfg *config.Config, render *errorTracker) error {
	var w *lamp.Widget
	var err error
	loop.Do(func() {
		w, err = lamp.New(lamp.Config{
			Latency:     cfg.Widget.SimulatedLatency,
			SuccessRate: cfg.Widget.SuccessRate,
			Threshold:   cfg.Widget.Threshold,
			RevealDelay: cfg.Widget.RevealDelay,
		}, rng.NewSource(), loop, render)
	})
	if err != nil {
		return err
	}
	seq := func() *widget.Sequencer { return w.Sequencer() }

	fill := func() error {
		for i := 0; i < lamp.Entries; i++ {
			e := widget.ReferralEntry{Name: fmt.Sprintf("Amigo %d", i+1), Phone: fmt.Sprintf("(11) 9111%d-111%d", i, i)}
			if err := w.SetEntry(i, e); err != nil {
				return err
			}
		}
		return w.Submit()
	}
	// The simulated call fails some of the time; retry like a user would.
	for attempt := 1; ; attempt++ {
		err := step(ctx, loop, seq, render, fill, lamp.ScreenLamp)
		if err == nil {
			break
		}
		if !errors.Is(err, errStayed) || attempt == 5 {
			return err
		}
	}
	return step(ctx, loop, seq, render, func() error {
		for i := 0; i < seq().Threshold(); i++ {
			if _, err := w.Rub(); err != nil {
				return err
			}
		}
		return nil
	}, lamp.ScreenPrize)
}

var errStayed = errors.New("widget stayed on the same screen")

// errorTracker counts the error modals shown so step can tell a failed action
// from one that is still settling.
type errorTracker struct {
	widget.Renderer
	shown  int
	last   string
}

func (t *errorTracker) ShowError(message string) {
	t.shown++
	t.last = message
	t.Renderer.ShowError(message)
}

// step runs action on the loop, then polls until the widget reaches want or
// shows an error.
func step(ctx context.Context, loop *widget.Loop, seq func() *widget.Sequencer, render *errorTracker, action func() error, want string) error {
	var (
		err    error
		before int
	)
	if !loop.Do(func() {
		before = render.shown
		err = action()
	}) {
		return ctx.Err()
	}
	if err != nil {
		return err
	}

	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
		var (
			screen string
			failed bool
			msg    string
		)
		if !loop.Do(func() {
			screen = seq().Screen()
			failed, msg = render.shown > before, render.last
		}) {
			return ctx.Err()
		}
		if screen == want {
			return nil
		}
		if failed {
			return fmt.Errorf("%w: %s (%s)", errStayed, screen, msg)
		}
	}
}
