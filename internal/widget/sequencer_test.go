package widget_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devpaiola/cadastroLead/internal/widget"
	"github.com/devpaiola/cadastroLead/internal/widget/widgettest"
)

var lampScreens = []widget.Screen{
	{Name: "tela-indicacao", Phase: widget.PhaseInitial},
	{Name: "tela-lampada", Phase: widget.PhaseInteracting},
	{Name: "modal-premio", Phase: widget.PhaseRevealed},
}

type harness struct {
	seq     *widget.Sequencer
	sched   *widgettest.Scheduler
	render  *widgettest.Renderer
	reveals int
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{sched: widgettest.NewScheduler(), render: widgettest.NewRenderer()}
	seq, err := widget.NewSequencer(widget.Options{
		Screens:     lampScreens,
		Threshold:   5,
		RevealDelay: time.Second,
		OnThreshold: func() { h.reveals++ },
	}, h.sched, h.render)
	require.NoError(t, err)
	h.seq = seq
	return h
}

func TestSequencer_StartsOnInitialScreen(t *testing.T) {
	h := newHarness(t)
	assert.Equal(t, "tela-indicacao", h.seq.Screen())
	assert.Equal(t, widget.PhaseInitial, h.seq.Phase())
	assert.Equal(t, []string{"tela-indicacao"}, h.render.Screens)
}

func TestSequencer_FiveInteractionsScheduleOneReveal(t *testing.T) {
	h := newHarness(t)
	for i := 0; i < 5; i++ {
		h.seq.RecordInteraction()
	}
	assert.Equal(t, 1, h.sched.PendingTimers())

	h.sched.Advance(999 * time.Millisecond)
	assert.Equal(t, 0, h.reveals)

	h.sched.Advance(time.Millisecond)
	assert.Equal(t, 1, h.reveals)
	assert.Equal(t, 5, h.seq.Interactions(), "counter is not reset by the reveal")
}

func TestSequencer_FourInteractionsScheduleNothing(t *testing.T) {
	h := newHarness(t)
	for i := 0; i < 4; i++ {
		h.seq.RecordInteraction()
	}
	assert.Equal(t, 0, h.sched.PendingTimers())
	h.sched.Advance(time.Minute)
	assert.Equal(t, 0, h.reveals)
}

func TestSequencer_InteractionsPastThresholdDoNotReschedule(t *testing.T) {
	h := newHarness(t)
	for i := 0; i < 9; i++ {
		h.seq.RecordInteraction()
	}
	h.sched.Advance(time.Minute)
	assert.Equal(t, 1, h.reveals)
	assert.Equal(t, 9, h.seq.Interactions())
}

func TestSequencer_ResetRestoresInitialState(t *testing.T) {
	h := newHarness(t)
	require.True(t, h.seq.Advance("tela-lampada"))
	h.seq.RecordInteraction()
	h.seq.RecordInteraction()
	h.seq.Reveal("Vale-compra R$ 100", "modal-premio")

	h.seq.Reset()

	assert.Equal(t, 0, h.seq.Interactions())
	assert.Equal(t, "tela-indicacao", h.seq.Screen())
	assert.Equal(t, widget.PhaseInitial, h.seq.Phase())
	assert.Empty(t, h.seq.Result())
	assert.Equal(t, "tela-indicacao", h.render.Visible())
	assert.Equal(t, 1, h.render.Cleared)
}

func TestSequencer_ResetDropsPendingReveal(t *testing.T) {
	h := newHarness(t)
	for i := 0; i < 5; i++ {
		h.seq.RecordInteraction()
	}
	h.seq.Reset()
	h.sched.Advance(time.Minute)
	assert.Equal(t, 0, h.reveals)
}

func TestSequencer_AdvanceUnknownScreenIsNoop(t *testing.T) {
	h := newHarness(t)
	require.True(t, h.seq.Advance("tela-lampada"))

	assert.NotPanics(t, func() {
		assert.False(t, h.seq.Advance("nonexistent-screen"))
	})
	assert.Equal(t, "tela-lampada", h.seq.Screen())
	assert.Equal(t, "tela-lampada", h.render.Visible())
}

func TestSequencer_AdvanceBackwardIsNoop(t *testing.T) {
	h := newHarness(t)
	require.True(t, h.seq.Advance("modal-premio"))
	assert.False(t, h.seq.Advance("tela-lampada"))
	assert.Equal(t, "modal-premio", h.seq.Screen())
	assert.Equal(t, widget.PhaseRevealed, h.seq.Phase())
}

func TestSequencer_MarkCollectingOnlyFromInitial(t *testing.T) {
	h := newHarness(t)
	h.seq.MarkCollecting()
	assert.Equal(t, widget.PhaseCollecting, h.seq.Phase())

	require.True(t, h.seq.Advance("tela-lampada"))
	h.seq.MarkCollecting()
	assert.Equal(t, widget.PhaseInteracting, h.seq.Phase())
}

func TestSequencer_CallDisablesControlUntilResolved(t *testing.T) {
	h := newHarness(t)
	h.seq.MarkCollecting()
	succeeded := false

	require.True(t, h.seq.Call("form-indicacao", func() error { return nil }, func() { succeeded = true }))
	assert.False(t, h.render.SubmitEnabled("form-indicacao"))
	assert.True(t, h.seq.InFlight())
	assert.Equal(t, widget.PhaseAwaitingRemote, h.seq.Phase())

	assert.False(t, h.seq.Call("form-indicacao", func() error { return nil }, nil), "second submit is refused")
	assert.Equal(t, 1, h.sched.PendingCalls())

	h.sched.Complete()
	assert.True(t, succeeded)
	assert.False(t, h.seq.InFlight())
	assert.True(t, h.render.SubmitEnabled("form-indicacao"))
}

func TestSequencer_CallFailureRestoresPhaseAndShowsMessage(t *testing.T) {
	h := newHarness(t)
	h.seq.MarkCollecting()

	remote := &widget.RemoteError{Op: "cadastrar", Message: "Email inválido"}
	h.seq.Call("form-indicacao", func() error { return remote }, func() { t.Fatal("success callback on failure") })
	h.sched.Complete()

	assert.Equal(t, widget.PhaseCollecting, h.seq.Phase())
	assert.Equal(t, "tela-indicacao", h.seq.Screen())
	assert.Equal(t, []string{"Email inválido"}, h.render.Errors)
	assert.True(t, h.render.SubmitEnabled("form-indicacao"))
}

func TestSequencer_ResetDropsStaleRemoteResult(t *testing.T) {
	h := newHarness(t)
	h.seq.Call("form-indicacao", func() error { return errors.New("boom") }, nil)
	h.seq.Reset()
	h.sched.Complete()

	assert.Empty(t, h.render.Errors)
	assert.Equal(t, widget.PhaseInitial, h.seq.Phase())
	assert.False(t, h.seq.InFlight())
	assert.True(t, h.render.SubmitEnabled("form-indicacao"))
}

func TestSequencer_SimulateUsesLatency(t *testing.T) {
	h := newHarness(t)
	done := false
	h.seq.Simulate("form-indicacao", 2*time.Second, func() error { return nil }, func() { done = true })

	h.sched.Advance(1999 * time.Millisecond)
	assert.False(t, done)
	assert.True(t, h.seq.InFlight())

	h.sched.Advance(time.Millisecond)
	assert.True(t, done)
	assert.False(t, h.seq.InFlight())
}

func TestNewSequencer_RejectsBadOptions(t *testing.T) {
	sched, render := widgettest.NewScheduler(), widgettest.NewRenderer()

	_, err := widget.NewSequencer(widget.Options{}, sched, render)
	require.Error(t, err)

	_, err = widget.NewSequencer(widget.Options{Screens: []widget.Screen{{Name: "a"}, {Name: "a"}}}, sched, render)
	require.Error(t, err)
}
