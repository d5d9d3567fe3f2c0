package lamp_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devpaiola/cadastroLead/internal/widget"
	"github.com/devpaiola/cadastroLead/internal/widget/lamp"
	"github.com/devpaiola/cadastroLead/internal/widget/widgettest"
)

// sequence replays values in order and repeats the last one.
type sequence struct {
	values []float64
	next   int
}

func (s *sequence) Float64() float64 {
	v := s.values[s.next]
	if s.next < len(s.values)-1 {
		s.next++
	}
	return v
}

type harness struct {
	w      *lamp.Widget
	src    *sequence
	sched  *widgettest.Scheduler
	render *widgettest.Renderer
}

func newHarness(t *testing.T, values ...float64) *harness {
	t.Helper()
	h := &harness{
		src:    &sequence{values: values},
		sched:  widgettest.NewScheduler(),
		render: widgettest.NewRenderer(),
	}
	w, err := lamp.New(lamp.Config{}, h.src, h.sched, h.render)
	require.NoError(t, err)
	h.w = w
	return h
}

var referrals = []widget.ReferralEntry{
	{Name: "Ana", Phone: "(11) 91111-1111"},
	{Name: "Bruno", Phone: "(11) 92222-2222"},
	{Name: "Carla", Phone: "(11) 93333-3333"},
}

func (h *harness) fill(t *testing.T, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		require.NoError(t, h.w.SetEntry(i, referrals[i]))
	}
}

func TestLamp_TwoOfThreeEntriesFailsWithoutCall(t *testing.T) {
	h := newHarness(t, 0.5)
	h.fill(t, 2)

	err := h.w.Submit()
	require.ErrorIs(t, err, widget.ErrValidation)

	assert.Equal(t, 0, h.sched.PendingTimers())
	assert.Equal(t, 0, h.sched.PendingCalls())
	assert.False(t, h.w.Sequencer().InFlight())
	assert.Equal(t, []string{"Indique 3 pessoas com nome e telefone"}, h.render.Errors)
	assert.Equal(t, [][]string{{"nome-indicado-3", "telefone-indicado-3"}}, h.render.Highlighted)
	assert.Equal(t, lamp.ScreenReferral, h.render.Visible())
}

func TestLamp_FullFlow(t *testing.T) {
	h := newHarness(t, 0.5)
	h.fill(t, 3)

	require.NoError(t, h.w.Submit())
	assert.False(t, h.render.SubmitEnabled(lamp.ControlReferral))

	h.sched.Advance(lamp.DefaultLatency - time.Millisecond)
	assert.Equal(t, lamp.ScreenReferral, h.render.Visible())

	h.sched.Advance(time.Millisecond)
	assert.Equal(t, lamp.ScreenLamp, h.render.Visible())
	assert.Equal(t, widget.PhaseInteracting, h.w.Sequencer().Phase())
	assert.True(t, h.render.SubmitEnabled(lamp.ControlReferral))

	for i := 1; i <= 4; i++ {
		n, err := h.w.Rub()
		require.NoError(t, err)
		assert.Equal(t, i, n)
	}
	assert.Equal(t, 0, h.sched.PendingTimers())

	_, err := h.w.Rub()
	require.NoError(t, err)
	h.sched.Advance(time.Second)

	// 0.5 falls in the second bucket of 0.4/0.3/0.2/0.1.
	assert.Equal(t, []string{"Frete Grátis"}, h.render.Results)
	assert.Equal(t, lamp.ScreenPrize, h.render.Visible())
	assert.Equal(t, widget.PhaseRevealed, h.w.Sequencer().Phase())

	_, err = h.w.Rub()
	assert.ErrorIs(t, err, widget.ErrWrongScreen, "the lamp is gone once the prize is shown")
}

func TestLamp_SimulatedFailureRestoresForm(t *testing.T) {
	h := newHarness(t, 0.9)
	h.fill(t, 3)

	require.NoError(t, h.w.Submit())
	h.sched.Advance(lamp.DefaultLatency)

	assert.Equal(t, []string{"Erro ao enviar indicações. Tente novamente."}, h.render.Errors)
	assert.Equal(t, lamp.ScreenReferral, h.render.Visible())
	assert.Equal(t, widget.PhaseCollecting, h.w.Sequencer().Phase())
	assert.True(t, h.render.SubmitEnabled(lamp.ControlReferral))
	assert.Equal(t, referrals, h.w.Entries(), "entries are kept for a retry")
}

func TestLamp_SubmitWhileSimulatingIsRefused(t *testing.T) {
	h := newHarness(t, 0.5)
	h.fill(t, 3)

	require.NoError(t, h.w.Submit())
	assert.ErrorIs(t, h.w.Submit(), widget.ErrInFlight)
	assert.Equal(t, 1, h.sched.PendingTimers())
}

func TestLamp_RubBeforeLampIsRejected(t *testing.T) {
	h := newHarness(t, 0.5)
	n, err := h.w.Rub()
	assert.ErrorIs(t, err, widget.ErrWrongScreen)
	assert.Equal(t, 0, n)
}

func TestLamp_ResetAfterReveal(t *testing.T) {
	h := newHarness(t, 0.1)
	h.fill(t, 3)
	require.NoError(t, h.w.Submit())
	h.sched.Advance(lamp.DefaultLatency)
	for i := 0; i < 5; i++ {
		_, err := h.w.Rub()
		require.NoError(t, err)
	}
	h.sched.Advance(time.Second)
	require.Equal(t, []string{"Desconto de 10%"}, h.render.Results)

	h.w.Reset()

	assert.Equal(t, lamp.ScreenReferral, h.render.Visible())
	assert.Equal(t, 0, h.w.Sequencer().Interactions())
	assert.Empty(t, h.w.Sequencer().Result())
	assert.Equal(t, make([]widget.ReferralEntry, lamp.Entries), h.w.Entries())
}

func TestLamp_ResetDuringSimulationDropsOutcome(t *testing.T) {
	h := newHarness(t, 0.5)
	h.fill(t, 3)
	require.NoError(t, h.w.Submit())

	h.w.Reset()
	h.sched.Advance(lamp.DefaultLatency)

	assert.Equal(t, lamp.ScreenReferral, h.render.Visible())
	assert.Empty(t, h.render.Errors)
	assert.False(t, h.w.Sequencer().InFlight())
}

func TestNew_RejectsBadCatalog(t *testing.T) {
	_, err := lamp.New(lamp.Config{Prizes: []string{"A", "B"}, Weights: []float64{0.5, 0.6}},
		&sequence{values: []float64{0}}, widgettest.NewScheduler(), widgettest.NewRenderer())
	require.Error(t, err)

	_, err = lamp.New(lamp.Config{}, nil, widgettest.NewScheduler(), widgettest.NewRenderer())
	require.Error(t, err)
}
