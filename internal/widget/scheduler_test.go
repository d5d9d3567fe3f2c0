package widget

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoop_RunsPostedFunctionsInOrder(t *testing.T) {
	l := NewLoop(context.Background())
	defer l.Close()

	var got []int
	for i := 0; i < 10; i++ {
		i := i
		require.True(t, l.Post(func() { got = append(got, i) }))
	}
	require.True(t, l.Do(func() {}))
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, got)
}

func TestLoop_AfterRunsOnLoop(t *testing.T) {
	l := NewLoop(context.Background())
	defer l.Close()

	fired := make(chan struct{})
	l.After(10*time.Millisecond, func() { close(fired) })

	select {
	case <-fired:
	case <-time.After(time.Second):
		t.Fatal("timer never fired")
	}
}

func TestLoop_GoDeliversResultOnLoop(t *testing.T) {
	l := NewLoop(context.Background())
	defer l.Close()

	result := make(chan int, 1)
	var value int
	l.Go(func() { value = 42 }, func() { result <- value })

	select {
	case v := <-result:
		assert.Equal(t, 42, v)
	case <-time.After(time.Second):
		t.Fatal("continuation never ran")
	}
}

func TestLoop_PostAfterCloseFails(t *testing.T) {
	l := NewLoop(context.Background())
	l.Close()
	assert.False(t, l.Post(func() {}))
	assert.False(t, l.Do(func() {}))
}
