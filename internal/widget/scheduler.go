package widget

import (
	"context"
	"time"
)

// Scheduler runs deferred continuations on a widget's single event loop.
// Nothing scheduled can be cancelled: a delay always fires and a call always
// completes, so continuations must check whether they are still current.
type Scheduler interface {
	// After runs fn on the loop once d has elapsed.
	After(d time.Duration, fn func())
	// Go runs work off the loop and then runs done on the loop.
	Go(work func(), done func())
}

// Loop is a Scheduler backed by one goroutine that runs posted functions one at
// a time in arrival order. Widget state is only touched from that goroutine.
type Loop struct {
	inbox  chan func()
	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}
}

var _ Scheduler = (*Loop)(nil)

// NewLoop starts a loop that stops when parent is cancelled or Close is called.
func NewLoop(parent context.Context) *Loop {
	ctx, cancel := context.WithCancel(parent)
	l := &Loop{
		inbox:  make(chan func(), 64),
		ctx:    ctx,
		cancel: cancel,
		done:   make(chan struct{}),
	}
	go l.run()
	return l
}

func (l *Loop) run() {
	defer close(l.done)
	for {
		select {
		case <-l.ctx.Done():
			return
		case fn := <-l.inbox:
			fn()
		}
	}
}

// Post queues fn for the loop. It reports false once the loop has stopped.
// Functions running on the loop must not call Post or Do directly.
func (l *Loop) Post(fn func()) bool {
	if l.ctx.Err() != nil {
		return false
	}
	select {
	case <-l.ctx.Done():
		return false
	case l.inbox <- fn:
		return true
	}
}

// Do runs fn on the loop and waits for it to return.
func (l *Loop) Do(fn func()) bool {
	finished := make(chan struct{})
	if !l.Post(func() {
		defer close(finished)
		fn()
	}) {
		return false
	}
	select {
	case <-finished:
		return true
	case <-l.done:
		return false
	}
}

func (l *Loop) After(d time.Duration, fn func()) {
	time.AfterFunc(d, func() { l.Post(fn) })
}

func (l *Loop) Go(work func(), done func()) {
	go func() {
		work()
		l.Post(done)
	}()
}

// Close stops the loop and waits for the running function, if any, to return.
func (l *Loop) Close() {
	l.cancel()
	<-l.done
}
