package control

import (
	"context"
	"errors"
	"log"
	"time"

	"Breathe/timer"
)

// DefaultEnqueueTimeout bounds how long Enqueue may block the caller.
const DefaultEnqueueTimeout = 150 * time.Millisecond

// ErrDropped is returned by Send when the command queue stayed full.
var ErrDropped = errors.New("command dropped: queue full")

// Observer receives a snapshot after every applied command or tick.
type Observer func(timer.Snapshot)

// Loop serializes commands and ticks for a single Clock. The ticker is held
// only while the clock runs.
type Loop struct {
	clock          *timer.Clock
	ticks          timer.TickSource
	cmdCh          chan Command
	observer       Observer
	enqueueTimeout time.Duration

	// owned by Run
	ticker timer.Ticker
}

// NewLoop creates a loop for clock. A nil ticks uses timer.SystemTicks.
func NewLoop(clock *timer.Clock, ticks timer.TickSource, observer Observer) *Loop {
	if ticks == nil {
		ticks = timer.SystemTicks
	}
	return &Loop{
		clock:          clock,
		ticks:          ticks,
		cmdCh:          make(chan Command, 64),
		observer:       observer,
		enqueueTimeout: DefaultEnqueueTimeout,
	}
}

// Enqueue posts a command without waiting for it to be applied. If the queue
// stays full for the enqueue timeout the command is dropped and logged.
func (l *Loop) Enqueue(cmd Command) {
	select {
	case l.cmdCh <- cmd:
	case <-time.After(l.enqueueTimeout):
		log.Printf("Enqueue timeout: dropping %s command", cmd.Type)
	}
}

// Send posts a command and waits until the loop has applied it or ctx ends.
func (l *Loop) Send(ctx context.Context, cmd Command) error {
	reply := make(chan error, 1)
	cmd.Reply = reply
	select {
	case l.cmdCh <- cmd:
	case <-time.After(l.enqueueTimeout):
		return ErrDropped
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case err := <-reply:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Run processes commands and ticks until ctx is cancelled. The ticker, if
// any, is released before Run returns.
func (l *Loop) Run(ctx context.Context) {
	defer l.releaseTicker()

	if l.clock.Running() {
		l.acquireTicker()
	}
	l.publish()

	for {
		select {
		case <-ctx.Done():
			return
		case cmd := <-l.cmdCh:
			l.apply(cmd)
			l.publish()
			if cmd.Reply != nil {
				select {
				case cmd.Reply <- nil:
				default:
				}
			}
		case <-l.tickC():
			l.clock.Tick()
			l.publish()
		}
	}
}

func (l *Loop) apply(cmd Command) {
	switch cmd.Type {
	case CmdStart:
		l.start()
	case CmdStop:
		l.stop()
	case CmdToggle:
		if l.clock.Running() {
			l.stop()
		} else {
			l.start()
		}
	case CmdSetDurations:
		l.clock.SetDurations(cmd.Durations)
	case CmdReset:
		l.clock.Reset()
	default:
		log.Printf("Unknown command type %d", cmd.Type)
	}
}

func (l *Loop) start() {
	l.clock.Start()
	l.acquireTicker()
}

func (l *Loop) stop() {
	l.clock.Stop()
	l.releaseTicker()
}

func (l *Loop) acquireTicker() {
	if l.ticker == nil {
		l.ticker = l.ticks.NewTicker(timer.TickInterval)
	}
}

func (l *Loop) releaseTicker() {
	if l.ticker != nil {
		l.ticker.Stop()
		l.ticker = nil
	}
}

// tickC returns nil while stopped; a nil channel never fires in select.
func (l *Loop) tickC() <-chan time.Time {
	if l.ticker == nil {
		return nil
	}
	return l.ticker.C()
}

func (l *Loop) publish() {
	if l.observer != nil {
		l.observer(l.clock.Snapshot())
	}
}
