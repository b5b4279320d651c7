package viewer

import "time"

// TickSource drives timed work one frame at a time. Start registers fn to be
// called once per tick with the time elapsed since the previous tick, until
// fn returns false or the returned Ticker is stopped.
type TickSource interface {
	Start(fn func(dt time.Duration) bool) Ticker
}

// Ticker is a running subscription on a TickSource.
type Ticker interface {
	Stop()
}

// FrameTicker is a TickSource advanced explicitly by its host, typically
// once per game-loop update. It is not safe for concurrent use.
type FrameTicker struct {
	subs []*frameSub
}

type frameSub struct {
	fn      func(time.Duration) bool
	stopped bool
}

func (s *frameSub) Stop() { s.stopped = true }

// NewFrameTicker returns an idle FrameTicker.
func NewFrameTicker() *FrameTicker {
	return &FrameTicker{}
}

// Start implements TickSource.
func (f *FrameTicker) Start(fn func(time.Duration) bool) Ticker {
	s := &frameSub{fn: fn}
	f.subs = append(f.subs, s)
	return s
}

// Advance delivers one tick of length dt to every active subscription.
// Subscriptions started during Advance receive their first tick on the next
// call.
func (f *FrameTicker) Advance(dt time.Duration) {
	current := f.subs
	for _, s := range current {
		if s.stopped {
			continue
		}
		if !s.fn(dt) {
			s.stopped = true
		}
	}
	live := f.subs[:0]
	for _, s := range f.subs {
		if !s.stopped {
			live = append(live, s)
		}
	}
	for i := len(live); i < len(f.subs); i++ {
		f.subs[i] = nil
	}
	f.subs = live
}

// Active returns the number of live subscriptions.
func (f *FrameTicker) Active() int {
	n := 0
	for _, s := range f.subs {
		if !s.stopped {
			n++
		}
	}
	return n
}
