// Package notify carries user-visible feedback (toasts) out of the cart and
// wishlist engines. The engines only know the Sink interface; the terminal UI
// drains a Queue, the CLI prints, and tests record.
package notify

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

// Kind classifies a notice for presentation.
type Kind int

const (
	Success Kind = iota
	Error
)

func (k Kind) String() string {
	switch k {
	case Success:
		return "success"
	case Error:
		return "error"
	default:
		return "unknown"
	}
}

// Notice is a transient message shown for Duration.
type Notice struct {
	Kind     Kind
	Message  string
	Duration time.Duration
}

// NewSuccess and NewError build notices of the matching kind.
func NewSuccess(d time.Duration, msg string) Notice {
	return Notice{Kind: Success, Message: msg, Duration: d}
}

func NewError(d time.Duration, msg string) Notice {
	return Notice{Kind: Error, Message: msg, Duration: d}
}

// Sink receives notices. Implementations must not block the caller for long;
// Notify is invoked on the mutating goroutine after the store lock is
// released.
type Sink interface {
	Notify(Notice)
}

// Func adapts a function to Sink.
type Func func(Notice)

func (f Func) Notify(n Notice) { f(n) }

// Discard drops every notice.
var Discard Sink = Func(func(Notice) {})

// Multi fans a notice out to every non-nil sink in order.
func Multi(sinks ...Sink) Sink {
	out := make([]Sink, 0, len(sinks))
	for _, s := range sinks {
		if s != nil {
			out = append(out, s)
		}
	}
	return Func(func(n Notice) {
		for _, s := range out {
			s.Notify(n)
		}
	})
}

// Log writes notices to a zap logger at debug level, or warn for errors.
func Log(logger *zap.Logger) Sink {
	if logger == nil {
		logger = zap.NewNop()
	}
	return Func(func(n Notice) {
		fields := []zap.Field{
			zap.String("kind", n.Kind.String()),
			zap.Duration("duration", n.Duration),
		}
		if n.Kind == Error {
			logger.Warn(n.Message, fields...)
			return
		}
		logger.Debug(n.Message, fields...)
	})
}

// Recorder keeps every notice it receives. Safe for concurrent use.
type Recorder struct {
	mu      sync.Mutex
	notices []Notice
}

func (r *Recorder) Notify(n Notice) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notices = append(r.notices, n)
}

// Notices returns a copy of the recorded notices.
func (r *Recorder) Notices() []Notice {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Notice, len(r.notices))
	copy(out, r.notices)
	return out
}

// Messages returns just the recorded message texts.
func (r *Recorder) Messages() []string {
	notices := r.Notices()
	out := make([]string, len(notices))
	for i, n := range notices {
		out[i] = n.Message
	}
	return out
}

// Last returns the most recent notice.
func (r *Recorder) Last() (Notice, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.notices) == 0 {
		return Notice{}, false
	}
	return r.notices[len(r.notices)-1], true
}

// Reset forgets everything recorded so far.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notices = nil
}

// Queue buffers notices on a channel for a consumer on another goroutine.
// Notify never blocks: when the buffer is full the oldest notice is dropped.
type Queue struct {
	mu sync.Mutex
	ch chan Notice
}

const defaultQueueSize = 16

// NewQueue returns a queue holding up to size notices.
func NewQueue(size int) *Queue {
	if size <= 0 {
		size = defaultQueueSize
	}
	return &Queue{ch: make(chan Notice, size)}
}

func (q *Queue) Notify(n Notice) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for {
		select {
		case q.ch <- n:
			return
		default:
		}
		select {
		case <-q.ch:
		default:
		}
	}
}

// C returns the receive side of the queue.
func (q *Queue) C() <-chan Notice {
	return q.ch
}
