// Package progress carries completion updates from the multiplication engines
// to whichever front end is watching them.
package progress

import (
	"sync"

	"github.com/rs/zerolog"
)

// ReportThreshold is the minimum change between two forwarded updates.
const ReportThreshold = 0.01

// ProgressUpdate is one progress sample of one engine.
type ProgressUpdate struct {
	// EngineIndex identifies the engine among those running concurrently.
	EngineIndex int
	// Value is the completed fraction, in [0, 1].
	Value float64
}

// Reporter is the callback an engine invokes with its completed fraction.
type Reporter func(progress float64)

// Observer receives progress notifications.
type Observer interface {
	Update(engineIndex int, progress float64)
}

// Subject fans progress out to registered observers. It is safe for
// concurrent use.
type Subject struct {
	mu        sync.RWMutex
	observers []Observer
}

// NewSubject returns a subject with no observers.
func NewSubject() *Subject {
	return &Subject{}
}

// Register adds o. A nil observer is ignored.
func (s *Subject) Register(o Observer) {
	if o == nil {
		return
	}
	s.mu.Lock()
	s.observers = append(s.observers, o)
	s.mu.Unlock()
}

// Unregister removes o if present.
func (s *Subject) Unregister(o Observer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, registered := range s.observers {
		if registered == o {
			s.observers = append(s.observers[:i], s.observers[i+1:]...)
			return
		}
	}
}

// Notify sends progress for engineIndex to every observer.
func (s *Subject) Notify(engineIndex int, progress float64) {
	s.mu.RLock()
	observers := make([]Observer, len(s.observers))
	copy(observers, s.observers)
	s.mu.RUnlock()

	for _, o := range observers {
		o.Update(engineIndex, progress)
	}
}

// ObserverCount returns the number of registered observers.
func (s *Subject) ObserverCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.observers)
}

// AsReporter binds the subject to one engine index.
func (s *Subject) AsReporter(engineIndex int) Reporter {
	return func(progress float64) {
		s.Notify(engineIndex, progress)
	}
}

// ChannelObserver forwards updates to a channel without ever blocking the
// engine: when the channel is full the update is dropped.
type ChannelObserver struct {
	ch chan<- ProgressUpdate
}

// NewChannelObserver returns an observer writing to ch. A nil channel
// discards every update.
func NewChannelObserver(ch chan<- ProgressUpdate) *ChannelObserver {
	return &ChannelObserver{ch: ch}
}

// Update implements Observer.
func (o *ChannelObserver) Update(engineIndex int, progress float64) {
	if o.ch == nil {
		return
	}
	progress = min(max(progress, 0), 1)
	select {
	case o.ch <- ProgressUpdate{EngineIndex: engineIndex, Value: progress}:
	default:
	}
}

// LoggingObserver writes a debug event whenever an engine advances by at
// least threshold.
type LoggingObserver struct {
	logger    zerolog.Logger
	threshold float64

	mu      sync.Mutex
	lastLog map[int]float64
}

// NewLoggingObserver returns a throttled logging observer. A non-positive
// threshold defaults to 10%.
func NewLoggingObserver(logger zerolog.Logger, threshold float64) *LoggingObserver {
	if threshold <= 0 {
		threshold = 0.1
	}
	return &LoggingObserver{
		logger:    logger,
		threshold: threshold,
		lastLog:   make(map[int]float64),
	}
}

// Update implements Observer.
func (o *LoggingObserver) Update(engineIndex int, progress float64) {
	o.mu.Lock()
	last, seen := o.lastLog[engineIndex]
	emit := !seen || progress-last >= o.threshold || progress >= 1.0
	if emit {
		o.lastLog[engineIndex] = progress
	}
	o.mu.Unlock()

	if emit {
		o.logger.Debug().
			Int("engine", engineIndex).
			Float64("progress", progress).
			Msg("multiplication progress")
	}
}

// NoOpObserver discards every update.
type NoOpObserver struct{}

// Update implements Observer.
func (NoOpObserver) Update(int, float64) {}

// Throttle wraps r so that it only forwards values that moved by at least
// ReportThreshold since the last forwarded one, plus the final 1.0.
func Throttle(r Reporter) Reporter {
	if r == nil {
		return func(float64) {}
	}
	last := -1.0
	return func(p float64) {
		if p-last >= ReportThreshold || (p >= 1.0 && last < 1.0) {
			last = p
			r(p)
		}
	}
}
