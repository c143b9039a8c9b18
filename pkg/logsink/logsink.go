// Package logsink provides a bounded, in-memory buffer of recent log entries.
package logsink

import (
	"sync"
	"time"

	"github.com/navikt/airtable-tasklists/pkg/service"
	"github.com/rs/zerolog"
)

const (
	DefaultCapacity    = 100
	DefaultRecentLimit = 20
)

var _ service.LogSink = &Sink{}

// Sink is a fixed size ring buffer, once full the oldest entry is evicted for
// every new one. Every entry is also written to the zerolog logger.
type Sink struct {
	mu      sync.Mutex
	entries []service.LogEntry
	start   int
	size    int
	now     func() time.Time
	log     zerolog.Logger
}

func (s *Sink) Info(message string) {
	s.Append(service.LogLevelInfo, message)
}

func (s *Sink) Error(message string) {
	s.Append(service.LogLevelError, message)
}

func (s *Sink) Append(level service.LogLevel, message string) {
	entry := service.LogEntry{
		Timestamp: s.now().UTC().Format(service.TimestampLayout),
		Message:   message,
		Level:     level,
	}

	s.mu.Lock()
	if s.size < len(s.entries) {
		s.entries[(s.start+s.size)%len(s.entries)] = entry
		s.size++
	} else {
		s.entries[s.start] = entry
		s.start = (s.start + 1) % len(s.entries)
	}
	s.mu.Unlock()

	switch level {
	case service.LogLevelError:
		s.log.Error().Msg(message)
	default:
		s.log.Info().Msg(message)
	}
}

// Recent returns up to n of the newest entries, oldest first.
func (s *Sink) Recent(n int) []service.LogEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	if n <= 0 {
		return []service.LogEntry{}
	}

	if n > s.size {
		n = s.size
	}

	out := make([]service.LogEntry, 0, n)
	for i := s.size - n; i < s.size; i++ {
		out = append(out, s.entries[(s.start+i)%len(s.entries)])
	}

	return out
}

func (s *Sink) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.size
}

func (s *Sink) Capacity() int {
	return len(s.entries)
}

type Option func(*Sink)

// WithClock replaces the clock used to timestamp entries.
func WithClock(now func() time.Time) Option {
	return func(s *Sink) {
		s.now = now
	}
}

// New returns a Sink holding at most capacity entries, a capacity below one
// falls back to DefaultCapacity.
func New(capacity int, log zerolog.Logger, opts ...Option) *Sink {
	if capacity < 1 {
		capacity = DefaultCapacity
	}

	s := &Sink{
		entries: make([]service.LogEntry, capacity),
		now:     time.Now,
		log:     log,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}
