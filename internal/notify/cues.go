package notify

import (
	"io"
	"log/slog"
	"sync"
)

// Cue names a moment the user may want to hear or see.
type Cue string

const (
	CueSessionStart    Cue = "session_start"
	CueActivityAdvance Cue = "activity_advance"
	CueSessionComplete Cue = "session_complete"
	CueNavigation      Cue = "navigation"
	CueToggle          Cue = "toggle"
)

// CueSink receives cues. Emit must not block.
type CueSink interface {
	Emit(Cue)
}

type NoopSink struct{}

func (NoopSink) Emit(Cue) {}

// BellSink rings the terminal bell on activity and session completion while
// Enabled reports true.
type BellSink struct {
	mu      sync.Mutex
	w       io.Writer
	enabled func() bool
}

func NewBellSink(w io.Writer, enabled func() bool) *BellSink {
	return &BellSink{w: w, enabled: enabled}
}

func (b *BellSink) Emit(c Cue) {
	if c != CueActivityAdvance && c != CueSessionComplete {
		return
	}
	if b.enabled != nil && !b.enabled() {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	_, _ = b.w.Write([]byte("\a"))
}

type LogSink struct {
	Log *slog.Logger
}

func (s LogSink) Emit(c Cue) {
	log := s.Log
	if log == nil {
		log = slog.Default()
	}
	log.Debug("cue", "name", string(c))
}

// Multi fans a cue out to every sink.
type Multi []CueSink

func (m Multi) Emit(c Cue) {
	for _, s := range m {
		if s != nil {
			s.Emit(c)
		}
	}
}
