package session

import (
	"time"

	"github.com/google/uuid"
	"github.com/sandeepkv93/stride/internal/curriculum"
	"github.com/sandeepkv93/stride/internal/model"
)

type Phase string

const (
	PhaseIdle     Phase = "idle"
	PhaseRunning  Phase = "running"
	PhasePaused   Phase = "paused"
	PhaseComplete Phase = "complete"
)

type EventKind int

const (
	EventNone EventKind = iota
	EventActivityAdvanced
	EventSessionComplete
)

type Event struct {
	Kind EventKind
	// Record is set for EventSessionComplete.
	Record *model.CompletionRecord
	// Recorded is false when the ledger already held the key or refused it.
	Recorded bool
	Err      error
}

// Ledger receives one record per completed session.
type Ledger interface {
	Record(rec model.CompletionRecord) (bool, error)
}

// Machine advances one session activity by activity. It is not safe for
// concurrent use; the TUI drives it from its single update loop.
type Machine struct {
	runID     string
	week      int
	variant   model.VariantKey
	session   model.AdaptedSession
	ledger    Ledger
	now       func() time.Time
	index     int
	remaining int
	total     int
	phase     Phase
}

func New(week int, variant model.VariantKey, s model.AdaptedSession, ledger Ledger, now func() time.Time) *Machine {
	if now == nil {
		now = time.Now
	}
	m := &Machine{
		week:    week,
		variant: variant,
		ledger:  ledger,
		now:     now,
	}
	m.Reset(s)
	return m
}

// Reset rebuilds the machine for s. Nothing from the previous countdown
// survives, and a new run id is issued.
func (m *Machine) Reset(s model.AdaptedSession) {
	m.runID = uuid.NewString()
	m.session = s
	m.index = 0
	if len(s.Activities) == 0 {
		m.remaining, m.total = 0, 0
		m.phase = PhaseComplete
		return
	}
	m.seed()
	m.phase = PhaseIdle
}

func (m *Machine) seed() {
	m.total = curriculum.CountdownSeconds(m.session.Activities[m.index].Duration)
	m.remaining = m.total
}

func (m *Machine) Start() bool {
	if m.phase != PhaseIdle && m.phase != PhasePaused {
		return false
	}
	if m.remaining <= 0 {
		return false
	}
	m.phase = PhaseRunning
	return true
}

func (m *Machine) Pause() bool {
	if m.phase != PhaseRunning {
		return false
	}
	m.phase = PhasePaused
	return true
}

// Tick decrements the countdown by one second while running.
func (m *Machine) Tick() Event {
	if m.phase != PhaseRunning {
		return Event{}
	}
	if m.remaining > 0 {
		m.remaining--
	}
	if m.remaining > 0 {
		return Event{}
	}
	return m.completeActivity()
}

// Skip finishes the current activity regardless of time left.
func (m *Machine) Skip() Event {
	if m.phase == PhaseComplete {
		return Event{}
	}
	return m.completeActivity()
}

func (m *Machine) completeActivity() Event {
	if m.index < len(m.session.Activities)-1 {
		m.index++
		m.seed()
		m.phase = PhaseIdle
		return Event{Kind: EventActivityAdvanced}
	}

	rec := model.CompletionRecord{Week: m.week, Variant: m.variant, Date: m.now()}
	m.phase = PhaseComplete
	m.index = 0
	m.remaining = 0
	ev := Event{Kind: EventSessionComplete, Record: &rec}
	if m.ledger != nil {
		ev.Recorded, ev.Err = m.ledger.Record(rec)
	}
	return ev
}

func (m *Machine) RunID() string             { return m.runID }
func (m *Machine) Week() int                 { return m.week }
func (m *Machine) Variant() model.VariantKey { return m.variant }
func (m *Machine) Phase() Phase              { return m.phase }
func (m *Machine) Index() int                { return m.index }
func (m *Machine) Remaining() int            { return m.remaining }
func (m *Machine) Total() int                { return m.total }
func (m *Machine) Len() int                  { return len(m.session.Activities) }

// Activity returns the activity under the cursor.
func (m *Machine) Activity() (model.AdaptedActivity, bool) {
	if len(m.session.Activities) == 0 {
		return model.AdaptedActivity{}, false
	}
	return m.session.Activities[m.index], true
}

func (m *Machine) Session() model.AdaptedSession { return m.session }
