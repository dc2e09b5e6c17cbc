package scheduler

import (
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sandeepkv93/stride/internal/model"
)

const (
	DefaultTestDelay = 2 * time.Second

	KindDaily = "daily"
	KindTest  = "test"
)

// Notifier is the platform surface a reminder is shown on.
type Notifier interface {
	PermissionGranted() bool
	Show(title, body string) error
}

type ReminderEvent struct {
	ID        string
	Kind      string
	TriggerAt time.Time
	FiredAt   time.Time
	Err       error
}

type Options struct {
	TestDelay  time.Duration
	BufferSize int
}

// Reminder keeps at most one daily timer armed. Each fire shows the
// notification, publishes an event and arms the next day.
type Reminder struct {
	mu       sync.Mutex
	clock    Clock
	notifier Notifier
	log      *slog.Logger
	opts     Options
	out      chan ReminderEvent

	prefs   model.Preferences
	timer   Timer
	gen     uint64
	next    time.Time
	armed   bool
	stopped bool

	testTimer Timer
	testGen   uint64
	latched   bool

	dropped uint64
}

func NewReminder(clock Clock, notifier Notifier, log *slog.Logger, opts Options) *Reminder {
	if clock == nil {
		clock = SystemClock{}
	}
	if log == nil {
		log = slog.Default()
	}
	if opts.TestDelay <= 0 {
		opts.TestDelay = DefaultTestDelay
	}
	if opts.BufferSize <= 0 {
		opts.BufferSize = 4
	}
	return &Reminder{
		clock:    clock,
		notifier: notifier,
		log:      log,
		opts:     opts,
		out:      make(chan ReminderEvent, opts.BufferSize),
	}
}

func (r *Reminder) C() <-chan ReminderEvent {
	return r.out
}

func (r *Reminder) Dropped() uint64 {
	return atomic.LoadUint64(&r.dropped)
}

// Pending reports the armed fire time, if any.
func (r *Reminder) Pending() (time.Time, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.next, r.armed
}

// Apply cancels whatever is armed and, when notifications are on and the
// platform allows them, arms the next fire for prefs.ReminderTime. The first
// Apply after notifications turn on also queues a one-off test notification.
func (r *Reminder) Apply(prefs model.Preferences) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.stopped {
		return ErrSchedulerStopped
	}

	r.cancelLocked()
	r.prefs = prefs

	if !prefs.Notifications {
		r.latched = false
		r.cancelTestLocked()
		r.log.Debug("reminder disabled")
		return nil
	}
	if r.notifier == nil || !r.notifier.PermissionGranted() {
		r.log.Warn("notification permission not granted, reminder not armed")
		return nil
	}

	if !r.latched {
		r.latched = true
		r.armTestLocked()
	}

	now := r.clock.Now()
	fire, err := NextFireTime(prefs.ReminderTime, now)
	if err != nil {
		r.log.Warn("reminder not scheduled", "reminder_time", prefs.ReminderTime, "error", err)
		return err
	}
	return r.armLocked(fire, now)
}

// Arm replaces the pending daily timer with one firing at fire. The delay
// must fall within [0, MaxArmDelay].
func (r *Reminder) Arm(fire, now time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.stopped {
		return ErrSchedulerStopped
	}
	r.cancelLocked()
	return r.armLocked(fire, now)
}

// Stop cancels both timers and closes C. It is safe to call more than once.
func (r *Reminder) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.stopped {
		return
	}
	r.stopped = true
	r.cancelLocked()
	r.cancelTestLocked()
	close(r.out)
}

func (r *Reminder) armLocked(fire, now time.Time) error {
	delta := fire.Sub(now)
	if delta < 0 || delta > MaxArmDelay {
		r.log.Warn("reminder delay out of range", "fire_at", fire, "delta", delta)
		return fmt.Errorf("%w: %s", ErrDeltaOutOfRange, delta)
	}
	r.gen++
	gen := r.gen
	r.timer = r.clock.AfterFunc(delta, func() { r.fire(gen, fire) })
	r.next = fire
	r.armed = true
	r.log.Info("reminder armed", "fire_at", fire.Format(time.RFC3339))
	return nil
}

func (r *Reminder) cancelLocked() {
	r.gen++
	if r.timer != nil {
		r.timer.Stop()
		r.timer = nil
	}
	r.next = time.Time{}
	r.armed = false
}

func (r *Reminder) armTestLocked() {
	r.testGen++
	gen := r.testGen
	trigger := r.clock.Now().Add(r.opts.TestDelay)
	r.testTimer = r.clock.AfterFunc(r.opts.TestDelay, func() { r.fireTest(gen, trigger) })
}

func (r *Reminder) cancelTestLocked() {
	r.testGen++
	if r.testTimer != nil {
		r.testTimer.Stop()
		r.testTimer = nil
	}
}

func (r *Reminder) fire(gen uint64, trigger time.Time) {
	r.mu.Lock()
	if r.stopped || gen != r.gen {
		r.mu.Unlock()
		return
	}
	r.timer = nil
	r.armed = false
	r.next = time.Time{}
	prefs := r.prefs
	r.mu.Unlock()

	err := r.show("Time for your session", dailyBody(prefs))
	if err != nil {
		r.log.Error("reminder notification failed", "error", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.stopped || gen != r.gen {
		return
	}
	now := r.clock.Now()
	r.publishLocked(ReminderEvent{ID: "daily-reminder", Kind: KindDaily, TriggerAt: trigger, FiredAt: now, Err: err})

	base := now
	if base.Before(trigger) {
		base = trigger
	}
	next, nerr := NextFireTime(prefs.ReminderTime, base)
	if nerr != nil {
		r.log.Warn("reminder not rescheduled", "error", nerr)
		return
	}
	_ = r.armLocked(next, now)
}

func (r *Reminder) fireTest(gen uint64, trigger time.Time) {
	r.mu.Lock()
	if r.stopped || gen != r.testGen {
		r.mu.Unlock()
		return
	}
	r.testTimer = nil
	prefs := r.prefs
	r.mu.Unlock()

	err := r.show("Reminders are on", fmt.Sprintf("You'll be reminded daily at %s.", prefs.ReminderTime))
	if err != nil {
		r.log.Error("test notification failed", "error", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.stopped || gen != r.testGen {
		return
	}
	r.publishLocked(ReminderEvent{ID: "test-notification", Kind: KindTest, TriggerAt: trigger, FiredAt: r.clock.Now(), Err: err})
}

// show asks for permission again at fire time; it may have been revoked
// since the timer was armed.
func (r *Reminder) show(title, body string) error {
	if r.notifier == nil {
		return nil
	}
	if !r.notifier.PermissionGranted() {
		r.log.Warn("notification permission revoked, skipping", "title", title)
		return ErrPermissionDenied
	}
	return r.notifier.Show(title, body)
}

func (r *Reminder) publishLocked(ev ReminderEvent) {
	select {
	case r.out <- ev:
	default:
		atomic.AddUint64(&r.dropped, 1)
	}
}

func dailyBody(prefs model.Preferences) string {
	if prefs.ExtendedBreaks {
		return "Your daily session is ready. Take it at your own pace."
	}
	return "Your daily session is ready."
}
