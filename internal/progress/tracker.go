package progress

import (
	"context"
	"log/slog"

	"github.com/sandeepkv93/stride/internal/model"
	"github.com/sandeepkv93/stride/internal/storage"
)

// Tracker owns ProgramState and persists it on every change. It implements
// session.Ledger.
type Tracker struct {
	store storage.Store
	log   *slog.Logger
	state model.ProgramState
}

// Load reads the stored state. A read failure is logged and the default
// state is used.
func Load(ctx context.Context, store storage.Store, log *slog.Logger) *Tracker {
	if log == nil {
		log = slog.Default()
	}
	st, err := storage.LoadProgress(ctx, store)
	if err != nil {
		log.Warn("progress load failed, starting fresh", "error", err)
	}
	return &Tracker{store: store, log: log, state: st}
}

func (t *Tracker) CurrentWeek() int { return t.state.CurrentWeek }

// SetWeek moves to week n, clamped to 1..12.
func (t *Tracker) SetWeek(n int) (int, error) {
	clamped := model.ClampWeek(n)
	if clamped != n {
		t.log.Warn("week out of range, clamped", "error", &model.OutOfRangeError{Week: n}, "week", clamped)
	}
	if clamped == t.state.CurrentWeek {
		return clamped, nil
	}
	t.state.CurrentWeek = clamped
	return clamped, t.changed()
}

func (t *Tracker) NextWeek() (int, error) { return t.SetWeek(t.state.CurrentWeek + 1) }

func (t *Tracker) PrevWeek() (int, error) { return t.SetWeek(t.state.CurrentWeek - 1) }

// Record adds the completion key. added is false when the key was already
// present for that day.
func (t *Tracker) Record(rec model.CompletionRecord) (bool, error) {
	key := rec.Key()
	if t.state.Completed[key] {
		return false, nil
	}
	t.state.Completed[key] = true
	t.log.Info("session completed", "key", key)
	return true, t.changed()
}

func (t *Tracker) IsCompleted(key string) bool { return t.state.Completed[key] }

func (t *Tracker) CompletedInWeek(n int) int { return t.state.CompletedInWeek(n) }

func (t *Tracker) Total() int { return len(t.state.Keys()) }

func (t *Tracker) Keys() []string { return t.state.Keys() }

// Reset clears the ledger and returns to week 1.
func (t *Tracker) Reset() error {
	t.state = model.DefaultProgramState()
	return t.changed()
}

func (t *Tracker) changed() error {
	if err := storage.SaveProgress(context.Background(), t.store, t.state); err != nil {
		t.log.Error("progress save failed", "error", err)
		return err
	}
	return nil
}
