package update

import (
	"context"
	"fmt"

	"github.com/sandeepkv93/stride/internal/model"
	"github.com/sandeepkv93/stride/internal/notify"
	"github.com/sandeepkv93/stride/internal/storage"
)

// setPreferences is the single mutation path for preferences: validate,
// persist, re-apply the reminder and rebuild any open session.
func (m *Model) setPreferences(next model.Preferences) error {
	if err := next.Validate(); err != nil {
		m.log.Warn("preference change rejected", "error", err)
		return err
	}
	if next == m.Prefs {
		return nil
	}
	var saveErr error
	if m.store != nil {
		if err := storage.SavePreferences(context.Background(), m.store, next); err != nil {
			m.log.Error("preferences not saved", "error", err)
			saveErr = fmt.Errorf("preferences not saved: %w", err)
		}
	}
	m.applyPreferences(next)
	m.cues.Emit(notify.CueToggle)
	return saveErr
}

// applyPreferences takes next into effect without persisting it.
func (m *Model) applyPreferences(next model.Preferences) {
	prev := m.Prefs
	m.Prefs = next
	if m.reminder != nil {
		if err := m.reminder.Apply(next); err != nil {
			m.log.Warn("reminder not applied", "error", err)
		}
	}
	if m.machine == nil {
		return
	}
	if prev.ExtendedBreaks == next.ExtendedBreaks && prev.SkipComplex == next.SkipComplex {
		return
	}
	p, err := m.todayPlan()
	if err != nil {
		return
	}
	// durations changed; the countdown restarts from the first activity
	m.tickSeq++
	m.outcome = ""
	m.machine.Reset(p.session)
}

// reloadPreferences re-reads stored preferences after an external edit.
func (m *Model) reloadPreferences() {
	if m.store == nil {
		return
	}
	p, err := storage.LoadPreferences(context.Background(), m.store)
	if err != nil {
		m.log.Warn("stored preferences unreadable, keeping current", "error", err)
		return
	}
	if p == m.Prefs {
		return
	}
	m.log.Info("preferences changed on disk")
	m.applyPreferences(p)
	m.notify("Settings", "preferences reloaded from disk", "info")
}
