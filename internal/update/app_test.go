package update

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/stride/internal/curriculum"
	"github.com/sandeepkv93/stride/internal/model"
	"github.com/sandeepkv93/stride/internal/notify"
	ledger "github.com/sandeepkv93/stride/internal/progress"
	"github.com/sandeepkv93/stride/internal/scheduler"
	"github.com/sandeepkv93/stride/internal/session"
	"github.com/sandeepkv93/stride/internal/storage"
)

// Monday
var monday = time.Date(2026, 10, 19, 8, 0, 0, 0, time.UTC)

type grantedSurface struct{ shown int }

func (s *grantedSurface) PermissionGranted() bool { return true }
func (s *grantedSurface) Show(string, string) error {
	s.shown++
	return nil
}

type cueRecorder struct{ cues []notify.Cue }

func (r *cueRecorder) Emit(c notify.Cue) { r.cues = append(r.cues, c) }

func (r *cueRecorder) count(c notify.Cue) int {
	n := 0
	for _, got := range r.cues {
		if got == c {
			n++
		}
	}
	return n
}

type fixture struct {
	model    Model
	store    *storage.FileStore
	tracker  *ledger.Tracker
	clock    *scheduler.ManualClock
	reminder *scheduler.Reminder
	cues     *cueRecorder
}

func newFixture(t *testing.T, now time.Time) fixture {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	cur, err := curriculum.Load()
	if err != nil {
		t.Fatalf("curriculum: %v", err)
	}
	store, err := storage.NewFileStore(filepath.Join(t.TempDir(), "data"))
	if err != nil {
		t.Fatalf("store: %v", err)
	}
	tracker := ledger.Load(context.Background(), store, log)
	clock := scheduler.NewManualClock(now)
	reminder := scheduler.NewReminder(clock, &grantedSurface{}, log, scheduler.Options{})
	cues := &cueRecorder{}
	m := NewModel(Deps{
		Curriculum: cur,
		Tracker:    tracker,
		Store:      store,
		Reminder:   reminder,
		Cues:       cues,
		Log:        log,
		Now:        clock.Now,
	})
	return fixture{model: m, store: store, tracker: tracker, clock: clock, reminder: reminder, cues: cues}
}

func step(m Model, msg tea.Msg) (Model, tea.Cmd) {
	updated, cmd := m.Update(msg)
	return updated.(Model), cmd
}

func keys(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var space = tea.KeyMsg{Type: tea.KeySpace}

func runPalette(m Model, input string) Model {
	m, _ = step(m, keys("/"))
	m, _ = step(m, keys(input))
	m, _ = step(m, tea.KeyMsg{Type: tea.KeyEnter})
	return m
}

func TestNewModelDefaults(t *testing.T) {
	f := newFixture(t, monday)
	m := f.model
	if m.CurrentView != ViewToday {
		t.Fatalf("expected default view %q, got %q", ViewToday, m.CurrentView)
	}
	if m.Prefs != model.DefaultPreferences() {
		t.Fatalf("expected default preferences, got %+v", m.Prefs)
	}
	if m.Keys.Quit != "q" || m.Machine() != nil {
		t.Fatal("unexpected initial state")
	}
}

func TestSessionViewOwnsMachine(t *testing.T) {
	f := newFixture(t, monday)
	m, _ := step(f.model, keys("2"))
	if m.CurrentView != ViewSession || m.Machine() == nil {
		t.Fatal("entering Session must build a machine")
	}
	if m.Machine().Variant() != "Daily" || m.Machine().Len() != 3 {
		t.Fatalf("unexpected session: %s with %d activities", m.Machine().Variant(), m.Machine().Len())
	}
	m, _ = step(m, keys("1"))
	if m.Machine() != nil {
		t.Fatal("leaving Session must drop the machine")
	}
	if f.cues.count(notify.CueNavigation) != 2 {
		t.Fatalf("expected 2 navigation cues, got %d", f.cues.count(notify.CueNavigation))
	}
}

func TestSessionCountdownAdvancesAndCompletes(t *testing.T) {
	f := newFixture(t, monday)
	m, _ := step(f.model, tea.KeyMsg{Type: tea.KeyEnter})
	m, cmd := step(m, space)
	if cmd == nil || m.Machine().Phase() != session.PhaseRunning {
		t.Fatal("space should start the countdown and schedule a tick")
	}
	if f.cues.count(notify.CueSessionStart) != 1 {
		t.Fatal("expected a session start cue")
	}

	tick := SessionTickMsg{RunID: m.Machine().RunID(), Seq: m.tickSeq}
	for i := 0; i < 8*60; i++ {
		m, _ = step(m, tick)
	}
	if m.Machine().Index() != 1 || m.Machine().Phase() != session.PhaseIdle {
		t.Fatalf("expected idle on activity 2, got index=%d phase=%s", m.Machine().Index(), m.Machine().Phase())
	}
	if m.Machine().Remaining() != 5*60 {
		t.Fatalf("expected reseeded countdown, got %d", m.Machine().Remaining())
	}

	m, _ = step(m, keys("s"))
	m, _ = step(m, keys("s"))
	if m.Machine().Phase() != session.PhaseComplete {
		t.Fatalf("expected complete, got %s", m.Machine().Phase())
	}
	if !f.tracker.IsCompleted("week1-Daily-2026-10-19") {
		t.Fatalf("completion not recorded: %v", f.tracker.Keys())
	}
	if !strings.Contains(m.View(), "saved to your progress") {
		t.Fatal("expected completion outcome in view")
	}
	if f.cues.count(notify.CueSessionComplete) != 1 || f.cues.count(notify.CueActivityAdvance) != 2 {
		t.Fatalf("unexpected cues: %v", f.cues.cues)
	}
}

func TestSecondCompletionSameDayIsCreditedOnce(t *testing.T) {
	f := newFixture(t, monday)
	m, _ := step(f.model, keys("2"))
	for i := 0; i < 3; i++ {
		m, _ = step(m, keys("s"))
	}
	m, _ = step(m, keys("r"))
	for i := 0; i < 3; i++ {
		m, _ = step(m, keys("s"))
	}
	if f.tracker.Total() != 1 {
		t.Fatalf("expected one ledger key, got %v", f.tracker.Keys())
	}
	if !strings.Contains(m.View(), "already credited") {
		t.Fatal("expected already-credited outcome")
	}
}

func TestStaleTicksAreIgnored(t *testing.T) {
	f := newFixture(t, monday)
	m, _ := step(f.model, keys("2"))
	m, _ = step(m, space)
	oldRun := SessionTickMsg{RunID: m.Machine().RunID(), Seq: m.tickSeq}

	// pause, then resume: the chain from before the pause is dead
	m, _ = step(m, space)
	m, _ = step(m, space)
	before := m.Machine().Remaining()
	m, cmd := step(m, oldRun)
	if cmd != nil || m.Machine().Remaining() != before {
		t.Fatal("tick from a previous chain must be ignored")
	}

	m, _ = step(m, keys("r"))
	m, _ = step(m, space)
	before = m.Machine().Remaining()
	m, _ = step(m, SessionTickMsg{RunID: oldRun.RunID, Seq: m.tickSeq})
	if m.Machine().Remaining() != before {
		t.Fatal("tick from a previous machine must be ignored")
	}
}

func TestTodayWeekNavigationClamps(t *testing.T) {
	f := newFixture(t, monday)
	m, _ := step(f.model, keys("h"))
	if f.tracker.CurrentWeek() != 1 {
		t.Fatalf("expected clamp at week 1, got %d", f.tracker.CurrentWeek())
	}
	m, _ = step(m, keys("l"))
	if f.tracker.CurrentWeek() != 2 || !strings.Contains(m.View(), "week 2/12") {
		t.Fatalf("expected week 2, got %d", f.tracker.CurrentWeek())
	}
}

func TestTodayShowsRestDayOnSunday(t *testing.T) {
	f := newFixture(t, time.Date(2026, 10, 25, 10, 0, 0, 0, time.UTC))
	out := f.model.View()
	if !strings.Contains(out, "Rest day") {
		t.Fatalf("expected rest day banner:\n%s", out)
	}
	if strings.Contains(out, "session: Daily") {
		t.Fatalf("no session may be presented on a rest day:\n%s", out)
	}
}

func TestSundayBuildsNoSessionAndRecordsNothing(t *testing.T) {
	sunday := time.Date(2026, 10, 18, 10, 0, 0, 0, time.UTC)
	for _, open := range []tea.KeyMsg{keys("2"), {Type: tea.KeyEnter}} {
		f := newFixture(t, sunday)
		m, _ := step(f.model, open)
		if m.CurrentView != ViewSession || m.Machine() != nil {
			t.Fatalf("%q: expected no machine on Sunday", open.String())
		}
		if !strings.Contains(m.Status.Text, "rest day") {
			t.Fatalf("expected rest day status, got %+v", m.Status)
		}
		m, cmd := step(m, space)
		if cmd != nil {
			t.Fatal("nothing should start on a rest day")
		}
		for i := 0; i < 3; i++ {
			m, _ = step(m, keys("s"))
		}
		if f.tracker.Total() != 0 {
			t.Fatalf("rest day must not write the ledger: %v", f.tracker.Keys())
		}
		if !strings.Contains(m.View(), "Rest day") {
			t.Fatal("expected rest day message in Session view")
		}
	}
}

func TestWeekChangeRebuildsOpenSession(t *testing.T) {
	f := newFixture(t, monday)
	m, _ := step(f.model, keys("2"))
	m, _ = step(m, space)
	oldRun := m.Machine().RunID()
	staleTick := SessionTickMsg{RunID: oldRun, Seq: m.tickSeq}

	m = runPalette(m, "week 5")
	if f.tracker.CurrentWeek() != 5 {
		t.Fatalf("expected week 5, got %d", f.tracker.CurrentWeek())
	}
	mc := m.Machine()
	if mc == nil || mc.Week() != 5 || mc.RunID() == oldRun {
		t.Fatalf("expected a fresh week 5 machine, got %+v", mc)
	}
	if mc.Variant() != "Mon/Wed/Fri" || mc.Phase() != session.PhaseIdle || mc.Remaining() != mc.Total() {
		t.Fatalf("unexpected rebuilt session: variant=%s phase=%s remaining=%d", mc.Variant(), mc.Phase(), mc.Remaining())
	}
	before := mc.Remaining()
	m, _ = step(m, staleTick)
	if m.Machine().Remaining() != before {
		t.Fatal("tick from the week 1 session must be ignored")
	}

	for i := 0; i < mc.Len(); i++ {
		m, _ = step(m, keys("s"))
	}
	if m.Machine().Phase() != session.PhaseComplete {
		t.Fatalf("expected complete, got %s", m.Machine().Phase())
	}
	if f.tracker.IsCompleted("week1-Daily-2026-10-19") || !f.tracker.IsCompleted("week5-Mon/Wed/Fri-2026-10-19") {
		t.Fatalf("completion credited to the wrong week: %v", f.tracker.Keys())
	}

	m = runPalette(m, "prev")
	if m.Machine() == nil || m.Machine().Week() != 4 {
		t.Fatal("prev must rebuild the open session for week 4")
	}
	m = runPalette(m, "week 4")
	if m.Machine().Week() != 4 {
		t.Fatal("unchanged week keeps the session")
	}
}

func TestSettingsToggleArmsReminderAndPersists(t *testing.T) {
	f := newFixture(t, monday)
	m, _ := step(f.model, keys("4"))
	m, _ = step(m, space)

	if !m.Prefs.Notifications {
		t.Fatal("notifications should be on")
	}
	next, armed := f.reminder.Pending()
	if !armed || !next.Equal(time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)) {
		t.Fatalf("expected reminder armed for 09:00 today, got %v armed=%v", next, armed)
	}
	stored, err := storage.LoadPreferences(context.Background(), f.store)
	if err != nil || !stored.Notifications {
		t.Fatalf("preferences not persisted: %+v err=%v", stored, err)
	}
	if f.cues.count(notify.CueToggle) != 1 {
		t.Fatal("expected a toggle cue")
	}

	m, _ = step(m, keys("j"))
	m, _ = step(m, keys("-"))
	if m.Prefs.ReminderTime != "08:45" {
		t.Fatalf("expected 08:45, got %s", m.Prefs.ReminderTime)
	}
	next, _ = f.reminder.Pending()
	if !next.Equal(time.Date(2026, 10, 19, 8, 45, 0, 0, time.UTC)) {
		t.Fatalf("reminder not re-armed: %v", next)
	}
}

func TestPaletteCommands(t *testing.T) {
	f := newFixture(t, monday)
	m := runPalette(f.model, "week 3")
	if f.tracker.CurrentWeek() != 3 || m.Status.IsError {
		t.Fatalf("expected week 3, got %d status=%+v", f.tracker.CurrentWeek(), m.Status)
	}
	if m.Palette.Active {
		t.Fatal("palette should close after a command")
	}

	m = runPalette(m, "remind 7:30")
	if m.Prefs.ReminderTime != "07:30" {
		t.Fatalf("expected 07:30, got %s", m.Prefs.ReminderTime)
	}
	m = runPalette(m, "set breaks on")
	if !m.Prefs.ExtendedBreaks {
		t.Fatal("extended breaks should be on")
	}
	m = runPalette(m, "theme dark")
	if m.Prefs.Theme != model.ThemeDark {
		t.Fatalf("unexpected theme %s", m.Prefs.Theme)
	}
	m = runPalette(m, "show progress")
	if m.CurrentView != ViewProgress {
		t.Fatalf("expected progress view, got %s", m.CurrentView)
	}

	m = runPalette(m, "week 30")
	if !m.Status.IsError || f.tracker.CurrentWeek() != 3 {
		t.Fatal("out-of-range week must be rejected without navigating")
	}
}

func TestPaletteResetProgress(t *testing.T) {
	f := newFixture(t, monday)
	m := runPalette(f.model, "week 5")
	if _, err := f.tracker.Record(model.CompletionRecord{Week: 5, Variant: "Daily", Date: monday}); err != nil {
		t.Fatalf("record: %v", err)
	}
	m = runPalette(m, "reset progress")
	if f.tracker.CurrentWeek() != 1 || f.tracker.Total() != 0 || m.Status.IsError {
		t.Fatalf("reset failed: week=%d total=%d status=%+v", f.tracker.CurrentWeek(), f.tracker.Total(), m.Status)
	}
}

func TestPreferenceChangeRebuildsOpenSession(t *testing.T) {
	f := newFixture(t, monday)
	m, _ := step(f.model, keys("2"))
	m, _ = step(m, space)
	oldRun := m.Machine().RunID()

	m = runPalette(m, "set breaks on")
	if m.Machine() == nil || m.Machine().RunID() == oldRun {
		t.Fatal("session should be rebuilt with a new run id")
	}
	if m.Machine().Total() != 10*60 || m.Machine().Phase() != session.PhaseIdle {
		t.Fatalf("expected padded idle countdown, got total=%d phase=%s", m.Machine().Total(), m.Machine().Phase())
	}
}

func TestReminderDueMsgIsLogged(t *testing.T) {
	f := newFixture(t, monday)
	ev := scheduler.ReminderEvent{ID: "daily-reminder", Kind: scheduler.KindDaily, TriggerAt: monday, FiredAt: monday}
	m, cmd := step(f.model, ReminderDueMsg{Event: ev})
	if len(m.ReminderLog) != 1 || cmd == nil {
		t.Fatal("expected logged reminder and a new wait command")
	}
	if !strings.Contains(m.View(), "last-reminder: daily-reminder") {
		t.Fatal("expected last reminder in view")
	}

	m, _ = step(m, ReminderDueMsg{Event: scheduler.ReminderEvent{ID: "daily-reminder", Kind: scheduler.KindDaily, Err: errors.New("no dbus")}})
	if !m.Status.IsError {
		t.Fatal("show failure should surface on the status bar")
	}
}

func TestPreferencesChangedMsgReloads(t *testing.T) {
	f := newFixture(t, monday)
	p := model.DefaultPreferences()
	p.HighContrast = true
	if err := storage.SavePreferences(context.Background(), f.store, p); err != nil {
		t.Fatalf("save: %v", err)
	}
	m, _ := step(f.model, PreferencesChangedMsg{})
	if !m.Prefs.HighContrast {
		t.Fatal("expected preferences reloaded from store")
	}
}

func TestUpdateQuitKey(t *testing.T) {
	f := newFixture(t, monday)
	m, cmd := step(f.model, keys("q"))
	if !m.Quitting || cmd == nil {
		t.Fatal("expected quit")
	}
}

func TestUpdateStatusAndError(t *testing.T) {
	f := newFixture(t, monday)
	m, _ := step(f.model, SetStatusMsg{Text: "ready"})
	if m.Status.Text != "ready" || m.Status.IsError {
		t.Fatalf("unexpected status: %+v", m.Status)
	}
	m, _ = step(m, AppErrorMsg{Err: errors.New("boom")})
	if m.LastError == nil || !m.Status.IsError || m.Status.Text != "boom" {
		t.Fatalf("unexpected error status: %+v", m.Status)
	}
	m, _ = step(m, ClearStatusMsg{})
	if m.Status.Text != "" {
		t.Fatalf("expected cleared status, got %+v", m.Status)
	}
}

func TestShiftClockWraps(t *testing.T) {
	if got := shiftClock("23:50", 15); got != "00:05" {
		t.Fatalf("expected 00:05, got %s", got)
	}
	if got := shiftClock("00:05", -15); got != "23:50" {
		t.Fatalf("expected 23:50, got %s", got)
	}
}
