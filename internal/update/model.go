package update

import (
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/sandeepkv93/stride/internal/curriculum"
	"github.com/sandeepkv93/stride/internal/model"
	"github.com/sandeepkv93/stride/internal/notify"
	ledger "github.com/sandeepkv93/stride/internal/progress"
	"github.com/sandeepkv93/stride/internal/scheduler"
	"github.com/sandeepkv93/stride/internal/session"
	"github.com/sandeepkv93/stride/internal/storage"
)

type View string

const (
	ViewToday    View = "Today"
	ViewSession  View = "Session"
	ViewProgress View = "Progress"
	ViewSettings View = "Settings"
)

type StatusBar struct {
	Text    string
	IsError bool
}

type GlobalKeyMap struct {
	Today    string
	Session  string
	Progress string
	Settings string
	Help     string
	Quit     string
}

// Deps are the collaborators the TUI drives. Curriculum and Tracker are
// required; the rest may be nil.
type Deps struct {
	Curriculum  *curriculum.Store
	Tracker     *ledger.Tracker
	Store       storage.Store
	Reminder    *scheduler.Reminder
	Cues        notify.CueSink
	Log         *slog.Logger
	Now         func() time.Time
	Preferences model.Preferences
}

type Model struct {
	CurrentView   View
	Prefs         model.Preferences
	Palette       CommandPaletteState
	HelpVisible   bool
	Notifications []Notification
	ReminderLog   []scheduler.ReminderEvent
	Status        StatusBar
	Keys          GlobalKeyMap
	Quitting      bool
	LastError     error

	curriculum *curriculum.Store
	tracker    *ledger.Tracker
	store      storage.Store
	reminder   *scheduler.Reminder
	cues       notify.CueSink
	log        *slog.Logger
	now        func() time.Time

	// machine lives only while the Session view is open.
	machine *session.Machine
	// tickSeq invalidates tick chains started before the last start/pause.
	tickSeq        int
	outcome        string
	settingsCursor int

	commandInput    textinput.Model
	sessionProgress progress.Model
	helpModel       help.Model
}

type CommandPaletteState struct {
	Active bool
	Input  string
}

type Notification struct {
	Title string
	Body  string
	Level string
	At    time.Time
}

type SwitchViewMsg struct {
	View View
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

type AppErrorMsg struct {
	Err error
}

// SessionTickMsg is one countdown second for the machine with RunID.
type SessionTickMsg struct {
	RunID string
	Seq   int
}

type ReminderDueMsg struct {
	Event scheduler.ReminderEvent
}

// PreferencesChangedMsg reports an external edit of the stored preferences.
type PreferencesChangedMsg struct{}

func NewModel(d Deps) Model {
	if d.Log == nil {
		d.Log = slog.Default()
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	if d.Cues == nil {
		d.Cues = notify.NoopSink{}
	}
	if d.Preferences == (model.Preferences{}) {
		d.Preferences = model.DefaultPreferences()
	}
	m := Model{
		CurrentView: ViewToday,
		Prefs:       d.Preferences.Normalize(),
		Keys: GlobalKeyMap{
			Today:    "1",
			Session:  "2",
			Progress: "3",
			Settings: "4",
			Help:     "?",
			Quit:     "q",
		},
		curriculum: d.Curriculum,
		tracker:    d.Tracker,
		store:      d.Store,
		reminder:   d.Reminder,
		cues:       d.Cues,
		log:        d.Log,
		now:        d.Now,
	}
	m.initBubbleComponents()
	return m
}

func (m *Model) initBubbleComponents() {
	m.commandInput = textinput.New()
	m.commandInput.Prompt = "/"
	m.commandInput.CharLimit = 128
	m.commandInput.Width = 48

	m.sessionProgress = progress.New(progress.WithDefaultGradient(), progress.WithWidth(30))
	m.helpModel = help.New()
}

// Machine exposes the active session machine, nil outside the Session view.
func (m Model) Machine() *session.Machine { return m.machine }
