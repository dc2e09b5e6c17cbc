package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/stride/internal/config"
	"github.com/sandeepkv93/stride/internal/curriculum"
	"github.com/sandeepkv93/stride/internal/notify"
	"github.com/sandeepkv93/stride/internal/progress"
	"github.com/sandeepkv93/stride/internal/scheduler"
	"github.com/sandeepkv93/stride/internal/storage"
	"github.com/sandeepkv93/stride/internal/update"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	configPath := flag.String("config", "", "path to YAML config file")
	dataDir := flag.String("data-dir", "", "override data directory")
	storeKind := flag.String("store", "", "storage backend: sqlite or json")
	showVersion := flag.Bool("version", false, "print version and exit")
	migrateOnly := flag.Bool("migrate-only", false, "run sqlite migrations and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println("stride", Version)
		return
	}
	if err := run(*configPath, *dataDir, *storeKind, *migrateOnly); err != nil {
		fmt.Fprintf(os.Stderr, "stride failed: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath, dataDir, storeKind string, migrateOnly bool) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if dataDir != "" {
		cfg.DataDir = dataDir
	}
	if storeKind != "" {
		cfg.Store = storeKind
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}

	log, logCloser, err := config.OpenLogger(cfg)
	if err != nil {
		return err
	}
	defer logCloser.Close()
	slog.SetDefault(log)
	log.Info("stride starting", "version", Version, "data_dir", cfg.DataDir, "store", cfg.Store)

	store, prefsFile, err := openStore(cfg)
	if err != nil {
		log.Error("failed to open store", "error", err)
		return err
	}
	defer store.Close()
	if migrateOnly {
		log.Info("migrate-only: exiting")
		return nil
	}

	cur, err := loadCurriculum(cfg)
	if err != nil {
		log.Error("failed to load curriculum", "error", err)
		return err
	}

	ctx := context.Background()
	prefs, err := storage.LoadPreferences(ctx, store)
	if err != nil {
		log.Warn("preferences unreadable, using defaults", "error", err)
	}
	tracker := progress.Load(ctx, store, log)

	var surface notify.Surface = notify.NoopSurface{}
	if cfg.DesktopNotifications {
		surface = notify.NewExecSurface()
	}
	reminder := scheduler.NewReminder(scheduler.SystemClock{}, surface, log, scheduler.Options{
		TestDelay: cfg.TestNotificationDelay,
	})
	defer reminder.Stop()
	if err := reminder.Apply(prefs); err != nil {
		log.Warn("reminder not armed", "error", err)
	}

	// The bell consults the stored preferences so toggles made in the TUI or
	// on disk take effect without rewiring.
	soundOn := func() bool {
		p, _ := storage.LoadPreferences(ctx, store)
		return p.SoundEnabled
	}
	cues := notify.Multi{
		notify.LogSink{Log: log},
		notify.NewBellSink(os.Stdout, soundOn),
	}

	model := update.NewModel(update.Deps{
		Curriculum:  cur,
		Tracker:     tracker,
		Store:       store,
		Reminder:    reminder,
		Cues:        cues,
		Log:         log,
		Preferences: prefs,
	})
	program := tea.NewProgram(model)

	if cfg.WatchPreferences && prefsFile != "" {
		stop, err := update.StartPreferencesWatcher(prefsFile, program.Send, log)
		if err != nil {
			log.Warn("preferences watcher not started", "error", err)
		} else {
			defer stop()
		}
	}

	if _, err := program.Run(); err != nil {
		log.Error("tui exited with error", "error", err)
		return err
	}
	log.Info("stride stopped")
	return nil
}

// openStore returns the configured store and, for the JSON backend, the
// preferences file path worth watching.
func openStore(cfg config.RuntimeConfig) (storage.Store, string, error) {
	switch cfg.Store {
	case config.StoreJSON:
		fs, err := storage.NewFileStore(cfg.DataDir)
		if err != nil {
			return nil, "", err
		}
		return fs, fs.Path(storage.KeyPreferences), nil
	default:
		db, err := storage.OpenSQLite(cfg.DatabasePath())
		if err != nil {
			return nil, "", err
		}
		return db, "", nil
	}
}

func loadCurriculum(cfg config.RuntimeConfig) (*curriculum.Store, error) {
	if cfg.CurriculumPath != "" {
		return curriculum.LoadFile(cfg.CurriculumPath)
	}
	return curriculum.Load()
}
