package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	StoreSQLite = "sqlite"
	StoreJSON   = "json"
)

var ErrInvalidConfig = errors.New("config: invalid")

type RuntimeConfig struct {
	DataDir               string        `yaml:"data_dir"`
	Store                 string        `yaml:"store"`
	CurriculumPath        string        `yaml:"curriculum_path"`
	LogLevel              string        `yaml:"log_level"`
	LogFile               string        `yaml:"log_file"`
	TestNotificationDelay time.Duration `yaml:"test_notification_delay"`
	DesktopNotifications  bool          `yaml:"desktop_notifications"`
	WatchPreferences      bool          `yaml:"watch_preferences"`
}

func Default() RuntimeConfig {
	return RuntimeConfig{
		DataDir:               DefaultDataDir(),
		Store:                 StoreSQLite,
		LogLevel:              "info",
		TestNotificationDelay: 2 * time.Second,
		DesktopNotifications:  true,
		WatchPreferences:      true,
	}
}

// Load starts from Default, overlays the YAML file at path when path is set,
// then STRIDE_* environment variables, and validates the result.
func Load(path string) (RuntimeConfig, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return RuntimeConfig{}, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return RuntimeConfig{}, fmt.Errorf("parsing config file: %w", err)
		}
	}
	cfg = FromEnv(cfg)
	if err := cfg.Validate(); err != nil {
		return RuntimeConfig{}, err
	}
	return cfg, nil
}

func FromEnv(base RuntimeConfig) RuntimeConfig {
	cfg := base
	if v := strings.TrimSpace(os.Getenv("STRIDE_DATA_DIR")); v != "" {
		cfg.DataDir = v
	}
	if v := strings.TrimSpace(os.Getenv("STRIDE_STORE")); v != "" {
		cfg.Store = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv("STRIDE_CURRICULUM")); v != "" {
		cfg.CurriculumPath = v
	}
	if v := strings.TrimSpace(os.Getenv("STRIDE_LOG_LEVEL")); v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv("STRIDE_LOG_FILE")); v != "" {
		cfg.LogFile = v
	}
	if v, ok := getEnvDuration("STRIDE_TEST_NOTIFICATION_DELAY"); ok && v > 0 {
		cfg.TestNotificationDelay = v
	}
	if v, ok := getEnvBool("STRIDE_DESKTOP_NOTIFICATIONS"); ok {
		cfg.DesktopNotifications = v
	}
	if v, ok := getEnvBool("STRIDE_WATCH_PREFERENCES"); ok {
		cfg.WatchPreferences = v
	}
	return cfg
}

func (c RuntimeConfig) Validate() error {
	if strings.TrimSpace(c.DataDir) == "" {
		return fmt.Errorf("%w: data_dir is required", ErrInvalidConfig)
	}
	switch c.Store {
	case StoreSQLite, StoreJSON:
	default:
		return fmt.Errorf("%w: store must be %q or %q, got %q", ErrInvalidConfig, StoreSQLite, StoreJSON, c.Store)
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if c.TestNotificationDelay < 0 {
		return fmt.Errorf("%w: test_notification_delay must not be negative", ErrInvalidConfig)
	}
	return nil
}

// LogPath is where the TUI writes its log.
func (c RuntimeConfig) LogPath() string {
	if c.LogFile != "" {
		return c.LogFile
	}
	return filepath.Join(c.DataDir, "stride.log")
}

func (c RuntimeConfig) DatabasePath() string {
	return filepath.Join(c.DataDir, "stride.db")
}

func DefaultDataDir() string {
	return defaultDataDirForOS(runtime.GOOS)
}

func defaultDataDirForOS(goos string) string {
	home, _ := os.UserHomeDir()

	switch goos {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "stride")
	case "windows":
		if dir := os.Getenv("LOCALAPPDATA"); dir != "" {
			return filepath.Join(dir, "stride")
		}
		if dir := os.Getenv("APPDATA"); dir != "" {
			return filepath.Join(dir, "stride")
		}
		return filepath.Join(home, "stride")
	default:
		if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
			return filepath.Join(dir, "stride")
		}
		return filepath.Join(home, ".local", "share", "stride")
	}
}

func getEnvDuration(name string) (time.Duration, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return 0, false
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d, true
	}
	// bare integers are milliseconds
	ms, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return time.Duration(ms) * time.Millisecond, true
}

func getEnvBool(name string) (bool, bool) {
	raw := strings.TrimSpace(strings.ToLower(os.Getenv(name)))
	if raw == "" {
		return false, false
	}
	switch raw {
	case "1", "true", "yes", "y", "on":
		return true, true
	case "0", "false", "no", "n", "off":
		return false, true
	default:
		return false, false
	}
}
