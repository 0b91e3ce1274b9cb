package store

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"path/filepath"

	"github.com/borgmon/focus-nudge/pkg/models"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// RemindersFileName is the file name of the reminder configuration inside the app storage root.
const RemindersFileName = "reminders.yaml"

//go:embed default_reminders.yaml
var defaultReminders []byte

// DefaultReminders returns the reminder file written on first run.
func DefaultReminders() []byte {
	out := make([]byte, len(defaultReminders))
	copy(out, defaultReminders)
	return out
}

// ParseReminders decodes a reminder file.
func ParseReminders(data []byte) (*models.AppConfig, error) {
	var cfg models.AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse reminders: %w", err)
	}

	for i, module := range cfg.Modules {
		if module.Key == "" {
			return nil, fmt.Errorf("module %d: missing key", i)
		}
		switch module.Kind {
		case "", models.ModuleKindBase, models.ModuleKindIncome, models.ModuleKindSurprise:
		default:
			log.Printf("[CONFIG] Module %q has unknown kind %q, treating it as %q", module.Key, module.Kind, models.ModuleKindBase)
		}
	}
	return &cfg, nil
}

// ReminderFile reads and writes the reminder configuration.
type ReminderFile struct {
	fs   afero.Fs
	path string
}

// NewReminderFile creates a ReminderFile at path on fs.
func NewReminderFile(fs afero.Fs, path string) *ReminderFile {
	return &ReminderFile{fs: fs, path: path}
}

// Path returns the location of the file.
func (f *ReminderFile) Path() string {
	return f.path
}

// Load reads the reminder configuration. A missing file is created from
// the default template first.
func (f *ReminderFile) Load() (*models.AppConfig, error) {
	data, err := afero.ReadFile(f.fs, f.path)
	if errors.Is(err, fs.ErrNotExist) {
		log.Printf("[CONFIG] No reminder file at %s, writing defaults", f.path)
		data = DefaultReminders()
		if err := f.write(data); err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", f.path, err)
	}

	cfg, err := ParseReminders(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", f.path, err)
	}
	return cfg, nil
}

// Save overwrites the file with cfg.
func (f *ReminderFile) Save(cfg *models.AppConfig) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode reminders: %w", err)
	}
	return f.write(data)
}

func (f *ReminderFile) write(data []byte) error {
	if err := f.fs.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", filepath.Dir(f.path), err)
	}
	if err := afero.WriteFile(f.fs, f.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", f.path, err)
	}
	return nil
}
