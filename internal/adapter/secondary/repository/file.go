package repository

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"network-watchdog/internal/domain"
)

// FileRepository implements domain.ConfigRepository using a JSON file.
// Only configuration defaults live here; the watchdog itself keeps no state
// between invocations. This is a secondary adapter.
type FileRepository struct {
	path string
	mu   sync.Mutex
}

// NewFileRepository creates a new file-based config repository.
func NewFileRepository(path string) (domain.ConfigRepository, error) {
	if path == "" {
		return nil, errors.New("path is required")
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create config dir: %w", err)
	}

	return &FileRepository{path: path}, nil
}

// persistedData represents the JSON structure on disk.
type persistedData struct {
	IntervalSeconds    int      `json:"intervalSeconds"`
	NcsiURL            string   `json:"ncsiUrl"`
	NcsiTimeoutSeconds int      `json:"ncsiTimeoutSeconds"`
	Mode               string   `json:"mode"`
	Profiles           []string `json:"profiles,omitempty"`
}

// Load reads the configuration file or returns defaults if it does not exist.
func (f *FileRepository) Load() (domain.Config, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.DefaultConfig(), nil
		}
		return domain.Config{}, fmt.Errorf("read config: %w", err)
	}

	var persisted persistedData
	if err := json.Unmarshal(data, &persisted); err != nil {
		return domain.Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	config := domain.Config{
		Interval:     time.Duration(persisted.IntervalSeconds) * time.Second,
		ProbeURL:     persisted.NcsiURL,
		ProbeTimeout: time.Duration(persisted.NcsiTimeoutSeconds) * time.Second,
		Mode:         parseMode(persisted.Mode),
		Profiles:     persisted.Profiles,
	}

	defaults := domain.DefaultConfig()
	if config.Interval <= 0 {
		config.Interval = defaults.Interval
	}
	if config.ProbeURL == "" {
		config.ProbeURL = defaults.ProbeURL
	}
	if config.ProbeTimeout <= 0 {
		config.ProbeTimeout = defaults.ProbeTimeout
	}

	return config, nil
}

// Save persists the configuration to disk atomically.
func (f *FileRepository) Save(config domain.Config) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	persisted := persistedData{
		IntervalSeconds:    int(config.Interval.Seconds()),
		NcsiURL:            config.ProbeURL,
		NcsiTimeoutSeconds: int(config.ProbeTimeout.Seconds()),
		Mode:               config.Mode.String(),
		Profiles:           config.Profiles,
	}

	data, err := json.MarshalIndent(persisted, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	// Atomic write
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write tmp: %w", err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("rename tmp: %w", err)
	}

	return nil
}

func parseMode(s string) domain.ProfileMode {
	switch s {
	case "all":
		return domain.ModeAll
	case "explicit":
		return domain.ModeExplicit
	default:
		return domain.ModeVisibleOnly
	}
}

// DefaultPath returns the default configuration file path.
func DefaultPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "network-watchdog", "config.json")
}
