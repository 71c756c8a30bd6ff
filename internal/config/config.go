package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"

	"shardview/internal/eventbus"
)

// Environment variables that override file settings
const (
	EnvProductsURL = "SHARDVIEW_PRODUCTS_URL"
	EnvProjectsURL = "SHARDVIEW_PROJECTS_URL"
	EnvLogFile     = "SHARDVIEW_LOG_FILE"
)

const currentVersion = 1

// Duration is a time.Duration stored as a string like "500ms"
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(strings.TrimSpace(string(text)))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", text, err)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalText implements encoding.TextMarshaler
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// Std returns the value as a time.Duration
func (d Duration) Std() time.Duration { return time.Duration(d) }

// Config represents the application configuration
type Config struct {
	Version  int              `toml:"version"`
	Sources  Sources          `toml:"sources"`
	Carousel CarouselSettings `toml:"carousel"`
	UI       UISettings       `toml:"ui"`
	Watch    bool             `toml:"watch"`
	LogFile  string           `toml:"log_file,omitempty"`
}

// Sources locate the two collections. Each is an http(s) URL or a file path.
type Sources struct {
	Products string   `toml:"products"`
	Projects string   `toml:"projects"`
	Timeout  Duration `toml:"timeout"`
}

// CarouselSettings tune the showcase carousel
type CarouselSettings struct {
	LockDuration   Duration `toml:"lock_duration"`
	SwipeThreshold float64  `toml:"swipe_threshold"`
	DragFactor     float64  `toml:"drag_factor"`
	// CellWidth is how many distance units one terminal column covers
	CellWidth float64 `toml:"cell_width"`
}

// UISettings represents UI-related configuration
type UISettings struct {
	StartTab             string `toml:"start_tab"`
	ShowDeprecated       bool   `toml:"show_deprecated"`
	ProductsEmptyMessage string `toml:"products_empty_message"`
	ProjectsEmptyMessage string `toml:"projects_empty_message"`
	Mouse                bool   `toml:"mouse"`
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
	Path() string
}

// configService is the concrete implementation
type configService struct {
	bus      eventbus.EventBus
	filePath string
}

// DefaultPath returns $XDG_CONFIG_HOME/shardview/config.toml, falling back
// to ~/.config when the user config dir is unknown
func DefaultPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}
	return filepath.Join(configDir, "shardview", "config.toml")
}

// NewConfigService creates a config service for path, or DefaultPath when empty
func NewConfigService(path string) ConfigService {
	if path == "" {
		path = DefaultPath()
	}
	return &configService{filePath: path}
}

// NewConfigServiceWithBus creates a config service with event bus support
func NewConfigServiceWithBus(path string, bus eventbus.EventBus) ConfigService {
	cs := NewConfigService(path).(*configService)
	cs.bus = bus
	return cs
}

func (cs *configService) Path() string { return cs.filePath }

// Load reads the service's file. A missing file yields the defaults.
// Environment overrides are applied in both cases.
func (cs *configService) Load() (*Config, error) {
	cfg, err := cs.LoadFromPath(cs.filePath)
	if errors.Is(err, os.ErrNotExist) {
		cfg = DefaultConfig()
		ApplyEnv(cfg)
	} else if err != nil {
		return nil, err
	}

	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigLoadedEvent{Path: cs.filePath})
	}
	return cfg, nil
}

// Save writes the configuration to the service's file
func (cs *configService) Save(config *Config) error {
	if err := cs.SaveToPath(config, cs.filePath); err != nil {
		return err
	}
	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigSavedEvent{Path: cs.filePath})
	}
	return nil
}

// LoadFromPath loads configuration from a specific path. Keys missing from
// the file keep their defaults.
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("config file not found: %s: %w", path, err)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.normalize()
	ApplyEnv(cfg)

	return cfg, nil
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// LoadDotEnv loads .env files into the process environment without
// overriding variables that are already set. Missing files are ignored.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if _, err := os.Stat(p); errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			return fmt.Errorf("failed to load %s: %w", p, err)
		}
	}
	return nil
}

// ApplyEnv overrides sources and the log file from the environment
func ApplyEnv(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv(EnvProductsURL)); v != "" {
		cfg.Sources.Products = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvProjectsURL)); v != "" {
		cfg.Sources.Projects = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFile)); v != "" {
		cfg.LogFile = v
	}
}

// normalize fills zero values a partial file may leave behind
func (c *Config) normalize() {
	def := DefaultConfig()
	if c.Version == 0 {
		c.Version = currentVersion
	}
	if c.Sources.Timeout <= 0 {
		c.Sources.Timeout = def.Sources.Timeout
	}
	if c.Carousel.LockDuration <= 0 {
		c.Carousel.LockDuration = def.Carousel.LockDuration
	}
	if c.Carousel.SwipeThreshold <= 0 {
		c.Carousel.SwipeThreshold = def.Carousel.SwipeThreshold
	}
	if c.Carousel.DragFactor == 0 {
		c.Carousel.DragFactor = def.Carousel.DragFactor
	}
	if c.Carousel.CellWidth <= 0 {
		c.Carousel.CellWidth = def.Carousel.CellWidth
	}
	switch c.UI.StartTab {
	case "showcase", "products", "projects":
	default:
		c.UI.StartTab = def.UI.StartTab
	}
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version: currentVersion,
		Sources: Sources{
			Products: "data/products.json",
			Projects: "data/projects.json",
			Timeout:  Duration(10 * time.Second),
		},
		Carousel: CarouselSettings{
			LockDuration:   Duration(500 * time.Millisecond),
			SwipeThreshold: 50,
			DragFactor:     0.4,
			CellWidth:      8,
		},
		UI: UISettings{
			StartTab:             "showcase",
			ShowDeprecated:       true,
			ProductsEmptyMessage: "No products match your current filters.",
			ProjectsEmptyMessage: "No projects match your current filters.",
			Mouse:                true,
		},
	}
}
