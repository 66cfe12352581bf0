package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds process-level settings for the radar-turret controller.
// Turret tuning (range, lock time, angles) lives in its own persisted record,
// see internal/repository/settings.
type Config struct {
	// ListenAddress is the address the control panel HTTP server binds to.
	ListenAddress string `yaml:"listen_addr"`
	// SettingsFile is the path of the persisted turret settings YAML.
	SettingsFile string `yaml:"settings_file"`
	// EventLogFile is the path of the capped intrusion log.
	EventLogFile string `yaml:"event_log_file"`
	// EventLogCapBytes is the size threshold at which the intrusion log
	// is wiped and restarted.
	EventLogCapBytes int64 `yaml:"event_log_cap_bytes"`
	// LogLevel is the minimum level for process logging (debug..fatal).
	LogLevel string `yaml:"log_level"`
	// MQTT enables detection announcements when non-nil.
	MQTT *MQTTConfig `yaml:"mqtt,omitempty"`
	// DemoTargets places simulated objects in the sweep arc. When the key
	// is absent a default pair of targets is used; an explicit empty list
	// leaves the arc clear.
	DemoTargets []DemoTarget `yaml:"demo_targets"`
}

// MQTTConfig holds broker settings for the detection announcer.
type MQTTConfig struct {
	// BrokerURL is the broker address, e.g. tcp://10.0.0.5:1883.
	BrokerURL string `yaml:"broker_url"`
	// ClientID identifies this turret to the broker.
	ClientID string `yaml:"client_id"`
	// Username and Password are optional broker credentials.
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	// Topic is where detection events are published.
	Topic string `yaml:"topic"`
}

// DemoTarget is a simulated object standing in the arc.
type DemoTarget struct {
	// Angle is the target bearing in degrees.
	Angle int `yaml:"angle"`
	// DistanceCM is the target range in centimeters.
	DistanceCM int `yaml:"distance_cm"`
}

const (
	// DefaultConfigFilename is the default filename for controller settings.
	DefaultConfigFilename = "radar-turret.yaml"

	// DefaultSettingsFilename is the default filename for turret tuning.
	DefaultSettingsFilename = "radar-turret-settings.yaml"

	// DefaultEventLogFilename is the default filename for the intrusion log.
	DefaultEventLogFilename = "radar-turret-events.log"

	// DefaultEventLogCapBytes caps the intrusion log before it is wiped.
	DefaultEventLogCapBytes int64 = 16 * 1024

	// DefaultListenAddress is where the panel server binds by default.
	DefaultListenAddress = ":8080"

	// DefaultFilePermissions is the default file permission for config files.
	DefaultFilePermissions = 0o600
)

// errConfigIsNotSet is returned when a nil configuration is provided.
var errConfigIsNotSet = errors.New("configuration is not set")

// Default returns a configuration with every field at its default value,
// including the out-of-the-box demo targets.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)

	return cfg
}

// Load reads configuration from the provided path and applies defaults for
// absent fields. A missing file is not an error: the controller boots with
// defaults so a blank device still comes up.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultConfigFilename
	}

	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}

		return nil, fmt.Errorf("read settings: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(contents, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal settings: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Save writes the configuration to the provided path.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if path == "" {
		path = DefaultConfigFilename
	}

	if err := Validate(cfg); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	// Restrict permissions.
	if err := os.WriteFile(filepath.Clean(path), data, DefaultFilePermissions); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}

	return nil
}

// Validate checks the provided settings for formatting and fills in defaults.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	applyDefaults(cfg)

	if _, err := net.ResolveTCPAddr("tcp", cfg.ListenAddress); err != nil {
		return fmt.Errorf("invalid listen address: %w", err)
	}

	if cfg.MQTT != nil {
		if cfg.MQTT.BrokerURL == "" {
			return errors.New("mqtt section present but broker_url is empty")
		}

		if cfg.MQTT.Topic == "" {
			cfg.MQTT.Topic = "radar-turret/detections"
		}

		if cfg.MQTT.ClientID == "" {
			cfg.MQTT.ClientID = "radar-turret"
		}
	}

	return nil
}

// applyDefaults fills zero-valued fields.
func applyDefaults(cfg *Config) {
	if cfg.ListenAddress == "" {
		cfg.ListenAddress = DefaultListenAddress
	}

	if cfg.SettingsFile == "" {
		cfg.SettingsFile = DefaultSettingsFilename
	}

	if cfg.EventLogFile == "" {
		cfg.EventLogFile = DefaultEventLogFilename
	}

	if cfg.EventLogCapBytes <= 0 {
		cfg.EventLogCapBytes = DefaultEventLogCapBytes
	}

	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}

	// Absent key: seed the arc so the panel shows blips out of the box.
	// An explicit empty list in the file stays empty.
	if cfg.DemoTargets == nil {
		cfg.DemoTargets = []DemoTarget{
			{Angle: 55, DistanceCM: 34},
			{Angle: 120, DistanceCM: 18},
		}
	}
}
