// Package config handles daemon configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Audio   AudioConfig   `yaml:"audio"`
	OpenAI  OpenAIConfig  `yaml:"openai"`
	Inject  InjectConfig  `yaml:"inject"`
	Trigger TriggerConfig `yaml:"trigger"`
	Notify  NotifyConfig  `yaml:"notify"`
	Daemon  DaemonConfig  `yaml:"daemon"`
	Log     LogConfig     `yaml:"log"`
}

type AudioConfig struct {
	SampleRate      int `yaml:"sample_rate"`
	FramesPerBuffer int `yaml:"frames_per_buffer"`
}

type OpenAIConfig struct {
	APIKey   string `yaml:"api_key"`
	Model    string `yaml:"model"`
	Language string `yaml:"language"`
	BaseURL  string `yaml:"base_url"`
}

type InjectConfig struct {
	// Strategy is "clipboard" (copy then simulate a paste keystroke) or
	// "type" (simulate direct keystrokes).
	Strategy         string   `yaml:"strategy"`
	TypeCommand      []string `yaml:"type_command"`
	PasteCommand     []string `yaml:"paste_command"`
	RestoreClipboard bool     `yaml:"restore_clipboard"`
}

type TriggerConfig struct {
	// HTTPAddr enables the HTTP toggle trigger when non-empty.
	HTTPAddr  string `yaml:"http_addr"`
	AuthToken string `yaml:"auth_token"`
}

type NotifyConfig struct {
	Desktop bool `yaml:"desktop"`
}

type DaemonConfig struct {
	PidFile string `yaml:"pid_file"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Load reads the config file, expanding ${VAR} references from the
// environment before parsing. A missing file yields the defaults, so the
// daemon runs with nothing but OPENAI_API_KEY set.
func Load(path string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	} else {
		expanded := os.ExpandEnv(string(data))
		if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
			return nil, fmt.Errorf("parsing config: %w", err)
		}
	}

	cfg.setDefaults()

	return &cfg, nil
}

func (c *Config) setDefaults() {
	if c.Audio.SampleRate == 0 {
		c.Audio.SampleRate = 16000
	}
	if c.Audio.FramesPerBuffer == 0 {
		c.Audio.FramesPerBuffer = 1024
	}
	if c.OpenAI.APIKey == "" {
		c.OpenAI.APIKey = os.Getenv("OPENAI_API_KEY")
	}
	if c.OpenAI.Model == "" {
		c.OpenAI.Model = "whisper-1"
	}
	if c.Inject.Strategy == "" {
		c.Inject.Strategy = "clipboard"
	}
	if len(c.Inject.TypeCommand) == 0 {
		c.Inject.TypeCommand = []string{"ydotool", "type", "--"}
	}
	if len(c.Inject.PasteCommand) == 0 {
		c.Inject.PasteCommand = []string{"ydotool", "key", "ctrl+v"}
	}
	if c.Daemon.PidFile == "" {
		c.Daemon.PidFile = filepath.Join(os.TempDir(), "voicetyped.pid")
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}
