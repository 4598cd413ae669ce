// Package config loads the optional TOML config file and folds it, the
// environment, and built-in defaults into one resolved configuration.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig mirrors config.toml. Pointer fields distinguish "unset" from
// a zero value.
type FileConfig struct {
	AI        AIConfig         `toml:"ai"`
	Profile   ProfileConfig    `toml:"profile"`
	Log       LogConfig        `toml:"log"`
	Resources []ResourceConfig `toml:"resources"`
}

// AIConfig maps the [ai] table.
type AIConfig struct {
	Provider          *string `toml:"provider"`
	Model             *string `toml:"model"`
	MaxPriorityTopics *int    `toml:"max_priority_topics"`
	QuizLength        *int    `toml:"quiz_length"`
	Timeout           *string `toml:"timeout"`
}

// ProfileConfig maps the [profile] table. These only seed a first-run
// profile; a saved profile always wins.
type ProfileConfig struct {
	Name     *string `toml:"name"`
	ExamType *string `toml:"exam_type"`
}

// LogConfig maps the [log] table.
type LogConfig struct {
	Level *string `toml:"level"`
	Path  *string `toml:"path"`
}

// ResourceConfig is one [[resources]] entry.
type ResourceConfig struct {
	Title string `toml:"title"`
	Type  string `toml:"type"`
	URL   string `toml:"url"`
}

// LoadFile reads a TOML config from path. A missing file is not an error.
func LoadFile(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return FileConfig{}, fmt.Errorf("unknown config key %q", undecoded[0].String())
	}
	return cfg, nil
}
