package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/abhisek/mastermind/internal/ai"
	"github.com/abhisek/mastermind/internal/llm"
	"github.com/abhisek/mastermind/internal/logging"
	"github.com/abhisek/mastermind/internal/resources"
	"github.com/abhisek/mastermind/internal/settings"
)

// Config is the resolved configuration. LLM still has to go through
// llm.NewProviderFromEnv, which applies MASTERMIND_* on top of it.
type Config struct {
	LLM llm.Config
	AI  ai.Config

	ProfileName     string
	ProfileExamType settings.ExamType

	LogLevel string
	LogPath  string

	Resources []resources.Resource
}

// Default returns the configuration used when there is no file.
func Default() Config {
	logPath, err := logging.DefaultPath()
	if err != nil {
		logPath = "mastermind.log"
	}
	return Config{
		LLM:       llm.DefaultConfig(),
		AI:        ai.DefaultConfig(),
		LogLevel:  "info",
		LogPath:   logPath,
		Resources: resources.Builtin(),
	}
}

// Load reads the dotenv file next to path (without overriding variables
// already set), then the TOML file at path, and resolves both onto the
// defaults. An empty path means DefaultPath.
func Load(path string) (Config, error) {
	if path == "" {
		path = DefaultPath()
	}
	if err := LoadDotEnv(DefaultEnvPath()); err != nil {
		return Config{}, err
	}
	fc, err := LoadFile(path)
	if err != nil {
		return Config{}, err
	}
	return Resolve(fc)
}

// LoadDotEnv exports KEY=value pairs from path into the process
// environment. Variables that are already set keep their value. A missing
// file is not an error.
func LoadDotEnv(path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// Resolve folds fc onto the defaults. Environment variables are applied
// later, by the consumers that own them, so they always win over the file.
func Resolve(fc FileConfig) (Config, error) {
	cfg := Default()

	if v := fc.AI.Provider; v != nil && *v != "" {
		cfg.LLM.Provider = strings.ToLower(strings.TrimSpace(*v))
	}
	if v := fc.AI.Model; v != nil && *v != "" {
		cfg.LLM.SetModel(*v)
	}
	if v := fc.AI.Timeout; v != nil && *v != "" {
		d, err := time.ParseDuration(*v)
		if err != nil {
			return Config{}, fmt.Errorf("ai.timeout: %w", err)
		}
		if d <= 0 {
			return Config{}, fmt.Errorf("ai.timeout must be positive, got %s", d)
		}
		cfg.LLM.Timeout = d
	}
	if v := fc.AI.MaxPriorityTopics; v != nil {
		if *v < 0 {
			return Config{}, fmt.Errorf("ai.max_priority_topics must not be negative, got %d", *v)
		}
		cfg.AI.MaxPriorityTopics = *v
	}
	if v := fc.AI.QuizLength; v != nil {
		if *v < 1 || *v > 20 {
			return Config{}, fmt.Errorf("ai.quiz_length must be between 1 and 20, got %d", *v)
		}
		cfg.AI.QuizLength = *v
	}

	if v := fc.Profile.Name; v != nil {
		cfg.ProfileName = strings.TrimSpace(*v)
	}
	if v := fc.Profile.ExamType; v != nil && *v != "" {
		et, err := settings.ParseExamType(*v)
		if err != nil {
			return Config{}, fmt.Errorf("profile.exam_type: %w", err)
		}
		cfg.ProfileExamType = et
	}

	if v := fc.Log.Level; v != nil && *v != "" {
		cfg.LogLevel = *v
	}
	if v := fc.Log.Path; v != nil && *v != "" {
		cfg.LogPath = *v
	}

	extra := make([]resources.Resource, 0, len(fc.Resources))
	for _, r := range fc.Resources {
		extra = append(extra, resources.Resource{Title: r.Title, Kind: resources.Kind(r.Type), URL: r.URL})
	}
	cfg.Resources = resources.Library(extra)

	return cfg, nil
}
