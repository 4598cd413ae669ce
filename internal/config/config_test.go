package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/mastermind/internal/llm"
	"github.com/abhisek/mastermind/internal/settings"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadFile_Missing(t *testing.T) {
	fc, err := LoadFile(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Nil(t, fc.AI.Provider)
}

func TestLoadFile_EmptyPath(t *testing.T) {
	_, err := LoadFile("")
	require.Error(t, err)
}

func TestLoadFile_Full(t *testing.T) {
	path := writeFile(t, "config.toml", `
[ai]
provider = "anthropic"
model = "claude-sonnet"
max_priority_topics = 8
quiz_length = 10
timeout = "2m"

[profile]
name = "Dr Shah"
exam_type = "EDAIC_PART1"

[log]
level = "debug"
path = "/tmp/mm.log"

[[resources]]
title = "Oxford Handbook"
type = "Book"
url = "https://example.org/ohb"

[[resources]]
title = "Deranged Physiology"
url = "https://derangedphysiology.com/"
`)
	fc, err := LoadFile(path)
	require.NoError(t, err)

	cfg, err := Resolve(fc)
	require.NoError(t, err)

	assert.Equal(t, "anthropic", cfg.LLM.Provider)
	assert.Equal(t, "claude-sonnet", cfg.LLM.Anthropic.Model)
	assert.Equal(t, "gemini-3-flash-preview", cfg.LLM.Gemini.Model, "other providers keep defaults")
	assert.Equal(t, 2*time.Minute, cfg.LLM.Timeout)
	assert.Equal(t, 8, cfg.AI.MaxPriorityTopics)
	assert.Equal(t, 10, cfg.AI.QuizLength)
	assert.Equal(t, "Dr Shah", cfg.ProfileName)
	assert.Equal(t, settings.EDAICPart1, cfg.ProfileExamType)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "/tmp/mm.log", cfg.LogPath)
	require.Len(t, cfg.Resources, 7)
	assert.Equal(t, "Oxford Handbook", cfg.Resources[5].Title)
}

func TestLoadFile_UnknownKey(t *testing.T) {
	path := writeFile(t, "config.toml", "[ai]\nprovder = \"openai\"\n")
	_, err := LoadFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "provder")
}

func TestLoadFile_Malformed(t *testing.T) {
	path := writeFile(t, "config.toml", "[ai\n")
	_, err := LoadFile(path)
	require.Error(t, err)
}

func TestResolve_Defaults(t *testing.T) {
	cfg, err := Resolve(FileConfig{})
	require.NoError(t, err)
	assert.Equal(t, llm.DefaultConfig(), cfg.LLM)
	assert.Equal(t, 20, cfg.AI.MaxPriorityTopics)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Len(t, cfg.Resources, 5)
	assert.Equal(t, settings.ExamType(""), cfg.ProfileExamType)
}

func TestResolve_Rejects(t *testing.T) {
	bad := "soon"
	negative := -1
	zero := 0
	exam := "USMLE"
	tests := []struct {
		name string
		fc   FileConfig
	}{
		{"timeout", FileConfig{AI: AIConfig{Timeout: &bad}}},
		{"negative cap", FileConfig{AI: AIConfig{MaxPriorityTopics: &negative}}},
		{"quiz length", FileConfig{AI: AIConfig{QuizLength: &zero}}},
		{"exam type", FileConfig{Profile: ProfileConfig{ExamType: &exam}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Resolve(tt.fc)
			require.Error(t, err)
		})
	}
}

func TestEnvOverridesFile(t *testing.T) {
	path := writeFile(t, "config.toml", "[ai]\nprovider = \"openai\"\nmodel = \"gpt-4o\"\n")
	fc, err := LoadFile(path)
	require.NoError(t, err)
	cfg, err := Resolve(fc)
	require.NoError(t, err)

	t.Setenv("MASTERMIND_LLM_PROVIDER", "gemini")
	t.Setenv("MASTERMIND_OPENAI_MODEL", "gpt-4.1")

	final := llm.ApplyEnv(cfg.LLM)
	assert.Equal(t, "gemini", final.Provider)
	assert.Equal(t, "gpt-4.1", final.OpenAI.Model)
}

func TestLoadDotEnv(t *testing.T) {
	path := writeFile(t, ".env", "MASTERMIND_TEST_KEY=from-file\nMASTERMIND_TEST_KEPT=from-file\n")
	t.Setenv("MASTERMIND_TEST_KEPT", "from-shell")
	t.Setenv("MASTERMIND_TEST_KEY", "")
	os.Unsetenv("MASTERMIND_TEST_KEY")

	require.NoError(t, LoadDotEnv(path))
	t.Cleanup(func() { os.Unsetenv("MASTERMIND_TEST_KEY") })

	assert.Equal(t, "from-file", os.Getenv("MASTERMIND_TEST_KEY"))
	assert.Equal(t, "from-shell", os.Getenv("MASTERMIND_TEST_KEPT"))
}

func TestLoadDotEnv_Missing(t *testing.T) {
	require.NoError(t, LoadDotEnv(filepath.Join(t.TempDir(), ".env")))
}

func TestLoad_UsesXDGConfigHome(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "mastermind"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "mastermind", "config.toml"), []byte("[ai]\nquiz_length = 3\n"), 0o644))

	assert.Equal(t, filepath.Join(dir, "mastermind", "config.toml"), DefaultPath())
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.AI.QuizLength)
}
