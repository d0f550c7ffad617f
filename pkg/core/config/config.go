// Package config loads the application configuration from YAML and the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"growth_analyzer/pkg/core/agent"

	"gopkg.in/yaml.v2"
)

// DefaultPath is where the server looks for its configuration file.
const DefaultPath = "config/app.yaml"

type AppConfig struct {
	Server  ServerConfig `yaml:"server"`
	Log     LogConfig    `yaml:"log"`
	Oracle  OracleConfig `yaml:"oracle"`
	Prompts PromptConfig `yaml:"prompts"`
	Models  agent.Config `yaml:"models"`

	// Credentials are only ever read from the environment.
	Credentials agent.Credentials `yaml:"-"`
}

type ServerConfig struct {
	Addr string `yaml:"addr"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

type OracleConfig struct {
	TimeoutSeconds    int `yaml:"timeout_seconds"`
	RequestsPerMinute int `yaml:"requests_per_minute"`
	Burst             int `yaml:"burst"`
}

// PromptConfig points at an optional directory whose prompts/ tree overrides the embedded templates.
type PromptConfig struct {
	Dir string `yaml:"dir"`
}

func Default() *AppConfig {
	return &AppConfig{
		Server: ServerConfig{Addr: ":8080"},
		Log:    LogConfig{Level: "info"},
		Oracle: OracleConfig{TimeoutSeconds: 120, RequestsPerMinute: 30, Burst: 5},
		Models: agent.Config{ActiveProvider: "gemini"},
	}
}

// Load reads path on top of the defaults and then applies environment overrides.
// A missing file is not an error.
func Load(path string) (*AppConfig, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("CONFIG_READ_FAILED: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("CONFIG_PARSE_FAILED: %s: %w", path, err)
		}
	}

	cfg.ApplyEnv(os.Getenv)
	return cfg, nil
}

// ApplyEnv overlays environment values. getenv is os.Getenv outside tests.
func (c *AppConfig) ApplyEnv(getenv func(string) string) {
	c.Credentials.Gemini = firstNonEmpty(getenv("GEMINI_API_KEY"), getenv("API_KEY"))
	c.Credentials.DeepSeek = getenv("DEEPSEEK_API_KEY")
	c.Credentials.Qwen = getenv("DASHSCOPE_API_KEY")
	c.Credentials.OpenAI = getenv("OPENAI_API_KEY")

	if v := getenv("LISTEN_ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := getenv("LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
}

// Timeout is the per-sequence oracle deadline. Non-positive values fall back to two minutes.
func (c *AppConfig) Timeout() time.Duration {
	if c.Oracle.TimeoutSeconds <= 0 {
		return 120 * time.Second
	}
	return time.Duration(c.Oracle.TimeoutSeconds) * time.Second
}

func (c *AppConfig) Limits() agent.Limits {
	return agent.Limits{RequestsPerMinute: c.Oracle.RequestsPerMinute, Burst: c.Oracle.Burst}
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
