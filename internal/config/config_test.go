package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultedConfig() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}

func TestApplyDefaults_RetrievalConstants(t *testing.T) {
	cfg := defaultedConfig()

	assert.Equal(t, 0.50, cfg.Retrieval.SemanticWeight)
	assert.Equal(t, 0.30, cfg.Retrieval.LexicalWeight)
	assert.Equal(t, 0.20, cfg.Retrieval.EntityWeight)
	assert.Equal(t, 0.60, cfg.Retrieval.HighThreshold)
	assert.Equal(t, 0.40, cfg.Retrieval.ModerateThreshold)
	assert.Equal(t, 0.25, cfg.Retrieval.SomewhatThreshold)
	assert.Equal(t, "flat", cfg.Retrieval.EntityOverlapMode)
	assert.Equal(t, 5, cfg.Retrieval.DefaultTopK)
	assert.Equal(t, 15, cfg.Retrieval.MaxTopK)
	assert.Equal(t, 3000, cfg.Retrieval.LexicalMaxTerms)
}

func TestApplyDefaults_EthicsConstants(t *testing.T) {
	cfg := defaultedConfig()

	assert.Equal(t, 0.40, cfg.Ethics.CourtWeight)
	assert.Equal(t, 0.30, cfg.Ethics.TemporalWeight)
	assert.Equal(t, 0.30, cfg.Ethics.OutcomeWeight)
	assert.Equal(t, 0.3, cfg.Ethics.DiversityThreshold)
	assert.Equal(t, 2, cfg.Ethics.MinCourtDiversity)
	assert.Equal(t, 2, cfg.Ethics.MinYearRange)
}

func TestApplyDefaults_ExplicitValuesWin(t *testing.T) {
	cfg := &Config{}
	cfg.Server.Port = 9999
	cfg.Retrieval.SemanticWeight = 0.6
	cfg.Retrieval.LexicalWeight = 0.3
	cfg.Retrieval.EntityWeight = 0.1
	ApplyDefaults(cfg)

	assert.Equal(t, 9999, cfg.Server.Port)
	assert.Equal(t, 0.6, cfg.Retrieval.SemanticWeight)
}

func TestValidate_DefaultsPass(t *testing.T) {
	require.NoError(t, defaultedConfig().Validate())
}

func TestValidate_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad port", func(c *Config) { c.Server.Port = -1 }},
		{"weights not summing", func(c *Config) { c.Retrieval.SemanticWeight = 0.9 }},
		{"threshold inversion", func(c *Config) { c.Retrieval.ModerateThreshold = 0.7 }},
		{"bad overlap mode", func(c *Config) { c.Retrieval.EntityOverlapMode = "fuzzy" }},
		{"max below default top_k", func(c *Config) { c.Retrieval.MaxTopK = 1 }},
		{"diversity weights off", func(c *Config) { c.Ethics.OutcomeWeight = 0.5 }},
		{"diversity threshold range", func(c *Config) { c.Ethics.DiversityThreshold = 1.5 }},
		{"kafka without brokers", func(c *Config) { c.Kafka.Enabled = true; c.Kafka.Brokers = nil }},
		{"milvus without address", func(c *Config) { c.Milvus.Enabled = true; c.Milvus.Addr = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultedConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestLoad_YAMLFileWithEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := `
server:
  port: 8123
retrieval:
  default_top_k: 7
log:
  level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))

	t.Setenv("NYAY_LOG_FORMAT", "console")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 8123, cfg.Server.Port)
	assert.Equal(t, 7, cfg.Retrieval.DefaultTopK)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	// Defaults still fill the rest.
	assert.Equal(t, 0.50, cfg.Retrieval.SemanticWeight)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("NYAY_SERVER_PORT", "8222")
	cfg, err := LoadFromEnv()
	require.NoError(t, err)
	assert.Equal(t, 8222, cfg.Server.Port)
}
