package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the assistant. API keys are never
// stored here; config names the environment variables that carry them.
type Config struct {
	Index     IndexConfig     `yaml:"index"`
	Retrieve  RetrieveConfig  `yaml:"retrieve"`
	Embedding EmbeddingConfig `yaml:"embedding"`
	Model     ModelConfig     `yaml:"model"`
	Search    SearchConfig    `yaml:"search"`
	Chat      ChatConfig      `yaml:"chat"`
}

// IndexConfig holds document ingestion configuration.
type IndexConfig struct {
	Includes     []string `yaml:"includes"`
	Excludes     []string `yaml:"excludes"`
	ChunkSize    int      `yaml:"chunk_size"`
	ChunkOverlap int      `yaml:"chunk_overlap"`
}

// RetrieveConfig holds retrieval configuration.
type RetrieveConfig struct {
	TopK        int  `yaml:"top_k"`
	SeedDefault bool `yaml:"seed_default"`
}

// EmbeddingConfig holds embedding provider configuration.
type EmbeddingConfig struct {
	Provider  string `yaml:"provider"` // "openai" or "mock"
	Model     string `yaml:"model"`
	BaseURL   string `yaml:"base_url"`
	APIKeyEnv string `yaml:"api_key_env"`
	Dimension int    `yaml:"dimension"`
}

// ModelConfig holds the chat model configuration.
type ModelConfig struct {
	Model       string  `yaml:"model"`
	BaseURL     string  `yaml:"base_url"`
	APIKeyEnv   string  `yaml:"api_key_env"`
	Temperature float64 `yaml:"temperature"`
}

// SearchConfig holds web search configuration.
type SearchConfig struct {
	Enabled    bool   `yaml:"enabled"`
	APIKeyEnv  string `yaml:"api_key_env"`
	MaxResults int    `yaml:"max_results"`
}

// ChatConfig holds conversation settings.
type ChatConfig struct {
	MaxHistory        int    `yaml:"max_history"`
	ConciseMaxTokens  int    `yaml:"concise_max_tokens"`
	DetailedMaxTokens int    `yaml:"detailed_max_tokens"`
	DefaultMode       string `yaml:"default_mode"` // "Concise" or "Detailed"
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Index: IndexConfig{
			Includes:     []string{"**/*.pdf", "**/*.docx", "**/*.txt"},
			Excludes:     []string{"**/.finassist/**", "**/.git/**"},
			ChunkSize:    1000,
			ChunkOverlap: 200,
		},
		Retrieve: RetrieveConfig{
			TopK:        3,
			SeedDefault: true,
		},
		Embedding: EmbeddingConfig{
			Provider:  "openai",
			Model:     "text-embedding-3-small",
			BaseURL:   "https://api.openai.com/v1",
			APIKeyEnv: "OPENAI_API_KEY",
			Dimension: 1536,
		},
		Model: ModelConfig{
			Model:       "gpt-4o-mini",
			BaseURL:     "https://api.openai.com/v1",
			APIKeyEnv:   "OPENAI_API_KEY",
			Temperature: 0.7,
		},
		Search: SearchConfig{
			Enabled:    true,
			APIKeyEnv:  "TAVILY_API_KEY",
			MaxResults: 3,
		},
		Chat: ChatConfig{
			MaxHistory:        20,
			ConciseMaxTokens:  150,
			DetailedMaxTokens: 1000,
			DefaultMode:       "Detailed",
		},
	}
}

// Load loads configuration from a YAML file, falling back to defaults
// when the file is absent.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadFromDir loads configuration from a directory (looks for
// finassist.yaml, then .finassist/config.yaml).
func LoadFromDir(dir string) (*Config, error) {
	path := filepath.Join(dir, "finassist.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	path = filepath.Join(dir, ".finassist", "config.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	return DefaultConfig(), nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// IndexDBPath returns the path to the vector index database.
func IndexDBPath(dir string) string {
	return filepath.Join(dir, ".finassist", "index.db")
}

// EnsureDataDir ensures the .finassist data directory exists.
func EnsureDataDir(dir string) error {
	return os.MkdirAll(filepath.Join(dir, ".finassist"), 0755)
}
