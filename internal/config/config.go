// Package config loads and validates the per-run configuration.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/mjanssen/docflow/internal/common"
	"github.com/mjanssen/docflow/internal/llm"
	"github.com/mjanssen/docflow/internal/model"
)

// RunConfig holds all settings for a single organize run. It is constructed
// once before the run starts and never mutated while the run is in flight.
type RunConfig struct {
	Extensions         map[string]bool
	Recursive          bool
	RenameFiles        bool
	DescriptiveNames   bool
	AISuggestedFolders bool
	WriteMetadata      bool
	MaxPromptChars     int
	MaxNameChars       int
	MinTextLength      int
	Gateway            llm.Config
	Categories         *model.CategoryMap
}

// FromViper builds a RunConfig from the global viper state.
func FromViper() (*RunConfig, error) {
	cfg := &RunConfig{
		Extensions:         extensionSet(viper.GetStringSlice("organize.extensions")),
		Recursive:          viper.GetBool("organize.recursive"),
		RenameFiles:        viper.GetBool("organize.rename"),
		DescriptiveNames:   viper.GetBool("organize.descriptive_names"),
		AISuggestedFolders: viper.GetBool("organize.ai_folders"),
		WriteMetadata:      viper.GetBool("organize.metadata"),
		MaxPromptChars:     viper.GetInt("organize.max_prompt_chars"),
		MaxNameChars:       viper.GetInt("organize.max_name_chars"),
		MinTextLength:      viper.GetInt("organize.min_text_length"),
	}

	if len(cfg.Extensions) == 0 {
		cfg.Extensions = extensionSet([]string{".txt", ".md", ".csv", ".pdf", ".docx"})
	}
	if cfg.MaxPromptChars == 0 {
		cfg.MaxPromptChars = 4000
	}
	if cfg.MaxNameChars == 0 {
		cfg.MaxNameChars = 60
	}

	gateway, err := gatewayFromViper()
	if err != nil {
		return nil, err
	}
	cfg.Gateway = gateway

	categories, err := CategoriesFromViper()
	if err != nil {
		return nil, err
	}
	cfg.Categories = categories

	return cfg, nil
}

// gatewayFromViper reads the LLM gateway configuration, resolving the API
// key for the selected provider from config or environment.
func gatewayFromViper() (llm.Config, error) {
	provider := viper.GetString("llm.provider")
	if provider == "" {
		provider = "openai"
	}

	cfg := llm.Config{
		Provider:       provider,
		Model:          viper.GetString("llm.model"),
		BaseURL:        viper.GetString("llm.base_url"),
		Temperature:    viper.GetFloat64("llm.temperature"),
		MaxTokens:      viper.GetInt("llm.max_tokens"),
		RequestTimeout: viper.GetDuration("llm.request_timeout"),
		RateLimit:      viper.GetInt("llm.rate_limit"),
		MaxRetries:     viper.GetInt("llm.max_retries"),
		RetryDelay:     viper.GetDuration("llm.retry_delay"),
	}

	if cfg.MaxRetries == 0 {
		cfg.MaxRetries = 3
	}
	if cfg.RetryDelay == 0 {
		cfg.RetryDelay = time.Second
	}
	if cfg.RateLimit == 0 {
		cfg.RateLimit = 60
	}

	switch strings.ToLower(provider) {
	case "openai":
		cfg.APIKey = keyFrom("llm.openai_api_key", "OPENAI_API_KEY")
	case "anthropic":
		cfg.APIKey = keyFrom("llm.anthropic_api_key", "ANTHROPIC_API_KEY")
	case "gemini":
		cfg.APIKey = keyFrom("llm.gemini_api_key", "GEMINI_API_KEY")
	default:
		return llm.Config{}, fmt.Errorf("%w: unknown provider %q", common.ErrInvalidConfig, provider)
	}

	if cfg.APIKey == "" {
		return llm.Config{}, fmt.Errorf("%w: no API key configured for provider %q", common.ErrMissingConfig, provider)
	}

	return cfg, nil
}

func keyFrom(viperKey, envVar string) string {
	if key := viper.GetString(viperKey); key != "" {
		return key
	}
	return os.Getenv(envVar)
}

// CategoriesFromViper reads the category map, falling back to the default
// table when none is configured. It needs no provider credentials, so
// commands that only inspect the map can call it directly.
func CategoriesFromViper() (*model.CategoryMap, error) {
	fallback := viper.GetString("fallback_category")
	if fallback == "" {
		fallback = DefaultFallbackCategory
	}

	var raw []struct {
		Key  string `mapstructure:"key"`
		Path string `mapstructure:"path"`
	}
	if err := viper.UnmarshalKey("categories", &raw); err != nil {
		return nil, fmt.Errorf("%w: categories: %v", common.ErrInvalidConfig, err)
	}

	if len(raw) == 0 {
		return model.NewCategoryMap(DefaultCategories(), fallback)
	}

	categories := make([]model.Category, len(raw))
	for i, c := range raw {
		if c.Key == "" || c.Path == "" {
			return nil, fmt.Errorf("%w: category entries need both key and path", common.ErrInvalidConfig)
		}
		categories[i] = model.Category{Key: c.Key, Path: c.Path}
	}

	m, err := model.NewCategoryMap(categories, fallback)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidConfig, err)
	}
	return m, nil
}

// Supported reports whether a file extension is enabled for this run.
func (c *RunConfig) Supported(ext string) bool {
	return c.Extensions[strings.ToLower(ext)]
}

func extensionSet(exts []string) map[string]bool {
	set := make(map[string]bool, len(exts))
	for _, ext := range exts {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		set[ext] = true
	}
	return set
}
