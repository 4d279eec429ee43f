// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"time"

	"github.com/spf13/viper"

	"github.com/pdiddy/scholar-assistant/internal/llm"
	"github.com/pdiddy/scholar-assistant/pkg/types"
)

const defaultUserAgent = "scholar-assistant/0.1"

// loadAppConfig resolves the full configuration from viper (config file
// plus SCHOLAR_ASSISTANT_* environment variables) with built-in
// defaults. The chat API key falls back to the groq-api-key secret.
func loadAppConfig() types.AppConfig {
	viper.SetDefault("llm.model", llm.DefaultModel)
	viper.SetDefault("llm.temperature", 0.2)
	viper.SetDefault("llm.max_tokens", 1024)
	viper.SetDefault("llm.timeout", 60*time.Second)

	viper.SetDefault("primo.base_url", "https://csu-sb.primo.exlibrisgroup.com/primaws/rest/pub")
	viper.SetDefault("primo.vid", "01CALS_USB:01CALS_USB")
	viper.SetDefault("primo.tab", "Everything")
	viper.SetDefault("primo.scope", "MyInst_and_CI")
	viper.SetDefault("primo.inst", "01CALS_USB")
	viper.SetDefault("primo.discovery_base", "https://csu-sb.primo.exlibrisgroup.com")
	viper.SetDefault("primo.max_retries", 5)
	viper.SetDefault("primo.timeout", 30*time.Second)

	viper.SetDefault("search.default_limit", types.DefaultLimit)
	viper.SetDefault("search.sort", "rank")
	viper.SetDefault("search.language", "eng")

	viper.SetDefault("history.path", "data/history.db")
	viper.SetDefault("history.max_runs", 20)

	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "console")
	viper.SetDefault("logging.output", "stderr")

	return types.AppConfig{
		LLM: types.LLMConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:   viper.GetDuration("llm.timeout"),
				UserAgent: defaultUserAgent,
			},
			Model:       viper.GetString("llm.model"),
			APIKey:      secretDefault("groq-api-key", viper.GetString("llm.api_key")),
			Temperature: viper.GetFloat64("llm.temperature"),
			MaxTokens:   viper.GetInt("llm.max_tokens"),
		},
		Primo: types.PrimoConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:   viper.GetDuration("primo.timeout"),
				UserAgent: defaultUserAgent,
			},
			BaseURL:       viper.GetString("primo.base_url"),
			VID:           viper.GetString("primo.vid"),
			Tab:           viper.GetString("primo.tab"),
			Scope:         viper.GetString("primo.scope"),
			Inst:          viper.GetString("primo.inst"),
			DiscoveryBase: viper.GetString("primo.discovery_base"),
			MaxRetries:    viper.GetInt("primo.max_retries"),
		},
		Search: types.SearchSettings{
			DefaultLimit: viper.GetInt("search.default_limit"),
			Sort:         viper.GetString("search.sort"),
			Language:     viper.GetString("search.language"),
		},
		History: types.HistoryConfig{
			Path:    viper.GetString("history.path"),
			MaxRuns: viper.GetInt("history.max_runs"),
		},
		Logging: types.LoggingConfig{
			Level:  viper.GetString("logging.level"),
			Format: viper.GetString("logging.format"),
			Output: viper.GetString("logging.output"),
		},
	}
}
