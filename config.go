// Copyright 2026 The Rivaas Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package routing

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"rivaas.dev/routing/cache"
)

// Config is the declarative counterpart to the functional options,
// intended to be embedded in an application's YAML configuration.
type Config struct {
	// CacheEnabled turns on dispatch-table caching. Requires CacheURL.
	CacheEnabled bool `yaml:"cache_enabled"`

	// CacheURL is the base location for cached tables, in URL form
	// (e.g. "file:///var/cache/app" or "mem://routing" in tests).
	CacheURL string `yaml:"cache_url"`

	// CacheKey names the cache entry. Defaults to "routing.dispatch".
	CacheKey string `yaml:"cache_key"`

	// AutoHead lets GET routes answer HEAD requests.
	AutoHead bool `yaml:"auto_head"`

	// EncodeRaw keeps slashes in substituted values literal when
	// generating URLs.
	EncodeRaw bool `yaml:"encode_raw"`
}

// DefaultConfig returns the configuration matching the option defaults.
func DefaultConfig() Config {
	return Config{
		CacheKey:  defaultCacheKey,
		AutoHead:  true,
		EncodeRaw: true,
	}
}

// LoadConfig reads a YAML configuration file, layered over the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("routing: read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("routing: parse config %s: %w", path, err)
	}
	return cfg, nil
}

// MatcherOptions translates the configuration into matcher options.
// Returns ErrCacheNotConfigured when caching is enabled without a
// location.
func (c Config) MatcherOptions() ([]MatcherOption, error) {
	opts := []MatcherOption{WithAutoHead(c.AutoHead)}
	if c.CacheKey != "" {
		opts = append(opts, WithCacheKey(c.CacheKey))
	}
	if c.CacheEnabled {
		if c.CacheURL == "" {
			return nil, ErrCacheNotConfigured
		}
		store, err := cache.NewStore(c.CacheURL)
		if err != nil {
			return nil, err
		}
		opts = append(opts, WithCache(store))
	}
	return opts, nil
}

// GeneratorOptions translates the configuration into generator options.
func (c Config) GeneratorOptions() []GeneratorOption {
	return []GeneratorOption{WithRawEncoding(c.EncodeRaw)}
}
