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
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestDefaultConfig verifies the defaults mirror the option defaults.
func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	assert.False(t, cfg.CacheEnabled)
	assert.Equal(t, "routing.dispatch", cfg.CacheKey)
	assert.True(t, cfg.AutoHead)
	assert.True(t, cfg.EncodeRaw)
}

// TestLoadConfig verifies YAML parsing layered over defaults.
func TestLoadConfig(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "routing.yaml")
	content := []byte("cache_enabled: true\ncache_url: mem://localhost/cfg\nauto_head: false\n")
	require.NoError(t, os.WriteFile(path, content, 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.True(t, cfg.CacheEnabled)
	assert.Equal(t, "mem://localhost/cfg", cfg.CacheURL)
	assert.False(t, cfg.AutoHead)
	assert.Equal(t, "routing.dispatch", cfg.CacheKey, "unset keys keep their defaults")

	_, err = LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("cache_enabled: [unclosed"), 0o600))
	_, err = LoadConfig(bad)
	require.Error(t, err)
}

// TestConfigMatcherOptions verifies option translation and validation.
func TestConfigMatcherOptions(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.CacheEnabled = true
	_, err := cfg.MatcherOptions()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCacheNotConfigured)

	cfg.CacheURL = "mem://localhost/routing/config-test"
	opts, err := cfg.MatcherOptions()
	require.NoError(t, err)

	routes := NewCollection().MustAdd(Get("/c").WithName("c"))
	m, err := NewMatcher(routes, opts...)
	require.NoError(t, err)

	match, err := m.Match(httptest.NewRequest(http.MethodGet, "/c", nil))
	require.NoError(t, err)
	assert.True(t, match.Matched())
}

// TestConfigGeneratorOptions verifies the encoding flag reaches the
// generator.
func TestConfigGeneratorOptions(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.EncodeRaw = false

	routes := NewCollection().MustAdd(Get("/f/{p:.+}").WithName("f"))
	g, err := NewGenerator(routes, cfg.GeneratorOptions()...)
	require.NoError(t, err)

	u, err := g.Generate("f", map[string]string{"p": "a/b"})
	require.NoError(t, err)
	assert.Equal(t, "/f/a%2Fb", u)
}
