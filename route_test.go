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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNewRouteMethods verifies method normalization and deduplication.
func TestNewRouteMethods(t *testing.T) {
	t.Parallel()

	rt := NewRoute([]string{"get", "POST", "get"}, "/users")
	assert.Equal(t, []string{http.MethodGet, http.MethodPost}, rt.Methods())
	assert.True(t, rt.HasMethod(http.MethodGet))
	assert.False(t, rt.HasMethod(http.MethodDelete))
}

// TestRouteImmutability verifies that With* methods return modified copies
// and leave the original untouched.
func TestRouteImmutability(t *testing.T) {
	t.Parallel()

	base := Get("/users/{id}")
	named := base.WithName("user.show")
	hosted := named.WithHost("api.example.com")
	defaulted := hosted.WithDefault("id", "0")

	assert.Empty(t, base.Name())
	assert.Empty(t, named.Host())
	_, ok := hosted.Default("id")
	assert.False(t, ok)

	assert.Equal(t, "user.show", defaulted.Name())
	assert.Equal(t, "api.example.com", defaulted.Host())
	v, ok := defaulted.Default("id")
	assert.True(t, ok)
	assert.Equal(t, "0", v)
}

// TestRouteDefaultsCopied verifies WithDefaults does not alias the caller's
// map.
func TestRouteDefaultsCopied(t *testing.T) {
	t.Parallel()

	in := map[string]string{"page": "1"}
	rt := Get("/list").WithDefaults(in)
	in["page"] = "99"

	v, _ := rt.Default("page")
	assert.Equal(t, "1", v)

	out := rt.Defaults()
	out["page"] = "42"
	v, _ = rt.Default("page")
	assert.Equal(t, "1", v)
}

// TestRouteMiddleware verifies middleware accumulation across copies.
func TestRouteMiddleware(t *testing.T) {
	t.Parallel()

	mw := func(next http.Handler) http.Handler { return next }
	rt := Get("/x").WithMiddleware(mw, mw)

	assert.True(t, rt.HasMiddleware())
	assert.Len(t, rt.Middleware(), 2)
	assert.False(t, Get("/x").HasMiddleware())
}

// TestCollectionAdd verifies lookup and duplicate-name rejection.
func TestCollectionAdd(t *testing.T) {
	t.Parallel()

	c := NewCollection()
	require.NoError(t, c.Add(Get("/users").WithName("users")))
	require.NoError(t, c.Add(Get("/posts")), "unnamed routes are always accepted")
	require.NoError(t, c.Add(Get("/other")))

	err := c.Add(Post("/users2").WithName("users"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDuplicateRouteName)

	rt, ok := c.Route("users")
	require.True(t, ok)
	assert.Equal(t, "/users", rt.Pattern())

	_, ok = c.Route("missing")
	assert.False(t, ok)

	assert.Equal(t, 3, c.Len())
}

// TestCollectionRoutesOrder verifies registration order is preserved, as
// it determines match priority.
func TestCollectionRoutesOrder(t *testing.T) {
	t.Parallel()

	c := NewCollection().MustAdd(
		Get("/a").WithName("a"),
		Get("/b").WithName("b"),
		Get("/c").WithName("c"),
	)

	var names []string
	for _, rt := range c.Routes() {
		names = append(names, rt.Name())
	}
	assert.Equal(t, []string{"a", "b", "c"}, names)
}

// TestMustAddPanics verifies the panic wrapper.
func TestMustAddPanics(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() {
		NewCollection().MustAdd(
			Get("/a").WithName("dup"),
			Get("/b").WithName("dup"),
		)
	})
}
