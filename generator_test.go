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
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestGenerateBasic covers placeholder substitution and query spill-over.
func TestGenerateBasic(t *testing.T) {
	t.Parallel()

	routes := NewCollection().MustAdd(
		Get("/users/{id:\\d+}").WithName("user.show"),
	)
	g := MustNewGenerator(routes)

	u, err := g.Generate("user.show", map[string]string{"id": "42"})
	require.NoError(t, err)
	assert.Equal(t, "/users/42", u)

	// Arguments that substitute no placeholder become query parameters,
	// sorted by name.
	u, err = g.Generate("user.show", map[string]string{"id": "42", "tab": "posts", "page": "2"})
	require.NoError(t, err)
	assert.Equal(t, "/users/42?page=2&tab=posts", u)
}

// TestGenerateUnknownRoute verifies the not-found error.
func TestGenerateUnknownRoute(t *testing.T) {
	t.Parallel()

	g := MustNewGenerator(NewCollection())
	_, err := g.Generate("nope", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRouteNotFound)
}

// TestGenerateOptionalPolicy verifies that optional placeholders are
// filled only from explicit arguments while required ones may use
// defaults.
func TestGenerateOptionalPolicy(t *testing.T) {
	t.Parallel()

	routes := NewCollection().MustAdd(
		Get("/[{name}]").WithName("root").WithDefault("name", "default"),
		Get("/view/{id:\\d+}[/{format}]").WithName("view").WithDefault("id", "0"),
	)
	g := MustNewGenerator(routes)

	// The default never expands an optional slot.
	u, err := g.Generate("root", nil)
	require.NoError(t, err)
	assert.Equal(t, "/", u)

	// An explicit argument does.
	u, err = g.Generate("root", map[string]string{"name": "test"})
	require.NoError(t, err)
	assert.Equal(t, "/test", u)

	// Required placeholders fall back to defaults.
	u, err = g.Generate("view", nil)
	require.NoError(t, err)
	assert.Equal(t, "/view/0", u)

	u, err = g.Generate("view", map[string]string{"id": "9", "format": "json"})
	require.NoError(t, err)
	assert.Equal(t, "/view/9/json", u)
}

// TestGenerateMissingArguments verifies the structured error carries the
// required and received argument names.
func TestGenerateMissingArguments(t *testing.T) {
	t.Parallel()

	routes := NewCollection().MustAdd(
		Get("/x/{id}/{value}").WithName("pair"),
	)
	g := MustNewGenerator(routes)

	_, err := g.Generate("pair", map[string]string{"id": "1"})
	require.Error(t, err)

	var missing *MissingArgumentsError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "pair", missing.Route)
	assert.Equal(t, []string{"id", "value"}, missing.Required)
	assert.Equal(t, []string{"id"}, missing.Received)
}

// TestGenerateArgumentMismatch verifies values are validated against
// placeholder patterns.
func TestGenerateArgumentMismatch(t *testing.T) {
	t.Parallel()

	routes := NewCollection().MustAdd(
		Get("/users/{id:\\d+}").WithName("user.show"),
	)
	g := MustNewGenerator(routes)

	_, err := g.Generate("user.show", map[string]string{"id": "abc"})
	require.Error(t, err)

	var mismatch *ArgumentMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, "id", mismatch.Argument)
	assert.Equal(t, "abc", mismatch.Value)
	assert.Equal(t, `\d+`, mismatch.Pattern)
}

// TestGenerateEncoding verifies percent-encoding and the raw-slash policy.
func TestGenerateEncoding(t *testing.T) {
	t.Parallel()

	routes := NewCollection().MustAdd(
		Get("/files/{path:.+}").WithName("file"),
	)

	raw := MustNewGenerator(routes)
	u, err := raw.Generate("file", map[string]string{"path": "a/b c"})
	require.NoError(t, err)
	assert.Equal(t, "/files/a/b%20c", u)

	strict := MustNewGenerator(routes, WithRawEncoding(false))
	u, err = strict.Generate("file", map[string]string{"path": "a/b c"})
	require.NoError(t, err)
	assert.Equal(t, "/files/a%2Fb%20c", u)
}

// TestGenerateAbsolute covers host precedence: explicit option, route
// host, current request.
func TestGenerateAbsolute(t *testing.T) {
	t.Parallel()

	routes := NewCollection().MustAdd(
		Get("/profile").WithName("profile").WithHost("{user}.example.com"),
		Get("/about").WithName("about"),
	)

	g := MustNewGenerator(routes)

	// Route host with placeholder substitution; the host argument is
	// consumed, not spilled into the query.
	u, err := g.GenerateAbsolute("profile", map[string]string{"user": "alice"})
	require.NoError(t, err)
	assert.Equal(t, "http://alice.example.com/profile", u)

	// Explicit options beat the route host; the host-pattern arguments are
	// still consumed, not spilled into the query.
	u, err = g.GenerateAbsolute("profile", map[string]string{"user": "alice"},
		WithHost("cdn.example.net"), WithScheme("https"))
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.net/profile", u)

	u, err = g.GenerateAbsolute("profile", map[string]string{"user": "alice", "ref": "mail"},
		WithHost("cdn.example.net"))
	require.NoError(t, err)
	assert.Equal(t, "http://cdn.example.net/profile?ref=mail", u)

	// Protocol-relative URLs via an explicit empty scheme.
	u, err = g.GenerateAbsolute("profile", map[string]string{"user": "alice"}, WithScheme(""))
	require.NoError(t, err)
	assert.Equal(t, "//alice.example.com/profile", u)

	// No host anywhere.
	_, err = g.GenerateAbsolute("about", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoHost)
}

// TestGenerateAbsoluteSchemeRelativeHost verifies a //host value keeps
// the URL protocol-relative unless a scheme is forced.
func TestGenerateAbsoluteSchemeRelativeHost(t *testing.T) {
	t.Parallel()

	routes := NewCollection().MustAdd(
		Get("/assets/{file}").WithName("asset"),
		Get("/cdn").WithName("cdn").WithHost("//static.example.com"),
	)
	g := MustNewGenerator(routes)

	u, err := g.GenerateAbsolute("asset", map[string]string{"file": "app.js"},
		WithHost("//static.example.com"))
	require.NoError(t, err)
	assert.Equal(t, "//static.example.com/assets/app.js", u)

	// A forced scheme overrides the protocol-relative request.
	u, err = g.GenerateAbsolute("asset", map[string]string{"file": "app.js"},
		WithHost("//static.example.com"), WithScheme("https"))
	require.NoError(t, err)
	assert.Equal(t, "https://static.example.com/assets/app.js", u)

	// Same treatment when the //host comes from the route itself.
	u, err = g.GenerateAbsolute("cdn", nil)
	require.NoError(t, err)
	assert.Equal(t, "//static.example.com/cdn", u)
}

// TestGenerateAbsoluteFromRequest verifies host and scheme fall back to
// the current request.
func TestGenerateAbsoluteFromRequest(t *testing.T) {
	t.Parallel()

	routes := NewCollection().MustAdd(
		Get("/about").WithName("about"),
	)
	m := MustNewMatcher(routes)

	req := httptest.NewRequest(http.MethodGet, "/about", nil)
	req.Host = "www.example.com:8080"
	_, err := m.Match(req)
	require.NoError(t, err)

	g := MustNewGenerator(routes, WithCurrent(m))
	u, err := g.GenerateAbsolute("about", nil)
	require.NoError(t, err)
	assert.Equal(t, "http://www.example.com:8080/about", u)
}

// TestGenerateFromCurrent verifies parameter reuse with overrides.
func TestGenerateFromCurrent(t *testing.T) {
	t.Parallel()

	routes := NewCollection().MustAdd(
		Get("/users/{id:\\d+}[/{tab}]").WithName("user.show"),
	)
	m := MustNewMatcher(routes)

	g := MustNewGenerator(routes, WithCurrent(m))
	_, err := g.GenerateFromCurrent(nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoCurrentRoute)

	_, err = m.Match(httptest.NewRequest(http.MethodGet, "/users/7/posts", nil))
	require.NoError(t, err)

	u, err := g.GenerateFromCurrent(nil)
	require.NoError(t, err)
	assert.Equal(t, "/users/7/posts", u)

	u, err = g.GenerateFromCurrent(map[string]string{"tab": "likes"})
	require.NoError(t, err)
	assert.Equal(t, "/users/7/likes", u)

	bare := MustNewGenerator(routes)
	_, err = bare.GenerateFromCurrent(nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoCurrentRoute)
}

// TestGenerateExplicitQuery verifies WithQuery parameters win over
// spilled-over arguments.
func TestGenerateExplicitQuery(t *testing.T) {
	t.Parallel()

	routes := NewCollection().MustAdd(Get("/list").WithName("list"))
	g := MustNewGenerator(routes)

	u, err := g.Generate("list", map[string]string{"page": "1"},
		WithQuery(url.Values{"page": {"9"}, "sort": {"asc"}}))
	require.NoError(t, err)
	assert.Equal(t, "/list?page=9&sort=asc", u)
}

// TestGenerateFromCurrentQueryMerge verifies the active request's query is
// carried along, overridden by explicit parameters.
func TestGenerateFromCurrentQueryMerge(t *testing.T) {
	t.Parallel()

	routes := NewCollection().MustAdd(Get("/search/{term}").WithName("search"))
	m := MustNewMatcher(routes)
	g := MustNewGenerator(routes, WithCurrent(m))

	_, err := m.Match(httptest.NewRequest(http.MethodGet, "/search/go?page=2&sort=new", nil))
	require.NoError(t, err)

	u, err := g.GenerateFromCurrent(map[string]string{"term": "rust"})
	require.NoError(t, err)
	assert.Equal(t, "/search/rust?page=2&sort=new", u)

	u, err = g.GenerateFromCurrent(nil, WithQuery(url.Values{"page": {"3"}}))
	require.NoError(t, err)
	assert.Equal(t, "/search/go?page=3&sort=new", u)
}

// TestGenerateFromCurrentFallbacks covers the no-current-route paths: a
// fallback route name, the raw request path, and the terminal error.
func TestGenerateFromCurrentFallbacks(t *testing.T) {
	t.Parallel()

	routes := NewCollection().MustAdd(
		Get("/").WithName("home"),
		Get("/things/{id:\\d+}").WithName("thing"),
	)
	m := MustNewMatcher(routes)
	g := MustNewGenerator(routes, WithCurrent(m))

	// Nothing matched yet: the fallback route is generated.
	u, err := g.GenerateFromCurrent(map[string]string{"id": "3"}, WithFallback("thing"))
	require.NoError(t, err)
	assert.Equal(t, "/things/3", u)

	// After a miss the raw request path is echoed.
	_, err = m.Match(httptest.NewRequest(http.MethodGet, "/not/routed?keep=1", nil))
	require.NoError(t, err)
	u, err = g.GenerateFromCurrent(nil)
	require.NoError(t, err)
	assert.Equal(t, "/not/routed?keep=1", u)

	// No provider state at all.
	bare := MustNewGenerator(routes, WithCurrent(MustNewMatcher(routes)))
	_, err = bare.GenerateFromCurrent(nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoCurrentRoute)
}

// TestGenerateMatchRoundTrip verifies that generated URLs match back to
// the same route with the same parameters.
func TestGenerateMatchRoundTrip(t *testing.T) {
	t.Parallel()

	routes := NewCollection().MustAdd(
		Get("/view/{id:\\d+}/{text}").WithName("view"),
	)
	m := MustNewMatcher(routes)
	g := MustNewGenerator(routes)

	args := map[string]string{"id": "42", "text": "hello world"}
	u, err := g.Generate("view", args)
	require.NoError(t, err)
	assert.Equal(t, "/view/42/hello%20world", u)

	match, err := m.Match(httptest.NewRequest(http.MethodGet, u, nil))
	require.NoError(t, err)
	require.True(t, match.Matched())
	assert.Equal(t, "view", match.Route().Name())
	assert.Equal(t, args, match.Params())
}
