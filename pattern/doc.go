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

// Package pattern parses route patterns into candidate segment lists.
//
// A pattern is a path template made of literal text, placeholders, and
// trailing optional groups:
//
//   - {name} matches one path segment and captures it under "name"
//   - {name:regex} constrains the captured value with a regular expression
//   - [...] marks a trailing optional part; optional groups may nest
//
// Examples:
//
//	/users/{id:\d+}
//	/posts/{year}/{slug:[a-z0-9-]+}
//	/archive[/{year}[/{month}]]
//
// Because optional groups may nest, a single pattern expands into one or
// more candidates. Parse returns them ordered from least to most specific:
// the base (everything before the first optional group) first, then one
// candidate per nesting level. Matching registers every candidate; URL
// generation walks them in reverse so the longest satisfiable form wins.
//
// The parser is purely syntactic. Placeholder regexes are compiled by the
// dispatch engine and the URL generator, which report invalid expressions
// at build/generate time.
package pattern
