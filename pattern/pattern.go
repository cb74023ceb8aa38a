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

package pattern

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// DefaultRegex is the expression used for placeholders declared without one.
// It matches a single path segment.
const DefaultRegex = `[^/]+`

var (
	// ErrUnbalancedBrackets indicates mismatched [ ] optional-group brackets.
	ErrUnbalancedBrackets = errors.New("unbalanced optional brackets")

	// ErrUnbalancedBraces indicates an unterminated { } placeholder.
	ErrUnbalancedBraces = errors.New("unbalanced placeholder braces")

	// ErrEmptyPlaceholder indicates a placeholder with no name, e.g. {} or {:\d+}.
	ErrEmptyPlaceholder = errors.New("placeholder name is empty")

	// ErrInvalidPlaceholderName indicates a placeholder name that is not an identifier.
	ErrInvalidPlaceholderName = errors.New("placeholder name is not a valid identifier")

	// ErrDuplicatePlaceholder indicates the same placeholder name used twice in one pattern.
	ErrDuplicatePlaceholder = errors.New("duplicate placeholder")

	// ErrTextAfterOptional indicates literal text following a closed optional group.
	// Optional groups may only appear, possibly nested, at the end of a pattern.
	ErrTextAfterOptional = errors.New("optional groups must be at the end of the pattern")
)

// placeholderName validates placeholder identifiers.
var placeholderName = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// Segment is one piece of a parsed candidate: either literal text or a
// named, regex-constrained placeholder.
type Segment struct {
	// Literal holds raw text to be matched or emitted verbatim.
	// Empty for placeholder segments.
	Literal string

	// Name is the placeholder name. Empty for literal segments.
	Name string

	// Regex is the placeholder expression without anchors.
	// Always set for placeholder segments (DefaultRegex when omitted).
	Regex string
}

// IsPlaceholder reports whether the segment is a placeholder.
func (s Segment) IsPlaceholder() bool {
	return s.Name != ""
}

// Compile returns the placeholder expression compiled as an anchored
// full-match regex. It must not be called on literal segments.
func (s Segment) Compile() (*regexp.Regexp, error) {
	re, err := regexp.Compile("^(?:" + s.Regex + ")$")
	if err != nil {
		return nil, fmt.Errorf("placeholder {%s}: %w", s.Name, err)
	}
	return re, nil
}

// Candidate is one expansion of a pattern: the segments of the base plus
// zero or more optional tails.
type Candidate []Segment

// Placeholders returns the placeholder names in order of appearance.
func (c Candidate) Placeholders() []string {
	var names []string
	for _, s := range c {
		if s.IsPlaceholder() {
			names = append(names, s.Name)
		}
	}
	return names
}

// HasPlaceholders reports whether the candidate contains any placeholder.
func (c Candidate) HasPlaceholders() bool {
	for _, s := range c {
		if s.IsPlaceholder() {
			return true
		}
	}
	return false
}

// Static returns the candidate joined as a plain path. It is only
// meaningful for candidates without placeholders.
func (c Candidate) Static() string {
	var b strings.Builder
	for _, s := range c {
		b.WriteString(s.Literal)
	}
	return b.String()
}

// String reconstructs the candidate as a pattern without optional markers.
func (c Candidate) String() string {
	var b strings.Builder
	for _, s := range c {
		if s.IsPlaceholder() {
			b.WriteByte('{')
			b.WriteString(s.Name)
			if s.Regex != DefaultRegex {
				b.WriteByte(':')
				b.WriteString(s.Regex)
			}
			b.WriteByte('}')
		} else {
			b.WriteString(s.Literal)
		}
	}
	return b.String()
}

// Parse splits a route pattern into its candidates, ordered from least to
// most specific. A pattern without optional groups yields exactly one
// candidate. The empty pattern is treated as "/".
func Parse(pat string) ([]Candidate, error) {
	if pat == "" {
		pat = "/"
	}

	parts, err := splitOptional(pat)
	if err != nil {
		return nil, fmt.Errorf("pattern %q: %w", pat, err)
	}

	candidates := make([]Candidate, 0, len(parts))
	var prefix Candidate
	seen := make(map[string]bool)
	for _, part := range parts {
		segs, err := tokenize(part, seen)
		if err != nil {
			return nil, fmt.Errorf("pattern %q: %w", pat, err)
		}
		next := make(Candidate, 0, len(prefix)+len(segs))
		next = append(next, prefix...)
		next = append(next, segs...)
		candidates = append(candidates, next)
		prefix = next
	}
	return candidates, nil
}

// splitOptional splits a pattern on its optional-group brackets.
// parts[0] is the mandatory base, parts[i] the content added by the i-th
// nesting level. Placeholder bodies are skipped so character classes and
// quantifiers inside {name:regex} do not confuse bracket tracking.
func splitOptional(pat string) ([]string, error) {
	parts := []string{""}
	depth := 0
	closed := 0 // number of ']' consumed so far

	i := 0
	for i < len(pat) {
		ch := pat[i]
		switch ch {
		case '{':
			end, err := placeholderEnd(pat, i)
			if err != nil {
				return nil, err
			}
			if closed > 0 {
				return nil, ErrTextAfterOptional
			}
			parts[depth] += pat[i:end]
			i = end
			continue
		case '[':
			if closed > 0 {
				return nil, ErrTextAfterOptional
			}
			depth++
			parts = append(parts, "")
		case ']':
			if depth == 0 || depth-closed == 0 {
				return nil, ErrUnbalancedBrackets
			}
			closed++
		default:
			if closed > 0 {
				return nil, ErrTextAfterOptional
			}
			parts[depth] += string(ch)
		}
		i++
	}

	if closed != depth {
		return nil, ErrUnbalancedBrackets
	}
	return parts, nil
}

// placeholderEnd returns the index just past the '}' closing the
// placeholder starting at start. Braces inside the regex part nest
// (e.g. {id:\d{1,3}}).
func placeholderEnd(pat string, start int) (int, error) {
	depth := 0
	for i := start; i < len(pat); i++ {
		switch pat[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i + 1, nil
			}
		}
	}
	return 0, ErrUnbalancedBraces
}

// tokenize converts one raw pattern part into segments, recording
// placeholder names in seen to reject duplicates across parts.
func tokenize(part string, seen map[string]bool) ([]Segment, error) {
	var segs []Segment
	var lit strings.Builder

	flush := func() {
		if lit.Len() > 0 {
			segs = append(segs, Segment{Literal: lit.String()})
			lit.Reset()
		}
	}

	i := 0
	for i < len(part) {
		if part[i] != '{' {
			lit.WriteByte(part[i])
			i++
			continue
		}

		end, err := placeholderEnd(part, i)
		if err != nil {
			return nil, err
		}
		body := part[i+1 : end-1]

		name, regex := body, DefaultRegex
		if colon := strings.IndexByte(body, ':'); colon >= 0 {
			name, regex = body[:colon], body[colon+1:]
		}
		if name == "" {
			return nil, ErrEmptyPlaceholder
		}
		if !placeholderName.MatchString(name) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidPlaceholderName, name)
		}
		if regex == "" {
			regex = DefaultRegex
		}
		if seen[name] {
			return nil, fmt.Errorf("%w: %q", ErrDuplicatePlaceholder, name)
		}
		seen[name] = true

		flush()
		segs = append(segs, Segment{Name: name, Regex: regex})
		i = end
	}
	flush()
	return segs, nil
}
