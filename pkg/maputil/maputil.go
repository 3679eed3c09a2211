// Package maputil provides helpers for nested string-keyed maps:
// recursive merging, dotted-path lookup, and building maps from named
// regexp captures.
package maputil

import (
	"fmt"
	"regexp"
	"strings"
)

// RUpdate merges src into dst recursively, in place. Keys present in
// dst but absent from src are kept. When both sides hold a nested
// map for the same key the maps are merged; otherwise the src value
// replaces whatever dst had.
func RUpdate(dst, src map[string]any) {
	type pair struct {
		d, s map[string]any
	}
	stack := []pair{{dst, src}}
	for len(stack) > 0 {
		p := stack[0]
		stack = stack[1:]
		for k, v := range p.s {
			sv, sIsMap := v.(map[string]any)
			if !sIsMap {
				p.d[k] = v
				continue
			}
			dv, dIsMap := p.d[k].(map[string]any)
			if !dIsMap {
				p.d[k] = v
				continue
			}
			stack = append(stack, pair{dv, sv})
		}
	}
}

// RGet looks up a dotted path ("a.b.c") in nested maps. The second
// return is false when any segment is missing or a non-map value is
// hit before the last segment.
func RGet(m map[string]any, path string) (any, bool) {
	segs := strings.Split(path, ".")
	var cur any = m
	for _, seg := range segs {
		mm, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		cur, ok = mm[seg]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

// FromRegexMatch matches s against re and returns the named capture
// groups as a map. ok is false when s does not match. Unnamed groups
// are ignored; a named group that did not participate maps to the
// empty string.
func FromRegexMatch(re *regexp.Regexp, s string) (map[string]string, bool) {
	m := re.FindStringSubmatch(s)
	if m == nil {
		return nil, false
	}
	out := make(map[string]string)
	for i, name := range re.SubexpNames() {
		if name == "" {
			continue
		}
		out[name] = m[i]
	}
	return out, true
}

// Converter turns a captured string into a typed value.
type Converter func(string) (any, error)

// FromRegexMatchTyped is FromRegexMatch with per-key conversion. Keys
// without a converter pass through as strings. A failed match returns
// a nil map and nil error, mirroring FromRegexMatch's ok=false.
func FromRegexMatchTyped(re *regexp.Regexp, s string, conv map[string]Converter) (map[string]any, error) {
	raw, ok := FromRegexMatch(re, s)
	if !ok {
		return nil, nil
	}
	out := make(map[string]any, len(raw))
	for k, v := range raw {
		c, found := conv[k]
		if !found {
			out[k] = v
			continue
		}
		typed, err := c(v)
		if err != nil {
			return nil, fmt.Errorf("convert group %q: %w", k, err)
		}
		out[k] = typed
	}
	return out, nil
}
