package pathvalidate

import (
	"path/filepath"
	"strings"
)

// GlobSet is a compiled set of glob patterns supporting "*", "?", "[...]",
// "**" (any number of path segments), and "{a,b,c}" brace alternation.
// Patterns are expanded and segmented once at construction time so that
// matching on the hot path is pure comparison, no parsing.
type GlobSet struct {
	compiled [][]string // each entry is a pattern already split into segments
}

// CompileGlobSet expands brace alternation in each pattern and splits the
// result into path segments ready for repeated matching.
func CompileGlobSet(patterns []string) *GlobSet {
	gs := &GlobSet{}
	for _, p := range patterns {
		for _, expanded := range expandBraces(p) {
			gs.compiled = append(gs.compiled, splitPattern(expanded))
		}
	}
	return gs
}

// Empty reports whether the set has no patterns at all.
func (gs *GlobSet) Empty() bool {
	return gs == nil || len(gs.compiled) == 0
}

// Match reports whether the canonical path matches any pattern in the set.
func (gs *GlobSet) Match(path string) bool {
	if gs == nil {
		return false
	}
	segments := splitPath(path)
	for _, pattern := range gs.compiled {
		if segmentMatch(segments, pattern) {
			return true
		}
	}
	return false
}

// segmentMatch recursively matches path segments against pattern segments,
// where "**" in the pattern consumes zero or more path segments.
func segmentMatch(path, pattern []string) bool {
	if len(pattern) == 0 {
		return len(path) == 0
	}
	if pattern[0] == "**" {
		if len(pattern) == 1 {
			return true
		}
		for i := 0; i <= len(path); i++ {
			if segmentMatch(path[i:], pattern[1:]) {
				return true
			}
		}
		return false
	}
	if len(path) == 0 {
		return false
	}
	ok, err := filepath.Match(pattern[0], path[0])
	if err != nil || !ok {
		return false
	}
	return segmentMatch(path[1:], pattern[1:])
}

// splitPath splits a canonical filesystem path into non-empty segments.
func splitPath(p string) []string {
	p = filepath.ToSlash(filepath.Clean(p))
	p = strings.Trim(p, "/")
	if p == "" || p == "." {
		return nil
	}
	return strings.Split(p, "/")
}

// splitPattern splits a glob pattern into segments on "/". "**" spans
// segments only when it is a whole segment; inside a longer component it is
// not split out.
func splitPattern(pattern string) []string {
	pattern = strings.Trim(filepath.ToSlash(pattern), "/")
	if pattern == "" {
		return nil
	}
	return strings.Split(pattern, "/")
}

// expandBraces expands the first "{a,b,c}" alternation group in pattern
// into one pattern per alternative, recursing to handle multiple groups.
// A pattern with no braces expands to itself.
func expandBraces(pattern string) []string {
	start := strings.IndexByte(pattern, '{')
	if start < 0 {
		return []string{pattern}
	}
	end := strings.IndexByte(pattern[start:], '}')
	if end < 0 {
		return []string{pattern}
	}
	end += start

	prefix := pattern[:start]
	body := pattern[start+1 : end]
	suffix := pattern[end+1:]

	var out []string
	for _, alt := range strings.Split(body, ",") {
		for _, rest := range expandBraces(suffix) {
			out = append(out, prefix+alt+rest)
		}
	}
	return out
}
