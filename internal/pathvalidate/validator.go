package pathvalidate

import (
	"os"
	"path/filepath"
	"strings"
)

// Validator canonicalizes paths and enforces the allow/deny glob discipline.
// It holds no request-scoped state and is safe for concurrent use once
// constructed.
type Validator struct {
	allow *GlobSet
	deny  *GlobSet
	home  string
}

// Config holds the glob sets a Validator is built from.
type Config struct {
	AllowedPaths []string
	DeniedPaths  []string
}

// New builds a Validator from the given allow/deny glob patterns. An empty
// allowed-paths set is a configuration error: the caller (the config
// loader) must reject it before the runtime ever sees a Validator.
func New(cfg Config) *Validator {
	home, _ := os.UserHomeDir()
	return &Validator{
		allow: CompileGlobSet(cfg.AllowedPaths),
		deny:  CompileGlobSet(cfg.DeniedPaths),
		home:  home,
	}
}

// Validate canonicalizes path and checks it against the allow/deny glob
// sets. Deny always wins over allow. The returned string is the canonical
// form later stages must use for any further path comparison.
func (v *Validator) Validate(path string) (string, error) {
	if path == "" {
		return "", newError(KindInvalidInput, path, "path must not be empty")
	}
	if strings.IndexByte(path, 0) >= 0 {
		return "", newError(KindInvalidInput, path, "path contains a NUL byte")
	}
	if threat := scanPathUnicode(path); threat != nil {
		return "", newError(KindInvalidInput, path,
			"path contains disallowed Unicode ("+threat.Category+" "+threat.Codepoint+")")
	}

	expanded := expandHome(path, v.home)
	if !filepath.IsAbs(expanded) {
		return "", newError(KindInvalidInput, path, "path must be absolute")
	}

	canonical, err := v.canonicalize(expanded)
	if err != nil {
		return "", newError(KindInvalidInput, path, "failed to canonicalize path: "+err.Error())
	}

	if v.deny.Match(canonical) {
		return "", newError(KindPolicyViolation, canonical, "path matches a denied pattern")
	}
	if v.allow.Empty() {
		return "", newError(KindPolicyViolation, canonical, "no allowed paths are configured")
	}
	if !v.allow.Match(canonical) {
		return "", newError(KindAccessDenied, canonical, "path is not within any allowed location")
	}

	return canonical, nil
}

// canonicalize resolves "." and ".." lexically, then resolves symlinks
// against the real filesystem on the longest prefix that actually exists,
// appending the non-existent remainder untouched. This lets Validate accept
// a path that doesn't exist yet (for Write/CreateDir) while still defeating
// a symlink planted anywhere along an existing prefix.
func (v *Validator) canonicalize(path string) (string, error) {
	cleaned := filepath.Clean(path)

	existing, remainder := longestExistingPrefix(cleaned)
	resolved, err := filepath.EvalSymlinks(existing)
	if err != nil {
		return "", err
	}

	if remainder == "" || remainder == "." {
		return resolved, nil
	}
	return filepath.Join(resolved, remainder), nil
}
