// Package paths normalizes user-supplied paths, expands shortcut aliases,
// and classifies paths as restricted or permitted. Resolution is pure: it
// never touches the filesystem.
package paths

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ErrInvalidInput is returned for malformed requests (currently unused by
// Resolve itself, which substitutes the default root for empty input, but
// shared by callers validating request fields).
var ErrInvalidInput = errors.New("invalid input")

// RestrictedPathError classifies a path under a blocked system prefix. It
// always carries an alternative the caller can offer instead.
type RestrictedPathError struct {
	Path          string
	SuggestedPath string
}

func (e *RestrictedPathError) Error() string {
	return fmt.Sprintf("path %s is restricted; try %s instead", e.Path, e.SuggestedPath)
}

// Resolver maps raw path strings to normalized absolute paths.
type Resolver struct {
	home        string
	defaultRoot string
	aliases     map[string]string
	restricted  []string
}

// Restricted prefixes cover process, device, and system directories that
// traversal must never enter.
var defaultRestricted = []string{
	"/proc",
	"/sys",
	"/dev",
	"/run",
	"/etc",
	"/boot",
	"/root",
	"/var/run",
	"/lost+found",
}

// NewResolver builds a resolver rooted at the given home directory. The
// default workspace root doubles as the suggested fallback for restricted
// paths.
func NewResolver(home string) *Resolver {
	home = filepath.Clean(home)
	workspace := filepath.Join(home, "workspace")
	return &Resolver{
		home:        home,
		defaultRoot: workspace,
		aliases: map[string]string{
			"workspace": workspace,
			"home":      home,
			"downloads": filepath.Join(home, "Downloads"),
			"documents": filepath.Join(home, "Documents"),
			"desktop":   filepath.Join(home, "Desktop"),
			"pictures":  filepath.Join(home, "Pictures"),
			"videos":    filepath.Join(home, "Videos"),
			"gdrive":    filepath.Join(home, "GoogleDrive"),
			"dropbox":   filepath.Join(home, "Dropbox"),
			"onedrive":  filepath.Join(home, "OneDrive"),
		},
		restricted: defaultRestricted,
	}
}

// DefaultRoot returns the workspace root used as fallback for empty or
// restricted input.
func (r *Resolver) DefaultRoot() string { return r.defaultRoot }

// Resolve normalizes the input and classifies it. Priority order: explicit
// alias, home marker, literal path. A *RestrictedPathError is returned when
// the normalized path falls under a restricted prefix.
func (r *Resolver) Resolve(input string) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return r.defaultRoot, nil
	}

	var resolved string
	if mapped, ok := r.aliases[strings.ToLower(input)]; ok {
		resolved = mapped
	} else if input == "~" {
		resolved = r.home
	} else if strings.HasPrefix(input, "~/") {
		resolved = filepath.Join(r.home, input[2:])
	} else {
		resolved = input
	}

	resolved = filepath.Clean(resolved)
	if !filepath.IsAbs(resolved) {
		resolved = filepath.Join(r.defaultRoot, resolved)
	}

	if restricted, _ := r.classify(resolved); restricted {
		return "", &RestrictedPathError{Path: resolved, SuggestedPath: r.defaultRoot}
	}

	return resolved, nil
}

// IsRestricted reports whether the already-normalized path falls under a
// restricted prefix, and which prefix matched.
func (r *Resolver) IsRestricted(path string) (bool, string) {
	return r.classify(filepath.Clean(path))
}

func (r *Resolver) classify(path string) (bool, string) {
	for _, prefix := range r.restricted {
		if path == prefix || strings.HasPrefix(path, prefix+string(filepath.Separator)) {
			return true, prefix
		}
	}
	return false, ""
}
