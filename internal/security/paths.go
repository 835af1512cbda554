// Package security keeps generated files inside their configured roots.
package security

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrOutsideRoot is returned for paths that escape every allowed root.
var ErrOutsideRoot = errors.New("path outside allowed roots")

// PathChecker validates file paths against a list of allowed roots.
// An empty list means no restrictions.
type PathChecker struct {
	roots []string // resolved absolute paths
}

// NewPathChecker creates a PathChecker. Roots are expanded (~) and resolved
// to clean absolute paths; unresolvable entries are skipped.
func NewPathChecker(roots ...string) *PathChecker {
	resolved := make([]string, 0, len(roots))
	for _, p := range roots {
		if strings.TrimSpace(p) == "" {
			continue
		}
		abs, err := filepath.Abs(ExpandHome(p))
		if err != nil {
			continue
		}
		resolved = append(resolved, filepath.Clean(abs))
	}
	return &PathChecker{roots: resolved}
}

// IsAllowed reports whether path is one of the roots or lies below one.
func (pc *PathChecker) IsAllowed(path string) bool {
	if len(pc.roots) == 0 {
		return true
	}
	abs, err := filepath.Abs(ExpandHome(path))
	if err != nil {
		return false
	}
	abs = filepath.Clean(abs)
	for _, root := range pc.roots {
		if abs == root || strings.HasPrefix(abs, root+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

// CheckPath returns ErrOutsideRoot when path is not allowed.
func (pc *PathChecker) CheckPath(path string) error {
	if pc.IsAllowed(path) {
		return nil
	}
	return fmt.Errorf("%w: %q not under %v", ErrOutsideRoot, path, pc.roots)
}

// Join joins elem onto the first root and checks the result, so names taken
// from input files cannot climb out with "..".
func (pc *PathChecker) Join(elem ...string) (string, error) {
	if len(pc.roots) == 0 {
		return filepath.Join(elem...), nil
	}
	p := filepath.Join(append([]string{pc.roots[0]}, elem...)...)
	if err := pc.CheckPath(p); err != nil {
		return "", err
	}
	return p, nil
}

// Roots returns the resolved roots.
func (pc *PathChecker) Roots() []string {
	out := make([]string, len(pc.roots))
	copy(out, pc.roots)
	return out
}

// ExpandHome replaces a leading "~" with the user's home directory.
func ExpandHome(path string) string {
	if strings.HasPrefix(path, "~/") || path == "~" {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[1:])
	}
	return path
}
