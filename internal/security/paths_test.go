package security

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestPathCheckerAllowsPathsUnderRoot(t *testing.T) {
	root := t.TempDir()
	pc := NewPathChecker(root)

	tests := []struct {
		path string
		want bool
	}{
		{root, true},
		{filepath.Join(root, "mining", "mining1.yml"), true},
		{filepath.Join(root, "..", "escape.yml"), false},
		{root + "-sibling", false},
		{filepath.Join(root, "a", "..", "..", "b"), false},
	}
	for _, tc := range tests {
		if got := pc.IsAllowed(tc.path); got != tc.want {
			t.Fatalf("IsAllowed(%q) = %v, want %v", tc.path, got, tc.want)
		}
	}
}

func TestPathCheckerWithoutRootsAllowsEverything(t *testing.T) {
	pc := NewPathChecker("", "  ")
	if len(pc.Roots()) != 0 {
		t.Fatalf("blank roots must be skipped, got %v", pc.Roots())
	}
	if err := pc.CheckPath("/anything"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestJoinRejectsTraversal(t *testing.T) {
	root := t.TempDir()
	pc := NewPathChecker(root)

	p, err := pc.Join("mining", "mining1.yml")
	if err != nil {
		t.Fatalf("Join failed: %v", err)
	}
	if p != filepath.Join(root, "mining", "mining1.yml") {
		t.Fatalf("unexpected path: %s", p)
	}

	if _, err := pc.Join("..", "..", "etc", "passwd"); !errors.Is(err, ErrOutsideRoot) {
		t.Fatalf("expected ErrOutsideRoot, got %v", err)
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	if got := ExpandHome("~/quests"); got != filepath.Join(home, "quests") {
		t.Fatalf("unexpected expansion: %s", got)
	}
	if got := ExpandHome("quests"); got != "quests" {
		t.Fatalf("relative paths must be untouched: %s", got)
	}
}
