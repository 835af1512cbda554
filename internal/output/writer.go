// Package output writes rendered quests to the plugin's quest directory.
package output

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/kayz/questgen/internal/quest"
	"github.com/kayz/questgen/internal/security"
)

// DefaultExt is the extension of quest files.
const DefaultExt = ".yml"

// File describes one written quest file.
type File struct {
	QuestID string
	Path    string
	SHA256  string
	Content string
}

// Writer places each quest at <Root>/<category>/<id><Ext>.
type Writer struct {
	Root string
	Ext  string
}

// NewWriter returns a writer rooted at root with the default extension.
func NewWriter(root string) *Writer {
	return &Writer{Root: root, Ext: DefaultExt}
}

func (w *Writer) ext() string {
	ext := strings.TrimSpace(w.Ext)
	if ext == "" {
		return DefaultExt
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}

// Path returns the target path of q. Category and id must stay inside Root.
func (w *Writer) Path(q *quest.Quest) (string, error) {
	root := strings.TrimSpace(w.Root)
	if root == "" {
		return "", fmt.Errorf("output root is not set")
	}
	checker := security.NewPathChecker(root)
	p, err := checker.Join(q.Category, q.ID+w.ext())
	if err != nil {
		return "", fmt.Errorf("quest %s: %w", q.ID, err)
	}
	if filepath.Dir(p) == checker.Roots()[0] {
		return "", fmt.Errorf("quest %s: %w: empty category", q.ID, security.ErrOutsideRoot)
	}
	return p, nil
}

// Write stores text as the file of q, creating the category directory.
func (w *Writer) Write(q *quest.Quest, text string) (File, error) {
	p, err := w.Path(q)
	if err != nil {
		return File{}, err
	}
	if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
		return File{}, fmt.Errorf("create category dir: %w", err)
	}
	if err := os.WriteFile(p, []byte(text), 0644); err != nil {
		return File{}, fmt.Errorf("write quest file %s: %w", p, err)
	}
	return File{QuestID: q.ID, Path: p, SHA256: Digest(text), Content: text}, nil
}

// Digest returns the hex SHA-256 of text.
func Digest(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}
