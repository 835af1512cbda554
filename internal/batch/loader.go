package batch

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/kayz/questgen/internal/quest"
)

// Load reads, parses and validates the batch file at path.
func Load(path string) (*Spec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read batch file %s: %w", path, err)
	}
	spec, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("batch file %s: %w", path, err)
	}
	return spec, nil
}

// Parse decodes a batch document, fills defaults and validates it.
// Unknown keys are rejected.
func Parse(data []byte) (*Spec, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var spec Spec
	if err := dec.Decode(&spec); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty document", quest.ErrInvalidBatch)
		}
		return nil, fmt.Errorf("parse: %w", err)
	}

	applyDefaults(&spec)
	if err := Validate(&spec); err != nil {
		return nil, err
	}
	return &spec, nil
}

func applyDefaults(spec *Spec) {
	if spec.Version == 0 {
		spec.Version = CurrentVersion
	}
	spec.Category = strings.TrimSpace(spec.Category)
	spec.CategoryDisplay = strings.TrimSpace(spec.CategoryDisplay)

	for i := range spec.Quests {
		q := &spec.Quests[i]
		if q.Index == 0 {
			q.Index = i + 1
		}
		q.Rewards = trimTrailingBlank(q.Rewards)
		q.RewardLore = trimTrailingBlank(q.RewardLore)
		if q.LoreNormal != nil {
			lines := trimTrailingBlank(*q.LoreNormal)
			q.LoreNormal = &lines
		}
		if q.LoreStarted != nil {
			lines := trimTrailingBlank(*q.LoreStarted)
			q.LoreStarted = &lines
		}
	}
}

// Validate checks the batch header and the quest entries.
func Validate(spec *Spec) error {
	if spec == nil {
		return fmt.Errorf("%w: batch is nil", quest.ErrInvalidBatch)
	}
	if spec.Version != CurrentVersion {
		return fmt.Errorf("%w: unsupported version %d", quest.ErrInvalidBatch, spec.Version)
	}
	if err := spec.Setup().Validate(); err != nil {
		return err
	}

	seen := make(map[int]struct{}, len(spec.Quests))
	for i, q := range spec.Quests {
		if q.Index < 1 || q.Index > spec.Count {
			return fmt.Errorf("%w: quests[%d]: index %d out of range 1..%d", quest.ErrInvalidBatch, i, q.Index, spec.Count)
		}
		if _, dup := seen[q.Index]; dup {
			return fmt.Errorf("%w: quests[%d]: duplicate index %d", quest.ErrInvalidBatch, i, q.Index)
		}
		seen[q.Index] = struct{}{}

		names := make(map[string]struct{}, len(q.Tasks))
		for j, t := range q.Tasks {
			name := strings.TrimSpace(t.Name)
			if name == "" {
				return fmt.Errorf("%w: quests[%d].tasks[%d]: name is required", quest.ErrInvalidBatch, i, j)
			}
			if strings.TrimSpace(t.Kind) == "" {
				return fmt.Errorf("%w: quests[%d].tasks[%d]: kind is required", quest.ErrInvalidBatch, i, j)
			}
			if _, dup := names[name]; dup {
				return fmt.Errorf("quests[%d].tasks[%d]: %w: %q", i, j, quest.ErrDuplicateTaskName, name)
			}
			names[name] = struct{}{}
		}
		if q.Cooldown != nil && q.Cooldown.Time != nil && *q.Cooldown.Time < 0 {
			return fmt.Errorf("%w: quests[%d]: cooldown time must be >= 0", quest.ErrInvalidBatch, i)
		}
	}
	return nil
}

// Setup returns the batch header as quest setup values.
func (s *Spec) Setup() quest.BatchSetup {
	return quest.BatchSetup{
		Count:           s.Count,
		Category:        s.Category,
		CategoryDisplay: s.CategoryDisplay,
		LastSortOrder:   s.LastSortOrder,
	}
}

// trimTrailingBlank drops blank lines at the end of a multi-line list.
func trimTrailingBlank(lines []string) []string {
	end := len(lines)
	for end > 0 && strings.TrimSpace(lines[end-1]) == "" {
		end--
	}
	if lines == nil {
		return nil
	}
	return lines[:end]
}
