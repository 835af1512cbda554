package quest

import (
	"strings"

	"github.com/kayz/questgen/internal/yamltext"
)

// Fallback placeholder templates used when a format is left blank.
const (
	DefaultPlaceholderKey   = "progress-{task}"
	DefaultPlaceholderValue = "&7{label} &f{progress}&8/&f{goal}"
)

// PlaceholderFormat configures generated placeholders. Each template may use
// {task}, {label}, {progress} and {goal}.
type PlaceholderFormat struct {
	Key      string `yaml:"key,omitempty"`
	Value    string `yaml:"value,omitempty"`
	Progress string `yaml:"progress,omitempty"`
}

// WithDefaults trims the templates and fills blank ones with the fallbacks.
func (f PlaceholderFormat) WithDefaults() PlaceholderFormat {
	f.Key = strings.TrimSpace(f.Key)
	f.Value = strings.TrimSpace(f.Value)
	f.Progress = strings.TrimSpace(f.Progress)
	if f.Key == "" {
		f.Key = DefaultPlaceholderKey
	}
	if f.Value == "" {
		f.Value = DefaultPlaceholderValue
	}
	if f.Progress == "" {
		f.Progress = DefaultPlaceholderValue
	}
	return f
}

// ProgressToken is the runtime token for a task's current progress.
func ProgressToken(taskName string) string { return "{" + taskName + ":progress}" }

// GoalToken is the runtime token for a task's goal.
func GoalToken(taskName string) string { return "{" + taskName + ":goal}" }

// GeneratePlaceholders returns the placeholders and progress-placeholders
// maps. A non-empty override map replaces its generated counterpart as a
// whole.
func (q *Quest) GeneratePlaceholders(format PlaceholderFormat) (placeholders, progress *yamltext.Map) {
	placeholders, progress = q.generatedPlaceholders(format)
	if q.placeholderOverrides.Len() > 0 {
		placeholders = q.placeholderOverrides.Clone()
	}
	if q.progressPlaceholderOverrides.Len() > 0 {
		progress = q.progressPlaceholderOverrides.Clone()
	}
	return placeholders, progress
}

func (q *Quest) generatedPlaceholders(format PlaceholderFormat) (*yamltext.Map, *yamltext.Map) {
	format = format.WithDefaults()
	placeholders := yamltext.NewMap()
	progress := yamltext.NewMap()

	for _, t := range q.tasks {
		r := strings.NewReplacer(
			"{task}", t.Name,
			"{label}", t.Title(),
			"{progress}", ProgressToken(t.Name),
			"{goal}", GoalToken(t.Name),
		)
		placeholders.Set(r.Replace(format.Key), r.Replace(format.Value))
		progress.Set(t.Name, r.Replace(format.Progress))
	}
	return placeholders, progress
}

// PlaceholderOverrides returns a copy of the explicit placeholders, or nil.
func (q *Quest) PlaceholderOverrides() *yamltext.Map {
	if q.placeholderOverrides == nil {
		return nil
	}
	return q.placeholderOverrides.Clone()
}

// ProgressPlaceholderOverrides returns a copy of the explicit progress placeholders, or nil.
func (q *Quest) ProgressPlaceholderOverrides() *yamltext.Map {
	if q.progressPlaceholderOverrides == nil {
		return nil
	}
	return q.progressPlaceholderOverrides.Clone()
}

// SetPlaceholderOverrides replaces the generated placeholders with m.
// An empty map behaves like no override.
func (q *Quest) SetPlaceholderOverrides(m *yamltext.Map) {
	q.placeholderOverrides = m.Clone()
}

// SetProgressPlaceholderOverrides replaces the generated progress placeholders with m.
func (q *Quest) SetProgressPlaceholderOverrides(m *yamltext.Map) {
	q.progressPlaceholderOverrides = m.Clone()
}

// ResetPlaceholderOverrides discards both override maps.
func (q *Quest) ResetPlaceholderOverrides() {
	q.placeholderOverrides = nil
	q.progressPlaceholderOverrides = nil
}
