package quest

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/kayz/questgen/internal/task"
)

// DefaultLabel is the label given to a task whose label is left blank.
func DefaultLabel(name string) string {
	// Casers keep state; one per call keeps quests independent.
	return cases.Title(language.Und).String(strings.TrimSpace(name))
}

// AddTask normalizes raw for kind and appends the task. The name is checked
// for uniqueness before any schema work. A blank label defaults to the
// title-cased name.
func (q *Quest) AddTask(name, kind string, raw map[string]any, label string) (*Record, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyTaskName
	}
	if q.indexOf(name) >= 0 {
		return nil, fmt.Errorf("quest %s: %w: %q", q.ID, ErrDuplicateTaskName, name)
	}

	fields, err := task.Normalize(kind, raw)
	if err != nil {
		return nil, fmt.Errorf("quest %s: task %q: %w", q.ID, name, err)
	}

	label = strings.TrimSpace(label)
	if label == "" {
		label = DefaultLabel(name)
	}

	rec := &Record{Name: name, Kind: kind, Fields: fields, Label: label}
	q.tasks = append(q.tasks, rec)
	q.RebuildLore()
	return rec, nil
}

// EditTask replaces the fields and label of an existing task. The kind is
// kept. On error the task is left untouched.
func (q *Quest) EditTask(name string, raw map[string]any, label string) (*Record, error) {
	i := q.indexOf(name)
	if i < 0 {
		return nil, fmt.Errorf("quest %s: %w: %q", q.ID, ErrTaskNotFound, name)
	}
	rec := q.tasks[i]

	fields, err := task.Normalize(rec.Kind, raw)
	if err != nil {
		return nil, fmt.Errorf("quest %s: task %q: %w", q.ID, name, err)
	}

	rec.Fields = fields
	rec.Label = strings.TrimSpace(label)
	q.RebuildLore()
	return rec, nil
}

// RemoveTask deletes a task by name.
func (q *Quest) RemoveTask(name string) error {
	i := q.indexOf(name)
	if i < 0 {
		return fmt.Errorf("quest %s: %w: %q", q.ID, ErrTaskNotFound, name)
	}
	q.tasks = append(q.tasks[:i:i], q.tasks[i+1:]...)
	q.RebuildLore()
	return nil
}

// Task returns the task with the given name.
func (q *Quest) Task(name string) (*Record, bool) {
	i := q.indexOf(name)
	if i < 0 {
		return nil, false
	}
	return q.tasks[i], true
}

// Tasks returns the tasks in insertion order.
func (q *Quest) Tasks() []*Record {
	out := make([]*Record, len(q.tasks))
	copy(out, q.tasks)
	return out
}

func (q *Quest) indexOf(name string) int {
	for i, t := range q.tasks {
		if t.Name == name {
			return i
		}
	}
	return -1
}

func displayTitle(label, name string) string {
	if t := strings.TrimSpace(label); t != "" {
		return t
	}
	if t := strings.TrimSpace(name); t != "" {
		return t
	}
	return name
}
