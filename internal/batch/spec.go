// Package batch loads YAML batch files and turns them into quests.
package batch

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/kayz/questgen/internal/quest"
	"github.com/kayz/questgen/internal/yamltext"
)

// CurrentVersion is the only batch file version understood by Parse.
const CurrentVersion = 1

// Spec describes one generation batch.
type Spec struct {
	Version         int                     `yaml:"version" json:"version"`
	Category        string                  `yaml:"category" json:"category"`
	CategoryDisplay string                  `yaml:"category_display" json:"category_display"`
	Count           int                     `yaml:"count" json:"count"`
	LastSortOrder   int                     `yaml:"last_sort_order,omitempty" json:"last_sort_order,omitempty"`
	Placeholders    quest.PlaceholderFormat `yaml:"placeholders,omitempty" json:"placeholders,omitempty"`
	Lore            *LoreSpec               `yaml:"lore,omitempty" json:"lore,omitempty"`
	Quests          []QuestSpec             `yaml:"quests,omitempty" json:"quests,omitempty"`
}

// LoreSpec overrides the automatic lore templates for every quest in the batch.
type LoreSpec struct {
	CategoryHeader string            `yaml:"category_header,omitempty" json:"category_header,omitempty"`
	TaskLine       string            `yaml:"task_line,omitempty" json:"task_line,omitempty"`
	RewardsHeader  string            `yaml:"rewards_header,omitempty" json:"rewards_header,omitempty"`
	RewardLine     string            `yaml:"reward_line,omitempty" json:"reward_line,omitempty"`
	NotStarted     string            `yaml:"not_started,omitempty" json:"not_started,omitempty"`
	StartedLine    string            `yaml:"started_line,omitempty" json:"started_line,omitempty"`
	Titles         map[string]string `yaml:"titles,omitempty" json:"titles,omitempty"`
}

// Style converts the spec into a quest lore style.
func (l *LoreSpec) Style() quest.LoreStyle {
	if l == nil {
		return quest.DefaultLoreStyle()
	}
	return quest.LoreStyle{
		CategoryHeader: l.CategoryHeader,
		TaskLine:       l.TaskLine,
		RewardsHeader:  l.RewardsHeader,
		RewardLine:     l.RewardLine,
		NotStarted:     l.NotStarted,
		StartedLine:    l.StartedLine,
		Titles:         l.Titles,
	}.WithDefaults()
}

// QuestSpec holds the edits applied to one quest of the batch. Pointer
// fields distinguish "absent" from "empty".
type QuestSpec struct {
	Index                int           `yaml:"index,omitempty" json:"index,omitempty"`
	Display              DisplaySpec   `yaml:"display,omitempty" json:"display,omitempty"`
	Tasks                []TaskSpec    `yaml:"tasks,omitempty" json:"tasks,omitempty"`
	Rewards              []string      `yaml:"rewards,omitempty" json:"rewards,omitempty"`
	RewardLore           []string      `yaml:"reward_lore,omitempty" json:"reward_lore,omitempty"`
	LoreNormal           *[]string     `yaml:"lore_normal,omitempty" json:"lore_normal,omitempty"`
	LoreStarted          *[]string     `yaml:"lore_started,omitempty" json:"lore_started,omitempty"`
	Repeatable           bool          `yaml:"repeatable,omitempty" json:"repeatable,omitempty"`
	Cooldown             *CooldownSpec `yaml:"cooldown,omitempty" json:"cooldown,omitempty"`
	Requires             *[]string     `yaml:"requires,omitempty" json:"requires,omitempty"`
	Placeholders         Overrides     `yaml:"placeholders,omitempty" json:"-"`
	ProgressPlaceholders Overrides     `yaml:"progress_placeholders,omitempty" json:"-"`
}

// DisplaySpec sets the quest icon and name.
type DisplaySpec struct {
	Name     string `yaml:"name,omitempty" json:"name,omitempty"`
	Type     string `yaml:"type,omitempty" json:"type,omitempty"`
	AutoName *bool  `yaml:"auto_name,omitempty" json:"auto_name,omitempty"`
}

// CooldownSpec overrides parts of the default cooldown.
type CooldownSpec struct {
	Enabled *bool `yaml:"enabled,omitempty" json:"enabled,omitempty"`
	Time    *int  `yaml:"time,omitempty" json:"time,omitempty"`
}

// TaskSpec is one task entry. Fields are passed raw to the normalizer.
type TaskSpec struct {
	Name   string         `yaml:"name" json:"name"`
	Kind   string         `yaml:"kind" json:"kind"`
	Label  string         `yaml:"label,omitempty" json:"label,omitempty"`
	Fields map[string]any `yaml:"fields,omitempty" json:"fields,omitempty"`
}

// Overrides is a string map that keeps the key order of the batch file.
type Overrides struct {
	m *yamltext.Map
}

// UnmarshalYAML reads a mapping node pair by pair so the order survives.
func (o *Overrides) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: expected a mapping, got %s", node.Line, nodeKind(node))
	}
	m := yamltext.NewMap()
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], node.Content[i+1]
		if value.Kind != yaml.ScalarNode {
			return fmt.Errorf("line %d: placeholder %q must be a string", value.Line, key.Value)
		}
		m.Set(key.Value, value.Value)
	}
	o.m = m
	return nil
}

// Map returns the overrides, or nil when the key was absent.
func (o Overrides) Map() *yamltext.Map {
	if o.m == nil {
		return nil
	}
	return o.m.Clone()
}

// Len returns the number of entries.
func (o Overrides) Len() int { return o.m.Len() }

// NewOverrides builds overrides from alternating key/value pairs.
func NewOverrides(pairs ...string) Overrides {
	m := yamltext.NewMap()
	for i := 0; i+1 < len(pairs); i += 2 {
		m.Set(pairs[i], pairs[i+1])
	}
	return Overrides{m: m}
}

func nodeKind(n *yaml.Node) string {
	switch n.Kind {
	case yaml.SequenceNode:
		return "sequence"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	case yaml.DocumentNode:
		return "document"
	}
	return "mapping"
}
