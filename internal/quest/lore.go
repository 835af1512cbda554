package quest

import (
	"sort"
	"strings"

	"github.com/kayz/questgen/internal/schema"
)

// LoreStyle holds the line templates of automatic lore. CategoryHeader uses
// {title}, the group title. TaskLine and StartedLine use {task}, {label},
// {progress} and {goal}, the same words as PlaceholderFormat. RewardLine
// uses {reward}.
type LoreStyle struct {
	CategoryHeader string
	TaskLine       string
	RewardsHeader  string
	RewardLine     string
	NotStarted     string
	StartedLine    string
	// Titles overrides the schema's kind titles.
	Titles map[string]string
}

// DefaultLoreStyle returns the stock Italian lore layout.
func DefaultLoreStyle() LoreStyle {
	return LoreStyle{
		CategoryHeader: "&6{title}:",
		TaskLine:       "&8- &7{label}",
		RewardsHeader:  "&6Premi:",
		RewardLine:     "&8- &7{reward}",
		NotStarted:     "&c&l ✘ &7Non iniziata.",
		StartedLine:    "&6{label}: &7{progress}/{goal}",
	}
}

// WithDefaults fills blank templates from DefaultLoreStyle.
func (s LoreStyle) WithDefaults() LoreStyle {
	def := DefaultLoreStyle()
	if strings.TrimSpace(s.CategoryHeader) == "" {
		s.CategoryHeader = def.CategoryHeader
	}
	if strings.TrimSpace(s.TaskLine) == "" {
		s.TaskLine = def.TaskLine
	}
	if strings.TrimSpace(s.RewardsHeader) == "" {
		s.RewardsHeader = def.RewardsHeader
	}
	if strings.TrimSpace(s.RewardLine) == "" {
		s.RewardLine = def.RewardLine
	}
	if strings.TrimSpace(s.NotStarted) == "" {
		s.NotStarted = def.NotStarted
	}
	if strings.TrimSpace(s.StartedLine) == "" {
		s.StartedLine = def.StartedLine
	}
	return s
}

func (s LoreStyle) title(kind string) string {
	if t, ok := s.Titles[kind]; ok && strings.TrimSpace(t) != "" {
		return t
	}
	return schema.Title(kind)
}

// LoreNormal returns the not-started lore.
func (q *Quest) LoreNormal() Derived {
	return Derived{Lines: cloneLines(q.loreNormal.Lines), Mode: q.loreNormal.Mode}
}

// LoreStarted returns the in-progress lore.
func (q *Quest) LoreStarted() Derived {
	return Derived{Lines: cloneLines(q.loreStarted.Lines), Mode: q.loreStarted.Mode}
}

// SetLoreNormal stores lines and freezes the not-started lore.
func (q *Quest) SetLoreNormal(lines []string) {
	q.loreNormal = Derived{Lines: cloneLines(lines), Mode: Manual}
}

// SetLoreStarted stores lines and freezes the in-progress lore.
func (q *Quest) SetLoreStarted(lines []string) {
	q.loreStarted = Derived{Lines: cloneLines(lines), Mode: Manual}
}

// ResetLore returns both lore blocks to automatic mode and recomputes them.
func (q *Quest) ResetLore() {
	q.loreNormal.Mode = Auto
	q.loreStarted.Mode = Auto
	q.RebuildLore()
}

// RewardLoreLines returns the reward lines shown in the not-started lore.
func (q *Quest) RewardLoreLines() []string { return cloneLines(q.rewardLoreLines) }

// SetRewardLoreLines replaces the reward lines and recomputes automatic lore.
func (q *Quest) SetRewardLoreLines(lines []string) {
	q.rewardLoreLines = cloneLines(lines)
	q.RebuildLore()
}

// RebuildLore recomputes every lore block that is in Auto mode.
func (q *Quest) RebuildLore() {
	if q.loreNormal.Mode == Auto {
		q.loreNormal.Lines = q.buildLoreNormal()
	}
	if q.loreStarted.Mode == Auto {
		q.loreStarted.Lines = q.buildLoreStarted()
	}
}

func (q *Quest) buildLoreNormal() []string {
	style := q.style.WithDefaults()

	grouped := make(map[string][]*Record)
	for _, t := range q.tasks {
		cat := style.title(t.Kind)
		grouped[cat] = append(grouped[cat], t)
	}
	categories := make([]string, 0, len(grouped))
	for cat := range grouped {
		categories = append(categories, cat)
	}
	sort.Strings(categories)

	var lines []string
	for _, cat := range categories {
		lines = append(lines, expand(style.CategoryHeader, "title", cat))
		for _, t := range grouped[cat] {
			lines = append(lines, expandTask(style.TaskLine, t))
		}
	}

	lines = append(lines, "", style.RewardsHeader)
	for _, line := range q.rewardLoreLines {
		lines = append(lines, expand(style.RewardLine, "reward", line))
	}
	lines = append(lines, "", style.NotStarted)
	return lines
}

func (q *Quest) buildLoreStarted() []string {
	style := q.style.WithDefaults()

	lines := []string{""}
	for _, t := range q.tasks {
		lines = append(lines, expandTask(style.StartedLine, t))
	}
	return lines
}

func expandTask(tmpl string, t *Record) string {
	return expand(tmpl,
		"task", t.Name,
		"label", t.Title(),
		"progress", ProgressToken(t.Name),
		"goal", GoalToken(t.Name),
	)
}

// expand substitutes {name} variables given as name/value pairs.
func expand(tmpl string, pairs ...string) string {
	args := make([]string, 0, len(pairs))
	for i := 0; i+1 < len(pairs); i += 2 {
		args = append(args, "{"+pairs[i]+"}", pairs[i+1])
	}
	return strings.NewReplacer(args...).Replace(tmpl)
}
