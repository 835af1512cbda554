// Package quest models one generated quest and derives its display text,
// lore and placeholders from its task set.
//
// A Quest is owned by a single writer. Every mutator finishes its edit
// (including recomputation of derived lore) before returning, so a reader
// never observes a half-applied task set.
package quest

import (
	"github.com/kayz/questgen/internal/task"
	"github.com/kayz/questgen/internal/yamltext"
)

// Defaults applied to freshly set up quests.
const (
	DefaultDisplayType  = "STONE"
	DefaultCooldownTime = 1440
	displayNameMarker   = "&e"
)

// Mode says whether a derived field is recomputed or frozen.
type Mode int

const (
	// Auto fields are recomputed on every relevant change.
	Auto Mode = iota
	// Manual fields were edited directly and are left alone until reset.
	Manual
)

func (m Mode) String() string {
	if m == Manual {
		return "manual"
	}
	return "auto"
}

// Derived is a list of lines that is either computed or manually set.
type Derived struct {
	Lines []string
	Mode  Mode
}

// Record is one named task inside a quest.
type Record struct {
	Name   string
	Kind   string
	Fields task.Fields
	Label  string
}

// Title returns the label, or the name when the label is blank.
func (r *Record) Title() string {
	return displayTitle(r.Label, r.Name)
}

// Cooldown controls how long a completed repeatable quest stays locked.
type Cooldown struct {
	Enabled bool
	Time    int
}

// Quest is one configuration record. Plain attributes are exported; state
// with derivation rules is reached through methods.
type Quest struct {
	ID             string
	Category       string
	DisplayType    string
	RewardCommands []string
	Repeatable     bool
	Cooldown       Cooldown
	RequiredQuests []string

	sortOrder       int
	categoryDisplay string

	displayName     string
	displayNameAuto bool

	tasks []*Record

	loreNormal      Derived
	loreStarted     Derived
	rewardLoreLines []string
	style           LoreStyle

	placeholderOverrides         *yamltext.Map
	progressPlaceholderOverrides *yamltext.Map
}

// New creates a quest with the setup defaults: display-name auto mode,
// auto lore, STONE icon and an enabled 1440 minute cooldown.
func New(id, category, categoryDisplay string, sortOrder int) *Quest {
	q := &Quest{
		ID:              id,
		Category:        category,
		DisplayType:     DefaultDisplayType,
		RewardCommands:  []string{},
		Cooldown:        Cooldown{Enabled: true, Time: DefaultCooldownTime},
		RequiredQuests:  []string{},
		sortOrder:       sortOrder,
		categoryDisplay: categoryDisplay,
		displayNameAuto: true,
		loreStarted:     Derived{Lines: []string{""}},
		style:           DefaultLoreStyle(),
	}
	q.refreshDisplayName()
	q.RebuildLore()
	return q
}

// SortOrder returns the ordering key within the category.
func (q *Quest) SortOrder() int { return q.sortOrder }

// SetSortOrder changes the sort order and refreshes an automatic display name.
func (q *Quest) SetSortOrder(n int) {
	q.sortOrder = n
	q.refreshDisplayName()
}

// CategoryDisplay returns the human category label.
func (q *Quest) CategoryDisplay() string { return q.categoryDisplay }

// SetCategoryDisplay changes the category label and refreshes an automatic display name.
func (q *Quest) SetCategoryDisplay(s string) {
	q.categoryDisplay = s
	q.refreshDisplayName()
}

// LoreStyle returns the templates used for automatic lore.
func (q *Quest) LoreStyle() LoreStyle { return q.style }

// SetLoreStyle replaces the lore templates and recomputes automatic lore.
func (q *Quest) SetLoreStyle(style LoreStyle) {
	q.style = style.WithDefaults()
	q.RebuildLore()
}

func cloneLines(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}
