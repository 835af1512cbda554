package quest

import (
	"github.com/kayz/questgen/internal/schema"
	"github.com/kayz/questgen/internal/yamltext"
)

// Assemble builds the ordered value tree written to a quest file.
func Assemble(q *Quest, format PlaceholderFormat) *yamltext.Map {
	tasks := yamltext.NewMap()
	for _, t := range q.tasks {
		entry := yamltext.NewMap().Set("type", t.Kind)
		var ordered *yamltext.Map
		if k, err := schema.Lookup(t.Kind); err == nil {
			ordered = t.Fields.Ordered(k)
		} else {
			ordered = t.Fields.Ordered(&schema.Kind{Name: t.Kind})
		}
		for _, key := range ordered.Keys() {
			v, _ := ordered.Get(key)
			entry.Set(key, v)
		}
		tasks.Set(t.Name, entry)
	}

	placeholders, progress := q.GeneratePlaceholders(format)

	options := yamltext.NewMap().
		Set("category", q.Category).
		Set("repeatable", q.Repeatable)
	if len(q.RequiredQuests) > 0 {
		options.Set("requires", cloneLines(q.RequiredQuests))
	}
	options.
		Set("cooldown", yamltext.NewMap().
			Set("enabled", q.Cooldown.Enabled).
			Set("time", q.Cooldown.Time)).
		Set("sort-order", q.sortOrder)

	return yamltext.NewMap().
		Set("tasks", tasks).
		Set("display", yamltext.NewMap().
			Set("name", q.displayName).
			Set("lore-normal", cloneLines(q.loreNormal.Lines)).
			Set("lore-started", cloneLines(q.loreStarted.Lines)).
			Set("type", q.DisplayType)).
		Set("rewards", cloneLines(q.RewardCommands)).
		Set("placeholders", placeholders).
		Set("progress-placeholders", progress).
		Set("options", options)
}

// Render serializes the quest as file content, ending in a single newline.
func Render(q *Quest, format PlaceholderFormat) string {
	return yamltext.Dump(Assemble(q, format), 0) + "\n"
}
