package batch

import (
	"fmt"
	"strings"

	"github.com/kayz/questgen/internal/quest"
)

// Build sets up the batch quests and applies every quest entry through the
// quest API. Errors name the quest id and, for task errors, the task.
func Build(spec *Spec) ([]*quest.Quest, error) {
	if err := Validate(spec); err != nil {
		return nil, err
	}

	quests, err := quest.Setup(spec.Setup())
	if err != nil {
		return nil, err
	}
	if spec.Lore != nil {
		style := spec.Lore.Style()
		for _, q := range quests {
			q.SetLoreStyle(style)
		}
	}

	for _, qs := range spec.Quests {
		if err := apply(quests[qs.Index-1], qs); err != nil {
			return nil, err
		}
	}
	return quests, nil
}

// Render builds the batch and renders every quest with the batch
// placeholder format layered over base.
func Render(spec *Spec, base quest.PlaceholderFormat) ([]*quest.Quest, []string, error) {
	quests, err := Build(spec)
	if err != nil {
		return nil, nil, err
	}
	format := MergeFormat(base, spec.Placeholders)
	texts := make([]string, len(quests))
	for i, q := range quests {
		texts[i] = quest.Render(q, format)
	}
	return quests, texts, nil
}

// MergeFormat returns base with every non-blank template of override applied.
func MergeFormat(base, override quest.PlaceholderFormat) quest.PlaceholderFormat {
	if strings.TrimSpace(override.Key) != "" {
		base.Key = override.Key
	}
	if strings.TrimSpace(override.Value) != "" {
		base.Value = override.Value
	}
	if strings.TrimSpace(override.Progress) != "" {
		base.Progress = override.Progress
	}
	return base
}

func apply(q *quest.Quest, qs QuestSpec) error {
	d := qs.Display
	if t := strings.TrimSpace(d.Type); t != "" {
		q.DisplayType = t
	}
	if d.AutoName != nil {
		q.SetDisplayNameAuto(*d.AutoName)
	}
	if name := strings.TrimSpace(d.Name); name != "" {
		if d.AutoName == nil {
			q.SetDisplayNameAuto(false)
		}
		q.SetDisplayName(name)
	}

	for _, t := range qs.Tasks {
		if _, err := q.AddTask(t.Name, strings.TrimSpace(t.Kind), t.Fields, t.Label); err != nil {
			return err
		}
	}

	if qs.Rewards != nil {
		q.RewardCommands = append([]string{}, qs.Rewards...)
	}
	if qs.RewardLore != nil {
		q.SetRewardLoreLines(qs.RewardLore)
	}
	if qs.LoreNormal != nil {
		q.SetLoreNormal(*qs.LoreNormal)
	}
	if qs.LoreStarted != nil {
		q.SetLoreStarted(*qs.LoreStarted)
	}

	q.Repeatable = qs.Repeatable
	if c := qs.Cooldown; c != nil {
		if c.Enabled != nil {
			q.Cooldown.Enabled = *c.Enabled
		}
		if c.Time != nil {
			q.Cooldown.Time = *c.Time
		}
	}
	if qs.Requires != nil {
		q.RequiredQuests = normalizeIDs(*qs.Requires)
	}

	if m := qs.Placeholders.Map(); m != nil {
		q.SetPlaceholderOverrides(m)
	}
	if m := qs.ProgressPlaceholders.Map(); m != nil {
		q.SetProgressPlaceholderOverrides(m)
	}
	return nil
}

func normalizeIDs(ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id = strings.TrimSpace(id); id != "" {
			out = append(out, id)
		}
	}
	if len(out) == 0 {
		return []string{}
	}
	return out
}

// Summary is a short description of a built quest, used for reports.
func Summary(q *quest.Quest) string {
	return fmt.Sprintf("%s (%s, %d tasks)", q.ID, q.DisplayName(), len(q.Tasks()))
}
