package quest

import (
	"fmt"
	"strconv"
	"strings"
)

// BatchSetup seeds a batch of quests in one category.
type BatchSetup struct {
	Count           int
	Category        string
	CategoryDisplay string
	// LastSortOrder is the highest sort order already used in the category;
	// values <= 0 start the batch at 1.
	LastSortOrder int
}

// Validate checks the setup values.
func (b BatchSetup) Validate() error {
	if strings.TrimSpace(b.Category) == "" {
		return fmt.Errorf("%w: category is required", ErrInvalidBatch)
	}
	if strings.TrimSpace(b.CategoryDisplay) == "" {
		return fmt.Errorf("%w: category display is required", ErrInvalidBatch)
	}
	if b.Count <= 0 {
		return fmt.Errorf("%w: count must be >= 1, got %d", ErrInvalidBatch, b.Count)
	}
	return nil
}

// QuestID builds the id of the quest at sortOrder in category.
func QuestID(category string, sortOrder int) string {
	return category + strconv.Itoa(sortOrder)
}

// Setup creates Count quests following LastSortOrder. Each quest with a sort
// order above 1 requires the quest immediately before it.
func Setup(b BatchSetup) ([]*Quest, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}
	category := strings.TrimSpace(b.Category)
	display := strings.TrimSpace(b.CategoryDisplay)

	base := 0
	if b.LastSortOrder > 0 {
		base = b.LastSortOrder
	}

	quests := make([]*Quest, 0, b.Count)
	for i := 1; i <= b.Count; i++ {
		sortOrder := base + i
		q := New(QuestID(category, sortOrder), category, display, sortOrder)
		if sortOrder > 1 {
			q.RequiredQuests = []string{QuestID(category, sortOrder-1)}
		}
		quests = append(quests, q)
	}
	return quests, nil
}
