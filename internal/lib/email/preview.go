package email

import "time"

// PreviewData contains sample template data for local preview/testing.
var PreviewData = map[Template]ItemEvent{
	TemplateItemCreated: {
		Type:       "item:created",
		ItemID:     1,
		Name:       "widget",
		OccurredAt: time.Date(2026, time.January, 2, 15, 4, 5, 0, time.UTC),
	},
	TemplateItemDeleted: {
		Type:       "item:deleted",
		ItemID:     1,
		OccurredAt: time.Date(2026, time.January, 2, 15, 4, 5, 0, time.UTC),
	},
}
