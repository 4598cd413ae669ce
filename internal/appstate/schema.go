package appstate

import (
	"github.com/abhisek/mastermind/internal/schemacheck"
	"github.com/abhisek/mastermind/internal/store"
)

// Slot documents are written by this package only, but a hand-edited or
// half-written database must not crash startup. Each slot is checked
// against its schema before it is decoded.

var settingsSchema = schemacheck.Schema{
	Name: store.SlotSettings,
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"name":     map[string]any{"type": "string"},
			"examType": map[string]any{"type": "string"},
			"examDate": map[string]any{"type": "string", "minLength": 10},
		},
		"required": []any{"name", "examType", "examDate"},
	},
}

var curriculumSchema = schemacheck.Schema{
	Name: store.SlotCurriculum,
	Definition: map[string]any{
		"type": "array",
		"items": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"id":     map[string]any{"type": "string"},
				"title":  map[string]any{"type": "string"},
				"topics": map[string]any{"type": "array", "items": map[string]any{"$ref": "#/$defs/item"}},
			},
			"required": []any{"id", "topics"},
		},
		"$defs": map[string]any{
			"item": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"id":        map[string]any{"type": "string"},
					"title":     map[string]any{"type": "string"},
					"completed": map[string]any{"type": "boolean"},
					"subtopics": map[string]any{"type": "array", "items": map[string]any{"$ref": "#/$defs/item"}},
				},
				"required": []any{"id", "completed"},
			},
		},
	},
}

var planSchema = schemacheck.Schema{
	Name: store.SlotPlan,
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"title": map[string]any{"type": "string"},
			"schedule": map[string]any{
				"type": []any{"array", "null"},
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"day":   map[string]any{"type": "string"},
						"notes": map[string]any{"type": "string"},
						"sessions": map[string]any{
							"type": []any{"array", "null"},
							"items": map[string]any{
								"type": "object",
								"properties": map[string]any{
									"topic":    map[string]any{"type": "string"},
									"duration": map[string]any{"type": "string"},
									"method":   map[string]any{"type": "string"},
									"focus":    map[string]any{"type": "string"},
								},
							},
						},
					},
				},
			},
			"createdAt": map[string]any{"type": "string"},
		},
		"required": []any{"title", "schedule"},
	},
}
