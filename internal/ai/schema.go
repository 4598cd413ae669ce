package ai

import "github.com/abhisek/mastermind/internal/llm"

// StudyPlanSchema is the structured output requested for a revision plan.
// createdAt is stamped locally and is not part of it.
var StudyPlanSchema = &llm.Schema{
	Name:        "study-plan",
	Description: "A multi-week revision timetable broken into days and study sessions",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"title": map[string]any{
				"type":        "string",
				"description": "Short title for the plan",
			},
			"schedule": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"day": map[string]any{
							"type":        "string",
							"description": "Day label, e.g. Week 1 - Monday",
						},
						"notes": map[string]any{
							"type":        "string",
							"description": "Examiner tip or goal for the day",
						},
						"sessions": map[string]any{
							"type": "array",
							"items": map[string]any{
								"type": "object",
								"properties": map[string]any{
									"topic":    map[string]any{"type": "string"},
									"duration": map[string]any{"type": "string"},
									"method": map[string]any{
										"type":        "string",
										"description": "Active Recall, SBA Practice or Core Reading",
									},
									"focus": map[string]any{"type": "string"},
								},
								"required":             []any{"topic", "duration", "method", "focus"},
								"additionalProperties": false,
							},
						},
					},
					"required":             []any{"day", "sessions", "notes"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"title", "schedule"},
		"additionalProperties": false,
	},
}

// QuizSchema is the structured output requested for a set of SBA questions.
var QuizSchema = &llm.Schema{
	Name:        "sba-quiz",
	Description: "Single best answer questions with five options and an explanation",
	Definition: map[string]any{
		"type": "array",
		"items": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"id":       map[string]any{"type": "string"},
				"question": map[string]any{"type": "string"},
				"options": map[string]any{
					"type":  "array",
					"items": map[string]any{"type": "string"},
				},
				"correctIndex": map[string]any{
					"type":        "integer",
					"description": "Zero-based index of the single best answer",
				},
				"explanation": map[string]any{"type": "string"},
				"domain": map[string]any{
					"type":        "string",
					"description": "Syllabus domain, e.g. Pharmacology",
				},
			},
			"required":             []any{"id", "question", "options", "correctIndex", "explanation", "domain"},
			"additionalProperties": false,
		},
	},
}
