package tips

import "github.com/mindora-app/mindora/internal/llm"

// TipSchema defines the JSON schema for daily wellness tips.
var TipSchema = &llm.Schema{
	Name:        "wellness-tip",
	Description: "A short, practical workplace wellness tip",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"title": map[string]any{
				"type":        "string",
				"description": "Short title for the tip (2-5 words)",
			},
			"body": map[string]any{
				"type":        "string",
				"description": "One or two sentences the reader can act on today",
			},
		},
		"required":             []any{"title", "body"},
		"additionalProperties": false,
	},
}

// PromptSchema defines the JSON schema for journal prompts.
var PromptSchema = &llm.Schema{
	Name:        "journal-prompt",
	Description: "A single reflective journaling question",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"prompt": map[string]any{
				"type":        "string",
				"description": "One open question, under 30 words",
			},
		},
		"required":             []any{"prompt"},
		"additionalProperties": false,
	},
}
