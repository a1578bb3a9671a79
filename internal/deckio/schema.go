package deckio

var ratingTokens = []any{"again", "hard", "good", "easy"}

// documentSchema is the structural gate for imported deck documents:
// shapes, required fields, rating-token enums and numeric floors.
// Semantic invariants (cursor bounds, tally/history agreement) are
// checked by deck.Validate after decoding.
var documentSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"version": map[string]any{
			"type":  "integer",
			"const": FormatVersion,
		},
		"id":         map[string]any{"type": "string", "minLength": 1},
		"name":       map[string]any{"type": "string", "minLength": 1},
		"created_at": map[string]any{"type": "integer", "minimum": 0},
		"round":      map[string]any{"type": "integer", "minimum": 1},
		"cursor":     map[string]any{"type": "integer", "minimum": 0},
		"round_complete": map[string]any{"type": "boolean"},
		"deck_complete":  map[string]any{"type": "boolean"},
		"round_order": map[string]any{
			"type":     "array",
			"minItems": 1,
			"items":    map[string]any{"type": "integer", "minimum": 0},
		},
		"rating_tally": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"again": map[string]any{"type": "integer", "minimum": 0},
				"hard":  map[string]any{"type": "integer", "minimum": 0},
				"good":  map[string]any{"type": "integer", "minimum": 0},
				"easy":  map[string]any{"type": "integer", "minimum": 0},
			},
			"required":             []any{"again", "hard", "good", "easy"},
			"additionalProperties": false,
		},
		"rating_history": map[string]any{
			"type":  "array",
			"items": map[string]any{"enum": ratingTokens},
		},
		"cards": map[string]any{
			"type":     "array",
			"minItems": 1,
			"items":    cardSchema,
		},
	},
	"required": []any{
		"version", "id", "name", "created_at", "round", "cursor",
		"round_complete", "deck_complete", "round_order", "rating_tally",
		"rating_history", "cards",
	},
	"additionalProperties": false,
}

var cardSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"id":               map[string]any{"type": "string", "minLength": 1},
		"prompt":           map[string]any{"type": "string", "minLength": 1},
		"response":         map[string]any{"type": "string", "minLength": 1},
		"repetitions":      map[string]any{"type": "integer", "minimum": 0},
		"ease_factor":      map[string]any{"type": "number", "minimum": 1.3},
		"interval":         map[string]any{"type": "integer", "minimum": 0},
		"due_at":           map[string]any{"type": "integer", "minimum": 0},
		"retired":          map[string]any{"type": "boolean"},
		"created_at":       map[string]any{"type": "integer", "minimum": 0},
		"last_reviewed_at": map[string]any{"type": "integer", "minimum": 0},
	},
	"required": []any{
		"id", "prompt", "response", "repetitions", "ease_factor",
		"interval", "due_at", "retired", "created_at",
	},
	"additionalProperties": false,
}
