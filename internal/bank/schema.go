package bank

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// bankSchema is the JSON Schema every bank file must satisfy before decoding.
// Structural checks that a schema can't express (unique ids, correct_answer
// being an option key) run afterwards in Bank.New.
var bankSchema = map[string]any{
	"type": "array",
	"items": map[string]any{
		"type": "object",
		"properties": map[string]any{
			"id":            map[string]any{"type": "string", "minLength": 1},
			"bok_reference": map[string]any{"type": "string"},
			"difficulty": map[string]any{
				"type": "string",
				"enum": []any{"Easy", "Medium", "Hard"},
			},
			"question_text": map[string]any{"type": "string", "minLength": 1},
			"options": map[string]any{
				"type":                 "object",
				"minProperties":        2,
				"additionalProperties": map[string]any{"type": "string"},
			},
			"correct_answer": map[string]any{"type": "string", "minLength": 1},
			"solution": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"correct_rationale":   map[string]any{"type": "string"},
					"distractor_analysis": map[string]any{"type": "string"},
				},
				"required": []any{"correct_rationale"},
			},
		},
		"required": []any{
			"id", "difficulty", "question_text", "options", "correct_answer", "solution",
		},
		"additionalProperties": true,
	},
}

var (
	compileOnce    sync.Once
	compiledSchema *jsonschema.Schema
	compileErr     error
)

// compiled returns the compiled bank schema, compiling it on first use.
func compiled() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		// The jsonschema library expects a parsed JSON value (any), not raw bytes.
		defBytes, err := json.Marshal(bankSchema)
		if err != nil {
			compileErr = fmt.Errorf("marshal schema definition: %w", err)
			return
		}
		var defParsed any
		if err := json.Unmarshal(defBytes, &defParsed); err != nil {
			compileErr = fmt.Errorf("parse schema definition: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		const schemaURL = "schema://question-bank.json"
		if err := c.AddResource(schemaURL, defParsed); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiledSchema, compileErr = c.Compile(schemaURL)
	})
	return compiledSchema, compileErr
}

// validateJSON checks raw bank JSON against the schema.
func validateJSON(raw []byte) error {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	schema, err := compiled()
	if err != nil {
		return fmt.Errorf("compile bank schema: %w", err)
	}
	if err := schema.Validate(parsed); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}
