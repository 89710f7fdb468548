package bank

import (
	"encoding/json"
	"fmt"
	"os"
)

// Parse validates raw JSON against the bank schema and decodes it into a Bank.
func Parse(raw []byte) (*Bank, error) {
	if err := validateJSON(raw); err != nil {
		return nil, err
	}
	var questions []Question
	if err := json.Unmarshal(raw, &questions); err != nil {
		return nil, fmt.Errorf("decode questions: %w", err)
	}
	return New(questions)
}

// LoadFile reads and parses the question bank at path.
func LoadFile(path string) (*Bank, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read question bank: %w", err)
	}
	b, err := Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("question bank %s: %w", path, err)
	}
	return b, nil
}
