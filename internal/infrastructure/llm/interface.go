package llm

import (
	"context"
	"encoding/json"
)

//go:generate mockgen -source=interface.go -destination=../../mocks/llm_generator.go -package=mocks -mock_names=Generator=MockGenerator

// Generator turns a prompt into the raw "items" of a JSON answer.
type Generator interface {
	GenerateItems(ctx context.Context, prompt string) ([]json.RawMessage, error)
}

var _ Generator = (*Client)(nil)
