package service

import (
	"context"
	"fmt"
)

// AIService abstracts the external inference provider behind the two calls
// the pipelines need: embedding a text and generating a grounded answer.
// Embed must be safe for concurrent use; ingestion fans out over it.
type AIService interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	Generate(ctx context.Context, contextText, question string) (string, error)
}

// BuildPrompt assembles the grounded Q&A prompt: context block, then the
// question, then the answer cue. Providers share it so answers stay
// comparable across backends.
func BuildPrompt(contextText, question string) string {
	return fmt.Sprintf("Context: %s\n\nQuestion: %s\nAnswer:", contextText, question)
}
