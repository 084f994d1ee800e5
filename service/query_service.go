package service

import (
	"context"
	"fmt"

	"github.com/Danilepez/chat-pdf-ai/database"
	"github.com/Danilepez/chat-pdf-ai/types"
	"github.com/Danilepez/chat-pdf-ai/vector"
)

// QueryService runs the query pipeline: embed the question, load the
// document's fragments, rank them by cosine similarity and synthesize an
// answer grounded on the best match. It holds no state between calls.
type QueryService struct {
	store database.FragmentStore
	ai    AIService
}

func NewQueryService(store database.FragmentStore, ai AIService) *QueryService {
	return &QueryService{
		store: store,
		ai:    ai,
	}
}

// Query answers a question about a single document. The fragment lookup runs
// before any provider call fails the request: a document with zero fragments
// returns ErrDocumentNotFoundOrEmpty, never a provider error.
func (s *QueryService) Query(ctx context.Context, documentKey, question string) (*types.QueryResult, error) {
	if documentKey == "" {
		return nil, fmt.Errorf("%w: missing documentKey", types.ErrValidation)
	}
	if question == "" {
		return nil, fmt.Errorf("%w: missing question", types.ErrValidation)
	}

	fragments, err := s.store.GetFragments(ctx, documentKey)
	if err != nil {
		return nil, fmt.Errorf("load fragments for %s: %w", documentKey, err)
	}
	if len(fragments) == 0 {
		return nil, fmt.Errorf("%w: %s", types.ErrDocumentNotFoundOrEmpty, documentKey)
	}

	questionEmbedding, err := s.ai.Embed(ctx, question)
	if err != nil {
		return nil, fmt.Errorf("embed question: %w", err)
	}

	bestMatch, score := vector.BestMatch(questionEmbedding, fragments)

	answer, err := s.ai.Generate(ctx, bestMatch.Text, question)
	if err != nil {
		return nil, fmt.Errorf("generate answer: %w", err)
	}

	return &types.QueryResult{
		Answer:               answer,
		MatchedFragmentIndex: bestMatch.FragmentIndex,
		Similarity:           score,
	}, nil
}
