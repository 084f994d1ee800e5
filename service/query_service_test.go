package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/Danilepez/chat-pdf-ai/database"
	"github.com/Danilepez/chat-pdf-ai/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedFragments(t *testing.T, store database.FragmentStore, documentID string, embeddings ...[]float32) {
	t.Helper()
	for i, embedding := range embeddings {
		err := store.PutFragment(context.Background(), &types.Fragment{
			DocumentID:    documentID,
			FragmentIndex: i,
			Text:          fmt.Sprintf("fragment %d", i),
			Embedding:     embedding,
		})
		require.NoError(t, err)
	}
}

func TestQuery_ReturnsAnswerForBestFragment(t *testing.T) {
	store := database.NewMemoryFragmentStore()
	seedFragments(t, store, "doc.pdf",
		[]float32{0, 1},
		[]float32{1, 0},
	)
	ai := &fakeAIService{
		embedFn: func(text string) ([]float32, error) {
			return []float32{1, 0}, nil
		},
		generateFn: func(contextText, question string) (string, error) {
			return "grounded on " + contextText, nil
		},
	}
	svc := NewQueryService(store, ai)

	result, err := svc.Query(context.Background(), "doc.pdf", "what is this?")
	require.NoError(t, err)
	assert.Equal(t, "grounded on fragment 1", result.Answer)
	assert.Equal(t, 1, result.MatchedFragmentIndex)
	assert.InDelta(t, 1.0, float64(result.Similarity), 1e-6)
}

func TestQuery_TieBreaksToLowestFragmentIndex(t *testing.T) {
	store := database.NewMemoryFragmentStore()
	seedFragments(t, store, "doc.pdf",
		[]float32{1, 0},
		[]float32{1, 0},
	)
	ai := &fakeAIService{
		embedFn: func(text string) ([]float32, error) {
			return []float32{1, 0}, nil
		},
	}
	svc := NewQueryService(store, ai)

	result, err := svc.Query(context.Background(), "doc.pdf", "anything")
	require.NoError(t, err)
	assert.Equal(t, 0, result.MatchedFragmentIndex)
}

func TestQuery_EmptyDocumentFailsWithoutProviderCalls(t *testing.T) {
	store := database.NewMemoryFragmentStore()
	ai := &fakeAIService{}
	svc := NewQueryService(store, ai)

	_, err := svc.Query(context.Background(), "unknown.pdf", "anything")
	assert.ErrorIs(t, err, types.ErrDocumentNotFoundOrEmpty)
	assert.Zero(t, ai.embedCallCount(), "no provider call may happen for an empty document")
	assert.Empty(t, ai.generateCalls)
}

func TestQuery_ValidatesInput(t *testing.T) {
	svc := NewQueryService(database.NewMemoryFragmentStore(), &fakeAIService{})

	_, err := svc.Query(context.Background(), "", "question")
	assert.ErrorIs(t, err, types.ErrValidation)

	_, err = svc.Query(context.Background(), "doc.pdf", "")
	assert.ErrorIs(t, err, types.ErrValidation)
}

func TestQuery_ProviderErrorPropagates(t *testing.T) {
	store := database.NewMemoryFragmentStore()
	seedFragments(t, store, "doc.pdf", []float32{1, 0})
	ai := &fakeAIService{
		embedFn: func(text string) ([]float32, error) {
			return nil, fmt.Errorf("%w: embeddings down", types.ErrProvider)
		},
	}
	svc := NewQueryService(store, ai)

	_, err := svc.Query(context.Background(), "doc.pdf", "anything")
	assert.ErrorIs(t, err, types.ErrProvider)
}

func TestQuery_GenerateErrorReturnsNoPartialAnswer(t *testing.T) {
	store := database.NewMemoryFragmentStore()
	seedFragments(t, store, "doc.pdf", []float32{1, 0})
	ai := &fakeAIService{
		embedFn: func(text string) ([]float32, error) {
			return []float32{1, 0}, nil
		},
		generateFn: func(contextText, question string) (string, error) {
			return "", fmt.Errorf("%w: no output text returned", types.ErrMalformedResponse)
		},
	}
	svc := NewQueryService(store, ai)

	result, err := svc.Query(context.Background(), "doc.pdf", "anything")
	assert.ErrorIs(t, err, types.ErrMalformedResponse)
	assert.Nil(t, result)
}
