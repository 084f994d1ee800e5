package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Danilepez/chat-pdf-ai/database"
	"github.com/Danilepez/chat-pdf-ai/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAIService is a deterministic AIService double shared by the pipeline
// tests. Embed and Generate can be overridden per test.
type fakeAIService struct {
	mu            sync.Mutex
	embedCalls    []string
	generateCalls []string
	embedFn       func(text string) ([]float32, error)
	generateFn    func(contextText, question string) (string, error)
}

func (f *fakeAIService) Embed(ctx context.Context, text string) ([]float32, error) {
	f.mu.Lock()
	f.embedCalls = append(f.embedCalls, text)
	f.mu.Unlock()
	if f.embedFn != nil {
		return f.embedFn(text)
	}
	// Deterministic 2D embedding derived from the text length.
	return []float32{float32(len(text)), 1}, nil
}

func (f *fakeAIService) Generate(ctx context.Context, contextText, question string) (string, error) {
	f.mu.Lock()
	f.generateCalls = append(f.generateCalls, question)
	f.mu.Unlock()
	if f.generateFn != nil {
		return f.generateFn(contextText, question)
	}
	return "answer about " + contextText, nil
}

func (f *fakeAIService) embedCallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.embedCalls)
}

func newTestIngestService(store database.FragmentStore, ai AIService, chunkSize, workers int) *IngestService {
	return NewIngestService(store, ai, types.DocumentServiceConfig{
		ChunkSize:     chunkSize,
		IngestWorkers: workers,
	})
}

func TestIngestText_StoresOrderedFragmentsCoveringText(t *testing.T) {
	store := database.NewMemoryFragmentStore()
	ai := &fakeAIService{}
	svc := newTestIngestService(store, ai, 2, 1)

	count, err := svc.IngestText(context.Background(), "doc.pdf", "ABCDE", nil)
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	fragments, err := store.GetFragments(context.Background(), "doc.pdf")
	require.NoError(t, err)
	require.Len(t, fragments, 3)

	var rebuilt strings.Builder
	for i, fragment := range fragments {
		assert.Equal(t, i, fragment.FragmentIndex)
		assert.NotEmpty(t, fragment.Embedding)
		assert.NotZero(t, fragment.CreatedAt)
		rebuilt.WriteString(fragment.Text)
	}
	assert.Equal(t, "ABCDE", rebuilt.String())
}

func TestIngestText_EmptyTextStoresNothing(t *testing.T) {
	store := database.NewMemoryFragmentStore()
	ai := &fakeAIService{}
	svc := newTestIngestService(store, ai, 1000, 1)

	count, err := svc.IngestText(context.Background(), "doc.pdf", "", nil)
	require.NoError(t, err)
	assert.Zero(t, count)
	assert.Zero(t, ai.embedCallCount())
}

func TestIngestText_MissingDocumentKey(t *testing.T) {
	svc := newTestIngestService(database.NewMemoryFragmentStore(), &fakeAIService{}, 1000, 1)

	_, err := svc.IngestText(context.Background(), "", "text", nil)
	assert.ErrorIs(t, err, types.ErrValidation)
}

func TestIngestText_ReingestionIsIdempotent(t *testing.T) {
	store := database.NewMemoryFragmentStore()
	ai := &fakeAIService{}
	svc := newTestIngestService(store, ai, 3, 2)

	text := "the quick brown fox"
	_, err := svc.IngestText(context.Background(), "doc.pdf", text, nil)
	require.NoError(t, err)
	first, err := store.GetFragments(context.Background(), "doc.pdf")
	require.NoError(t, err)

	_, err = svc.IngestText(context.Background(), "doc.pdf", text, nil)
	require.NoError(t, err)
	second, err := store.GetFragments(context.Background(), "doc.pdf")
	require.NoError(t, err)

	require.Len(t, second, len(first))
	for i := range first {
		assert.Equal(t, first[i].FragmentIndex, second[i].FragmentIndex)
		assert.Equal(t, first[i].Text, second[i].Text)
	}
}

func TestIngestText_EmbedFailureAbortsButKeepsStoredPrefix(t *testing.T) {
	store := database.NewMemoryFragmentStore()
	providerDown := errors.New("boom")
	calls := 0
	ai := &fakeAIService{
		embedFn: func(text string) ([]float32, error) {
			calls++
			if calls > 2 {
				return nil, fmt.Errorf("%w: %v", types.ErrProvider, providerDown)
			}
			return []float32{1, 0}, nil
		},
	}
	// Sequential so exactly the first two chunks make it to the store.
	svc := newTestIngestService(store, ai, 1, 1)

	count, err := svc.IngestText(context.Background(), "doc.pdf", "ABCDE", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrProvider)
	assert.Equal(t, 2, count)

	fragments, storeErr := store.GetFragments(context.Background(), "doc.pdf")
	require.NoError(t, storeErr)
	require.Len(t, fragments, 2)
	assert.Equal(t, "A", fragments[0].Text)
	assert.Equal(t, "B", fragments[1].Text)
}

func TestIngestText_ReportsProgress(t *testing.T) {
	store := database.NewMemoryFragmentStore()
	ai := &fakeAIService{}
	svc := newTestIngestService(store, ai, 2, 1)

	statusChan := make(chan types.ProcessingDocumentStatus)
	type result struct {
		count int
		err   error
	}
	resultChan := make(chan result, 1)
	go func() {
		count, err := svc.IngestText(context.Background(), "doc.pdf", "ABCDE", statusChan)
		resultChan <- result{count, err}
	}()

	var events []types.ProcessingDocumentStatus
	for {
		select {
		case status := <-statusChan:
			events = append(events, status)
		case res := <-resultChan:
			require.NoError(t, res.err)
			assert.Equal(t, 3, res.count)
			require.Len(t, events, 3)
			last := events[len(events)-1]
			assert.Equal(t, 3, last.TotalFragments)
			assert.Equal(t, 3, last.ProcessedFragments)
			assert.InDelta(t, 1.0, last.Progress, 1e-9)
			return
		}
	}
}

func TestIngestText_ReturnsWhenStatusReaderStopsDraining(t *testing.T) {
	store := database.NewMemoryFragmentStore()
	ctx, cancel := context.WithCancel(context.Background())
	ai := &fakeAIService{
		embedFn: func(text string) ([]float32, error) {
			// The reader is gone before the first progress send.
			cancel()
			return []float32{1, 1}, nil
		},
	}
	svc := newTestIngestService(store, ai, 2, 1)

	status := make(chan types.ProcessingDocumentStatus) // never drained
	done := make(chan struct{})
	var err error
	go func() {
		_, err = svc.IngestText(ctx, "doc.pdf", "ABCDE", status)
		close(done)
	}()

	select {
	case <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("IngestText did not return after cancellation with an undrained status channel")
	}
}

func TestIngestText_ParallelWorkersStoreAllFragments(t *testing.T) {
	store := database.NewMemoryFragmentStore()
	ai := &fakeAIService{}
	svc := newTestIngestService(store, ai, 1, 4)

	text := strings.Repeat("z", 20)
	count, err := svc.IngestText(context.Background(), "doc.pdf", text, nil)
	require.NoError(t, err)
	assert.Equal(t, 20, count)

	fragments, err := store.GetFragments(context.Background(), "doc.pdf")
	require.NoError(t, err)
	require.Len(t, fragments, 20)
	for i, fragment := range fragments {
		assert.Equal(t, i, fragment.FragmentIndex)
	}
}
