package service

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/Danilepez/chat-pdf-ai/database"
	"github.com/Danilepez/chat-pdf-ai/types"
	"golang.org/x/sync/errgroup"
)

// IngestService runs the ingestion pipeline: chunk the extracted text, embed
// each chunk and persist one fragment per chunk. Embedding calls fan out over
// a bounded worker pool; fragment keys carry the chunk index, so persistence
// order does not matter. One worker reproduces strictly sequential ingestion.
type IngestService struct {
	store     database.FragmentStore
	ai        AIService
	chunkSize int
	workers   int
}

func NewIngestService(store database.FragmentStore, ai AIService, config types.DocumentServiceConfig) *IngestService {
	chunkSize := config.ChunkSize
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	workers := config.IngestWorkers
	if workers <= 0 {
		workers = 1
	}
	return &IngestService{
		store:     store,
		ai:        ai,
		chunkSize: chunkSize,
		workers:   workers,
	}
}

// IngestText ingests a document's extracted text under the given key.
// Returns the number of fragments persisted. A failed embedding or store
// call abandons the remaining chunks and fails the document; fragments
// already persisted are kept, and re-running is safe because puts are
// idempotent per fragment index.
//
// When status is non-nil, progress events are sent to it; the caller owns
// the channel and must keep draining it until IngestText returns.
func (s *IngestService) IngestText(ctx context.Context, documentID, text string, status chan<- types.ProcessingDocumentStatus) (int, error) {
	if documentID == "" {
		return 0, fmt.Errorf("%w: missing document key", types.ErrValidation)
	}

	chunks := ChunkText(text, s.chunkSize)
	if len(chunks) == 0 {
		return 0, nil
	}

	var processed atomic.Int64
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i, chunk := range chunks {
		g.Go(func() error {
			// A failed chunk cancels the group; skip the rest instead of
			// issuing more provider calls for a document that already failed.
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			embedding, err := s.ai.Embed(ctx, chunk)
			if err != nil {
				return fmt.Errorf("embed fragment %d: %w", i, err)
			}
			fragment := &types.Fragment{
				DocumentID:    documentID,
				FragmentIndex: i,
				Text:          chunk,
				Embedding:     embedding,
				CreatedAt:     time.Now().Unix(),
			}
			if err := s.store.PutFragment(ctx, fragment); err != nil {
				return fmt.Errorf("store fragment %d: %w", i, err)
			}
			done := processed.Add(1)
			if status != nil {
				// The caller may stop draining when its client goes away;
				// give up on the send once the context is cancelled so the
				// worker does not block forever.
				select {
				case status <- types.ProcessingDocumentStatus{
					Status:             "processing",
					Message:            fmt.Sprintf("Stored fragment %d", i),
					Progress:           float64(done) / float64(len(chunks)),
					TotalFragments:     len(chunks),
					ProcessedFragments: int(done),
				}:
				case <-ctx.Done():
					return ctx.Err()
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return int(processed.Load()), fmt.Errorf("ingest document %s: %w", documentID, err)
	}
	return int(processed.Load()), nil
}
