package database

import (
	"context"

	"github.com/Danilepez/chat-pdf-ai/types"
)

// FragmentStore defines the persistence contract for document fragments.
// PutFragment is an idempotent upsert keyed by (DocumentID, FragmentIndex):
// a second put with the same key overwrites. GetFragments returns every
// fragment of a document ordered by FragmentIndex; an unknown document
// yields an empty slice, not an error.
type FragmentStore interface {
	PutFragment(ctx context.Context, fragment *types.Fragment) error
	GetFragments(ctx context.Context, documentID string) ([]types.Fragment, error)
}
