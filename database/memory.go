package database

import (
	"context"
	"sort"
	"sync"

	"github.com/Danilepez/chat-pdf-ai/types"
)

type fragmentKey struct {
	documentID    string
	fragmentIndex int
}

// MemoryFragmentStore is an in-memory FragmentStore for tests and local runs
// without a MongoDB instance.
type MemoryFragmentStore struct {
	mu        sync.RWMutex
	fragments map[fragmentKey]types.Fragment
}

func NewMemoryFragmentStore() *MemoryFragmentStore {
	return &MemoryFragmentStore{
		fragments: make(map[fragmentKey]types.Fragment),
	}
}

func (s *MemoryFragmentStore) PutFragment(ctx context.Context, fragment *types.Fragment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fragments[fragmentKey{fragment.DocumentID, fragment.FragmentIndex}] = *fragment
	return nil
}

func (s *MemoryFragmentStore) GetFragments(ctx context.Context, documentID string) ([]types.Fragment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := []types.Fragment{}
	for key, fragment := range s.fragments {
		if key.documentID == documentID {
			result = append(result, fragment)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].FragmentIndex < result[j].FragmentIndex
	})
	return result, nil
}
