package auth

import (
	"context"
	"sync"
)

// GenerationStore tracks the current token generation per user. Issued tokens
// embed the generation they were minted with; bumping the generation
// invalidates every outstanding token for that user, which is how sign-out and
// permission re-issuance work.
type GenerationStore interface {
	Current(ctx context.Context, username string) (int64, error)
	Bump(ctx context.Context, username string) (int64, error)
}

type MemoryGenerationStore struct {
	mu          sync.RWMutex
	generations map[string]int64
}

func NewMemoryGenerationStore() *MemoryGenerationStore {
	return &MemoryGenerationStore{
		generations: make(map[string]int64),
	}
}

func (s *MemoryGenerationStore) Current(_ context.Context, username string) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.generations[username], nil
}

func (s *MemoryGenerationStore) Bump(_ context.Context, username string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generations[username]++
	return s.generations[username], nil
}
