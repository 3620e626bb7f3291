package service

import (
	"context"

	"walkies/internal/domain/repository"
)

// RankingCache stores computed ranking rows keyed by query. Implementations
// treat cache failures as misses; callers never branch on availability.
type RankingCache interface {
	// Get returns the cached rows for a key, or (nil, false) on miss.
	Get(ctx context.Context, key string) ([]repository.RankRow, bool)

	// Set stores the rows for a key.
	Set(ctx context.Context, key string, rows []repository.RankRow)
}
