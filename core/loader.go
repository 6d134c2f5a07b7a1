package core

import (
	"context"
	"strings"
	"sync"
)

// loadMany is the shared bulk read strategy: one bulk fetch, and when that
// fetch itself fails, a single concurrent per-item pass. Missing records are
// absent keys in the result, never errors, on both paths. The fallback does
// not retry individual fetches; a per-item failure simply leaves that id
// absent.
func loadMany[T any](
	ctx context.Context,
	ids []string,
	bulk func(ctx context.Context, ids []string) (map[string]T, error),
	single func(ctx context.Context, id string) (T, bool, error),
) (map[string]T, error) {
	cleaned := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, raw := range ids {
		id := strings.TrimSpace(raw)
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		cleaned = append(cleaned, id)
	}
	if len(cleaned) == 0 {
		return map[string]T{}, nil
	}

	records, err := bulk(ctx, cleaned)
	if err == nil {
		if records == nil {
			records = map[string]T{}
		}
		return records, nil
	}

	// Bulk transport failure: one concurrent per-item pass, joined in full
	// before returning.
	out := make(map[string]T, len(cleaned))
	var mu sync.Mutex
	var wg sync.WaitGroup
	for _, id := range cleaned {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			record, found, fetchErr := single(ctx, id)
			if fetchErr != nil || !found {
				return
			}
			mu.Lock()
			out[id] = record
			mu.Unlock()
		}(id)
	}
	wg.Wait()
	return out, nil
}
