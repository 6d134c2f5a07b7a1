package sqlstore

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/forecourt/go-dealers/core"
	repositorycache "github.com/goliatone/go-repository-cache/cache"
)

const credentialCacheKeyPrefix = "go-dealers::dealer_credential::v1"

// CachedCredentialStore fronts a CredentialStore with a read-through cache.
// Every write path invalidates the dealer's entry so readers never observe a
// stale shape pair.
type CachedCredentialStore struct {
	base  core.CredentialStore
	cache repositorycache.CacheService
}

func NewCachedCredentialStore(
	base core.CredentialStore,
	cacheService repositorycache.CacheService,
) (*CachedCredentialStore, error) {
	if base == nil {
		return nil, fmt.Errorf("sqlstore: base credential store is required")
	}
	if cacheService == nil {
		return nil, fmt.Errorf("sqlstore: credential cache service is required")
	}
	return &CachedCredentialStore{base: base, cache: cacheService}, nil
}

// CredentialCacheKey returns the deterministic cache key contract for dealer
// credential reads: go-dealers::dealer_credential::v1::<dealer_id> with the
// dealer id URL-path escaped after trimming.
func CredentialCacheKey(dealerID string) (string, error) {
	dealerID = strings.TrimSpace(dealerID)
	if dealerID == "" {
		return "", fmt.Errorf("sqlstore: dealer id is required")
	}
	return credentialCacheKeyPrefix + "::" + url.PathEscape(dealerID), nil
}

type cachedCredentialEntry struct {
	Record core.DealerCredential
	Found  bool
}

func (s *CachedCredentialStore) Get(ctx context.Context, dealerID string) (core.DealerCredential, bool, error) {
	if s == nil || s.base == nil || s.cache == nil {
		return core.DealerCredential{}, false, fmt.Errorf("sqlstore: cached credential store is not configured")
	}
	cacheKey, err := CredentialCacheKey(dealerID)
	if err != nil {
		return core.DealerCredential{}, false, err
	}

	entry, err := repositorycache.GetOrFetch(ctx, s.cache, cacheKey, func(ctx context.Context) (cachedCredentialEntry, error) {
		record, found, fetchErr := s.base.Get(ctx, dealerID)
		if fetchErr != nil {
			return cachedCredentialEntry{}, fetchErr
		}
		return cachedCredentialEntry{Record: record, Found: found}, nil
	})
	if err != nil {
		return core.DealerCredential{}, false, err
	}
	return entry.Record, entry.Found, nil
}

// GetBulk bypasses the cache: the bulk path exists for roster screens where
// one round trip beats N cache probes.
func (s *CachedCredentialStore) GetBulk(ctx context.Context, dealerIDs []string) (map[string]core.DealerCredential, error) {
	if s == nil || s.base == nil {
		return nil, fmt.Errorf("sqlstore: cached credential store is not configured")
	}
	return s.base.GetBulk(ctx, dealerIDs)
}

func (s *CachedCredentialStore) GetBySubmission(ctx context.Context, submissionID string) (core.DealerCredential, bool, error) {
	if s == nil || s.base == nil {
		return core.DealerCredential{}, false, fmt.Errorf("sqlstore: cached credential store is not configured")
	}
	return s.base.GetBySubmission(ctx, submissionID)
}

func (s *CachedCredentialStore) Write(ctx context.Context, in core.WriteCredentialInput) (bool, error) {
	if s == nil || s.base == nil || s.cache == nil {
		return false, fmt.Errorf("sqlstore: cached credential store is not configured")
	}
	created, err := s.base.Write(ctx, in)
	if err != nil {
		return false, err
	}
	if err := s.invalidate(ctx, in.DealerID); err != nil {
		return false, err
	}
	return created, nil
}

func (s *CachedCredentialStore) Clear(ctx context.Context, dealerID string) error {
	if s == nil || s.base == nil || s.cache == nil {
		return fmt.Errorf("sqlstore: cached credential store is not configured")
	}
	if err := s.base.Clear(ctx, dealerID); err != nil {
		return err
	}
	return s.invalidate(ctx, dealerID)
}

func (s *CachedCredentialStore) UpdateInvitationStatus(ctx context.Context, dealerID string, status core.InvitationStatus) error {
	if s == nil || s.base == nil || s.cache == nil {
		return fmt.Errorf("sqlstore: cached credential store is not configured")
	}
	if err := s.base.UpdateInvitationStatus(ctx, dealerID, status); err != nil {
		return err
	}
	return s.invalidate(ctx, dealerID)
}

func (s *CachedCredentialStore) invalidate(ctx context.Context, dealerID string) error {
	cacheKey, err := CredentialCacheKey(dealerID)
	if err != nil {
		return err
	}
	return s.cache.Delete(ctx, cacheKey)
}

var _ core.CredentialStore = (*CachedCredentialStore)(nil)
