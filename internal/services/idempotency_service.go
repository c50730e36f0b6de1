package services

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/tbourn/go-survey-backend/internal/repo"
)

// IdempotencyService remembers which resource a create request produced so
// that a retry carrying the same Idempotency-Key can be answered with it.
type IdempotencyService struct {
	DB  *gorm.DB
	TTL time.Duration
	now func() time.Time
}

// NewIdempotencyService wires an IdempotencyService. A non-positive ttl
// falls back to 24h.
func NewIdempotencyService(db *gorm.DB, ttl time.Duration) *IdempotencyService {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &IdempotencyService{DB: db, TTL: ttl, now: time.Now}
}

// Lookup returns the resource id recorded for (userID, scope, key), if a
// live record exists.
func (s *IdempotencyService) Lookup(ctx context.Context, userID, scope, key string) (int64, bool, error) {
	rec, err := repo.GetIdempotency(ctx, s.DB, userID, scope, key, s.now().UTC())
	if errors.Is(err, repo.ErrNotFound) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, storageErr(err)
	}
	return rec.ResourceID, true, nil
}

// Exists adapts Lookup to the middleware's lookup signature.
func (s *IdempotencyService) Exists(ctx context.Context, userID, scope, key string, now time.Time) (bool, error) {
	rec, err := repo.GetIdempotency(ctx, s.DB, userID, scope, key, now.UTC())
	if errors.Is(err, repo.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, storageErr(err)
	}
	return rec != nil, nil
}

// Remember records the outcome of a create. A concurrent request that
// already stored the same key wins; that is not an error.
func (s *IdempotencyService) Remember(ctx context.Context, userID, scope, key string, resourceID int64, status int) error {
	if key == "" {
		return nil
	}
	_, err := repo.CreateIdempotency(ctx, s.DB, userID, scope, key, resourceID, status, s.TTL)
	if errors.Is(err, repo.ErrDuplicate) {
		zerolog.Ctx(ctx).Debug().Str("scope", scope).Msg("idempotency key already recorded")
		return nil
	}
	return storageErr(err)
}

// Purge drops expired records and returns how many were removed.
func (s *IdempotencyService) Purge(ctx context.Context) (int64, error) {
	n, err := repo.PurgeExpiredIdempotency(ctx, s.DB, s.now().UTC())
	return n, storageErr(err)
}
