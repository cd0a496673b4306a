package stores

import (
	"context"
	"errors"
	"time"

	"github.com/MrEthical07/phoneAuth/internal/kv"
)

const challengeKeyPrefix = "poc:"

// ErrChallengeNotFound is returned when no active challenge exists for
// the phone, either because none was issued or because it expired.
var ErrChallengeNotFound = errors.New("challenge not found")

// ChallengeStore persists the single active OTP challenge per phone.
type ChallengeStore struct {
	store kv.Store
	ttl   time.Duration
}

// NewChallengeStore creates a challenge store with the given challenge
// lifetime.
func NewChallengeStore(store kv.Store, ttl time.Duration) *ChallengeStore {
	return &ChallengeStore{store: store, ttl: ttl}
}

func (s *ChallengeStore) key(phone string) string {
	return challengeKeyPrefix + phone
}

// Issue writes a challenge for the phone, unconditionally replacing any
// prior one and restarting the TTL. There is no extend operation.
func (s *ChallengeStore) Issue(ctx context.Context, phone, code string) error {
	return s.store.SetWithTTL(ctx, s.key(phone), code, s.ttl)
}

// Fetch returns the active challenge code for the phone, or
// ErrChallengeNotFound.
func (s *ChallengeStore) Fetch(ctx context.Context, phone string) (string, error) {
	code, err := s.store.Get(ctx, s.key(phone))
	if err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			return "", ErrChallengeNotFound
		}
		return "", err
	}
	return code, nil
}

// Invalidate deletes the challenge for the phone. Idempotent.
func (s *ChallengeStore) Invalidate(ctx context.Context, phone string) error {
	return s.store.Delete(ctx, s.key(phone))
}
