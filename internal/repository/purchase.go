package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"gamestore/internal/model"

	"github.com/redis/go-redis/v9"
)

var (
	ErrStorageUnavailable = errors.New("purchase store unavailable")
	ErrPurchaseNotFound   = errors.New("purchase not found")
)

// PurchaseStore is the durable mapping from customer email to the purchase
// grants they own. Keys are lowercased emails; one email maps to many
// records.
//
// Store and IncrementDownloadCount are read-modify-write on the whole record
// list; concurrent writers for the same email can lose updates. That race is
// accepted for this domain (a duplicated grant is a refundable nuisance, not
// a correctness failure).
type PurchaseStore interface {
	Store(ctx context.Context, email string, record *model.PurchaseRecord) error
	List(ctx context.Context, email string) ([]*model.PurchaseRecord, error)
	HasPurchased(ctx context.Context, email, gameID string) (bool, error)
	IncrementDownloadCount(ctx context.Context, sessionID string) error
	IsAvailable(ctx context.Context) bool
}

// ---- Redis ----

type redisStoreImpl struct {
	rdb       *redis.Client
	recordTTL time.Duration
}

func NewRedisPurchaseStore(rdb *redis.Client, recordTTL time.Duration) PurchaseStore {
	return &redisStoreImpl{
		rdb:       rdb,
		recordTTL: recordTTL,
	}
}

func purchaseKey(email string) string {
	return "purchases:" + strings.ToLower(email)
}

func (s *redisStoreImpl) IsAvailable(ctx context.Context) bool {
	return s.rdb.Set(ctx, "health-check", "ok", time.Second).Err() == nil
}

func (s *redisStoreImpl) Store(ctx context.Context, email string, record *model.PurchaseRecord) error {
	records, err := s.List(ctx, email)
	if err != nil {
		return err
	}

	records = append(records, record)
	payload, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("marshal purchase records: %w", err)
	}

	// TTL restarts on every write, so the newest purchase keeps the whole
	// record set alive.
	if err := s.rdb.Set(ctx, purchaseKey(email), payload, s.recordTTL).Err(); err != nil {
		return fmt.Errorf("%w: %s", ErrStorageUnavailable, err)
	}
	return nil
}

func (s *redisStoreImpl) List(ctx context.Context, email string) ([]*model.PurchaseRecord, error) {
	payload, err := s.rdb.Get(ctx, purchaseKey(email)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrStorageUnavailable, err)
	}

	var records []*model.PurchaseRecord
	if err := json.Unmarshal(payload, &records); err != nil {
		return nil, fmt.Errorf("unmarshal purchase records: %w", err)
	}
	return records, nil
}

func (s *redisStoreImpl) HasPurchased(ctx context.Context, email, gameID string) (bool, error) {
	return hasPurchased(ctx, s, email, gameID)
}

func (s *redisStoreImpl) IncrementDownloadCount(ctx context.Context, sessionID string) error {
	// SCAN rather than KEYS so the walk never blocks the server.
	iter := s.rdb.Scan(ctx, 0, "purchases:*", 0).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()
		payload, err := s.rdb.Get(ctx, key).Bytes()
		if errors.Is(err, redis.Nil) {
			continue
		}
		if err != nil {
			return fmt.Errorf("%w: %s", ErrStorageUnavailable, err)
		}

		var records []*model.PurchaseRecord
		if err := json.Unmarshal(payload, &records); err != nil {
			return fmt.Errorf("unmarshal purchase records: %w", err)
		}

		for _, rec := range records {
			if rec.SessionID != sessionID {
				continue
			}
			rec.DownloadCount++

			updated, err := json.Marshal(records)
			if err != nil {
				return fmt.Errorf("marshal purchase records: %w", err)
			}
			ttl, err := s.rdb.TTL(ctx, key).Result()
			if err != nil || ttl < 0 {
				ttl = s.recordTTL
			}
			if err := s.rdb.Set(ctx, key, updated, ttl).Err(); err != nil {
				return fmt.Errorf("%w: %s", ErrStorageUnavailable, err)
			}
			return nil
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("%w: %s", ErrStorageUnavailable, err)
	}

	return ErrPurchaseNotFound
}

// ---- In-memory (development fallback) ----

type memoryStoreImpl struct {
	mu        sync.RWMutex
	purchases map[string][]*model.PurchaseRecord
}

func NewMemoryPurchaseStore() PurchaseStore {
	return &memoryStoreImpl{
		purchases: make(map[string][]*model.PurchaseRecord),
	}
}

func (s *memoryStoreImpl) IsAvailable(ctx context.Context) bool {
	return true
}

func (s *memoryStoreImpl) Store(ctx context.Context, email string, record *model.PurchaseRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := strings.ToLower(email)
	s.purchases[key] = append(s.purchases[key], record)
	return nil
}

func (s *memoryStoreImpl) List(ctx context.Context, email string) ([]*model.PurchaseRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	records := s.purchases[strings.ToLower(email)]
	out := make([]*model.PurchaseRecord, len(records))
	copy(out, records)
	return out, nil
}

func (s *memoryStoreImpl) HasPurchased(ctx context.Context, email, gameID string) (bool, error) {
	return hasPurchased(ctx, s, email, gameID)
}

func (s *memoryStoreImpl) IncrementDownloadCount(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, records := range s.purchases {
		for _, rec := range records {
			if rec.SessionID == sessionID {
				rec.DownloadCount++
				return nil
			}
		}
	}
	return ErrPurchaseNotFound
}

func hasPurchased(ctx context.Context, store PurchaseStore, email, gameID string) (bool, error) {
	records, err := store.List(ctx, email)
	if err != nil {
		return false, err
	}
	for _, rec := range records {
		if rec.GameID == gameID {
			return true, nil
		}
	}
	return false, nil
}

// SelectPurchaseStore picks the store implementation once at startup: Redis
// when reachable, otherwise the in-memory store outside production.
// Production without a reachable Redis fails closed.
func SelectPurchaseStore(ctx context.Context, rdb *redis.Client, recordTTL time.Duration, production bool) (PurchaseStore, error) {
	if rdb != nil {
		store := NewRedisPurchaseStore(rdb, recordTTL)
		if store.IsAvailable(ctx) {
			return store, nil
		}
	}

	if production {
		return nil, fmt.Errorf("%w: redis is required in production", ErrStorageUnavailable)
	}
	return NewMemoryPurchaseStore(), nil
}
