package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"book_repository/internal/common"
	"book_repository/internal/domain/model"

	"github.com/redis/go-redis/v9"
)

// Connect opens and verifies a Redis connection.
func Connect(addr, password string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		return nil, fmt.Errorf("could not connect to Redis: %w", err)
	}
	return rdb, nil
}

// CriteriaStore keeps each user's submitted search criteria between the
// search-form submission and the paginated results requests. Entries expire
// with the session TTL; they are never persisted to the database.
type CriteriaStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewCriteriaStore(rdb *redis.Client, ttl time.Duration) *CriteriaStore {
	return &CriteriaStore{rdb: rdb, ttl: ttl}
}

func criteriaKey(username string) string {
	return "search:criteria:" + username
}

func (s *CriteriaStore) Save(ctx context.Context, username string, criteria model.SearchCriteria) error {
	payload, err := json.Marshal(criteria)
	if err != nil {
		return fmt.Errorf("CriteriaStore.Save: marshal: %w", err)
	}
	if err := s.rdb.Set(ctx, criteriaKey(username), payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("CriteriaStore.Save: %w", err)
	}
	return nil
}

func (s *CriteriaStore) Get(ctx context.Context, username string) (model.SearchCriteria, error) {
	var criteria model.SearchCriteria
	payload, err := s.rdb.Get(ctx, criteriaKey(username)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return criteria, common.ErrNotFound
		}
		return criteria, fmt.Errorf("CriteriaStore.Get: %w", err)
	}
	if err := json.Unmarshal(payload, &criteria); err != nil {
		return criteria, fmt.Errorf("CriteriaStore.Get: unmarshal: %w", err)
	}
	return criteria, nil
}
