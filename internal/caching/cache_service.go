package caching

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/kenancosic/eRents-sub000/internal/models"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// CacheService caches read-only dashboard views. Availability decisions are
// never cached: a stale answer there could double-book a property.
type CacheService interface {
	GetExpirationSummary(ctx context.Context) (*models.ExpirationSummary, error)
	SetExpirationSummary(ctx context.Context, summary *models.ExpirationSummary, ttl time.Duration) error
	DeleteExpirationSummary(ctx context.Context) error

	GetLeaseStatistics(ctx context.Context, ownerID uuid.UUID) (*models.LeaseStatistics, error)
	SetLeaseStatistics(ctx context.Context, ownerID uuid.UUID, stats *models.LeaseStatistics, ttl time.Duration) error
	DeleteLeaseStatistics(ctx context.Context, ownerID uuid.UUID) error

	Ping(ctx context.Context) error
}

type redisCacheService struct {
	client *redis.Client
}

func NewRedisCacheService(addr, password string, db int) CacheService {
	// Accept redis://host:port as well as a bare host:port.
	parsedAddr := addr
	if strings.HasPrefix(addr, "redis://") || strings.HasPrefix(addr, "rediss://") {
		parsedAddr = strings.TrimPrefix(strings.TrimPrefix(addr, "redis://"), "rediss://")
	}

	client := redis.NewClient(&redis.Options{
		Addr:     parsedAddr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		log.Printf("WARN: Redis ping failed on initialization: %v (address: %s)", err, parsedAddr)
	}

	return &redisCacheService{client: client}
}

// NewRedisCacheServiceWithClient wraps an existing client, mainly for
// sharing one connection between the cache and the notification publisher.
func NewRedisCacheServiceWithClient(client *redis.Client) CacheService {
	return &redisCacheService{client: client}
}

const expirationSummaryKey = "erents:contracts:expiration_summary"

func leaseStatisticsKey(ownerID uuid.UUID) string {
	return fmt.Sprintf("erents:leases:statistics:%s", ownerID)
}

func (r *redisCacheService) GetExpirationSummary(ctx context.Context) (*models.ExpirationSummary, error) {
	data, err := r.client.Get(ctx, expirationSummaryKey).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // cache miss
		}
		return nil, err
	}
	var summary models.ExpirationSummary
	if err := json.Unmarshal(data, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

func (r *redisCacheService) SetExpirationSummary(ctx context.Context, summary *models.ExpirationSummary, ttl time.Duration) error {
	data, err := json.Marshal(summary)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, expirationSummaryKey, data, ttl).Err()
}

func (r *redisCacheService) DeleteExpirationSummary(ctx context.Context) error {
	return r.client.Del(ctx, expirationSummaryKey).Err()
}

func (r *redisCacheService) GetLeaseStatistics(ctx context.Context, ownerID uuid.UUID) (*models.LeaseStatistics, error) {
	data, err := r.client.Get(ctx, leaseStatisticsKey(ownerID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // cache miss
		}
		return nil, err
	}
	var stats models.LeaseStatistics
	if err := json.Unmarshal(data, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (r *redisCacheService) SetLeaseStatistics(ctx context.Context, ownerID uuid.UUID, stats *models.LeaseStatistics, ttl time.Duration) error {
	data, err := json.Marshal(stats)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, leaseStatisticsKey(ownerID), data, ttl).Err()
}

func (r *redisCacheService) DeleteLeaseStatistics(ctx context.Context, ownerID uuid.UUID) error {
	return r.client.Del(ctx, leaseStatisticsKey(ownerID)).Err()
}

func (r *redisCacheService) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
