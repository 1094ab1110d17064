package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"laptopstore/internal/models"

	"github.com/redis/go-redis/v9"
)

const laptopKeyPrefix = "laptop:"

// CachedLaptopRepository wraps another LaptopRepository with a Redis read-through
// cache for single-laptop lookups. Cache errors are logged and never returned.
type CachedLaptopRepository struct {
	inner  LaptopRepository
	client *redis.Client
	ttl    time.Duration
}

// NewCachedLaptopRepository creates a cache decorator around inner.
func NewCachedLaptopRepository(inner LaptopRepository, client *redis.Client, ttl time.Duration) *CachedLaptopRepository {
	return &CachedLaptopRepository{
		inner:  inner,
		client: client,
		ttl:    ttl,
	}
}

func laptopKey(id int64) string {
	return fmt.Sprintf("%s%d", laptopKeyPrefix, id)
}

func (r *CachedLaptopRepository) Insert(ctx context.Context, laptop *models.Laptop) error {
	return r.inner.Insert(ctx, laptop)
}

// GetByID serves from cache when possible and fills the cache on a miss.
func (r *CachedLaptopRepository) GetByID(ctx context.Context, id int64) (*models.Laptop, error) {
	cached, err := r.client.Get(ctx, laptopKey(id)).Result()
	switch {
	case err == nil:
		var laptop models.Laptop
		if err := json.Unmarshal([]byte(cached), &laptop); err == nil {
			return &laptop, nil
		}
		log.Printf("Discarding undecodable cache entry for laptop %d", id)
	case !errors.Is(err, redis.Nil):
		log.Printf("Error reading laptop %d from Redis, falling back to DB: %v", id, err)
	}

	laptop, err := r.inner.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(laptop)
	if err != nil {
		log.Printf("Error marshaling laptop %d for cache: %v", id, err)
		return laptop, nil
	}
	if err := r.client.Set(ctx, laptopKey(id), payload, r.ttl).Err(); err != nil {
		log.Printf("Error setting laptop %d in Redis: %v", id, err)
	}
	return laptop, nil
}

// GetAll always reads through to the inner repository.
func (r *CachedLaptopRepository) GetAll(ctx context.Context) ([]models.Laptop, error) {
	return r.inner.GetAll(ctx)
}

func (r *CachedLaptopRepository) Update(ctx context.Context, laptop *models.Laptop) error {
	if err := r.inner.Update(ctx, laptop); err != nil {
		return err
	}
	r.invalidate(ctx, laptop.ID)
	return nil
}

func (r *CachedLaptopRepository) Delete(ctx context.Context, id int64) error {
	if err := r.inner.Delete(ctx, id); err != nil {
		return err
	}
	r.invalidate(ctx, id)
	return nil
}

func (r *CachedLaptopRepository) invalidate(ctx context.Context, id int64) {
	if err := r.client.Del(ctx, laptopKey(id)).Err(); err != nil {
		log.Printf("Error invalidating laptop %d in Redis: %v", id, err)
	}
}
