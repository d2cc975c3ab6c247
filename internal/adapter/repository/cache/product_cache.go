package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/campus-market/listing-service/internal/product/domain"
	"github.com/redis/go-redis/v9"
)

type ProductCache struct {
	client *redis.Client
}

func NewProductCache(addr string) (*ProductCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
	})
	_, err := client.Ping(context.Background()).Result()
	if err != nil {
		return nil, err
	}
	return &ProductCache{client: client}, nil
}

func (c *ProductCache) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	data, err := c.client.Get(ctx, "product:"+id).Bytes()
	if err == redis.Nil {
		return nil, nil // Cache miss
	}
	if err != nil {
		return nil, err
	}
	var product domain.Product
	if err := json.Unmarshal(data, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (c *ProductCache) SetProduct(ctx context.Context, product *domain.Product) error {
	data, err := json.Marshal(product)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, "product:"+product.ID, data, 1*time.Hour).Err()
}

func (c *ProductCache) DeleteProduct(ctx context.Context, id string) error {
	return c.client.Del(ctx, "product:"+id).Err()
}
