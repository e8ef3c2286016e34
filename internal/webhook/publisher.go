package webhook

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/shenikar/crowd_safety_system/internal/models"
)

const (
	deltaQueueKey = "safety_deltas"
)

// Publisher - интерфейс публикации дельт состояния движка для внешних
// потребителей (алертинг, презентационный слой).
type Publisher interface {
	Publish(ctx context.Context, delta models.Delta) error
}

// RedisPublisher - реализация Publisher поверх очереди Redis.
type RedisPublisher struct {
	redisClient *redis.Client
}

// NewRedisPublisher создает новый RedisPublisher.
func NewRedisPublisher(client *redis.Client) *RedisPublisher {
	return &RedisPublisher{
		redisClient: client,
	}
}

// Publish публикует дельту в очередь Redis.
func (p *RedisPublisher) Publish(ctx context.Context, delta models.Delta) error {
	payload, err := json.Marshal(delta)
	if err != nil {
		return fmt.Errorf("failed to marshal delta: %w", err)
	}

	// LPUSH в левую часть списка, воркер снимает с правой через BRPop
	if err := p.redisClient.LPush(ctx, deltaQueueKey, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish delta to Redis: %w", err)
	}
	return nil
}
