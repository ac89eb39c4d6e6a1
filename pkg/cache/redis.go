package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrCacheMiss возвращается, если ключа нет в кеше
var ErrCacheMiss = errors.New("cache: miss")

// Options параметры подключения к Redis
type Options struct {
	Addr        string
	Password    string
	DB          int
	DialTimeout time.Duration
}

// NewRedisClient создает клиента и проверяет соединение
func NewRedisClient(ctx context.Context, opts Options) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:        opts.Addr,
		Password:    opts.Password,
		DB:          opts.DB,
		DialTimeout: opts.DialTimeout,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", opts.Addr, err)
	}

	return client, nil
}

// Service JSON-кеш поверх Redis
type Service struct {
	client    *redis.Client
	keyPrefix string
}

// NewService создает кеш; все ключи получают префикс keyPrefix
func NewService(client *redis.Client, keyPrefix string) *Service {
	return &Service{
		client:    client,
		keyPrefix: keyPrefix,
	}
}

// Get читает значение и декодирует его в dest
func (s *Service) Get(ctx context.Context, key string, dest any) error {
	val, err := s.client.Get(ctx, s.keyPrefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrCacheMiss
		}
		return fmt.Errorf("cache get error: %w", err)
	}

	if err := json.Unmarshal(val, dest); err != nil {
		return fmt.Errorf("cache unmarshal error: %w", err)
	}

	return nil
}

// Set кодирует value в JSON и сохраняет его с TTL
func (s *Service) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache marshal error: %w", err)
	}

	if err := s.client.Set(ctx, s.keyPrefix+key, data, ttl).Err(); err != nil {
		return fmt.Errorf("cache set error: %w", err)
	}

	return nil
}

// Delete удаляет ключ
func (s *Service) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.keyPrefix+key).Err(); err != nil {
		return fmt.Errorf("cache delete error: %w", err)
	}
	return nil
}

// Ping проверяет доступность Redis
func (s *Service) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
