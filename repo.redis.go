package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// DefaultBooksKey is the redis list holding the catalog.
const DefaultBooksKey string = "library:books"

type redisBookStorage struct {
	logger *zap.Logger
	client *redis.Client
	key    string
}

// NewRedisBookStorage provides an instance of redis-based book storage.
func NewRedisBookStorage(logger *zap.Logger, client *redis.Client, key string) BookStorage {
	if key == "" {
		key = DefaultBooksKey
	}
	return &redisBookStorage{
		logger: logger,
		client: client,
		key:    key,
	}
}

// GetRedisClient provides a ready to use redis client.
func GetRedisClient(config *Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%s", config.Redis.Host, config.Redis.Port),
		DialTimeout:  config.Redis.DialTimeout,
		ReadTimeout:  config.Redis.ReadTimeout,
		WriteTimeout: config.Redis.WriteTimeout,
		PoolSize:     config.Redis.PoolSize,
		PoolTimeout:  config.Redis.PoolTimeout,
		Password:     config.Redis.Password,
		Username:     config.Redis.Username,
		DB:           config.Redis.DatabaseIndex,
	})

	// test connection.
	if pong, err := client.Ping(context.Background()).Result(); pong != "PONG" || err != nil {
		return client, fmt.Errorf("test connection failed: %v", err)
	}
	return client, nil
}

// Persist replaces the list content with the given books inside a MULTI/EXEC block.
func (rs *redisBookStorage) Persist(ctx context.Context, books []Book) error {
	values := make([]interface{}, 0, len(books))
	for _, book := range books {
		bookBytes, err := json.Marshal(book)
		if err != nil {
			return err
		}
		values = append(values, bookBytes)
	}

	_, err := rs.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, rs.key)
		if len(values) > 0 {
			pipe.RPush(ctx, rs.key, values...)
		}
		return nil
	})
	return err
}

// Load retrieves the list of all books stored in the redis database.
func (rs *redisBookStorage) Load(ctx context.Context) ([]Book, error) {
	items, err := rs.client.LRange(ctx, rs.key, 0, -1).Result()
	if err != nil && err != redis.Nil {
		return nil, err
	}
	books := []Book{}
	for _, bookJSONString := range items {
		var book Book
		if err = json.Unmarshal([]byte(bookJSONString), &book); err != nil {
			return nil, err
		}
		books = append(books, book)
	}
	return books, nil
}

// Close releases the redis connections pool.
func (rs *redisBookStorage) Close() error {
	return rs.client.Close()
}
