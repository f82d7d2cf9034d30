package main

import (
	"fmt"

	"go.uber.org/zap"
)

// Supported storage drivers.
const (
	StorageCSV   = "csv"
	StorageBolt  = "bolt"
	StorageRedis = "redis"
)

// NewBookStorage builds the backing storage selected by the configuration.
func NewBookStorage(logger *zap.Logger, config *Config) (BookStorage, error) {
	switch config.Storage.Driver {
	case StorageCSV:
		return NewCSVBookStorage(logger, config.Storage.FilePath), nil
	case StorageBolt:
		client, err := GetBoltDBClient(config)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to boltDB: %s", err)
		}
		return NewBoltBookStorage(logger, &config.BoltDB, client), nil
	case StorageRedis:
		client, err := GetRedisClient(config)
		if err != nil {
			client.Close()
			return nil, fmt.Errorf("failed to connect to redis server: %s", err)
		}
		return NewRedisBookStorage(logger, client, config.Redis.Key), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", config.Storage.Driver)
	}
}
