package config

import (
	"sync"
)

var (
	redisOnce   sync.Once
	redisConfig *RedisConfig
)

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

func GetRedisConfig() *RedisConfig {
	redisOnce.Do(func() {
		redisConfig = &RedisConfig{
			Addr:     lookup("REDIS_ADDR", "localhost:6379"),
			Password: lookup("REDIS_PASSWORD", ""),
			DB:       lookupInt("REDIS_DB", 0),
		}
	})
	return redisConfig
}
