package config

import (
	"time"

	pkgredis "visitlog/pkg/db/redis"
)

// RedisConfig содержит настройки кэша справочника подразделений.
type RedisConfig struct {
	Host          string        `yaml:"host" env:"VISITORS_REDIS_HOST" env-default:"localhost"`
	Port          int           `yaml:"port" env:"VISITORS_REDIS_PORT" env-default:"6379"`
	Password      string        `yaml:"password" env:"VISITORS_REDIS_PASSWORD" env-default:""`
	DB            int           `yaml:"db" env:"VISITORS_REDIS_DB" env-default:"0"`
	PoolSize      int           `yaml:"pool_size" env:"VISITORS_REDIS_POOL_SIZE" env-default:"10"`
	DialTimeout   time.Duration `yaml:"dial_timeout" env:"VISITORS_REDIS_DIAL_TIMEOUT" env-default:"5s"`
	ReadTimeout   time.Duration `yaml:"read_timeout" env:"VISITORS_REDIS_READ_TIMEOUT" env-default:"3s"`
	WriteTimeout  time.Duration `yaml:"write_timeout" env:"VISITORS_REDIS_WRITE_TIMEOUT" env-default:"3s"`
	DepartmentTTL time.Duration `yaml:"department_ttl" env:"VISITORS_REDIS_DEPARTMENT_TTL" env-default:"15m"`
}

// ClientConfig возвращает настройки клиента Redis.
func (c *RedisConfig) ClientConfig() *pkgredis.Config {
	return &pkgredis.Config{
		Host:         c.Host,
		Port:         c.Port,
		Password:     c.Password,
		DB:           c.DB,
		PoolSize:     c.PoolSize,
		DialTimeout:  c.DialTimeout,
		ReadTimeout:  c.ReadTimeout,
		WriteTimeout: c.WriteTimeout,
	}
}
