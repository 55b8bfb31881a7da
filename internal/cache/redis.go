// Package cache хранит UserInfo в Redis, чтобы чтение профиля не ходило в базу.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/magabrotheeeer/profile-settings/internal/config"
	"github.com/magabrotheeeer/profile-settings/internal/models"
)

// Cache: кэш профилей поверх redis.Client.
type Cache struct {
	Db  *redis.Client
	ttl time.Duration
}

// InitServer подключается к Redis и проверяет соединение.
func InitServer(ctx context.Context, cfg config.RedisConnection) (*Cache, error) {
	const op = "cache.InitServer"
	db := redis.NewClient(&redis.Options{
		Addr:         cfg.AddressRedis,
		Password:     cfg.RedisPassword,
		DB:           cfg.DB,
		Username:     cfg.RedisUser,
		MaxRetries:   cfg.MaxRetries,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.TimeoutRedis,
		WriteTimeout: cfg.TimeoutRedis,
	})

	if err := db.Ping(ctx).Err(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &Cache{Db: db, ttl: cfg.UserInfoTTL}, nil
}

// GetUserInfo возвращает профиль из кэша. found == false, если ключа нет.
func (c *Cache) GetUserInfo(ctx context.Context, userUID string) (info models.UserInfo, found bool, err error) {
	const op = "cache.GetUserInfo"
	val, err := c.Db.Get(ctx, userInfoKey(userUID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return models.UserInfo{}, false, nil
	}
	if err != nil {
		return models.UserInfo{}, false, fmt.Errorf("%s: %w", op, err)
	}
	if err = json.Unmarshal(val, &info); err != nil {
		return models.UserInfo{}, false, fmt.Errorf("%s: %w", op, err)
	}
	return info, true, nil
}

// SetUserInfo кладёт профиль в кэш на время жизни из конфига.
func (c *Cache) SetUserInfo(ctx context.Context, info models.UserInfo) error {
	const op = "cache.SetUserInfo"
	data, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := c.Db.Set(ctx, userInfoKey(info.ID), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Invalidate удаляет профиль пользователя из кэша.
func (c *Cache) Invalidate(ctx context.Context, userUID string) error {
	const op = "cache.Invalidate"
	if err := c.Db.Del(ctx, userInfoKey(userUID)).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Ping проверяет соединение с Redis.
func (c *Cache) Ping(ctx context.Context) error {
	return c.Db.Ping(ctx).Err()
}

// Close закрывает соединение с Redis.
func (c *Cache) Close() error {
	return c.Db.Close()
}

func userInfoKey(userUID string) string {
	return "user_info:" + userUID
}
