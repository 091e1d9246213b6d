package stats

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-PickupService/internal/domain"
)

const (
	keyPrefix  = "pickup:stats"
	versionKey = keyPrefix + ":version"
	openBound  = "open"
)

// Cache кеш агрегатов статистики бронирований в Redis.
// Ключи содержат номер поколения: Invalidate увеличивает его, и все старые ключи
// перестают читаться, после чего истекают по TTL.
type Cache struct {
	client redis.Cmdable
	ttl    time.Duration
}

// NewCache создает кеш поверх клиента Redis
func NewCache(client redis.Cmdable, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

type cachedStats struct {
	TotalBookings     int64   `json:"totalBookings"`
	TotalRevenue      float64 `json:"totalRevenue"`
	CompletedBookings int64   `json:"completedBookings"`
	PendingBookings   int64   `json:"pendingBookings"`
	EmergencyBookings int64   `json:"emergencyBookings"`
}

// Get возвращает закешированную статистику (nil, если записи нет) и поколение кеша,
// по которому выполнялось чтение. Это поколение передается в Set.
func (c *Cache) Get(ctx context.Context, period domain.StatsRange) (*domain.BookingStats, int64, error) {
	version, err := c.version(ctx)
	if err != nil {
		return nil, 0, err
	}

	key := statsKey(version, period)
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, version, nil
		}
		return nil, version, fmt.Errorf("stats cache: get %s: %w", key, err)
	}

	var cached cachedStats
	if err := json.Unmarshal(data, &cached); err != nil {
		return nil, version, fmt.Errorf("stats cache: decode %s: %w", key, err)
	}

	return &domain.BookingStats{
		TotalBookings:     cached.TotalBookings,
		TotalRevenue:      cached.TotalRevenue,
		CompletedBookings: cached.CompletedBookings,
		PendingBookings:   cached.PendingBookings,
		EmergencyBookings: cached.EmergencyBookings,
	}, version, nil
}

// Set сохраняет статистику под поколением version, полученным из Get.
// Если между Get и Set прошла инвалидация, запись попадает в устаревшее поколение и не читается.
func (c *Cache) Set(ctx context.Context, period domain.StatsRange, version int64, stats *domain.BookingStats) error {
	key := statsKey(version, period)

	payload, err := json.Marshal(cachedStats{
		TotalBookings:     stats.TotalBookings,
		TotalRevenue:      stats.TotalRevenue,
		CompletedBookings: stats.CompletedBookings,
		PendingBookings:   stats.PendingBookings,
		EmergencyBookings: stats.EmergencyBookings,
	})
	if err != nil {
		return fmt.Errorf("stats cache: encode: %w", err)
	}

	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("stats cache: set %s: %w", key, err)
	}
	return nil
}

// Invalidate делает недействительными все закешированные периоды
func (c *Cache) Invalidate(ctx context.Context) error {
	if err := c.client.Incr(ctx, versionKey).Err(); err != nil {
		return fmt.Errorf("stats cache: bump version: %w", err)
	}
	return nil
}

func (c *Cache) version(ctx context.Context) (int64, error) {
	version, err := c.client.Get(ctx, versionKey).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		return 0, fmt.Errorf("stats cache: read version: %w", err)
	}
	return version, nil
}

func statsKey(version int64, period domain.StatsRange) string {
	return fmt.Sprintf("%s:v%d:%s:%s", keyPrefix, version, bound(period.From), bound(period.To))
}

func bound(t *time.Time) string {
	if t == nil {
		return openBound
	}
	return t.Format(domain.DateFormat)
}
