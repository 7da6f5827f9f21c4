package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

const keyPrefix = "salon-booking:"

// Calendar read-through кэш салонов, услуг и часов работы в Redis.
// Записи салона в кэш не попадают: они читаются из хранилища на каждый запрос.
// Ошибки Redis не фатальны: запрос уходит в хранилище, а в лог пишется предупреждение
type Calendar struct {
	source Source
	redis  *redis.Client
	ttl    time.Duration
	logger Logger
}

// NewCalendar оборачивает source кэшем
func NewCalendar(source Source, client *redis.Client, ttl time.Duration, logger Logger) *Calendar {
	return &Calendar{source: source, redis: client, ttl: ttl, logger: logger}
}

func salonKey(salonID uuid.UUID) string {
	return fmt.Sprintf("%ssalon:%s", keyPrefix, salonID)
}

func serviceKey(salonID, serviceID uuid.UUID) string {
	return fmt.Sprintf("%ssalon:%s:service:%s", keyPrefix, salonID, serviceID)
}

func hoursKey(salonID uuid.UUID) string {
	return fmt.Sprintf("%ssalon:%s:hours", keyPrefix, salonID)
}

func (c *Calendar) GetSalon(ctx context.Context, salonID uuid.UUID) (*domain.Salon, error) {
	var entry salonEntry
	if c.load(ctx, salonKey(salonID), &entry) {
		return entry.toDomain(), nil
	}

	salon, err := c.source.GetSalon(ctx, salonID)
	if err != nil {
		return nil, err
	}
	c.store(ctx, salonKey(salonID), toSalonEntry(salon))
	return salon, nil
}

func (c *Calendar) GetService(ctx context.Context, salonID, serviceID uuid.UUID) (*domain.Service, error) {
	var entry serviceEntry
	if c.load(ctx, serviceKey(salonID, serviceID), &entry) {
		return entry.toDomain(), nil
	}

	service, err := c.source.GetService(ctx, salonID, serviceID)
	if err != nil {
		return nil, err
	}
	c.store(ctx, serviceKey(salonID, serviceID), toServiceEntry(service))
	return service, nil
}

func (c *Calendar) GetOpeningHours(ctx context.Context, salonID uuid.UUID) (domain.WeeklySchedule, error) {
	var entries []hoursEntry
	if c.load(ctx, hoursKey(salonID), &entries) {
		return fromHoursEntries(salonID, entries), nil
	}

	schedule, err := c.source.GetOpeningHours(ctx, salonID)
	if err != nil {
		return nil, err
	}
	c.store(ctx, hoursKey(salonID), toHoursEntries(schedule))
	return schedule, nil
}

// InvalidateOpeningHours удаляет расписание салона из кэша
func (c *Calendar) InvalidateOpeningHours(ctx context.Context, salonID uuid.UUID) error {
	if err := c.redis.Del(ctx, hoursKey(salonID)).Err(); err != nil {
		return fmt.Errorf("cache: invalidate opening hours for salon %s: %w", salonID, err)
	}
	return nil
}

func (c *Calendar) load(ctx context.Context, key string, dest any) bool {
	data, err := c.redis.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("cache: get %s: %v", key, err)
		}
		return false
	}
	if err := json.Unmarshal(data, dest); err != nil {
		c.logger.Warn("cache: decode %s: %v", key, err)
		return false
	}
	return true
}

func (c *Calendar) store(ctx context.Context, key string, value any) {
	data, err := json.Marshal(value)
	if err != nil {
		c.logger.Warn("cache: encode %s: %v", key, err)
		return
	}
	if err := c.redis.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.logger.Warn("cache: set %s: %v", key, err)
	}
}
