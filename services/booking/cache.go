package booking

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"mentorship/models"
	"mentorship/services/scheduling"
	"mentorship/utils"

	"github.com/go-redis/redis/v8"
)

// AvailabilityCache stores computed availability responses per mentor and date.
type AvailabilityCache interface {
	Get(ctx context.Context, mentorID, date string) (*models.AvailabilityResponse, bool, error)
	Set(ctx context.Context, resp *models.AvailabilityResponse) error
	Invalidate(ctx context.Context, mentorID string, dates ...string) error
	InvalidateMentor(ctx context.Context, mentorID string) error
}

// RedisAvailabilityCache keeps JSON responses under "availability:<mentor>:<date>".
type RedisAvailabilityCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisAvailabilityCache(client *redis.Client) *RedisAvailabilityCache {
	return &RedisAvailabilityCache{client: client, ttl: utils.AvailabilityCacheTTL}
}

func availabilityKey(mentorID, date string) string {
	return utils.AvailabilityCachePrefix + mentorID + ":" + date
}

func (c *RedisAvailabilityCache) Get(ctx context.Context, mentorID, date string) (*models.AvailabilityResponse, bool, error) {
	raw, err := c.client.Get(ctx, availabilityKey(mentorID, date)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("availability cache get: %w", err)
	}
	var resp models.AvailabilityResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, false, fmt.Errorf("availability cache decode: %w", err)
	}
	return &resp, true, nil
}

func (c *RedisAvailabilityCache) Set(ctx context.Context, resp *models.AvailabilityResponse) error {
	raw, err := json.Marshal(resp)
	if err != nil {
		return err
	}
	if err := c.client.Set(ctx, availabilityKey(resp.MentorID, resp.Date), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("availability cache set: %w", err)
	}
	return nil
}

func (c *RedisAvailabilityCache) Invalidate(ctx context.Context, mentorID string, dates ...string) error {
	if len(dates) == 0 {
		return nil
	}
	keys := make([]string, len(dates))
	for i, d := range dates {
		keys[i] = availabilityKey(mentorID, d)
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("availability cache invalidate: %w", err)
	}
	return nil
}

// InvalidateMentor drops every cached date of the mentor.
func (c *RedisAvailabilityCache) InvalidateMentor(ctx context.Context, mentorID string) error {
	iter := c.client.Scan(ctx, 0, availabilityKey(mentorID, "*"), 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("availability cache scan: %w", err)
	}
	if len(keys) == 0 {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}

// affectedDates lists the cached dates whose response can change when a
// booking on date changes: the date itself and the days whose alternatives
// look ahead onto it.
func affectedDates(date string, lookahead int) []string {
	day, err := time.Parse(scheduling.DateLayout, date)
	if err != nil {
		return []string{date}
	}
	out := make([]string, 0, lookahead+1)
	for i := 0; i <= lookahead; i++ {
		out = append(out, day.AddDate(0, 0, -i).Format(scheduling.DateLayout))
	}
	return out
}
