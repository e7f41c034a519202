package deliverylog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/campusalert/campusalert/pkg/alert"
)

// RedisStorage is a Redis-backed Storage implementation. Entries live in a
// hash per recipient, with a sorted set keeping chronological order.
type RedisStorage struct {
	client redis.UniversalClient
	prefix string
}

// NewRedisStorage creates a delivery log backed by the given Redis client.
func NewRedisStorage(client redis.UniversalClient) *RedisStorage {
	return &RedisStorage{client: client, prefix: "deliverylog"}
}

func (s *RedisStorage) entriesKey(recipientID string) string {
	return fmt.Sprintf("%s:%s:entries", s.prefix, recipientID)
}

func (s *RedisStorage) indexKey(recipientID string) string {
	return fmt.Sprintf("%s:%s:index", s.prefix, recipientID)
}

func (s *RedisStorage) Log(ctx context.Context, entry Entry) error {
	if entry.RecipientID == "" {
		return ErrMissingRecipientID
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}

	raw, err := json.Marshal(entry)
	if err != nil {
		return errors.Join(ErrStorageUnavailable, err)
	}

	pipe := s.client.TxPipeline()
	pipe.HSet(ctx, s.entriesKey(entry.RecipientID), entry.ID, raw)
	pipe.ZAdd(ctx, s.indexKey(entry.RecipientID), redis.Z{
		Score:  float64(entry.CreatedAt.UnixNano()),
		Member: entry.ID,
	})
	if _, err := pipe.Exec(ctx); err != nil {
		return errors.Join(ErrStorageUnavailable, err)
	}
	return nil
}

// Append satisfies the in-app channel's inbox writer.
func (s *RedisStorage) Append(ctx context.Context, msg alert.Message) error {
	return s.Log(ctx, NewEntry(msg, alert.Type(msg.Tag), OutcomeDelivered))
}

func (s *RedisStorage) ListByRecipient(ctx context.Context, recipientID string, opts ListOptions) ([]Entry, error) {
	ids, err := s.client.ZRevRange(ctx, s.indexKey(recipientID), 0, -1).Result()
	if err != nil {
		return nil, errors.Join(ErrStorageUnavailable, err)
	}
	if len(ids) == 0 {
		return []Entry{}, nil
	}

	raw, err := s.client.HMGet(ctx, s.entriesKey(recipientID), ids...).Result()
	if err != nil {
		return nil, errors.Join(ErrStorageUnavailable, err)
	}

	filtered := make([]Entry, 0, len(raw))
	for _, v := range raw {
		str, ok := v.(string)
		if !ok {
			continue
		}
		var e Entry
		if err := json.Unmarshal([]byte(str), &e); err != nil {
			continue
		}
		if opts.OnlyUnread && e.Read {
			continue
		}
		if opts.Outcome != "" && e.Outcome != opts.Outcome {
			continue
		}
		if opts.Since != nil && e.CreatedAt.Before(*opts.Since) {
			continue
		}
		filtered = append(filtered, e)
	}

	start := opts.Offset
	if start > len(filtered) {
		return []Entry{}, nil
	}
	end := start + opts.Limit
	if opts.Limit == 0 || end > len(filtered) {
		end = len(filtered)
	}
	return filtered[start:end], nil
}

func (s *RedisStorage) MarkRead(ctx context.Context, recipientID string, entryIDs ...string) error {
	if len(entryIDs) == 0 {
		return nil
	}
	return s.updateEntries(ctx, recipientID, entryIDs)
}

func (s *RedisStorage) MarkAllRead(ctx context.Context, recipientID string) error {
	ids, err := s.client.HKeys(ctx, s.entriesKey(recipientID)).Result()
	if err != nil {
		return errors.Join(ErrStorageUnavailable, err)
	}
	if len(ids) == 0 {
		return nil
	}
	return s.updateEntries(ctx, recipientID, ids)
}

// updateEntries marks the given entries as read, skipping unknown IDs.
func (s *RedisStorage) updateEntries(ctx context.Context, recipientID string, entryIDs []string) error {
	key := s.entriesKey(recipientID)
	raw, err := s.client.HMGet(ctx, key, entryIDs...).Result()
	if err != nil {
		return errors.Join(ErrStorageUnavailable, err)
	}

	updates := make(map[string]any, len(raw))
	for _, v := range raw {
		str, ok := v.(string)
		if !ok {
			continue
		}
		var e Entry
		if err := json.Unmarshal([]byte(str), &e); err != nil {
			continue
		}
		if e.Read {
			continue
		}
		e.markAsRead()
		encoded, err := json.Marshal(e)
		if err != nil {
			return errors.Join(ErrStorageUnavailable, err)
		}
		updates[e.ID] = encoded
	}
	if len(updates) == 0 {
		return nil
	}
	if err := s.client.HSet(ctx, key, updates).Err(); err != nil {
		return errors.Join(ErrStorageUnavailable, err)
	}
	return nil
}

func (s *RedisStorage) CountUnread(ctx context.Context, recipientID string) (int, error) {
	raw, err := s.client.HVals(ctx, s.entriesKey(recipientID)).Result()
	if err != nil {
		return 0, errors.Join(ErrStorageUnavailable, err)
	}

	count := 0
	for _, v := range raw {
		var e Entry
		if err := json.Unmarshal([]byte(v), &e); err != nil {
			continue
		}
		if !e.Read {
			count++
		}
	}
	return count, nil
}

func (s *RedisStorage) Delete(ctx context.Context, recipientID string, entryIDs ...string) error {
	if len(entryIDs) == 0 {
		return nil
	}

	members := make([]any, len(entryIDs))
	for i, id := range entryIDs {
		members[i] = id
	}

	pipe := s.client.TxPipeline()
	pipe.HDel(ctx, s.entriesKey(recipientID), entryIDs...)
	pipe.ZRem(ctx, s.indexKey(recipientID), members...)
	if _, err := pipe.Exec(ctx); err != nil {
		return errors.Join(ErrStorageUnavailable, err)
	}
	return nil
}
