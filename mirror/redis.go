package mirror

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/krisalay/expiring-registry/types"
)

const DefaultRedisPrefix = "domain:"

type redisDomain struct {
	ID         int       `json:"id"`
	Name       string    `json:"name"`
	Duration   int       `json:"duration"`
	InsertedAt time.Time `json:"inserted_at"`
}

// Redis mirrors inserts as JSON strings that expire with the record.
type Redis struct {
	client *redis.Client
	prefix string
}

func NewRedis(client *redis.Client, prefix string) *Redis {
	return &Redis{client: client, prefix: prefix}
}

func (r *Redis) key(id int) string {
	return r.prefix + strconv.Itoa(id)
}

/*
Put stores the record under prefix+id with the record's own TTL,
so Redis reclaims it on the same schedule as the registry.

Records with no lifetime left are skipped: SET with a zero expiry would
keep them forever.
*/
func (r *Redis) Put(ctx context.Context, ent types.Entry) error {
	ttl := ent.Record.TTL()
	if ttl <= 0 {
		return nil
	}

	payload, err := json.Marshal(redisDomain{
		ID:         ent.Record.ID,
		Name:       ent.Record.Name,
		Duration:   ent.Record.Duration,
		InsertedAt: ent.InsertedAt.UTC(),
	})
	if err != nil {
		return fmt.Errorf("marshal domain %d: %w", ent.Record.ID, err)
	}

	return r.client.Set(ctx, r.key(ent.Record.ID), string(payload), ttl).Err()
}

func (r *Redis) Close() error {
	return r.client.Close()
}
