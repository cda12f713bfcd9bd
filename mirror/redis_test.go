package mirror

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"

	"github.com/krisalay/expiring-registry/types"
)

func TestRedisPutUsesRecordTTL(t *testing.T) {
	db, mock := redismock.NewClientMock()
	r := NewRedis(db, DefaultRedisPrefix)

	ctx := context.Background()
	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	ent := types.Entry{Record: types.Record{ID: 1, Name: "a", Duration: 2}, InsertedAt: at}

	payload, _ := json.Marshal(redisDomain{ID: 1, Name: "a", Duration: 2, InsertedAt: at})
	mock.ExpectSet("domain:1", string(payload), 2*time.Second).SetVal("OK")

	if err := r.Put(ctx, ent); err != nil {
		t.Errorf("expected no error, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestRedisPutSkipsZeroDuration(t *testing.T) {
	db, mock := redismock.NewClientMock()
	r := NewRedis(db, DefaultRedisPrefix)

	ent := types.Entry{Record: types.Record{ID: 3, Name: "z", Duration: 0}, InsertedAt: time.Now()}
	if err := r.Put(context.Background(), ent); err != nil {
		t.Errorf("expected no error, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestRedisPutReturnsError(t *testing.T) {
	db, mock := redismock.NewClientMock()
	r := NewRedis(db, "test:")

	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	payload, _ := json.Marshal(redisDomain{ID: 9, Name: "e", Duration: 10, InsertedAt: at})
	mock.ExpectSet("test:9", string(payload), 10*time.Second).SetErr(errors.New("READONLY"))

	err := r.Put(context.Background(), types.Entry{Record: types.Record{ID: 9, Name: "e", Duration: 10}, InsertedAt: at})
	if err == nil {
		t.Errorf("expected error from redis")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}
