package repository

import (
	"context"
	"encoding/json"
	"time"

	"resume-chatbot/internal/domain"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

const sessionKeyPrefix = "resume_session:"

// RedisSessionStore keeps each session as a JSON value that expires after
// ttl without a save.
type RedisSessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisSessionStore(client *redis.Client, ttl time.Duration) *RedisSessionStore {
	return &RedisSessionStore{client: client, ttl: ttl}
}

func sessionKey(id uuid.UUID) string { return sessionKeyPrefix + id.String() }

func (r *RedisSessionStore) Get(ctx context.Context, id uuid.UUID) (*domain.SessionState, error) {
	data, err := r.client.Get(ctx, sessionKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrSessionNotFound
	}
	if err != nil {
		return nil, errors.Wrapf(err, "get session %s", id)
	}

	var st domain.SessionState
	if err := json.Unmarshal(data, &st); err != nil {
		return nil, errors.Wrapf(err, "decode session %s", id)
	}
	if st.Record == nil || !st.Step.Valid() {
		return nil, errors.Errorf("session %s is corrupt", id)
	}
	st.Record = st.Record.Clone()
	return &st, nil
}

func (r *RedisSessionStore) Save(ctx context.Context, st *domain.SessionState) error {
	data, err := json.Marshal(st)
	if err != nil {
		return errors.Wrapf(err, "encode session %s", st.ID)
	}
	if err := r.client.Set(ctx, sessionKey(st.ID), data, r.ttl).Err(); err != nil {
		return errors.Wrapf(err, "save session %s", st.ID)
	}
	return nil
}

func (r *RedisSessionStore) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.client.Del(ctx, sessionKey(id)).Err(); err != nil {
		return errors.Wrapf(err, "delete session %s", id)
	}
	return nil
}
