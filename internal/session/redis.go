package session

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"
)

const (
	keyPrefix   = "examplanner:state:" // Hash: examplanner:state:{user} -> active, tab
	fieldActive = "active"
	fieldTab    = "tab"
)

// Redis stores state in one hash per user so several app instances share it.
type Redis struct {
	Client *redis.Client
}

func NewRedis(client *redis.Client) *Redis {
	return &Redis{Client: client}
}

// Dial connects and pings, failing early if redis is unreachable.
func Dial(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("redis ping %s: %w", addr, err)
	}
	return rdb, nil
}

func stateKey(user string) string { return keyPrefix + user }

func (s *Redis) Get(ctx context.Context, user string) (State, error) {
	data, err := s.Client.HGetAll(ctx, stateKey(user)).Result()
	if err != nil {
		return State{}, fmt.Errorf("load state for %s: %w", user, err)
	}
	st := State{ActiveExamID: data[fieldActive], Tab: data[fieldTab]}
	if st.Tab == "" {
		st.Tab = DefaultTab
	}
	return st, nil
}

func (s *Redis) SetActive(ctx context.Context, user, examID string) error {
	if err := s.Client.HSet(ctx, stateKey(user), fieldActive, examID).Err(); err != nil {
		return fmt.Errorf("set active exam for %s: %w", user, err)
	}
	return nil
}

func (s *Redis) SetTab(ctx context.Context, user, tab string) error {
	if err := ValidTab(tab); err != nil {
		return err
	}
	if err := s.Client.HSet(ctx, stateKey(user), fieldTab, tab).Err(); err != nil {
		return fmt.Errorf("set tab for %s: %w", user, err)
	}
	return nil
}

func (s *Redis) Clear(ctx context.Context, user string) error {
	return s.Client.Del(ctx, stateKey(user)).Err()
}
