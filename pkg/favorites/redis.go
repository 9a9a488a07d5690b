package favorites

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/redis/go-redis/v9"

	"github.com/matzehuels/shelfmount/pkg/cache"
	errs "github.com/matzehuels/shelfmount/pkg/errors"
)

// RedisConfig locates the Redis hash holding favorites.
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
	Key      string `toml:"key"`
}

// DefaultRedisKey is the hash used when RedisConfig.Key is empty.
const DefaultRedisKey = "shelfmount:favorites"

// RedisStore keeps favorites as JSON values in a single hash keyed by ID.
type RedisStore struct {
	client *redis.Client
	key    string
}

// NewRedisStore connects and pings the server.
func NewRedisStore(ctx context.Context, cfg RedisConfig) (*RedisStore, error) {
	if cfg.Addr == "" {
		cfg.Addr = "localhost:6379"
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	err := cache.DefaultBackoff.Do(ctx, func() error {
		return cache.Retryable(client.Ping(ctx).Err())
	})
	if err != nil {
		_ = client.Close()
		return nil, errs.Wrap(errs.ErrCodeStorage, err, "connect to redis at %s", cfg.Addr)
	}
	return NewRedisStoreFromClient(client, cfg.Key), nil
}

// NewRedisStoreFromClient wraps an existing client.
func NewRedisStoreFromClient(client *redis.Client, key string) *RedisStore {
	if key == "" {
		key = DefaultRedisKey
	}
	return &RedisStore{client: client, key: key}
}

func (s *RedisStore) List(ctx context.Context) ([]Favorite, error) {
	fields, err := s.client.HGetAll(ctx, s.key).Result()
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeStorage, err, "list favorites")
	}
	favs := make([]Favorite, 0, len(fields))
	for id, raw := range fields {
		var f Favorite
		if err := json.Unmarshal([]byte(raw), &f); err != nil {
			return nil, errs.Wrap(errs.ErrCodeStorage, err, "decode favorite %s", id)
		}
		favs = append(favs, f)
	}
	sortByCreated(favs)
	return favs, nil
}

func (s *RedisStore) Get(ctx context.Context, id string) (Favorite, error) {
	raw, err := s.client.HGet(ctx, s.key, id).Bytes()
	if errors.Is(err, redis.Nil) {
		return Favorite{}, notFound(id)
	}
	if err != nil {
		return Favorite{}, errs.Wrap(errs.ErrCodeStorage, err, "get favorite %s", id)
	}
	var f Favorite
	if err := json.Unmarshal(raw, &f); err != nil {
		return Favorite{}, errs.Wrap(errs.ErrCodeStorage, err, "decode favorite %s", id)
	}
	return f, nil
}

func (s *RedisStore) Save(ctx context.Context, f Favorite) (Favorite, error) {
	f, err := prepare(f)
	if err != nil {
		return Favorite{}, err
	}
	raw, err := json.Marshal(f)
	if err != nil {
		return Favorite{}, errs.Wrap(errs.ErrCodeInternal, err, "encode favorite")
	}
	if err := s.client.HSet(ctx, s.key, f.ID, raw).Err(); err != nil {
		return Favorite{}, errs.Wrap(errs.ErrCodeStorage, err, "save favorite %s", f.ID)
	}
	return f, nil
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	n, err := s.client.HDel(ctx, s.key, id).Result()
	if err != nil {
		return errs.Wrap(errs.ErrCodeStorage, err, "delete favorite %s", id)
	}
	if n == 0 {
		return notFound(id)
	}
	return nil
}

func (s *RedisStore) Close() error { return s.client.Close() }

var _ Store = (*RedisStore)(nil)
