package favorites

import (
	"context"

	errs "github.com/matzehuels/shelfmount/pkg/errors"
)

// Backend names.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendMongo = "mongo"
)

// Config selects and configures a backend. It is the [storage] section of
// the configuration file.
type Config struct {
	Backend string      `toml:"backend"`
	Path    string      `toml:"path"`
	Redis   RedisConfig `toml:"redis"`
	Mongo   MongoConfig `toml:"mongo"`
}

// Open returns the configured store. An empty backend means file.
func Open(ctx context.Context, cfg Config) (Store, error) {
	switch cfg.Backend {
	case "", BackendFile:
		return NewFileStore(cfg.Path)
	case BackendRedis:
		return NewRedisStore(ctx, cfg.Redis)
	case BackendMongo:
		return NewMongoStore(ctx, cfg.Mongo)
	default:
		return nil, errs.New(errs.ErrCodeInvalidConfig, "unknown storage backend %q (want file, redis or mongo)", cfg.Backend)
	}
}
