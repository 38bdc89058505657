package app

import (
	"context"
	"fmt"
	"io"

	"github.com/OptimisticTrousers/word-reminder-sub001/db"
	"github.com/OptimisticTrousers/word-reminder-sub001/internal"
	"github.com/OptimisticTrousers/word-reminder-sub001/internal/service"
	"github.com/OptimisticTrousers/word-reminder-sub001/internal/store"
	"github.com/OptimisticTrousers/word-reminder-sub001/pkg/security"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// NewDeps opens the database and builds every service from the loaded
// config. The returned closer releases the caches.
func NewDeps(ctx context.Context) (*internal.Deps, io.Closer, error) {
	conn, err := db.New(db.Opts{
		Driver:   viper.GetString("db.driver"),
		DSN:      viper.GetString("db.dsn"),
		LogLevel: viper.GetString("db.log_level"),
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize database, %w", err)
	}

	cache, closer, err := newLookupCache(ctx)
	if err != nil {
		return nil, nil, err
	}

	s := store.New(conn)
	lookup := service.NewLookupClient(service.LookupOpts{
		BaseURL: viper.GetString("lookup.base_url"),
		Timeout: viper.GetDuration("lookup.timeout"),
		Cache:   cache,
	})

	d := &internal.Deps{
		DB:            conn,
		Store:         s,
		Passwords:     security.NewPasswordHasher(),
		Importer:      newImporter(s, lookup),
		Composer:      service.NewComposer(s),
		MaxUploadSize: viper.GetInt64("upload.max_size"),
	}

	return d, closer, nil
}

// newImporter attaches the Wikimedia image client unless images.enabled is
// off
func newImporter(s *store.Store, lookup service.Dictionary) *service.Importer {
	imp := service.NewImporter(s, lookup, viper.GetInt("import.workers"))
	if !viper.GetBool("images.enabled") {
		return imp
	}

	return imp.WithImages(service.NewImageClient(service.ImagesOpts{
		BaseURL: viper.GetString("images.base_url"),
		Timeout: viper.GetDuration("images.timeout"),
	}))
}

// newLookupCache uses redis when an address is configured and an in-memory
// cache otherwise
func newLookupCache(ctx context.Context) (service.LookupCache, io.Closer, error) {
	ttl := viper.GetDuration("lookup.cache_ttl")

	addr := viper.GetString("redis.addr")
	if addr == "" {
		c := service.NewMemoryLookupCache(ttl)
		return c, c, nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: viper.GetString("redis.password"),
		DB:       viper.GetInt("redis.db"),
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, nil, fmt.Errorf("failed to connect to redis, %w", err)
	}

	zap.L().Info("Caching definition lookups in redis", zap.String("addr", addr))

	return service.NewRedisLookupCache(rdb, ttl), rdb, nil
}
