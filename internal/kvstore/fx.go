package kvstore

import (
	"context"
	"fmt"

	redis "github.com/redis/go-redis/v9"
	"github.com/smallbiznis/fatura/internal/clock"
	"github.com/smallbiznis/fatura/internal/config"
	"github.com/smallbiznis/fatura/internal/migration"
	"github.com/smallbiznis/fatura/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("kvstore",
	fx.Provide(NewStore),
)

type Params struct {
	fx.In

	Lifecycle fx.Lifecycle
	Config    config.Config
	Clock     clock.Clock
	Log       *zap.Logger
}

// NewStore opens the backend named by STORE_BACKEND.
func NewStore(p Params) (Store, error) {
	log := p.Log.Named("kvstore")

	switch p.Config.StoreBackend {
	case config.StoreMemory:
		log.Info("using in-memory store; defaults and templates will not survive restart")
		return NewMemoryStore(), nil

	case config.StoreRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     p.Config.RedisAddr,
			Password: p.Config.RedisPassword,
			DB:       p.Config.RedisDB,
		})
		p.Lifecycle.Append(fx.Hook{
			OnStart: func(ctx context.Context) error {
				return client.Ping(ctx).Err()
			},
			OnStop: func(context.Context) error {
				return client.Close()
			},
		})
		log.Info("using redis store", zap.String("addr", p.Config.RedisAddr))
		return NewRedisStore(client, p.Config.StoreKeyPrefix), nil

	case config.StoreSQL:
		conn, err := db.Open(db.FromAppConfig(p.Config), log)
		if err != nil {
			return nil, err
		}
		if err := migration.Apply(conn, &Entry{}); err != nil {
			return nil, fmt.Errorf("migrate kv store: %w", err)
		}
		p.Lifecycle.Append(fx.Hook{
			OnStop: func(context.Context) error {
				sqlDB, err := conn.DB()
				if err != nil {
					return err
				}
				return sqlDB.Close()
			},
		})
		log.Info("using sql store", zap.String("dialect", conn.Dialector.Name()))
		return NewGormStore(conn, p.Clock.Now), nil

	default:
		return nil, fmt.Errorf("unsupported store backend %q", p.Config.StoreBackend)
	}
}
