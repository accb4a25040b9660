package pg

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Artexxx/hr-onboarding/library/yamlenv"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

type PostgresConfig struct {
	Conn     *yamlenv.Env[string] `yaml:"conn"`
	MaxConns *yamlenv.Env[int32]  `yaml:"max_conns"`
}

type PG struct {
	pool *pgxpool.Pool
	log  zerolog.Logger
}

func NewPGWithConfig(ctx context.Context, cfg PostgresConfig, log zerolog.Logger) (*PG, error) {
	if cfg.Conn == nil || cfg.Conn.Value == "" {
		return nil, errors.New("postgres conn is not set")
	}

	poolCfg, err := pgxpool.ParseConfig(cfg.Conn.Value)
	if err != nil {
		return nil, fmt.Errorf("pgxpool.ParseConfig: %w", err)
	}
	if cfg.MaxConns != nil && cfg.MaxConns.Value > 0 {
		poolCfg.MaxConns = cfg.MaxConns.Value
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("pgxpool.NewWithConfig: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pool.Ping: %w", err)
	}

	log.Info().Int32("max_conns", poolCfg.MaxConns).Msg("postgres pool ready")

	return &PG{pool: pool, log: log}, nil
}

func (p *PG) Pool() *pgxpool.Pool {
	return p.pool
}

func (p *PG) Close() {
	if p == nil || p.pool == nil {
		return
	}
	p.pool.Close()
	p.log.Info().Msg("postgres pool closed")
}
