package config

import (
	"context"
	"fmt"
	"portalseguranca/internal/notifier"
	"portalseguranca/internal/repositories/elsearch"
	"portalseguranca/internal/repositories/jsonfile"
	"portalseguranca/internal/repositories/mongo"
	"portalseguranca/internal/repositories/redis"
	"portalseguranca/internal/repositories/sqlserver"
	"portalseguranca/internal/repositories/store"
	"portalseguranca/internal/security"
	"portalseguranca/pkg/logger"
	"time"
)

// App reúne as dependências compartilhadas pelos handlers
type App struct {
	Settings *Settings
	Store    store.Store
	Redis    *redis.RedisInternal // nil: rate limit desligado
	ES       *elsearch.Client     // nil: busca em memória
	Logger   *logger.FileLogger
	Tokens   *security.TokenIssuer
	Notifier notifier.Notifier
	Location *time.Location
	Clock    func() time.Time
}

// Now retorna o instante atual no fuso configurado
func (cfg *App) Now() time.Time {
	clock := cfg.Clock
	if clock == nil {
		clock = time.Now
	}
	now := clock()
	if cfg.Location != nil {
		now = now.In(cfg.Location)
	}
	return now
}

// NewConfig - a function that returns a new App built from the settings
func NewConfig(ctx context.Context, s *Settings) (*App, error) {
	cfg := &App{
		Settings: s,
		Location: s.Location(),
		Clock:    time.Now,
	}

	cfg.Logger = logger.NewLogger(logger.Config{
		Service:       "portal-seguranca-api",
		Version:       "1.0.0",
		Environment:   s.Environment,
		LogDir:        s.LogDir,
		FlushInterval: 2 * time.Second,
		BatchSize:     50,
		BufferSize:    5000,
		LogLevel:      logger.ParseLevel(s.LogLevel),
		EnableCaller:  true,
		Compress:      true,
		Stdout:        !s.IsProduction(),
	})

	tokens, err := security.NewTokenIssuer(s.JWTSecret, s.JWTTTL)
	if err != nil {
		return cfg, err
	}
	cfg.Tokens = tokens

	if err := cfg.newStore(ctx); err != nil {
		return cfg, err
	}

	if s.RedisAddr != "" {
		if err := cfg.newClientRedis(ctx); err != nil {
			return cfg, err
		}
	} else {
		cfg.Logger.Warn("REDIS_ADDR not set, rate limiting by IP disabled")
	}

	if s.ElasticsearchURL != "" {
		if err := cfg.newClientES(ctx); err != nil {
			// busca cai para o modo em memória
			cfg.Logger.Error("elasticsearch unavailable, using in-memory search", err)
		}
	}

	cfg.Notifier = notifier.Noop{}
	if s.SMTPHost != "" {
		cfg.Notifier = notifier.NewSMTPNotifier(s.SMTPHost, s.SMTPPort, s.SMTPUser, s.SMTPPassword, s.SMTPFrom, s.ComiteEmails)
	}

	return cfg, nil
}

// CloseAll - a function that closes all connections
func (cfg *App) CloseAll() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if cfg.Store != nil {
		if err := cfg.Store.Close(ctx); err != nil && cfg.Logger != nil {
			cfg.Logger.Error("closing store", err)
		}
	}

	if cfg.Redis != nil {
		_ = cfg.Redis.Close()
	}

	if cfg.Logger != nil {
		_ = cfg.Logger.Close()
	}
}

// newStore escolhe o backend de persistência por STORE_DRIVER
func (cfg *App) newStore(ctx context.Context) error {
	s := cfg.Settings

	switch s.StoreDriver {
	case "", "json":
		st, err := jsonfile.NewStore(s.DataDir)
		if err != nil {
			return fmt.Errorf("creating json store: %w", err)
		}
		cfg.Store = st

	case "mongo":
		conn, err := mongo.NewMongoInternal(ctx, s.MongoURI, s.MongoDatabase)
		if err != nil {
			return fmt.Errorf("creating mongo store: %w", err)
		}
		cfg.Store = mongo.NewStore(conn)

	case "sqlserver":
		conn, err := sqlserver.NewSQLServerInternal(ctx, s.SQLServerDSN)
		if err != nil {
			return fmt.Errorf("creating sqlserver store: %w", err)
		}
		cfg.Store = sqlserver.NewStore(conn)

	default:
		return fmt.Errorf("unknown STORE_DRIVER %q (json, mongo, sqlserver)", s.StoreDriver)
	}

	cfg.Logger.Info("store ready", map[string]interface{}{"driver": s.StoreDriver})
	return nil
}

// newClientRedis is a function that returns a new Redis client
func (cfg *App) newClientRedis(ctx context.Context) error {
	r, err := redis.NewRedisInternal(ctx, cfg.Settings.RedisAddr)
	if err != nil {
		return fmt.Errorf("creating redis client: %w", err)
	}
	cfg.Redis = r
	return nil
}

func (cfg *App) newClientES(ctx context.Context) error {
	s := cfg.Settings
	es, err := elsearch.NewClient(&elsearch.Config{
		Addresses:          []string{s.ElasticsearchURL},
		Username:           s.ElasticsearchUsername,
		Password:           s.ElasticsearchPassword,
		MaxRetries:         3,
		RetryBackoff:       100 * time.Millisecond,
		Timeout:            5 * time.Second,
		InsecureSkipVerify: !s.IsProduction(),
		IndexName:          s.ElasticsearchIndex,
		SynonymsFile:       s.ElasticsearchSynonyms,
	})
	if err != nil {
		return fmt.Errorf("creating elastic client: %w", err)
	}
	if err := es.EnsureIndex(ctx); err != nil {
		return fmt.Errorf("creating elastic index: %w", err)
	}

	cfg.ES = es
	return nil
}
