package bootstrap

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"studycompanion/internal/ai"
	"studycompanion/internal/config"
	"studycompanion/internal/logger"
	mysqlClient "studycompanion/internal/platform/mysql"
	rabbitmqClient "studycompanion/internal/platform/rabbitmq"
	redisClient "studycompanion/internal/platform/redis"
	sqliteClient "studycompanion/internal/platform/sqlite"
	"studycompanion/internal/repository"
	"studycompanion/internal/worker"
)

// App holds the process-wide dependencies. Only the database handle is mandatory; Redis,
// RabbitMQ and the AI assistant are nil when they could not be set up at startup.
type App struct {
	Config         *config.Config
	DB             *gorm.DB
	Redis          *redis.Client
	CacheEnabled   bool
	MQConn         *amqp.Connection
	ActivityWorker *worker.ActivityPersistWorker
	Assistant      *ai.Assistant

	StartedAt time.Time

	schemaMu    sync.Mutex
	schemaReady bool
}

func New(ctx context.Context) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config failed: %w", err)
	}
	logger.Setup(cfg.Log.Level, cfg.Log.Format)

	db, err := openDatabase(cfg)
	if err != nil {
		return nil, err
	}

	a := &App{
		Config:    cfg,
		DB:        db,
		StartedAt: time.Now(),
	}

	if err := a.EnsureSchema(ctx); err != nil {
		log.Warn().Err(err).Str("driver", cfg.Database.Driver).Msg("database unavailable, schema migration deferred")
	}

	a.Redis = redisClient.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err := redisClient.Ping(ctx, a.Redis); err != nil {
		log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("redis unavailable, artifact cache disabled")
	} else {
		a.CacheEnabled = true
	}

	mqConn, err := rabbitmqClient.New(ctx, cfg.RabbitMQ.URL)
	if err != nil {
		log.Warn().Err(err).Msg("rabbitmq unavailable, activity events written directly")
	} else {
		a.MQConn = mqConn
		activityWorker := worker.NewActivityPersistWorker(mqConn, repository.NewActivityRepository(db), cfg.RabbitMQ.ActivityQueue)
		if err := activityWorker.Start(ctx); err != nil {
			log.Warn().Err(err).Msg("start activity worker failed, activity events written directly")
			_ = mqConn.Close()
			a.MQConn = nil
		} else {
			a.ActivityWorker = activityWorker
		}
	}

	assistant, err := ai.New(ai.Config{
		BaseURL:        cfg.LLM.BaseURL,
		APIKey:         cfg.LLM.APIKey,
		Model:          cfg.LLM.Model,
		Temperature:    cfg.LLM.Temperature,
		RequestsPerSec: cfg.LLM.RequestsPerSec,
		Burst:          cfg.LLM.Burst,
		Timeout:        time.Duration(cfg.LLM.TimeoutSeconds) * time.Second,
	})
	if err != nil {
		log.Warn().Err(err).Msg("ai assistant unavailable, generation endpoints will return 503")
	} else {
		a.Assistant = assistant
	}

	return a, nil
}

func openDatabase(cfg *config.Config) (*gorm.DB, error) {
	switch driver := strings.ToLower(cfg.Database.Driver); driver {
	case "", "mysql":
		return mysqlClient.New(cfg.MySQLDSN())
	case "sqlite":
		return sqliteClient.New(cfg.Database.SQLitePath)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
}

// PingDatabase checks that the database answers within a short deadline.
func (a *App) PingDatabase(ctx context.Context) error {
	sqlDB, err := a.DB.DB()
	if err != nil {
		return fmt.Errorf("get sql db failed: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		return fmt.Errorf("ping database failed: %w", err)
	}
	return nil
}

// EnsureSchema migrates the schema once the database is reachable. It is called at startup and
// again from the health probe until it succeeds.
func (a *App) EnsureSchema(ctx context.Context) error {
	a.schemaMu.Lock()
	defer a.schemaMu.Unlock()
	if a.schemaReady {
		return nil
	}
	if err := a.PingDatabase(ctx); err != nil {
		return err
	}
	if err := repository.AutoMigrate(a.DB.WithContext(ctx)); err != nil {
		return err
	}
	a.schemaReady = true
	log.Info().Msg("database schema ready")
	return nil
}

func (a *App) Close() error {
	var closeErr error
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			closeErr = err
		}
	}
	if a.ActivityWorker != nil {
		a.ActivityWorker.Close()
	}
	if a.MQConn != nil {
		if err := a.MQConn.Close(); err != nil {
			closeErr = err
		}
	}
	if a.DB != nil {
		sqlDB, err := a.DB.DB()
		if err == nil {
			if err := sqlDB.Close(); err != nil {
				closeErr = err
			}
		}
	}
	return closeErr
}
