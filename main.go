package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/AESiR-0/mad-labs-2/config"
	"github.com/AESiR-0/mad-labs-2/consumer"
	"github.com/AESiR-0/mad-labs-2/handlers"
	"github.com/AESiR-0/mad-labs-2/logger"
	"github.com/AESiR-0/mad-labs-2/models"
	"github.com/AESiR-0/mad-labs-2/monitoring"
	"github.com/AESiR-0/mad-labs-2/sheets"
	"github.com/AESiR-0/mad-labs-2/submission"
	"github.com/AESiR-0/mad-labs-2/utils"
	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.NewStructured(cfg.Logging.Level, cfg.Logging.Format)

	if err := utils.InitSentry(cfg.Sentry.DSN, cfg.App.Environment, cfg.App.Version, cfg.Sentry.TracesSampleRate); err != nil {
		log.Warn("Sentry initialization failed", map[string]interface{}{"error": err.Error()})
	}
	defer sentry.Flush(2 * time.Second)

	monitoring.Init()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("server stopped with error", map[string]interface{}{"error": err.Error()})
		sentry.Flush(2 * time.Second)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, log logger.Logger) error {
	store, err := newStore(ctx, cfg.Sheets)
	if err != nil {
		return err
	}
	log.Info("sheet store ready", map[string]interface{}{"backend": cfg.Sheets.Backend})

	var redisClient utils.RedisClient
	if cfg.Redis.Enabled {
		redisClient, err = connectRedis(cfg.Redis, log)
		if err != nil {
			return err
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				log.Warn("error closing Redis connection", map[string]interface{}{"error": err.Error()})
			}
		}()
	}

	var opts []submission.Option
	if cfg.Kafka.Enabled {
		producer, err := utils.NewKafkaProducer(cfg.Kafka.Brokers)
		if err != nil {
			return err
		}
		defer producer.Close()
		opts = append(opts, submission.WithProducer(producer, cfg.Kafka.Topic))
	}

	if cfg.Kafka.Consume {
		c, err := newConsumer(cfg, redisClient, log)
		if err != nil {
			return err
		}
		c.Start(ctx)
		defer c.Stop()
	}

	service := submission.NewService(store, log, opts...)

	if cfg.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := handlers.NewRouter(
		handlers.NewApplicationHandler(service, log),
		handlers.NewHealthHandler(redisClient),
		log,
	)

	srv := &http.Server{
		Addr:              ":" + cfg.App.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server is running", map[string]interface{}{"port": cfg.App.Port})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down", nil)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func newStore(ctx context.Context, cfg config.SheetsConfig) (sheets.Store, error) {
	switch cfg.Backend {
	case config.BackendGoogle:
		return sheets.NewGoogleStore(ctx, cfg.SpreadsheetID, cfg.ClientEmail, cfg.PrivateKey)
	case config.BackendWorkbook:
		return sheets.NewWorkbookStore(cfg.WorkbookPath)
	case config.BackendMemory:
		return sheets.NewMemoryStore(), nil
	}
	return nil, fmt.Errorf("unknown sheets backend %q", cfg.Backend)
}

// connectRedis retries while the cache container comes up.
func connectRedis(cfg config.RedisConfig, log logger.Logger) (utils.RedisClient, error) {
	const maxRetries = 5
	retryDelay := 3 * time.Second

	var lastErr error
	for i := 0; i < maxRetries; i++ {
		client, err := utils.NewRedisClient(cfg.Address, cfg.Password, cfg.DB)
		if err == nil {
			return client, nil
		}
		lastErr = err
		log.Warn("failed to connect to Redis", map[string]interface{}{"attempt": i + 1, "error": err.Error()})
		if i < maxRetries-1 {
			time.Sleep(retryDelay)
		}
	}
	return nil, fmt.Errorf("failed to initialize Redis after %d attempts: %w", maxRetries, lastErr)
}

func newConsumer(cfg *config.Config, cache utils.RedisClient, log logger.Logger) (*consumer.ApplicationConsumer, error) {
	sinks := consumer.Sinks{Cache: cache, Index: cfg.Elasticsearch.Index}

	if cfg.Postgres.Enabled {
		repo, err := models.NewPostgresRepository(cfg.Postgres.GetDSN())
		if err != nil {
			return nil, err
		}
		sinks.Repo = repo
	}

	if cfg.Elasticsearch.Enabled {
		es, err := utils.NewElasticsearchClient(cfg.Elasticsearch.URL)
		if err != nil {
			return nil, err
		}
		if err := es.EnsureIndex(context.Background(), cfg.Elasticsearch.Index); err != nil {
			log.Warn("failed to ensure Elasticsearch index", map[string]interface{}{
				"index": cfg.Elasticsearch.Index,
				"error": err.Error(),
			})
		}
		sinks.ES = es
	}

	c := consumer.NewApplicationConsumer(sinks, log.WithFields(map[string]interface{}{"component": "consumer"}))
	return c.WithReader(cfg.Kafka.Brokers, cfg.Kafka.Topic, cfg.Kafka.GroupID), nil
}
