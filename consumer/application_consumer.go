package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/AESiR-0/mad-labs-2/logger"
	"github.com/AESiR-0/mad-labs-2/models"
	"github.com/AESiR-0/mad-labs-2/utils"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
)

const cacheTTL = 24 * time.Hour

// ApplicationConsumer fans application_submitted events out to the archive,
// the cache and the search index. Each sink is optional.
type ApplicationConsumer struct {
	repo     models.Repository
	cache    utils.RedisClient
	es       utils.ElasticsearchClient
	index    string
	reader   *kafka.Reader
	logger   logger.Logger
	shutdown chan struct{}
	done     chan struct{}
	started  bool
}

type Sinks struct {
	Repo  models.Repository
	Cache utils.RedisClient
	ES    utils.ElasticsearchClient
	Index string
}

func NewApplicationConsumer(sinks Sinks, log logger.Logger) *ApplicationConsumer {
	if sinks.Index == "" {
		sinks.Index = "applications"
	}
	return &ApplicationConsumer{
		repo:     sinks.Repo,
		cache:    sinks.Cache,
		es:       sinks.ES,
		index:    sinks.Index,
		logger:   log,
		shutdown: make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// WithReader attaches the Kafka reader Start polls.
func (c *ApplicationConsumer) WithReader(brokers []string, topic, groupID string) *ApplicationConsumer {
	c.reader = kafka.NewReader(kafka.ReaderConfig{
		Brokers: brokers,
		Topic:   topic,
		GroupID: groupID,
		MaxWait: 10 * time.Second,
	})
	return c
}

// Start polls the reader in the background until Stop or ctx is done.
func (c *ApplicationConsumer) Start(ctx context.Context) {
	if c.reader == nil {
		c.logger.Warn("Kafka consumer has no reader, not starting", nil)
		return
	}
	c.started = true
	c.logger.Info("starting Kafka consumer", nil)

	go func() {
		defer close(c.done)
		for {
			select {
			case <-c.shutdown:
				return
			case <-ctx.Done():
				return
			default:
				c.processMessage(ctx)
			}
		}
	}()
}

// Stop closes the reader, waits for the poll loop and closes the archive.
func (c *ApplicationConsumer) Stop() {
	close(c.shutdown)
	if c.reader != nil {
		if err := c.reader.Close(); err != nil {
			c.logger.Warn("error closing Kafka reader", map[string]interface{}{"error": err.Error()})
		}
	}
	if c.started {
		<-c.done
	}
	if c.repo != nil {
		if err := c.repo.Close(); err != nil {
			c.logger.Warn("error closing submission archive", map[string]interface{}{"error": err.Error()})
		}
	}
}

func (c *ApplicationConsumer) processMessage(ctx context.Context) {
	msg, err := c.reader.ReadMessage(ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, io.EOF) {
			return
		}
		c.logger.Warn("Kafka read error, will retry", map[string]interface{}{"error": err.Error()})
		select {
		case <-time.After(5 * time.Second):
		case <-c.shutdown:
		case <-ctx.Done():
		}
		return
	}

	if err := c.HandleMessage(ctx, msg.Value); err != nil {
		c.logger.Error("failed to process application event", map[string]interface{}{
			"error":     err.Error(),
			"partition": msg.Partition,
			"offset":    msg.Offset,
		})
	}
}

// HandleMessage processes one raw event. Events already archived are
// skipped, so redelivery is harmless.
func (c *ApplicationConsumer) HandleMessage(ctx context.Context, value []byte) error {
	var event models.ApplicationEvent
	if err := json.Unmarshal(value, &event); err != nil {
		return fmt.Errorf("failed to unmarshal event: %w", err)
	}

	switch event.Event {
	case models.EventApplicationSubmitted:
		return c.handleSubmitted(ctx, event)
	default:
		c.logger.Warn("unknown event type", map[string]interface{}{"event": event.Event})
		return nil
	}
}

func (c *ApplicationConsumer) handleSubmitted(ctx context.Context, event models.ApplicationEvent) error {
	if event.ID == "" {
		return errors.New("event has no id")
	}
	cacheKey := "application:" + event.ID

	if c.cache != nil {
		if _, err := c.cache.GetFromCache(ctx, cacheKey); err == nil {
			c.logger.Debug("application already processed", map[string]interface{}{"id": event.ID})
			return nil
		} else if !errors.Is(err, redis.Nil) {
			c.logger.Warn("cache lookup failed", map[string]interface{}{"id": event.ID, "error": err.Error()})
		}
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	// 1. Archive in PostgreSQL
	if c.repo != nil {
		existing, err := c.repo.GetSubmission(ctx, event.ID)
		switch {
		case err == nil && existing != nil:
			c.logger.Debug("application already archived", map[string]interface{}{"id": event.ID})
			return nil
		case err != nil && !errors.Is(err, models.ErrNotFound):
			return fmt.Errorf("failed to look up submission: %w", err)
		}

		row, err := json.Marshal(event.Row)
		if err != nil {
			return fmt.Errorf("failed to marshal row: %w", err)
		}
		if err := c.repo.CreateSubmission(ctx, &models.Submission{
			SubmissionID: event.ID,
			Role:         string(event.Role),
			Sheet:        event.Sheet,
			Row:          string(row),
			SubmittedAt:  event.SubmittedAt,
		}); err != nil {
			return fmt.Errorf("failed to archive submission: %w", err)
		}
	}

	// 2. Cache in Redis
	if c.cache != nil {
		if err := c.cache.SetToCache(ctx, cacheKey, string(payload), cacheTTL); err != nil {
			c.logger.Warn("failed to cache application", map[string]interface{}{"id": event.ID, "error": err.Error()})
		}
	}

	// 3. Index in Elasticsearch
	if c.es != nil {
		if err := c.es.IndexDocument(ctx, c.index, event.ID, event); err != nil {
			c.logger.Warn("failed to index application", map[string]interface{}{"id": event.ID, "error": err.Error()})
		}
	}

	c.logger.Info("processed application event", map[string]interface{}{
		"id":    event.ID,
		"role":  string(event.Role),
		"sheet": event.Sheet,
	})
	return nil
}
