// Package submission persists completed applications: one row per submitted
// role, appended to that role's sheet after making sure the sheet exists.
package submission

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/AESiR-0/mad-labs-2/logger"
	"github.com/AESiR-0/mad-labs-2/models"
	"github.com/AESiR-0/mad-labs-2/monitoring"
	"github.com/AESiR-0/mad-labs-2/sheets"
	"github.com/AESiR-0/mad-labs-2/utils"
	"github.com/google/uuid"
)

// DateLayout renders the submission date column.
const DateLayout = "January 2, 2006"

// ErrNoApplicationData is returned when a request carries none of
// kidData, parentData or mentorData.
var ErrNoApplicationData = errors.New("no application data provided")

// Service appends applications to the sheet store. There is no
// deduplication: submitting the same payload twice appends two rows.
type Service struct {
	store    sheets.Store
	producer utils.KafkaProducer
	topic    string
	logger   logger.Logger
	now      func() time.Time
}

type Option func(*Service)

// WithProducer publishes an application_submitted event per appended row.
func WithProducer(producer utils.KafkaProducer, topic string) Option {
	return func(s *Service) {
		s.producer = producer
		s.topic = topic
	}
}

// WithClock overrides the clock used for the submission date.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func NewService(store sheets.Store, log logger.Logger, opts ...Option) *Service {
	s := &Service{
		store:  store,
		logger: log,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Submit writes one row per present role, in kid, parent, mentor order.
// A failure stops the request; rows already appended stay appended.
func (s *Service) Submit(ctx context.Context, req *models.ApplicationRequest) error {
	entries := req.Entries()
	if len(entries) == 0 {
		return ErrNoApplicationData
	}

	submittedAt := s.now()
	date := submittedAt.Format(DateLayout)

	events := make([]models.ApplicationEvent, 0, len(entries))
	for _, entry := range entries {
		sheet, err := sheets.ForRole(entry.Role)
		if err != nil {
			return err
		}

		row := append(append([]string(nil), entry.Values...), date)
		if err := s.write(ctx, sheet, row); err != nil {
			monitoring.SubmissionsTotal.WithLabelValues(string(entry.Role), "error").Inc()
			return fmt.Errorf("append to %s: %w", sheet.Title, err)
		}
		monitoring.SubmissionsTotal.WithLabelValues(string(entry.Role), "appended").Inc()

		events = append(events, models.ApplicationEvent{
			Event:       models.EventApplicationSubmitted,
			ID:          uuid.NewString(),
			Role:        entry.Role,
			Sheet:       sheet.Title,
			Row:         row,
			SubmittedAt: submittedAt,
		})
	}

	s.publish(ctx, events)
	return nil
}

func (s *Service) write(ctx context.Context, sheet sheets.Sheet, row []string) error {
	start := time.Now()
	defer func() {
		monitoring.AppendDuration.WithLabelValues(sheet.Title).Observe(time.Since(start).Seconds())
	}()

	created, err := s.store.EnsureSheet(ctx, sheet)
	if err != nil {
		return fmt.Errorf("ensure sheet: %w", err)
	}
	if created {
		monitoring.SheetsCreated.WithLabelValues(sheet.Title).Inc()
		s.logger.Info("created sheet", map[string]interface{}{"sheet": sheet.Title})
	}

	return s.store.AppendRow(ctx, sheet, row)
}

// publish is best effort: the rows are already written, so failures are
// only logged.
func (s *Service) publish(ctx context.Context, events []models.ApplicationEvent) {
	if s.producer == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()

	for _, event := range events {
		payload, err := json.Marshal(event)
		if err != nil {
			s.logger.Error("failed to marshal application event", map[string]interface{}{"error": err})
			continue
		}
		if err := s.producer.SendMessage(ctx, s.topic, []byte(event.ID), payload); err != nil {
			s.logger.Warn("failed to publish application event", map[string]interface{}{
				"error": err,
				"id":    event.ID,
				"sheet": event.Sheet,
			})
		}
	}
}
