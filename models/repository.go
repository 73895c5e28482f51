package models

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var ErrNotFound = errors.New("record not found")

// Submission is the archived copy of one appended sheet row.
type Submission struct {
	gorm.Model
	SubmissionID string    `gorm:"not null;uniqueIndex"`
	Role         string    `gorm:"not null"`
	Sheet        string    `gorm:"not null"`
	Row          string    `gorm:"type:text;not null"`
	SubmittedAt  time.Time `gorm:"not null"`
}

type Repository interface {
	CreateSubmission(ctx context.Context, submission *Submission) error
	GetSubmission(ctx context.Context, submissionID string) (*Submission, error)
	Close() error
}

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgresRepository(dsn string) (*PostgresRepository, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.AutoMigrate(&Submission{}); err != nil {
		return nil, fmt.Errorf("failed to auto-migrate database: %w", err)
	}

	return &PostgresRepository{db: db}, nil
}

// NewRepositoryFromDB wraps an already opened connection without migrating.
func NewRepositoryFromDB(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) CreateSubmission(ctx context.Context, submission *Submission) error {
	return r.db.WithContext(ctx).Create(submission).Error
}

func (r *PostgresRepository) GetSubmission(ctx context.Context, submissionID string) (*Submission, error) {
	var submission Submission
	err := r.db.WithContext(ctx).Where("submission_id = ?", submissionID).First(&submission).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &submission, nil
}

func (r *PostgresRepository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
