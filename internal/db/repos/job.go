// Package repos provides access to job, suggestion and optimization
// database operations.
package repos

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/fieldsmith/dispatch/internal/db/models"
	"github.com/fieldsmith/dispatch/internal/schedule"
	"github.com/fieldsmith/dispatch/internal/types"
)

// JobRepository provides access to job-related database operations
type JobRepository struct {
	db *gorm.DB
}

// NewJobRepository creates a new job repository instance
func NewJobRepository(db *gorm.DB) *JobRepository {
	return &JobRepository{db: db}
}

// DateOnly truncates a timestamp to its calendar date in UTC. Scheduled and
// suggested dates are always stored through this so equality queries work on
// both postgres and the sqlite test driver.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Create creates a new job in the database
func (r *JobRepository) Create(ctx context.Context, job *models.Job) error {
	if job.ContractorID == 0 || job.ClientID == 0 {
		return types.NewValidationError("job requires contractor_id and client_id")
	}
	job.ScheduledDate = DateOnly(job.ScheduledDate)
	if job.Status == models.JobStatusUnknown {
		job.Status = models.JobStatusScheduled
	}
	if err := r.db.WithContext(ctx).Create(job).Error; err != nil {
		return types.NewStoreError("create job", err)
	}
	return nil
}

// Update updates an existing job in the database
func (r *JobRepository) Update(ctx context.Context, job *models.Job) error {
	job.ScheduledDate = DateOnly(job.ScheduledDate)
	if err := r.db.WithContext(ctx).Save(job).Error; err != nil {
		return types.NewStoreError("update job", err)
	}
	return nil
}

// GetByID retrieves a job by its ID
func (r *JobRepository) GetByID(ctx context.Context, id uint) (*models.Job, error) {
	var job models.Job
	err := r.db.WithContext(ctx).First(&job, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, types.NewNotFoundError("job", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get job: %w", err)
	}
	return &job, nil
}

// List returns a list of jobs, optionally filtered by status and contractor
func (r *JobRepository) List(ctx context.Context, status models.JobStatus, contractorID uint, opts *models.ListOptions) ([]models.Job, error) {
	var jobs []models.Job
	qry := &models.Job{}

	// If status is unknown, we don't need to filter by status
	if status != models.JobStatusUnknown {
		qry.Status = status
	}
	if contractorID != 0 {
		qry.ContractorID = contractorID
	}

	db := r.db.WithContext(ctx)
	if opts.IncludeDeleted {
		db = db.Unscoped()
	}

	err := db.Model(&models.Job{}).
		Where(qry).
		Limit(opts.Limit).Offset(opts.Offset).
		Order(models.JobCreatedAtField + " DESC").
		Find(&jobs).Error
	return jobs, err
}

// ContractorDaySlots returns the booked intervals for a contractor on one
// calendar date, excluding the job being edited and anything cancelled or
// completed. This is the slot index the shift planner runs against.
func (r *JobRepository) ContractorDaySlots(ctx context.Context, contractorID uint, date time.Time, excludeJobID uint) ([]schedule.Slot, error) {
	var jobs []models.Job
	err := r.db.WithContext(ctx).
		Where("contractor_id = ? AND scheduled_date = ? AND id <> ? AND status NOT IN ?",
			contractorID, DateOnly(date), excludeJobID,
			[]models.JobStatus{models.JobStatusCompleted, models.JobStatusCancelled}).
		Find(&jobs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list contractor day: %w", err)
	}

	slots := make([]schedule.Slot, 0, len(jobs))
	for _, job := range jobs {
		if job.ScheduledTime == nil {
			// Unscheduled-time jobs hold no concrete interval to defend.
			continue
		}
		start, err := schedule.ParseClock(*job.ScheduledTime)
		if err != nil {
			continue
		}
		slots = append(slots, schedule.Slot{Start: start, Duration: job.Duration()})
	}
	return slots, nil
}

// Cancel soft-destroys a job by marking it cancelled. The row survives while
// suggestions reference it.
func (r *JobRepository) Cancel(ctx context.Context, id uint) (*models.Job, error) {
	job, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if job.Status == models.JobStatusCancelled {
		return job, nil
	}
	job.Status = models.JobStatusCancelled
	if err := r.db.WithContext(ctx).Save(job).Error; err != nil {
		return nil, types.NewStoreError("cancel job", err)
	}
	return job, nil
}
