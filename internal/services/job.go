// Package services provides business logic for jobs, reschedule
// negotiation and route optimizations. Every operation takes the acting
// user explicitly; there is no ambient caller state.
package services

import (
	"context"
	"time"

	"github.com/fieldsmith/dispatch/internal/db/models"
	"github.com/fieldsmith/dispatch/internal/db/repos"
	"github.com/fieldsmith/dispatch/internal/schedule"
	"github.com/fieldsmith/dispatch/internal/types"
)

// Job provides business logic for job operations
type Job struct {
	jobRepo *repos.JobRepository
}

// NewJobService creates a new job service instance
func NewJobService(jobRepo *repos.JobRepository) *Job {
	return &Job{jobRepo: jobRepo}
}

// Create books a new job. When the job carries a concrete start time it is
// planned against the contractor's day first, so a booking can come back
// shifted.
func (s *Job) Create(ctx context.Context, actor uint, job *models.Job) (*models.Job, schedule.ShiftResult, error) {
	var res schedule.ShiftResult

	if job.ContractorID == 0 {
		job.ContractorID = actor
	}
	if job.ScheduledDate.IsZero() {
		return nil, res, types.NewValidationError("scheduled_date is required")
	}

	if job.ScheduledTime != nil {
		desired, err := schedule.ParseClock(*job.ScheduledTime)
		if err != nil {
			return nil, res, types.NewValidationError("invalid scheduled_time: %v", err)
		}
		slots, err := s.jobRepo.ContractorDaySlots(ctx, job.ContractorID, job.ScheduledDate, 0)
		if err != nil {
			return nil, res, types.NewStoreError("load contractor day", err)
		}
		res = schedule.PlanShift(desired, job.Duration(), slots, schedule.DefaultEndOfDayMinutes)
		clock := schedule.FormatClock(res.NewStart)
		job.ScheduledTime = &clock
	}

	if err := s.jobRepo.Create(ctx, job); err != nil {
		return nil, res, err
	}
	return job, res, nil
}

// Get retrieves a job by ID
func (s *Job) Get(ctx context.Context, id uint) (*models.Job, error) {
	return s.jobRepo.GetByID(ctx, id)
}

// List retrieves a paginated list of jobs
func (s *Job) List(ctx context.Context, status models.JobStatus, contractorID uint, opts *models.ListOptions) ([]models.Job, error) {
	return s.jobRepo.List(ctx, status, contractorID, opts)
}

// Cancel soft-destroys a job
func (s *Job) Cancel(ctx context.Context, actor, id uint) (*models.Job, error) {
	job, err := s.jobRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if job.ContractorID != actor {
		return nil, types.NewValidationError("user %d is not the contractor for job %d", actor, id)
	}
	return s.jobRepo.Cancel(ctx, id)
}

// PlanShift runs the shift planner for a contractor-day without mutating
// anything. Callers preview where a desired start would land.
func (s *Job) PlanShift(ctx context.Context, contractorID uint, date time.Time, desired, duration int, excludeJobID uint) (schedule.ShiftResult, error) {
	if duration <= 0 {
		duration = models.DefaultJobDurationMinutes
	}
	slots, err := s.jobRepo.ContractorDaySlots(ctx, contractorID, date, excludeJobID)
	if err != nil {
		return schedule.ShiftResult{}, types.NewStoreError("load contractor day", err)
	}
	return schedule.PlanShift(desired, duration, slots, schedule.DefaultEndOfDayMinutes), nil
}

// SetSchedule applies a direct contractor edit to a job's date and time.
// The edit always passes through the conflict detector: a conflicting start
// is shifted to the earliest free one and reported in the result.
func (s *Job) SetSchedule(ctx context.Context, actor, jobID uint, date time.Time, clock string) (*models.Job, schedule.ShiftResult, error) {
	var res schedule.ShiftResult

	job, err := s.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return nil, res, err
	}
	if job.ContractorID != actor {
		return nil, res, types.NewValidationError("user %d is not the contractor for job %d", actor, jobID)
	}
	if job.Status.IsTerminal() {
		return nil, res, types.NewValidationError("job %d is %s and cannot be rescheduled", jobID, job.Status)
	}

	desired, err := schedule.ParseClock(clock)
	if err != nil {
		return nil, res, types.NewValidationError("invalid scheduled_time: %v", err)
	}

	slots, err := s.jobRepo.ContractorDaySlots(ctx, job.ContractorID, date, job.ID)
	if err != nil {
		return nil, res, types.NewStoreError("load contractor day", err)
	}

	res = schedule.PlanShift(desired, job.Duration(), slots, schedule.DefaultEndOfDayMinutes)
	newClock := schedule.FormatClock(res.NewStart)

	job.ScheduledDate = date
	job.ScheduledTime = &newClock
	job.Status = models.JobStatusScheduled
	if err := s.jobRepo.Update(ctx, job); err != nil {
		return nil, res, err
	}
	return job, res, nil
}
