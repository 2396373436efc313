package services

import (
	"context"
	"fmt"
	"time"

	"github.com/fieldsmith/dispatch/internal/db/models"
	"github.com/fieldsmith/dispatch/internal/db/repos"
	"github.com/fieldsmith/dispatch/internal/logger"
	"github.com/fieldsmith/dispatch/internal/notify"
	"github.com/fieldsmith/dispatch/internal/types"
)

// Suggestion coordinates the alternative-time negotiation flow: a
// contractor proposes a new date and arrival window for one job, the
// customer accepts or declines.
type Suggestion struct {
	suggestionRepo *repos.SuggestionRepository
	jobRepo        *repos.JobRepository
	notifier       notify.Notifier
}

// NewSuggestionService creates a new suggestion service instance
func NewSuggestionService(suggestionRepo *repos.SuggestionRepository, jobRepo *repos.JobRepository, notifier notify.Notifier) *Suggestion {
	return &Suggestion{
		suggestionRepo: suggestionRepo,
		jobRepo:        jobRepo,
		notifier:       notifier,
	}
}

// Propose creates a pending alternative-time suggestion for a job and moves
// the job to pending_confirmation. The customer is notified best-effort.
func (s *Suggestion) Propose(ctx context.Context, actor, jobID uint, date time.Time, slot models.TimeSlot) (*models.AlternativeSuggestion, error) {
	if !slot.Valid() {
		return nil, types.NewValidationError("invalid time slot %q", slot)
	}
	if date.IsZero() {
		return nil, types.NewValidationError("suggested_date is required")
	}

	job, err := s.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job.ContractorID != actor {
		return nil, types.NewValidationError("user %d is not the contractor for job %d", actor, jobID)
	}
	if job.Status.IsTerminal() {
		return nil, types.NewValidationError("job %d is %s and cannot be rescheduled", jobID, job.Status)
	}

	suggestion := &models.AlternativeSuggestion{
		JobID:         jobID,
		ContractorID:  actor,
		SuggestedDate: date,
		SuggestedSlot: slot,
	}
	if err := s.suggestionRepo.Create(ctx, suggestion); err != nil {
		return nil, err
	}

	job.Status = models.JobStatusPendingConfirmation
	if err := s.jobRepo.Update(ctx, job); err != nil {
		return nil, err
	}

	s.sendNotification(ctx, job.ClientID,
		"New time proposed",
		fmt.Sprintf("Your contractor proposed %s (%s) for job %d",
			suggestion.SuggestedDate.Format("2006-01-02"), slot, jobID),
		notify.KindRescheduleProposed)

	return suggestion, nil
}

// Respond accepts or declines a suggestion on behalf of the customer. The
// state transition is atomic; the contractor is notified exactly once per
// effective response, and never for rows demoted by the cascade.
func (s *Suggestion) Respond(ctx context.Context, suggestionID uint, accept bool) (*repos.RespondOutcome, error) {
	outcome, err := s.suggestionRepo.Respond(ctx, suggestionID, accept, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	if outcome.Applied {
		verb := "declined"
		if accept {
			verb = "accepted"
		}
		s.sendNotification(ctx, outcome.Suggestion.ContractorID,
			"Reschedule "+verb,
			fmt.Sprintf("The customer %s your proposed time for job %d", verb, outcome.Job.ID),
			notify.KindRescheduleResponse)
	}
	return outcome, nil
}

// Get retrieves a suggestion by ID
func (s *Suggestion) Get(ctx context.Context, id uint) (*models.AlternativeSuggestion, error) {
	return s.suggestionRepo.GetByID(ctx, id)
}

// ListByJob retrieves all suggestions for a job
func (s *Suggestion) ListByJob(ctx context.Context, jobID uint) ([]models.AlternativeSuggestion, error) {
	return s.suggestionRepo.ListByJob(ctx, jobID)
}

// ListByContractor retrieves a contractor's suggestions with pagination
func (s *Suggestion) ListByContractor(ctx context.Context, contractorID uint, opts *models.ListOptions) ([]models.AlternativeSuggestion, error) {
	return s.suggestionRepo.ListByContractor(ctx, contractorID, opts)
}

// sendNotification delivers best-effort. Failures are logged and swallowed;
// the state transition already committed and must not be rolled back.
func (s *Suggestion) sendNotification(ctx context.Context, userID uint, title, message, kind string) {
	ctx, cancel := context.WithTimeout(ctx, notify.DefaultTimeout)
	defer cancel()
	if err := s.notifier.Notify(ctx, userID, title, message, kind); err != nil {
		logger.Warnf("notification failed for user %d: %v", userID, err)
	}
}
