package repos

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/fieldsmith/dispatch/internal/db/models"
	"github.com/fieldsmith/dispatch/internal/types"
)

// SuggestionRepository handles database operations for alternative-time
// suggestions, including the transactional accept/decline state machine.
type SuggestionRepository struct {
	db *gorm.DB
}

// NewSuggestionRepository creates a new instance of SuggestionRepository
func NewSuggestionRepository(db *gorm.DB) *SuggestionRepository {
	return &SuggestionRepository{db: db}
}

// Create creates a new pending suggestion in the database
func (r *SuggestionRepository) Create(ctx context.Context, suggestion *models.AlternativeSuggestion) error {
	suggestion.SuggestedDate = DateOnly(suggestion.SuggestedDate)
	suggestion.Status = models.SuggestionStatusPending
	if err := r.db.WithContext(ctx).Create(suggestion).Error; err != nil {
		return types.NewStoreError("create suggestion", err)
	}
	return nil
}

// GetByID retrieves a suggestion by its ID
func (r *SuggestionRepository) GetByID(ctx context.Context, id uint) (*models.AlternativeSuggestion, error) {
	var suggestion models.AlternativeSuggestion
	err := r.db.WithContext(ctx).First(&suggestion, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, types.NewNotFoundError("suggestion", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get suggestion: %w", err)
	}
	return &suggestion, nil
}

// ListByJob retrieves all suggestions for a job, newest first
func (r *SuggestionRepository) ListByJob(ctx context.Context, jobID uint) ([]models.AlternativeSuggestion, error) {
	var suggestions []models.AlternativeSuggestion
	err := r.db.WithContext(ctx).
		Where(&models.AlternativeSuggestion{JobID: jobID}).
		Order("created_at DESC").
		Find(&suggestions).Error
	return suggestions, err
}

// ListByContractor retrieves suggestions created by a contractor with pagination
func (r *SuggestionRepository) ListByContractor(ctx context.Context, contractorID uint, opts *models.ListOptions) ([]models.AlternativeSuggestion, error) {
	var suggestions []models.AlternativeSuggestion
	err := r.db.WithContext(ctx).
		Where(&models.AlternativeSuggestion{ContractorID: contractorID}).
		Limit(opts.Limit).Offset(opts.Offset).
		Order("created_at DESC").
		Find(&suggestions).Error
	return suggestions, err
}

// RespondOutcome is the full state touched by a response, returned so the
// caller can reconcile optimistic local state.
type RespondOutcome struct {
	Suggestion *models.AlternativeSuggestion
	Job        *models.Job
	// Applied is false when the suggestion was already terminal and the
	// call was an idempotent no-op.
	Applied bool
	// Demoted is the number of competing pending suggestions cascaded to
	// declined by an accept.
	Demoted int
}

// Respond accepts or declines a suggestion as a single atomic unit. Accepting
// writes the job's schedule from the suggestion, marks the job scheduled, and
// demotes every other pending suggestion for the same job to declined.
// Responding to an already-terminal suggestion is an idempotent no-op.
func (r *SuggestionRepository) Respond(ctx context.Context, id uint, accept bool, now time.Time) (*RespondOutcome, error) {
	outcome := &RespondOutcome{}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var suggestion models.AlternativeSuggestion
		if err := tx.First(&suggestion, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return types.NewNotFoundError("suggestion", id)
			}
			return err
		}

		// Lock the job before re-reading the suggestion: competing
		// responses for the same job serialize on this row, which keeps
		// the one-accepted-suggestion invariant under concurrency.
		var job models.Job
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&job, suggestion.JobID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return types.NewNotFoundError("job", suggestion.JobID)
			}
			return err
		}

		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&suggestion, id).Error; err != nil {
			return err
		}
		if suggestion.Status.IsTerminal() {
			// A competing response won; report the existing state.
			outcome.Suggestion = &suggestion
			outcome.Job = &job
			return nil
		}

		suggestion.RespondedAt = &now
		if !accept {
			suggestion.Status = models.SuggestionStatusDeclined
			if err := tx.Save(&suggestion).Error; err != nil {
				return err
			}
			outcome.Suggestion = &suggestion
			outcome.Job = &job
			outcome.Applied = true
			return nil
		}

		suggestion.Status = models.SuggestionStatusAccepted
		if err := tx.Save(&suggestion).Error; err != nil {
			return err
		}

		clock := suggestion.SuggestedSlot.StartClock()
		job.ScheduledDate = suggestion.SuggestedDate
		job.ScheduledTime = &clock
		job.Status = models.JobStatusScheduled
		if err := tx.Save(&job).Error; err != nil {
			return err
		}

		res := tx.Model(&models.AlternativeSuggestion{}).
			Where("job_id = ? AND id <> ? AND status = ?",
				suggestion.JobID, suggestion.ID, models.SuggestionStatusPending).
			Updates(map[string]interface{}{
				"status":       models.SuggestionStatusDeclined,
				"responded_at": now,
			})
		if res.Error != nil {
			return res.Error
		}

		outcome.Suggestion = &suggestion
		outcome.Job = &job
		outcome.Applied = true
		outcome.Demoted = int(res.RowsAffected)
		return nil
	})
	if err != nil {
		if errors.Is(err, types.ErrNotFound) || errors.Is(err, types.ErrValidation) {
			return nil, err
		}
		return nil, types.NewStoreError("respond to suggestion", err)
	}
	return outcome, nil
}

// AcceptedCountByJob returns how many accepted suggestions a job has.
// The invariant holds this at <= 1.
func (r *SuggestionRepository) AcceptedCountByJob(ctx context.Context, jobID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.AlternativeSuggestion{}).
		Where("job_id = ? AND status = ?", jobID, models.SuggestionStatusAccepted).
		Count(&count).Error
	return count, err
}
