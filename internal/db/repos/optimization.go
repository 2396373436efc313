package repos

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/fieldsmith/dispatch/internal/db/models"
	"github.com/fieldsmith/dispatch/internal/types"
)

// OptimizationRepository handles database operations for route optimizations
// and their per-job suggestions, including the batch apply transaction.
type OptimizationRepository struct {
	db *gorm.DB
}

// NewOptimizationRepository creates a new instance of OptimizationRepository
func NewOptimizationRepository(db *gorm.DB) *OptimizationRepository {
	return &OptimizationRepository{db: db}
}

// activeStatuses are the non-terminal optimization states.
var activeStatuses = []models.OptimizationStatus{
	models.OptimizationStatusPendingApproval,
	models.OptimizationStatusAwaitingCustomer,
}

// CreateWithSuggestions inserts an optimization batch produced by the
// external resequencer. Every referenced job must exist, must not have opted
// out of resequencing, and must not already sit in another active
// optimization.
func (r *OptimizationRepository) CreateWithSuggestions(ctx context.Context, opt *models.RouteOptimization) error {
	if len(opt.Suggestions) == 0 {
		return types.NewValidationError("optimization requires at least one suggestion")
	}

	opt.OptimizationDate = DateOnly(opt.OptimizationDate)
	opt.Status = models.OptimizationStatusPendingApproval

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range opt.Suggestions {
			s := &opt.Suggestions[i]
			s.CurrentDate = DateOnly(s.CurrentDate)
			s.SuggestedDate = DateOnly(s.SuggestedDate)
			s.CustomerApprovalStatus = models.ApprovalStatusPending

			var job models.Job
			if err := tx.First(&job, s.JobID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return types.NewNotFoundError("job", s.JobID)
				}
				return err
			}
			if job.RouteOptimizationLocked {
				return types.NewValidationError("job %d opted out of route optimization", s.JobID)
			}
			active, err := r.activeOptimizationsForJob(tx, s.JobID, 0)
			if err != nil {
				return err
			}
			if active > 0 {
				return types.NewValidationError("job %d already belongs to an active optimization", s.JobID)
			}
		}
		return tx.Create(opt).Error
	})
	if err != nil {
		if errors.Is(err, types.ErrNotFound) || errors.Is(err, types.ErrValidation) {
			return err
		}
		return types.NewStoreError("create optimization", err)
	}
	return nil
}

// GetByID retrieves an optimization with its suggestions preloaded
func (r *OptimizationRepository) GetByID(ctx context.Context, id uint) (*models.RouteOptimization, error) {
	var opt models.RouteOptimization
	err := r.db.WithContext(ctx).Preload("Suggestions").First(&opt, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, types.NewNotFoundError("optimization", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get optimization: %w", err)
	}
	return &opt, nil
}

// GetSuggestionByID retrieves a single optimization suggestion row
func (r *OptimizationRepository) GetSuggestionByID(ctx context.Context, id uint) (*models.RouteOptimizationSuggestion, error) {
	var s models.RouteOptimizationSuggestion
	err := r.db.WithContext(ctx).First(&s, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, types.NewNotFoundError("optimization suggestion", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get optimization suggestion: %w", err)
	}
	return &s, nil
}

// ListByContractor retrieves a contractor's optimizations with pagination
func (r *OptimizationRepository) ListByContractor(ctx context.Context, contractorID uint, opts *models.ListOptions) ([]models.RouteOptimization, error) {
	var optimizations []models.RouteOptimization
	err := r.db.WithContext(ctx).Preload("Suggestions").
		Where(&models.RouteOptimization{ContractorID: contractorID}).
		Limit(opts.Limit).Offset(opts.Offset).
		Order("created_at DESC").
		Find(&optimizations).Error
	return optimizations, err
}

// TransitionOutcome reports a status transition attempt on an optimization.
type TransitionOutcome struct {
	Optimization *models.RouteOptimization
	// Applied is false when the optimization was already terminal (or, for
	// MarkAwaiting, already awaiting) and the call was an idempotent no-op.
	Applied bool
}

// Decline moves an optimization to declined. No job or suggestion rows are
// touched. Declining a terminal optimization is an idempotent no-op.
func (r *OptimizationRepository) Decline(ctx context.Context, id uint) (*TransitionOutcome, error) {
	return r.transition(ctx, id, models.OptimizationStatusDeclined, activeStatuses)
}

// MarkAwaiting moves an optimization from pending_approval to
// awaiting_customer. The transition happens at most once.
func (r *OptimizationRepository) MarkAwaiting(ctx context.Context, id uint) (*TransitionOutcome, error) {
	return r.transition(ctx, id, models.OptimizationStatusAwaitingCustomer,
		[]models.OptimizationStatus{models.OptimizationStatusPendingApproval})
}

func (r *OptimizationRepository) transition(ctx context.Context, id uint, to models.OptimizationStatus, from []models.OptimizationStatus) (*TransitionOutcome, error) {
	outcome := &TransitionOutcome{}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var opt models.RouteOptimization
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&opt, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return types.NewNotFoundError("optimization", id)
			}
			return err
		}

		allowed := false
		for _, s := range from {
			if opt.Status == s {
				allowed = true
				break
			}
		}
		if !allowed {
			// Terminal rows and repeated transitions are no-ops.
			outcome.Optimization = &opt
			return tx.Preload("Suggestions").First(outcome.Optimization, id).Error
		}

		opt.Status = to
		if err := tx.Save(&opt).Error; err != nil {
			return err
		}
		outcome.Optimization = &opt
		outcome.Applied = true
		return tx.Preload("Suggestions").First(outcome.Optimization, id).Error
	})
	if err != nil {
		if errors.Is(err, types.ErrNotFound) {
			return nil, err
		}
		return nil, types.NewStoreError("transition optimization", err)
	}
	return outcome, nil
}

// ApplyOutcome is the full state touched by a batch apply.
type ApplyOutcome struct {
	Optimization *models.RouteOptimization
	Jobs         []models.Job
	// Applied is false when the optimization was already terminal.
	Applied bool
}

// Apply accepts an optimization: every suggestion's job is rewritten to the
// suggested date and slot (with the pre-change schedule snapshotted), rows
// not requiring customer approval are auto-approved, and the optimization
// becomes applied. All-or-nothing: any per-job failure rolls the batch back.
func (r *OptimizationRepository) Apply(ctx context.Context, id uint) (*ApplyOutcome, error) {
	outcome := &ApplyOutcome{}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var opt models.RouteOptimization
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Preload("Suggestions").First(&opt, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return types.NewNotFoundError("optimization", id)
			}
			return err
		}

		if opt.Status.IsTerminal() {
			outcome.Optimization = &opt
			return nil
		}

		jobs := make([]models.Job, 0, len(opt.Suggestions))
		for i := range opt.Suggestions {
			s := &opt.Suggestions[i]

			var job models.Job
			if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				First(&job, s.JobID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return types.NewNotFoundError("job", s.JobID)
				}
				return err
			}

			// A job must not be claimed by a second active optimization.
			active, err := r.activeOptimizationsForJob(tx, s.JobID, opt.ID)
			if err != nil {
				return err
			}
			if active > 0 {
				return types.NewValidationError("job %d belongs to another active optimization", s.JobID)
			}

			origDate := job.ScheduledDate
			job.OriginalScheduledDate = &origDate
			job.OriginalScheduledTime = job.ScheduledTime

			clock := s.SuggestedSlot.StartClock()
			job.ScheduledDate = s.SuggestedDate
			job.ScheduledTime = &clock
			job.Status = models.JobStatusScheduled
			if err := tx.Save(&job).Error; err != nil {
				return err
			}
			jobs = append(jobs, job)

			if !s.RequiresCustomerApproval && s.CustomerApprovalStatus == models.ApprovalStatusPending {
				s.CustomerApprovalStatus = models.ApprovalStatusApproved
				if err := tx.Save(s).Error; err != nil {
					return err
				}
			}
		}

		opt.Status = models.OptimizationStatusApplied
		if err := tx.Save(&opt).Error; err != nil {
			return err
		}

		outcome.Optimization = &opt
		outcome.Jobs = jobs
		outcome.Applied = true
		return nil
	})
	if err != nil {
		if errors.Is(err, types.ErrNotFound) || errors.Is(err, types.ErrValidation) {
			return nil, err
		}
		return nil, types.NewStoreError("apply optimization", err)
	}
	return outcome, nil
}

// SuggestionRespondOutcome reports a customer's answer on one suggestion row.
type SuggestionRespondOutcome struct {
	Suggestion *models.RouteOptimizationSuggestion
	// Applied is false when the parent optimization was already terminal.
	Applied bool
}

// RespondSuggestion records a customer's approval or decline on one
// suggestion row. It never mutates the job or the parent optimization; the
// contractor still drives the parent to a terminal state. Answering under a
// terminal parent is an idempotent no-op; answering before the customers
// were asked is a validation error.
func (r *OptimizationRepository) RespondSuggestion(ctx context.Context, id uint, approved bool) (*SuggestionRespondOutcome, error) {
	outcome := &SuggestionRespondOutcome{}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var s models.RouteOptimizationSuggestion
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&s, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return types.NewNotFoundError("optimization suggestion", id)
			}
			return err
		}

		var opt models.RouteOptimization
		if err := tx.First(&opt, s.RouteOptimizationID).Error; err != nil {
			return err
		}

		switch opt.Status {
		case models.OptimizationStatusAwaitingCustomer:
			// The only state in which customer answers land.
		case models.OptimizationStatusPendingApproval:
			return types.NewValidationError("optimization %d has not been sent to customers", opt.ID)
		default:
			outcome.Suggestion = &s
			return nil
		}

		if approved {
			s.CustomerApprovalStatus = models.ApprovalStatusApproved
		} else {
			s.CustomerApprovalStatus = models.ApprovalStatusDeclined
		}
		if err := tx.Save(&s).Error; err != nil {
			return err
		}
		outcome.Suggestion = &s
		outcome.Applied = true
		return nil
	})
	if err != nil {
		if errors.Is(err, types.ErrNotFound) || errors.Is(err, types.ErrValidation) {
			return nil, err
		}
		return nil, types.NewStoreError("respond to optimization suggestion", err)
	}
	return outcome, nil
}

// activeOptimizationsForJob counts non-terminal optimizations referencing a
// job, excluding one optimization id.
func (r *OptimizationRepository) activeOptimizationsForJob(tx *gorm.DB, jobID, excludeID uint) (int64, error) {
	var count int64
	err := tx.Model(&models.RouteOptimizationSuggestion{}).
		Joins("JOIN route_optimizations ON route_optimizations.id = route_optimization_suggestions.route_optimization_id").
		Where("route_optimization_suggestions.job_id = ?", jobID).
		Where("route_optimizations.id <> ?", excludeID).
		Where("route_optimizations.status IN ?", activeStatuses).
		Count(&count).Error
	return count, err
}
