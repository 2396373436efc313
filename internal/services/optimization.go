package services

import (
	"context"
	"fmt"

	"github.com/fieldsmith/dispatch/internal/db/models"
	"github.com/fieldsmith/dispatch/internal/db/repos"
	"github.com/fieldsmith/dispatch/internal/logger"
	"github.com/fieldsmith/dispatch/internal/notify"
	"github.com/fieldsmith/dispatch/internal/types"
)

// Optimization coordinates the route-optimization negotiation flow: an
// externally produced batch proposal is declined, sent to customers for
// approval, or applied to every covered job at once.
type Optimization struct {
	optimizationRepo *repos.OptimizationRepository
	jobRepo          *repos.JobRepository
	notifier         notify.Notifier
}

// NewOptimizationService creates a new optimization service instance
func NewOptimizationService(optimizationRepo *repos.OptimizationRepository, jobRepo *repos.JobRepository, notifier notify.Notifier) *Optimization {
	return &Optimization{
		optimizationRepo: optimizationRepo,
		jobRepo:          jobRepo,
		notifier:         notifier,
	}
}

// Submit ingests a batch produced by the external resequencing process.
// Jobs that opted out of resequencing, or that already sit in another
// active optimization, reject the whole batch.
func (s *Optimization) Submit(ctx context.Context, opt *models.RouteOptimization) (*models.RouteOptimization, error) {
	if opt.ContractorID == 0 {
		return nil, types.NewValidationError("optimization requires contractor_id")
	}
	if opt.OptimizationDate.IsZero() {
		return nil, types.NewValidationError("optimization_date is required")
	}
	for _, sug := range opt.Suggestions {
		if !sug.CurrentSlot.Valid() || !sug.SuggestedSlot.Valid() {
			return nil, types.NewValidationError("invalid route slot on job %d", sug.JobID)
		}
	}
	if err := s.optimizationRepo.CreateWithSuggestions(ctx, opt); err != nil {
		return nil, err
	}
	return opt, nil
}

// Get retrieves an optimization with its suggestions
func (s *Optimization) Get(ctx context.Context, id uint) (*models.RouteOptimization, error) {
	return s.optimizationRepo.GetByID(ctx, id)
}

// ListByContractor retrieves a contractor's optimizations with pagination
func (s *Optimization) ListByContractor(ctx context.Context, contractorID uint, opts *models.ListOptions) ([]models.RouteOptimization, error) {
	return s.optimizationRepo.ListByContractor(ctx, contractorID, opts)
}

// Decline rejects the batch. No job or suggestion is touched; declining a
// terminal optimization is an idempotent no-op.
func (s *Optimization) Decline(ctx context.Context, actor, id uint) (*repos.TransitionOutcome, error) {
	if err := s.requireContractor(ctx, actor, id); err != nil {
		return nil, err
	}
	return s.optimizationRepo.Decline(ctx, id)
}

// AskCustomers moves the optimization to awaiting_customer and sends exactly
// one notification per suggestion that requires customer approval. Rows not
// requiring approval are left untouched.
func (s *Optimization) AskCustomers(ctx context.Context, actor, id uint) (*repos.TransitionOutcome, error) {
	if err := s.requireContractor(ctx, actor, id); err != nil {
		return nil, err
	}

	outcome, err := s.optimizationRepo.MarkAwaiting(ctx, id)
	if err != nil {
		return nil, err
	}
	if !outcome.Applied {
		return outcome, nil
	}

	for _, sug := range outcome.Optimization.Suggestions {
		if !sug.RequiresCustomerApproval {
			continue
		}
		job, err := s.jobRepo.GetByID(ctx, sug.JobID)
		if err != nil {
			logger.Warnf("skipping approval request for missing job %d: %v", sug.JobID, err)
			continue
		}
		s.sendNotification(ctx, job.ClientID,
			"Schedule change requested",
			fmt.Sprintf("Your contractor asks to move job %d to %s (%s)",
				sug.JobID, sug.SuggestedDate.Format("2006-01-02"), sug.SuggestedSlot),
			notify.KindRouteChangeRequest)
	}
	return outcome, nil
}

// Accept applies the whole batch to its jobs atomically and notifies each
// affected customer of the new schedule.
func (s *Optimization) Accept(ctx context.Context, actor, id uint) (*repos.ApplyOutcome, error) {
	if err := s.requireContractor(ctx, actor, id); err != nil {
		return nil, err
	}

	outcome, err := s.optimizationRepo.Apply(ctx, id)
	if err != nil {
		return nil, err
	}
	if !outcome.Applied {
		return outcome, nil
	}

	for _, job := range outcome.Jobs {
		clock := ""
		if job.ScheduledTime != nil {
			clock = *job.ScheduledTime
		}
		s.sendNotification(ctx, job.ClientID,
			"Schedule updated",
			fmt.Sprintf("Job %d is now scheduled for %s at %s",
				job.ID, job.ScheduledDate.Format("2006-01-02"), clock),
			notify.KindScheduleApplied)
	}
	return outcome, nil
}

// RespondSuggestion records a customer's answer on one suggestion row and
// tells the contractor. The parent optimization stays where it is; the
// contractor drives it to a terminal state after reviewing answers.
func (s *Optimization) RespondSuggestion(ctx context.Context, suggestionID uint, approved bool) (*repos.SuggestionRespondOutcome, error) {
	outcome, err := s.optimizationRepo.RespondSuggestion(ctx, suggestionID, approved)
	if err != nil {
		return nil, err
	}

	if outcome.Applied {
		opt, err := s.optimizationRepo.GetByID(ctx, outcome.Suggestion.RouteOptimizationID)
		if err == nil {
			verb := "declined"
			if approved {
				verb = "approved"
			}
			s.sendNotification(ctx, opt.ContractorID,
				"Customer responded",
				fmt.Sprintf("A customer %s the proposed change for job %d", verb, outcome.Suggestion.JobID),
				notify.KindRescheduleResponse)
		}
	}
	return outcome, nil
}

func (s *Optimization) requireContractor(ctx context.Context, actor, id uint) error {
	opt, err := s.optimizationRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if opt.ContractorID != actor {
		return types.NewValidationError("user %d is not the contractor for optimization %d", actor, id)
	}
	return nil
}

// sendNotification delivers best-effort. Failures are logged and swallowed.
func (s *Optimization) sendNotification(ctx context.Context, userID uint, title, message, kind string) {
	ctx, cancel := context.WithTimeout(ctx, notify.DefaultTimeout)
	defer cancel()
	if err := s.notifier.Notify(ctx, userID, title, message, kind); err != nil {
		logger.Warnf("notification failed for user %d: %v", userID, err)
	}
}
