package repos

import (
	"github.com/fieldsmith/dispatch/internal/db/models"
	"github.com/fieldsmith/dispatch/internal/types"
)

func (s *DBRepositoryTestSuite) optimizationFixture() (*models.RouteOptimization, []*models.Job) {
	j1 := s.createTestJob(10, "2024-06-10", s.clockPtr("08:00"))
	j2 := s.createTestJob(10, "2024-06-10", s.clockPtr("10:00"))
	j3 := s.createTestJob(10, "2024-06-10", s.clockPtr("13:00"))

	opt := s.createTestOptimization(10, "2024-06-10", []models.RouteOptimizationSuggestion{
		{
			JobID:       j1.ID,
			CurrentDate: s.date("2024-06-10"), CurrentSlot: models.RouteSlotMorning,
			SuggestedDate: s.date("2024-06-10"), SuggestedSlot: models.RouteSlotAfternoon,
			RequiresCustomerApproval: true,
		},
		{
			JobID:       j2.ID,
			CurrentDate: s.date("2024-06-10"), CurrentSlot: models.RouteSlotMorning,
			SuggestedDate: s.date("2024-06-10"), SuggestedSlot: models.RouteSlotMorning,
		},
		{
			JobID:       j3.ID,
			CurrentDate: s.date("2024-06-10"), CurrentSlot: models.RouteSlotAfternoon,
			SuggestedDate: s.date("2024-06-10"), SuggestedSlot: models.RouteSlotMorning,
		},
	})
	return opt, []*models.Job{j1, j2, j3}
}

func (s *DBRepositoryTestSuite) TestCreateOptimizationRejectsLockedJob() {
	job := s.createTestJob(10, "2024-06-10", s.clockPtr("08:00"))
	job.RouteOptimizationLocked = true
	s.Require().NoError(s.jobRepo.Update(s.ctx, job))

	err := s.optimizationRepo.CreateWithSuggestions(s.ctx, &models.RouteOptimization{
		ContractorID:     10,
		OptimizationDate: s.date("2024-06-10"),
		Suggestions: []models.RouteOptimizationSuggestion{{
			JobID:       job.ID,
			CurrentDate: s.date("2024-06-10"), CurrentSlot: models.RouteSlotMorning,
			SuggestedDate: s.date("2024-06-10"), SuggestedSlot: models.RouteSlotAfternoon,
		}},
	})
	s.Require().ErrorIs(err, types.ErrValidation)
}

func (s *DBRepositoryTestSuite) TestCreateOptimizationRejectsDoubleBooking() {
	opt, jobs := s.optimizationFixture()
	s.Require().NotZero(opt.ID)

	err := s.optimizationRepo.CreateWithSuggestions(s.ctx, &models.RouteOptimization{
		ContractorID:     10,
		OptimizationDate: s.date("2024-06-10"),
		Suggestions: []models.RouteOptimizationSuggestion{{
			JobID:       jobs[0].ID,
			CurrentDate: s.date("2024-06-10"), CurrentSlot: models.RouteSlotMorning,
			SuggestedDate: s.date("2024-06-10"), SuggestedSlot: models.RouteSlotAfternoon,
		}},
	})
	s.Require().ErrorIs(err, types.ErrValidation)
}

func (s *DBRepositoryTestSuite) TestApplyRewritesEveryJobAndSnapshots() {
	opt, jobs := s.optimizationFixture()

	outcome, err := s.optimizationRepo.Apply(s.ctx, opt.ID)
	s.Require().NoError(err)
	s.Require().True(outcome.Applied)
	s.Equal(models.OptimizationStatusApplied, outcome.Optimization.Status)
	s.Len(outcome.Jobs, 3)

	first, err := s.jobRepo.GetByID(s.ctx, jobs[0].ID)
	s.Require().NoError(err)
	s.Require().NotNil(first.ScheduledTime)
	s.Equal("13:00", *first.ScheduledTime) // afternoon slot
	s.Require().NotNil(first.OriginalScheduledTime)
	s.Equal("08:00", *first.OriginalScheduledTime)
	s.Require().NotNil(first.OriginalScheduledDate)
	s.Equal(s.date("2024-06-10"), *first.OriginalScheduledDate)

	// Rows not requiring approval were auto-approved at apply time.
	got, err := s.optimizationRepo.GetByID(s.ctx, opt.ID)
	s.Require().NoError(err)
	for _, sug := range got.Suggestions {
		if sug.RequiresCustomerApproval {
			s.Equal(models.ApprovalStatusPending, sug.CustomerApprovalStatus)
		} else {
			s.Equal(models.ApprovalStatusApproved, sug.CustomerApprovalStatus)
		}
	}
}

func (s *DBRepositoryTestSuite) TestTerminalOptimizationAcceptsNoTransition() {
	opt, _ := s.optimizationFixture()

	declined, err := s.optimizationRepo.Decline(s.ctx, opt.ID)
	s.Require().NoError(err)
	s.Require().True(declined.Applied)
	s.Equal(models.OptimizationStatusDeclined, declined.Optimization.Status)

	// Every further transition is a no-op that reports the terminal state.
	applied, err := s.optimizationRepo.Apply(s.ctx, opt.ID)
	s.Require().NoError(err)
	s.False(applied.Applied)
	s.Equal(models.OptimizationStatusDeclined, applied.Optimization.Status)

	awaiting, err := s.optimizationRepo.MarkAwaiting(s.ctx, opt.ID)
	s.Require().NoError(err)
	s.False(awaiting.Applied)
	s.Equal(models.OptimizationStatusDeclined, awaiting.Optimization.Status)

	again, err := s.optimizationRepo.Decline(s.ctx, opt.ID)
	s.Require().NoError(err)
	s.False(again.Applied)
}

func (s *DBRepositoryTestSuite) TestMarkAwaitingHappensOnce() {
	opt, _ := s.optimizationFixture()

	first, err := s.optimizationRepo.MarkAwaiting(s.ctx, opt.ID)
	s.Require().NoError(err)
	s.Require().True(first.Applied)
	s.Equal(models.OptimizationStatusAwaitingCustomer, first.Optimization.Status)

	second, err := s.optimizationRepo.MarkAwaiting(s.ctx, opt.ID)
	s.Require().NoError(err)
	s.False(second.Applied)
	s.Equal(models.OptimizationStatusAwaitingCustomer, second.Optimization.Status)
}

func (s *DBRepositoryTestSuite) TestCustomerRespondFlow() {
	opt, _ := s.optimizationFixture()
	sugID := opt.Suggestions[0].ID

	// Answering before the ask is a validation error.
	_, err := s.optimizationRepo.RespondSuggestion(s.ctx, sugID, true)
	s.Require().ErrorIs(err, types.ErrValidation)

	_, err = s.optimizationRepo.MarkAwaiting(s.ctx, opt.ID)
	s.Require().NoError(err)

	outcome, err := s.optimizationRepo.RespondSuggestion(s.ctx, sugID, false)
	s.Require().NoError(err)
	s.Require().True(outcome.Applied)
	s.Equal(models.ApprovalStatusDeclined, outcome.Suggestion.CustomerApprovalStatus)

	// The parent status and the job are untouched by customer answers.
	parent, err := s.optimizationRepo.GetByID(s.ctx, opt.ID)
	s.Require().NoError(err)
	s.Equal(models.OptimizationStatusAwaitingCustomer, parent.Status)

	// After the parent is terminal, answers are no-ops.
	_, err = s.optimizationRepo.Decline(s.ctx, opt.ID)
	s.Require().NoError(err)
	late, err := s.optimizationRepo.RespondSuggestion(s.ctx, sugID, true)
	s.Require().NoError(err)
	s.False(late.Applied)
	s.Equal(models.ApprovalStatusDeclined, late.Suggestion.CustomerApprovalStatus)
}
