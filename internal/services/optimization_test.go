package services

import (
	"github.com/fieldsmith/dispatch/internal/db/models"
	"github.com/fieldsmith/dispatch/internal/notify"
	"github.com/fieldsmith/dispatch/internal/types"
)

func (s *ServiceTestSuite) submitFixture() (*models.RouteOptimization, []*models.Job) {
	j1 := s.createJob(10, 201, "2024-06-10", "08:00")
	j2 := s.createJob(10, 202, "2024-06-10", "10:00")
	j3 := s.createJob(10, 203, "2024-06-10", "13:00")

	opt, err := s.optimizationService.Submit(s.ctx, &models.RouteOptimization{
		ContractorID:     10,
		OptimizationDate: s.date("2024-06-10"),
		Level:            3,
		TimeSavedMinutes: 25,
		Suggestions: []models.RouteOptimizationSuggestion{
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
		},
	})
	s.Require().NoError(err)
	s.notifier.sent = nil
	return opt, []*models.Job{j1, j2, j3}
}

func (s *ServiceTestSuite) TestSubmitValidatesSlots() {
	j1 := s.createJob(10, 201, "2024-06-10", "08:00")
	_, err := s.optimizationService.Submit(s.ctx, &models.RouteOptimization{
		ContractorID:     10,
		OptimizationDate: s.date("2024-06-10"),
		Suggestions: []models.RouteOptimizationSuggestion{{
			JobID:       j1.ID,
			CurrentDate: s.date("2024-06-10"), CurrentSlot: models.RouteSlot("evening"),
			SuggestedDate: s.date("2024-06-10"), SuggestedSlot: models.RouteSlotMorning,
		}},
	})
	s.Require().ErrorIs(err, types.ErrValidation)
}

func (s *ServiceTestSuite) TestAskCustomersNotifiesOnlyFlaggedRows() {
	opt, _ := s.submitFixture()

	outcome, err := s.optimizationService.AskCustomers(s.ctx, 10, opt.ID)
	s.Require().NoError(err)
	s.Require().True(outcome.Applied)
	s.Equal(models.OptimizationStatusAwaitingCustomer, outcome.Optimization.Status)

	// Exactly one notification: the single approval-required suggestion.
	s.Require().Len(s.notifier.sent, 1)
	s.Equal(uint(201), s.notifier.sent[0].UserID)
	s.Equal(notify.KindRouteChangeRequest, s.notifier.sent[0].Kind)

	// The unflagged rows keep a pending approval status.
	got, err := s.optimizationService.Get(s.ctx, opt.ID)
	s.Require().NoError(err)
	for _, sug := range got.Suggestions {
		s.Equal(models.ApprovalStatusPending, sug.CustomerApprovalStatus)
	}

	// Asking again is a silent no-op.
	s.notifier.sent = nil
	again, err := s.optimizationService.AskCustomers(s.ctx, 10, opt.ID)
	s.Require().NoError(err)
	s.False(again.Applied)
	s.Empty(s.notifier.sent)
}

func (s *ServiceTestSuite) TestAcceptAppliesBatchToEveryJob() {
	opt, jobs := s.submitFixture()

	outcome, err := s.optimizationService.Accept(s.ctx, 10, opt.ID)
	s.Require().NoError(err)
	s.Require().True(outcome.Applied)
	s.Equal(models.OptimizationStatusApplied, outcome.Optimization.Status)
	s.Len(outcome.Jobs, 3)

	first, err := s.jobService.Get(s.ctx, jobs[0].ID)
	s.Require().NoError(err)
	s.Require().NotNil(first.ScheduledTime)
	s.Equal("13:00", *first.ScheduledTime)
	s.Require().NotNil(first.OriginalScheduledTime)
	s.Equal("08:00", *first.OriginalScheduledTime)

	// Each affected customer hears about the new schedule.
	s.Len(s.notifier.sent, 3)
}

func (s *ServiceTestSuite) TestDeclineTouchesNothing() {
	opt, jobs := s.submitFixture()

	outcome, err := s.optimizationService.Decline(s.ctx, 10, opt.ID)
	s.Require().NoError(err)
	s.Require().True(outcome.Applied)
	s.Equal(models.OptimizationStatusDeclined, outcome.Optimization.Status)
	s.Empty(s.notifier.sent)

	got, err := s.jobService.Get(s.ctx, jobs[0].ID)
	s.Require().NoError(err)
	s.Require().NotNil(got.ScheduledTime)
	s.Equal("08:00", *got.ScheduledTime)
	s.Nil(got.OriginalScheduledTime)
}

func (s *ServiceTestSuite) TestActorMustBeTheContractor() {
	opt, _ := s.submitFixture()

	_, err := s.optimizationService.Accept(s.ctx, 99, opt.ID)
	s.Require().ErrorIs(err, types.ErrValidation)
	_, err = s.optimizationService.Decline(s.ctx, 99, opt.ID)
	s.Require().ErrorIs(err, types.ErrValidation)
	_, err = s.optimizationService.AskCustomers(s.ctx, 99, opt.ID)
	s.Require().ErrorIs(err, types.ErrValidation)
}

func (s *ServiceTestSuite) TestCustomerRespondNotifiesContractor() {
	opt, _ := s.submitFixture()

	_, err := s.optimizationService.AskCustomers(s.ctx, 10, opt.ID)
	s.Require().NoError(err)
	s.notifier.sent = nil

	got, err := s.optimizationService.Get(s.ctx, opt.ID)
	s.Require().NoError(err)
	var flagged *models.RouteOptimizationSuggestion
	for i := range got.Suggestions {
		if got.Suggestions[i].RequiresCustomerApproval {
			flagged = &got.Suggestions[i]
		}
	}
	s.Require().NotNil(flagged)

	outcome, err := s.optimizationService.RespondSuggestion(s.ctx, flagged.ID, true)
	s.Require().NoError(err)
	s.Require().True(outcome.Applied)
	s.Equal(models.ApprovalStatusApproved, outcome.Suggestion.CustomerApprovalStatus)

	s.Require().Len(s.notifier.sent, 1)
	s.Equal(uint(10), s.notifier.sent[0].UserID)

	// The parent stays awaiting_customer; the contractor decides.
	parent, err := s.optimizationService.Get(s.ctx, opt.ID)
	s.Require().NoError(err)
	s.Equal(models.OptimizationStatusAwaitingCustomer, parent.Status)
}
