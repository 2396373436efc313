package services

import (
	"github.com/fieldsmith/dispatch/internal/db/models"
	"github.com/fieldsmith/dispatch/internal/notify"
	"github.com/fieldsmith/dispatch/internal/types"
)

func (s *ServiceTestSuite) TestProposeMovesJobAndNotifiesCustomer() {
	job := s.createJob(10, 200, "2024-05-28", "09:00")

	suggestion, err := s.suggestionService.Propose(s.ctx, 10, job.ID, s.date("2024-06-01"), models.TimeSlotMidday)
	s.Require().NoError(err)
	s.Equal(models.SuggestionStatusPending, suggestion.Status)

	got, err := s.jobService.Get(s.ctx, job.ID)
	s.Require().NoError(err)
	s.Equal(models.JobStatusPendingConfirmation, got.Status)

	s.Require().Len(s.notifier.sent, 1)
	s.Equal(uint(200), s.notifier.sent[0].UserID)
	s.Equal(notify.KindRescheduleProposed, s.notifier.sent[0].Kind)
}

func (s *ServiceTestSuite) TestProposeValidation() {
	job := s.createJob(10, 200, "2024-05-28", "09:00")

	_, err := s.suggestionService.Propose(s.ctx, 10, job.ID, s.date("2024-06-01"), models.TimeSlot("6pm-9pm"))
	s.Require().ErrorIs(err, types.ErrValidation)

	// Only the job's contractor proposes.
	_, err = s.suggestionService.Propose(s.ctx, 99, job.ID, s.date("2024-06-01"), models.TimeSlotEarly)
	s.Require().ErrorIs(err, types.ErrValidation)

	_, err = s.suggestionService.Propose(s.ctx, 10, 9999, s.date("2024-06-01"), models.TimeSlotEarly)
	s.Require().ErrorIs(err, types.ErrNotFound)
}

func (s *ServiceTestSuite) TestAcceptAppliesScheduleAndCascades() {
	job := s.createJob(10, 200, "2024-05-28", "09:00")

	s1, err := s.suggestionService.Propose(s.ctx, 10, job.ID, s.date("2024-06-01"), models.TimeSlotMidday)
	s.Require().NoError(err)
	s2, err := s.suggestionService.Propose(s.ctx, 10, job.ID, s.date("2024-06-02"), models.TimeSlotLate)
	s.Require().NoError(err)

	s.notifier.sent = nil

	outcome, err := s.suggestionService.Respond(s.ctx, s1.ID, true)
	s.Require().NoError(err)
	s.Require().True(outcome.Applied)

	s.Equal(models.SuggestionStatusAccepted, outcome.Suggestion.Status)
	s.Equal(s.date("2024-06-01"), outcome.Job.ScheduledDate)
	s.Require().NotNil(outcome.Job.ScheduledTime)
	s.Equal("10:00", *outcome.Job.ScheduledTime)
	s.Equal(models.JobStatusScheduled, outcome.Job.Status)

	declined, err := s.suggestionService.Get(s.ctx, s2.ID)
	s.Require().NoError(err)
	s.Equal(models.SuggestionStatusDeclined, declined.Status)

	// Exactly one notification, to the contractor, none for the cascade.
	s.Require().Len(s.notifier.sent, 1)
	s.Equal(uint(10), s.notifier.sent[0].UserID)
	s.Equal(notify.KindRescheduleResponse, s.notifier.sent[0].Kind)
}

func (s *ServiceTestSuite) TestDeclineDoesNotTouchJob() {
	job := s.createJob(10, 200, "2024-05-28", "09:00")
	sug, err := s.suggestionService.Propose(s.ctx, 10, job.ID, s.date("2024-06-01"), models.TimeSlotEarly)
	s.Require().NoError(err)
	s.notifier.sent = nil

	outcome, err := s.suggestionService.Respond(s.ctx, sug.ID, false)
	s.Require().NoError(err)
	s.Require().True(outcome.Applied)
	s.Equal(models.SuggestionStatusDeclined, outcome.Suggestion.Status)

	got, err := s.jobService.Get(s.ctx, job.ID)
	s.Require().NoError(err)
	s.Equal(s.date("2024-05-28"), got.ScheduledDate)
	s.Require().NotNil(got.ScheduledTime)
	s.Equal("09:00", *got.ScheduledTime)

	s.Require().Len(s.notifier.sent, 1)
}

func (s *ServiceTestSuite) TestRespondTerminalIsIdempotentAndSilent() {
	job := s.createJob(10, 200, "2024-05-28", "09:00")
	sug, err := s.suggestionService.Propose(s.ctx, 10, job.ID, s.date("2024-06-01"), models.TimeSlotMidday)
	s.Require().NoError(err)

	_, err = s.suggestionService.Respond(s.ctx, sug.ID, true)
	s.Require().NoError(err)
	s.notifier.sent = nil

	outcome, err := s.suggestionService.Respond(s.ctx, sug.ID, false)
	s.Require().NoError(err)
	s.False(outcome.Applied)
	s.Equal(models.SuggestionStatusAccepted, outcome.Suggestion.Status)
	s.Empty(s.notifier.sent)
}

func (s *ServiceTestSuite) TestNotifierFailureNeverFailsTheResponse() {
	job := s.createJob(10, 200, "2024-05-28", "09:00")
	sug, err := s.suggestionService.Propose(s.ctx, 10, job.ID, s.date("2024-06-01"), models.TimeSlotMidday)
	s.Require().NoError(err)

	s.notifier.fail = true
	outcome, err := s.suggestionService.Respond(s.ctx, sug.ID, true)
	s.Require().NoError(err)
	s.True(outcome.Applied)

	got, err := s.jobService.Get(s.ctx, job.ID)
	s.Require().NoError(err)
	s.Equal(models.JobStatusScheduled, got.Status)
	s.Equal(s.date("2024-06-01"), got.ScheduledDate)
}
