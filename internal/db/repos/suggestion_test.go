package repos

import (
	"time"

	"github.com/fieldsmith/dispatch/internal/db/models"
	"github.com/fieldsmith/dispatch/internal/types"
)

func (s *DBRepositoryTestSuite) TestAcceptSuggestionAppliesScheduleAndCascades() {
	job := s.createTestJob(10, "2024-05-28", s.clockPtr("09:00"))
	s1 := s.createTestSuggestion(job.ID, 10, "2024-06-01", models.TimeSlotMidday)
	s2 := s.createTestSuggestion(job.ID, 10, "2024-06-02", models.TimeSlotLate)

	outcome, err := s.suggestionRepo.Respond(s.ctx, s1.ID, true, time.Now().UTC())
	s.Require().NoError(err)
	s.Require().True(outcome.Applied)
	s.Equal(models.SuggestionStatusAccepted, outcome.Suggestion.Status)
	s.Require().NotNil(outcome.Suggestion.RespondedAt)
	s.Equal(1, outcome.Demoted)

	// The job took the suggested schedule.
	s.Equal(s.date("2024-06-01"), outcome.Job.ScheduledDate)
	s.Require().NotNil(outcome.Job.ScheduledTime)
	s.Equal("10:00", *outcome.Job.ScheduledTime)
	s.Equal(models.JobStatusScheduled, outcome.Job.Status)

	// The competing pending suggestion was demoted in the same operation.
	other, err := s.suggestionRepo.GetByID(s.ctx, s2.ID)
	s.Require().NoError(err)
	s.Equal(models.SuggestionStatusDeclined, other.Status)
	s.Require().NotNil(other.RespondedAt)

	// Exclusivity: exactly one accepted row for the job.
	count, err := s.suggestionRepo.AcceptedCountByJob(s.ctx, job.ID)
	s.Require().NoError(err)
	s.Equal(int64(1), count)
}

func (s *DBRepositoryTestSuite) TestDeclineSuggestionLeavesJobUntouched() {
	job := s.createTestJob(10, "2024-05-28", s.clockPtr("09:00"))
	sug := s.createTestSuggestion(job.ID, 10, "2024-06-01", models.TimeSlotEarly)

	outcome, err := s.suggestionRepo.Respond(s.ctx, sug.ID, false, time.Now().UTC())
	s.Require().NoError(err)
	s.Require().True(outcome.Applied)
	s.Equal(models.SuggestionStatusDeclined, outcome.Suggestion.Status)

	got, err := s.jobRepo.GetByID(s.ctx, job.ID)
	s.Require().NoError(err)
	s.Equal(s.date("2024-05-28"), got.ScheduledDate)
	s.Require().NotNil(got.ScheduledTime)
	s.Equal("09:00", *got.ScheduledTime)
}

func (s *DBRepositoryTestSuite) TestRespondTerminalSuggestionIsNoOp() {
	job := s.createTestJob(10, "2024-05-28", s.clockPtr("09:00"))
	sug := s.createTestSuggestion(job.ID, 10, "2024-06-01", models.TimeSlotMidday)

	first, err := s.suggestionRepo.Respond(s.ctx, sug.ID, true, time.Now().UTC())
	s.Require().NoError(err)
	s.Require().True(first.Applied)

	// A late decline must not flip the accepted row or move the job.
	second, err := s.suggestionRepo.Respond(s.ctx, sug.ID, false, time.Now().UTC())
	s.Require().NoError(err)
	s.False(second.Applied)
	s.Equal(models.SuggestionStatusAccepted, second.Suggestion.Status)
	s.Equal(s.date("2024-06-01"), second.Job.ScheduledDate)
}

func (s *DBRepositoryTestSuite) TestCompetingAcceptsFirstWins() {
	job := s.createTestJob(10, "2024-05-28", s.clockPtr("09:00"))
	s1 := s.createTestSuggestion(job.ID, 10, "2024-06-01", models.TimeSlotMidday)
	s2 := s.createTestSuggestion(job.ID, 10, "2024-06-02", models.TimeSlotLate)

	first, err := s.suggestionRepo.Respond(s.ctx, s1.ID, true, time.Now().UTC())
	s.Require().NoError(err)
	s.Require().True(first.Applied)

	// The second accept arrives after the cascade demoted its row.
	second, err := s.suggestionRepo.Respond(s.ctx, s2.ID, true, time.Now().UTC())
	s.Require().NoError(err)
	s.False(second.Applied)
	s.Equal(models.SuggestionStatusDeclined, second.Suggestion.Status)

	count, err := s.suggestionRepo.AcceptedCountByJob(s.ctx, job.ID)
	s.Require().NoError(err)
	s.Equal(int64(1), count)

	// The job still holds the first winner's schedule.
	got, err := s.jobRepo.GetByID(s.ctx, job.ID)
	s.Require().NoError(err)
	s.Equal(s.date("2024-06-01"), got.ScheduledDate)
}

func (s *DBRepositoryTestSuite) TestRespondUnknownSuggestion() {
	_, err := s.suggestionRepo.Respond(s.ctx, 9999, true, time.Now().UTC())
	s.Require().ErrorIs(err, types.ErrNotFound)
}

func (s *DBRepositoryTestSuite) TestListByJobNewestFirst() {
	job := s.createTestJob(10, "2024-05-28", s.clockPtr("09:00"))
	s.createTestSuggestion(job.ID, 10, "2024-06-01", models.TimeSlotEarly)
	s.createTestSuggestion(job.ID, 10, "2024-06-02", models.TimeSlotLate)

	rows, err := s.suggestionRepo.ListByJob(s.ctx, job.ID)
	s.Require().NoError(err)
	s.Len(rows, 2)
}
