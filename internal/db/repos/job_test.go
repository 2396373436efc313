package repos

import (
	"github.com/fieldsmith/dispatch/internal/db/models"
	"github.com/fieldsmith/dispatch/internal/schedule"
	"github.com/fieldsmith/dispatch/internal/types"
)

func (s *DBRepositoryTestSuite) TestCreateJobRequiresParties() {
	err := s.jobRepo.Create(s.ctx, &models.Job{ScheduledDate: s.date("2024-06-10")})
	s.Require().ErrorIs(err, types.ErrValidation)
}

func (s *DBRepositoryTestSuite) TestGetJobNotFound() {
	_, err := s.jobRepo.GetByID(s.ctx, 12345)
	s.Require().ErrorIs(err, types.ErrNotFound)
}

func (s *DBRepositoryTestSuite) TestContractorDaySlots() {
	edited := s.createTestJob(10, "2024-06-10", s.clockPtr("09:00"))
	s.createTestJob(10, "2024-06-10", s.clockPtr("10:00"))
	s.createTestJob(10, "2024-06-10", nil) // slot-based, no concrete interval
	s.createTestJob(10, "2024-06-11", s.clockPtr("11:00")) // other day
	s.createTestJob(11, "2024-06-10", s.clockPtr("12:00")) // other contractor

	cancelled := s.createTestJob(10, "2024-06-10", s.clockPtr("14:00"))
	_, err := s.jobRepo.Cancel(s.ctx, cancelled.ID)
	s.Require().NoError(err)

	slots, err := s.jobRepo.ContractorDaySlots(s.ctx, 10, s.date("2024-06-10"), edited.ID)
	s.Require().NoError(err)
	s.Equal([]schedule.Slot{{Start: 600, Duration: 60}}, slots)
}

func (s *DBRepositoryTestSuite) TestCancelIsIdempotentSoftDestroy() {
	job := s.createTestJob(10, "2024-06-10", s.clockPtr("09:00"))

	first, err := s.jobRepo.Cancel(s.ctx, job.ID)
	s.Require().NoError(err)
	s.Equal(models.JobStatusCancelled, first.Status)

	second, err := s.jobRepo.Cancel(s.ctx, job.ID)
	s.Require().NoError(err)
	s.Equal(models.JobStatusCancelled, second.Status)

	// The row survives: suggestions may still reference it.
	got, err := s.jobRepo.GetByID(s.ctx, job.ID)
	s.Require().NoError(err)
	s.Equal(models.JobStatusCancelled, got.Status)
}

func (s *DBRepositoryTestSuite) TestListJobsFilters() {
	s.createTestJob(10, "2024-06-10", s.clockPtr("09:00"))
	s.createTestJob(10, "2024-06-11", s.clockPtr("10:00"))
	s.createTestJob(11, "2024-06-10", s.clockPtr("09:00"))

	opts := &models.ListOptions{Limit: models.DefaultLimit}

	all, err := s.jobRepo.List(s.ctx, models.JobStatusUnknown, 0, opts)
	s.Require().NoError(err)
	s.Len(all, 3)

	mine, err := s.jobRepo.List(s.ctx, models.JobStatusUnknown, 10, opts)
	s.Require().NoError(err)
	s.Len(mine, 2)

	scheduled, err := s.jobRepo.List(s.ctx, models.JobStatusScheduled, 11, opts)
	s.Require().NoError(err)
	s.Len(scheduled, 1)
}
