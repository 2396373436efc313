package services

import (
	"github.com/fieldsmith/dispatch/internal/db/models"
	"github.com/fieldsmith/dispatch/internal/types"
)

func (s *ServiceTestSuite) TestCreateShiftsConflictingBooking() {
	s.createJob(10, 200, "2024-06-10", "09:30")

	second := "09:00"
	job := &models.Job{
		ContractorID:  10,
		ClientID:      201,
		ScheduledDate: s.date("2024-06-10"),
		ScheduledTime: &second,
	}
	created, res, err := s.jobService.Create(s.ctx, 10, job)
	s.Require().NoError(err)
	s.True(res.Shifted)
	s.Equal("10:30", *created.ScheduledTime)
}

func (s *ServiceTestSuite) TestCreateWithoutConflictKeepsDesiredTime() {
	s.createJob(10, 200, "2024-06-10", "10:00")

	clock := "09:00"
	job := &models.Job{
		ContractorID:    10,
		ClientID:        201,
		ScheduledDate:   s.date("2024-06-10"),
		ScheduledTime:   &clock,
		DurationMinutes: 30,
	}
	created, res, err := s.jobService.Create(s.ctx, 10, job)
	s.Require().NoError(err)
	s.False(res.Shifted)
	s.Equal("09:00", *created.ScheduledTime)
}

func (s *ServiceTestSuite) TestSetScheduleReplansAgainstTheDay() {
	target := s.createJob(10, 200, "2024-06-09", "09:00")
	s.createJob(10, 201, "2024-06-10", "09:30")

	job, res, err := s.jobService.SetSchedule(s.ctx, 10, target.ID, s.date("2024-06-10"), "09:00")
	s.Require().NoError(err)
	s.True(res.Shifted)
	s.Equal("10:30", *job.ScheduledTime)
	s.Equal(s.date("2024-06-10"), job.ScheduledDate)
	s.Equal(models.JobStatusScheduled, job.Status)
}

func (s *ServiceTestSuite) TestSetScheduleValidation() {
	job := s.createJob(10, 200, "2024-06-09", "09:00")

	_, _, err := s.jobService.SetSchedule(s.ctx, 99, job.ID, s.date("2024-06-10"), "09:00")
	s.Require().ErrorIs(err, types.ErrValidation)

	_, _, err = s.jobService.SetSchedule(s.ctx, 10, job.ID, s.date("2024-06-10"), "quarter past nine")
	s.Require().ErrorIs(err, types.ErrValidation)

	cancelled, err := s.jobService.Cancel(s.ctx, 10, job.ID)
	s.Require().NoError(err)
	s.Equal(models.JobStatusCancelled, cancelled.Status)

	_, _, err = s.jobService.SetSchedule(s.ctx, 10, job.ID, s.date("2024-06-10"), "09:00")
	s.Require().ErrorIs(err, types.ErrValidation)
}

func (s *ServiceTestSuite) TestPlanShiftPreview() {
	s.createJob(10, 200, "2024-06-10", "09:30")

	res, err := s.jobService.PlanShift(s.ctx, 10, s.date("2024-06-10"), 540, 60, 0)
	s.Require().NoError(err)
	s.True(res.Shifted)
	s.Equal(630, res.NewStart)

	// Previewing the planner's own answer reports no shift.
	again, err := s.jobService.PlanShift(s.ctx, 10, s.date("2024-06-10"), res.NewStart, 60, 0)
	s.Require().NoError(err)
	s.False(again.Shifted)
}

func (s *ServiceTestSuite) TestUserLifecycle() {
	user := &models.User{Username: "mara-the-plumber", Email: "mara@example.com", Role: models.UserRoleContractor}
	s.Require().NoError(s.userService.CreateUser(s.ctx, user))

	got, err := s.userService.GetUserByID(s.ctx, user.ID)
	s.Require().NoError(err)
	s.Equal("mara-the-plumber", got.Username)

	s.Require().NoError(s.userService.DeleteUser(s.ctx, user.ID))
	_, err = s.userService.GetUserByID(s.ctx, user.ID)
	s.Require().ErrorIs(err, types.ErrNotFound)
}
