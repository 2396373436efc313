package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/fieldsmith/dispatch/internal/db/models"
	"github.com/fieldsmith/dispatch/internal/db/repos"
)

// recordedNotification captures one Notify call for assertions.
type recordedNotification struct {
	UserID  uint
	Title   string
	Message string
	Kind    string
}

// recordingNotifier collects notifications; optionally fails every call to
// prove delivery errors never fail the parent operation.
type recordingNotifier struct {
	sent []recordedNotification
	fail bool
}

func (n *recordingNotifier) Notify(_ context.Context, userID uint, title, message, kind string) error {
	n.sent = append(n.sent, recordedNotification{UserID: userID, Title: title, Message: message, Kind: kind})
	if n.fail {
		return errors.New("delivery endpoint unreachable")
	}
	return nil
}

// ServiceTestSuite wires the services over an in-memory database.
type ServiceTestSuite struct {
	suite.Suite
	db       *gorm.DB
	ctx      context.Context
	notifier *recordingNotifier

	jobService          *Job
	suggestionService   *Suggestion
	optimizationService *Optimization
	userService         *User
}

func (s *ServiceTestSuite) SetupTest() {
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared&_json=1"), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
		Logger:                                   logger.Default.LogMode(logger.Silent),
	})
	require.NoError(s.T(), err, "Failed to create in-memory database")

	err = db.AutoMigrate(
		&models.User{},
		&models.Job{},
		&models.AlternativeSuggestion{},
		&models.RouteOptimization{},
		&models.RouteOptimizationSuggestion{},
	)
	require.NoError(s.T(), err, "Failed to run database migrations")

	s.db = db
	s.ctx = context.Background()
	s.notifier = &recordingNotifier{}

	jobRepo := repos.NewJobRepository(db)
	s.jobService = NewJobService(jobRepo)
	s.suggestionService = NewSuggestionService(repos.NewSuggestionRepository(db), jobRepo, s.notifier)
	s.optimizationService = NewOptimizationService(repos.NewOptimizationRepository(db), jobRepo, s.notifier)
	s.userService = NewUserService(repos.NewUserRepository(db))
}

func (s *ServiceTestSuite) TearDownTest() {
	sqlDB, err := s.db.DB()
	if err == nil && sqlDB != nil {
		_ = sqlDB.Close()
	}
}

func (s *ServiceTestSuite) date(value string) time.Time {
	d, err := time.Parse("2006-01-02", value)
	s.Require().NoError(err)
	return d
}

func (s *ServiceTestSuite) createJob(contractorID, clientID uint, date, clock string) *models.Job {
	var clockPtr *string
	if clock != "" {
		clockPtr = &clock
	}
	job := &models.Job{
		ContractorID:  contractorID,
		ClientID:      clientID,
		ScheduledDate: s.date(date),
		ScheduledTime: clockPtr,
	}
	created, _, err := s.jobService.Create(s.ctx, contractorID, job)
	s.Require().NoError(err)
	return created
}

func TestServices(t *testing.T) {
	suite.Run(t, new(ServiceTestSuite))
}
