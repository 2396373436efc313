package models

import (
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Database field names used in raw ordering/update clauses.
const (
	// JobScheduledDateField is the database field name for the scheduled date
	JobScheduledDateField = "scheduled_date"
	// JobCreatedAtField is the database field name for the job creation timestamp
	JobCreatedAtField = "created_at"
)

// DefaultJobDurationMinutes is assumed when a job has no explicit duration.
const DefaultJobDurationMinutes = 60

// JobStatus represents the current state of a job in the system
type JobStatus int

// Job status constants
const (
	// JobStatusUnknown represents an unknown or invalid job status
	JobStatusUnknown JobStatus = iota
	// JobStatusScheduled indicates the job has a confirmed schedule
	JobStatusScheduled
	// JobStatusPendingConfirmation indicates a reschedule proposal is awaiting the customer
	JobStatusPendingConfirmation
	// JobStatusInProgress indicates the contractor is on site
	JobStatusInProgress
	// JobStatusCompleted indicates the job has finished
	JobStatusCompleted
	// JobStatusCancelled indicates the job was cancelled
	JobStatusCancelled
)

var jobStatusNames = []string{
	"unknown",
	"scheduled",
	"pending_confirmation",
	"in_progress",
	"completed",
	"cancelled",
}

// Job represents a scheduled unit of work for one contractor and one client.
//
// ScheduledTime is a nullable "15:04" wall-clock value; slot-booked jobs get
// a concrete time written when a suggestion or optimization is applied.
// OriginalScheduledDate/Time snapshot the pre-negotiation schedule for audit.
type Job struct {
	gorm.Model
	ContractorID            uint       `json:"contractor_id" gorm:"not null;index"` // ID from the users table
	ClientID                uint       `json:"client_id" gorm:"not null;index"`     // ID from the users table
	ScheduledDate           time.Time  `json:"scheduled_date" gorm:"type:date;index"`
	ScheduledTime           *string    `json:"scheduled_time,omitempty" gorm:"type:varchar(5)"`
	DurationMinutes         int        `json:"duration_minutes" gorm:"not null;default:60"`
	Status                  JobStatus  `json:"status" gorm:"index"`
	OriginalScheduledDate   *time.Time `json:"original_scheduled_date,omitempty" gorm:"type:date"`
	OriginalScheduledTime   *string    `json:"original_scheduled_time,omitempty" gorm:"type:varchar(5)"`
	RouteOptimizationLocked bool       `json:"route_optimization_locked" gorm:"not null;default:false"`
	CreatedAt               time.Time  `json:"created_at" gorm:"index"`
}

// Duration returns the job's duration, falling back to the default.
func (j *Job) Duration() int {
	if j.DurationMinutes <= 0 {
		return DefaultJobDurationMinutes
	}
	return j.DurationMinutes
}

// IsTerminal reports whether the job accepts no further schedule changes.
func (s JobStatus) IsTerminal() bool {
	return s == JobStatusCompleted || s == JobStatusCancelled
}

// ParseJobStatus converts a string representation of a job status to JobStatus type
func ParseJobStatus(str string) (JobStatus, error) {
	for i, status := range jobStatusNames {
		if status == str {
			return JobStatus(i), nil
		}
	}
	return JobStatusUnknown, fmt.Errorf("invalid job status: %s", str)
}

func (s JobStatus) String() string {
	if int(s) >= len(jobStatusNames) {
		return jobStatusNames[JobStatusUnknown]
	}
	return jobStatusNames[s]
}

// MarshalJSON implements the json.Marshaler interface for JobStatus
func (s JobStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON implements the json.Unmarshaler interface for JobStatus
func (s *JobStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}

	status, err := ParseJobStatus(str)
	if err != nil {
		return err
	}

	*s = status
	return nil
}
