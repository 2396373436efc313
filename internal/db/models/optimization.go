package models

import (
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// RouteSlot is the coarse half-day slot used by route optimization
// suggestions. Distinct from the three-window TimeSlot domain.
type RouteSlot string

// Route optimization slots
const (
	// RouteSlotMorning maps to an 08:00 start
	RouteSlotMorning RouteSlot = "morning"
	// RouteSlotAfternoon maps to a 13:00 start
	RouteSlotAfternoon RouteSlot = "afternoon"
)

// Valid reports whether the slot is morning or afternoon.
func (r RouteSlot) Valid() bool {
	return r == RouteSlotMorning || r == RouteSlotAfternoon
}

// StartClock returns the wall-clock start ("15:04") written to a job when the
// optimization is applied.
func (r RouteSlot) StartClock() string {
	switch r {
	case RouteSlotMorning:
		return "08:00"
	case RouteSlotAfternoon:
		return "13:00"
	}
	return ""
}

// OptimizationStatus represents the lifecycle state of a route optimization
type OptimizationStatus int

// Optimization status constants
const (
	// OptimizationStatusUnknown represents an unknown or invalid status
	OptimizationStatusUnknown OptimizationStatus = iota
	// OptimizationStatusPendingApproval indicates the contractor has not yet acted
	OptimizationStatusPendingApproval
	// OptimizationStatusAwaitingCustomer indicates customers were asked to approve
	OptimizationStatusAwaitingCustomer
	// OptimizationStatusApplied indicates the batch was applied to jobs; terminal
	OptimizationStatusApplied
	// OptimizationStatusDeclined indicates the contractor declined the batch; terminal
	OptimizationStatusDeclined
)

var optimizationStatusNames = []string{
	"unknown",
	"pending_approval",
	"awaiting_customer",
	"applied",
	"declined",
}

// IsTerminal reports whether the optimization accepts no further transitions.
func (s OptimizationStatus) IsTerminal() bool {
	return s == OptimizationStatusApplied || s == OptimizationStatusDeclined
}

// ParseOptimizationStatus converts a string to an OptimizationStatus
func ParseOptimizationStatus(str string) (OptimizationStatus, error) {
	for i, status := range optimizationStatusNames {
		if status == str {
			return OptimizationStatus(i), nil
		}
	}
	return OptimizationStatusUnknown, fmt.Errorf("invalid optimization status: %s", str)
}

func (s OptimizationStatus) String() string {
	if int(s) >= len(optimizationStatusNames) {
		return optimizationStatusNames[OptimizationStatusUnknown]
	}
	return optimizationStatusNames[s]
}

// MarshalJSON implements the json.Marshaler interface for OptimizationStatus
func (s OptimizationStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON implements the json.Unmarshaler interface for OptimizationStatus
func (s *OptimizationStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}

	status, err := ParseOptimizationStatus(str)
	if err != nil {
		return err
	}

	*s = status
	return nil
}

// ApprovalStatus is a customer's answer on one optimization suggestion
type ApprovalStatus int

// Customer approval constants
const (
	// ApprovalStatusUnknown represents an unknown or invalid status
	ApprovalStatusUnknown ApprovalStatus = iota
	// ApprovalStatusPending indicates the customer has not answered
	ApprovalStatusPending
	// ApprovalStatusApproved indicates the customer approved the slot change
	ApprovalStatusApproved
	// ApprovalStatusDeclined indicates the customer declined the slot change
	ApprovalStatusDeclined
)

var approvalStatusNames = []string{
	"unknown",
	"pending",
	"approved",
	"declined",
}

// ParseApprovalStatus converts a string to an ApprovalStatus
func ParseApprovalStatus(str string) (ApprovalStatus, error) {
	for i, status := range approvalStatusNames {
		if status == str {
			return ApprovalStatus(i), nil
		}
	}
	return ApprovalStatusUnknown, fmt.Errorf("invalid approval status: %s", str)
}

func (s ApprovalStatus) String() string {
	if int(s) >= len(approvalStatusNames) {
		return approvalStatusNames[ApprovalStatusUnknown]
	}
	return approvalStatusNames[s]
}

// MarshalJSON implements the json.Marshaler interface for ApprovalStatus
func (s ApprovalStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON implements the json.Unmarshaler interface for ApprovalStatus
func (s *ApprovalStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}

	status, err := ParseApprovalStatus(str)
	if err != nil {
		return err
	}

	*s = status
	return nil
}

// RouteOptimization is a batch reschedule proposal covering one contractor's
// jobs on one calendar day, produced by an external resequencing process.
// Level caps how many stops may be reordered (subscription tier);
// TimeSavedMinutes is an informational estimate only.
type RouteOptimization struct {
	gorm.Model
	ContractorID     uint                        `json:"contractor_id" gorm:"not null;index"`
	OptimizationDate time.Time                   `json:"optimization_date" gorm:"type:date;not null;index"`
	Level            int                         `json:"level" gorm:"not null;default:1"`
	TimeSavedMinutes int                         `json:"time_saved_minutes"`
	Status           OptimizationStatus          `json:"status" gorm:"index"`
	Suggestions      []RouteOptimizationSuggestion `json:"suggestions,omitempty" gorm:"foreignKey:RouteOptimizationID"`
}

// RouteOptimizationSuggestion is one per-job line item of a RouteOptimization.
// The row is never deleted, only superseded when the parent reaches a
// terminal state.
type RouteOptimizationSuggestion struct {
	gorm.Model
	RouteOptimizationID      uint           `json:"route_optimization_id" gorm:"not null;index"`
	JobID                    uint           `json:"job_id" gorm:"not null;index"`
	CurrentDate              time.Time      `json:"current_date" gorm:"type:date;not null"`
	CurrentSlot              RouteSlot      `json:"current_time_slot" gorm:"type:varchar(16);not null"`
	SuggestedDate            time.Time      `json:"suggested_date" gorm:"type:date;not null"`
	SuggestedSlot            RouteSlot      `json:"suggested_time_slot" gorm:"type:varchar(16);not null"`
	RequiresCustomerApproval bool           `json:"requires_customer_approval" gorm:"not null;default:false"`
	CustomerApprovalStatus   ApprovalStatus `json:"customer_approval_status" gorm:"index"`
}
