package models

import (
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// TimeSlot is the customer-facing arrival window offered in an alternative
// suggestion. The domain is closed; this is distinct from the coarser
// morning/afternoon slots used by route optimizations.
type TimeSlot string

// Alternative suggestion time slots
const (
	// TimeSlotEarly is the 7am-10am arrival window
	TimeSlotEarly TimeSlot = "7am-10am"
	// TimeSlotMidday is the 10am-2pm arrival window
	TimeSlotMidday TimeSlot = "10am-2pm"
	// TimeSlotLate is the 2pm-5pm arrival window
	TimeSlotLate TimeSlot = "2pm-5pm"
)

// Valid reports whether the slot is one of the closed enumerated set.
func (t TimeSlot) Valid() bool {
	switch t {
	case TimeSlotEarly, TimeSlotMidday, TimeSlotLate:
		return true
	}
	return false
}

// StartClock returns the wall-clock start ("15:04") of the slot's window.
func (t TimeSlot) StartClock() string {
	switch t {
	case TimeSlotEarly:
		return "07:00"
	case TimeSlotMidday:
		return "10:00"
	case TimeSlotLate:
		return "14:00"
	}
	return ""
}

// SuggestionStatus represents the lifecycle state of an alternative suggestion
type SuggestionStatus int

// Suggestion status constants
const (
	// SuggestionStatusUnknown represents an unknown or invalid status
	SuggestionStatusUnknown SuggestionStatus = iota
	// SuggestionStatusPending indicates the suggestion awaits a customer response
	SuggestionStatusPending
	// SuggestionStatusAccepted indicates the customer accepted; terminal
	SuggestionStatusAccepted
	// SuggestionStatusDeclined indicates the customer declined; terminal
	SuggestionStatusDeclined
)

var suggestionStatusNames = []string{
	"unknown",
	"pending",
	"accepted",
	"declined",
}

// IsTerminal reports whether the suggestion accepts no further transitions.
func (s SuggestionStatus) IsTerminal() bool {
	return s == SuggestionStatusAccepted || s == SuggestionStatusDeclined
}

// ParseSuggestionStatus converts a string to a SuggestionStatus
func ParseSuggestionStatus(str string) (SuggestionStatus, error) {
	for i, status := range suggestionStatusNames {
		if status == str {
			return SuggestionStatus(i), nil
		}
	}
	return SuggestionStatusUnknown, fmt.Errorf("invalid suggestion status: %s", str)
}

func (s SuggestionStatus) String() string {
	if int(s) >= len(suggestionStatusNames) {
		return suggestionStatusNames[SuggestionStatusUnknown]
	}
	return suggestionStatusNames[s]
}

// MarshalJSON implements the json.Marshaler interface for SuggestionStatus
func (s SuggestionStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON implements the json.Unmarshaler interface for SuggestionStatus
func (s *SuggestionStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}

	status, err := ParseSuggestionStatus(str)
	if err != nil {
		return err
	}

	*s = status
	return nil
}

// AlternativeSuggestion is a single-job reschedule offer made by a contractor
// to one customer. Terminal on accepted or declined, never mutated after.
//
// Invariant: at most one accepted suggestion per job; accepting one forces
// every other pending suggestion for the same job to declined in the same
// transaction.
type AlternativeSuggestion struct {
	gorm.Model
	JobID         uint             `json:"job_id" gorm:"not null;index"`
	ContractorID  uint             `json:"contractor_id" gorm:"not null;index"`
	SuggestedDate time.Time        `json:"suggested_date" gorm:"type:date;not null"`
	SuggestedSlot TimeSlot         `json:"suggested_time_slot" gorm:"type:varchar(16);not null"`
	Status        SuggestionStatus `json:"status" gorm:"index"`
	RespondedAt   *time.Time       `json:"responded_at,omitempty"`
}
