// Package handlers provides HTTP request handling
package handlers

import (
	"fmt"
	"strings"
	"time"

	"github.com/fieldsmith/dispatch/internal/db/models"
)

// dateLayout is the wire format for calendar dates in RPC parameters.
const dateLayout = "2006-01-02"

// parseDateParam parses a YYYY-MM-DD parameter into a UTC date.
func parseDateParam(s string) (time.Time, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s", strings.ToLower(ErrMsgInvalidDate))
	}
	return t.UTC(), nil
}

// SuggestionProposeParams defines the parameters for proposing an alternative slot
type SuggestionProposeParams struct {
	ContractorID  uint            `json:"contractor_id"`
	JobID         uint            `json:"job_id"`
	SuggestedDate string          `json:"suggested_date"`
	SuggestedSlot models.TimeSlot `json:"suggested_time_slot"`
}

// Validate validates the parameters for proposing an alternative slot
func (p SuggestionProposeParams) Validate() error {
	if p.ContractorID == 0 {
		return fmt.Errorf("%s", strings.ToLower(ErrMsgContractorRequired))
	}
	if p.JobID == 0 {
		return fmt.Errorf("%s", strings.ToLower(ErrMsgJobIDRequired))
	}
	if p.SuggestedDate == "" {
		return fmt.Errorf("%s", strings.ToLower(ErrMsgDateRequired))
	}
	if !p.SuggestedSlot.Valid() {
		return fmt.Errorf("%s", strings.ToLower(ErrMsgInvalidTimeSlot))
	}
	return nil
}

// SuggestionRespondParams defines the parameters for answering a suggestion
type SuggestionRespondParams struct {
	SuggestionID uint `json:"suggestion_id"`
	Accept       bool `json:"accept"`
}

// Validate validates the parameters for answering a suggestion
func (p SuggestionRespondParams) Validate() error {
	if p.SuggestionID == 0 {
		return fmt.Errorf("%s", strings.ToLower(ErrMsgSuggIDRequired))
	}
	return nil
}

// SuggestionGetParams defines the parameters for retrieving a suggestion
type SuggestionGetParams struct {
	SuggestionID uint `json:"suggestion_id"`
}

// Validate validates the parameters for retrieving a suggestion
func (p SuggestionGetParams) Validate() error {
	if p.SuggestionID == 0 {
		return fmt.Errorf("%s", strings.ToLower(ErrMsgSuggIDRequired))
	}
	return nil
}

// SuggestionListByJobParams defines the parameters for listing a job's suggestions
type SuggestionListByJobParams struct {
	JobID uint `json:"job_id"`
}

// Validate validates the parameters for listing a job's suggestions
func (p SuggestionListByJobParams) Validate() error {
	if p.JobID == 0 {
		return fmt.Errorf("%s", strings.ToLower(ErrMsgJobIDRequired))
	}
	return nil
}

// SuggestionListByContractorParams defines the parameters for listing a contractor's suggestions
type SuggestionListByContractorParams struct {
	ContractorID uint `json:"contractor_id"`
	Page         int  `json:"page,omitempty"`
}

// Validate validates the parameters for listing a contractor's suggestions
func (p SuggestionListByContractorParams) Validate() error {
	if p.ContractorID == 0 {
		return fmt.Errorf("%s", strings.ToLower(ErrMsgContractorRequired))
	}
	if p.Page < 0 {
		return fmt.Errorf("page must be a positive number")
	}
	return nil
}
