// Package handlers provides HTTP request handling
package handlers

import (
	"fmt"
	"strings"
)

// SchedulePlanParams defines the parameters for previewing where a desired
// start time would land on a contractor's day
type SchedulePlanParams struct {
	ContractorID    uint   `json:"contractor_id"`
	Date            string `json:"date"`
	Time            string `json:"time"`
	DurationMinutes int    `json:"duration_minutes,omitempty"`
	ExcludeJobID    uint   `json:"exclude_job_id,omitempty"`
}

// Validate validates the parameters for a shift plan preview
func (p SchedulePlanParams) Validate() error {
	if p.ContractorID == 0 {
		return fmt.Errorf("%s", strings.ToLower(ErrMsgContractorRequired))
	}
	if p.Date == "" {
		return fmt.Errorf("%s", strings.ToLower(ErrMsgDateRequired))
	}
	if p.Time == "" {
		return fmt.Errorf("%s", strings.ToLower(ErrMsgTimeRequired))
	}
	if p.DurationMinutes < 0 {
		return fmt.Errorf("duration must be a positive number of minutes")
	}
	return nil
}

// ScheduleSetParams defines the parameters for a direct contractor edit of a
// job's date and time
type ScheduleSetParams struct {
	ContractorID uint   `json:"contractor_id"`
	JobID        uint   `json:"job_id"`
	Date         string `json:"date"`
	Time         string `json:"time"`
}

// Validate validates the parameters for a schedule edit
func (p ScheduleSetParams) Validate() error {
	if p.ContractorID == 0 {
		return fmt.Errorf("%s", strings.ToLower(ErrMsgContractorRequired))
	}
	if p.JobID == 0 {
		return fmt.Errorf("%s", strings.ToLower(ErrMsgJobIDRequired))
	}
	if p.Date == "" {
		return fmt.Errorf("%s", strings.ToLower(ErrMsgDateRequired))
	}
	if p.Time == "" {
		return fmt.Errorf("%s", strings.ToLower(ErrMsgTimeRequired))
	}
	return nil
}
