// Package handlers provides HTTP request handling
package handlers

import (
	"fmt"
	"strings"

	"github.com/fieldsmith/dispatch/internal/db/models"
)

// OptimizationSuggestionParams defines one per-job line item of a submitted
// route optimization
type OptimizationSuggestionParams struct {
	JobID                    uint             `json:"job_id"`
	CurrentDate              string           `json:"current_date"`
	CurrentSlot              models.RouteSlot `json:"current_time_slot"`
	SuggestedDate            string           `json:"suggested_date"`
	SuggestedSlot            models.RouteSlot `json:"suggested_time_slot"`
	RequiresCustomerApproval bool             `json:"requires_customer_approval"`
}

// Validate validates a single optimization suggestion line item
func (p OptimizationSuggestionParams) Validate() error {
	if p.JobID == 0 {
		return fmt.Errorf("%s", strings.ToLower(ErrMsgJobIDRequired))
	}
	if p.CurrentDate == "" || p.SuggestedDate == "" {
		return fmt.Errorf("%s", strings.ToLower(ErrMsgDateRequired))
	}
	if !p.CurrentSlot.Valid() || !p.SuggestedSlot.Valid() {
		return fmt.Errorf("%s", strings.ToLower(ErrMsgInvalidTimeSlot))
	}
	return nil
}

// OptimizationSubmitParams defines the parameters for submitting a route
// optimization batch
type OptimizationSubmitParams struct {
	ContractorID     uint                           `json:"contractor_id"`
	OptimizationDate string                         `json:"optimization_date"`
	Level            int                            `json:"level,omitempty"`
	TimeSavedMinutes int                            `json:"time_saved_minutes,omitempty"`
	Suggestions      []OptimizationSuggestionParams `json:"suggestions"`
}

// Validate validates the parameters for submitting a route optimization
func (p OptimizationSubmitParams) Validate() error {
	if p.ContractorID == 0 {
		return fmt.Errorf("%s", strings.ToLower(ErrMsgContractorRequired))
	}
	if p.OptimizationDate == "" {
		return fmt.Errorf("%s", strings.ToLower(ErrMsgDateRequired))
	}
	if len(p.Suggestions) == 0 {
		return fmt.Errorf("%s", strings.ToLower(ErrMsgOptSuggestionsRequired))
	}
	for _, s := range p.Suggestions {
		if err := s.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// ToModel converts validated submit parameters into the persistence model.
func (p OptimizationSubmitParams) ToModel() (*models.RouteOptimization, error) {
	date, err := parseDateParam(p.OptimizationDate)
	if err != nil {
		return nil, err
	}

	opt := &models.RouteOptimization{
		ContractorID:     p.ContractorID,
		OptimizationDate: date,
		Level:            p.Level,
		TimeSavedMinutes: p.TimeSavedMinutes,
	}
	for _, s := range p.Suggestions {
		currentDate, err := parseDateParam(s.CurrentDate)
		if err != nil {
			return nil, err
		}
		suggestedDate, err := parseDateParam(s.SuggestedDate)
		if err != nil {
			return nil, err
		}
		opt.Suggestions = append(opt.Suggestions, models.RouteOptimizationSuggestion{
			JobID:                    s.JobID,
			CurrentDate:              currentDate,
			CurrentSlot:              s.CurrentSlot,
			SuggestedDate:            suggestedDate,
			SuggestedSlot:            s.SuggestedSlot,
			RequiresCustomerApproval: s.RequiresCustomerApproval,
		})
	}
	return opt, nil
}

// OptimizationGetParams defines the parameters for retrieving an optimization
type OptimizationGetParams struct {
	OptimizationID uint `json:"optimization_id"`
}

// Validate validates the parameters for retrieving an optimization
func (p OptimizationGetParams) Validate() error {
	if p.OptimizationID == 0 {
		return fmt.Errorf("%s", strings.ToLower(ErrMsgOptIDRequired))
	}
	return nil
}

// OptimizationListParams defines the parameters for listing a contractor's optimizations
type OptimizationListParams struct {
	ContractorID uint `json:"contractor_id"`
	Page         int  `json:"page,omitempty"`
}

// Validate validates the parameters for listing optimizations
func (p OptimizationListParams) Validate() error {
	if p.ContractorID == 0 {
		return fmt.Errorf("%s", strings.ToLower(ErrMsgContractorRequired))
	}
	if p.Page < 0 {
		return fmt.Errorf("page must be a positive number")
	}
	return nil
}

// OptimizationActionParams defines the parameters for contractor actions on an
// optimization (decline, askCustomers, accept)
type OptimizationActionParams struct {
	ContractorID   uint `json:"contractor_id"`
	OptimizationID uint `json:"optimization_id"`
}

// Validate validates the parameters for a contractor action
func (p OptimizationActionParams) Validate() error {
	if p.ContractorID == 0 {
		return fmt.Errorf("%s", strings.ToLower(ErrMsgContractorRequired))
	}
	if p.OptimizationID == 0 {
		return fmt.Errorf("%s", strings.ToLower(ErrMsgOptIDRequired))
	}
	return nil
}

// OptimizationRespondSuggestionParams defines the parameters for a customer's
// answer on one optimization suggestion
type OptimizationRespondSuggestionParams struct {
	SuggestionID uint `json:"suggestion_id"`
	Approved     bool `json:"approved"`
}

// Validate validates the parameters for a customer's answer
func (p OptimizationRespondSuggestionParams) Validate() error {
	if p.SuggestionID == 0 {
		return fmt.Errorf("%s", strings.ToLower(ErrMsgSuggIDRequired))
	}
	return nil
}
