// Package handlers provides HTTP request handling
package handlers

// RPC method constants for standardized method naming
const (
	// Suggestion methods
	SuggestionPropose          = "suggestion.propose"
	SuggestionRespond          = "suggestion.respond"
	SuggestionGet              = "suggestion.get"
	SuggestionListByJob        = "suggestion.listByJob"
	SuggestionListByContractor = "suggestion.listByContractor"

	// Optimization methods
	OptimizationSubmit            = "optimization.submit"
	OptimizationGet               = "optimization.get"
	OptimizationList              = "optimization.list"
	OptimizationDecline           = "optimization.decline"
	OptimizationAskCustomers      = "optimization.askCustomers"
	OptimizationAccept            = "optimization.accept"
	OptimizationRespondSuggestion = "optimization.respondSuggestion"

	// Schedule methods
	SchedulePlan = "schedule.plan"
	ScheduleSet  = "schedule.set"
)

// IsSuggestionMethod checks if the given method is a suggestion operation
func IsSuggestionMethod(method string) bool {
	switch method {
	case SuggestionPropose, SuggestionRespond, SuggestionGet, SuggestionListByJob, SuggestionListByContractor:
		return true
	default:
		return false
	}
}

// IsOptimizationMethod checks if the given method is an optimization operation
func IsOptimizationMethod(method string) bool {
	switch method {
	case OptimizationSubmit, OptimizationGet, OptimizationList, OptimizationDecline,
		OptimizationAskCustomers, OptimizationAccept, OptimizationRespondSuggestion:
		return true
	default:
		return false
	}
}

// IsScheduleMethod checks if the given method is a schedule operation
func IsScheduleMethod(method string) bool {
	switch method {
	case SchedulePlan, ScheduleSet:
		return true
	default:
		return false
	}
}
