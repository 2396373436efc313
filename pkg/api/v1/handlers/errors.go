// Package handlers provides HTTP request handling
package handlers

import (
	"errors"

	fiber "github.com/gofiber/fiber/v2"

	"github.com/fieldsmith/dispatch/internal/types"
)

// Common error messages
const (
	ErrMsgInvalidParams      = "Invalid parameters"
	ErrMsgInvalidReqFormat   = "Invalid request format"
	ErrMsgMethodRequired     = "Method is required"
	ErrMsgUnknownMethod      = "Unknown method"
	ErrMsgUnknownSuggMethod  = "Unknown suggestion method"
	ErrMsgUnknownOptMethod   = "Unknown optimization method"
	ErrMsgUnknownSchedMethod = "Unknown schedule method"
)

// Job error messages
const (
	ErrMsgJobIDRequired      = "Job id is required"
	ErrMsgInvalidJobID       = "Invalid job id"
	ErrMsgJobNotFound        = "Job not found"
	ErrMsgJobCreateFailed    = "Failed to create job"
	ErrMsgJobListFailed      = "Failed to list jobs"
	ErrMsgJobGetFailed       = "Failed to get job"
	ErrMsgJobCancelFailed    = "Failed to cancel job"
	ErrMsgJobScheduleFailed  = "Failed to reschedule job"
	ErrMsgInvalidJobStatus   = "Invalid job status"
	ErrMsgContractorRequired = "Contractor id is required"
	ErrMsgDateRequired       = "Date is required"
	ErrMsgInvalidDate        = "Invalid date, expected YYYY-MM-DD"
	ErrMsgTimeRequired       = "Time is required"
)

// Suggestion error messages
const (
	ErrMsgSuggIDRequired    = "Suggestion id is required"
	ErrMsgInvalidTimeSlot   = "Invalid time slot"
	ErrMsgSuggProposeFailed = "Failed to propose alternative"
	ErrMsgSuggRespondFailed = "Failed to respond to suggestion"
	ErrMsgSuggGetFailed     = "Failed to get suggestion"
	ErrMsgSuggListFailed    = "Failed to list suggestions"
)

// Optimization error messages
const (
	ErrMsgOptIDRequired          = "Optimization id is required"
	ErrMsgOptSubmitFailed        = "Failed to submit optimization"
	ErrMsgOptGetFailed           = "Failed to get optimization"
	ErrMsgOptListFailed          = "Failed to list optimizations"
	ErrMsgOptDeclineFailed       = "Failed to decline optimization"
	ErrMsgOptAskFailed           = "Failed to request customer approval"
	ErrMsgOptAcceptFailed        = "Failed to accept optimization"
	ErrMsgOptRespondFailed       = "Failed to record customer response"
	ErrMsgOptSuggestionsRequired = "Optimization must carry at least one suggestion"
)

// User error messages
const (
	ErrMsgInvalidUserID    = "Invalid user id"
	ErrMsgUserIDRequired   = "User id is required"
	ErrMsgUsernameRequired = "Username is required"
	ErrMsgUserNotFound     = "User not found"
	ErrMsgGetUsersFailed   = "Failed to get users"
	ErrMsgGetUserFailed    = "Failed to get user"
	ErrMsgCreateUserFailed = "Failed to create user"
	ErrMsgDeleteUserFailed = "Failed to delete user"
)

// statusForError maps domain error categories onto HTTP status codes.
func statusForError(err error) int {
	switch {
	case errors.Is(err, types.ErrValidation):
		return fiber.StatusBadRequest
	case errors.Is(err, types.ErrNotFound):
		return fiber.StatusNotFound
	default:
		return fiber.StatusInternalServerError
	}
}
