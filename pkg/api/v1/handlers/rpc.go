// Package handlers provides HTTP request handling
package handlers

import (
	"encoding/json"

	fiber "github.com/gofiber/fiber/v2"
)

// RPCRequest defines the structure for RPC-style API requests
type RPCRequest struct {
	// Method is the operation to perform (e.g., "suggestion.propose", "optimization.accept")
	Method string `json:"method"`

	// Params contains the operation parameters
	Params interface{} `json:"params"`

	// ID is an optional request identifier that will be echoed back in the response
	ID string `json:"id,omitempty"`
}

// RPCResponse defines the structure for RPC-style API responses
type RPCResponse struct {
	// Data contains the operation result
	Data interface{} `json:"data,omitempty"`

	// Error contains error information if the operation failed
	Error *RPCError `json:"error,omitempty"`

	// ID echoes back the request ID if provided
	ID string `json:"id,omitempty"`

	// Success indicates if the operation was successful
	Success bool `json:"success"`
}

// RPCError defines the structure for RPC errors
type RPCError struct {
	// Code is a numeric error code
	Code int `json:"code"`

	// Message is a human-readable error message
	Message string `json:"message"`

	// Data contains additional error details (optional)
	Data interface{} `json:"data,omitempty"`
}

// RPCHandler handles RPC-style API requests for suggestions, optimizations
// and schedule planning
type RPCHandler struct {
	SuggestionHandlers   *SuggestionHandlers
	OptimizationHandlers *OptimizationHandlers
	ScheduleHandlers     *ScheduleHandlers
}

// HandleRPC handles all RPC requests for various resource types
func (h *RPCHandler) HandleRPC(c *fiber.Ctx) error {
	var req RPCRequest
	if err := c.BodyParser(&req); err != nil {
		return respondWithRPCError(c, fiber.StatusBadRequest, ErrMsgInvalidReqFormat, err.Error(), req.ID)
	}

	// Check if method is provided
	if req.Method == "" {
		return respondWithRPCError(c, fiber.StatusBadRequest, ErrMsgMethodRequired, nil, req.ID)
	}

	// Route to appropriate handler based on method prefix
	switch {
	case IsSuggestionMethod(req.Method):
		return h.handleSuggestionMethod(c, req)
	case IsOptimizationMethod(req.Method):
		return h.handleOptimizationMethod(c, req)
	case IsScheduleMethod(req.Method):
		return h.handleScheduleMethod(c, req)
	default:
		return respondWithRPCError(c, fiber.StatusBadRequest, ErrMsgUnknownMethod, nil, req.ID)
	}
}

// handleSuggestionMethod routes suggestion methods to their respective handlers
func (h *RPCHandler) handleSuggestionMethod(c *fiber.Ctx, req RPCRequest) error {
	if h.SuggestionHandlers == nil {
		return respondWithRPCError(c, fiber.StatusInternalServerError, "Suggestion handlers not configured", nil, req.ID)
	}

	switch req.Method {
	case SuggestionPropose:
		return h.SuggestionHandlers.Propose(c, req)
	case SuggestionRespond:
		return h.SuggestionHandlers.Respond(c, req)
	case SuggestionGet:
		return h.SuggestionHandlers.Get(c, req)
	case SuggestionListByJob:
		return h.SuggestionHandlers.ListByJob(c, req)
	case SuggestionListByContractor:
		return h.SuggestionHandlers.ListByContractor(c, req)
	default:
		return respondWithRPCError(c, fiber.StatusBadRequest, ErrMsgUnknownSuggMethod, nil, req.ID)
	}
}

// handleOptimizationMethod routes optimization methods to their respective handlers
func (h *RPCHandler) handleOptimizationMethod(c *fiber.Ctx, req RPCRequest) error {
	if h.OptimizationHandlers == nil {
		return respondWithRPCError(c, fiber.StatusInternalServerError, "Optimization handlers not configured", nil, req.ID)
	}

	switch req.Method {
	case OptimizationSubmit:
		return h.OptimizationHandlers.Submit(c, req)
	case OptimizationGet:
		return h.OptimizationHandlers.Get(c, req)
	case OptimizationList:
		return h.OptimizationHandlers.List(c, req)
	case OptimizationDecline:
		return h.OptimizationHandlers.Decline(c, req)
	case OptimizationAskCustomers:
		return h.OptimizationHandlers.AskCustomers(c, req)
	case OptimizationAccept:
		return h.OptimizationHandlers.Accept(c, req)
	case OptimizationRespondSuggestion:
		return h.OptimizationHandlers.RespondSuggestion(c, req)
	default:
		return respondWithRPCError(c, fiber.StatusBadRequest, ErrMsgUnknownOptMethod, nil, req.ID)
	}
}

// handleScheduleMethod routes schedule methods to their respective handlers
func (h *RPCHandler) handleScheduleMethod(c *fiber.Ctx, req RPCRequest) error {
	if h.ScheduleHandlers == nil {
		return respondWithRPCError(c, fiber.StatusInternalServerError, "Schedule handlers not configured", nil, req.ID)
	}

	switch req.Method {
	case SchedulePlan:
		return h.ScheduleHandlers.Plan(c, req)
	case ScheduleSet:
		return h.ScheduleHandlers.Set(c, req)
	default:
		return respondWithRPCError(c, fiber.StatusBadRequest, ErrMsgUnknownSchedMethod, nil, req.ID)
	}
}

// parseParams is a helper function to parse RPC parameters into a specific struct type
func parseParams[T any](req RPCRequest) (T, error) {
	var params T

	// Convert params to JSON
	paramsJSON, err := json.Marshal(req.Params)
	if err != nil {
		return params, err
	}

	// Unmarshal to target type
	if err := json.Unmarshal(paramsJSON, &params); err != nil {
		return params, err
	}

	return params, nil
}

// Helper to create a standardized RPC error response
func respondWithRPCError(c *fiber.Ctx, httpCode int, message string, data interface{}, id string) error {
	return c.Status(httpCode).JSON(RPCResponse{
		Error: &RPCError{
			Code:    httpCode,
			Message: message,
			Data:    data,
		},
		ID:      id,
		Success: false,
	})
}
