// Package handlers provides HTTP request handling
package handlers

import (
	fiber "github.com/gofiber/fiber/v2"

	"github.com/fieldsmith/dispatch/internal/services"
)

// OptimizationHandlers contains all route optimization related handlers
type OptimizationHandlers struct {
	service *services.Optimization
}

// NewOptimizationHandlers creates a new optimization handlers instance
func NewOptimizationHandlers(service *services.Optimization) *OptimizationHandlers {
	return &OptimizationHandlers{service: service}
}

// Submit handles ingestion of a route optimization batch
func (h *OptimizationHandlers) Submit(c *fiber.Ctx, req RPCRequest) error {
	params, err := parseParams[OptimizationSubmitParams](req)
	if err != nil {
		return respondWithRPCError(c, fiber.StatusBadRequest, ErrMsgInvalidParams, err.Error(), req.ID)
	}

	if err := params.Validate(); err != nil {
		return respondWithRPCError(c, fiber.StatusBadRequest, err.Error(), nil, req.ID)
	}

	opt, err := params.ToModel()
	if err != nil {
		return respondWithRPCError(c, fiber.StatusBadRequest, err.Error(), nil, req.ID)
	}

	created, err := h.service.Submit(c.Context(), opt)
	if err != nil {
		return respondWithRPCError(c, statusForError(err), ErrMsgOptSubmitFailed, err.Error(), req.ID)
	}

	return c.JSON(RPCResponse{
		Data:    created,
		Success: true,
		ID:      req.ID,
	})
}

// Get handles retrieving an optimization with its suggestions
func (h *OptimizationHandlers) Get(c *fiber.Ctx, req RPCRequest) error {
	params, err := parseParams[OptimizationGetParams](req)
	if err != nil {
		return respondWithRPCError(c, fiber.StatusBadRequest, ErrMsgInvalidParams, err.Error(), req.ID)
	}

	if err := params.Validate(); err != nil {
		return respondWithRPCError(c, fiber.StatusBadRequest, err.Error(), nil, req.ID)
	}

	opt, err := h.service.Get(c.Context(), params.OptimizationID)
	if err != nil {
		return respondWithRPCError(c, statusForError(err), ErrMsgOptGetFailed, err.Error(), req.ID)
	}

	return c.JSON(RPCResponse{
		Data:    opt,
		Success: true,
		ID:      req.ID,
	})
}

// List handles listing a contractor's optimizations with pagination
func (h *OptimizationHandlers) List(c *fiber.Ctx, req RPCRequest) error {
	params, err := parseParams[OptimizationListParams](req)
	if err != nil {
		return respondWithRPCError(c, fiber.StatusBadRequest, ErrMsgInvalidParams, err.Error(), req.ID)
	}

	if err := params.Validate(); err != nil {
		return respondWithRPCError(c, fiber.StatusBadRequest, err.Error(), nil, req.ID)
	}

	page := 1
	if params.Page > 0 {
		page = params.Page
	}
	listOpts := getPaginationOptions(page)

	opts, err := h.service.ListByContractor(c.Context(), params.ContractorID, listOpts)
	if err != nil {
		return respondWithRPCError(c, statusForError(err), ErrMsgOptListFailed, err.Error(), req.ID)
	}

	return c.JSON(RPCResponse{
		Data:    opts,
		Success: true,
		ID:      req.ID,
	})
}

// Decline handles a contractor declining an optimization batch
func (h *OptimizationHandlers) Decline(c *fiber.Ctx, req RPCRequest) error {
	params, err := parseParams[OptimizationActionParams](req)
	if err != nil {
		return respondWithRPCError(c, fiber.StatusBadRequest, ErrMsgInvalidParams, err.Error(), req.ID)
	}

	if err := params.Validate(); err != nil {
		return respondWithRPCError(c, fiber.StatusBadRequest, err.Error(), nil, req.ID)
	}

	outcome, err := h.service.Decline(c.Context(), params.ContractorID, params.OptimizationID)
	if err != nil {
		return respondWithRPCError(c, statusForError(err), ErrMsgOptDeclineFailed, err.Error(), req.ID)
	}

	return c.JSON(RPCResponse{
		Data:    outcome,
		Success: true,
		ID:      req.ID,
	})
}

// AskCustomers handles a contractor sending approval-flagged suggestions out
// to the affected customers
func (h *OptimizationHandlers) AskCustomers(c *fiber.Ctx, req RPCRequest) error {
	params, err := parseParams[OptimizationActionParams](req)
	if err != nil {
		return respondWithRPCError(c, fiber.StatusBadRequest, ErrMsgInvalidParams, err.Error(), req.ID)
	}

	if err := params.Validate(); err != nil {
		return respondWithRPCError(c, fiber.StatusBadRequest, err.Error(), nil, req.ID)
	}

	outcome, err := h.service.AskCustomers(c.Context(), params.ContractorID, params.OptimizationID)
	if err != nil {
		return respondWithRPCError(c, statusForError(err), ErrMsgOptAskFailed, err.Error(), req.ID)
	}

	return c.JSON(RPCResponse{
		Data:    outcome,
		Success: true,
		ID:      req.ID,
	})
}

// Accept handles a contractor accepting an optimization, applying the batch
// to the underlying jobs
func (h *OptimizationHandlers) Accept(c *fiber.Ctx, req RPCRequest) error {
	params, err := parseParams[OptimizationActionParams](req)
	if err != nil {
		return respondWithRPCError(c, fiber.StatusBadRequest, ErrMsgInvalidParams, err.Error(), req.ID)
	}

	if err := params.Validate(); err != nil {
		return respondWithRPCError(c, fiber.StatusBadRequest, err.Error(), nil, req.ID)
	}

	outcome, err := h.service.Accept(c.Context(), params.ContractorID, params.OptimizationID)
	if err != nil {
		return respondWithRPCError(c, statusForError(err), ErrMsgOptAcceptFailed, err.Error(), req.ID)
	}

	return c.JSON(RPCResponse{
		Data:    outcome,
		Success: true,
		ID:      req.ID,
	})
}

// RespondSuggestion handles a customer's answer on one optimization suggestion
func (h *OptimizationHandlers) RespondSuggestion(c *fiber.Ctx, req RPCRequest) error {
	params, err := parseParams[OptimizationRespondSuggestionParams](req)
	if err != nil {
		return respondWithRPCError(c, fiber.StatusBadRequest, ErrMsgInvalidParams, err.Error(), req.ID)
	}

	if err := params.Validate(); err != nil {
		return respondWithRPCError(c, fiber.StatusBadRequest, err.Error(), nil, req.ID)
	}

	outcome, err := h.service.RespondSuggestion(c.Context(), params.SuggestionID, params.Approved)
	if err != nil {
		return respondWithRPCError(c, statusForError(err), ErrMsgOptRespondFailed, err.Error(), req.ID)
	}

	return c.JSON(RPCResponse{
		Data:    outcome,
		Success: true,
		ID:      req.ID,
	})
}
