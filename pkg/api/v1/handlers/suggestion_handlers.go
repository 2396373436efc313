// Package handlers provides HTTP request handling
package handlers

import (
	fiber "github.com/gofiber/fiber/v2"

	"github.com/fieldsmith/dispatch/internal/services"
)

// SuggestionHandlers contains all alternative suggestion related handlers
type SuggestionHandlers struct {
	service *services.Suggestion
}

// NewSuggestionHandlers creates a new suggestion handlers instance
func NewSuggestionHandlers(service *services.Suggestion) *SuggestionHandlers {
	return &SuggestionHandlers{service: service}
}

// Propose handles a contractor proposing an alternative slot for a job
func (h *SuggestionHandlers) Propose(c *fiber.Ctx, req RPCRequest) error {
	params, err := parseParams[SuggestionProposeParams](req)
	if err != nil {
		return respondWithRPCError(c, fiber.StatusBadRequest, ErrMsgInvalidParams, err.Error(), req.ID)
	}

	if err := params.Validate(); err != nil {
		return respondWithRPCError(c, fiber.StatusBadRequest, err.Error(), nil, req.ID)
	}

	date, err := parseDateParam(params.SuggestedDate)
	if err != nil {
		return respondWithRPCError(c, fiber.StatusBadRequest, err.Error(), nil, req.ID)
	}

	suggestion, err := h.service.Propose(c.Context(), params.ContractorID, params.JobID, date, params.SuggestedSlot)
	if err != nil {
		return respondWithRPCError(c, statusForError(err), ErrMsgSuggProposeFailed, err.Error(), req.ID)
	}

	return c.JSON(RPCResponse{
		Data:    suggestion,
		Success: true,
		ID:      req.ID,
	})
}

// Respond handles a customer accepting or declining a suggestion. Answers to
// suggestions that already reached a terminal state come back as successful
// no-ops with Applied set to false.
func (h *SuggestionHandlers) Respond(c *fiber.Ctx, req RPCRequest) error {
	params, err := parseParams[SuggestionRespondParams](req)
	if err != nil {
		return respondWithRPCError(c, fiber.StatusBadRequest, ErrMsgInvalidParams, err.Error(), req.ID)
	}

	if err := params.Validate(); err != nil {
		return respondWithRPCError(c, fiber.StatusBadRequest, err.Error(), nil, req.ID)
	}

	outcome, err := h.service.Respond(c.Context(), params.SuggestionID, params.Accept)
	if err != nil {
		return respondWithRPCError(c, statusForError(err), ErrMsgSuggRespondFailed, err.Error(), req.ID)
	}

	return c.JSON(RPCResponse{
		Data:    outcome,
		Success: true,
		ID:      req.ID,
	})
}

// Get handles retrieving a suggestion by ID
func (h *SuggestionHandlers) Get(c *fiber.Ctx, req RPCRequest) error {
	params, err := parseParams[SuggestionGetParams](req)
	if err != nil {
		return respondWithRPCError(c, fiber.StatusBadRequest, ErrMsgInvalidParams, err.Error(), req.ID)
	}

	if err := params.Validate(); err != nil {
		return respondWithRPCError(c, fiber.StatusBadRequest, err.Error(), nil, req.ID)
	}

	suggestion, err := h.service.Get(c.Context(), params.SuggestionID)
	if err != nil {
		return respondWithRPCError(c, statusForError(err), ErrMsgSuggGetFailed, err.Error(), req.ID)
	}

	return c.JSON(RPCResponse{
		Data:    suggestion,
		Success: true,
		ID:      req.ID,
	})
}

// ListByJob handles listing all suggestions attached to a job
func (h *SuggestionHandlers) ListByJob(c *fiber.Ctx, req RPCRequest) error {
	params, err := parseParams[SuggestionListByJobParams](req)
	if err != nil {
		return respondWithRPCError(c, fiber.StatusBadRequest, ErrMsgInvalidParams, err.Error(), req.ID)
	}

	if err := params.Validate(); err != nil {
		return respondWithRPCError(c, fiber.StatusBadRequest, err.Error(), nil, req.ID)
	}

	suggestions, err := h.service.ListByJob(c.Context(), params.JobID)
	if err != nil {
		return respondWithRPCError(c, statusForError(err), ErrMsgSuggListFailed, err.Error(), req.ID)
	}

	return c.JSON(RPCResponse{
		Data:    suggestions,
		Success: true,
		ID:      req.ID,
	})
}

// ListByContractor handles listing a contractor's suggestions with pagination
func (h *SuggestionHandlers) ListByContractor(c *fiber.Ctx, req RPCRequest) error {
	params, err := parseParams[SuggestionListByContractorParams](req)
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

	suggestions, err := h.service.ListByContractor(c.Context(), params.ContractorID, listOpts)
	if err != nil {
		return respondWithRPCError(c, statusForError(err), ErrMsgSuggListFailed, err.Error(), req.ID)
	}

	return c.JSON(RPCResponse{
		Data:    suggestions,
		Success: true,
		ID:      req.ID,
	})
}
