// Package handlers provides HTTP request handling
package handlers

import (
	fiber "github.com/gofiber/fiber/v2"

	"github.com/fieldsmith/dispatch/internal/db/models"
	"github.com/fieldsmith/dispatch/internal/schedule"
	"github.com/fieldsmith/dispatch/internal/services"
)

// ScheduleHandlers contains the shift planning handlers
type ScheduleHandlers struct {
	service *services.Job
}

// NewScheduleHandlers creates a new schedule handlers instance
func NewScheduleHandlers(service *services.Job) *ScheduleHandlers {
	return &ScheduleHandlers{service: service}
}

// SchedulePlanResponse is the wire shape of a shift plan preview
type SchedulePlanResponse struct {
	Shifted      bool   `json:"shifted"`
	Start        string `json:"start"`
	StartMinutes int    `json:"start_minutes"`
	Note         string `json:"note,omitempty"`
}

// ScheduleSetResponse is the wire shape of an applied schedule edit
type ScheduleSetResponse struct {
	Job  *models.Job          `json:"job"`
	Plan SchedulePlanResponse `json:"plan"`
}

func planResponse(res schedule.ShiftResult) SchedulePlanResponse {
	return SchedulePlanResponse{
		Shifted:      res.Shifted,
		Start:        schedule.FormatClock(res.NewStart),
		StartMinutes: res.NewStart,
		Note:         res.Note,
	}
}

// Plan handles a dry-run shift plan against a contractor's day
func (h *ScheduleHandlers) Plan(c *fiber.Ctx, req RPCRequest) error {
	params, err := parseParams[SchedulePlanParams](req)
	if err != nil {
		return respondWithRPCError(c, fiber.StatusBadRequest, ErrMsgInvalidParams, err.Error(), req.ID)
	}

	if err := params.Validate(); err != nil {
		return respondWithRPCError(c, fiber.StatusBadRequest, err.Error(), nil, req.ID)
	}

	date, err := parseDateParam(params.Date)
	if err != nil {
		return respondWithRPCError(c, fiber.StatusBadRequest, err.Error(), nil, req.ID)
	}

	desired, err := schedule.ParseClock(params.Time)
	if err != nil {
		return respondWithRPCError(c, fiber.StatusBadRequest, err.Error(), nil, req.ID)
	}

	res, err := h.service.PlanShift(c.Context(), params.ContractorID, date, desired, params.DurationMinutes, params.ExcludeJobID)
	if err != nil {
		return respondWithRPCError(c, statusForError(err), ErrMsgJobScheduleFailed, err.Error(), req.ID)
	}

	return c.JSON(RPCResponse{
		Data:    planResponse(res),
		Success: true,
		ID:      req.ID,
	})
}

// Set handles a contractor moving a job to a new date and time. The edit
// passes through the conflict detector, so the applied start can differ from
// the requested one.
func (h *ScheduleHandlers) Set(c *fiber.Ctx, req RPCRequest) error {
	params, err := parseParams[ScheduleSetParams](req)
	if err != nil {
		return respondWithRPCError(c, fiber.StatusBadRequest, ErrMsgInvalidParams, err.Error(), req.ID)
	}

	if err := params.Validate(); err != nil {
		return respondWithRPCError(c, fiber.StatusBadRequest, err.Error(), nil, req.ID)
	}

	date, err := parseDateParam(params.Date)
	if err != nil {
		return respondWithRPCError(c, fiber.StatusBadRequest, err.Error(), nil, req.ID)
	}

	job, res, err := h.service.SetSchedule(c.Context(), params.ContractorID, params.JobID, date, params.Time)
	if err != nil {
		return respondWithRPCError(c, statusForError(err), ErrMsgJobScheduleFailed, err.Error(), req.ID)
	}

	return c.JSON(RPCResponse{
		Data: ScheduleSetResponse{
			Job:  job,
			Plan: planResponse(res),
		},
		Success: true,
		ID:      req.ID,
	})
}
