package handlers

import (
	"fmt"
	"strings"

	fiber "github.com/gofiber/fiber/v2"

	"github.com/fieldsmith/dispatch/internal/db/models"
	"github.com/fieldsmith/dispatch/internal/types"
)

// JobHandler handles HTTP requests for job operations
type JobHandler struct {
	*APIHandler
}

// NewJobHandler creates a new JobHandler instance
func NewJobHandler(api *APIHandler) *JobHandler {
	return &JobHandler{
		APIHandler: api,
	}
}

// JobCreateParams defines the request body for booking a job
type JobCreateParams struct {
	ContractorID    uint    `json:"contractor_id"`
	ClientID        uint    `json:"client_id"`
	ScheduledDate   string  `json:"scheduled_date"`
	ScheduledTime   *string `json:"scheduled_time,omitempty"`
	DurationMinutes int     `json:"duration_minutes,omitempty"`
}

// Validate validates the request body for booking a job
func (p JobCreateParams) Validate() error {
	if p.ContractorID == 0 {
		return fmt.Errorf("%s", strings.ToLower(ErrMsgContractorRequired))
	}
	if p.ClientID == 0 {
		return fmt.Errorf("client id is required")
	}
	if p.ScheduledDate == "" {
		return fmt.Errorf("%s", strings.ToLower(ErrMsgDateRequired))
	}
	if p.DurationMinutes < 0 {
		return fmt.Errorf("duration must be a positive number of minutes")
	}
	return nil
}

// JobCreateResponse is the wire shape of a booked job. Plan reports whether
// the requested start survived conflict detection.
type JobCreateResponse struct {
	Job  *models.Job          `json:"job"`
	Plan SchedulePlanResponse `json:"plan"`
}

// ListJobs returns jobs filtered by status and contractor
func (h *JobHandler) ListJobs(c *fiber.Ctx) error {
	var opts models.ListOptions
	opts.Limit = c.QueryInt("limit", models.DefaultLimit)
	opts.Offset = c.QueryInt("offset", 0)
	opts.IncludeDeleted = c.QueryBool("include_deleted", false)

	status := models.JobStatusUnknown
	if statusStr := c.Query("status"); statusStr != "" {
		parsed, err := models.ParseJobStatus(statusStr)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": fmt.Sprintf("%s: %v", strings.ToLower(ErrMsgInvalidJobStatus), err),
			})
		}
		status = parsed
	}
	contractorID := uint(c.QueryInt("contractor_id", 0))

	jobs, err := h.job.List(c.Context(), status, contractorID, &opts)
	if err != nil {
		return c.Status(statusForError(err)).JSON(fiber.Map{
			"error": fmt.Sprintf("failed to list jobs: %v", err),
		})
	}

	return c.JSON(types.ListResponse[models.Job]{
		Rows: jobs,
		Pagination: types.PaginationResponse{
			Total:  len(jobs),
			Page:   1,
			Limit:  opts.Limit,
			Offset: opts.Offset,
		},
	})
}

// GetJob returns details of a specific job
func (h *JobHandler) GetJob(c *fiber.Ctx) error {
	jobID, err := c.ParamsInt("id")
	if err != nil || jobID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": strings.ToLower(ErrMsgInvalidJobID),
		})
	}

	job, err := h.job.Get(c.Context(), uint(jobID))
	if err != nil {
		return c.Status(statusForError(err)).JSON(fiber.Map{
			"error": fmt.Sprintf("failed to get job: %v", err),
		})
	}

	return c.JSON(job)
}

// CreateJob books a new job for a contractor
func (h *JobHandler) CreateJob(c *fiber.Ctx) error {
	var params JobCreateParams
	if err := c.BodyParser(&params); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("invalid request body: %v", err),
		})
	}
	if err := params.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	date, err := parseDateParam(params.ScheduledDate)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	job := &models.Job{
		ContractorID:    params.ContractorID,
		ClientID:        params.ClientID,
		ScheduledDate:   date,
		ScheduledTime:   params.ScheduledTime,
		DurationMinutes: params.DurationMinutes,
	}

	created, res, err := h.job.Create(c.Context(), params.ContractorID, job)
	if err != nil {
		return c.Status(statusForError(err)).JSON(fiber.Map{
			"error": fmt.Sprintf("failed to create job: %v", err),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(JobCreateResponse{
		Job:  created,
		Plan: planResponse(res),
	})
}

// CancelJob cancels a job on behalf of its contractor
func (h *JobHandler) CancelJob(c *fiber.Ctx) error {
	jobID, err := c.ParamsInt("id")
	if err != nil || jobID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": strings.ToLower(ErrMsgInvalidJobID),
		})
	}
	contractorID := uint(c.QueryInt("contractor_id", 0))
	if contractorID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": strings.ToLower(ErrMsgContractorRequired),
		})
	}

	job, err := h.job.Cancel(c.Context(), contractorID, uint(jobID))
	if err != nil {
		return c.Status(statusForError(err)).JSON(fiber.Map{
			"error": fmt.Sprintf("failed to cancel job: %v", err),
		})
	}

	return c.JSON(job)
}
