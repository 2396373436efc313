// Package client provides the API client for interacting with the dispatch API
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	fiber "github.com/gofiber/fiber/v2"

	"github.com/fieldsmith/dispatch/internal/db/models"
	"github.com/fieldsmith/dispatch/internal/db/repos"
	"github.com/fieldsmith/dispatch/internal/types"
	"github.com/fieldsmith/dispatch/pkg/api/v1/handlers"
	"github.com/fieldsmith/dispatch/pkg/api/v1/routes"
)

// DefaultTimeout is the default timeout for API requests
const DefaultTimeout = 30 * time.Second

// Client is the interface for API client
type Client interface {
	// Health Check
	HealthCheck(ctx context.Context) (map[string]string, error)

	// Job Endpoints
	ListJobs(ctx context.Context, opts *models.ListOptions) ([]models.Job, error)
	GetJob(ctx context.Context, id string) (models.Job, error)
	CreateJob(ctx context.Context, params handlers.JobCreateParams) (handlers.JobCreateResponse, error)
	CancelJob(ctx context.Context, contractorID uint, id string) (models.Job, error)

	// User Endpoints
	GetUsers(ctx context.Context, opts *models.ListOptions) ([]models.User, error)
	GetUserByID(ctx context.Context, id string) (models.User, error)
	CreateUser(ctx context.Context, params handlers.UserCreateParams) (models.User, error)
	DeleteUser(ctx context.Context, id string) error

	// Suggestion methods
	ProposeSuggestion(ctx context.Context, params handlers.SuggestionProposeParams) (models.AlternativeSuggestion, error)
	RespondSuggestion(ctx context.Context, params handlers.SuggestionRespondParams) (repos.RespondOutcome, error)
	GetSuggestion(ctx context.Context, params handlers.SuggestionGetParams) (models.AlternativeSuggestion, error)
	ListSuggestionsByJob(ctx context.Context, params handlers.SuggestionListByJobParams) ([]models.AlternativeSuggestion, error)
	ListSuggestionsByContractor(ctx context.Context, params handlers.SuggestionListByContractorParams) ([]models.AlternativeSuggestion, error)

	// Optimization methods
	SubmitOptimization(ctx context.Context, params handlers.OptimizationSubmitParams) (models.RouteOptimization, error)
	GetOptimization(ctx context.Context, params handlers.OptimizationGetParams) (models.RouteOptimization, error)
	ListOptimizations(ctx context.Context, params handlers.OptimizationListParams) ([]models.RouteOptimization, error)
	DeclineOptimization(ctx context.Context, params handlers.OptimizationActionParams) (repos.TransitionOutcome, error)
	AskCustomers(ctx context.Context, params handlers.OptimizationActionParams) (repos.TransitionOutcome, error)
	AcceptOptimization(ctx context.Context, params handlers.OptimizationActionParams) (repos.ApplyOutcome, error)
	RespondOptimizationSuggestion(ctx context.Context, params handlers.OptimizationRespondSuggestionParams) (repos.SuggestionRespondOutcome, error)

	// Schedule methods
	PlanShift(ctx context.Context, params handlers.SchedulePlanParams) (handlers.SchedulePlanResponse, error)
	SetSchedule(ctx context.Context, params handlers.ScheduleSetParams) (handlers.ScheduleSetResponse, error)
}

var _ Client = &APIClient{}

// Options contains configuration options for the API client
type Options struct {
	// BaseURL is the base URL of the API
	BaseURL string

	// Timeout is the request timeout
	Timeout time.Duration
}

// DefaultOptions returns the default client options
func DefaultOptions() *Options {
	return &Options{
		BaseURL: routes.DefaultBaseURL,
		Timeout: DefaultTimeout,
	}
}

// APIClient implements the Client interface
type APIClient struct {
	baseURL string
	timeout time.Duration
}

// NewClient creates a new API client with the given options
func NewClient(opts *Options) (Client, error) {
	if opts == nil {
		opts = DefaultOptions()
	}

	// Validate the base URL
	_, err := url.Parse(opts.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}

	return &APIClient{
		baseURL: opts.BaseURL,
		timeout: opts.Timeout,
	}, nil
}

// createAgent creates a new Fiber Agent for the given method and endpoint
func (c *APIClient) createAgent(ctx context.Context, method, endpoint string, body interface{}) (*fiber.Agent, error) {
	// Resolve the endpoint URL
	fullURL := c.baseURL + endpoint

	// Create a new agent based on the HTTP method
	var agent *fiber.Agent
	switch method {
	case http.MethodGet:
		agent = fiber.Get(fullURL)
	case http.MethodPost:
		agent = fiber.Post(fullURL)
	case http.MethodPut:
		agent = fiber.Put(fullURL)
	case http.MethodDelete:
		agent = fiber.Delete(fullURL)
	default:
		return nil, fmt.Errorf("unsupported HTTP method: %s", method)
	}

	// Set timeout from context or client default
	if deadline, ok := ctx.Deadline(); ok {
		agent.Timeout(time.Until(deadline))
	} else {
		agent.Timeout(c.timeout)
	}

	// Set common headers
	agent.Set("Content-Type", "application/json")
	agent.Set("Accept", "application/json")

	// Add body if provided
	if body != nil {
		agent.JSON(body)
	}

	return agent, nil
}

// doRequest sends the HTTP request and processes the response
func (c *APIClient) doRequest(agent *fiber.Agent, v interface{}) error {
	// Execute the request
	statusCode, body, errs := agent.Bytes()
	if len(errs) > 0 {
		return fmt.Errorf("error sending request: %w", errs[0])
	}

	// Check for non-success status codes
	if statusCode < 200 || statusCode >= 300 {
		// If we can't decode the error response, return an error with the raw body as the message
		return &fiber.Error{
			Code:    statusCode,
			Message: string(body),
		}
	}

	// Decode the response body if a target is provided
	if v != nil && len(body) > 0 {
		if err := json.Unmarshal(body, v); err != nil {
			return fmt.Errorf("error decoding response: %w", err)
		}
	}

	return nil
}

// executeRequest creates an agent, sends the request, and processes the response
func (c *APIClient) executeRequest(ctx context.Context, method, endpoint string, body, response interface{}) error {
	agent, err := c.createAgent(ctx, method, endpoint, body)
	if err != nil {
		return err
	}

	return c.doRequest(agent, response)
}

// executeRPC performs the actual RPC call
func (c *APIClient) executeRPC(ctx context.Context, method string, params interface{}, result interface{}) error {
	endpoint := routes.RPCURL()

	// Create the request body
	requestBody := map[string]interface{}{
		"method": method,
		"params": params,
	}

	// Create the agent
	agent, err := c.createAgent(ctx, http.MethodPost, endpoint, requestBody)
	if err != nil {
		return err
	}

	// Execute the request and get the response body
	statusCode, body, errs := agent.Bytes()
	if len(errs) > 0 {
		return fmt.Errorf("error sending RPC request: %w", errs[0])
	}

	// Check for non-success status codes
	if statusCode < 200 || statusCode >= 300 {
		return &fiber.Error{
			Code:    statusCode,
			Message: string(body), // Raw body as error message
		}
	}

	// Unmarshal the response into the handlers.RPCResponse struct
	var rpcResp handlers.RPCResponse
	if err := json.Unmarshal(body, &rpcResp); err != nil {
		return fmt.Errorf("failed to unmarshal RPC response body: %w", err)
	}

	// Check for application-level errors
	if rpcResp.Error != nil {
		return fmt.Errorf("RPC error: %s (code: %d)", rpcResp.Error.Message, rpcResp.Error.Code)
	}

	if !rpcResp.Success {
		return fmt.Errorf("RPC call failed without specific error details")
	}

	// If result is nil, we don't need to unmarshal data (e.g., for notification-style calls)
	if result == nil {
		return nil
	}

	// Unmarshal the Data field into the provided result interface{}
	// Since rpcResp.Data is interface{}, we need to marshal it back to JSON
	// and then unmarshal it into the target result struct.
	dataBytes, err := json.Marshal(rpcResp.Data)
	if err != nil {
		return fmt.Errorf("failed to marshal RPC data field: %w", err)
	}

	if err := json.Unmarshal(dataBytes, result); err != nil {
		return fmt.Errorf("failed to unmarshal RPC data into result: %w", err)
	}

	return nil
}

// HealthCheck checks the API health status
func (c *APIClient) HealthCheck(ctx context.Context) (map[string]string, error) {
	endpoint := routes.HealthCheckURL()
	var response map[string]string
	if err := c.executeRequest(ctx, http.MethodGet, endpoint, nil, &response); err != nil {
		return map[string]string{}, err
	}
	return response, nil
}

// getQueryParams creates url.Values from ListOptions
func getQueryParams(opts *models.ListOptions) url.Values {
	q := url.Values{}
	if opts == nil {
		return q
	}

	// Pagination params
	if opts.Limit > 0 {
		q.Set("limit", fmt.Sprintf("%d", opts.Limit))
	}
	if opts.Offset > 0 {
		q.Set("offset", fmt.Sprintf("%d", opts.Offset))
	}

	// Filtering params
	if opts.IncludeDeleted {
		q.Set("include_deleted", "true")
	}

	return q
}

// Job methods implementation

// ListJobs lists jobs with optional pagination
func (c *APIClient) ListJobs(ctx context.Context, opts *models.ListOptions) ([]models.Job, error) {
	endpoint := routes.GetJobsURL(getQueryParams(opts))
	var response types.ListResponse[models.Job]
	if err := c.executeRequest(ctx, http.MethodGet, endpoint, nil, &response); err != nil {
		return []models.Job{}, err
	}
	return response.Rows, nil
}

// GetJob retrieves a job by ID
func (c *APIClient) GetJob(ctx context.Context, id string) (models.Job, error) {
	endpoint := routes.GetJobURL(id)
	var response models.Job
	if err := c.executeRequest(ctx, http.MethodGet, endpoint, nil, &response); err != nil {
		return models.Job{}, err
	}
	return response, nil
}

// CreateJob books a new job
func (c *APIClient) CreateJob(ctx context.Context, params handlers.JobCreateParams) (handlers.JobCreateResponse, error) {
	endpoint := routes.CreateJobURL()
	var response handlers.JobCreateResponse
	if err := c.executeRequest(ctx, http.MethodPost, endpoint, params, &response); err != nil {
		return handlers.JobCreateResponse{}, err
	}
	return response, nil
}

// CancelJob cancels a job on behalf of its contractor
func (c *APIClient) CancelJob(ctx context.Context, contractorID uint, id string) (models.Job, error) {
	q := url.Values{}
	q.Set("contractor_id", fmt.Sprintf("%d", contractorID))
	endpoint := routes.CancelJobURL(id, q)
	var response models.Job
	if err := c.executeRequest(ctx, http.MethodDelete, endpoint, nil, &response); err != nil {
		return models.Job{}, err
	}
	return response, nil
}

// User method implementation

// GetUsers lists users with optional pagination
func (c *APIClient) GetUsers(ctx context.Context, opts *models.ListOptions) ([]models.User, error) {
	endpoint := routes.GetUsersURL(getQueryParams(opts))
	var response types.ListResponse[models.User]
	if err := c.executeRequest(ctx, http.MethodGet, endpoint, nil, &response); err != nil {
		return []models.User{}, err
	}
	return response.Rows, nil
}

// GetUserByID retrieves a user by id
func (c *APIClient) GetUserByID(ctx context.Context, id string) (models.User, error) {
	endpoint := routes.GetUserByIDURL(id)
	var response models.User
	if err := c.executeRequest(ctx, http.MethodGet, endpoint, nil, &response); err != nil {
		return models.User{}, err
	}
	return response, nil
}

// CreateUser creates a new user
func (c *APIClient) CreateUser(ctx context.Context, params handlers.UserCreateParams) (models.User, error) {
	endpoint := routes.CreateUserURL()
	var response models.User
	if err := c.executeRequest(ctx, http.MethodPost, endpoint, params, &response); err != nil {
		return models.User{}, err
	}
	return response, nil
}

// DeleteUser deletes a user
func (c *APIClient) DeleteUser(ctx context.Context, id string) error {
	endpoint := routes.DeleteUserURL(id)
	return c.executeRequest(ctx, http.MethodDelete, endpoint, nil, nil)
}

// Suggestion methods

// ProposeSuggestion proposes an alternative slot for a job
func (c *APIClient) ProposeSuggestion(ctx context.Context, params handlers.SuggestionProposeParams) (models.AlternativeSuggestion, error) {
	var response models.AlternativeSuggestion
	if err := c.executeRPC(ctx, handlers.SuggestionPropose, params, &response); err != nil {
		return models.AlternativeSuggestion{}, err
	}
	return response, nil
}

// RespondSuggestion records a customer's answer on a suggestion
func (c *APIClient) RespondSuggestion(ctx context.Context, params handlers.SuggestionRespondParams) (repos.RespondOutcome, error) {
	var response repos.RespondOutcome
	if err := c.executeRPC(ctx, handlers.SuggestionRespond, params, &response); err != nil {
		return repos.RespondOutcome{}, err
	}
	return response, nil
}

// GetSuggestion retrieves a suggestion by ID
func (c *APIClient) GetSuggestion(ctx context.Context, params handlers.SuggestionGetParams) (models.AlternativeSuggestion, error) {
	var response models.AlternativeSuggestion
	if err := c.executeRPC(ctx, handlers.SuggestionGet, params, &response); err != nil {
		return models.AlternativeSuggestion{}, err
	}
	return response, nil
}

// ListSuggestionsByJob lists all suggestions attached to a job
func (c *APIClient) ListSuggestionsByJob(ctx context.Context, params handlers.SuggestionListByJobParams) ([]models.AlternativeSuggestion, error) {
	var response []models.AlternativeSuggestion
	if err := c.executeRPC(ctx, handlers.SuggestionListByJob, params, &response); err != nil {
		return nil, err
	}
	return response, nil
}

// ListSuggestionsByContractor lists a contractor's suggestions
func (c *APIClient) ListSuggestionsByContractor(ctx context.Context, params handlers.SuggestionListByContractorParams) ([]models.AlternativeSuggestion, error) {
	var response []models.AlternativeSuggestion
	if err := c.executeRPC(ctx, handlers.SuggestionListByContractor, params, &response); err != nil {
		return nil, err
	}
	return response, nil
}

// Optimization methods

// SubmitOptimization submits a route optimization batch
func (c *APIClient) SubmitOptimization(ctx context.Context, params handlers.OptimizationSubmitParams) (models.RouteOptimization, error) {
	var response models.RouteOptimization
	if err := c.executeRPC(ctx, handlers.OptimizationSubmit, params, &response); err != nil {
		return models.RouteOptimization{}, err
	}
	return response, nil
}

// GetOptimization retrieves an optimization with its suggestions
func (c *APIClient) GetOptimization(ctx context.Context, params handlers.OptimizationGetParams) (models.RouteOptimization, error) {
	var response models.RouteOptimization
	if err := c.executeRPC(ctx, handlers.OptimizationGet, params, &response); err != nil {
		return models.RouteOptimization{}, err
	}
	return response, nil
}

// ListOptimizations lists a contractor's optimizations
func (c *APIClient) ListOptimizations(ctx context.Context, params handlers.OptimizationListParams) ([]models.RouteOptimization, error) {
	var response []models.RouteOptimization
	if err := c.executeRPC(ctx, handlers.OptimizationList, params, &response); err != nil {
		return nil, err
	}
	return response, nil
}

// DeclineOptimization declines an optimization batch
func (c *APIClient) DeclineOptimization(ctx context.Context, params handlers.OptimizationActionParams) (repos.TransitionOutcome, error) {
	var response repos.TransitionOutcome
	if err := c.executeRPC(ctx, handlers.OptimizationDecline, params, &response); err != nil {
		return repos.TransitionOutcome{}, err
	}
	return response, nil
}

// AskCustomers sends approval-flagged suggestions out to customers
func (c *APIClient) AskCustomers(ctx context.Context, params handlers.OptimizationActionParams) (repos.TransitionOutcome, error) {
	var response repos.TransitionOutcome
	if err := c.executeRPC(ctx, handlers.OptimizationAskCustomers, params, &response); err != nil {
		return repos.TransitionOutcome{}, err
	}
	return response, nil
}

// AcceptOptimization accepts an optimization and applies the batch
func (c *APIClient) AcceptOptimization(ctx context.Context, params handlers.OptimizationActionParams) (repos.ApplyOutcome, error) {
	var response repos.ApplyOutcome
	if err := c.executeRPC(ctx, handlers.OptimizationAccept, params, &response); err != nil {
		return repos.ApplyOutcome{}, err
	}
	return response, nil
}

// RespondOptimizationSuggestion records a customer's answer on one suggestion
func (c *APIClient) RespondOptimizationSuggestion(ctx context.Context, params handlers.OptimizationRespondSuggestionParams) (repos.SuggestionRespondOutcome, error) {
	var response repos.SuggestionRespondOutcome
	if err := c.executeRPC(ctx, handlers.OptimizationRespondSuggestion, params, &response); err != nil {
		return repos.SuggestionRespondOutcome{}, err
	}
	return response, nil
}

// Schedule methods

// PlanShift previews where a desired start would land on a contractor's day
func (c *APIClient) PlanShift(ctx context.Context, params handlers.SchedulePlanParams) (handlers.SchedulePlanResponse, error) {
	var response handlers.SchedulePlanResponse
	if err := c.executeRPC(ctx, handlers.SchedulePlan, params, &response); err != nil {
		return handlers.SchedulePlanResponse{}, err
	}
	return response, nil
}

// SetSchedule moves a job to a new date and time
func (c *APIClient) SetSchedule(ctx context.Context, params handlers.ScheduleSetParams) (handlers.ScheduleSetResponse, error) {
	var response handlers.ScheduleSetResponse
	if err := c.executeRPC(ctx, handlers.ScheduleSet, params, &response); err != nil {
		return handlers.ScheduleSetResponse{}, err
	}
	return response, nil
}
