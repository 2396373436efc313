package handlers

import "github.com/fieldsmith/dispatch/internal/services"

// APIHandler is a handler for the API
type APIHandler struct {
	job          *services.Job
	suggestion   *services.Suggestion
	optimization *services.Optimization
	user         *services.User
}

// NewAPIHandler creates a new API handler
func NewAPIHandler(job *services.Job, suggestion *services.Suggestion, optimization *services.Optimization, user *services.User) *APIHandler {
	return &APIHandler{
		job:          job,
		suggestion:   suggestion,
		optimization: optimization,
		user:         user,
	}
}
