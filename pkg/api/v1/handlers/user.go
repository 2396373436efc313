package handlers

import (
	"fmt"
	"strings"

	fiber "github.com/gofiber/fiber/v2"

	"github.com/fieldsmith/dispatch/internal/db/models"
	"github.com/fieldsmith/dispatch/internal/types"
)

// UserHandler handles HTTP requests for user operations
type UserHandler struct {
	*APIHandler
}

// NewUserHandler creates a new UserHandler instance
func NewUserHandler(api *APIHandler) *UserHandler {
	return &UserHandler{
		APIHandler: api,
	}
}

// UserCreateParams defines the request body for creating a user
type UserCreateParams struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

// Validate validates the request body for creating a user
func (p UserCreateParams) Validate() error {
	if p.Username == "" {
		return fmt.Errorf("%s", strings.ToLower(ErrMsgUsernameRequired))
	}
	return nil
}

// GetUsers returns all users, or a single user when a username query is given
func (h *UserHandler) GetUsers(c *fiber.Ctx) error {
	if username := c.Query("username"); username != "" {
		user, err := h.user.GetUserByUsername(c.Context(), username)
		if err != nil {
			return c.Status(statusForError(err)).JSON(fiber.Map{
				"error": fmt.Sprintf("failed to get user: %v", err),
			})
		}
		return c.JSON(user)
	}

	var opts models.ListOptions
	opts.Limit = c.QueryInt("limit", models.DefaultLimit)
	opts.Offset = c.QueryInt("offset", 0)

	users, err := h.user.GetUsers(c.Context(), &opts)
	if err != nil {
		return c.Status(statusForError(err)).JSON(fiber.Map{
			"error": fmt.Sprintf("failed to get users: %v", err),
		})
	}

	return c.JSON(types.ListResponse[models.User]{
		Rows: users,
		Pagination: types.PaginationResponse{
			Total:  len(users),
			Page:   1,
			Limit:  opts.Limit,
			Offset: opts.Offset,
		},
	})
}

// GetUserByID returns details of a specific user
func (h *UserHandler) GetUserByID(c *fiber.Ctx) error {
	userID, err := c.ParamsInt("id")
	if err != nil || userID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": strings.ToLower(ErrMsgInvalidUserID),
		})
	}

	user, err := h.user.GetUserByID(c.Context(), uint(userID))
	if err != nil {
		return c.Status(statusForError(err)).JSON(fiber.Map{
			"error": fmt.Sprintf("failed to get user: %v", err),
		})
	}

	return c.JSON(user)
}

// CreateUser creates a new user
func (h *UserHandler) CreateUser(c *fiber.Ctx) error {
	var params UserCreateParams
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

	role := models.UserRoleCustomer
	if params.Role != "" {
		parsed, err := models.ParseUserRole(params.Role)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		role = parsed
	}

	user := &models.User{
		Username: params.Username,
		Email:    params.Email,
		Role:     role,
	}
	if err := h.user.CreateUser(c.Context(), user); err != nil {
		return c.Status(statusForError(err)).JSON(fiber.Map{
			"error": fmt.Sprintf("failed to create user: %v", err),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(user)
}

// DeleteUser deletes a user by ID
func (h *UserHandler) DeleteUser(c *fiber.Ctx) error {
	userID, err := c.ParamsInt("id")
	if err != nil || userID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": strings.ToLower(ErrMsgInvalidUserID),
		})
	}

	if err := h.user.DeleteUser(c.Context(), uint(userID)); err != nil {
		return c.Status(statusForError(err)).JSON(fiber.Map{
			"error": fmt.Sprintf("failed to delete user: %v", err),
		})
	}

	return c.SendStatus(fiber.StatusNoContent)
}
