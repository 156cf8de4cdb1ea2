package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"simple-crud-api/internal/usecase/user"
	pkgerrors "simple-crud-api/pkg/errors"
	"simple-crud-api/pkg/i18n"
)

// UserHandler handles HTTP requests for user operations
type UserHandler struct {
	uc  user.UserUsecase
	tr  *i18n.Translator
	log *zap.Logger
}

// NewUserHandler creates a new UserHandler instance
func NewUserHandler(uc user.UserUsecase, tr *i18n.Translator, log *zap.Logger) *UserHandler {
	return &UserHandler{
		uc:  uc,
		tr:  tr,
		log: log,
	}
}

// CreateUserRequest represents the HTTP request body for creating a user
type CreateUserRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email"`
}

// UpdateUserRequest represents the HTTP request body for updating a user.
// Absent (or null) fields are left unchanged.
type UpdateUserRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
}

// UserResponse represents the HTTP response for user data
type UserResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ListUsersResponse represents the HTTP response for listing users
type ListUsersResponse struct {
	Users []UserResponse `json:"users"`
	Count int            `json:"count"`
}

// DeleteUserResponse represents the HTTP response for a deleted user
type DeleteUserResponse struct {
	Message string       `json:"message"`
	User    UserResponse `json:"user"`
}

func toUserResponse(u user.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// CreateUser handles POST /users
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if err := bindJSON(c, &req); err != nil {
		h.log.Warn("Invalid create user request", zap.Error(err))
		writeError(c, h.tr, h.log, err)
		return
	}

	resp, err := h.uc.CreateUser(c.Request.Context(), user.CreateUserRequest{
		Name:  req.Name,
		Email: req.Email,
	})
	if err != nil {
		writeError(c, h.tr, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, toUserResponse(*resp))
}

// GetUser handles GET /users/:id
func (h *UserHandler) GetUser(c *gin.Context) {
	resp, err := h.uc.GetUser(c.Request.Context(), user.GetUserRequest{ID: c.Param("id")})
	if err != nil {
		writeError(c, h.tr, h.log, err)
		return
	}

	c.JSON(http.StatusOK, toUserResponse(*resp))
}

// UpdateUser handles PUT /users/:id
func (h *UserHandler) UpdateUser(c *gin.Context) {
	id := c.Param("id")

	var req UpdateUserRequest
	if err := bindJSON(c, &req); err != nil {
		h.log.Warn("Invalid update user request", zap.String("id", id), zap.Error(err))
		// an unknown id is reported before a bad body
		if _, getErr := h.uc.GetUser(c.Request.Context(), user.GetUserRequest{ID: id}); pkgerrors.IsNotFound(getErr) {
			err = getErr
		}
		writeError(c, h.tr, h.log, err)
		return
	}

	resp, err := h.uc.UpdateUser(c.Request.Context(), user.UpdateUserRequest{
		ID:    id,
		Name:  req.Name,
		Email: req.Email,
	})
	if err != nil {
		writeError(c, h.tr, h.log, err)
		return
	}

	c.JSON(http.StatusOK, toUserResponse(*resp))
}

// DeleteUser handles DELETE /users/:id
func (h *UserHandler) DeleteUser(c *gin.Context) {
	resp, err := h.uc.DeleteUser(c.Request.Context(), user.DeleteUserRequest{ID: c.Param("id")})
	if err != nil {
		writeError(c, h.tr, h.log, err)
		return
	}

	c.JSON(http.StatusOK, DeleteUserResponse{
		Message: h.tr.T(i18n.UserDeleted),
		User:    toUserResponse(resp.User),
	})
}

// ListUsers handles GET /users
func (h *UserHandler) ListUsers(c *gin.Context) {
	resp, err := h.uc.ListUsers(c.Request.Context())
	if err != nil {
		writeError(c, h.tr, h.log, err)
		return
	}

	users := make([]UserResponse, len(resp.Users))
	for i, u := range resp.Users {
		users[i] = toUserResponse(u)
	}

	c.JSON(http.StatusOK, ListUsersResponse{
		Users: users,
		Count: resp.Count,
	})
}
