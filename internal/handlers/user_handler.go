package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "hearthbook/internal/errors"
	"hearthbook/internal/services"
)

// UserHandler handles user registration. Authentication sits in front of
// this service and is not handled here.
type UserHandler struct {
	userService services.UserServicer
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService services.UserServicer) *UserHandler {
	return &UserHandler{userService: userService}
}

// CreateUserRequest represents the request payload for registering a user.
type CreateUserRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
}

// CreateUser handles user registration.
// @Summary     Register user
// @Tags        users
// @Accept      json
// @Produce     json
// @Param       request body     CreateUserRequest true "User fields"
// @Success     201     {object} models.User
// @Failure     400     {object} ErrorResponse "Invalid input"
// @Failure     409     {object} ErrorResponse "Username taken"
// @Router      /users [post]
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	user, err := h.userService.CreateUser(req.Username, req.Password)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, user)
}
