package handler

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"reppup/internal/errors"
	"reppup/internal/service"
)

// UserHandler bundles the account HTTP handlers.
type UserHandler struct {
	svc service.UserService
}

// NewUserHandler creates a handler layer.
func NewUserHandler(svc service.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

// SignupRequest represents a signup request.
type SignupRequest struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// TokenResponse carries the session token issued at signup.
type TokenResponse struct {
	Token string `json:"token"`
}

// Signup godoc
// @Summary Register a new account and dispatch an email verification link
// @Tags users
// @Accept json
// @Produce json
// @Param request body SignupRequest true "Signup data"
// @Success 200 {object} TokenResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /users/signup [post]
func (h *UserHandler) Signup(c echo.Context) error {
	var req SignupRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errors.NewErrorResponse("Invalid request body"))
	}

	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errors.ErrorResponse{Errors: signupValidationErrors(err)})
	}

	token, err := h.svc.Signup(c.Request().Context(), req.Username, req.Email, req.Password)
	if err != nil {
		if err == errors.ErrUserAlreadyExists {
			return c.JSON(http.StatusBadRequest, errors.NewErrorResponse("User already exists"))
		}
		c.Logger().Error(err)
		return c.JSON(http.StatusInternalServerError, errors.ServerError())
	}

	return c.JSON(http.StatusOK, TokenResponse{Token: token})
}

// signupValidationErrors lists every failed field check, one entry per
// check, with the public API's messages.
func signupValidationErrors(err error) []errors.ErrorItem {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []errors.ErrorItem{{Msg: "Invalid request body"}}
	}
	items := make([]errors.ErrorItem, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Field() {
		case "Username":
			items = append(items, errors.ErrorItem{Msg: "Username is required"})
		case "Email":
			items = append(items, errors.ErrorItem{Msg: "Please include a valid email"})
		case "Password":
			items = append(items, errors.ErrorItem{Msg: "Please enter a password with 6 or more characters"})
		default:
			items = append(items, errors.ErrorItem{Msg: fe.Error()})
		}
	}
	return items
}

// GetUser godoc
// @Summary Get account by id, password excluded
// @Tags users
// @Produce json
// @Param id path string true "Account ID"
// @Success 200 {object} model.User
// @Failure 401 {object} map[string]string
// @Failure 404 {object} errors.MessageResponse
// @Failure 500 {object} errors.ErrorResponse
// @Security SessionToken
// @Router /users/{id} [get]
func (h *UserHandler) GetUser(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusNotFound, errors.MessageResponse{Msg: "User not found"})
	}

	user, err := h.svc.GetUser(c.Request().Context(), id)
	if err != nil {
		if err == errors.ErrUserNotFound {
			return c.JSON(http.StatusNotFound, errors.MessageResponse{Msg: "User not found"})
		}
		c.Logger().Error(err)
		return c.JSON(http.StatusInternalServerError, errors.ServerError())
	}

	return c.JSON(http.StatusOK, user)
}

// UpdateUser godoc
// @Summary Update account fields; omitted fields are left untouched
// @Tags users
// @Accept json
// @Produce json
// @Param id path string true "Account ID"
// @Param request body service.UpdateParams true "Fields to update"
// @Success 200 {object} model.User
// @Failure 401 {object} map[string]string
// @Failure 404 {object} errors.MessageResponse
// @Failure 500 {object} errors.ErrorResponse
// @Security SessionToken
// @Router /users/{id} [put]
func (h *UserHandler) UpdateUser(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusNotFound, errors.MessageResponse{Msg: "User not found"})
	}

	var params service.UpdateParams
	if err := c.Bind(&params); err != nil {
		return c.JSON(http.StatusBadRequest, errors.NewErrorResponse("Invalid request body"))
	}

	user, err := h.svc.UpdateUser(c.Request().Context(), id, params)
	if err != nil {
		if err == errors.ErrUserNotFound {
			return c.JSON(http.StatusNotFound, errors.MessageResponse{Msg: "User not found"})
		}
		c.Logger().Error(err)
		return c.JSON(http.StatusInternalServerError, errors.ServerError())
	}

	return c.JSON(http.StatusOK, user)
}

// DeleteUser godoc
// @Summary Delete account by id
// @Tags users
// @Produce json
// @Param id path string true "Account ID"
// @Success 200 {object} errors.MessageResponse
// @Failure 401 {object} map[string]string
// @Failure 404 {object} errors.MessageResponse
// @Failure 500 {object} errors.ErrorResponse
// @Security SessionToken
// @Router /users/{id} [delete]
func (h *UserHandler) DeleteUser(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusNotFound, errors.MessageResponse{Msg: "User not found"})
	}

	if err := h.svc.DeleteUser(c.Request().Context(), id); err != nil {
		if err == errors.ErrUserNotFound {
			return c.JSON(http.StatusNotFound, errors.MessageResponse{Msg: "User not found"})
		}
		c.Logger().Error(err)
		return c.JSON(http.StatusInternalServerError, errors.ServerError())
	}

	return c.JSON(http.StatusOK, errors.MessageResponse{Msg: "User deleted"})
}
