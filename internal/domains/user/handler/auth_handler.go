package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"eduresource-api/internal/domains/user"
	"eduresource-api/internal/shared/request"
	"eduresource-api/internal/shared/response"
)

// AuthHandler handles the /auth endpoints.
type AuthHandler struct {
	service user.Service
}

func NewAuthHandler(service user.Service) *AuthHandler {
	return &AuthHandler{service: service}
}

// Register handles POST /auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req user.RegisterRequest
	if !request.BindAndValidate(c, &req) {
		return
	}

	token, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	request.LogSuccess(c, "")
	response.OK(c, token)
}

// RegisterAdmin handles POST /auth/register/admin
func (h *AuthHandler) RegisterAdmin(c *gin.Context) {
	var req user.RegisterRequest
	if !request.BindAndValidate(c, &req) {
		return
	}

	token, err := h.service.RegisterAdmin(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	request.LogSuccess(c, "")
	response.OK(c, token)
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req user.LoginRequest
	if !request.BindAndValidate(c, &req) {
		return
	}

	token, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	request.LogSuccess(c, "")
	response.OK(c, token)
}

// handleError maps domain errors to HTTP responses.
func (h *AuthHandler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, user.ErrEmailAlreadyExists):
		errs := map[string]string{"Email": "Email address already in use."}
		request.LogFail(c, response.Summary(errs))
		response.ValidationFailed(c, errs)

	case errors.Is(err, user.ErrInvalidCredentials):
		request.LogFail(c, "Invalid Credentials")
		response.Unauthorized(c, "Invalid email or password.")

	default:
		if errs := response.FieldErrors(err); errs != nil {
			request.LogFail(c, response.Summary(errs))
			response.ValidationFailed(c, errs)
			return
		}
		_ = c.Error(err)
	}
}
