package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/squeegee-samurai/squeegee-api/internal/application"
	"github.com/squeegee-samurai/squeegee-api/internal/domain/entity"
	"github.com/squeegee-samurai/squeegee-api/pkg/helpers"
	"github.com/squeegee-samurai/squeegee-api/pkg/response"
	"github.com/squeegee-samurai/squeegee-api/pkg/validation"
)

type AuthHandler struct {
	Svc    *application.Service
	Logger *logrus.Logger
}

func NewAuthHandler(svc *application.Service, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{Svc: svc, Logger: logger}
}

type signupRequest struct {
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	Email     string `json:"email" binding:"required"`
	Phone     string `json:"phone"`
	Password  string `json:"password" binding:"required"`
	Role      string `json:"role"`
}

type signupResponse struct {
	ID        string      `json:"id"`
	FirstName string      `json:"firstName"`
	LastName  string      `json:"lastName"`
	Email     string      `json:"email"`
	Phone     string      `json:"phone"`
	Role      entity.Role `json:"role"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Signup POST /api/auth/signup
func (h *AuthHandler) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	u, err := h.Svc.Signup(c.Request.Context(), application.SignupInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		Password:  req.Password,
		Role:      req.Role,
	})
	switch {
	case err == nil:
	case errors.Is(err, application.ErrEmailTaken):
		// plain text like the login failures; the frontend shows the body verbatim
		c.String(http.StatusBadRequest, "Email already exists")
		return
	case errors.Is(err, application.ErrInvalidInput):
		response.Error(c, http.StatusBadRequest, "invalid payload", map[string]string{"payload": err.Error()})
		return
	case errors.Is(err, helpers.ErrPasswordTooLong):
		response.Error(c, http.StatusBadRequest, "invalid payload", map[string]string{"password": "must be at most 72 bytes long"})
		return
	default:
		response.Error(c, http.StatusInternalServerError, "could not create account", nil)
		return
	}

	c.JSON(http.StatusOK, signupResponse{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Phone:     u.Phone,
		Role:      u.Role,
	})
}

// Login POST /api/auth/login
// Failures are plain text so the existing frontend can show them verbatim.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	p, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, p)
	case errors.Is(err, application.ErrUserNotFound):
		c.String(http.StatusUnauthorized, "User not found")
	case errors.Is(err, application.ErrInvalidPassword):
		c.String(http.StatusUnauthorized, "Invalid password")
	default:
		response.Error(c, http.StatusInternalServerError, "login failed", nil)
	}
}
