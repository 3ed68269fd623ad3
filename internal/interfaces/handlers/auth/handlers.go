package auth

import (
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	authsvc "github.com/hitarthkothari9641-coder/vastu/internal/application/auth"
	"github.com/hitarthkothari9641-coder/vastu/internal/middleware"
	"github.com/hitarthkothari9641-coder/vastu/internal/models"
	"github.com/hitarthkothari9641-coder/vastu/internal/pkg/response"
)

// Handlers holds dependencies for auth endpoints.
type Handlers struct {
	Service *authsvc.Service
	Rdb     *redis.Client
	Config  middleware.SessionConfig
}

// Register POST /api/auth/register
func (h *Handlers) Register(c *fiber.Ctx) error {
	var req authsvc.RegisterInput
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}

	user, company, err := h.Service.Register(c.Context(), req)
	if err != nil {
		return response.AppError(c, err)
	}

	if err := h.startSession(c, user, company); err != nil {
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	log.Info().Str("user_id", user.UserID.String()).Str("role", user.Role).Msg("user registered")

	return response.SuccessCreated(c, "Registration successful", fiber.Map{
		"user":    user,
		"company": company,
	}, nil)
}

// LoginRequest body.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login POST /api/auth/login
func (h *Handlers) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "Email and password are required", fiber.StatusBadRequest, nil)
	}
	if req.Email == "" || req.Password == "" {
		return response.Error(c, "Email and password are required", fiber.StatusBadRequest, nil)
	}

	user, company, err := h.Service.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		return response.AppError(c, err)
	}

	if err := h.startSession(c, user, company); err != nil {
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}

	return response.Success(c, "Login successful", fiber.Map{
		"user":    user,
		"company": company,
	}, nil)
}

func (h *Handlers) startSession(c *fiber.Ctx, user *models.User, company *models.Company) error {
	su := middleware.SessionUser{
		UserID:   user.UserID.String(),
		FullName: user.FullName,
		Email:    user.Email,
		Role:     user.Role,
	}
	if company != nil {
		cid := company.CompanyID.String()
		su.CompanyID = &cid
	}

	sessionID, err := middleware.SaveSession(c, h.Rdb, su)
	if err != nil {
		return err
	}
	cookie := middleware.SessionCookie(h.Config)
	cookie.Value = sessionID
	c.Cookie(&cookie)
	return nil
}

// Me GET /api/auth/me
func (h *Handlers) Me(c *fiber.Ctx) error {
	id := middleware.GetIdentity(c)
	if id == nil {
		return response.Unauthorized(c, "Not authenticated")
	}
	return response.Success(c, "Authenticated", fiber.Map{
		"user": fiber.Map{
			"user_id":    id.UserID.String(),
			"full_name":  id.FullName,
			"email":      id.Email,
			"role":       id.Role,
			"company_id": id.CompanyID,
		},
	}, nil)
}

// Logout POST /api/auth/logout
func (h *Handlers) Logout(c *fiber.Ctx) error {
	middleware.DestroySession(c, h.Rdb)

	cookie := middleware.SessionCookie(h.Config)
	cookie.Value = ""
	cookie.MaxAge = -1
	c.Cookie(&cookie)

	return response.Success(c, "Logged out", nil, nil)
}
