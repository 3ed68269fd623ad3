package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/hitarthkothari9641-coder/vastu/internal/pkg/response"
)

const userLocal = "user"

// Identity is the resolved caller passed down to every core operation.
type Identity struct {
	UserID    uuid.UUID
	FullName  string
	Email     string
	Role      string
	CompanyID *uuid.UUID
}

// RequireAuth ensures a session user is present. 401 in the standard error
// shape otherwise.
func RequireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if GetIdentity(c) == nil {
			return response.Unauthorized(c, "Unauthorized")
		}
		return c.Next()
	}
}

// RequireRole ensures the session user holds one of the given roles.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := GetIdentity(c)
		if id == nil {
			return response.Unauthorized(c, "Unauthorized")
		}
		for _, r := range roles {
			if id.Role == r {
				return c.Next()
			}
		}
		return response.Error(c, "Access denied", fiber.StatusForbidden, nil)
	}
}

// GetIdentity returns the caller identity from Locals, nil when anonymous.
func GetIdentity(c *fiber.Ctx) *Identity {
	u, ok := c.Locals(userLocal).(*SessionUser)
	if !ok || u == nil {
		return nil
	}
	uid, err := uuid.Parse(u.UserID)
	if err != nil {
		return nil
	}
	id := &Identity{UserID: uid, FullName: u.FullName, Email: u.Email, Role: u.Role}
	if u.CompanyID != nil {
		if cid, err := uuid.Parse(*u.CompanyID); err == nil {
			id.CompanyID = &cid
		}
	}
	return id
}

// SetIdentity injects a session user directly into Locals (tests).
func SetIdentity(c *fiber.Ctx, u SessionUser) {
	c.Locals(userLocal, &u)
}
