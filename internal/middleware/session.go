package middleware

import (
	"context"
	"encoding/json"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// SessionConfig for the Redis-backed session store.
type SessionConfig struct {
	Secret       string
	RedisURL     string
	IsProduction bool
}

const (
	SessionCookieName  = "vastu.sid"
	SessionRedisPrefix = "session:"
	sessionMaxAge      = 24 * time.Hour
)

// SessionUser is the identity shape stored in the session.
type SessionUser struct {
	UserID    string  `json:"user_id"`
	FullName  string  `json:"full_name"`
	Email     string  `json:"email"`
	Role      string  `json:"role"`
	CompanyID *string `json:"company_id"`
}

// Session returns a Fiber middleware that loads/saves the session from Redis
// and the Redis client for callers that need it directly.
func Session(cfg SessionConfig) (fiber.Handler, *redis.Client, error) {
	opt, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, nil, err
	}
	rdb := redis.NewClient(opt)
	return SessionWithClient(rdb), rdb, nil
}

// SessionWithClient is Session with an injected client (tests use miniredis).
func SessionWithClient(rdb *redis.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sessionID := c.Cookies(SessionCookieName)

		var user *SessionUser
		if sessionID != "" {
			b, err := rdb.Get(context.Background(), SessionRedisPrefix+sessionID).Bytes()
			if err == nil {
				var u SessionUser
				if json.Unmarshal(b, &u) == nil && u.UserID != "" {
					user = &u
				}
			}
		}

		c.Locals("session_id", sessionID)
		if user != nil {
			c.Locals("user", user)
		}
		return c.Next()
	}
}

// SaveSession persists the user under a fresh session ID and returns it.
func SaveSession(c *fiber.Ctx, rdb *redis.Client, user SessionUser) (string, error) {
	sessionID := uuid.New().String()
	b, err := json.Marshal(user)
	if err != nil {
		return "", err
	}
	if err := rdb.Set(context.Background(), SessionRedisPrefix+sessionID, b, sessionMaxAge).Err(); err != nil {
		return "", err
	}
	c.Locals("session_id", sessionID)
	c.Locals("user", &user)
	return sessionID, nil
}

// DestroySession removes the current session from Redis and Locals.
func DestroySession(c *fiber.Ctx, rdb *redis.Client) {
	if sid, _ := c.Locals("session_id").(string); sid != "" {
		rdb.Del(context.Background(), SessionRedisPrefix+sid)
	}
	c.Locals("user", nil)
}

// SessionCookie returns cookie options for setting/clearing the session cookie.
func SessionCookie(cfg SessionConfig) fiber.Cookie {
	return fiber.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   int(sessionMaxAge.Seconds()),
		HTTPOnly: true,
		Secure:   cfg.IsProduction,
		SameSite: "Lax",
	}
}
