package auth

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	authsvc "github.com/hitarthkothari9641-coder/vastu/internal/application/auth"
	"github.com/hitarthkothari9641-coder/vastu/internal/infrastructure/database"
	"github.com/hitarthkothari9641-coder/vastu/internal/middleware"
	"github.com/hitarthkothari9641-coder/vastu/internal/models"
	"github.com/hitarthkothari9641-coder/vastu/internal/pkg/constants"
)

func setupAuthTest(t *testing.T) (*fiber.App, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	h := &Handlers{
		Service: &authsvc.Service{DB: db},
		Rdb:     rdb,
		Config:  middleware.SessionConfig{Secret: "test"},
	}

	app := fiber.New()
	app.Use(middleware.SessionWithClient(rdb))
	app.Post("/api/auth/register", h.Register)
	app.Post("/api/auth/login", h.Login)
	app.Get("/api/auth/me", middleware.RequireAuth(), h.Me)
	app.Post("/api/auth/logout", middleware.RequireAuth(), h.Logout)
	return app, db
}

func jsonRequest(t *testing.T, method, target string, body interface{}) *http.Request {
	t.Helper()
	b, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(method, target, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func sessionCookie(t *testing.T, resp *http.Response) *http.Cookie {
	t.Helper()
	for _, c := range resp.Cookies() {
		if c.Name == middleware.SessionCookieName {
			return c
		}
	}
	t.Fatal("session cookie not set")
	return nil
}

func TestRegister_CreatesUserAndSession(t *testing.T) {
	app, db := setupAuthTest(t)

	resp, err := app.Test(jsonRequest(t, "POST", "/api/auth/register", map[string]interface{}{
		"email":     "asha@test.in",
		"password":  "secret123",
		"full_name": "Asha Rao",
		"role":      "user",
	}))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	cookie := sessionCookie(t, resp)
	assert.NotEmpty(t, cookie.Value)

	var user models.User
	require.NoError(t, db.First(&user, "email = ?", "asha@test.in").Error)
	assert.Equal(t, constants.RoleUser, user.Role)
	assert.NotEqual(t, "secret123", user.PasswordHash)

	// the fresh cookie authenticates /me
	req := httptest.NewRequest("GET", "/api/auth/me", nil)
	req.AddCookie(cookie)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "asha@test.in")
}

func TestRegister_DuplicateEmailConflicts(t *testing.T) {
	app, _ := setupAuthTest(t)

	payload := map[string]interface{}{
		"email":     "asha@test.in",
		"password":  "secret123",
		"full_name": "Asha Rao",
		"role":      "user",
	}
	resp, err := app.Test(jsonRequest(t, "POST", "/api/auth/register", payload))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp, err = app.Test(jsonRequest(t, "POST", "/api/auth/register", payload))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
}

func TestRegister_CompanyRoleCreatesCompany(t *testing.T) {
	app, db := setupAuthTest(t)

	resp, err := app.Test(jsonRequest(t, "POST", "/api/auth/register", map[string]interface{}{
		"email":        "builder@test.in",
		"password":     "secret123",
		"full_name":    "Ravi Kumar",
		"role":         "company",
		"company_name": "BuildRight Constructions",
		"city":         "Bengaluru",
	}))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var company models.Company
	require.NoError(t, db.First(&company, "name = ?", "BuildRight Constructions").Error)
	assert.Equal(t, models.VerificationPending, company.VerificationStatus)
}

func TestLogin_WrongPasswordUnauthorized(t *testing.T) {
	app, db := setupAuthTest(t)
	seedUser(t, db, "asha@test.in", "secret123", true)

	resp, err := app.Test(jsonRequest(t, "POST", "/api/auth/login", map[string]string{
		"email": "asha@test.in", "password": "wrongpass",
	}))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestLogin_SuspendedAccountForbidden(t *testing.T) {
	app, db := setupAuthTest(t)
	seedUser(t, db, "asha@test.in", "secret123", false)

	resp, err := app.Test(jsonRequest(t, "POST", "/api/auth/login", map[string]string{
		"email": "asha@test.in", "password": "secret123",
	}))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestLogout_DestroysSession(t *testing.T) {
	app, db := setupAuthTest(t)
	seedUser(t, db, "asha@test.in", "secret123", true)

	resp, err := app.Test(jsonRequest(t, "POST", "/api/auth/login", map[string]string{
		"email": "asha@test.in", "password": "secret123",
	}))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	cookie := sessionCookie(t, resp)

	req := httptest.NewRequest("POST", "/api/auth/logout", nil)
	req.AddCookie(cookie)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	// the old cookie no longer resolves to a session
	req = httptest.NewRequest("GET", "/api/auth/me", nil)
	req.AddCookie(cookie)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func seedUser(t *testing.T, db *gorm.DB, email, password string, active bool) models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), 10)
	require.NoError(t, err)
	user := models.User{
		Email:        email,
		PasswordHash: string(hash),
		FullName:     "Asha Rao",
		Role:         constants.RoleUser,
		IsActive:     true,
	}
	require.NoError(t, db.Create(&user).Error)
	if !active {
		// zero values with a column default are dropped on insert, so suspend
		// with an explicit update
		require.NoError(t, db.Model(&user).Update("is_active", false).Error)
	}
	return user
}
