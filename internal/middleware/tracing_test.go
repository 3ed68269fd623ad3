package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTracingTest() *fiber.App {
	app := fiber.New()
	app.Use(Tracing())
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString(GetTraceID(c))
	})
	return app
}

func TestTracing_MintsFreshID(t *testing.T) {
	app := setupTracingTest()

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)

	echoed := resp.Header.Get("X-Trace-Id")
	_, err = uuid.Parse(echoed)
	assert.NoError(t, err)
}

func TestTracing_ReusesInboundID(t *testing.T) {
	app := setupTracingTest()
	inbound := uuid.New().String()

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("X-Trace-Id", inbound)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, inbound, resp.Header.Get("X-Trace-Id"))
}

func TestTracing_RejectsMalformedInboundID(t *testing.T) {
	app := setupTracingTest()

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("X-Trace-Id", "not-a-uuid")
	resp, err := app.Test(req)
	require.NoError(t, err)

	echoed := resp.Header.Get("X-Trace-Id")
	assert.NotEqual(t, "not-a-uuid", echoed)
	_, err = uuid.Parse(echoed)
	assert.NoError(t, err)
}
