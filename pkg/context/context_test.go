package context

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetRequestID(t *testing.T) {
	assert.Equal(t, "unknown", GetRequestID(context.Background()))
	assert.Equal(t, "abc", GetRequestID(WithRequestID(context.Background(), "abc")))
}

func TestFromFiberCtx(t *testing.T) {
	app := fiber.New()

	var fromLocals, fromHeader string
	app.Get("/locals", func(c *fiber.Ctx) error {
		c.Locals(requestIDHeader, "from-locals")
		fromLocals = GetRequestID(FromFiberCtx(c))
		return c.SendStatus(fiber.StatusNoContent)
	})
	app.Get("/header", func(c *fiber.Ctx) error {
		fromHeader = GetRequestID(FromFiberCtx(c))
		return c.SendStatus(fiber.StatusNoContent)
	})

	_, err := app.Test(httptest.NewRequest("GET", "/locals", nil))
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/header", nil)
	req.Header.Set(requestIDHeader, "from-header")
	_, err = app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, "from-locals", fromLocals)
	assert.Equal(t, "from-header", fromHeader)
}
