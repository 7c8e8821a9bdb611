package misc

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	harukiAPIHelper "hallin-site/utils/api"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthWithoutStores(t *testing.T) {
	app := fiber.New()
	RegisterMiscRoutes(&harukiAPIHelper.HallinRouterHelpers{Router: app})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out struct {
		Status string            `json:"status"`
		Stores map[string]string `json:"stores"`
	}
	require.NoError(t, sonic.Unmarshal(body, &out))
	assert.Equal(t, "ok", out.Status)
	assert.Equal(t, map[string]string{"redis": "disabled", "mongodb": "disabled"}, out.Stores)
}
