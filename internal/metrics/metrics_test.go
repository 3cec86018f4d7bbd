package metrics

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveLike(t *testing.T) {
	before := testutil.ToFloat64(LikeToggles.WithLabelValues("liked"))
	ObserveLike(true)
	assert.Equal(t, before+1, testutil.ToFloat64(LikeToggles.WithLabelValues("liked")))
}

func TestHandler_ServesExposition(t *testing.T) {
	ChatMessages.Inc()

	app := fiber.New()
	app.Get("/metrics", Handler())

	resp, err := app.Test(httptest.NewRequest("GET", "/metrics", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "blog_chat_messages_total")
}
