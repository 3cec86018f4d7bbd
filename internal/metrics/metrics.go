package metrics

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	ChatConnections = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "blog_chat_connections",
		Help: "Currently connected chat sockets.",
	})

	ChatMessages = promauto.NewCounter(prometheus.CounterOpts{
		Name: "blog_chat_messages_total",
		Help: "Chat messages persisted and published.",
	})

	ChatDropped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "blog_chat_dropped_clients_total",
		Help: "Chat clients dropped because their send buffer was full.",
	})

	LikeToggles = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "blog_like_toggles_total",
		Help: "Like toggles by resulting state.",
	}, []string{"state"})
)

func ObserveLike(liked bool) {
	state := "unliked"
	if liked {
		state = "liked"
	}
	LikeToggles.WithLabelValues(state).Inc()
}

// Handler exposes the default registry.
func Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.Handler())
}
