package metrics

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	ConnectedClients = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "socialnet_connected_clients",
		Help: "Currently connected websocket clients.",
	})
	MessagesSent = promauto.NewCounter(prometheus.CounterOpts{
		Name: "socialnet_messages_sent_total",
		Help: "Messages persisted through the delivery pipeline.",
	})
	NotificationsPushed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "socialnet_notifications_pushed_total",
		Help: "Notifications delivered to a live connection.",
	})
	NotificationsStored = promauto.NewCounter(prometheus.CounterOpts{
		Name: "socialnet_notifications_stored_total",
		Help: "Notifications persisted without a live connection.",
	})
)

// Handler exposes the prometheus scrape endpoint as a fiber handler.
func Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.Handler())
}
