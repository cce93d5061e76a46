package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	OrdersCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "qrmenu_orders_created_total",
		Help: "Orders accepted by the intake gateway.",
	})

	StatusChanges = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "qrmenu_order_status_changes_total",
		Help: "Successful order status transitions.",
	}, []string{"status"})

	EventsBroadcast = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "qrmenu_events_broadcast_total",
		Help: "Order events fanned out to restaurant rooms.",
	}, []string{"event"})

	ConnectedClients = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "qrmenu_ws_connected_clients",
		Help: "Live websocket connections joined to a room.",
	})
)
