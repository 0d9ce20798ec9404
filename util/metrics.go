package util

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type metrics struct {
	connectionsAcceptedCounter prometheus.Counter
	connectionsRefusedCounter  prometheus.Counter
	handsDealtCounter          prometheus.Counter
	roundsResolvedCounter      prometheus.Counter
	actionsRejectedCounter     prometheus.Counter
	sendFailuresCounter        prometheus.Counter
	occupiedSeatsGauge         prometheus.Gauge
}

func (m *metrics) ConnectionAccepted() {
	m.connectionsAcceptedCounter.Inc()
}

func (m *metrics) ConnectionRefused() {
	m.connectionsRefusedCounter.Inc()
}

func (m *metrics) HandDealt() {
	m.handsDealtCounter.Inc()
}

func (m *metrics) RoundResolved() {
	m.roundsResolvedCounter.Inc()
}

func (m *metrics) ActionRejected() {
	m.actionsRejectedCounter.Inc()
}

func (m *metrics) SendFailed() {
	m.sendFailuresCounter.Inc()
}

func (m *metrics) SetOccupiedSeats(count int) {
	m.occupiedSeatsGauge.Set(float64(count))
}

var Metrics = &metrics{
	connectionsAcceptedCounter: promauto.NewCounter(prometheus.CounterOpts{
		Name: "table_connections_accepted_total",
		Help: "Total number of connections given a seat",
	}),
	connectionsRefusedCounter: promauto.NewCounter(prometheus.CounterOpts{
		Name: "table_connections_refused_total",
		Help: "Total number of connections closed because both seats were taken",
	}),
	handsDealtCounter: promauto.NewCounter(prometheus.CounterOpts{
		Name: "table_hands_dealt_total",
		Help: "Total number of rounds dealt",
	}),
	roundsResolvedCounter: promauto.NewCounter(prometheus.CounterOpts{
		Name: "table_rounds_resolved_total",
		Help: "Total number of rounds settled against the dealer",
	}),
	actionsRejectedCounter: promauto.NewCounter(prometheus.CounterOpts{
		Name: "table_actions_rejected_total",
		Help: "Total number of out of turn or not ready actions",
	}),
	sendFailuresCounter: promauto.NewCounter(prometheus.CounterOpts{
		Name: "table_send_failures_total",
		Help: "Total number of outbound messages that could not be delivered",
	}),
	occupiedSeatsGauge: promauto.NewGauge(prometheus.GaugeOpts{
		Name: "table_occupied_seats",
		Help: "Number of occupied seats at the table",
	}),
}
