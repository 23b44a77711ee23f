package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"ticketledger/internal/ticketing/models"
)

// Metrics provides observability for the ticketing module.
type Metrics struct {
	EventsCreated    prometheus.Counter
	TicketsSold      prometheus.Counter
	TicketsRedeemed  prometheus.Counter
	Revenue          prometheus.Counter
	PurchaseRejected *prometheus.CounterVec
	PurchaseDuration prometheus.Histogram
}

// New creates a Metrics instance with all ticketing metrics registered.
func New() *Metrics {
	return &Metrics{
		EventsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "ticketledger_events_created_total",
			Help: "Total number of events created",
		}),
		TicketsSold: promauto.NewCounter(prometheus.CounterOpts{
			Name: "ticketledger_tickets_sold_total",
			Help: "Total number of tickets sold",
		}),
		TicketsRedeemed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "ticketledger_tickets_redeemed_total",
			Help: "Total number of tickets redeemed",
		}),
		Revenue: promauto.NewCounter(prometheus.CounterOpts{
			Name: "ticketledger_revenue_units_total",
			Help: "Gross purchase volume in currency smallest units (escrow plus fees)",
		}),
		PurchaseRejected: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "ticketledger_purchase_rejected_total",
			Help: "Purchases rejected before commit, by wire failure code",
		}, []string{"code"}),
		PurchaseDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "ticketledger_purchase_duration_seconds",
			Help:    "Duration of BuyTicket operations (ledger critical path)",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
	}
}

func (m *Metrics) IncrementEventsCreated() {
	m.EventsCreated.Inc()
}

func (m *Metrics) IncrementTicketsSold() {
	m.TicketsSold.Inc()
}

func (m *Metrics) IncrementTicketsRedeemed() {
	m.TicketsRedeemed.Inc()
}

func (m *Metrics) AddRevenue(amount int64) {
	if amount > 0 {
		m.Revenue.Add(float64(amount))
	}
}

func (m *Metrics) IncrementPurchaseRejected(code models.FailureCode) {
	m.PurchaseRejected.WithLabelValues(code.String()).Inc()
}

// ObservePurchase records the duration of a BuyTicket operation. Call with
// time.Now() captured at the start of the operation.
func (m *Metrics) ObservePurchase(start time.Time) {
	m.PurchaseDuration.Observe(time.Since(start).Seconds())
}
