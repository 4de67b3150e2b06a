// Package metrics exposes Prometheus collectors fed by garden events.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/vovakirdan/tui-garden/internal/garden"
)

const namespace = "garden"

// Label names
const (
	LabelKind     = "kind"
	LabelCategory = "category"
	LabelSource   = "source"
	LabelGarden   = "garden"
)

// Collector holds every garden metric.
type Collector struct {
	Ticks        prometheus.Counter
	SunsEarned   *prometheus.CounterVec
	SunsSpent    prometheus.Counter
	Purchases    *prometheus.CounterVec
	Sells        prometheus.Counter
	Events       *prometheus.CounterVec
	Suns         *prometheus.GaugeVec
	Sessions     prometheus.Gauge
	SaveFailures prometheus.Counter
}

// New registers the garden collectors with reg.
func New(reg prometheus.Registerer) *Collector {
	f := promauto.With(reg)
	return &Collector{
		Ticks: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ticks_total",
			Help:      "Production ticks that added suns.",
		}),
		SunsEarned: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "suns_earned_total",
			Help:      "Suns earned, by source.",
		}, []string{LabelSource}),
		SunsSpent: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "suns_spent_total",
			Help:      "Suns spent on items, upgrades and plots.",
		}),
		Purchases: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "purchases_total",
			Help:      "Catalog purchases, by category.",
		}, []string{LabelCategory}),
		Sells: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sells_total",
			Help:      "Items sold.",
		}),
		Events: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_total",
			Help:      "Economy events, by kind.",
		}, []string{LabelKind}),
		Suns: f.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "suns",
			Help:      "Current sun balance per garden.",
		}, []string{LabelGarden}),
		Sessions: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "sessions",
			Help:      "Gardens currently open.",
		}),
		SaveFailures: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "save_failures_total",
			Help:      "Failed save writes.",
		}),
	}
}

// Observer returns an economy subscriber recording events for one garden.
func (c *Collector) Observer(gardenKey string) func(garden.Event) {
	suns := c.Suns.WithLabelValues(gardenKey)
	return func(ev garden.Event) {
		c.Events.WithLabelValues(string(ev.Kind)).Inc()
		suns.Set(ev.Suns)

		switch ev.Kind {
		case garden.EventTick:
			c.Ticks.Inc()
			c.SunsEarned.WithLabelValues("production").Add(ev.Amount)
		case garden.EventBonusClaimed:
			c.SunsEarned.WithLabelValues("bonus").Add(ev.Amount)
		case garden.EventWord:
			c.SunsEarned.WithLabelValues("typing").Add(ev.Amount)
		case garden.EventSell:
			c.Sells.Inc()
			c.SunsEarned.WithLabelValues("sell").Add(ev.Amount)
		case garden.EventPurchase, garden.EventUpgrade, garden.EventWaterBought:
			c.Purchases.WithLabelValues(string(ev.Category)).Inc()
			c.SunsSpent.Add(ev.Amount)
		case garden.EventPlotUnlocked:
			c.SunsSpent.Add(ev.Amount)
		}
	}
}

// Open marks a garden session as started.
func (c *Collector) Open() {
	c.Sessions.Inc()
}

// Close marks a garden session as ended and drops its balance gauge.
func (c *Collector) Close(gardenKey string) {
	c.Sessions.Dec()
	c.Suns.DeleteLabelValues(gardenKey)
}
