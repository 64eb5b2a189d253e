// Package metrics counts catalog activity in an in-process Prometheus registry.
//
// Nothing is served over the network; [Collector.WriteText] renders the
// registry in the text exposition format for the CLI.
package metrics

import (
	"fmt"
	"io"

	"github.com/desertthunder/shelf/internal/catalog"
	"github.com/desertthunder/shelf/internal/models"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

const namespace = "shelf"

// Collector implements [catalog.Observer] with Prometheus counters and gauges.
type Collector struct {
	registry     *prometheus.Registry
	transactions *prometheus.CounterVec
	notices      *prometheus.CounterVec
	books        prometheus.GaugeFunc
	checkedOut   prometheus.GaugeFunc
}

var _ catalog.Observer = (*Collector)(nil)

// NewCollector creates a Collector with its own registry.
//
// stats is polled on every gather for the gauge values; pass nil to skip the gauges.
func NewCollector(stats func() models.Stats) *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		transactions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transactions_total",
			Help:      "Transactions appended to the catalog log, by kind.",
		}, []string{"kind"}),
		notices: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notices_total",
			Help:      "Tolerated operation outcomes, by operation and result.",
		}, []string{"op", "result"}),
	}
	c.registry.MustRegister(c.transactions, c.notices)

	if stats != nil {
		c.books = prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "books",
			Help:      "Registered books.",
		}, func() float64 { return float64(stats().TotalBooks) })
		c.checkedOut = prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "books_checked_out",
			Help:      "Books currently checked out.",
		}, func() float64 { return float64(stats().CheckedOutBooks) })
		c.registry.MustRegister(c.books, c.checkedOut)
	}

	return c
}

// Observe counts an appended transaction.
func (c *Collector) Observe(tx models.Transaction) {
	c.transactions.WithLabelValues(string(tx.Kind)).Inc()
}

// Notice counts a tolerated outcome.
func (c *Collector) Notice(op string, r models.Result) {
	c.notices.WithLabelValues(op, r.String()).Inc()
}

// Registry exposes the underlying registry.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// WriteText gathers the registry and writes it in the Prometheus text format.
func (c *Collector) WriteText(w io.Writer) error {
	families, err := c.registry.Gather()
	if err != nil {
		return fmt.Errorf("failed to gather metrics: %w", err)
	}

	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("failed to write metrics: %w", err)
		}
	}
	return nil
}
