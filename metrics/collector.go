// Package metrics exposes transport statistics to Prometheus.
package metrics

import (
	"github.com/lixenwraith/translog"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "translog"

var transportLabels = []string{"transport_id", "transport_label"}

// Collector reports the counters of a set of transports on every scrape
type Collector struct {
	transports func() []*translog.Transport

	enqueued *prometheus.Desc
	sent     *prometheus.Desc
	batches  *prometheus.Desc
	failures *prometheus.Desc
	requeued *prometheus.Desc
	filtered *prometheus.Desc
	dropped  *prometheus.Desc
	queued   *prometheus.Desc
}

// NewCollector creates a collector over the transports returned by source,
// typically (*translog.Logger).Transports or (*translog.Manager).All
func NewCollector(source func() []*translog.Transport) *Collector {
	desc := func(name, help string) *prometheus.Desc {
		return prometheus.NewDesc(prometheus.BuildFQName(namespace, "transport", name), help, transportLabels, nil)
	}
	return &Collector{
		transports: source,
		enqueued:   desc("enqueued_total", "Entries accepted into the transport queue"),
		sent:       desc("sent_total", "Entries delivered by successful sends"),
		batches:    desc("batches_total", "Successful batch sends"),
		failures:   desc("send_failures_total", "Failed batch sends"),
		requeued:   desc("requeued_total", "Entries put back in the queue after a failed send"),
		filtered:   desc("filtered_total", "Entries rejected by the transport level"),
		dropped:    desc("dropped_total", "Entries discarded while the transport was disabled or destroyed"),
		queued:     desc("queue_length", "Entries currently waiting to be sent"),
	}
}

// Describe implements prometheus.Collector
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.enqueued
	ch <- c.sent
	ch <- c.batches
	ch <- c.failures
	ch <- c.requeued
	ch <- c.filtered
	ch <- c.dropped
	ch <- c.queued
}

// Collect implements prometheus.Collector
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	// A manager may hold the same transport more than once
	seen := make(map[string]struct{})
	for _, t := range c.transports() {
		s := t.Stats()
		if _, ok := seen[s.ID]; ok {
			continue
		}
		seen[s.ID] = struct{}{}
		labels := []string{s.ID, s.Label}

		ch <- prometheus.MustNewConstMetric(c.enqueued, prometheus.CounterValue, float64(s.Enqueued), labels...)
		ch <- prometheus.MustNewConstMetric(c.sent, prometheus.CounterValue, float64(s.Sent), labels...)
		ch <- prometheus.MustNewConstMetric(c.batches, prometheus.CounterValue, float64(s.Batches), labels...)
		ch <- prometheus.MustNewConstMetric(c.failures, prometheus.CounterValue, float64(s.Failures), labels...)
		ch <- prometheus.MustNewConstMetric(c.requeued, prometheus.CounterValue, float64(s.Requeued), labels...)
		ch <- prometheus.MustNewConstMetric(c.filtered, prometheus.CounterValue, float64(s.Filtered), labels...)
		ch <- prometheus.MustNewConstMetric(c.dropped, prometheus.CounterValue, float64(s.Dropped), labels...)
		ch <- prometheus.MustNewConstMetric(c.queued, prometheus.GaugeValue, float64(s.QueueLen), labels...)
	}
}
