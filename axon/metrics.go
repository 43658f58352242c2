// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package axon

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	metricsNamespace = "axon"
	unknownRoute     = "unknown"
)

// per server collectors, so several servers can live in one process
type metrics struct {
	registry    *prometheus.Registry
	requests    *prometheus.CounterVec
	inFlight    prometheus.Gauge
	queued      prometheus.GaugeFunc
	processTime *prometheus.HistogramVec
}

func newMetrics(pool *workerPool) *metrics {
	m := &metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "requests_total",
				Help:      "requests by route and protocol status",
			},
			[]string{"route", "status"},
		),
		inFlight: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: metricsNamespace,
				Name:      "requests_in_flight",
				Help:      "requests currently being processed",
			},
		),
		queued: prometheus.NewGaugeFunc(
			prometheus.GaugeOpts{
				Namespace: metricsNamespace,
				Name:      "requests_queued",
				Help:      "requests waiting for a worker",
			},
			func() float64 { return float64(pool.queued()) },
		),
		processTime: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: metricsNamespace,
				Name:      "process_time_seconds",
				Help:      "time from admission to response",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"route"},
		),
	}
	m.registry.MustRegister(m.requests, m.inFlight, m.queued, m.processTime)
	return m
}

func (m *metrics) observe(route string, status int32, seconds float64) {
	m.requests.WithLabelValues(route, strconv.Itoa(int(status))).Inc()
	m.processTime.WithLabelValues(route).Observe(seconds)
}

func (m *metrics) handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
