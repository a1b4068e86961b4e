package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

type metrics struct {
	lines *prometheus.CounterVec
	keys  prometheus.Counter
}

func newMetrics(reg prometheus.Registerer) *metrics {
	return &metrics{
		lines: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "flatdoc",
				Subsystem: "stream",
				Name:      "lines_total",
				Help:      "Total number of processed input lines",
			},
			[]string{"result"},
		),
		keys: promauto.With(reg).NewCounter(
			prometheus.CounterOpts{
				Namespace: "flatdoc",
				Subsystem: "stream",
				Name:      "keys_total",
				Help:      "Total number of keys written to flattened documents",
			},
		),
	}
}

func (m *metrics) ok(keys int) {
	m.lines.WithLabelValues("ok").Inc()
	m.keys.Add(float64(keys))
}

func (m *metrics) failed() {
	m.lines.WithLabelValues("error").Inc()
}

// serveMetrics serves reg on addr until the returned function is called.
func serveMetrics(addr string, reg *prometheus.Registry, log *zap.Logger) (stop func()) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		err := srv.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("metrics server failed", zap.String("addr", addr), zap.Error(err))
		}
	}()
	log.Info("serving metrics", zap.String("addr", addr))

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(ctx)
	}
}
