package count

// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"perfcount/internal/results"
)

var counterValuesGaugeVec = prometheus.NewGaugeVec(
	prometheus.GaugeOpts{
		Name: "perfcount_events",
		Help: "Final performance event counts from the last measurement",
	},
	[]string{"event"},
)

// serveCounts publishes the final counter values on a scrape endpoint and
// blocks until interrupted. Duplicate event names collapse to the last value
// seen, a consequence of prometheus label identity.
func serveCounts(listenAddr string, records []results.Record) error {
	if err := prometheus.Register(counterValuesGaugeVec); err != nil {
		return fmt.Errorf("failed to register counter gauge: %w", err)
	}
	for _, record := range records {
		counterValuesGaugeVec.WithLabelValues(record.Name).Set(float64(record.Value))
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	server := &http.Server{
		Addr:              listenAddr,
		Handler:           mux,
		ReadHeaderTimeout: 3 * time.Second,
	}
	errChannel := make(chan error, 1)
	go func() {
		errChannel <- server.ListenAndServe()
	}()
	slog.Info("serving counter values", slog.String("address", listenAddr))
	fmt.Printf("Serving counter values on %s/metrics, press Ctrl+C to exit\n", listenAddr)
	sigChannel := make(chan os.Signal, 1)
	signal.Notify(sigChannel, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChannel)
	select {
	case err := <-errChannel:
		return fmt.Errorf("counter value server failed: %w", err)
	case sig := <-sigChannel:
		slog.Info("received signal", slog.String("signal", sig.String()))
		return server.Close()
	}
}
