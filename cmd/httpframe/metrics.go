// Copyright 2024 Parselabs. All rights reserved.
//
// Use of this source code is governed by a source-available license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package main

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const metricsNamespace = "httpframe"

var (
	messagesParsed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "messages_parsed_total",
			Help:      "Request/response messages successfully parsed.",
		},
		[]string{"kind"},
	)

	malformedRejections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "malformed_rejections_total",
			Help:      "Messages rejected as malformed.",
		},
		[]string{"kind"},
	)

	incompleteRetries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "incomplete_retries_total",
			Help:      "Parser calls that returned incomplete and were retried with more bytes.",
		},
		[]string{"kind"},
	)

	chunkedBytesDecoded = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "chunked_bytes_decoded_total",
			Help:      "Body bytes produced by the chunked-transfer decoder.",
		},
	)
)

// serveMetrics starts a background HTTP server exposing the
// /metrics endpoint, following packetd's controller wiring of
// prometheus/client_golang's promhttp.Handler.
func serveMetrics(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: addr, Handler: mux}
	go func() {
		_ = srv.ListenAndServe()
	}()
	return srv
}
