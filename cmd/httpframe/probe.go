// Copyright 2024 Parselabs. All rights reserved.
//
// Use of this source code is governed by a source-available license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/parselabs/httpframe"
	"github.com/parselabs/httpframe/headermap"
)

// streamKind tells probeStream whether to parse the capture as
// requests or responses; a capture file holds one or the other, never
// a mix, matching how the core's two entry points are used in
// practice (a client reads responses, a server reads requests).
type streamKind string

const (
	streamRequests  streamKind = "request"
	streamResponses streamKind = "response"
)

// probeResult summarizes one probed stream for the CLI's final report.
type probeResult struct {
	Path           string
	CorrelationID  string
	Messages       int
	MalformedAt    int // byte offset of the first malformed message, -1 if none
	ChunkedBodies  int
	ChunkedBytes   int64
	FoldedHeaders  int
}

// probeFiles fans out one goroutine per input file via errgroup: each
// stream has its own buffer and parser state, so N files parse
// concurrently without any coordination between them. Unlike
// errgroup's usual fail-fast idiom, a failing file does not cancel its
// siblings: every g.Go closure always returns nil and instead records
// its own failure, so one malformed capture among many does not hide
// the results of the rest. combineErrors folds whatever failures were
// recorded into a single error for the caller.
func probeFiles(ctx context.Context, log *zap.Logger, kind streamKind, headerCap int, consumeTrailer bool, paths []string) ([]probeResult, error) {
	results := make([]probeResult, len(paths))
	errs := make([]error, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	for i, p := range paths {
		i, p := i, p
		g.Go(func() error {
			cid := uuid.NewString()
			log := log.With(zap.String("correlation_id", cid), zap.String("path", p))
			data, err := os.ReadFile(p)
			if err != nil {
				errs[i] = errors.Wrapf(err, "reading %s", p)
				return nil
			}
			res, err := probeStream(ctx, log, kind, headerCap, consumeTrailer, data)
			if err != nil {
				errs[i] = errors.Wrapf(err, "probing %s", p)
				return nil
			}
			res.Path = p
			res.CorrelationID = cid
			results[i] = res
			return nil
		})
	}
	_ = g.Wait() // never non-nil: every closure above returns nil itself
	return results, combineErrors(errs)
}

// probeStream feeds data through the core parser one message at a
// time, growing the visible prefix byte-by-byte before each message to
// exercise the re-entrant "incomplete" contract, then runs the chunked
// decoder over any chunked body it finds.
func probeStream(_ context.Context, log *zap.Logger, kind streamKind, headerCap int, consumeTrailer bool, data []byte) (probeResult, error) {
	res := probeResult{MalformedAt: -1}
	headers := make([]httpframe.Header, headerCap)
	offs := 0
	prevMethod := httpframe.MUndef

	for offs < len(data) {
		n, retries, err := parseOneIncremental(kind, data, offs, headers)
		if err != nil {
			res.MalformedAt = offs
			malformedRejections.WithLabelValues(string(kind)).Inc()
			return res, err
		}
		incompleteRetries.WithLabelValues(string(kind)).Add(float64(retries))
		messagesParsed.WithLabelValues(string(kind)).Inc()
		res.Messages++

		var hm headermap.Map
		var isRequest bool
		var status int
		switch kind {
		case streamRequests:
			var req httpframe.Request
			req.Headers = headers
			httpframe.ParseRequest(data[offs:], &req, 0)
			hm, err = headermap.Build(data[offs:], req.Headers[:req.NumHeaders])
			isRequest = true
			prevMethod = req.MethodNo
		case streamResponses:
			var resp httpframe.Response
			resp.Headers = headers
			httpframe.ParseResponse(data[offs:], &resp, 0)
			hm, err = headermap.Build(data[offs:], resp.Headers[:resp.NumHeaders])
			status = resp.Status
		}
		if err != nil {
			return res, errors.Wrap(err, "building header map")
		}
		if hm.FoldedHeaders() {
			res.FoldedHeaders++
		}

		bt := decideBodyType(isRequest, status, prevMethod, hm)
		log.Debug("parsed message", zap.Int("offset", offs), zap.Stringer("body_type", bt))

		bodyStart := offs + n
		switch bt {
		case bodyContentLength:
			offs = bodyStart + int(hm.ContentLength)
		case bodyChunked:
			consumed, decoded, err := decodeChunkedBody(data[bodyStart:], consumeTrailer)
			if err != nil {
				res.MalformedAt = bodyStart
				malformedRejections.WithLabelValues(string(kind)).Inc()
				return res, errors.Wrap(err, "decoding chunked body")
			}
			res.ChunkedBodies++
			res.ChunkedBytes += int64(len(decoded))
			chunkedBytesDecoded.Add(float64(len(decoded)))
			offs = bodyStart + consumed
		default:
			offs = bodyStart
		}
	}
	return res, nil
}

func parseOneIncremental(kind streamKind, data []byte, offs int, headers []httpframe.Header) (consumed, retries int, err error) {
	lastLen := 0
	for probeLen := 1; ; probeLen++ {
		end := offs + probeLen
		if end > len(data) {
			end = len(data)
		}
		var ret int
		switch kind {
		case streamRequests:
			var req httpframe.Request
			req.Headers = headers
			ret = httpframe.ParseRequest(data[offs:end], &req, lastLen)
		case streamResponses:
			var resp httpframe.Response
			resp.Headers = headers
			ret = httpframe.ParseResponse(data[offs:end], &resp, lastLen)
		default:
			return 0, retries, fmt.Errorf("unknown stream kind %q", kind)
		}
		switch {
		case ret == httpframe.RetMalformed:
			return 0, retries, errors.New("malformed message")
		case ret == httpframe.RetPartial:
			if end == len(data) {
				return 0, retries, errors.New("truncated message at end of input")
			}
			lastLen = end - offs
			retries++
			continue
		default:
			return ret, retries, nil
		}
	}
}

// decodeChunkedBody runs the chunked decoder to completion over an
// already-fully-buffered body slice, simulating the same incremental
// feeding probeStream uses for framing.
func decodeChunkedBody(body []byte, consumeTrailer bool) (consumed int, decoded []byte, err error) {
	var d httpframe.ChunkedDecoder
	d.ConsumeTrailer = consumeTrailer
	buf := make([]byte, 0, len(body))
	fed := 0
	for {
		if fed < len(body) {
			buf = append(buf, body[fed])
			fed++
		} else {
			return 0, nil, errors.New("truncated chunked body")
		}
		n := len(buf)
		ret := httpframe.DecodeChunked(&d, buf, &n)
		buf = buf[:n]
		switch {
		case ret == httpframe.RetMalformed:
			return 0, nil, errors.New("malformed chunked encoding")
		case ret == httpframe.RetPartial:
			continue
		default:
			tail := n - ret
			return fed - tail, buf[:ret], nil
		}
	}
}
