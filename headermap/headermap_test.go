// Copyright 2024 Parselabs. All rights reserved.
//
// Use of this source code is governed by a source-available license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package headermap

import (
	"testing"

	"github.com/parselabs/httpframe"
)

func parseReq(t *testing.T, raw string) ([]byte, httpframe.Request) {
	t.Helper()
	buf := []byte(raw)
	var req httpframe.Request
	req.Headers = make([]httpframe.Header, 8)
	n := httpframe.ParseRequest(buf, &req, 0)
	if n != len(buf) {
		t.Fatalf("ParseRequest(%q) = %d, want %d", raw, n, len(buf))
	}
	return buf, req
}

func TestBuildContentLength(t *testing.T) {
	buf, req := parseReq(t, "POST /x HTTP/1.1\r\nContent-Length: 42\r\n\r\n")
	m, err := Build(buf, req.Headers)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if !m.HasContentLength || m.ContentLength != 42 {
		t.Fatalf("content-length = %d, has=%v", m.ContentLength, m.HasContentLength)
	}
}

func TestBuildInvalidContentLength(t *testing.T) {
	buf, req := parseReq(t, "POST /x HTTP/1.1\r\nContent-Length: abc\r\n\r\n")
	if _, err := Build(buf, req.Headers); err == nil {
		t.Fatalf("expected error for non-numeric Content-Length")
	}
}

func TestBuildChunkedDetection(t *testing.T) {
	buf, req := parseReq(t, "POST /x HTTP/1.1\r\nTransfer-Encoding: gzip, chunked\r\n\r\n")
	m, err := Build(buf, req.Headers)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if !m.IsChunked() {
		t.Fatalf("expected IsChunked() to be true")
	}
	if m.TransferEncoding&httpframe.TrEncGzipF == 0 {
		t.Fatalf("expected gzip flag set")
	}
}

func TestBuildConnectionTokensOrMergedAcrossHeaders(t *testing.T) {
	buf, req := parseReq(t, "GET /x HTTP/1.1\r\nConnection: close\r\nConnection: Upgrade\r\n\r\n")
	m, err := Build(buf, req.Headers)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	want := httpframe.ConnCloseF | httpframe.ConnUpgradeF
	if m.Connection != want {
		t.Fatalf("connection flags = %v, want %v", m.Connection, want)
	}
}

func TestBuildMultiValuedGet(t *testing.T) {
	buf, req := parseReq(t, "GET /x HTTP/1.1\r\nX-Foo: a\r\nX-Foo: b\r\n\r\n")
	m, err := Build(buf, req.Headers)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	vs := m.Values("x-foo")
	if len(vs) != 2 || string(vs[0]) != "a" || string(vs[1]) != "b" {
		t.Fatalf("values = %q", vs)
	}
	v, ok := m.Get("X-FOO")
	if !ok || string(v) != "a" {
		t.Fatalf("Get = %q, ok=%v", v, ok)
	}
}

func TestBuildFoldedHeaderJoined(t *testing.T) {
	buf, req := parseReq(t, "GET /x HTTP/1.1\r\nfoo: b\r\n  c\r\n\r\n")
	m, err := Build(buf, req.Headers)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if !m.FoldedHeaders() {
		t.Fatalf("expected FoldedHeaders() to be true")
	}
	v, ok := m.Get("foo")
	if !ok || string(v) != "b c" {
		t.Fatalf("Get(foo) = %q, ok=%v, want %q", v, ok, "b c")
	}
}
