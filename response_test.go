// Copyright 2024 Parselabs. All rights reserved.
//
// Use of this source code is governed by a source-available license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package httpframe

import "testing"

func TestParseResponseBasic(t *testing.T) {
	buf := []byte("HTTP/1.0 500 Internal Server Error\r\n\r\n")
	var resp Response
	resp.Headers = make([]Header, 2)
	n := ParseResponse(buf, &resp, 0)
	if n != len(buf) {
		t.Fatalf("n = %d, want %d", n, len(buf))
	}
	if resp.Status != 500 {
		t.Errorf("status = %d, want 500", resp.Status)
	}
	if string(resp.Msg.Get(buf)) != "Internal Server Error" {
		t.Errorf("msg = %q", resp.Msg.Get(buf))
	}
	if resp.Minor != 0 {
		t.Errorf("minor = %d, want 0", resp.Minor)
	}
}

func TestParseResponseMissingStatusDigitsIsMalformed(t *testing.T) {
	buf := []byte("HTTP/1.1  OK\r\n\r\n")
	var resp Response
	resp.Headers = make([]Header, 2)
	n := ParseResponse(buf, &resp, 0)
	if n != RetMalformed {
		t.Fatalf("n = %d, want RetMalformed", n)
	}
}

func TestParseResponseEmptyReasonPhraseNoTrailingSpace(t *testing.T) {
	buf := []byte("HTTP/1.1 204\r\n\r\n")
	var resp Response
	resp.Headers = make([]Header, 2)
	n := ParseResponse(buf, &resp, 0)
	if n != len(buf) {
		t.Fatalf("n = %d, want %d", n, len(buf))
	}
	if resp.Status != 204 {
		t.Errorf("status = %d, want 204", resp.Status)
	}
	if !resp.Msg.Empty() {
		t.Errorf("msg = %q, want empty", resp.Msg.Get(buf))
	}
}

func TestParseResponseEmptyReasonPhraseWithTrailingSpace(t *testing.T) {
	buf := []byte("HTTP/1.1 204 \r\n\r\n")
	var resp Response
	resp.Headers = make([]Header, 2)
	n := ParseResponse(buf, &resp, 0)
	if n != len(buf) {
		t.Fatalf("n = %d, want %d", n, len(buf))
	}
	if !resp.Msg.Empty() {
		t.Errorf("msg = %q, want empty", resp.Msg.Get(buf))
	}
}

func TestParseResponseProgressMonotonicity(t *testing.T) {
	full := []byte("HTTP/1.1 200 OK\r\nContent-Length: 0\r\n\r\n")
	for n := 0; n < len(full); n++ {
		var resp Response
		resp.Headers = make([]Header, 4)
		got := ParseResponse(full[:n], &resp, 0)
		if got != RetPartial {
			t.Fatalf("prefix len %d: got %d, want RetPartial", n, got)
		}
	}
	var resp Response
	resp.Headers = make([]Header, 4)
	got := ParseResponse(full, &resp, 0)
	if got != len(full) {
		t.Fatalf("full buffer: got %d, want %d", got, len(full))
	}
}

func TestParseResponseSlowlorisAcceleration(t *testing.T) {
	full := []byte("HTTP/1.1 200 OK\r\nContent-Length: 0\r\n\r\n")
	for n := 1; n <= len(full); n++ {
		var a, b Response
		a.Headers = make([]Header, 4)
		b.Headers = make([]Header, 4)
		gotA := ParseResponse(full[:n], &a, 0)
		gotB := ParseResponse(full[:n], &b, n-1)
		if gotA != gotB {
			t.Fatalf("n=%d: last_len=0 -> %d, last_len=n-1 -> %d", n, gotA, gotB)
		}
	}
}

func TestParseResponseBadVersionIsMalformed(t *testing.T) {
	buf := []byte("HTCP/1.1 200 OK\r\n\r\n")
	var resp Response
	resp.Headers = make([]Header, 2)
	n := ParseResponse(buf, &resp, 0)
	if n != RetMalformed {
		t.Fatalf("n = %d, want RetMalformed", n)
	}
}

func TestParseResponseBareLF(t *testing.T) {
	buf := []byte("HTTP/1.1 200 OK\nContent-Length: 0\n\n")
	var resp Response
	resp.Headers = make([]Header, 2)
	n := ParseResponse(buf, &resp, 0)
	if n != len(buf) {
		t.Fatalf("n = %d, want %d", n, len(buf))
	}
}
