// Copyright 2024 Parselabs. All rights reserved.
//
// Use of this source code is governed by a source-available license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

// Package headermap turns the flat, ordered []httpframe.Header slice
// produced by ParseRequest/ParseResponse/ParseHeaders into the
// by-name view most callers actually want, and resolves the headers
// that affect message framing: Content-Length, Transfer-Encoding and
// Connection.
package headermap

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/parselabs/httpframe"
)

// Map is a case-insensitive, multi-valued view of a parsed header
// block, plus the pre-resolved framing headers a caller needs to
// decide how to read the message body.
type Map struct {
	// ContentLength is the decoded value of the Content-Length header.
	// Valid only when HasContentLength is true.
	ContentLength int64
	HasContentLength bool

	// TransferEncoding is the set of codings named by the
	// Transfer-Encoding header, and TransferEncodingLast is the
	// outermost (last-applied) one; per RFC 7230 §3.3.1 a message is
	// chunked iff TransferEncodingLast == httpframe.TrEncChunkedF.
	TransferEncoding     httpframe.TrEncFlags
	TransferEncodingLast httpframe.TrEncFlags

	// Connection is the set of tokens named by the Connection header.
	Connection httpframe.ConnFlags

	values map[string][][]byte
	folded bool // an obsolete-line-folding continuation was joined in
}

// Build aggregates headers (as produced against buf by
// ParseRequest/ParseResponse/ParseHeaders) into a Map. An obsolete
// line-folding continuation (Header.IsContinuation) is appended, with
// its leading whitespace collapsed to a single space, to the value of
// the header field it continues.
func Build(buf []byte, headers []httpframe.Header) (Map, error) {
	m := Map{values: make(map[string][][]byte, len(headers))}

	var lastKey string
	var lastIdx int
	haveLast := false

	for _, h := range headers {
		if h.IsContinuation() {
			if !haveLast {
				return Map{}, errors.New("headermap: continuation line with no preceding header")
			}
			m.folded = true
			joined := append(append([]byte{}, m.values[lastKey][lastIdx]...), ' ')
			joined = append(joined, trimOWS(h.Value.Get(buf))...)
			m.values[lastKey][lastIdx] = joined
			continue
		}

		key := strings.ToLower(string(h.Name.Get(buf)))
		val := trimOWS(h.Value.Get(buf))
		m.values[key] = append(m.values[key], val)
		lastKey = key
		lastIdx = len(m.values[key]) - 1
		haveLast = true

		switch key {
		case "content-length":
			n, err := strconv.ParseInt(string(trimOWS(val)), 10, 64)
			if err != nil {
				return Map{}, errors.Wrapf(err, "headermap: invalid Content-Length %q", val)
			}
			if n < 0 {
				return Map{}, errors.Errorf("headermap: invalid Content-Length %q", val)
			}
			if m.HasContentLength && m.ContentLength != n {
				return Map{}, errors.Errorf("headermap: conflicting Content-Length values (%d vs %d)", m.ContentLength, n)
			}
			m.ContentLength = n
			m.HasContentLength = true
		case "transfer-encoding":
			flags, last := httpframe.ResolveTransferEncoding(val)
			m.TransferEncoding |= flags
			m.TransferEncodingLast = last
		case "connection":
			m.Connection |= httpframe.ResolveConnection(val)
		}
	}

	return m, nil
}

// IsChunked reports whether the message uses chunked transfer-coding
// per RFC 7230 §3.3.1 (chunked must be the last coding applied).
func (m Map) IsChunked() bool {
	return m.TransferEncodingLast == httpframe.TrEncChunkedF
}

// FoldedHeaders reports whether Build joined in any obsolete
// line-folding continuation lines.
func (m Map) FoldedHeaders() bool {
	return m.folded
}

// Get returns the first value of the named header (case-insensitive),
// and whether it was present at all.
func (m Map) Get(name string) ([]byte, bool) {
	vs, ok := m.values[strings.ToLower(name)]
	if !ok || len(vs) == 0 {
		return nil, false
	}
	return vs[0], true
}

// Values returns every value of the named header (case-insensitive),
// in wire order, as repeated headers with the same name are not
// merged (other than Build's own comma-joining of Connection and
// Transfer-Encoding into the resolved flag sets above).
func (m Map) Values(name string) [][]byte {
	return m.values[strings.ToLower(name)]
}

func isOWS(c byte) bool { return c == ' ' || c == '\t' }

func trimOWS(v []byte) []byte {
	i, j := 0, len(v)
	for i < j && isOWS(v[i]) {
		i++
	}
	for j > i && isOWS(v[j-1]) {
		j--
	}
	return v[i:j]
}
