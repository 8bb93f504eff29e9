// Copyright 2024 Parselabs. All rights reserved.
//
// Use of this source code is governed by a source-available license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package httpframe

// Header is a single parsed header field: a borrowed (name, value)
// pair pointing inside the input buffer. A Header produced by obsolete
// line folding (a continuation of the previous header's value onto a
// new line, RFC 7230 §3.2.4) has an empty Name — IsContinuation
// reports this. The continuation bytes are returned verbatim,
// including the leading whitespace; the core never unfolds them.
type Header struct {
	Name  PField
	Value PField
}

// IsContinuation reports whether h is an obsolete-line-folding
// continuation of the previous header's value rather than a new
// "name: value" field.
func (h Header) IsContinuation() bool {
	return h.Name.Empty()
}

// ParseHeaders parses a block of header fields up to (and including)
// the empty line that terminates it. headers supplies both the
// storage and the hard capacity: parsing a message with more header
// fields than len(headers) fails with RetMalformed. numHeaders
// receives the count of fields written (always <= len(headers)).
//
// lastLen, if non-zero, is the length of buf on the previous call to
// this function with the same (growing) buffer; it drives the
// slowloris probe (isComplete) so a resumed call costs O(new bytes)
// rather than O(len(buf)) before concluding "more bytes needed" for an
// attacker trickling in one byte at a time.
//
// Returns >0 (bytes consumed) on success, RetMalformed or RetPartial
// otherwise, per the public protocol in errors.go.
func ParseHeaders(buf []byte, headers []Header, numHeaders *int, lastLen int) int {
	*numHeaders = 0
	if lastLen > 0 {
		if err := isComplete(buf, lastLen); err == ErrHdrMoreBytes {
			return RetPartial
		}
	}
	n, err := parseHeaderList(buf, 0, headers, numHeaders)
	return toResult(n, err)
}

// parseHeaderList is the shared internal header-block loop used
// directly by ParseHeaders and after the request/status line by
// ParseRequest/ParseResponse. i is the offset of the first byte of
// the header block (or of the terminating empty line, for a
// bodyless/header-less message).
func parseHeaderList(buf []byte, i int, headers []Header, numHeaders *int) (int, ErrorHdr) {
	for {
		if i >= len(buf) {
			return i, ErrHdrMoreBytes
		}
		if buf[i] == '\r' || buf[i] == '\n' {
			next, err := skipCRLF(buf, i)
			if err != ErrHdrOk {
				return next, err
			}
			return next, ErrHdrOk
		}
		if *numHeaders >= len(headers) {
			return i, ErrHdrBadChar
		}

		var h Header
		if *numHeaders > 0 && (buf[i] == ' ' || buf[i] == '\t') {
			// obsolete line folding: continuation of the previous value
			_, end, next, err := advanceToEOL(buf, i)
			if err != ErrHdrOk {
				return next, err
			}
			h.Value.Set(i, end)
			headers[*numHeaders] = h
			*numHeaders++
			i = next
			continue
		}

		if !isTokenChar(buf[i]) {
			return i, ErrHdrBadChar
		}
		nameStart := i
		for {
			if i >= len(buf) {
				return i, ErrHdrMoreBytes
			}
			if buf[i] == ':' {
				break
			}
			if !isTokenChar(buf[i]) {
				return i, ErrHdrBadChar
			}
			i++
		}
		h.Name.Set(nameStart, i)
		i++ // skip ':'
		for {
			if i >= len(buf) {
				return i, ErrHdrMoreBytes
			}
			if buf[i] != ' ' && buf[i] != '\t' {
				break
			}
			i++
		}
		_, end, next, err := advanceToEOL(buf, i)
		if err != ErrHdrOk {
			return next, err
		}
		h.Value.Set(i, end)
		headers[*numHeaders] = h
		*numHeaders++
		i = next
	}
}
