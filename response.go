// Copyright 2024 Parselabs. All rights reserved.
//
// Use of this source code is governed by a source-available license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package httpframe

// Response holds the result of parsing an HTTP/1.x status line plus
// its header block. Msg and every Headers[i] are borrowed views into
// the buf passed to ParseResponse.
type Response struct {
	Minor      int // HTTP/1.x minor version; -1 until parsed
	Status     int // status code; 0 until parsed
	Msg        PField
	Headers    []Header
	NumHeaders int
}

func (r *Response) reset() {
	r.Minor = -1
	r.Status = 0
	r.Msg.Reset()
	r.NumHeaders = 0
}

// ParseResponse parses an HTTP/1.x status line ("HTTP/1.x status
// reason-phrase") followed by its header block. An empty reason
// phrase is accepted. headers supplies both storage and hard capacity
// for the parsed header fields (see ParseHeaders).
//
// lastLen is the buffer length on the previous call with the same
// (growing) buffer, used for the slowloris probe; pass 0 on the first
// call for a given message.
//
// Returns >0 (bytes consumed), RetMalformed or RetPartial.
func ParseResponse(buf []byte, resp *Response, lastLen int) int {
	resp.reset()
	resp.Headers = resp.Headers[:0]

	if lastLen > 0 {
		if err := isComplete(buf, lastLen); err == ErrHdrMoreBytes {
			return RetPartial
		}
	}

	minor, i, err := parseHTTPVersion(buf, 0)
	if err != ErrHdrOk {
		return toResult(0, err)
	}
	resp.Minor = minor

	if i >= len(buf) {
		return RetPartial
	}
	if buf[i] != ' ' {
		return RetMalformed
	}
	i++

	status, next, err := parseDecimal(buf, i)
	if err != ErrHdrOk {
		return toResult(0, err)
	}
	resp.Status = status
	i = next

	if i >= len(buf) {
		return RetPartial
	}
	switch buf[i] {
	case ' ':
		i++
	case '\r', '\n':
		// lenient: some servers omit the space when the reason phrase
		// is empty ("HTTP/1.1 204\r\n" with no trailing space)
	default:
		return RetMalformed
	}

	mStart, mEnd, next, err := advanceToEOL(buf, i)
	if err != ErrHdrOk {
		return toResult(0, err)
	}
	resp.Msg.Set(mStart, mEnd)
	i = next

	n, err := parseHeaderList(buf, i, resp.Headers[:cap(resp.Headers)], &resp.NumHeaders)
	resp.Headers = resp.Headers[:resp.NumHeaders]
	return toResult(n, err)
}
