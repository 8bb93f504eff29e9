// Copyright 2024 Parselabs. All rights reserved.
//
// Use of this source code is governed by a source-available license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package main

import (
	"github.com/parselabs/httpframe"
	"github.com/parselabs/httpframe/headermap"
)

// bodyType is a body-delimiting decision kept deliberately out of the
// core parsing package, which only frames messages and never decides
// how long a body is. It lives here, in the CLI that drives the core
// end-to-end, per RFC 7230 §3.3.3.
type bodyType int

const (
	bodyNone bodyType = iota
	bodyContentLength
	bodyChunked
	bodyUntilEOF
)

func (t bodyType) String() string {
	switch t {
	case bodyNone:
		return "none"
	case bodyContentLength:
		return "content-length"
	case bodyChunked:
		return "chunked"
	case bodyUntilEOF:
		return "until-eof"
	default:
		return "unknown"
	}
}

// decideBodyType applies RFC 7230 §3.3.3 in order: HEAD replies and
// 1xx/204/304 responses never carry a body, a successful (2xx) CONNECT
// reply tunnels (body runs to EOF) while any other CONNECT reply is
// framed like an ordinary response, Transfer-Encoding takes
// priority over Content-Length. prevMethod is the method of the
// request this response answers; pass httpframe.MUndef for a request
// message or an unknown previous method.
func decideBodyType(isRequest bool, status int, prevMethod httpframe.HTTPMethod, m headermap.Map) bodyType {
	if !isRequest {
		if (status > 99 && status < 200) || status == 204 || status == 304 ||
			prevMethod == httpframe.MHead {
			return bodyNone
		}
		if prevMethod == httpframe.MConnect && status >= 200 && status <= 299 {
			return bodyUntilEOF
		}
	}

	if m.TransferEncodingLast != httpframe.TrEncNone {
		if m.IsChunked() {
			return bodyChunked
		}
		// Transfer-Encoding present but chunked isn't the final coding:
		// RFC 7230 gives no reliable frame length in this case.
		return bodyUntilEOF
	}

	if m.HasContentLength {
		return bodyContentLength
	}

	if isRequest {
		return bodyNone
	}
	return bodyUntilEOF
}
