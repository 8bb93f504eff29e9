// Copyright 2024 Parselabs. All rights reserved.
//
// Use of this source code is governed by a source-available license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package httpframe

import "github.com/intuitivelabs/bytescase"

// TrEncFlags is a bitset of recognized Transfer-Encoding/TE coding
// names, resolved from the tokens of a Transfer-Encoding header value.
type TrEncFlags uint

// Transfer-Encoding flag values, see RFC 7230 §4 and
// http://www.iana.org/assignments/http-parameters/http-parameters.xhtml#transfer-coding
const (
	TrEncNone     TrEncFlags = 0
	TrEncChunkedF TrEncFlags = 1 << iota
	TrEncCompressF
	TrEncDeflateF
	TrEncGzipF
	TrEncIdentityF
	TrEncTrailersF  // not an actual encoding, used in TE
	TrEncXCompressF // obsolete
	TrEncXGzipF     // obsolete
	TrEncOtherF     // unknown/other
)

// resolveTrEnc maps one Transfer-Encoding/TE token to its flag.
func resolveTrEnc(n []byte) TrEncFlags {
	switch len(n) {
	case 7:
		if bytescase.CmpEq(n, []byte("chunked")) {
			return TrEncChunkedF
		} else if bytescase.CmpEq(n, []byte("deflate")) {
			return TrEncDeflateF
		}
	case 8:
		if bytescase.CmpEq(n, []byte("compress")) {
			return TrEncCompressF
		} else if bytescase.CmpEq(n, []byte("identity")) {
			return TrEncIdentityF
		} else if bytescase.CmpEq(n, []byte("trailers")) {
			return TrEncTrailersF
		}
	case 4:
		if bytescase.CmpEq(n, []byte("gzip")) {
			return TrEncGzipF
		}
	case 10:
		if bytescase.CmpEq(n, []byte("x-compress")) {
			return TrEncXCompressF
		}
	case 6:
		if bytescase.CmpEq(n, []byte("x-gzip")) {
			return TrEncXGzipF
		}
	}
	return TrEncOtherF
}

// ResolveTransferEncoding parses a (possibly comma-joined, across
// repeated headers) Transfer-Encoding header value into the set of
// codings it names (flags) and the flag of its last token (last), the
// outermost coding applied to the wire. chunked MUST be last per RFC
// 7230 §3.3.1; a caller enforcing that invariant should check that
// last is TrEncChunkedF.
func ResolveTransferEncoding(value []byte) (flags TrEncFlags, last TrEncFlags) {
	for _, tok := range splitCommaTokens(value) {
		f := resolveTrEnc(tok)
		flags |= f
		last = f
	}
	return flags, last
}
