// Copyright 2024 Parselabs. All rights reserved.
//
// Use of this source code is governed by a source-available license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package httpframe

// tokenCharMap is a 256-entry bit table realizing the RFC 7230 "token"
// character class in one load, the same technique as picohttpparser's
// token_char_map: ASCII letters, digits, and !#$%&'*+-.^_`|~.
var tokenCharMap [256]bool

func init() {
	const marks = "!#$%&'*+-.^_`|~"
	for c := 'a'; c <= 'z'; c++ {
		tokenCharMap[c] = true
	}
	for c := 'A'; c <= 'Z'; c++ {
		tokenCharMap[c] = true
	}
	for c := '0'; c <= '9'; c++ {
		tokenCharMap[c] = true
	}
	for _, c := range marks {
		tokenCharMap[c] = true
	}
}

// isTokenChar reports whether c is a valid RFC 7230 token character.
// Tab is deliberately excluded here: it is permitted inside header
// values but not inside a header name or a generic token.
func isTokenChar(c byte) bool {
	return tokenCharMap[c]
}

// isPrintableASCII reports whether c is in the printable ASCII range
// 0x20..0x7E inclusive.
func isPrintableASCII(c byte) bool {
	return c >= 0x20 && c <= 0x7E
}
