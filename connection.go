// Copyright 2024 Parselabs. All rights reserved.
//
// Use of this source code is governed by a source-available license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package httpframe

import "github.com/intuitivelabs/bytescase"

// ConnFlags is a bitset of recognized Connection header tokens,
// resolved the same way parse_tr_enc.go/parse_upgrade.go resolve their
// own header's tokens (fixed-length switch plus a case-insensitive
// byte compare).
type ConnFlags uint

const (
	ConnNone     ConnFlags = 0
	ConnCloseF   ConnFlags = 1 << iota
	ConnKeepAliveF
	ConnUpgradeF
	ConnOtherF // unknown token, e.g. a connection-specific header name
)

func resolveConnToken(tok []byte) ConnFlags {
	switch len(tok) {
	case 5:
		if bytescase.CmpEq(tok, []byte("close")) {
			return ConnCloseF
		}
	case 7:
		if bytescase.CmpEq(tok, []byte("upgrade")) {
			return ConnUpgradeF
		}
	case 10:
		if bytescase.CmpEq(tok, []byte("keep-alive")) {
			return ConnKeepAliveF
		}
	}
	return ConnOtherF
}

// ResolveConnection parses a (possibly comma-joined, across repeated
// headers) Connection header value into the set of tokens it names.
func ResolveConnection(value []byte) ConnFlags {
	var flags ConnFlags
	for _, tok := range splitCommaTokens(value) {
		flags |= resolveConnToken(tok)
	}
	return flags
}
