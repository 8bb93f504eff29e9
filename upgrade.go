// Copyright 2024 Parselabs. All rights reserved.
//
// Use of this source code is governed by a source-available license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package httpframe

import "github.com/intuitivelabs/bytescase"

// UpgProtoFlags is a bitset of recognized Upgrade header protocol
// tokens, see
// https://www.iana.org/assignments/http-upgrade-tokens/http-upgrade-tokens.xhtml
type UpgProtoFlags uint

const (
	UProtoNone   UpgProtoFlags = 0
	UProtoWSockF UpgProtoFlags = 1 << iota
	UProtoHTTP2F
	UProtoOtherF // unknown/other
)

func resolveUpgradeToken(n []byte) UpgProtoFlags {
	switch {
	case len(n) == 9 && bytescase.CmpEq(n, []byte("websocket")):
		return UProtoWSockF
	case len(n) == 3 && bytescase.CmpEq(n, []byte("h2c")):
		return UProtoHTTP2F
	case len(n) == 8 && bytescase.CmpEq(n, []byte("http/2.0")):
		return UProtoHTTP2F
	}
	return UProtoOtherF
}

// ResolveUpgrade parses a (possibly comma-joined, across repeated
// headers) Upgrade header value into the set of protocols it names.
func ResolveUpgrade(value []byte) UpgProtoFlags {
	var flags UpgProtoFlags
	for _, tok := range splitCommaTokens(value) {
		flags |= resolveUpgradeToken(tok)
	}
	return flags
}
