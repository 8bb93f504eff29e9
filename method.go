// Copyright 2024 Parselabs. All rights reserved.
//
// Use of this source code is governed by a source-available license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package httpframe

import (
	"bytes"

	"github.com/intuitivelabs/bytescase"
)

// HTTPMethod is a numeric convenience recognition of the request
// method, supplementing the raw Method slice every Request carries.
// picohttpparser leaves the method as a bare token; this enum and its
// lookup table turn it into a fast, allocation-free comparison.
type HTTPMethod uint8

const (
	MUndef HTTPMethod = iota
	MGet
	MHead
	MPost
	MPut
	MDelete
	MConnect
	MOptions
	MTrace
	MPatch
	MOther // must stay last
)

var method2Name = [MOther + 1][]byte{
	MUndef:   []byte(""),
	MGet:     []byte("GET"),
	MHead:    []byte("HEAD"),
	MPost:    []byte("POST"),
	MPut:     []byte("PUT"),
	MDelete:  []byte("DELETE"),
	MConnect: []byte("CONNECT"),
	MOptions: []byte("OPTIONS"),
	MTrace:   []byte("TRACE"),
	MPatch:   []byte("PATCH"),
	MOther:   []byte("OTHER"),
}

// String implements fmt.Stringer.
func (m HTTPMethod) String() string {
	if m > MOther {
		return string(method2Name[MUndef])
	}
	return string(method2Name[m])
}

type mth2Type struct {
	n []byte
	t HTTPMethod
}

const (
	mthBitsLen   uint = 2
	mthBitsFChar uint = 3
)

var mthNameLookup [1 << (mthBitsLen + mthBitsFChar)][]mth2Type

func hashMthName(n []byte) int {
	const (
		mC = (1 << mthBitsFChar) - 1
		mL = (1 << mthBitsLen) - 1
	)
	return (int(bytescase.ByteToLower(n[0])) & mC) |
		((len(n) & mL) << mthBitsFChar)
}

func init() {
	for i := MUndef + 1; i < MOther; i++ {
		h := hashMthName(method2Name[i])
		mthNameLookup[h] = append(mthNameLookup[h], mth2Type{method2Name[i], i})
	}
}

// getMethodNo converts a raw method token to the corresponding
// HTTPMethod, returning MOther for anything not in the well-known set.
func getMethodNo(buf []byte) HTTPMethod {
	if len(buf) == 0 {
		return MUndef
	}
	i := hashMthName(buf)
	for _, m := range mthNameLookup[i] {
		if bytes.Equal(buf, m.n) {
			return m.t
		}
	}
	return MOther
}
