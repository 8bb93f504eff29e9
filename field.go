// Copyright 2024 Parselabs. All rights reserved.
//
// Use of this source code is governed by a source-available license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

// Package httpframe implements a zero-copy, incremental HTTP/1.x
// message-framing parser: request lines, status lines, header fields
// and chunked-transfer bodies. Its parsers and chunked decoder never
// allocate, never block, and never own the bytes they parse — every
// parsed value is a borrowed view into the caller's buffer. The
// header-value token resolvers (ResolveConnection,
// ResolveTransferEncoding, ResolveUpgrade) allocate the token list
// they split the value into.
package httpframe

// OffsT is the type used for offsets and lengths inside PField.
// uint32 keeps PField small while comfortably covering the header
// and request/response line sizes a framing parser deals with.
type OffsT uint32

// PField is a borrowed view into a buffer: an offset and a length.
// It never copies; Get() re-slices the buffer the offset/length refer
// into.
type PField struct {
	Offs OffsT
	Len  OffsT
}

// Set points p at buf[start:end). end is the offset one past the last
// byte of the field.
func (p *PField) Set(start, end int) {
	if end < start {
		panic("httpframe: invalid field range")
	}
	p.Offs = OffsT(start)
	p.Len = OffsT(end - start)
}

// Reset clears p to the empty field.
func (p *PField) Reset() {
	p.Offs = 0
	p.Len = 0
}

// Extend grows p so that it ends at newEnd (its start is unchanged).
func (p *PField) Extend(newEnd int) {
	if newEnd < int(p.Offs) {
		panic("httpframe: invalid field end")
	}
	p.Len = OffsT(newEnd) - p.Offs
}

// Empty reports whether p refers to zero bytes.
func (p PField) Empty() bool {
	return p.Len == 0
}

// EndOffs returns the offset one past the last byte of p.
func (p PField) EndOffs() int {
	return int(p.Offs) + int(p.Len)
}

// Get returns the byte slice inside buf that p refers to.
func (p PField) Get(buf []byte) []byte {
	return buf[p.Offs : p.Offs+p.Len]
}
