// Copyright 2024 Parselabs. All rights reserved.
//
// Use of this source code is governed by a source-available license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package httpframe

// splitCommaTokens splits an already fully-buffered header value (e.g.
// a Header.Value slice, possibly built by joining several repeated
// headers of the same name) on ',' into its constituent tokens,
// trimming surrounding optional whitespace (RFC 7230 §3.2.3 OWS) from
// each one. Empty elements produced by consecutive or trailing commas
// are dropped, matching real-world list header handling.
//
// This is a deliberately non-resumable simplification of
// ParseTokenLst: headermap always operates on a value that ParseHeaders
// has already fully captured, never on a growing wire buffer, so there
// is no partial-input case to resume from.
func splitCommaTokens(v []byte) [][]byte {
	var toks [][]byte
	start := 0
	for i := 0; i <= len(v); i++ {
		if i == len(v) || v[i] == ',' {
			tok := trimOWS(v[start:i])
			if len(tok) > 0 {
				toks = append(toks, tok)
			}
			start = i + 1
		}
	}
	return toks
}

func isOWS(c byte) bool {
	return c == ' ' || c == '\t'
}

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
