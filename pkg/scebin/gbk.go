/******************************************************************************\
* Scene Virtual Machine                                                        *
*                                                                              *
* Copyright 2020-2025 Leandro Motta Barros                                     *
* Licensed under the MIT license (see LICENSE.txt for details)                 *
\******************************************************************************/

package scebin

import (
	"strings"

	"golang.org/x/text/encoding/simplifiedchinese"
)

// decodeGBK converts raw GBK-encoded bytes to a UTF-8 string. Undecodable
// bytes are silently skipped, per the String() decoding rule in §4.A: the
// scene file format is trusted authored content, but individual strings
// occasionally carry stray bytes left over from the original tool's text
// encoder, and a truncated or garbled byte shouldn't bring decoding of the
// rest of the procedure to a halt.
func decodeGBK(raw []byte) string {
	decoder := simplifiedchinese.GBK.NewDecoder()

	// Happy path: the whole buffer decodes in one shot.
	dst := make([]byte, len(raw)*3+16)
	nDst, nSrc, err := decoder.Transform(dst, raw, true)
	if err == nil && nSrc == len(raw) {
		return string(dst[:nDst])
	}

	// Slow path: walk the buffer, dropping whatever byte the decoder won't
	// swallow, and keep going from the next one.
	var sb strings.Builder
	for len(raw) > 0 {
		d := make([]byte, 8)
		n, consumed, _ := decoder.Transform(d, raw, true)
		if consumed == 0 {
			raw = raw[1:]
			continue
		}
		if n > 0 {
			sb.Write(d[:n])
		}
		raw = raw[consumed:]
	}
	return sb.String()
}
