/******************************************************************************\
* Scene Virtual Machine                                                        *
*                                                                              *
* Copyright 2020-2025 Leandro Motta Barros                                     *
* Licensed under the MIT license (see LICENSE.txt for details)                 *
\******************************************************************************/

package scebin

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCursorPrimitives(t *testing.T) {
	code := []byte{
		0x34, 0x12, // i16 = 0x1234
		0x01, 0x00, 0x00, 0x00, // i32 = 1
		0x02, 0x00, 0x00, 0x00, // u32 = 2
		0x00, 0x00, 0x80, 0x3f, // f32 = 1.0
	}
	c := NewCursor(code, 0, 1)

	assert.Equal(t, int16(0x1234), c.I16())
	assert.Equal(t, int32(1), c.I32())
	assert.Equal(t, uint32(2), c.U32())
	assert.Equal(t, float32(1.0), c.F32())
	assert.Equal(t, len(code), c.Offset)
}

func TestCursorString(t *testing.T) {
	// "hi" in ASCII (valid GBK too), NUL-terminated, u16 length prefix = 3.
	code := []byte{3, 0, 'h', 'i', 0}
	c := NewCursor(code, 0, 1)
	assert.Equal(t, "hi", c.String())
	assert.Equal(t, len(code), c.Offset)
}

func TestCursorList(t *testing.T) {
	// Two items, each {discriminator byte, 3-byte-prefixed "ok\0"}.
	code := []byte{
		2, 0, // count = 2
		0, 3, 0, 'o', 'k', 0,
		1, 3, 0, 'o', 'k', 0,
	}
	c := NewCursor(code, 0, 1)
	items := c.List()
	assert.Equal(t, []string{"ok", "ok"}, items)
}

func TestCursorTruncatedReadPanics(t *testing.T) {
	c := NewCursor([]byte{0x01}, 0, 42)
	assert.Panics(t, func() { c.I32() })
}

func TestCursorAdvancesExactArgWidth(t *testing.T) {
	// §8 "Dispatch completeness": after decoding a Gt-shaped argument list
	// (i16 + i32), offset should have advanced by exactly 6 bytes.
	code := make([]byte, 6)
	c := NewCursor(code, 0, 1)
	c.I16()
	c.I32()
	assert.Equal(t, 6, c.Offset)
}
