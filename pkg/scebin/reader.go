/******************************************************************************\
* Scene Virtual Machine                                                        *
*                                                                              *
* Copyright 2020-2025 Leandro Motta Barros                                     *
* Licensed under the MIT license (see LICENSE.txt for details)                 *
\******************************************************************************/

// Package scebin implements the on-disk format of a compiled scene file
// (SceFile) and the positional binary reader used to decode opcode
// arguments from a procedure's instruction buffer.
package scebin

import (
	"encoding/binary"
	"math"

	"github.com/opengb/scenevm/pkg/errs"
)

// A Cursor decodes primitive values from a procedure's instruction buffer,
// advancing an offset as it goes. It is the §4.A "Binary reader": a cursor
// is created pointing at wherever the top ProcFrame's pc currently is,
// used to decode exactly one opcode's worth of arguments, and its resulting
// Offset is written back into the frame's pc.
//
// All decoders are little-endian and read from Code[Offset:]. A read past
// the end of Code panics with a *errs.DecodeError; decode-time failures are
// fatal, since bytecode is trusted, compiler-generated content.
type Cursor struct {
	// Code is the full instruction buffer being read from.
	Code []byte

	// Offset is the next byte to read. Advanced by every decode call.
	Offset int

	// ProcID identifies the procedure Code belongs to, for error messages
	// only.
	ProcID uint32
}

// NewCursor creates a Cursor over code, starting at offset.
func NewCursor(code []byte, offset int, procID uint32) *Cursor {
	return &Cursor{Code: code, Offset: offset, ProcID: procID}
}

// need panics with a *errs.DecodeError if fewer than n bytes remain at the
// current offset.
func (c *Cursor) need(n int, what string) {
	if c.Offset+n > len(c.Code) {
		panic(errs.NewDecodeError(c.ProcID, c.Offset, "need %v more byte(s) to read %v, only %v available",
			n, what, len(c.Code)-c.Offset))
	}
}

// I16 decodes a little-endian signed 16-bit integer.
func (c *Cursor) I16() int16 {
	c.need(2, "an i16")
	v := int16(binary.LittleEndian.Uint16(c.Code[c.Offset:]))
	c.Offset += 2
	return v
}

// I32 decodes a little-endian signed 32-bit integer.
func (c *Cursor) I32() int32 {
	c.need(4, "an i32")
	v := int32(binary.LittleEndian.Uint32(c.Code[c.Offset:]))
	c.Offset += 4
	return v
}

// U32 decodes a little-endian unsigned 32-bit integer.
func (c *Cursor) U32() uint32 {
	c.need(4, "a u32")
	v := binary.LittleEndian.Uint32(c.Code[c.Offset:])
	c.Offset += 4
	return v
}

// F32 decodes a little-endian IEEE-754 32-bit float.
func (c *Cursor) F32() float32 {
	c.need(4, "an f32")
	bits := binary.LittleEndian.Uint32(c.Code[c.Offset:])
	c.Offset += 4
	return math.Float32frombits(bits)
}

// String decodes a length-prefixed (u16), GBK-encoded, NUL-terminated
// string: a u16 byte count L, then L bytes of GBK text whose trailing NUL
// byte is stripped before decoding. Undecodable bytes are silently skipped
// (see decodeGBK).
func (c *Cursor) String() string {
	c.need(2, "a string length")
	length := int(binary.LittleEndian.Uint16(c.Code[c.Offset:]))
	c.Offset += 2

	c.need(length, "string contents")
	raw := c.Code[c.Offset : c.Offset+length]
	c.Offset += length

	if n := len(raw); n > 0 && raw[n-1] == 0 {
		raw = raw[:n-1]
	}
	return decodeGBK(raw)
}

// List decodes a length-prefixed (u16) list of strings. Each element is
// preceded by a one-byte discriminator, which is consumed and discarded (it
// identifies, in the original source format, how the option's text was
// produced -- literal vs. a dialog-variable reference; this VM layer treats
// both identically).
func (c *Cursor) List() []string {
	c.need(2, "a list count")
	count := int(binary.LittleEndian.Uint16(c.Code[c.Offset:]))
	c.Offset += 2

	items := make([]string, count)
	for i := 0; i < count; i++ {
		c.need(1, "a list item tag")
		c.Offset++ // discriminator byte, discarded
		items[i] = c.String()
	}
	return items
}
