/******************************************************************************\
* Scene Virtual Machine                                                        *
*                                                                              *
* Copyright 2020-2025 Leandro Motta Barros                                     *
* Licensed under the MIT license (see LICENSE.txt for details)                 *
\******************************************************************************/

package scebin

import (
	"io"

	"golang.org/x/text/encoding/simplifiedchinese"

	"github.com/opengb/scenevm/pkg/errs"
	"github.com/opengb/scenevm/pkg/romutil"
)

// Load reads a SceFile from its on-disk representation: a u32 procedure
// count, followed by that many {id: u32, name: GBK string, offset: u32}
// headers, followed by that many instruction buffers (each a u32 length
// prefix and that many raw bytes), in the same order as the headers.
//
// This is a reference implementation of the loader that spec.md scopes out
// ("its output shape is described, but parsing is external"): the VM core
// never calls it, vm.New is handed an already-parsed *SceFile. It exists so
// the `svm` CLI and this package's own tests can round-trip real files.
func Load(r io.Reader) (*SceFile, errs.Error) {
	procCount, err := romutil.DeserializeU32(r)
	if err != nil {
		return nil, errs.NewToolError("reading procedure count: %v", err)
	}

	headers := make([]ProcHeader, procCount)
	for i := range headers {
		id, err := romutil.DeserializeU32(r)
		if err != nil {
			return nil, errs.NewToolError("reading procedure %v id: %v", i, err)
		}

		name, err := readGBKString(r)
		if err != nil {
			return nil, errs.NewToolError("reading procedure %v name: %v", i, err)
		}

		offset, err := romutil.DeserializeU32(r)
		if err != nil {
			return nil, errs.NewToolError("reading procedure %v offset: %v", i, err)
		}

		headers[i] = ProcHeader{ID: id, Name: name, Offset: offset}
	}

	procs := make(map[uint32]*Proc, procCount)
	for i, h := range headers {
		instLen, err := romutil.DeserializeU32(r)
		if err != nil {
			return nil, errs.NewToolError("reading procedure %v instruction length: %v", i, err)
		}

		inst := make([]byte, instLen)
		if _, err := io.ReadFull(r, inst); err != nil {
			return nil, errs.NewToolError("reading procedure %v instructions: %v", i, err)
		}

		procs[h.ID] = &Proc{Inst: inst}
	}

	return &SceFile{ProcHeaders: headers, Procs: procs}, nil
}

// Save writes f to w in the format Load reads. Mostly useful for building
// test fixtures and for the `svm` CLI's development tooling.
func Save(w io.Writer, f *SceFile) errs.Error {
	if err := romutil.SerializeU32(w, uint32(len(f.ProcHeaders))); err != nil {
		return errs.NewToolError("writing procedure count: %v", err)
	}

	for _, h := range f.ProcHeaders {
		if err := romutil.SerializeU32(w, h.ID); err != nil {
			return errs.NewToolError("writing procedure id: %v", err)
		}
		if err := writeGBKString(w, h.Name); err != nil {
			return errs.NewToolError("writing procedure name: %v", err)
		}
		if err := romutil.SerializeU32(w, h.Offset); err != nil {
			return errs.NewToolError("writing procedure offset: %v", err)
		}
	}

	for _, h := range f.ProcHeaders {
		p := f.Procs[h.ID]
		if err := romutil.SerializeU32(w, uint32(len(p.Inst))); err != nil {
			return errs.NewToolError("writing procedure instruction length: %v", err)
		}
		if _, err := w.Write(p.Inst); err != nil {
			return errs.NewToolError("writing procedure instructions: %v", err)
		}
	}

	return nil
}

// readGBKString reads a u16-length-prefixed GBK string from r (no NUL
// terminator in this on-disk representation -- the NUL terminator described
// in §4.A/§6 is a property of in-buffer strings decoded by Cursor.String,
// which this loader's header names don't carry).
func readGBKString(r io.Reader) (string, error) {
	var lenBuf [2]byte
	if _, err := io.ReadFull(r, lenBuf[:]); err != nil {
		return "", err
	}
	length := int(lenBuf[0]) | int(lenBuf[1])<<8

	raw := make([]byte, length)
	if _, err := io.ReadFull(r, raw); err != nil {
		return "", err
	}
	return decodeGBK(raw), nil
}

// writeGBKString writes s to w as a u16-length-prefixed GBK string.
func writeGBKString(w io.Writer, s string) error {
	encoded, err := simplifiedchinese.GBK.NewEncoder().String(s)
	if err != nil {
		// Fall back to writing s's UTF-8 bytes unchanged rather than fail the
		// whole save -- this loader is a development convenience, not the VM's
		// hot path.
		encoded = s
	}

	length := len(encoded)
	lenBuf := [2]byte{byte(length), byte(length >> 8)}
	if _, err := w.Write(lenBuf[:]); err != nil {
		return err
	}
	_, err = w.Write([]byte(encoded))
	return err
}
