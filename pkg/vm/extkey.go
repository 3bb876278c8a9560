/******************************************************************************\
* Scene Virtual Machine                                                        *
*                                                                              *
* Copyright 2020-2025 Leandro Motta Barros                                     *
* Licensed under the MIT license (see LICENSE.txt for details)                 *
\******************************************************************************/

package vm

import "github.com/google/uuid"

// extKey namespaces an entry in VMState.ext (§5, §9 "Extension map"). A
// plain string constant names a key with a single live owner; newExtKey
// mints a unique per-instance key. No command in this package reads or
// writes ext: Dlg and DlgSel keep their poll state on the command value
// itself.
type extKey string

// newExtKey builds a unique key under the given namespace, suffixed with a
// fresh UUID so concurrently active instances of the same command kind
// never collide in VMState.ext.
func newExtKey(namespace string) extKey {
	return extKey(namespace + ":" + uuid.NewString())
}

const (
	extKeyDlgPending = extKey("dlg.pending")
	extKeyDlgSelPending = extKey("dlgsel.pending")
)
