/******************************************************************************\
* Scene Virtual Machine                                                        *
*                                                                              *
* Copyright 2020-2025 Leandro Motta Barros                                     *
* Licensed under the MIT license (see LICENSE.txt for details)                 *
\******************************************************************************/

package romutil

import "strings"

// FormatTextForDisplay formats dialog text for display in a trace or log
// line: newlines are folded to a middle dot and long lines are elided, so a
// Dlg/DlgSel opcode doesn't blow up a single trace line.
func FormatTextForDisplay(text string) string {
	result := strings.ReplaceAll(text, "\n", "⋅")
	if len(result) > 40 {
		return result[:40] + "…"
	}
	return result
}
