/******************************************************************************\
* Scene Virtual Machine                                                        *
*                                                                              *
* Copyright 2020-2025 Leandro Motta Barros                                     *
* Licensed under the MIT license (see LICENSE.txt for details)                 *
\******************************************************************************/

package vm

import (
	"log/slog"

	"github.com/opengb/scenevm/pkg/errs"
)

// absorbHostError logs a host-surfaced failure and reports true, so the
// calling command can treat itself as finished and let the script advance
// (§7: "any error surfaced by the scene host during command tick is
// logged; the command is then considered finished").
func absorbHostError(op string, cause error) bool {
	if cause == nil {
		return true
	}
	he := errs.NewHostError(op, cause)
	slog.Error("host operation failed, abandoning command", "op", op, "error", he.Error())
	return true
}
