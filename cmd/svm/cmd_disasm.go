/******************************************************************************\
* Scene Virtual Machine                                                        *
*                                                                              *
* Copyright 2020-2025 Leandro Motta Barros                                     *
* Licensed under the MIT license (see LICENSE.txt for details)                 *
\******************************************************************************/

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/opengb/scenevm/pkg/vm"
)

var disasmCmd = &cobra.Command{
	Use:   "disasm <sce-file>",
	Short: "Disassembles a compiled scene file",
	Long:  `Prints a human-readable opcode listing of every procedure in a compiled scene file.`,
	Args:  cobra.ExactArgs(1),

	Run: func(cmd *cobra.Command, args []string) {
		sce := loadSceExitingOnError(args[0])

		fmt.Printf("Disassembling %v (%v procedures)\n\n", args[0], len(sce.ProcHeaders))
		vm.Disassemble(sce, os.Stdout)

		reportAndExit(nil)
	},
}
