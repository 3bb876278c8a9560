/******************************************************************************\
* Scene Virtual Machine                                                        *
*                                                                              *
* Copyright 2020-2025 Leandro Motta Barros                                     *
* Licensed under the MIT license (see LICENSE.txt for details)                 *
\******************************************************************************/

package main

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:          "svm",
	SilenceUsage: true,
	Short:        "svm runs and inspects compiled scene files",
	Long: `svm is the reference tool for the scripted-scene virtual machine: it
runs a compiled scene against an in-memory reference host, disassembles a
scene's bytecode, or serves a scene over a websocket for a HUD viewer to
watch.`,
}

func init() {
	rootCmd.AddCommand(runCmd, disasmCmd, serveCmd)
}
