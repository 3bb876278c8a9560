/******************************************************************************\
* Scene Virtual Machine                                                        *
*                                                                              *
* Copyright 2020-2025 Leandro Motta Barros                                     *
* Licensed under the MIT license (see LICENSE.txt for details)                 *
\******************************************************************************/

package errs

import (
	"errors"
	"fmt"
	"os"
)

// ReportAndExit reports the error err to the end user and exits with the
// appropriate status code. It's fine if err is nil, we handle this case here.
func ReportAndExit(err error) {
	badUsageError := &BadUsage{}
	toolError := &ToolError{}
	decodeError := &DecodeError{}
	procMissingError := &ProcMissing{}
	unknownOpcodeError := &UnknownOpcode{}
	hostError := &HostError{}
	iceErr := &ICE{}

	switch {
	case err == nil:
		os.Exit(StatusCodeSuccess)

	case errors.As(err, &badUsageError):
		fmt.Printf("Usage: %v\n", badUsageError)
		os.Exit(StatusCodeBadUsage)

	case errors.As(err, &toolError):
		fmt.Printf("%v\n", toolError)
		os.Exit(StatusCodeToolError)

	case errors.As(err, &decodeError):
		fmt.Printf("%v\n", decodeError)
		os.Exit(StatusCodeDecodeError)

	case errors.As(err, &procMissingError):
		fmt.Printf("%v\n", procMissingError)
		os.Exit(StatusCodeRuntimeError)

	case errors.As(err, &unknownOpcodeError):
		fmt.Printf("%v\n", unknownOpcodeError)
		os.Exit(StatusCodeRuntimeError)

	case errors.As(err, &hostError):
		fmt.Printf("%v\n", hostError)
		os.Exit(StatusCodeRuntimeError)

	case errors.As(err, &iceErr):
		fmt.Printf("Internal VM error: %v\n", iceErr)
		os.Exit(StatusCodeICE)

	default:
		fmt.Printf("Internal VM error: unexpected error of type %T: %v\n", err, err)
		os.Exit(StatusCodeICE)
	}
}

// Recover turns a panic value raised by a DecodeError/ProcMissing/
// UnknownOpcode/ICE into a returned errs.Error. Meant to be used in a
// deferred call at the boundary of the VM's public entry points, exactly
// like the teacher's vm.Interpret recovers *errs.Runtime panics.
//
//	defer func() { err = errs.Recover(recover()) }()
func Recover(r any) Error {
	if r == nil {
		return nil
	}
	if e, ok := r.(Error); ok {
		return e
	}
	return NewICE("unexpected panic value: %T (%v)", r, r)
}
