// SPDX-License-Identifier: MPL-2.0

package script

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrScriptFailed is the sentinel error wrapped by ExitError.
var ErrScriptFailed = errors.New("script failed")

type (
	// ExitCode represents a script exit status code in the range 0-255.
	// The zero value (0) means success.
	ExitCode int

	// ExitError reports a script that finished with a non-zero status.
	ExitError struct {
		Script string
		Code   ExitCode
	}
)

// IsSuccess returns true if the exit code indicates successful execution.
func (c ExitCode) IsSuccess() bool { return c == 0 }

// String returns the decimal string representation of the ExitCode.
func (c ExitCode) String() string { return strconv.Itoa(int(c)) }

// Error implements the error interface.
func (e *ExitError) Error() string {
	return fmt.Sprintf("script %s exited with status %d", e.Script, e.Code)
}

// Unwrap returns ErrScriptFailed so callers can use errors.Is for programmatic detection.
func (e *ExitError) Unwrap() error { return ErrScriptFailed }
