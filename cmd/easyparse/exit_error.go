// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"

	"github.com/easyparse/easyparse/internal/script"
)

// ExitError carries the process exit code out of RunE handlers. Execute
// turns it into os.Exit.
type ExitError struct {
	Code int
	Err  error
}

// newExitError wraps err with the status of the script that failed, or 1
// when no script was involved.
func newExitError(err error) *ExitError {
	code := 1
	var scriptErr *script.ExitError
	if errors.As(err, &scriptErr) && !scriptErr.Code.IsSuccess() {
		code = int(scriptErr.Code)
	}
	return &ExitError{Code: code, Err: err}
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit status %d", e.Code)
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error { return e.Err }
