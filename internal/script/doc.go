// SPDX-License-Identifier: MPL-2.0

// Package script runs manifest scripts in the embedded mvdan/sh interpreter,
// so commands behave the same on every platform without a host shell.
//
// Positional arguments reach the script as $1, $2, ...; callers pass keyword
// arguments through the extra environment. A non-zero exit status surfaces as
// *ExitError. Split tokenizes a command line with the same quoting rules.
package script
