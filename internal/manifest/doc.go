// SPDX-License-Identifier: MPL-2.0

// Package manifest declares module trees in TOML files.
//
// A manifest lists modules, their commands and each command's arguments:
//
//	[[module]]
//	key = "git"
//	help = "Git shortcuts"
//
//	  [[module.command]]
//	  keyword = "last"
//	  help = "Show the last commits"
//	  script = 'git log --oneline -n "$EASYPARSE_COUNT"'
//
//	    [[module.command.arg]]
//	    names = ["-n", "--count"]
//	    type = "int"
//	    default = 5
//
// A command either runs a script in the embedded shell (positional arguments
// as $1.., keyword arguments as EASYPARSE_<NAME>) or calls a Go handler
// registered under the name given in `handler`. Export turns a built tree
// back into a manifest skeleton.
package manifest
