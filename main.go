// SPDX-License-Identifier: MPL-2.0

package main

import cmd "github.com/easyparse/easyparse/cmd/easyparse"

func main() {
	cmd.Execute()
}
