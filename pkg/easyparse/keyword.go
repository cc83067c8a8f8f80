// SPDX-License-Identifier: MPL-2.0

package easyparse

import (
	"fmt"
	"regexp"
)

// keywordPattern matches the whole keyword; partial matches like "list2" are
// rejected.
var keywordPattern = regexp.MustCompile(`^[A-Za-z]+$`)

// ValidKeyword reports whether s can name a command or a module.
func ValidKeyword(s string) bool {
	return keywordPattern.MatchString(s)
}

func checkKeyword(key string) error {
	if !ValidKeyword(key) {
		return fmt.Errorf("%w %q: keywords are made of letters only", ErrIllegalKeyword, key)
	}
	return nil
}
