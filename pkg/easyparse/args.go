// SPDX-License-Identifier: MPL-2.0

package easyparse

import (
	"github.com/spf13/cast"
)

// Args holds the values bound for one command invocation: positional values
// in declaration order and keyword values by name. A keyword is present only
// when the user set it, it has a default, or it is a bool switch.
type Args struct {
	Positional []any
	Keyword    map[string]any
}

// Len returns the number of positional values.
func (a Args) Len() int {
	return len(a.Positional)
}

// At returns the i-th positional value, or nil when out of range.
func (a Args) At(i int) any {
	if i < 0 || i >= len(a.Positional) {
		return nil
	}
	return a.Positional[i]
}

// String returns the i-th positional value as a string.
func (a Args) String(i int) string {
	return cast.ToString(a.At(i))
}

// Int returns the i-th positional value as an int.
func (a Args) Int(i int) int {
	return cast.ToInt(a.At(i))
}

// Float returns the i-th positional value as a float64.
func (a Args) Float(i int) float64 {
	return cast.ToFloat64(a.At(i))
}

// Bool returns the i-th positional value as a bool.
func (a Args) Bool(i int) bool {
	return cast.ToBool(a.At(i))
}

// Strings returns the i-th positional value as a string slice. Variadic
// parameters of any type are converted element by element.
func (a Args) Strings(i int) []string {
	return cast.ToStringSlice(a.At(i))
}

// Has reports whether the keyword name was bound.
func (a Args) Has(name string) bool {
	_, ok := a.Keyword[name]
	return ok
}

// Get returns the keyword value for name.
func (a Args) Get(name string) (any, bool) {
	v, ok := a.Keyword[name]
	return v, ok
}

// StringOr returns the keyword value for name as a string, or def.
func (a Args) StringOr(name, def string) string {
	if v, ok := a.Keyword[name]; ok {
		return cast.ToString(v)
	}
	return def
}

// IntOr returns the keyword value for name as an int, or def.
func (a Args) IntOr(name string, def int) int {
	if v, ok := a.Keyword[name]; ok {
		return cast.ToInt(v)
	}
	return def
}

// FloatOr returns the keyword value for name as a float64, or def.
func (a Args) FloatOr(name string, def float64) float64 {
	if v, ok := a.Keyword[name]; ok {
		return cast.ToFloat64(v)
	}
	return def
}

// BoolOr returns the keyword value for name as a bool, or def.
func (a Args) BoolOr(name string, def bool) bool {
	if v, ok := a.Keyword[name]; ok {
		return cast.ToBool(v)
	}
	return def
}

// StringsOr returns the keyword value for name as a string slice, or def.
func (a Args) StringsOr(name string, def []string) []string {
	if v, ok := a.Keyword[name]; ok {
		return cast.ToStringSlice(v)
	}
	return def
}
