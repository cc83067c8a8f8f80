// SPDX-License-Identifier: MPL-2.0

package easyparse

import (
	"reflect"
	"testing"
)

func TestArgs_Accessors(t *testing.T) {
	t.Parallel()

	args := Args{
		Positional: []any{"Alice", 3, 1.5, true, []string{"a", "b"}},
		Keyword: map[string]any{
			"count": 2,
			"sep":   "-",
			"ratio": 0.5,
			"loud":  true,
			"tag":   []string{"x"},
		},
	}

	if args.Len() != 5 {
		t.Errorf("Len() = %d, want 5", args.Len())
	}
	if args.String(0) != "Alice" || args.Int(1) != 3 || args.Float(2) != 1.5 || !args.Bool(3) {
		t.Errorf("positional accessors returned %q %d %v %v", args.String(0), args.Int(1), args.Float(2), args.Bool(3))
	}
	if got := args.Strings(4); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Errorf("Strings(4) = %v", got)
	}
	if args.At(9) != nil || args.At(-1) != nil {
		t.Error("At() out of range should return nil")
	}
	if args.String(9) != "" {
		t.Error("String() out of range should return the zero value")
	}

	if !args.Has("count") || args.Has("missing") {
		t.Error("Has() mismatch")
	}
	if v, ok := args.Get("sep"); !ok || v != "-" {
		t.Errorf("Get(sep) = %v, %v", v, ok)
	}
	if args.IntOr("count", 1) != 2 || args.IntOr("missing", 1) != 1 {
		t.Error("IntOr() mismatch")
	}
	if args.StringOr("sep", " ") != "-" || args.StringOr("missing", " ") != " " {
		t.Error("StringOr() mismatch")
	}
	if args.FloatOr("ratio", 1) != 0.5 || args.FloatOr("missing", 1) != 1 {
		t.Error("FloatOr() mismatch")
	}
	if !args.BoolOr("loud", false) || args.BoolOr("missing", false) {
		t.Error("BoolOr() mismatch")
	}
	if got := args.StringsOr("tag", nil); !reflect.DeepEqual(got, []string{"x"}) {
		t.Errorf("StringsOr(tag) = %v", got)
	}
	if got := args.StringsOr("missing", []string{"d"}); !reflect.DeepEqual(got, []string{"d"}) {
		t.Errorf("StringsOr(missing) = %v", got)
	}
}
