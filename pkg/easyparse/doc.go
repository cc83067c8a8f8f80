// SPDX-License-Identifier: MPL-2.0

// Package easyparse dispatches command-line tokens through a tree of named
// modules and commands.
//
// A Parser owns a root module. Modules hold submodules and commands under
// letters-only keywords that are unique across both kinds at one node.
// Parse walks the tokens left to right: a token naming a submodule descends
// into it, a token naming a command binds the remaining tokens to the
// command's parameters (with spf13/pflag) and runs its handler. Empty or
// unmatched input, and malformed command arguments, print the description of
// the node where resolution stopped.
//
// Commands can be attached directly:
//
//	p := easyparse.New("my tool")
//	greet, _ := p.NewModule("hello", "greetings")
//	_ = greet.AttachCommand("greet", "say hello", func(ctx context.Context, args easyparse.Args) error {
//		fmt.Println(strings.Repeat("hello "+args.String(0)+"\n", args.IntOr("count", 1)))
//		return nil
//	}, easyparse.Arg("name"), easyparse.Arg("-c", "--count").Int().Default(1))
//
// Or declared for a type and mounted later, possibly by other code:
//
//	_ = easyparse.Declare[*Counter](p.Registry(), "bump", "increment", bump)
//	_, _ = easyparse.AddModule(p, "counter", "a counter", &Counter{})
//
// Declarations that are never mounted make Parse fail with
// ErrDanglingDeclaration.
package easyparse
