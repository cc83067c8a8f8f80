// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/slices"
)

const (
	ConfigLoadFailedId Id = iota + 1
	ManifestNotFoundId
	ManifestParseErrorId
	IllegalKeywordId
	DuplicateKeywordId
	InvalidArgSpecId
	MissingDeclarationId
	DanglingDeclarationId
	NoModulesId
	CommandFailedId
	ScriptExecutionFailedId
)

type (
	Id int

	MarkdownMsg string

	HttpLink string

	Issue struct {
		id       Id          // ID used to lookup the issue
		mdMsg    MarkdownMsg // Markdown text that will be rendered
		extLinks []HttpLink
	}
)

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) ExtLinks() []HttpLink {
	return slices.Clone(i.extLinks)
}

// Render renders the Markdown message, plus a "See also" section when the
// issue carries links, with the given glamour style ("dark", "light", "auto").
func (i *Issue) Render(stylePath string) (string, error) {
	extraMd := ""
	if len(i.extLinks) > 0 {
		extraMd += "\n\n## See also\n"
		for _, link := range i.extLinks {
			extraMd += "- <" + string(link) + ">\n"
		}
	}
	return render(string(i.mdMsg)+extraMd, stylePath)
}

var (
	render = glamour.Render

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

Your easyparse configuration file could not be loaded.

## Things you can try:
- Check the CUE syntax of your config file
- Show where easyparse looks for it:
~~~
$ easyparse config path
~~~

- Reset to defaults by removing the file and running:
~~~
$ easyparse config init
~~~`,
		extLinks: []HttpLink{"https://cuelang.org/docs/"},
	}

	manifestNotFoundIssue = &Issue{
		id: ManifestNotFoundId,
		mdMsg: `
# Manifest not found!

A manifest listed in your configuration does not exist.

## Things you can try:
- Check the ` + "`manifests`" + ` list in your config file
- Use absolute paths, or paths relative to the directory you run easyparse from`,
	}

	manifestParseErrorIssue = &Issue{
		id: ManifestParseErrorId,
		mdMsg: `
# Failed to parse manifest!

A manifest file contains invalid TOML or unknown fields.

## Example of a valid manifest:
~~~toml
[[module]]
key = "git"
help = "Git shortcuts"

  [[module.command]]
  keyword = "last"
  help = "Show the last commits"
  script = "git log --oneline -n \"${EASYPARSE_COUNT:-5}\""

    [[module.command.arg]]
    names = ["-n", "--count"]
    type = "int"
    default = 5
~~~`,
		extLinks: []HttpLink{"https://toml.io/en/v1.0.0"},
	}

	illegalKeywordIssue = &Issue{
		id: IllegalKeywordId,
		mdMsg: `
# Illegal keyword!

Module and command keywords must be made of letters only: no digits,
underscores, hyphens or separators.

## Things you can try:
- Rename ` + "`list2`" + ` to ` + "`listtwo`" + ` or ` + "`listAll`" + `
- Nest modules instead of using separators in one keyword`,
	}

	duplicateKeywordIssue = &Issue{
		id: DuplicateKeywordId,
		mdMsg: `
# Keyword declared twice!

A keyword can name either one command or one submodule at the same level,
never both.

## Things you can try:
- Rename one of the two declarations
- Move the command into the submodule of the same name`,
	}

	invalidArgSpecIssue = &Issue{
		id: InvalidArgSpecId,
		mdMsg: `
# Invalid argument specification!

A command declares parameters that cannot be parsed.

## Common causes:
- Mixing positional names and flags in one spec: ` + "`[\"-c\", \"count\"]`" + `
- Short flags longer than one letter: ` + "`-cc`" + `
- A default that does not match the declared type
- A positional declared after a variadic one`,
	}

	missingDeclarationIssue = &Issue{
		id: MissingDeclarationId,
		mdMsg: `
# No command declared for mounted module!

A module was mounted from a type that has no staged command declaration.

## Things you can try:
- Call ` + "`easyparse.Declare`" + ` for the type before mounting it
- Make sure both calls use the same registry`,
	}

	danglingDeclarationIssue = &Issue{
		id: DanglingDeclarationId,
		mdMsg: `
# Command declared but never mounted!

A command was declared for a type, but no module was mounted from that type,
so the command is unreachable.

## Things you can try:
- Mount the type with ` + "`easyparse.AddModule`" + ` or ` + "`easyparse.Mount`" + `
- Remove the unused declaration`,
	}

	noModulesIssue = &Issue{
		id: NoModulesId,
		mdMsg: `
# No modules declared!

The command tree is empty, so there is nothing to dispatch to.

## Things you can try:
- Declare at least one module before parsing
- Check that your manifests are listed in the config file`,
	}

	commandFailedIssue = &Issue{
		id: CommandFailedId,
		mdMsg: `
# Command failed!

The command ran but returned an error.

## Things you can try:
- Run again with ` + "`--verbose`" + ` to see the full error chain
- Print the command tree to check the expected parameters:
~~~
$ easyparse tree
~~~`,
	}

	scriptExecutionFailedIssue = &Issue{
		id: ScriptExecutionFailedId,
		mdMsg: `
# Script execution failed!

A manifest script exited with a non-zero status.

## Things you can try:
- Check the script in the manifest for syntax errors
- Positional arguments are available as ` + "`$1`, `$2`" + `, keyword arguments as
  ` + "`EASYPARSE_<NAME>`" + ` environment variables`,
		extLinks: []HttpLink{"https://github.com/mvdan/sh"},
	}

	issues = map[Id]*Issue{
		configLoadFailedIssue.Id():      configLoadFailedIssue,
		manifestNotFoundIssue.Id():      manifestNotFoundIssue,
		manifestParseErrorIssue.Id():    manifestParseErrorIssue,
		illegalKeywordIssue.Id():        illegalKeywordIssue,
		duplicateKeywordIssue.Id():      duplicateKeywordIssue,
		invalidArgSpecIssue.Id():        invalidArgSpecIssue,
		missingDeclarationIssue.Id():    missingDeclarationIssue,
		danglingDeclarationIssue.Id():   danglingDeclarationIssue,
		noModulesIssue.Id():             noModulesIssue,
		commandFailedIssue.Id():         commandFailedIssue,
		scriptExecutionFailedIssue.Id(): scriptExecutionFailedIssue,
	}
)

// Values returns every issue ordered by id.
func Values() []*Issue {
	out := make([]*Issue, 0, len(issues))
	for _, i := range issues {
		out = append(out, i)
	}
	slices.SortFunc(out, func(a, b *Issue) int {
		return int(a.id) - int(b.id)
	})
	return out
}

func Get(id Id) *Issue {
	return issues[id]
}
