// SPDX-License-Identifier: MPL-2.0

package easyparse

import "strings"

// Render describes the subtree rooted at m: one line per module, indented by
// level+1 tabs, followed by one line per command one tab deeper, then the
// submodule blocks in insertion order.
func (m *Module) Render() string {
	var sb strings.Builder
	m.render(&sb)
	return sb.String()
}

func (m *Module) render(sb *strings.Builder) {
	indent := strings.Repeat("\t", m.level+1)
	sb.WriteString(indent)
	sb.WriteString(m.path)
	sb.WriteString("\t")
	sb.WriteString(m.help)
	sb.WriteString("\n")

	for _, key := range m.commandOrder {
		sb.WriteString(indent)
		sb.WriteString("\t")
		sb.WriteString(key)
		sb.WriteString("\t")
		sb.WriteString(m.commands[key].help)
		sb.WriteString("\n")
	}
	for _, key := range m.moduleOrder {
		m.submodules[key].render(sb)
	}
}
