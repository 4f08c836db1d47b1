// Package outline prints compiled element trees as terminal outlines.
package outline

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/tree"

	"github.com/matzehuels/gridglob/pkg/element"
)

// ContainerMark follows the ID of every grid container.
const ContainerMark = "▦"

var (
	containerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("5")).Bold(true)
	leafStyle      = lipgloss.NewStyle()
	cellStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	enumStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).PaddingRight(1)
)

// Options configures outline rendering.
type Options struct {
	Styled  bool // Apply colors (terminal output)
	Rounded bool // Rounded branch corners
}

// Render returns the outline of the tree rooted at root.
func Render(root *element.Node, opts Options) string {
	t := build(root, opts)
	if opts.Rounded {
		t.Enumerator(tree.RoundedEnumerator)
	}
	if opts.Styled {
		t.EnumeratorStyle(enumStyle)
	}
	return t.String()
}

func build(n *element.Node, opts Options) *tree.Tree {
	t := tree.Root(label(n, opts))
	for _, c := range n.Children() {
		if c.ChildCount() > 0 {
			t.Child(build(c, opts))
		} else {
			t.Child(label(c, opts))
		}
	}
	return t
}

func label(n *element.Node, opts Options) string {
	id, cell := n.ID, ""
	if n.IsContainer() {
		id += " " + ContainerMark
	}
	if c, ok := n.Coord(); ok {
		cell = fmt.Sprintf(" (%d,%d)", c.Row, c.Col)
	}
	if !opts.Styled {
		return id + cell
	}
	style := leafStyle
	if n.IsContainer() {
		style = containerStyle
	}
	return style.Render(id) + cellStyle.Render(cell)
}
