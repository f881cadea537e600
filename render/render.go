package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/docker/go-units"
	"github.com/jesspatton/arctree/archive"
	"github.com/jesspatton/arctree/tree"
)

// Style selects the listing layout.
type Style string

const (
	// StyleTree draws box-drawing branches.
	StyleTree Style = "tree"
	// StyleIndent indents two spaces per level.
	StyleIndent Style = "indent"
	// StylePaths prints one full path per file and empty directory.
	StylePaths Style = "paths"
)

const divider = "→"

// Options controls rendering.
type Options struct {
	Style Style
	// Plain disables colors and text attributes.
	Plain bool
	// Marks holds full slash separated paths to flag, e.g. uncommitted files.
	Marks map[string]bool
}

func (o Options) style(s lipgloss.Style, text string) string {
	if o.Plain {
		return text
	}
	return s.Render(text)
}

// Tree writes the listing of b to w, one line per node below the root.
func Tree(w io.Writer, b *tree.Builder, opts Options) error {
	var v tree.Visitor
	switch opts.Style {
	case StyleTree, "":
		v = &treeVisitor{w: w, opts: opts}
	case StyleIndent:
		v = &indentVisitor{w: w, opts: opts}
	case StylePaths:
		v = &pathsVisitor{w: w, opts: opts}
	default:
		return fmt.Errorf("render: unknown style %q", opts.Style)
	}
	return b.Walk(v)
}

// Summary writes the archive header line, e.g.
//
//	→ Archive
//	  rugs-1.0.0.zip (4.2KiB in 12 files)
//
// A non-positive Size omits the size.
func Summary(w io.Writer, s archive.Summary, opts Options) error {
	files := "files"
	if s.Files == 1 {
		files = "file"
	}
	detail := fmt.Sprintf("%d %s", s.Files, files)
	if s.Size > 0 {
		detail = fmt.Sprintf("%s in %s", units.BytesSize(float64(s.Size)), detail)
	}
	_, err := fmt.Fprintf(w, "%s %s\n  %s (%s)\n",
		opts.style(dirStyle, divider),
		opts.style(titleStyle, "Archive"),
		opts.style(nameStyle, s.Name),
		detail,
	)
	return err
}

func (o Options) label(n *tree.Node) string {
	name := n.ID()
	if n.Type() == tree.Directory {
		return o.style(dirStyle, name+"/")
	}
	if o.Marks[n.Path()] {
		return o.style(markStyle, name+" *")
	}
	return name
}

// treeVisitor tracks, per depth, whether the ancestor at that depth still
// has siblings below it.
type treeVisitor struct {
	w             io.Writer
	opts          Options
	continuations []bool
}

func (v *treeVisitor) Visit(n *tree.Node, depth int) error {
	var prefix strings.Builder
	for d := 0; d < depth && d < len(v.continuations); d++ {
		if v.continuations[d] {
			prefix.WriteString("│   ")
		} else {
			prefix.WriteString("    ")
		}
	}
	last := n.IsLast()
	if last {
		prefix.WriteString("└── ")
	} else {
		prefix.WriteString("├── ")
	}

	if depth < len(v.continuations) {
		v.continuations = v.continuations[:depth]
	}
	v.continuations = append(v.continuations, !last)

	_, err := fmt.Fprintf(v.w, "%s%s\n", v.opts.style(branchStyle, prefix.String()), v.opts.label(n))
	return err
}

type indentVisitor struct {
	w    io.Writer
	opts Options
}

func (v *indentVisitor) Visit(n *tree.Node, depth int) error {
	_, err := fmt.Fprintf(v.w, "%s%s\n", strings.Repeat("  ", depth), v.opts.label(n))
	return err
}

type pathsVisitor struct {
	w    io.Writer
	opts Options
}

func (v *pathsVisitor) Visit(n *tree.Node, _ int) error {
	if n.Type() == tree.Directory && n.Len() > 0 {
		return nil
	}
	p := n.Path()
	if n.Type() == tree.Directory {
		p += "/"
	} else if v.opts.Marks[p] {
		p = v.opts.style(markStyle, p+" *")
	}
	_, err := fmt.Fprintln(v.w, p)
	return err
}
