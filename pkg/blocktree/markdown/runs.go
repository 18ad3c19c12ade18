package markdown

import (
	"strings"

	"github.com/yuin/goldmark/ast"
	east "github.com/yuin/goldmark/extension/ast"

	"github.com/yaklabco/blocksel/pkg/blocktree"
)

// runs accumulates inline text, merging neighbours with equal marks.
type runs []blocktree.Run

func (r *runs) add(s string, marks blocktree.Mark) {
	if s == "" {
		return
	}
	if n := len(*r); n > 0 && (*r)[n-1].Marks == marks {
		(*r)[n-1].Text += s
		return
	}
	*r = append(*r, blocktree.Run{Text: s, Marks: marks})
}

func (r runs) text() string {
	var sb strings.Builder
	for _, run := range r {
		sb.WriteString(run.Text)
	}
	return sb.String()
}

// inline walks the inline children of n.
func (r *runs) inline(n ast.Node, src []byte, marks blocktree.Mark) {
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		switch gmn := child.(type) {
		case *ast.Text:
			r.add(string(gmn.Segment.Value(src)), marks)
			switch {
			case gmn.HardLineBreak():
				r.add("\n", marks)
			case gmn.SoftLineBreak():
				r.add(" ", marks)
			}

		case *ast.String:
			r.add(string(gmn.Value), marks)

		case *ast.Emphasis:
			m := blocktree.MarkItalic
			if gmn.Level >= 2 {
				m = blocktree.MarkBold
			}
			r.inline(gmn, src, marks|m)

		case *ast.CodeSpan:
			r.inline(gmn, src, marks|blocktree.MarkCode)

		case *ast.AutoLink:
			r.add(string(gmn.URL(src)), marks)

		case *east.Strikethrough:
			r.inline(gmn, src, marks|blocktree.MarkStrike)

		case *east.TaskCheckBox:
			if gmn.IsChecked {
				r.add("[x] ", marks)
			} else {
				r.add("[ ] ", marks)
			}

		case *ast.RawHTML:
			// Inline markup carries no text.

		default:
			// Links, images and anything else contribute their text.
			r.inline(child, src, marks)
		}
	}
}
