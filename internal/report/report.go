// Package report renders the analyzer's markdown-flavored output for a
// terminal: a banner, then the report body with headings and bold spans
// mapped to ANSI styling.
package report

import (
	"io"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

const (
	ansiBold  = "\033[1m"
	ansiReset = "\033[0m"

	ruleWidth = 50
)

type Renderer struct {
	Out   io.Writer
	Color bool
}

func New(out io.Writer, color bool) *Renderer {
	return &Renderer{Out: out, Color: color}
}

// Print writes the banner followed by the rendered report body.
func (r *Renderer) Print(report string) error {
	var sb strings.Builder

	rule := strings.Repeat("=", ruleWidth)
	sb.WriteString("\n" + rule + "\n")
	sb.WriteString(r.styled("         AI Inconsistency Report") + "\n")
	sb.WriteString(rule + "\n\n")

	r.renderMarkdown(&sb, report)

	_, err := io.WriteString(r.Out, sb.String())
	return err
}

func (r *Renderer) styled(s string) string {
	if !r.Color {
		return s
	}
	return ansiBold + s + ansiReset
}

func (r *Renderer) renderMarkdown(sb *strings.Builder, body string) {
	src := []byte(body)
	doc := goldmark.New().Parser().Parse(text.NewReader(src))

	ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		switch node := n.(type) {
		case *ast.Heading:
			if entering {
				if r.Color {
					sb.WriteString(ansiBold)
				}
			} else {
				if r.Color {
					sb.WriteString(ansiReset)
				}
				sb.WriteString("\n\n")
			}

		case *ast.Emphasis:
			if r.Color && node.Level >= 2 {
				if entering {
					sb.WriteString(ansiBold)
				} else {
					sb.WriteString(ansiReset)
				}
			}

		case *ast.Text:
			if entering {
				sb.Write(node.Segment.Value(src))
				if node.SoftLineBreak() || node.HardLineBreak() {
					sb.WriteString("\n")
				}
			}

		case *ast.Paragraph:
			if !entering {
				if _, inItem := node.Parent().(*ast.ListItem); inItem {
					sb.WriteString("\n")
				} else {
					sb.WriteString("\n\n")
				}
			}

		case *ast.TextBlock:
			if !entering {
				sb.WriteString("\n")
			}

		case *ast.ListItem:
			if entering {
				sb.WriteString("- ")
			}

		case *ast.List:
			if !entering {
				sb.WriteString("\n")
			}

		case *ast.ThematicBreak:
			if entering {
				sb.WriteString(strings.Repeat("-", ruleWidth) + "\n\n")
			}

		case *ast.FencedCodeBlock, *ast.CodeBlock:
			if entering {
				lines := n.Lines()
				for i := 0; i < lines.Len(); i++ {
					seg := lines.At(i)
					sb.Write(seg.Value(src))
				}
				sb.WriteString("\n")
				return ast.WalkSkipChildren, nil
			}
		}
		return ast.WalkContinue, nil
	})
}
