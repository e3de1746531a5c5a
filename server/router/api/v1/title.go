package v1

import (
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

const (
	titleMaxWords = 8
	titleMaxChars = 60
)

var (
	titleMarkdown = goldmark.New()
	urlPattern    = regexp.MustCompile(`https?://\S+`)
)

// GenerateTitle derives a short conversation title from the first user
// message: markdown syntax and URLs are stripped, whitespace collapsed,
// and the result capped at eight words and sixty characters. The
// function is pure; the same input always yields the same title.
func GenerateTitle(message string) string {
	plain := stripMarkdown(message)
	plain = urlPattern.ReplaceAllString(plain, "")
	words := strings.Fields(plain)
	if len(words) == 0 {
		return "New Conversation"
	}
	if len(words) > titleMaxWords {
		words = words[:titleMaxWords]
	}

	title := strings.Join(words, " ")
	if runes := []rune(title); len(runes) > titleMaxChars {
		title = strings.TrimSpace(string(runes[:titleMaxChars]))
	}
	return title
}

// stripMarkdown renders markdown down to its plain text content by
// walking the parsed AST and keeping only text segments.
func stripMarkdown(source string) string {
	src := []byte(source)
	doc := titleMarkdown.Parser().Parse(text.NewReader(src))

	var b strings.Builder
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *ast.Text:
			b.Write(node.Segment.Value(src))
			if node.SoftLineBreak() || node.HardLineBreak() {
				b.WriteByte(' ')
			}
		case *ast.CodeBlock, *ast.FencedCodeBlock:
			// Code content makes a poor title; skip the whole block.
			return ast.WalkSkipChildren, nil
		case *ast.Paragraph, *ast.Heading, *ast.ListItem:
			b.WriteByte(' ')
		}
		return ast.WalkContinue, nil
	})
	return b.String()
}
