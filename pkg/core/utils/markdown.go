package utils

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// StripCodeFence returns the body of the first fenced code block in input.
// Models often wrap JSON in ```json ... ``` even when told not to. Input without a
// fenced block is returned trimmed and otherwise untouched.
func StripCodeFence(input string) string {
	cleaned := strings.TrimSpace(input)
	if !strings.Contains(cleaned, "```") && !strings.Contains(cleaned, "~~~") {
		return cleaned
	}

	source := []byte(cleaned)
	doc := goldmark.DefaultParser().Parse(text.NewReader(source))

	var body []byte
	found := false
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		block, ok := n.(*ast.FencedCodeBlock)
		if !ok {
			return ast.WalkContinue, nil
		}
		var buf bytes.Buffer
		lines := block.Lines()
		for i := 0; i < lines.Len(); i++ {
			seg := lines.At(i)
			buf.Write(seg.Value(source))
		}
		body = buf.Bytes()
		found = true
		return ast.WalkStop, nil
	})

	if !found {
		return cleaned
	}
	return strings.TrimSpace(string(body))
}
