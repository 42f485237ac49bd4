package site

import (
	"bytes"
	"fmt"
	"regexp"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// HeadingClass is added to every second level heading of the README
const HeadingClass = "title"

var (
	h1Pattern = regexp.MustCompile(`<h1>(.*?)</h1>\n?`)
	h2Pattern = regexp.MustCompile(`<h2>`)

	markdown = goldmark.New(
		goldmark.WithExtensions(extension.Table),
		goldmark.WithRendererOptions(html.WithUnsafe()),
	)
)

// RenderReadme converts Markdown to the HTML shown on the index page. The
// first top level heading is dropped because the page has its own title.
func RenderReadme(source []byte) (string, error) {
	var buf bytes.Buffer
	if err := markdown.Convert(source, &buf); err != nil {
		return "", fmt.Errorf("failed to convert README: %w", err)
	}

	content := buf.String()
	if loc := h1Pattern.FindStringIndex(content); loc != nil {
		content = content[:loc[0]] + content[loc[1]:]
	}
	content = h2Pattern.ReplaceAllString(content, fmt.Sprintf(`<h2 class="%s">`, HeadingClass))
	return content, nil
}
