package site

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderReadme(t *testing.T) {
	source := []byte(`# Course Title

Intro paragraph.

## Schedule

| Week | Topic |
| ---- | ----- |
| 1    | Setup |

## Rules
`)

	html, err := RenderReadme(source)
	require.NoError(t, err)

	assert.NotContains(t, html, "<h1>")
	assert.NotContains(t, html, "Course Title")
	assert.Contains(t, html, `<h2 class="title">Schedule</h2>`)
	assert.Contains(t, html, `<h2 class="title">Rules</h2>`)
	assert.Contains(t, html, "<table>")
	assert.Contains(t, html, "<td>Setup</td>")
	assert.Contains(t, html, "<p>Intro paragraph.</p>")
}

func TestRenderReadme_OnlyFirstH1Removed(t *testing.T) {
	html, err := RenderReadme([]byte("# One\n\ntext\n\n# Two\n"))
	require.NoError(t, err)
	assert.NotContains(t, html, "One")
	assert.Contains(t, html, "<h1>Two</h1>")
}

func TestRenderReadme_RawHTMLKept(t *testing.T) {
	html, err := RenderReadme([]byte("<div class=\"note\">hi</div>\n"))
	require.NoError(t, err)
	assert.Contains(t, html, `<div class="note">hi</div>`)
}
