// Package render turns the advisor's markdown (bold, italics, links, code)
// into sanitized HTML for API clients and into plain text for the terminal.
package render

import (
	"bytes"
	"html"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
)

var (
	anchorRe    = regexp.MustCompile(`<a href="([^"]*)"[^>]*>(.*?)</a>`)
	listItemRe  = regexp.MustCompile(`<li>`)
	listEndRe   = regexp.MustCompile(`</li>|</?ul>|</?ol>`)
	blockRe     = regexp.MustCompile(`<br\s*/?>|</?p>|</?div>|</?pre>|</?h[1-6]>|</?blockquote>`)
	blankRunsRe = regexp.MustCompile(`\n\s*\n+`)
)

const (
	ansiBold   = "\x1b[1m"
	ansiItalic = "\x1b[3m"
	ansiReset  = "\x1b[0m"
)

// Renderer is safe for concurrent use.
type Renderer struct {
	md     goldmark.Markdown
	ugc    *bluemonday.Policy
	inline *bluemonday.Policy
}

func New() *Renderer {
	ugc := bluemonday.UGCPolicy()
	ugc.AddTargetBlankToFullyQualifiedLinks(true)

	inline := bluemonday.NewPolicy()
	inline.AllowElements("strong", "em")

	return &Renderer{md: goldmark.New(), ugc: ugc, inline: inline}
}

// HTML converts markdown and sanitizes the result with the UGC policy. Raw
// HTML in the input never survives.
func (r *Renderer) HTML(markdown string) string {
	if strings.TrimSpace(markdown) == "" {
		return ""
	}
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(markdown), &buf); err != nil {
		return html.EscapeString(markdown)
	}
	return strings.TrimSpace(r.ugc.Sanitize(buf.String()))
}

// Terminal renders markdown as plain text. Links become "text (url)", list
// items get a bullet; with color, bold and italics use ANSI attributes.
func (r *Renderer) Terminal(markdown string, color bool) string {
	if strings.TrimSpace(markdown) == "" {
		return ""
	}
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(markdown), &buf); err != nil {
		return markdown
	}

	s := anchorRe.ReplaceAllStringFunc(buf.String(), func(m string) string {
		sub := anchorRe.FindStringSubmatch(m)
		href, text := sub[1], sub[2]
		if href == "" || href == text {
			return text
		}
		return text + " (" + href + ")"
	})
	s = listItemRe.ReplaceAllString(s, "• ")
	s = listEndRe.ReplaceAllString(s, "")
	s = blockRe.ReplaceAllString(s, "\n")
	s = r.inline.Sanitize(s)

	bold, italic, reset := "", "", ""
	if color {
		bold, italic, reset = ansiBold, ansiItalic, ansiReset
	}
	s = strings.NewReplacer(
		"<strong>", bold, "</strong>", reset,
		"<em>", italic, "</em>", reset,
	).Replace(s)

	s = blankRunsRe.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(html.UnescapeString(s))
}
