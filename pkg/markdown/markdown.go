package markdown

import (
	"bytes"
	"html"
	"html/template"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	ghtml "github.com/yuin/goldmark/renderer/html"
)

// Renderer converts stored markdown into sanitized HTML for the public pages.
type Renderer struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

func NewRenderer() *Renderer {
	md := goldmark.New(
		goldmark.WithExtensions(extension.GFM, extension.Typographer),
		goldmark.WithRendererOptions(ghtml.WithHardWraps()),
	)

	policy := bluemonday.UGCPolicy()
	policy.RequireNoFollowOnLinks(false)
	policy.AddTargetBlankToFullyQualifiedLinks(true)

	return &Renderer{md: md, policy: policy}
}

// ToHTML renders src. The result is safe to embed without escaping.
func (r *Renderer) ToHTML(src string) (template.HTML, error) {
	if strings.TrimSpace(src) == "" {
		return "", nil
	}

	var buf bytes.Buffer
	if err := r.md.Convert([]byte(src), &buf); err != nil {
		return "", err
	}

	return template.HTML(r.policy.SanitizeBytes(buf.Bytes())), nil
}

// PlainText strips all markup, used for excerpts and meta descriptions.
func (r *Renderer) PlainText(src string, limit int) string {
	rendered, err := r.ToHTML(src)
	if err != nil {
		return ""
	}
	text := strings.Join(strings.Fields(html.UnescapeString(bluemonday.StrictPolicy().Sanitize(string(rendered)))), " ")
	if limit > 0 && len([]rune(text)) > limit {
		runes := []rune(text)
		text = strings.TrimSpace(string(runes[:limit])) + "…"
	}
	return text
}
