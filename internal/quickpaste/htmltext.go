package quickpaste

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Admins occasionally paste straight from a rendered page, which arrives as
// an HTML fragment instead of plain text. Detect that and flatten to text
// before matching; goquery failures just fall back to the raw input.

func looksLikeHTML(text string) bool {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "<") {
		return false
	}
	return strings.Contains(trimmed, "</") || strings.Contains(trimmed, "/>") ||
		strings.Contains(strings.ToLower(trimmed), "<br")
}

// flattenHTML converts an HTML fragment to newline-separated text, dropping
// script and style content.
func flattenHTML(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return html
	}

	doc.Find("script, style").Remove()

	var sb strings.Builder
	doc.Find("p, li, h1, h2, h3, h4, td").Each(func(_ int, s *goquery.Selection) {
		text := strings.TrimSpace(s.Text())
		if text != "" {
			sb.WriteString(text)
			sb.WriteString("\n")
		}
	})

	if sb.Len() == 0 {
		return strings.TrimSpace(doc.Text())
	}
	return sb.String()
}
