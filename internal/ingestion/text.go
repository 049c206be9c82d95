// Package ingestion turns job description input into the plain text the
// keyword extractors run over.
package ingestion

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var (
	spaceRun       = regexp.MustCompile(`[ \t]+`)
	blankLineRun   = regexp.MustCompile(`\n\n\n+`)
	htmlTagSniffer = regexp.MustCompile(`(?i)<\s*(p|br|div|ul|ol|li|h[1-6]|span|strong|em|b|i|a|table|html|body)\b[^>]*>`)
)

// blockElements end a line when their content has been written.
var blockElements = map[string]bool{
	"p": true, "div": true, "section": true, "article": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"ul": true, "ol": true, "tr": true, "table": true, "blockquote": true,
	"header": true, "footer": true, "main": true,
}

// CleanText cleans and normalizes text content while preserving structure
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")

	lines := strings.Split(content, "\n")
	cleanedLines := make([]string, 0, len(lines))
	for _, line := range lines {
		cleanedLines = append(cleanedLines, cleanLine(line))
	}

	result := strings.Join(cleanedLines, "\n")
	result = blankLineRun.ReplaceAllString(result, "\n\n")
	return strings.TrimSpace(result)
}

// cleanLine cleans a single line while preserving structure
func cleanLine(line string) string {
	line = strings.TrimRight(line, " \t")
	if strings.TrimSpace(line) == "" {
		return ""
	}

	trimmed := strings.TrimLeft(line, " \t")
	if strings.HasPrefix(trimmed, "#") {
		return trimmed
	}

	indent := len(line) - len(trimmed)
	if isBulletLine(trimmed) {
		return strings.Repeat(" ", indent) + normalizeBullet(trimmed)
	}
	return strings.Repeat(" ", indent) + spaceRun.ReplaceAllString(trimmed, " ")
}

// isBulletLine checks if a line is a bullet list item
func isBulletLine(line string) bool {
	trimmed := strings.TrimLeft(line, " \t")
	return strings.HasPrefix(trimmed, "- ") || strings.HasPrefix(trimmed, "* ") ||
		strings.HasPrefix(trimmed, "• ") || strings.HasPrefix(trimmed, "· ")
}

// normalizeBullet rewrites unicode bullets as "- " and collapses inner spacing.
func normalizeBullet(line string) string {
	for _, marker := range []string{"• ", "· "} {
		if strings.HasPrefix(line, marker) {
			line = "- " + strings.TrimPrefix(line, marker)
			break
		}
	}
	return line[:2] + spaceRun.ReplaceAllString(strings.TrimSpace(line[2:]), " ")
}

// LooksLikeHTML reports whether content carries common rich-text markup.
func LooksLikeHTML(content string) bool {
	return htmlTagSniffer.MatchString(content)
}

// HTMLToText renders an HTML fragment or document as plain text. Block
// elements become lines, list items become "- " bullets, and script, style
// and noscript content is dropped.
func HTMLToText(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	doc.Find("script, style, noscript, template").Remove()
	doc.Find("br").ReplaceWithHtml("\n")
	doc.Find("li").Each(func(_ int, li *goquery.Selection) {
		li.PrependHtml("\n- ")
		li.AppendHtml("\n")
	})
	doc.Find("*").Each(func(_ int, s *goquery.Selection) {
		if blockElements[goquery.NodeName(s)] {
			s.PrependHtml("\n")
			s.AppendHtml("\n")
		}
	})

	root := doc.Find("body")
	if root.Length() == 0 {
		root = doc.Selection
	}
	text := strings.ReplaceAll(root.Text(), "\u00a0", " ")
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	return CleanText(strings.Join(lines, "\n")), nil
}

// NormalizeDescription returns plain, cleaned text for a job description
// whether it arrived as HTML or as text.
func NormalizeDescription(description string) (string, error) {
	if LooksLikeHTML(description) {
		return HTMLToText(description)
	}
	return CleanText(description), nil
}
