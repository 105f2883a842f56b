package ingest

import (
	"fmt"
	"io"
	"net/url"
	"strings"
	"unicode"

	readability "github.com/go-shiori/go-readability"
)

// Document is plain book text plus whatever metadata the source carried.
type Document struct {
	Title  string
	Author string
	Text   string
}

// ExtractText reduces an HTML book to its readable text.
func ExtractText(r io.Reader, sourceURL string) (Document, error) {
	var pageURL *url.URL
	if sourceURL != "" {
		u, err := url.Parse(sourceURL)
		if err != nil {
			return Document{}, fmt.Errorf("parse source url: %w", err)
		}
		pageURL = u
	}

	article, err := readability.FromReader(r, pageURL)
	if err != nil {
		return Document{}, fmt.Errorf("extract text: %w", err)
	}
	return Document{
		Title:  strings.TrimSpace(article.Title),
		Author: strings.TrimSpace(article.Byline),
		Text:   strings.TrimSpace(article.TextContent),
	}, nil
}

// RepairLines re-joins lines of a book that were hard-wrapped in the middle
// of a paragraph. A line keeps its line break when it looks like the end of
// a paragraph or a heading; otherwise it is joined to the next one with a
// space.
func RepairLines(text string) string {
	lines := strings.Split(text, "\n")
	var b strings.Builder
	b.Grow(len(text))
	for _, line := range lines {
		b.WriteString(line)
		if endsParagraph(line) {
			b.WriteByte('\n')
		} else {
			b.WriteByte(' ')
		}
	}
	return b.String()
}

func endsParagraph(line string) bool {
	if strings.HasSuffix(line, "…") {
		return true
	}
	if line != "" && strings.ContainsRune(`.!?":)`, rune(line[len(line)-1])) {
		return true
	}
	if strings.HasPrefix(line, "Chapter") ||
		strings.HasPrefix(line, "Project I") ||
		strings.HasPrefix(line, "-") ||
		strings.HasSuffix(line, "STATUS") {
		return true
	}
	return !strings.ContainsFunc(line, func(r rune) bool {
		return r < unicode.MaxASCII && unicode.IsLower(r)
	})
}
