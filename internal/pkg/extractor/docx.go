package extractor

import (
	"bytes"
	"strings"

	"github.com/gonfva/docxlib"
)

// extractDOCX concatenates the text of every paragraph in document
// order, one paragraph per line. Empty paragraphs are skipped.
func extractDOCX(data []byte) (string, error) {
	doc, err := docxlib.Parse(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}

	var paragraphs []string
	for _, paragraph := range doc.Paragraphs() {
		var sb strings.Builder
		for _, child := range paragraph.Children() {
			if child.Run != nil && child.Run.Text != nil {
				sb.WriteString(child.Run.Text.Text)
			}
			if child.Link != nil && child.Link.Run.Text != nil {
				sb.WriteString(child.Link.Run.Text.Text)
			}
		}
		text := strings.TrimSpace(sb.String())
		if text != "" {
			paragraphs = append(paragraphs, text)
		}
	}

	return strings.Join(paragraphs, "\n"), nil
}
