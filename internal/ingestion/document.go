package ingestion

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

// ErrUnsupportedFormat is returned for file extensions the ingester does not handle.
var ErrUnsupportedFormat = fmt.Errorf("unsupported document format")

// IngestFromFile reads a resume or job description document, extracts its
// plain text, cleans it, and returns the cleaned text with metadata. The
// format is chosen by file extension: .pdf, .docx, and plain text (.txt, .md,
// or anything else readable as UTF-8 text).
func IngestFromFile(path string) (string, *Metadata, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil, fmt.Errorf("file not found: %w", err)
		}
		return "", nil, fmt.Errorf("failed to read file: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	var text string
	switch ext {
	case ".pdf":
		text, err = extractPDFText(content)
	case ".docx":
		text, err = extractDocxText(content)
	case ".doc":
		return "", nil, fmt.Errorf("%w: legacy .doc files are not supported, convert to .docx", ErrUnsupportedFormat)
	default:
		text = string(content)
	}
	if err != nil {
		return "", nil, err
	}

	cleanedText := CleanText(text)
	metadata := NewMetadata(cleanedText, "")
	metadata.SourceType = sourceType(ext)

	return cleanedText, metadata, nil
}

func sourceType(ext string) string {
	switch ext {
	case ".pdf":
		return "pdf"
	case ".docx":
		return "docx"
	case ".md":
		return "md"
	default:
		return "txt"
	}
}

// extractPDFText concatenates the plain text of every page.
func extractPDFText(content []byte) (string, error) {
	reader := bytes.NewReader(content)
	pdfReader, err := pdf.NewReader(reader, int64(len(content)))
	if err != nil {
		return "", fmt.Errorf("failed to read pdf: %w", err)
	}

	var textBuilder strings.Builder
	numPages := pdfReader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := pdfReader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, _ := page.GetPlainText(nil)
		textBuilder.WriteString(text)
		textBuilder.WriteString("\n")
	}
	return textBuilder.String(), nil
}

var xmlTagRe = regexp.MustCompile(`<[^>]+>`)

// extractDocxText pulls the document body and strips markup tags. Paragraph
// breaks are preserved as newlines so headings survive cleaning.
func extractDocxText(content []byte) (string, error) {
	reader := bytes.NewReader(content)
	doc, err := docx.ReadDocxFromMemory(reader, int64(len(content)))
	if err != nil {
		return "", fmt.Errorf("failed to parse docx: %w", err)
	}
	defer func() { _ = doc.Close() }()

	raw := doc.Editable().GetContent()
	raw = strings.ReplaceAll(raw, "</w:p>", "\n")
	return xmlTagRe.ReplaceAllString(raw, ""), nil
}
