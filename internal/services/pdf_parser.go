package services

import (
	"fmt"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"
)

// PDFParserService turns a PDF into plain text. It serves two paths:
// resume uploads (contact field extraction) and the knowledge
// documents the ingest tool embeds for question generation.
type PDFParserService interface {
	ExtractText(filepath string) (string, error)
	ExtractTextWithMetaData(filepath string) (*PDFContent, error)
}

// PDFContent carries extracted text plus the page count the ingest
// tool reports.
type PDFContent struct {
	Text      string
	PageCount int
	FilePath  string
}

type pdfParserService struct{}

func NewPDFParserService() PDFParserService {
	return &pdfParserService{}
}

// extract walks every page. Unreadable pages are skipped; the
// document fails only when no page yields any text at all.
func (p *pdfParserService) extract(filePath string, pageHeaders bool) (string, int, error) {
	f, r, err := pdf.Open(filePath)
	if err != nil {
		return "", 0, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer f.Close()

	var textBuilder strings.Builder
	pageCount := r.NumPage()

	for pageIndex := 1; pageIndex <= pageCount; pageIndex++ {
		page := r.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}

		if pageHeaders {
			fmt.Fprintf(&textBuilder, "--- Page %d ---\n", pageIndex)
		}
		textBuilder.WriteString(text)
		textBuilder.WriteString("\n\n")
	}

	text := textBuilder.String()
	if strings.TrimSpace(text) == "" {
		return "", 0, fmt.Errorf("no text content found in PDF")
	}

	return text, pageCount, nil
}

// ExtractText implements PDFParserService.
func (p *pdfParserService) ExtractText(filePath string) (string, error) {
	text, _, err := p.extract(filePath, false)
	return text, err
}

// ExtractTextWithMetaData implements PDFParserService. Used by the
// ingest tool, which wants page markers and counts in its logs.
func (p *pdfParserService) ExtractTextWithMetaData(filePath string) (*PDFContent, error) {
	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		return nil, fmt.Errorf("file does not exist: %s", filePath)
	}

	text, pageCount, err := p.extract(filePath, true)
	if err != nil {
		return nil, err
	}

	return &PDFContent{
		Text:      text,
		PageCount: pageCount,
		FilePath:  filePath,
	}, nil
}

// CleanText drops blank lines and per-line padding. Shared by the PDF
// and DOCX extraction paths.
func CleanText(text string) string {
	var cleanedLines []string
	for _, line := range strings.Split(strings.TrimSpace(text), "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			cleanedLines = append(cleanedLines, line)
		}
	}

	return strings.Join(cleanedLines, "\n")
}
