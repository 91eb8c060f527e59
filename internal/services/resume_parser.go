package services

import (
	"fmt"
	"html"
	"regexp"
	"strings"

	"github.com/nguyenthenguyen/docx"

	"github.com/raj921/ai-interview-bots/internal/apperrors"
	"github.com/raj921/ai-interview-bots/internal/models"
)

const (
	MimeTypePDF  = "application/pdf"
	MimeTypeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

var (
	emailPattern = regexp.MustCompile(`[\w.+-]+@[\w.-]+\.\w+`)
	phonePattern = regexp.MustCompile(`(\+?\d{1,3}[-.\s]?)?\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}`)
	namePattern  = regexp.MustCompile(`^[a-zA-Z\s]+$`)

	paragraphBreakPattern = regexp.MustCompile(`</w:p>|<w:br[^>]*/>`)
	xmlTagPattern         = regexp.MustCompile(`<[^>]+>`)
)

// ResumeParserService extracts best-effort contact fields from an
// uploaded resume. Confidently-absent fields stay empty; only
// unreadable input or an unsupported MIME type is an error.
type ResumeParserService interface {
	Parse(filePath, contentType string) (models.CandidateProfile, error)
	ExtractFields(text string) models.CandidateProfile
}

type resumeParserService struct {
	pdfParser PDFParserService
}

func NewResumeParserService(pdfParser PDFParserService) ResumeParserService {
	return &resumeParserService{pdfParser: pdfParser}
}

// Parse implements ResumeParserService.
func (r *resumeParserService) Parse(filePath, contentType string) (models.CandidateProfile, error) {
	var text string
	var err error

	switch contentType {
	case MimeTypePDF:
		text, err = r.pdfParser.ExtractText(filePath)
	case MimeTypeDOCX:
		text, err = extractDocxText(filePath)
	default:
		return models.CandidateProfile{}, apperrors.NewUnsupportedFormatError(contentType)
	}

	if err != nil {
		return models.CandidateProfile{}, fmt.Errorf("failed to read resume: %w", err)
	}

	return r.ExtractFields(text), nil
}

// ExtractFields implements ResumeParserService.
func (r *resumeParserService) ExtractFields(text string) models.CandidateProfile {
	var profile models.CandidateProfile

	if match := emailPattern.FindString(text); match != "" {
		profile.Email = match
	}

	if match := phonePattern.FindString(text); match != "" {
		profile.Phone = strings.TrimSpace(match)
	}

	// Name heuristic: the first non-empty line, when it is short,
	// alphabetic-only, and not an email address.
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if len(line) > 2 && len(line) < 50 &&
			!strings.Contains(line, "@") &&
			namePattern.MatchString(line) {
			profile.Name = line
		}
		break
	}

	return profile
}

// extractDocxText recovers plain text from the document XML.
func extractDocxText(filePath string) (string, error) {
	doc, err := docx.ReadDocxFile(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to open DOCX: %w", err)
	}
	defer doc.Close()

	content := doc.Editable().GetContent()
	content = paragraphBreakPattern.ReplaceAllString(content, "\n")
	content = xmlTagPattern.ReplaceAllString(content, "")
	content = html.UnescapeString(content)

	text := CleanText(content)
	if text == "" {
		return "", fmt.Errorf("no text content found in DOCX")
	}

	return text, nil
}
