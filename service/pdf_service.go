package service

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/Danilepez/chat-pdf-ai/types"
	"github.com/ledongthuc/pdf"
)

// PDFService extracts raw UTF-8 text from PDF files. Extraction failures are
// fatal for the document's ingestion and surface as ErrExtraction.
type PDFService struct{}

func NewPDFService() *PDFService {
	return &PDFService{}
}

// ExtractText returns the plain text of the whole PDF at filePath.
func (s *PDFService) ExtractText(filePath string) (string, error) {
	f, reader, err := pdf.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("%w: failed to open pdf: %v", types.ErrExtraction, err)
	}
	defer f.Close()

	b, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("%w: failed to read pdf text: %v", types.ErrExtraction, err)
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, b); err != nil {
		return "", fmt.Errorf("%w: failed to buffer pdf text: %v", types.ErrExtraction, err)
	}

	text := s.cleanText(buf.String())
	if text == "" {
		return "", fmt.Errorf("%w: no text extracted from pdf", types.ErrExtraction)
	}
	return text, nil
}

func (s *PDFService) cleanText(text string) string {
	replacements := map[string]string{
		"\u0000": "",   // Null character
		"\ufffd": "",   // Unicode replacement character
		"\u001b": "",   // Escape character
		"\r":     "",   // Carriage return
		"\f":     "\n", // Form feed to newline
	}
	cleaned := text
	for old, new := range replacements {
		cleaned = strings.ReplaceAll(cleaned, old, new)
	}
	return strings.TrimSpace(cleaned)
}
