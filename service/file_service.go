package service

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Danilepez/chat-pdf-ai/types"
)

// FileService owns the upload directory: it stores uploaded PDFs, lists them
// and hands them to the ingestion pipeline. The directory plays the role of
// the document blob store; a document's key is its stored file name.
type FileService struct {
	uploadDir     string
	pdfService    *PDFService
	ingestService *IngestService
}

func NewFileService(uploadDir string, pdfService *PDFService, ingestService *IngestService) *FileService {
	if err := os.MkdirAll(uploadDir, 0755); err != nil {
		panic(err)
	}
	return &FileService{
		uploadDir:     uploadDir,
		pdfService:    pdfService,
		ingestService: ingestService,
	}
}

// UploadFile saves an uploaded PDF and ingests it. Progress events go to
// status; the caller owns the channel and must keep draining it until
// UploadFile returns. Returns the stored document key and the number of
// fragments persisted.
func (s *FileService) UploadFile(ctx context.Context, req types.UploadRequest, file *multipart.FileHeader, status chan<- types.ProcessingDocumentStatus) (string, int, error) {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if ext != ".pdf" {
		return "", 0, fmt.Errorf("%w: unsupported file type %s, only PDF allowed", types.ErrValidation, ext)
	}

	src, err := file.Open()
	if err != nil {
		return "", 0, err
	}
	defer src.Close()

	title := req.Title
	if title == "" {
		title = strings.TrimSuffix(file.Filename, ext)
	}
	key := s.storedFileName(title, ext)

	dst, err := os.Create(filepath.Join(s.uploadDir, key))
	if err != nil {
		return "", 0, err
	}
	defer dst.Close()

	if _, err = io.Copy(dst, src); err != nil {
		return "", 0, err
	}

	count, err := s.IngestDocument(ctx, key, status)
	return key, count, err
}

// ImportLocalFile copies a local PDF into the upload directory and returns
// the document key it was stored under.
func (s *FileService) ImportLocalFile(sourcePath string) (string, error) {
	ext := strings.ToLower(filepath.Ext(sourcePath))
	if ext != ".pdf" {
		return "", fmt.Errorf("%w: unsupported file type %s, only PDF allowed", types.ErrValidation, ext)
	}

	src, err := os.Open(sourcePath)
	if err != nil {
		return "", err
	}
	defer src.Close()

	title := strings.TrimSuffix(filepath.Base(sourcePath), filepath.Ext(sourcePath))
	key := s.storedFileName(title, ext)

	dst, err := os.Create(filepath.Join(s.uploadDir, key))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}
	return key, nil
}

// IngestDocument extracts text from a stored document and runs the ingestion
// pipeline under the document's key.
func (s *FileService) IngestDocument(ctx context.Context, key string, status chan<- types.ProcessingDocumentStatus) (int, error) {
	text, err := s.pdfService.ExtractText(filepath.Join(s.uploadDir, key))
	if err != nil {
		return 0, err
	}
	return s.ingestService.IngestText(ctx, key, text, status)
}

// ListDocuments returns the stored document files with size and modification
// time, the way the upload bucket listing did.
func (s *FileService) ListDocuments() ([]types.DocumentInfo, error) {
	entries, err := os.ReadDir(s.uploadDir)
	if err != nil {
		return nil, err
	}
	files := []types.DocumentInfo{}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".pdf") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		files = append(files, types.DocumentInfo{
			Key:          entry.Name(),
			Size:         info.Size(),
			LastModified: info.ModTime().Unix(),
		})
	}
	return files, nil
}

// DocumentPath resolves a stored document key to its path inside the upload
// dir. Rejects keys that escape the directory.
func (s *FileService) DocumentPath(key string) (string, error) {
	if key == "" || key != filepath.Base(key) {
		return "", fmt.Errorf("%w: invalid document key", types.ErrValidation)
	}
	path := filepath.Join(s.uploadDir, key)
	if _, err := os.Stat(path); err != nil {
		return "", err
	}
	return path, nil
}

// storedFileName builds "<sanitized title>_<timestamp><ext>".
func (s *FileService) storedFileName(title, ext string) string {
	name := fmt.Sprintf("%s_%d%s", title, time.Now().Unix(), ext)
	return strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-' || r == '_' || r == '.' {
			return r
		}
		return '_'
	}, name)
}
