package services

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrNoFileSelected  = errors.New("no file selected")
	ErrInvalidFileType = errors.New("invalid file type")
	ErrFileTooLarge    = errors.New("file too large")
)

type StorageService interface {
	Validate(file *multipart.FileHeader) error
	SaveFile(file *multipart.FileHeader) (string, string, error)
	GetFilePath(filename string) string
	DeleteFile(filename string) error
	EnsureUploadDir() error
}

type storageService struct {
	uploadPath  string
	maxFileSize int64
	allowed     map[string]struct{}
}

func NewStorageService(uploadPath string, maxFileSize int64, allowedExtensions []string) StorageService {
	allowed := make(map[string]struct{}, len(allowedExtensions))
	for _, ext := range allowedExtensions {
		allowed["."+strings.TrimPrefix(strings.ToLower(ext), ".")] = struct{}{}
	}

	return &storageService{
		uploadPath:  uploadPath,
		maxFileSize: maxFileSize,
		allowed:     allowed,
	}
}

func (s *storageService) EnsureUploadDir() error {
	if err := os.MkdirAll(s.uploadPath, 0755); err != nil {
		return fmt.Errorf("failed to create upload directory: %w", err)
	}

	return nil
}

// Validate checks the file name, extension and size of an upload.
func (s *storageService) Validate(file *multipart.FileHeader) error {
	if file == nil || strings.TrimSpace(file.Filename) == "" {
		return ErrNoFileSelected
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if _, ok := s.allowed[ext]; !ok {
		return ErrInvalidFileType
	}

	if s.maxFileSize > 0 && file.Size > s.maxFileSize {
		return fmt.Errorf("%w: %d bytes exceeds %d", ErrFileTooLarge, file.Size, s.maxFileSize)
	}

	return nil
}

// SaveFile stores the upload under a random name and returns that name and its path.
func (s *storageService) SaveFile(file *multipart.FileHeader) (string, string, error) {
	if err := s.Validate(file); err != nil {
		return "", "", err
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	uniqueFilename := uuid.New().String() + ext
	filePath := filepath.Join(s.uploadPath, uniqueFilename)

	src, err := file.Open()
	if err != nil {
		return "", "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(filePath)
	if err != nil {
		return "", "", fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", "", fmt.Errorf("failed to save file: %w", err)
	}

	return uniqueFilename, filePath, nil
}

func (s *storageService) GetFilePath(filename string) string {
	return filepath.Join(s.uploadPath, filepath.Base(filename))
}

func (s *storageService) DeleteFile(filename string) error {
	filePath := s.GetFilePath(filename)
	if err := os.Remove(filePath); err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}
