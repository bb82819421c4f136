package service

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"catalogo-backend/pkg/validator"
)

var (
	ErrUnsupportedImageFormat = errors.New("unsupported image format")
	ErrUploadTooLarge         = errors.New("file size exceeds maximum allowed size")
	ErrUploadMissing          = errors.New("image file is required")
	ErrUploadNotFound         = errors.New("upload not found")
)

// UploadService persists uploaded images under a storage root and hands back
// public reference paths. Stored names are random, so concurrent uploads
// never contend and existing assets are never overwritten.
type UploadService struct {
	uploadDir    string
	publicPrefix string
	maxSize      int64
}

type UploadInfo struct {
	URL      string    `json:"url"`
	Filename string    `json:"filename"`
	Size     int64     `json:"size"`
	ModTime  time.Time `json:"mod_time"`
}

func NewUploadService(uploadDir, publicPrefix string, maxSize int64) *UploadService {
	if !strings.HasSuffix(publicPrefix, "/") {
		publicPrefix += "/"
	}

	return &UploadService{
		uploadDir:    uploadDir,
		publicPrefix: publicPrefix,
		maxSize:      maxSize,
	}
}

// SaveImage validates the declared filename, stores the blob under a fresh
// random name and returns the public reference path. Validation failures
// return ErrUnsupportedImageFormat (or ErrUploadTooLarge) with no side
// effect; storage failures surface as wrapped I/O errors so callers can
// tell them apart.
func (s *UploadService) SaveImage(file *multipart.FileHeader) (string, error) {
	if file == nil {
		return "", ErrUploadMissing
	}

	if s.maxSize > 0 && file.Size > s.maxSize {
		return "", ErrUploadTooLarge
	}

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open upload: %w", err)
	}
	defer src.Close()

	return s.Ingest(src, file.Filename)
}

// Ingest is the storage path behind SaveImage, split out so callers with a
// raw stream (seeding, tests) can use it directly.
func (s *UploadService) Ingest(src io.Reader, declaredFilename string) (string, error) {
	ext, ok := imageExtension(declaredFilename)
	if !ok {
		return "", ErrUnsupportedImageFormat
	}

	token, err := randomToken()
	if err != nil {
		return "", fmt.Errorf("failed to generate upload token: %w", err)
	}
	filename := token + ext

	if err := os.MkdirAll(s.uploadDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}

	path := filepath.Join(s.uploadDir, filename)

	// O_EXCL keeps the ingestion append-only even in the vanishingly
	// unlikely event of a token collision.
	dst, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return "", fmt.Errorf("failed to create upload file: %w", err)
	}

	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		os.Remove(path)
		return "", fmt.Errorf("failed to write upload: %w", err)
	}

	if err := dst.Close(); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("failed to write upload: %w", err)
	}

	return s.publicPrefix + filename, nil
}

// imageExtension extracts and validates the extension after the last dot.
// Filenames without a dot are rejected outright.
func imageExtension(filename string) (string, bool) {
	if !validator.ValidateImageExtension(filename) {
		return "", false
	}
	return strings.ToLower(filepath.Ext(filename)), true
}

// randomToken returns 128 bits of cryptographic randomness as lowercase hex.
func randomToken() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

// IsManagedURL reports whether a reference points into this service's
// public prefix.
func (s *UploadService) IsManagedURL(url string) bool {
	if url == "" {
		return false
	}
	return strings.HasPrefix(strings.TrimSpace(url), s.publicPrefix)
}

func (s *UploadService) ListUploads() ([]UploadInfo, error) {
	entries, err := os.ReadDir(s.uploadDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []UploadInfo{}, nil
		}
		return nil, err
	}

	uploads := make([]UploadInfo, 0, len(entries))

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		if _, ok := imageExtension(name); !ok {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}

		uploads = append(uploads, UploadInfo{
			URL:      s.publicPrefix + name,
			Filename: name,
			Size:     info.Size(),
			ModTime:  info.ModTime(),
		})
	}

	sort.Slice(uploads, func(i, j int) bool {
		return uploads[i].ModTime.After(uploads[j].ModTime)
	})

	return uploads, nil
}

// DeleteUpload removes a stored image by its public reference. Replaced
// product images are never deleted automatically; this is the manual
// cleanup path for accumulated orphans.
func (s *UploadService) DeleteUpload(url string) error {
	filename := filepath.Base(strings.TrimSpace(url))
	if filename == "" || filename == "." || filename == string(filepath.Separator) {
		return ErrUploadNotFound
	}

	uploadDirAbs, err := filepath.Abs(s.uploadDir)
	if err != nil {
		return err
	}

	pathAbs, err := filepath.Abs(filepath.Join(s.uploadDir, filename))
	if err != nil {
		return err
	}

	if !strings.HasPrefix(pathAbs, uploadDirAbs) {
		return ErrUploadNotFound
	}

	if err := os.Remove(pathAbs); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return ErrUploadNotFound
		}
		return err
	}

	return nil
}
