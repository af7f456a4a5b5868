package file

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png" // Import for PNG decoding support
	"io"
	"math"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/cmlabs-hris/ponto-backend-go/internal/pkg/storage"
	"github.com/google/uuid"
	"golang.org/x/image/draw"
)

const (
	evidenceMaxSize = 150 * 1024
	evidenceMinSize = 50 * 1024
)

type FileService interface {
	// UploadPunchEvidence stores the photo captured with a punch, compressed to JPEG
	UploadPunchEvidence(ctx context.Context, subjectID string, day time.Time, kind string, file io.Reader, filename string) (string, error)

	// UploadExceptionAttachment stores the document backing an exception (e.g. a medical certificate)
	UploadExceptionAttachment(ctx context.Context, subjectID string, day time.Time, file io.Reader, filename string) (string, error)

	// Generic operations
	DeleteFile(ctx context.Context, path string) error
	GetFileURL(ctx context.Context, path string, expiry time.Duration) (string, error)
}

type fileServiceImpl struct {
	storage storage.FileStorage
}

func NewFileService(storage storage.FileStorage) FileService {
	return &fileServiceImpl{
		storage: storage,
	}
}

// UploadPunchEvidence compresses the image to 50KB - 150KB and stores it under
// punches/{date}/{subject}-{kind}-{uuid}.jpg
func (s *fileServiceImpl) UploadPunchEvidence(ctx context.Context, subjectID string, day time.Time, kind string, file io.Reader, filename string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext != ".jpg" && ext != ".jpeg" && ext != ".png" {
		return "", fmt.Errorf("invalid file type: only jpg, jpeg, png allowed")
	}

	buffer, err := io.ReadAll(file)
	if err != nil {
		return "", fmt.Errorf("failed to read image: %w", err)
	}

	compressed, err := compressImage(buffer, evidenceMaxSize, evidenceMinSize)
	if err != nil {
		return "", fmt.Errorf("failed to compress image: %w", err)
	}

	// Always JPEG after compression
	newFilename := fmt.Sprintf("%s-%s-%s.jpg", subjectID, kind, uuid.NewString())
	p := path.Join("punches", day.Format("2006-01-02"), newFilename)

	uploadedPath, err := s.storage.Upload(ctx, bytes.NewReader(compressed), p, "image/jpeg")
	if err != nil {
		return "", fmt.Errorf("failed to upload punch evidence: %w", err)
	}

	return uploadedPath, nil
}

// UploadExceptionAttachment keeps the original bytes
func (s *fileServiceImpl) UploadExceptionAttachment(ctx context.Context, subjectID string, day time.Time, file io.Reader, filename string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	allowedExts := []string{".pdf", ".jpg", ".jpeg", ".png"}

	isValid := false
	for _, allowed := range allowedExts {
		if ext == allowed {
			isValid = true
			break
		}
	}
	if !isValid {
		return "", fmt.Errorf("invalid file type: only pdf, jpg, jpeg, png allowed")
	}

	contentType := "application/pdf"
	switch ext {
	case ".jpg", ".jpeg":
		contentType = "image/jpeg"
	case ".png":
		contentType = "image/png"
	}

	newFilename := fmt.Sprintf("%s-%s%s", day.Format("2006-01-02"), uuid.NewString(), ext)
	p := path.Join("exceptions", subjectID, newFilename)

	uploadedPath, err := s.storage.Upload(ctx, file, p, contentType)
	if err != nil {
		return "", fmt.Errorf("failed to upload exception attachment: %w", err)
	}

	return uploadedPath, nil
}

// DeleteFile deletes a file
func (s *fileServiceImpl) DeleteFile(ctx context.Context, path string) error {
	return s.storage.Delete(ctx, path)
}

// GetFileURL generates URL to access file
func (s *fileServiceImpl) GetFileURL(ctx context.Context, path string, expiry time.Duration) (string, error) {
	return s.storage.GetURL(ctx, path, expiry)
}

// ==================== HELPER FUNCTIONS ====================

// compressImage re-encodes an image until it fits [minSize, maxSize], first by
// lowering JPEG quality and then by downscaling.
func compressImage(buffer []byte, maxSize int, minSize int) ([]byte, error) {
	img, format, err := image.Decode(bytes.NewReader(buffer))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	// Already a JPEG of acceptable size
	if format == "jpeg" && len(buffer) <= maxSize {
		return buffer, nil
	}

	bounds := img.Bounds()
	originalWidth := bounds.Dx()
	originalHeight := bounds.Dy()

	quality := 85
	var compressed []byte

	for quality >= 50 {
		buf := new(bytes.Buffer)
		if err := jpeg.Encode(buf, img, &jpeg.Options{Quality: quality}); err != nil {
			return nil, fmt.Errorf("failed to encode JPEG: %w", err)
		}
		compressed = buf.Bytes()

		if len(compressed) <= maxSize {
			return compressed, nil
		}
		quality -= 5
	}

	// Still too large, resize towards the middle of the range
	targetSize := (maxSize + minSize) / 2
	ratio := math.Sqrt(float64(targetSize) / float64(len(compressed)))
	newWidth := int(float64(originalWidth) * ratio)
	newHeight := int(float64(originalHeight) * ratio)

	if newWidth < 1 {
		newWidth = 1
	}
	if newHeight < 1 {
		newHeight = 1
	}

	resized := resizeImage(img, newWidth, newHeight)

	buf := new(bytes.Buffer)
	if err := jpeg.Encode(buf, resized, &jpeg.Options{Quality: 70}); err != nil {
		return nil, fmt.Errorf("failed to encode resized image: %w", err)
	}

	return buf.Bytes(), nil
}

// resizeImage resizes an image to the specified dimensions using high-quality interpolation
func resizeImage(src image.Image, width, height int) image.Image {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	// CatmullRom for high-quality downscaling
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)
	return dst
}
