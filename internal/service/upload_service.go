package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"inkwell/internal/models"
	"inkwell/internal/observability"
	"inkwell/internal/storage"

	"go.opentelemetry.io/otel/attribute"
)

var allowedExtensions = map[string]struct{}{
	"png":  {},
	"jpg":  {},
	"jpeg": {},
	"gif":  {},
	"webp": {},
}

// UploadService validates inbound image files, derives a collision-resistant
// storage key, and delegates the byte transfer to object storage.
type UploadService struct {
	storage storage.ObjectStorage
	bucket  string
	now     func() time.Time
}

type UploadInput struct {
	Filename    string
	ContentType string
	Content     []byte
}

func NewUploadService(store storage.ObjectStorage, bucket string) *UploadService {
	return &UploadService{
		storage: store,
		bucket:  bucket,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// Upload validates the file, stores it, and returns the public URL.
// Single attempt; a storage failure surfaces as UploadFailed.
func (s *UploadService) Upload(ctx context.Context, in UploadInput) (string, error) {
	if in.Filename == "" || len(in.Content) == 0 {
		return "", models.NewValidationError("No file provided")
	}
	if !allowedFile(in.Filename) {
		return "", models.NewInvalidFileTypeError("Invalid file type")
	}

	// Timestamp prefix keeps keys sortable and avoids collisions between
	// concurrent uploads with identical names.
	key := s.now().Format("20060102_150405_") + sanitizeFilename(in.Filename)

	span, ctx := observability.NewSpan(ctx, "storage.put")
	span.AddAttributes(
		attribute.String("storage.key", key),
		attribute.Int("storage.bytes", len(in.Content)),
	)
	defer span.End()

	if err := s.storage.Put(ctx, key, in.ContentType, in.Content); err != nil {
		span.SetError(err)
		observability.UploadsTotal.WithLabelValues("failed").Inc()
		return "", models.NewUploadFailedError(err)
	}

	observability.UploadsTotal.WithLabelValues("ok").Inc()
	observability.UploadBytes.Add(float64(len(in.Content)))

	return fmt.Sprintf("https://%s.s3.amazonaws.com/%s", s.bucket, key), nil
}

// allowedFile reports whether the filename carries an allowed image extension.
func allowedFile(filename string) bool {
	idx := strings.LastIndexByte(filename, '.')
	if idx < 0 || idx == len(filename)-1 {
		return false
	}
	_, ok := allowedExtensions[strings.ToLower(filename[idx+1:])]
	return ok
}

// sanitizeFilename reduces a user-supplied filename to a filesystem-safe form:
// path separators and whitespace become underscores, anything outside
// [A-Za-z0-9._-] is dropped, and leading dots/dashes are stripped.
func sanitizeFilename(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' || r == '_' || r == '-':
			b.WriteRune(r)
		case r == '/' || r == '\\' || r == ' ':
			b.WriteByte('_')
		}
	}
	out := strings.TrimLeft(b.String(), ".-_")
	if out == "" {
		out = "file"
	}
	return out
}
