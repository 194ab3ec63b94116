package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"
)

var ErrUnsupportedContentType = errors.New("unsupported content type")

type UploadResult struct {
	Key      string
	Location string
	ETag     string
}

type FileUploader interface {
	Upload(ctx context.Context, key string, contentType string, reader io.Reader) (*UploadResult, error)

	Delete(ctx context.Context, key string) error

	GetPublicURL(key string) string
}

var extensionsByContentType = map[string]string{
	"image/jpeg":      ".jpg",
	"image/jpg":       ".jpg",
	"image/png":       ".png",
	"image/gif":       ".gif",
	"image/webp":      ".webp",
	"image/svg+xml":   ".svg",
	"video/mp4":       ".mp4",
	"video/webm":      ".webm",
	"video/quicktime": ".mov",
}

// ExtensionForContentType возвращает расширение файла для поддерживаемых медиа-типов.
func ExtensionForContentType(contentType string) (string, error) {
	ct := strings.ToLower(strings.TrimSpace(strings.SplitN(contentType, ";", 2)[0]))
	ext, ok := extensionsByContentType[ct]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedContentType, contentType)
	}
	return ext, nil
}

// IsVideo reports whether the content type is one of the accepted video types.
func IsVideo(contentType string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(contentType)), "video/")
}

// NewObjectKey builds a unique key such as "media/<tournament>/<uuid>.jpg".
func NewObjectKey(prefix, scope, ext string) string {
	if scope == "" {
		scope = "general"
	}
	return path.Join(prefix, scope, uuid.NewString()+ext)
}
