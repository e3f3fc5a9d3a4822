package storage

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"path"
	"strings"
)

// ErrInvalidName is returned for object names that escape the storage root
var ErrInvalidName = errors.New("invalid object name")

// Storage is an output sink for generated documentation.
// Names are slash-separated and relative to the sink root.
type Storage interface {
	// WriteFile stores data under name, replacing any previous content
	WriteFile(ctx context.Context, name string, data []byte) error

	// Location describes where the files end up, for logging
	Location() string
}

// Reader is implemented by sinks that can read back what they stored
type Reader interface {
	ReadFile(ctx context.Context, name string) ([]byte, error)
}

// Config selects and configures a storage backend
type Config struct {
	Type string // "filesystem" or "s3"

	// Filesystem config
	FilesystemRoot string

	// S3 config
	S3Endpoint     string
	S3Region       string
	S3Bucket       string
	S3Prefix       string
	S3AccessKey    string
	S3SecretKey    string
	S3UsePathStyle bool
}

// DefaultConfig returns the filesystem sink rooted at the default output directory
func DefaultConfig() Config {
	return Config{
		Type:           "filesystem",
		FilesystemRoot: "sabledocs_output",
	}
}

// CleanName normalizes an object name and rejects absolute or parent-relative names
func CleanName(name string) (string, error) {
	name = strings.ReplaceAll(name, "\\", "/")
	if name == "" || strings.HasPrefix(name, "/") {
		return "", fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	cleaned := path.Clean(name)
	if cleaned == "." || cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return "", fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return cleaned, nil
}

// ContentType guesses the MIME type of an object from its extension
func ContentType(name string) string {
	if ct := mime.TypeByExtension(path.Ext(name)); ct != "" {
		return ct
	}
	return "application/octet-stream"
}

// Open creates the backend selected by cfg.Type
func Open(ctx context.Context, cfg Config) (Storage, error) {
	switch cfg.Type {
	case "", "filesystem":
		return NewFileSystemStorage(cfg.FilesystemRoot)
	case "s3":
		return NewS3Storage(ctx, cfg)
	default:
		return nil, fmt.Errorf("unknown storage type %q", cfg.Type)
	}
}
