package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/coreybb/voxvite/webutil"
	"github.com/gabriel-vasile/mimetype"
)

// defaultUploadDir is the base directory for uploaded audio when no
// explicit path is configured. It sits inside the static tree so files
// are served back at /uploads/{filename}.
const defaultUploadDir = "static/uploads"

// storedNameLength is the random portion of a stored filename; the
// original extension is appended to it.
const storedNameLength = 10

var (
	// ErrTooLarge is returned when an upload exceeds the byte ceiling.
	ErrTooLarge = errors.New("audio file too large")

	// ErrUnsupportedType is returned when the file is not audio.
	ErrUnsupportedType = errors.New("unsupported media type")
)

// AudioStorer defines the interface for persisting uploaded audio.
type AudioStorer interface {
	// Store validates and saves one uploaded file, returning the
	// generated filename (not the full path) it was stored under.
	// originalName supplies the extension; declaredType is the
	// client-declared content type of the file part.
	Store(ctx context.Context, originalName, declaredType string, r io.Reader) (string, error)
}

// LocalAudioStore implements AudioStorer on the local file system.
type LocalAudioStore struct {
	basePath string
	maxBytes int64
}

// NewLocalAudioStore creates a LocalAudioStore writing under basePath
// with the given per-file byte ceiling. If basePath is empty, it
// defaults to defaultUploadDir.
func NewLocalAudioStore(basePath string, maxBytes int64) *LocalAudioStore {
	if basePath == "" {
		basePath = defaultUploadDir
	}
	return &LocalAudioStore{basePath: basePath, maxBytes: maxBytes}
}

func (s *LocalAudioStore) Store(ctx context.Context, originalName, declaredType string, r io.Reader) (string, error) {
	// Read at most one byte past the ceiling so oversize uploads are
	// detected without buffering arbitrarily large bodies.
	content, err := io.ReadAll(io.LimitReader(r, s.maxBytes+1))
	if err != nil {
		return "", fmt.Errorf("failed to read uploaded file: %w", err)
	}
	if int64(len(content)) > s.maxBytes {
		return "", ErrTooLarge
	}

	if !isAudio(declaredType, content) {
		return "", ErrUnsupportedType
	}

	token, err := webutil.GenerateRandomToken(storedNameLength)
	if err != nil {
		return "", fmt.Errorf("failed to generate filename: %w", err)
	}
	fileName := token + strings.ToLower(filepath.Ext(originalName))

	if err := os.MkdirAll(s.basePath, os.ModePerm); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}
	fullPath := filepath.Join(s.basePath, fileName)
	if err := os.WriteFile(fullPath, content, 0644); err != nil {
		return "", fmt.Errorf("failed to save uploaded file: %w", err)
	}

	slog.Info("Stored uploaded audio", "file", fullPath, "bytes", len(content))
	return fileName, nil
}

// isAudio accepts a file whose declared content type is audio, or,
// when the declaration is absent or generic, whose leading bytes sniff
// as an audio format.
func isAudio(declaredType string, content []byte) bool {
	declared := strings.ToLower(strings.TrimSpace(declaredType))
	if strings.HasPrefix(declared, "audio/") {
		return true
	}
	if declared != "" && declared != "application/octet-stream" {
		return false
	}
	return strings.HasPrefix(mimetype.Detect(content).String(), "audio/")
}
