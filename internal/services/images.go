package services

import (
	"io"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

const storedNameLayout = "20060102150405"

// SaveImage persists an uploaded photo under dir and returns the stored
// name. The client filename is sanitized and prefixed with a
// second-granularity timestamp so repeated uploads of the same file do not
// overwrite each other.
func SaveImage(dir, clientName string, body io.Reader) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", ErrStore(err, "upload dir")
	}
	stored := time.Now().UTC().Format(storedNameLayout) + "_" + SanitizeFilename(clientName)
	target := filepath.Join(dir, stored)

	file, err := os.Create(target)
	if err != nil {
		return "", ErrStore(err, "create upload")
	}
	size, err := io.Copy(file, body)
	closeErr := file.Close()
	if err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(target)
		return "", ErrStore(err, "write upload")
	}
	if size == 0 {
		_ = os.Remove(target)
		return "", ErrValidation("The uploaded file is empty.")
	}
	return stored, nil
}

// SanitizeFilename strips directories and replaces anything outside
// [A-Za-z0-9._-] so a client-supplied name cannot escape the upload dir.
// A name with nothing left gets a generated one.
func SanitizeFilename(name string) string {
	base := filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	var b strings.Builder
	for _, r := range base {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' || r == '_' || r == '-':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	cleaned := strings.Trim(b.String(), "._")
	if cleaned == "" {
		return uuid.NewString()
	}
	return cleaned
}

// ImagePath resolves a stored name to a path under dir. The database may
// reference a file that no longer exists (the upload dir is ephemeral on
// some deployments); that surfaces as not-found rather than being masked.
func ImagePath(dir, stored string) (string, error) {
	if stored == "" || stored != filepath.Base(stored) {
		return "", ErrNotFound("Image not found.")
	}
	path := filepath.Join(dir, stored)
	if _, err := os.Stat(path); err != nil {
		return "", ErrNotFound("Image not found.")
	}
	return path, nil
}

func ContentTypeFor(stored string) string {
	contentType := mime.TypeByExtension(filepath.Ext(stored))
	if contentType == "" {
		return "application/octet-stream"
	}
	return contentType
}
