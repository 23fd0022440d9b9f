package common

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// allowedExtensions are the file types accepted at the front door. The
// parser never assumes a schema, but it only ingests delimited text.
var allowedExtensions = map[string]bool{
	".csv": true,
	".txt": true,
	".tsv": true,
}

// ValidateFile rejects files the pipeline should not even attempt: missing,
// empty, oversized, or of an unsupported type.
func ValidateFile(path string, maxBytes int64) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("cannot access file: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory", path)
	}
	if info.Size() == 0 {
		return fmt.Errorf("file is empty")
	}
	if maxBytes > 0 && info.Size() > maxBytes {
		return fmt.Errorf("file size %d exceeds limit of %d bytes", info.Size(), maxBytes)
	}
	ext := strings.ToLower(filepath.Ext(path))
	if !allowedExtensions[ext] {
		return fmt.Errorf("unsupported file type %q", ext)
	}
	return nil
}

// HashBytes returns the hex SHA-256 of the content, used as the duplicate
// detection key.
func HashBytes(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
