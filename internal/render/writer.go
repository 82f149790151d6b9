package render

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// WriteFile writes content to relativePath under outputDir and returns the
// full path. The path must stay inside outputDir. Existing files are replaced
// atomically through a temporary file in the same directory.
func WriteFile(outputDir, relativePath string, content []byte) (string, error) {
	if outputDir == "" {
		return "", errors.New("output directory is required")
	}
	if relativePath == "" {
		return "", errors.New("output path is required")
	}

	cleanRel := filepath.Clean(filepath.FromSlash(relativePath))
	if filepath.IsAbs(cleanRel) || cleanRel == ".." || strings.HasPrefix(cleanRel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("output path must be relative to the output directory: %s", relativePath)
	}

	fullPath := filepath.Join(outputDir, cleanRel)
	rel, err := filepath.Rel(outputDir, fullPath)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("output path escapes output directory: %s", relativePath)
	}

	dir := filepath.Dir(fullPath)
	if err = os.MkdirAll(dir, 0o750); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".render-*")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		_ = os.Remove(tmpName)
	}()

	if _, err = tmp.Write(content); err != nil {
		_ = tmp.Close()
		return "", fmt.Errorf("write output file: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return "", fmt.Errorf("close output file: %w", err)
	}
	if err = os.Chmod(tmpName, 0o644); err != nil {
		return "", fmt.Errorf("chmod output file: %w", err)
	}
	if err = os.Rename(tmpName, fullPath); err != nil {
		return "", fmt.Errorf("replace output file: %w", err)
	}
	return fullPath, nil
}
