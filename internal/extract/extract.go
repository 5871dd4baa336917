// Package extract turns note files into raw text. Plain-text and markdown
// files are read as-is; Word documents are unpacked and stripped to their
// paragraph text. A file whose content is empty or whitespace-only is a
// distinguishable outcome (ErrEmptyFile), not a hard failure, because the
// file processor short-circuits on it.
package extract

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var (
	// ErrEmptyFile marks a readable file with no usable text content.
	ErrEmptyFile = errors.New("file is empty")
	// ErrUnsupportedFormat marks a file extension the extractor cannot handle.
	ErrUnsupportedFormat = errors.New("unsupported file format")
)

// Error wraps an extraction failure with the offending path.
type Error struct {
	Path string
	Err  error
}

func (e *Error) Error() string { return fmt.Sprintf("extract %s: %v", e.Path, e.Err) }

func (e *Error) Unwrap() error { return e.Err }

// SupportedExtensions lists the file extensions Text accepts, lowercase
// with leading dot. The file-open dialog in the UI layer filters on these.
func SupportedExtensions() []string {
	return []string{".txt", ".md", ".markdown", ".docx"}
}

// Text reads the file at path and returns its plain-text content.
// It fails with ErrEmptyFile (wrapped) when the content is whitespace-only
// and ErrUnsupportedFormat (wrapped) for unknown extensions.
func Text(path string) (string, error) {
	var (
		text string
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt", ".md", ".markdown":
		text, err = plainText(path)
	case ".docx":
		text, err = docxText(path)
	default:
		err = ErrUnsupportedFormat
	}
	if err != nil {
		return "", &Error{Path: path, Err: err}
	}
	if strings.TrimSpace(text) == "" {
		return "", &Error{Path: path, Err: ErrEmptyFile}
	}
	return text, nil
}

func plainText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
