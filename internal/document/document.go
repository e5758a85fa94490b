// Package document loads and validates document text supplied to the
// assistant.
package document

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

const (
	// MaxFileSize caps uploads at 10 MB.
	MaxFileSize = 10 << 20
	// MinTextLen is the minimum trimmed length for a usable document.
	MinTextLen = 50
)

var supportedExts = map[string]bool{
	".txt": true,
	".md":  true,
}

// ValidateText checks that text is long enough to work with. Callers of
// the core are expected to have run this before any assistant call.
func ValidateText(text string) error {
	if len(strings.TrimSpace(text)) < MinTextLen {
		return fmt.Errorf("document is too short: need at least %d characters of content", MinTextLen)
	}
	return nil
}

// Load reads a .txt or .md file and returns its decoded text. Files
// that are not valid UTF-8 are re-decoded as Latin-1 before giving up.
func Load(path string) (string, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if !supportedExts[ext] {
		return "", fmt.Errorf("unsupported file format %q: only .txt and .md are accepted", ext)
	}

	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("stat %s: %w", path, err)
	}
	if info.Size() > MaxFileSize {
		return "", fmt.Errorf("%s is too large: maximum size is %d MB", path, MaxFileSize>>20)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}

	text := string(data)
	if !utf8.ValidString(text) {
		decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
		if err != nil {
			return "", fmt.Errorf("decode %s: %w", path, err)
		}
		text = string(decoded)
	}

	if err := ValidateText(text); err != nil {
		return "", err
	}
	return text, nil
}
