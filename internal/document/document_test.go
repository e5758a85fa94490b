package document

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeTemp(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	return path
}

func TestValidateText(t *testing.T) {
	if err := ValidateText(strings.Repeat("x", MinTextLen)); err != nil {
		t.Errorf("ValidateText rejected text of exactly %d chars: %v", MinTextLen, err)
	}
	if err := ValidateText("too short"); err == nil {
		t.Error("ValidateText should reject short text")
	}
	if err := ValidateText(strings.Repeat(" ", 100)); err == nil {
		t.Error("ValidateText should reject whitespace-only text")
	}
}

func TestLoad(t *testing.T) {
	content := "This is a perfectly reasonable document with enough text to process."

	t.Run("txt file", func(t *testing.T) {
		path := writeTemp(t, "doc.txt", []byte(content))
		got, err := Load(path)
		if err != nil {
			t.Fatalf("Load() error: %v", err)
		}
		if got != content {
			t.Errorf("Load() = %q", got)
		}
	})

	t.Run("md file", func(t *testing.T) {
		path := writeTemp(t, "notes.md", []byte("# Heading\n\n"+content))
		if _, err := Load(path); err != nil {
			t.Errorf("Load() error: %v", err)
		}
	})

	t.Run("unsupported extension", func(t *testing.T) {
		path := writeTemp(t, "doc.pdf", []byte(content))
		if _, err := Load(path); err == nil {
			t.Error("Load should reject unsupported extensions")
		}
	})

	t.Run("too short", func(t *testing.T) {
		path := writeTemp(t, "tiny.txt", []byte("hello"))
		if _, err := Load(path); err == nil {
			t.Error("Load should reject documents under the minimum length")
		}
	})

	t.Run("missing file", func(t *testing.T) {
		if _, err := Load(filepath.Join(t.TempDir(), "absent.txt")); err == nil {
			t.Error("Load should fail on a missing file")
		}
	})

	t.Run("latin-1 fallback", func(t *testing.T) {
		// 0xE9 is 'é' in Latin-1 but invalid as a standalone UTF-8 byte.
		data := append([]byte("R\xe9sum\xe9 of the study follows. "), []byte(content)...)
		path := writeTemp(t, "latin1.txt", data)
		got, err := Load(path)
		if err != nil {
			t.Fatalf("Load() error: %v", err)
		}
		if !strings.Contains(got, "Résumé") {
			t.Errorf("Latin-1 bytes should decode to é: %q", got[:20])
		}
	})
}
