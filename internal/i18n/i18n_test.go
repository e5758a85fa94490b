package i18n

import (
	"context"
	"testing"
)

func initLang(t *testing.T, lang string) context.Context {
	t.Helper()
	if err := Init(lang); err != nil {
		t.Fatalf("Init(%q): %v", lang, err)
	}
	loc := NewLocalizer(lang)
	return WithLocalizer(context.Background(), loc)
}

func TestTranslateEnglish(t *testing.T) {
	ctx := initLang(t, "en")

	got := T(ctx, "DocumentProcessed")
	if got != "Document processed successfully." {
		t.Errorf("T(DocumentProcessed) = %q", got)
	}

	got = T(ctx, "ErrNoDocument")
	if got != "No document loaded. Upload a document first." {
		t.Errorf("T(ErrNoDocument) = %q", got)
	}
}

func TestTranslateRussian(t *testing.T) {
	ctx := initLang(t, "ru")

	got := T(ctx, "DocumentProcessed")
	if got != "Документ успешно обработан." {
		t.Errorf("T(DocumentProcessed) = %q", got)
	}
}

func TestTemplateDataTranslation(t *testing.T) {
	ctx := initLang(t, "en")

	got := Td(ctx, "QuestionProgress", map[string]any{"Index": 2, "Total": 3})
	if got != "Question 2 of 3" {
		t.Errorf("Td(QuestionProgress) = %q, want 'Question 2 of 3'", got)
	}
}

func TestMissingKey(t *testing.T) {
	ctx := initLang(t, "en")

	got := T(ctx, "NonExistentKey")
	if got != "NonExistentKey" {
		t.Errorf("T(NonExistentKey) = %q, want 'NonExistentKey'", got)
	}
}
