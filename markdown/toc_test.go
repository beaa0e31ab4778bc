package markdown

import (
	"reflect"
	"testing"
)

func TestExtractTOCBasic(t *testing.T) {
	got := ExtractTOC("## Hello World")
	want := []TocItem{{ID: "hello-world", Text: "Hello World", Level: 2}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ExtractTOC = %+v, want %+v", got, want)
	}
}

func TestExtractTOCLevels(t *testing.T) {
	source := "# Title\n## Two\n### Three\n#### Four\n##### Five"
	got := ExtractTOC(source)
	if len(got) != 3 {
		t.Fatalf("expected 3 entries (h2-h4 only), got %d: %+v", len(got), got)
	}
	for i, level := range []int{2, 3, 4} {
		if got[i].Level != level {
			t.Errorf("entry %d level = %d, want %d", i, got[i].Level, level)
		}
	}
}

func TestExtractTOCDuplicates(t *testing.T) {
	got := ExtractTOC("## Intro\n\ntext\n\n## Intro")
	if len(got) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(got))
	}
	if got[0].ID != "intro" || got[1].ID != "intro-1" {
		t.Errorf("duplicate ids = %q, %q; want intro, intro-1", got[0].ID, got[1].ID)
	}
}

func TestExtractTOCOrder(t *testing.T) {
	source := "## First\n### Nested\n## Second"
	got := ExtractTOC(source)
	if len(got) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(got))
	}
	want := []string{"First", "Nested", "Second"}
	for i, text := range want {
		if got[i].Text != text {
			t.Errorf("entry %d text = %q, want %q", i, got[i].Text, text)
		}
	}
}

func TestExtractTOCEmpty(t *testing.T) {
	if got := ExtractTOC("plain paragraph text\n\nno headings here"); len(got) != 0 {
		t.Errorf("expected no entries, got %+v", got)
	}
}

func TestSluggerNormalization(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Hello World", "hello-world"},
		{"  Trimmed  ", "trimmed"},
		{"Multi   Space", "multi-space"},
		{"Already-Hyphen - Mixed", "already-hyphen-mixed"},
		{"Symbols! (dropped)?", "symbols-dropped"},
		{"under_score kept", "under_score-kept"},
		{"Digits 123", "digits-123"},
		{"中文标题", "中文标题"},
		{"Go 语言入门", "go-语言入门"},
		{"!!!", ""},
	}
	for _, tt := range tests {
		if got := NewSlugger().Slug(tt.input); got != tt.want {
			t.Errorf("Slug(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestSluggerDuplicateCounter(t *testing.T) {
	s := NewSlugger()
	if got := s.Slug("Intro"); got != "intro" {
		t.Fatalf("first slug = %q, want intro", got)
	}
	if got := s.Slug("Intro"); got != "intro-1" {
		t.Errorf("second slug = %q, want intro-1", got)
	}
	if got := s.Slug("Intro"); got != "intro-2" {
		t.Errorf("third slug = %q, want intro-2", got)
	}
}
