package formatting_test

import (
	"errors"
	"testing"

	"github.com/intakehq/intake/pkg/formatting"
)

type reply struct {
	Format     string  `json:"format"`
	Confidence float64 `json:"confidence"`
}

func TestParse(t *testing.T) {
	t.Run("direct JSON", func(t *testing.T) {
		got, err := formatting.Parse[reply](`{"format":"Email","confidence":0.9}`)
		if err != nil {
			t.Fatalf("Parse error: %v", err)
		}
		if got.Format != "Email" || got.Confidence != 0.9 {
			t.Errorf("Parse = %+v", got)
		}
	})

	t.Run("fenced JSON with surrounding prose", func(t *testing.T) {
		input := "The document is an email.\n```json\n{\"format\":\"Email\",\"confidence\":0.8}\n```\nLet me know if you need more."
		got, err := formatting.Parse[reply](input)
		if err != nil {
			t.Fatalf("Parse error: %v", err)
		}
		if got.Format != "Email" {
			t.Errorf("Format = %q, want Email", got.Format)
		}
	})

	t.Run("fence without language tag", func(t *testing.T) {
		input := "```\n{\"format\":\"JSON\"}\n```"
		got, err := formatting.Parse[reply](input)
		if err != nil {
			t.Fatalf("Parse error: %v", err)
		}
		if got.Format != "JSON" {
			t.Errorf("Format = %q, want JSON", got.Format)
		}
	})

	t.Run("prose only returns ErrParseFailed", func(t *testing.T) {
		_, err := formatting.Parse[reply]("I could not classify this document.")
		if !errors.Is(err, formatting.ErrParseFailed) {
			t.Errorf("error = %v, want ErrParseFailed", err)
		}
	})

	t.Run("broken JSON in fence returns ErrParseFailed", func(t *testing.T) {
		_, err := formatting.Parse[reply]("```json\n{broken\n```")
		if !errors.Is(err, formatting.ErrParseFailed) {
			t.Errorf("error = %v, want ErrParseFailed", err)
		}
	})

	t.Run("map target", func(t *testing.T) {
		got, err := formatting.Parse[map[string]any](`{"intent":"Complaint"}`)
		if err != nil {
			t.Fatalf("Parse error: %v", err)
		}
		if got["intent"] != "Complaint" {
			t.Errorf("intent = %v, want Complaint", got["intent"])
		}
	})
}

func TestParseBytes(t *testing.T) {
	tests := []struct {
		input   string
		want    int64
		wantErr bool
	}{
		{"50MB", 50 * 1024 * 1024, false},
		{"1GB", 1024 * 1024 * 1024, false},
		{"512 KB", 512 * 1024, false},
		{"10mb", 10 * 1024 * 1024, false},
		{"1024", 1024, false},
		{"", 0, true},
		{"abc", 0, true},
		{"10XB", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := formatting.ParseBytes(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseBytes(%q) = %d, want error", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseBytes(%q) error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseBytes(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}
