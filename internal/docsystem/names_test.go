package docsystem

import (
	"errors"
	"strings"
	"testing"

	"inkwell/internal/domain"
)

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{
			name: "plain name",
			raw:  "Landing Page Copy",
			want: "Landing Page Copy",
		},
		{
			name: "surrounding whitespace trimmed",
			raw:  "   Q3 Campaign  ",
			want: "Q3 Campaign",
		},
		{
			name: "forbidden characters stripped",
			raw:  `Brief: "Acme" <draft>/v2`,
			want: "Brief Acme draftv2",
		},
		{
			name: "control characters stripped",
			raw:  "Hello\x00World\n",
			want: "HelloWorld",
		},
		{
			name:    "empty",
			raw:     "",
			wantErr: true,
		},
		{
			name:    "whitespace only",
			raw:     "   \t  ",
			wantErr: true,
		},
		{
			name:    "only forbidden characters",
			raw:     `///\\\***`,
			wantErr: true,
		},
		{
			name:    "over length cap",
			raw:     strings.Repeat("a", 101),
			wantErr: true,
		},
		{
			name: "exactly at length cap",
			raw:  strings.Repeat("a", 100),
			want: strings.Repeat("a", 100),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SanitizeName(tt.raw)

			if tt.wantErr {
				if err == nil {
					t.Fatalf("SanitizeName(%q) expected error, got %q", tt.raw, got)
				}
				if !errors.Is(err, domain.ErrValidation) {
					t.Errorf("SanitizeName(%q) error = %v, want ValidationError", tt.raw, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("SanitizeName(%q) unexpected error: %v", tt.raw, err)
			}
			if got != tt.want {
				t.Errorf("SanitizeName(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestSanitizeNameIdempotent(t *testing.T) {
	inputs := []string{
		"Landing Page Copy",
		"   Q3 Campaign  ",
		`Brief: "Acme" <draft>/v2`,
		"Hello\x00World\n",
		strings.Repeat("b", 100),
	}

	for _, raw := range inputs {
		once, err := SanitizeName(raw)
		if err != nil {
			t.Fatalf("SanitizeName(%q) unexpected error: %v", raw, err)
		}
		twice, err := SanitizeName(once)
		if err != nil {
			t.Fatalf("SanitizeName(SanitizeName(%q)) unexpected error: %v", raw, err)
		}
		if once != twice {
			t.Errorf("SanitizeName not idempotent for %q: first %q, second %q", raw, once, twice)
		}
	}
}
