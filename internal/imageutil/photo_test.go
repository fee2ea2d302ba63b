package imageutil

import (
	"encoding/base64"
	"errors"
	"strings"
	"testing"

	"inkwell/internal/config"
	"inkwell/internal/domain"
)

func TestCheckSourcePhoto(t *testing.T) {
	if err := CheckSourcePhoto([]byte("jpeg bytes")); err != nil {
		t.Errorf("small photo rejected: %v", err)
	}
	if err := CheckSourcePhoto(nil); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("empty photo error = %v, want validation error", err)
	}

	atLimit := make([]byte, config.MaxPersonaPhotoSourceBytes)
	if err := CheckSourcePhoto(atLimit); err != nil {
		t.Errorf("photo at the limit rejected: %v", err)
	}
	over := make([]byte, config.MaxPersonaPhotoSourceBytes+1)
	if err := CheckSourcePhoto(over); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("oversized photo error = %v, want validation error", err)
	}
}

func TestCheckNormalizedPhoto(t *testing.T) {
	valid := base64.StdEncoding.EncodeToString([]byte("normalized jpeg"))

	tests := []struct {
		name    string
		encoded string
		wantErr bool
	}{
		{"bare base64", valid, false},
		{"data url", "data:image/jpeg;base64," + valid, false},
		{"empty", "", true},
		{"not base64", "this is !!! not base64", true},
		{"data url with no comma", "data:image/jpeg;base64" + valid, true},
		{"over the encoded ceiling", strings.Repeat("A", maxNormalizedEncodedBytes+4), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckNormalizedPhoto(tt.encoded)
			if tt.wantErr {
				if !errors.Is(err, domain.ErrValidation) {
					t.Errorf("CheckNormalizedPhoto error = %v, want validation error", err)
				}
				return
			}
			if err != nil {
				t.Errorf("CheckNormalizedPhoto rejected valid input: %v", err)
			}
		})
	}
}
