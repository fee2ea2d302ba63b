// Package imageutil guards the persona photo boundary. The actual
// normalization (resize to the pixel bound, re-encode) is an external
// utility; this package only enforces the documented ceilings on what
// goes in and what gets stored. The encoded payload is opaque here.
package imageutil

import (
	"encoding/base64"
	"fmt"
	"strings"

	"inkwell/internal/config"
	"inkwell/internal/domain"
)

// maxNormalizedEncodedBytes bounds the stored encoding. A 400x400 image
// re-encoded as JPEG stays far under this; anything larger means the
// normalizer was bypassed.
const maxNormalizedEncodedBytes = 512 << 10 // 512 KB

// CheckSourcePhoto validates an uploaded photo before it is handed to
// the normalizer.
func CheckSourcePhoto(data []byte) error {
	if len(data) == 0 {
		return &domain.ValidationError{Message: "photo is empty"}
	}
	if len(data) > config.MaxPersonaPhotoSourceBytes {
		return &domain.ValidationError{
			Message: fmt.Sprintf("photo exceeds %d MB limit", config.MaxPersonaPhotoSourceBytes>>20),
		}
	}
	return nil
}

// CheckNormalizedPhoto validates the encoded string the normalizer
// returned before it is stored on a persona. Accepts bare base64 or a
// data URL.
func CheckNormalizedPhoto(encoded string) error {
	if encoded == "" {
		return &domain.ValidationError{Message: "photo encoding is empty"}
	}
	if len(encoded) > maxNormalizedEncodedBytes {
		return &domain.ValidationError{Message: "normalized photo is too large"}
	}

	payload := encoded
	if strings.HasPrefix(encoded, "data:") {
		_, rest, ok := strings.Cut(encoded, ",")
		if !ok {
			return &domain.ValidationError{Message: "malformed photo data URL"}
		}
		payload = rest
	}
	if _, err := base64.StdEncoding.DecodeString(payload); err != nil {
		return &domain.ValidationError{Message: "photo is not valid base64"}
	}
	return nil
}
