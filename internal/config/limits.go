package config

import "time"

const (
	// MaxNameLength is the maximum length for project names, folder
	// names and document base titles after sanitization. Names should
	// be short and descriptive; longer names break sidebar layouts.
	MaxNameLength = 100

	// MaxPersonaNameLength matches MaxNameLength for consistency.
	MaxPersonaNameLength = 100

	// MaxPersonaPhotoSourceBytes is the ceiling for an uploaded persona
	// photo before normalization.
	MaxPersonaPhotoSourceBytes = 2 << 20 // 2 MB

	// MaxPersonaPhotoDimension is the pixel bound the image normalizer
	// guarantees for stored persona photos.
	MaxPersonaPhotoDimension = 400

	// DefaultRemoteTimeout bounds every remote store call.
	DefaultRemoteTimeout = 15 * time.Second

	// MaxRemoteTimeout is the hard cap on the configurable remote
	// timeout. Past this point the user is better served by the local
	// fallback than by waiting.
	MaxRemoteTimeout = 30 * time.Second
)
