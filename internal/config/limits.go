package config

const (
	// MaxPageNameLength is the maximum length of a sanitized page name.
	// Longer names are truncated by the sanitizer.
	MaxPageNameLength = 128

	// MaxPageNameInputLength caps a raw page name argument before sanitizing.
	MaxPageNameInputLength = 512

	// MaxPageTitleLength is the maximum length for page titles.
	// Limited to 255 to fit in VARCHAR(255).
	MaxPageTitleLength = 255

	// MaxPagePathLength is the maximum length for full page paths.
	MaxPagePathLength = 1024

	// MaxFieldDataFileBytes caps the size of a field data file.
	MaxFieldDataFileBytes = 8 << 20
)
