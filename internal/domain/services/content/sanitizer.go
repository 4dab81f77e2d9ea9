package content

// Sanitizer applies the store's naming rule to page path segments.
type Sanitizer interface {
	PageName(raw string) string
}
