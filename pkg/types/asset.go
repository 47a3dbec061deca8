package types

import "strings"

// Asset is a transient in-flight item: the bytes of a candidate brand asset
// downloaded from a scraped source, plus the free-text label it was found
// under. Assets have no identity beyond the object the store writes; they are
// discarded after upload.
type Asset struct {
	SourceLabel string
	SourceURL   string
	Bytes       []byte
	ContentType string
	Ext         string
}

// ExtFromURL guesses a file extension from a source URL, defaulting to ".jpg"
// when the URL gives no hint. Mirrors the loose extension sniffing used by
// scraped member pages, which rarely serve anything but PNG and JPEG logos.
func ExtFromURL(url string) string {
	lower := strings.ToLower(url)
	switch {
	case strings.Contains(lower, ".png"):
		return ".png"
	case strings.Contains(lower, ".svg"):
		return ".svg"
	case strings.Contains(lower, ".webp"):
		return ".webp"
	case strings.Contains(lower, ".gif"):
		return ".gif"
	default:
		return ".jpg"
	}
}

// ContentTypeForExt returns the MIME type for a known image extension.
func ContentTypeForExt(ext string) string {
	switch strings.ToLower(strings.TrimPrefix(ext, ".")) {
	case "png":
		return "image/png"
	case "svg":
		return "image/svg+xml"
	case "webp":
		return "image/webp"
	case "gif":
		return "image/gif"
	default:
		return "image/jpeg"
	}
}
