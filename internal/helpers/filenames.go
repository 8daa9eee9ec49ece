package helpers

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	unsafeArchiveChars = regexp.MustCompile(`[/\\?%*:|"<>]`)
	whitespaceRuns     = regexp.MustCompile(`\s+`)
	unsafeBlobChars    = regexp.MustCompile(`[^a-zA-Z0-9._-]`)
)

// SafeFileName makes a name safe for archive entries and download filenames.
func SafeFileName(name string) string {
	base := unsafeArchiveChars.ReplaceAllString(name, "_")
	base = whitespaceRuns.ReplaceAllString(base, " ")
	base = strings.TrimSpace(base)
	if base == "" {
		return "file"
	}
	return base
}

// SanitizeBlobFileName strips everything outside [A-Za-z0-9._-] for use in a
// blob path segment.
func SanitizeBlobFileName(name string) string {
	return unsafeBlobChars.ReplaceAllString(name, "_")
}

// ExtFromContentType maps the media content types the gallery accepts onto a
// file extension, for entries whose name carries none.
func ExtFromContentType(contentType string) string {
	s := strings.ToLower(contentType)
	switch {
	case strings.Contains(s, "image/jpeg"):
		return ".jpg"
	case strings.Contains(s, "image/png"):
		return ".png"
	case strings.Contains(s, "image/gif"):
		return ".gif"
	case strings.Contains(s, "image/webp"):
		return ".webp"
	case strings.Contains(s, "video/mp4"):
		return ".mp4"
	case strings.Contains(s, "video/quicktime"):
		return ".mov"
	}
	return ""
}

// UniqueName resolves archive entry-name collisions by suffixing _2, _3, ...
// before the extension, scanning upward until an unused name is found.
func UniqueName(used map[string]struct{}, desired string) string {
	if _, taken := used[desired]; !taken {
		used[desired] = struct{}{}
		return desired
	}

	stem, ext := desired, ""
	if dot := strings.LastIndex(desired, "."); dot > 0 {
		stem, ext = desired[:dot], desired[dot:]
	}

	for i := 2; ; i++ {
		next := fmt.Sprintf("%s_%d%s", stem, i, ext)
		if _, taken := used[next]; !taken {
			used[next] = struct{}{}
			return next
		}
	}
}
