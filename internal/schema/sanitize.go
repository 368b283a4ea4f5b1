package schema

import (
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/lucasb-eyer/go-colorful"
)

// FallbackColor is returned by SanitizeColor for anything that is not a
// well-formed hex color.
const FallbackColor = "#000000"

// ClampString trims surrounding whitespace and truncates the result to at
// most max bytes, never splitting a multi-byte rune. A non-positive max
// returns the trimmed string unchanged.
func ClampString(s string, max int) string {
	s = strings.TrimSpace(s)
	if max <= 0 || len(s) <= max {
		return s
	}
	for max > 0 && !utf8.RuneStart(s[max]) {
		max--
	}
	return s[:max]
}

// SanitizeURL accepts a URL only when its scheme is http or https;
// everything else (including javascript: and data: schemes) collapses to
// the empty string.
func SanitizeURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	switch u.Scheme {
	case "http", "https":
		return raw
	default:
		return ""
	}
}

// SanitizeColor accepts #RGB and #RRGGBB hex colors and returns the input
// unchanged; anything else returns FallbackColor.
func SanitizeColor(raw string) string {
	if ValidColor(raw) {
		return raw
	}
	return FallbackColor
}

// ValidColor reports whether raw is a #RGB or #RRGGBB hex color.
func ValidColor(raw string) bool {
	if len(raw) != 4 && len(raw) != 7 {
		return false
	}
	_, err := colorful.Hex(raw)
	return err == nil
}
