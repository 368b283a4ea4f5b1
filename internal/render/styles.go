package render

import (
	"regexp"

	"github.com/dshills/siteforge/internal/render/core"
	"github.com/dshills/siteforge/internal/schema"
)

// Section styles arrive as an open map edited as free-form JSON. Known
// keys resolve to concrete CSS values; unrecognized keys are ignored,
// never errors.

var spacingTokens = map[string]string{
	"none": "0",
	"sm":   "8px",
	"md":   "16px",
	"lg":   "32px",
	"xl":   "64px",
}

var widthTokens = map[string]string{
	"narrow": "640px",
	"normal": "960px",
	"wide":   "1200px",
	"full":   "100%",
}

// cssValue matches plain dimension lists like "12px", "1rem 2rem", "5%".
var cssValue = regexp.MustCompile(`^[0-9][0-9a-z%. ]*$`)

// ResolveStyles turns a raw styles map into concrete presentation values.
func ResolveStyles(styles map[string]any) core.Styles {
	if len(styles) == 0 {
		return core.Styles{}
	}
	return core.Styles{
		Padding:    spacing(styles, "padding"),
		Margin:     spacing(styles, "margin"),
		Background: background(styles),
		MaxWidth:   maxWidth(styles),
		TextAlign:  textAlign(styles),
	}
}

func spacing(styles map[string]any, key string) string {
	raw, _ := styles[key].(string)
	if raw == "" {
		return ""
	}
	if v, ok := spacingTokens[raw]; ok {
		return v
	}
	if cssValue.MatchString(raw) {
		return raw
	}
	return ""
}

func background(styles map[string]any) string {
	raw, _ := styles["background"].(string)
	if raw == "" {
		return ""
	}
	if raw == "transparent" {
		return raw
	}
	if schema.ValidColor(raw) {
		return raw
	}
	return ""
}

func maxWidth(styles map[string]any) string {
	raw, _ := styles["max_width"].(string)
	if raw == "" {
		return ""
	}
	if v, ok := widthTokens[raw]; ok {
		return v
	}
	if cssValue.MatchString(raw) {
		return raw
	}
	return ""
}

func textAlign(styles map[string]any) string {
	raw, _ := styles["text_align"].(string)
	switch raw {
	case "left", "center", "right", "justify":
		return raw
	default:
		return ""
	}
}
