package schema

import "github.com/tidwall/gjson"

// ValidateSiteDocument reports whether a candidate document is structurally
// sound: a site_settings object with a non-empty name and a theme carrying a
// non-empty primary color, and a sections value that is an array (possibly
// empty).
//
// Validation is shallow on purpose. It does not check that section types
// are known to the registry or that props match a per-type shape; the
// editing surface accepts partially-wrong JSON, and the resolver degrades
// per section instead of the document hard-failing.
func ValidateSiteDocument(candidate map[string]any) bool {
	return !CheckSiteDocument(candidate).HasErrors()
}

// CheckSiteDocument runs the same structural checks as ValidateSiteDocument
// but collects every failure for user-visible reporting.
func CheckSiteDocument(candidate map[string]any) *ValidationErrors {
	errs := &ValidationErrors{}
	if candidate == nil {
		errs.Add("", "document is not an object")
		return errs
	}

	settings, ok := candidate["site_settings"].(map[string]any)
	if !ok {
		errs.AddWithValue("site_settings", "missing or not an object", candidate["site_settings"])
	} else {
		if name, _ := settings["name"].(string); name == "" {
			errs.Add("site_settings.name", "must be a non-empty string")
		}
		theme, ok := settings["theme"].(map[string]any)
		if !ok {
			errs.AddWithValue("site_settings.theme", "missing or not an object", settings["theme"])
		} else if primary, _ := theme["primary"].(string); primary == "" {
			errs.Add("site_settings.theme.primary", "must be a non-empty string")
		}
	}

	if _, ok := candidate["sections"].([]any); !ok {
		errs.AddWithValue("sections", "must be an array", candidate["sections"])
	}
	return errs
}

// ValidateSection reports whether a candidate section has a non-empty
// string id, a non-empty string type, and an object props value. Arrays
// and primitives are not valid props.
func ValidateSection(candidate map[string]any) bool {
	return !CheckSection(candidate).HasErrors()
}

// CheckSection collects structural failures for one section candidate.
func CheckSection(candidate map[string]any) *ValidationErrors {
	errs := &ValidationErrors{}
	if candidate == nil {
		errs.Add("", "section is not an object")
		return errs
	}
	if id, _ := candidate["id"].(string); id == "" {
		errs.Add("id", "must be a non-empty string")
	}
	if typ, _ := candidate["type"].(string); typ == "" {
		errs.Add("type", "must be a non-empty string")
	}
	props, present := candidate["props"]
	if !present {
		errs.Add("props", "missing")
	} else if _, ok := props.(map[string]any); !ok {
		errs.AddWithValue("props", "must be an object", props)
	}
	return errs
}

// ValidateRawDocument screens a raw JSON payload without decoding it.
// Used at the store boundary where documents arrive as untrusted bytes.
func ValidateRawDocument(data []byte) bool {
	if !gjson.ValidBytes(data) {
		return false
	}
	doc := gjson.ParseBytes(data)
	if !doc.IsObject() {
		return false
	}
	if doc.Get("site_settings.name").String() == "" {
		return false
	}
	if doc.Get("site_settings.theme.primary").String() == "" {
		return false
	}
	return doc.Get("sections").IsArray()
}
