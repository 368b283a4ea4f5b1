package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ParseDocument decodes a site document from JSON. The payload must pass
// structural validation; anything deeper than that is tolerated.
func ParseDocument(data []byte) (*SiteDocument, error) {
	if !ValidateRawDocument(data) {
		return nil, fmt.Errorf("parse document: %w", rawCheckError(data))
	}

	var doc SiteDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}
	return &doc, nil
}

// rawCheckError re-runs the structural checks on a decoded form of the
// payload so the caller gets the full error list, not just "invalid".
func rawCheckError(data []byte) error {
	var candidate map[string]any
	if err := json.Unmarshal(data, &candidate); err != nil {
		return err
	}
	return CheckSiteDocument(candidate).AsError()
}

// Encode serializes the document as indented JSON suitable for storage.
func (d *SiteDocument) Encode() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(d); err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	return buf.Bytes(), nil
}

// ToMap converts the document to its generic JSON map form, the shape the
// merge and validation layers operate on.
func (d *SiteDocument) ToMap() (map[string]any, error) {
	return toJSONMap(d)
}

// ToMap converts the settings to their generic JSON map form.
func (s SiteSettings) ToMap() (map[string]any, error) {
	return toJSONMap(s)
}

// DocumentFromMap decodes a generic JSON map back into a typed document.
func DocumentFromMap(m map[string]any) (*SiteDocument, error) {
	var doc SiteDocument
	if err := fromJSONMap(m, &doc); err != nil {
		return nil, fmt.Errorf("document from map: %w", err)
	}
	return &doc, nil
}

// SettingsFromMap decodes a generic JSON map back into typed settings.
func SettingsFromMap(m map[string]any) (SiteSettings, error) {
	var s SiteSettings
	if err := fromJSONMap(m, &s); err != nil {
		return SiteSettings{}, fmt.Errorf("settings from map: %w", err)
	}
	return s, nil
}

// SectionsFromAny decodes a []any of JSON objects into typed sections.
// Used by container renderers whose nested items arrive as raw props.
func SectionsFromAny(items []any) []Section {
	sections := make([]Section, 0, len(items))
	for _, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		var s Section
		if err := fromJSONMap(m, &s); err != nil {
			continue
		}
		sections = append(sections, s)
	}
	return sections
}

func toJSONMap(v any) (map[string]any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return m, nil
}

func fromJSONMap(m map[string]any, out any) error {
	data, err := json.Marshal(m)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, out)
}
