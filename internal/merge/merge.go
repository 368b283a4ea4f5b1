// Package merge provides structural merge and dotted-path operations over
// the map-shaped documents the builder edits.
//
// The merge rule is explicit: values present in the overlay win; values only
// present in the base survive; maps are merged field by field; every other
// type is replaced wholesale. Slices are never merged element-wise because a
// sections array is an ordered unit, not a set.
package merge

import "strings"

// Deep merges overlay into a copy of base and returns the result.
// Neither input is modified.
func Deep(base, overlay map[string]any) map[string]any {
	result := CloneMap(base)
	if result == nil {
		result = make(map[string]any)
	}
	return mergeInto(result, overlay)
}

// mergeInto merges overlay into dst in place. dst must not be nil.
func mergeInto(dst, overlay map[string]any) map[string]any {
	for key, overVal := range overlay {
		baseVal, exists := dst[key]
		if !exists {
			dst[key] = CloneValue(overVal)
			continue
		}

		overMap, overIsMap := overVal.(map[string]any)
		baseMap, baseIsMap := baseVal.(map[string]any)
		if overIsMap && baseIsMap {
			dst[key] = mergeInto(baseMap, overMap)
		} else {
			dst[key] = CloneValue(overVal)
		}
	}
	return dst
}

// CloneMap returns a deep copy of m, or nil if m is nil.
func CloneMap(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	result := make(map[string]any, len(m))
	for k, v := range m {
		result[k] = CloneValue(v)
	}
	return result
}

// CloneSlice returns a deep copy of s, or nil if s is nil.
func CloneSlice(s []any) []any {
	if s == nil {
		return nil
	}
	result := make([]any, len(s))
	for i, v := range s {
		result[i] = CloneValue(v)
	}
	return result
}

// CloneValue deep-copies maps and slices; scalars are returned as-is.
func CloneValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		return CloneMap(val)
	case []any:
		return CloneSlice(val)
	default:
		return v
	}
}

// GetByPath retrieves a value from a nested map using a dot-separated path.
func GetByPath(data map[string]any, path string) (any, bool) {
	if data == nil || path == "" {
		return nil, false
	}

	current := any(data)
	for _, part := range strings.Split(path, ".") {
		m, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		val, exists := m[part]
		if !exists {
			return nil, false
		}
		current = val
	}
	return current, true
}

// SetByPath sets a value in a nested map using a dot-separated path,
// creating intermediate maps as needed. A non-map value in the middle of
// the path is replaced by a map.
func SetByPath(data map[string]any, path string, value any) {
	if data == nil || path == "" {
		return
	}

	parts := strings.Split(path, ".")
	current := data
	for _, part := range parts[:len(parts)-1] {
		next, ok := current[part].(map[string]any)
		if !ok {
			next = make(map[string]any)
			current[part] = next
		}
		current = next
	}
	current[parts[len(parts)-1]] = value
}

// DiffPaths reports the dotted paths that differ between two maps.
func DiffPaths(old, new map[string]any) (added, modified, removed []string) {
	oldFlat := flatten(old)
	newFlat := flatten(new)

	for path, newVal := range newFlat {
		if oldVal, exists := oldFlat[path]; exists {
			if !Equal(oldVal, newVal) {
				modified = append(modified, path)
			}
		} else {
			added = append(added, path)
		}
	}
	for path := range oldFlat {
		if _, exists := newFlat[path]; !exists {
			removed = append(removed, path)
		}
	}
	return added, modified, removed
}

func flatten(data map[string]any) map[string]any {
	result := make(map[string]any)
	flattenInto(data, "", result)
	return result
}

func flattenInto(data map[string]any, prefix string, result map[string]any) {
	for key, val := range data {
		fullKey := key
		if prefix != "" {
			fullKey = prefix + "." + key
		}
		if nested, ok := val.(map[string]any); ok {
			flattenInto(nested, fullKey, result)
		} else {
			result[fullKey] = val
		}
	}
}

// Equal compares two document values structurally.
func Equal(a, b any) bool {
	if a == nil && b == nil {
		return true
	}
	if a == nil || b == nil {
		return false
	}

	switch va := a.(type) {
	case map[string]any:
		vb, ok := b.(map[string]any)
		if !ok || len(va) != len(vb) {
			return false
		}
		for k, v := range va {
			other, exists := vb[k]
			if !exists || !Equal(v, other) {
				return false
			}
		}
		return true
	case []any:
		vb, ok := b.([]any)
		if !ok || len(va) != len(vb) {
			return false
		}
		for i := range va {
			if !Equal(va[i], vb[i]) {
				return false
			}
		}
		return true
	default:
		return a == b
	}
}
