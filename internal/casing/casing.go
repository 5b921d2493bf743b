// Package casing rewrites map keys between the snake_case convention used on
// the wire and the camelCase convention the SDK exposes to callers. The walk
// covers the closed set of decoded JSON shapes: maps, slices and scalars.
//
// The single-key transform is positional, not dictionary based, so the two
// functions invert each other for ordinary identifiers. Known limitation:
// keys with digit-adjacent segments (for example "addr1" vs "addr_1") do not
// round-trip.
package casing

import "github.com/iancoleman/strcase"

// SnakeKeys returns a copy of v with every map key converted to snake_case at
// every nesting level. Non-map, non-slice values pass through unchanged,
// including nil.
func SnakeKeys(v any) any {
	return rewriteKeys(v, strcase.ToSnake)
}

// CamelKeys is the inverse walk: every map key is converted to lowerCamelCase.
func CamelKeys(v any) any {
	return rewriteKeys(v, strcase.ToLowerCamel)
}

func rewriteKeys(v any, transform func(string) string) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for key, child := range val {
			out[transform(key)] = rewriteKeys(child, transform)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, child := range val {
			out[i] = rewriteKeys(child, transform)
		}
		return out
	default:
		return v
	}
}
