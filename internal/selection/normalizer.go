// Package selection reconciles the historical selection encodings found
// in persisted records into one canonical representation and exposes the
// toggle operation that mutates it.
//
// Three encodings coexist in stored data:
//
//  1. key = category id, value = single item id or "none"
//  2. key = category id, value = list of item ids
//  3. legacy key = "<category id>_<index>", value = single item id
//
// Normalize merges all three losslessly. It is total and idempotent:
// every legally-encoded record maps to exactly one canonical form, and
// re-normalizing a canonical form is a no-op.
package selection

import (
	"sort"
	"strconv"
	"strings"

	"mapstack-cost/pkg/api"
)

// Normalize converts a raw persisted selection record into canonical
// form. Unrecognized keys are accepted as literal category ids rather
// than rejected, to stay compatible with records written by older and
// newer schema versions alike.
//
// Keys are processed in a stable order (category id, then legacy numeric
// suffix) so repeated loads of the same record produce identical
// canonical maps. Note the suffix rule cannot distinguish a genuinely
// numeric-suffixed category id from a legacy composite key; that
// ambiguity lives in the persisted format itself.
func Normalize(raw map[string]any) api.Canonical {
	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keyLess(keys[i], keys[j]) })

	out := make(api.Canonical)
	for _, key := range keys {
		category := key
		if base, ok := splitLegacyKey(key); ok {
			category = base
		}
		for _, id := range itemIDs(raw[key]) {
			if !out.Has(category, id) {
				out[category] = append(out[category], id)
			}
		}
	}
	return out
}

// Toggle adds or removes itemID from the category's set and returns a
// new canonical map; the input is never mutated. Removing the last item
// drops the category key, keeping "empty" and "no selection" identical.
func Toggle(c api.Canonical, categoryID, itemID string, wantSelected bool) api.Canonical {
	out := c.Clone()
	if wantSelected {
		if !out.Has(categoryID, itemID) {
			out[categoryID] = append(out[categoryID], itemID)
		}
		return out
	}
	ids := out[categoryID]
	for i, id := range ids {
		if id == itemID {
			out[categoryID] = append(append([]string(nil), ids[:i]...), ids[i+1:]...)
			break
		}
	}
	if len(out[categoryID]) == 0 {
		delete(out, categoryID)
	}
	return out
}

// splitLegacyKey detects the legacy one-item-per-key scheme: the key is
// split on its last underscore, and an all-numeric trailing segment with
// a non-empty prefix marks a composite key.
func splitLegacyKey(key string) (string, bool) {
	idx := strings.LastIndex(key, "_")
	if idx <= 0 || idx == len(key)-1 {
		return "", false
	}
	for _, r := range key[idx+1:] {
		if r < '0' || r > '9' {
			return "", false
		}
	}
	return key[:idx], true
}

// keyLess orders keys by base category id, plain keys before legacy
// suffixed ones, suffixed keys by numeric index.
func keyLess(a, b string) bool {
	baseA, idxA := splitKeyIndex(a)
	baseB, idxB := splitKeyIndex(b)
	if baseA != baseB {
		return baseA < baseB
	}
	return idxA < idxB
}

func splitKeyIndex(key string) (string, int) {
	if base, ok := splitLegacyKey(key); ok {
		idx, _ := strconv.Atoi(key[len(base)+1:])
		return base, idx
	}
	return key, -1
}

// itemIDs extracts item ids from a raw selection value. A single id,
// a list of ids, and the literal "none" are all legal; anything else is
// ignored rather than rejected.
func itemIDs(value any) []string {
	switch v := value.(type) {
	case string:
		if v == "" || strings.EqualFold(v, "none") {
			return nil
		}
		return []string{v}
	case []string:
		return v
	case []any:
		var ids []string
		for _, e := range v {
			if s, ok := e.(string); ok && s != "" {
				ids = append(ids, s)
			}
		}
		return ids
	default:
		return nil
	}
}
