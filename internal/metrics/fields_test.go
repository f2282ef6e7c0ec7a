package metrics

import "testing"

func TestMetricAttributeKeysAreDistinct(t *testing.T) {
	seen := map[string]bool{}
	for _, key := range []string{AttrMethod, AttrPath, AttrStatus, AttrSource, AttrTable, AttrKind} {
		if key == "" || seen[key] {
			t.Fatalf("metric attribute key %q is empty or duplicated", key)
		}
		seen[key] = true
	}
}
