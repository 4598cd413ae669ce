package view

import "testing"

func TestFromKey(t *testing.T) {
	for i, id := range All() {
		got, ok := FromKey(string(rune('1' + i)))
		if !ok || got != id {
			t.Errorf("FromKey(%d) = %v, %v; want %v", i+1, got, ok, id)
		}
	}
	for _, k := range []string{"0", "7", "a", "12", ""} {
		if _, ok := FromKey(k); ok {
			t.Errorf("FromKey(%q) should be rejected", k)
		}
	}
}

func TestLabels(t *testing.T) {
	seen := map[string]bool{}
	for _, id := range All() {
		l := id.Label()
		if l == "Unknown" || seen[l] {
			t.Errorf("bad or duplicate label %q for %d", l, id)
		}
		seen[l] = true
	}
	if ID(42).Valid() {
		t.Error("ID(42) should be invalid")
	}
}
