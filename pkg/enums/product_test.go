package enums

import "testing"

func TestParseProductStatus(t *testing.T) {
	for _, raw := range []string{"available", "sold"} {
		got, err := ParseProductStatus(raw)
		if err != nil {
			t.Fatalf("parse %q: %v", raw, err)
		}
		if got.String() != raw || !got.IsValid() {
			t.Fatalf("unexpected status %q", got)
		}
	}

	for _, raw := range []string{"", "published", "Sold", "archived"} {
		if _, err := ParseProductStatus(raw); err == nil {
			t.Fatalf("expected error for %q", raw)
		}
	}
}
