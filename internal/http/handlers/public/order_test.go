package public

import (
	"encoding/json"
	"testing"
)

func TestParseOrderPrice(t *testing.T) {
	cases := []struct {
		raw  string
		want string
		ok   bool
	}{
		{raw: `349.99`, want: "349.99", ok: true},
		{raw: `"12.5"`, want: "12.50", ok: true},
		{raw: `" 7 "`, want: "7.00", ok: true},
		{raw: `"abc"`, ok: false},
		{raw: `true`, ok: false},
		{raw: `{"amount":1}`, ok: false},
		{raw: `null`, ok: true},
		{raw: ``, ok: true},
	}
	for _, tc := range cases {
		price, ok := parseOrderPrice(json.RawMessage(tc.raw))
		if ok != tc.ok {
			t.Fatalf("parseOrderPrice(%q) ok want %v got %v", tc.raw, tc.ok, ok)
		}
		if tc.want == "" {
			if price != nil {
				t.Fatalf("parseOrderPrice(%q) want nil price, got %s", tc.raw, price.String())
			}
			continue
		}
		if price == nil || price.String() != tc.want {
			t.Fatalf("parseOrderPrice(%q) want %s got %v", tc.raw, tc.want, price)
		}
	}
}

func TestNormalizeShippingAddress(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{raw: `{"street":"1 Main St"}`, want: `{"street":"1 Main St"}`},
		{raw: ` "{\"city\":\"Berlin\"}" `, want: `{"city":"Berlin"}`},
		{raw: `"221B Baker Street"`, want: `"221B Baker Street"`},
		{raw: `null`, want: ``},
		{raw: ``, want: ``},
	}
	for _, tc := range cases {
		got := normalizeShippingAddress(json.RawMessage(tc.raw))
		if string(got) != tc.want {
			t.Fatalf("normalizeShippingAddress(%q) want %q got %q", tc.raw, tc.want, string(got))
		}
	}
}
