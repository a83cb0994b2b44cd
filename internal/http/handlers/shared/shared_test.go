package shared

import (
	"encoding/json"
	"testing"
)

func TestParsePositiveInt(t *testing.T) {
	cases := []struct {
		raw  string
		want int
		ok   bool
	}{
		{raw: `3`, want: 3, ok: true},
		{raw: `"12"`, want: 12, ok: true},
		{raw: `" 4 "`, want: 4, ok: true},
		{raw: `0`, ok: false},
		{raw: `-1`, ok: false},
		{raw: `2.5`, ok: false},
		{raw: `"abc"`, ok: false},
		{raw: `null`, ok: false},
		{raw: ``, ok: false},
		{raw: `true`, ok: false},
	}
	for _, tc := range cases {
		got, ok := ParsePositiveInt(json.RawMessage(tc.raw))
		if ok != tc.ok || got != tc.want {
			t.Fatalf("ParsePositiveInt(%q) = %d, %v; want %d, %v", tc.raw, got, ok, tc.want, tc.ok)
		}
	}
}

func TestNormalizePagination(t *testing.T) {
	page, size := NormalizePagination(0, 0)
	if page != 1 || size != 20 {
		t.Fatalf("unexpected defaults: %d %d", page, size)
	}
	_, size = NormalizePagination(2, 500)
	if size != 100 {
		t.Fatalf("page size should be capped, got %d", size)
	}
}
