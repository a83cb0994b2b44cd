package models

import (
	"encoding/json"
	"testing"
)

func TestJSONTextKeepsRawValue(t *testing.T) {
	text, err := NewJSONText(json.RawMessage(`{"street":"1 Main St","zip":"10001"}`))
	if err != nil {
		t.Fatalf("new json text failed: %v", err)
	}
	value, err := text.Value()
	if err != nil {
		t.Fatalf("value failed: %v", err)
	}
	if value != `{"street":"1 Main St","zip":"10001"}` {
		t.Fatalf("unexpected stored value: %v", value)
	}

	var scanned JSONText
	if err := scanned.Scan([]byte(`"plain address"`)); err != nil {
		t.Fatalf("scan failed: %v", err)
	}
	out, err := json.Marshal(map[string]JSONText{"shipping_address": scanned})
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if string(out) != `{"shipping_address":"plain address"}` {
		t.Fatalf("unexpected marshal output: %s", out)
	}
}

func TestJSONTextNullAndInvalid(t *testing.T) {
	empty, err := NewJSONText(json.RawMessage(`null`))
	if err != nil || !empty.IsNull() {
		t.Fatalf("null raw message should be empty, got %v %v", empty, err)
	}
	if v, _ := empty.Value(); v != nil {
		t.Fatalf("null json text should store nil, got %v", v)
	}
	if _, err := NewJSONText(json.RawMessage(`{bad`)); err == nil {
		t.Fatalf("expected invalid json error")
	}

	legacy := JSONText("not json")
	out, err := json.Marshal(legacy)
	if err != nil {
		t.Fatalf("marshal legacy failed: %v", err)
	}
	if string(out) != `"not json"` {
		t.Fatalf("legacy text should be emitted as string, got %s", out)
	}
}
