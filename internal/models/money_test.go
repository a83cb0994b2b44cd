package models

import (
	"encoding/json"
	"testing"
)

func TestMoneyJSONAcceptsStringAndNumber(t *testing.T) {
	var fromNumber Money
	if err := json.Unmarshal([]byte(`79.999`), &fromNumber); err != nil {
		t.Fatalf("unmarshal number failed: %v", err)
	}
	if fromNumber.String() != "80.00" {
		t.Fatalf("number rounding want 80.00 got %s", fromNumber.String())
	}

	var fromString Money
	if err := json.Unmarshal([]byte(`"25.5"`), &fromString); err != nil {
		t.Fatalf("unmarshal string failed: %v", err)
	}
	out, err := json.Marshal(fromString)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if string(out) != `"25.50"` {
		t.Fatalf("marshal want \"25.50\" got %s", out)
	}

	var bad Money
	if err := json.Unmarshal([]byte(`"abc"`), &bad); err == nil {
		t.Fatalf("expected error for non numeric money")
	}
}

func TestMoneyMul(t *testing.T) {
	price, err := ParseMoney("79.99")
	if err != nil {
		t.Fatalf("parse money failed: %v", err)
	}
	if got := price.Mul(3).String(); got != "239.97" {
		t.Fatalf("mul want 239.97 got %s", got)
	}
	if _, err := ParseMoney("x"); err == nil {
		t.Fatalf("expected parse error")
	}
}
