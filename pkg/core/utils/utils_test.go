package utils

import (
	"testing"
)

func TestStripCodeFence(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"json fence", "```json\n{\"price\": 1}\n```", `{"price": 1}`},
		{"bare fence", "```\n{\"price\": 2}\n```", `{"price": 2}`},
		{"prose around fence", "Here is the data:\n\n```json\n{\"a\": 1}\n```\nHope it helps.", `{"a": 1}`},
		{"no fence", "  {\"a\": 1}  ", `{"a": 1}`},
		{"unterminated fence", "```json\n{\"a\": 1}", `{"a": 1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripCodeFence(tt.input); got != tt.want {
				t.Errorf("StripCodeFence() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSmartParse(t *testing.T) {
	t.Run("plain object", func(t *testing.T) {
		var out map[string]interface{}
		if err := SmartParse(`{"price": 10.5, "roe": null}`, &out); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out["price"] != 10.5 {
			t.Errorf("price = %v, want 10.5", out["price"])
		}
	})

	t.Run("trailing comma is repaired", func(t *testing.T) {
		var out map[string]interface{}
		if err := SmartParse("```json\n{\"price\": 3, \"sma50\": 4,}\n```", &out); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out["sma50"] != float64(4) {
			t.Errorf("sma50 = %v, want 4", out["sma50"])
		}
	})

	t.Run("no object", func(t *testing.T) {
		var out map[string]interface{}
		if err := SmartParse("I could not find that ticker.", &out); err == nil {
			t.Fatal("expected error for response without an object")
		}
	})
}

func TestExtractObject(t *testing.T) {
	got, ok := ExtractObject("Sure! {\"a\": {\"b\": 1}} done")
	if !ok || got != `{"a": {"b": 1}}` {
		t.Errorf("ExtractObject() = %q, %v", got, ok)
	}
	if _, ok := ExtractObject("[1, 2, 3]"); ok {
		t.Error("expected arrays to be rejected")
	}
}
