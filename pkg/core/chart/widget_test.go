package chart

import (
	"errors"
	"testing"
)

func TestNewWidget(t *testing.T) {
	w, err := NewWidget(" msft ")
	if err != nil {
		t.Fatalf("NewWidget() error: %v", err)
	}
	if w.Symbol != "MSFT" || w.Interval != "D" || w.Theme != "dark" || w.Height != 510 {
		t.Errorf("unexpected widget %+v", w)
	}
	if w.AllowSymbolChange || w.EnablePublishing {
		t.Error("symbol change and publishing must be disabled")
	}

	other, _ := NewWidget("AAPL")
	if other == w {
		t.Error("each selection must get a fresh widget")
	}
}

func TestNewWidgetEmpty(t *testing.T) {
	if _, err := NewWidget("  "); !errors.Is(err, ErrNoSymbol) {
		t.Errorf("expected ErrNoSymbol, got %v", err)
	}
}
