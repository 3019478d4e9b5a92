package segment

import (
	"strings"
	"testing"
)

func TestSplit(t *testing.T) {
	s := New()

	tests := []struct {
		input    string
		expected string
	}{
		{"POSGroceryMart", "POS Grocery Mart"},
		{"coffeeshop", "coffee shop"},
		{"supermarket", "supermarket"},
		{"grocery", "grocery"},
		{"", ""},
		{"already split words", "already split words"},
		{"paymenttransfer", "payment transfer"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := s.Text(tt.input)
			if !strings.EqualFold(got, tt.expected) {
				t.Errorf("Text(%q): got %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestSplitKeepsOriginalCasing(t *testing.T) {
	s := New()
	got := s.Split("CoffeeShop")
	if len(got) != 2 {
		t.Fatalf("expected 2 words, got %v", got)
	}
	if got[0] != "Coffee" || got[1] != "Shop" {
		t.Errorf("casing not preserved: %v", got)
	}
}

func TestSplitEmptyInput(t *testing.T) {
	s := New()
	if got := s.Split(""); got != nil {
		t.Errorf("expected nil for empty input, got %v", got)
	}
	if got := s.Split("   "); got != nil {
		t.Errorf("expected nil for blank input, got %v", got)
	}
}

func TestSplitUnknownWordSurvives(t *testing.T) {
	// an unknown merchant name must not shatter into letters
	s := New()
	got := s.Split("zxqvblt")
	if len(got) != 1 || got[0] != "zxqvblt" {
		t.Errorf("unknown token should stay whole, got %v", got)
	}
}

func TestSplitNumbersStayWhole(t *testing.T) {
	s := New()
	got := s.Split("45.67")
	if len(got) != 1 || got[0] != "45.67" {
		t.Errorf("numeric token should stay whole, got %v", got)
	}
}

func TestSplitDeterministic(t *testing.T) {
	s := New()
	first := s.Text("POSGroceryMartOnline")
	for i := 0; i < 10; i++ {
		if got := s.Text("POSGroceryMartOnline"); got != first {
			t.Fatalf("nondeterministic segmentation: %q vs %q", got, first)
		}
	}
}

func TestSplitLongInput(t *testing.T) {
	s := New()
	long := strings.Repeat("grocery", 400) // well past the chunk cap
	got := s.Split(long)
	if len(got) == 0 {
		t.Fatal("expected output for long input")
	}
	for _, w := range got[:5] {
		if !strings.EqualFold(w, "grocery") {
			t.Errorf("unexpected token %q", w)
			break
		}
	}
}

func TestTiesPreferFewerWords(t *testing.T) {
	// "supermarket" is itself a dictionary word; the single-word reading
	// must beat "super" + "market"
	s := New()
	got := s.Split("supermarket")
	if len(got) != 1 {
		t.Errorf("expected single word, got %v", got)
	}
}
