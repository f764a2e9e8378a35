package report

import "testing"

func TestParseParentHeader(t *testing.T) {
	num, err := ParseParentHeader("3. John SMITH was born in 1800.")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if num.Number != 3 {
		t.Errorf("expected number 3, got %d", num.Number)
	}
	if num.Token != "3." {
		t.Errorf("expected token %q, got %q", "3.", num.Token)
	}
	if num.Remainder != "John SMITH was born in 1800." {
		t.Errorf("unexpected remainder %q", num.Remainder)
	}
}

func TestParseParentHeader_NoToken(t *testing.T) {
	if _, err := ParseParentHeader("no numbering token here"); err == nil {
		t.Error("expected error for line without a token")
	}
}

func TestParseChildHeader(t *testing.T) {
	num, err := ParseChildHeader("2 i. James SMITH.")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if num.Number != 2 {
		t.Errorf("expected number 2, got %d", num.Number)
	}
	if num.BirthOrder != 1 {
		t.Errorf("expected birth order 1, got %d", num.BirthOrder)
	}
	if num.Carried {
		t.Error("expected carried=false without leading +")
	}
	if num.Remainder != "James SMITH." {
		t.Errorf("unexpected remainder %q", num.Remainder)
	}
}

func TestParseChildHeader_Carried(t *testing.T) {
	num, err := ParseChildHeader("+3 iv. Sarah SMITH.")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !num.Carried {
		t.Error("expected carried=true for leading +")
	}
	if num.Number != 3 {
		t.Errorf("expected number 3, got %d", num.Number)
	}
	if num.BirthOrder != 4 {
		t.Errorf("expected birth order 4 for iv, got %d", num.BirthOrder)
	}
}

func TestParseChildHeader_DamagedRoman(t *testing.T) {
	// OCR noise in the Roman token keeps the child but loses the order.
	num, err := ParseChildHeader("5 vx. Damaged CHILD.")
	if err == nil {
		t.Fatal("expected error for damaged roman token")
	}
	if num.Number != 5 {
		t.Errorf("expected number 5 despite damaged token, got %d", num.Number)
	}
	if num.BirthOrder != 0 {
		t.Errorf("expected birth order 0 for damaged token, got %d", num.BirthOrder)
	}
	if num.Remainder != "Damaged CHILD." {
		t.Errorf("unexpected remainder %q", num.Remainder)
	}
}

func TestParseChildHeader_NoRemainder(t *testing.T) {
	num, err := ParseChildHeader("5 ii")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if num.Number != 5 || num.BirthOrder != 2 {
		t.Errorf("expected number 5 order 2, got %d/%d", num.Number, num.BirthOrder)
	}
	if num.Remainder != "" {
		t.Errorf("expected empty remainder, got %q", num.Remainder)
	}
}

func TestRomanValue(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"i", 1},
		{"ii", 2},
		{"iii", 3},
		{"iv", 4},
		{"v", 5},
		{"ix", 9},
		{"x", 10},
		{"xiv", 14},
		{"xix", 19},
		{"xx", 20},
		{"I", 1},
		{"XI", 11},
	}
	for _, tt := range tests {
		got, err := RomanValue(tt.in)
		if err != nil {
			t.Errorf("RomanValue(%q): unexpected error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("RomanValue(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestRomanValue_Malformed(t *testing.T) {
	for _, in := range []string{"", "vx", "iiii", "vv", "abc", "il"} {
		if _, err := RomanValue(in); err == nil {
			t.Errorf("RomanValue(%q): expected error", in)
		}
	}
}
