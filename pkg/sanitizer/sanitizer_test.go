package sanitizer

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "accented city", input: "Nîmes", want: "nimes"},
		{name: "surrounding spaces", input: "  Montpellier ", want: "montpellier"},
		{name: "uppercase with cedilla", input: "FRANÇOIS", want: "francois"},
		{name: "decomposed input", input: "Café", want: "cafe"},
		{name: "precomposed input", input: "Café", want: "cafe"},
		{name: "inner spaces kept", input: "Rue de la Paix", want: "rue de la paix"},
		{name: "empty string", input: "", want: ""},
		{name: "only whitespace", input: "   ", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.input); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{"Nîmes", " Éric ", "DUPONT", "Saint-Étienne", "Ærøskøbing", "İstanbul", "Café"}
	for _, in := range inputs {
		once := Normalize(in)
		twice := Normalize(once)
		if once != twice {
			t.Errorf("Normalize not idempotent for %q: %q then %q", in, once, twice)
		}
	}
}

func TestNormalizeNumber(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{input: "30000", want: "30000"},
		{input: " 30 000 ", want: "30000"},
		{input: "12 BIS", want: "12bis"},
		{input: "", want: ""},
	}

	for _, tt := range tests {
		if got := NormalizeNumber(tt.input); got != tt.want {
			t.Errorf("NormalizeNumber(%q) = %q, want %q", tt.input, got, tt.want)
		}
		if again := NormalizeNumber(NormalizeNumber(tt.input)); again != tt.want {
			t.Errorf("NormalizeNumber not idempotent for %q", tt.input)
		}
	}
}

func TestContainsFold(t *testing.T) {
	tests := []struct {
		haystack string
		needle   string
		want     bool
	}{
		{haystack: "nimes", needle: "Nîmes", want: true},
		{haystack: "Nice", needle: "Nîmes", want: false},
		{haystack: "Avenue Jean Jaurès", needle: "jaures", want: true},
		{haystack: "Avenue Jean Jaurès", needle: "", want: true},
		{haystack: "", needle: "nimes", want: false},
	}

	for _, tt := range tests {
		if got := ContainsFold(tt.haystack, tt.needle); got != tt.want {
			t.Errorf("ContainsFold(%q, %q) = %v, want %v", tt.haystack, tt.needle, got, tt.want)
		}
	}
}

func TestEqualFold(t *testing.T) {
	if !EqualFold("Éric", "eric") {
		t.Errorf("Éric and eric should match")
	}
	if !EqualFold("Dupont", "DUPONT") {
		t.Errorf("Dupont and DUPONT should match")
	}
	if EqualFold("Eric", "Erica") {
		t.Errorf("partial names must not match")
	}
}

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "french national format", input: "06 12 34 56 78", want: "+33612345678"},
		{name: "already E.164", input: "+33612345678", want: "+33612345678"},
		{name: "with dots", input: "06.12.34.56.78", want: "+33612345678"},
		{name: "empty", input: "   ", want: ""},
		{name: "garbage", input: "not-a-phone", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizePhone(tt.input); got != tt.want {
				t.Errorf("NormalizePhone(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
