package heurisko

import (
	"testing"
	"unicode"
)

func TestNormalize(t *testing.T) {
	cases := map[string]string{
		"Hello, World!": "helloworld",
		"1 John 3:10":   "1john310",
		"":               "",
		"---":            "",
	}
	for in, want := range cases {
		if got := Normalize(in); got != want {
			t.Errorf("Normalize(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestNormalizeProperties(t *testing.T) {
	inputs := []string{"Hello, World!", "ABC123", "", "!!!"}
	for _, in := range inputs {
		out := Normalize(in)
		if len(out) > len(in) {
			t.Errorf("Normalize(%q) grew in length: %q", in, out)
		}
		for _, r := range out {
			if !unicode.IsLower(r) && !unicode.IsDigit(r) && !(r >= 'A' && r <= 'Z') {
				t.Errorf("Normalize(%q) produced unexpected rune %q", in, r)
			}
		}
		if twice := Normalize(out); twice != out {
			t.Errorf("Normalize not idempotent for %q: Normalize(%q) = %q", in, out, twice)
		}
	}
}

func TestNormalizeNonASCIILetterSurvivesUncased(t *testing.T) {
	// Matches the source system: unicode-aware alphanumeric filter, but
	// only ASCII letters are case-folded.
	if got := Normalize("École"); got != "École" {
		t.Errorf("Normalize(%q) = %q, want %q", "École", got, "École")
	}
}
