package annotate

import "testing"

func TestNormalizePhrase(t *testing.T) {
	cases := []struct{ in, want string }{
		{"  Peanut   Butter ", "peanut butter"},
		{"'by and large'", "by and large"},
		{"LOOK UP!", "look up"},
	}
	for _, tc := range cases {
		if got := NormalizePhrase(tc.in); got != tc.want {
			t.Errorf("NormalizePhrase(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestNormalizePhraseSet_DropsSingleWordEntries(t *testing.T) {
	set := map[string]struct{}{
		"peanut butter": {},
		"sandwich":      {},
	}
	phrases := NormalizePhraseSet(set)
	if len(phrases) != 1 {
		t.Fatalf("expected 1 multi-word phrase, got %d", len(phrases))
	}
	if phrases[0].Norm != "peanut butter" {
		t.Fatalf("unexpected phrase %q", phrases[0].Norm)
	}
}

func TestIsStudiedPhrase_ExactAndTokenEquality(t *testing.T) {
	studied := NormalizePhraseSet(map[string]struct{}{"peanut butter": {}})

	if !IsStudiedPhrase("Peanut Butter", studied) {
		t.Fatal("expected case-insensitive match")
	}
	if !IsStudiedPhrase("peanut  butter", studied) {
		t.Fatal("expected whitespace-collapsed match")
	}
	if IsStudiedPhrase("almond butter", studied) {
		t.Fatal("unexpected match for different phrase")
	}
}

func TestIsStudiedPhrase_ContainmentBothDirections(t *testing.T) {
	studied := NormalizePhraseSet(map[string]struct{}{"peanut butter sandwich": {}})
	// Candidate contained in studied tokens.
	if !IsStudiedPhrase("peanut butter", studied) {
		t.Fatal("expected contiguous-subsequence match (candidate ⊂ studied)")
	}
	// Studied tokens contained in candidate.
	studied = NormalizePhraseSet(map[string]struct{}{"peanut butter": {}})
	if !IsStudiedPhrase("crunchy peanut butter sandwich", studied) {
		t.Fatal("expected contiguous-subsequence match (studied ⊂ candidate)")
	}
	// Non-contiguous overlap must not match.
	if IsStudiedPhrase("peanut crunchy butter", studied) {
		t.Fatal("unexpected match for non-contiguous tokens")
	}
}
