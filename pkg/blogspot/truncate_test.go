package blogspot

import "testing"

func TestAC510_Truncate_NonPositiveLengthKeepsText(t *testing.T) {
	for _, n := range []int{0, -1, -100} {
		if got := Truncate("the quick brown fox", n); got != "the quick brown fox" {
			t.Errorf("n=%d: expected text unchanged, got %q", n, got)
		}
	}
	if got := Truncate("", 0); got != "" {
		t.Errorf("expected empty text to stay empty, got %q", got)
	}
}

func TestAC510_Truncate_ShortTextUnchanged(t *testing.T) {
	testCases := []struct {
		text string
		n    int
	}{
		{"short", 5},
		{"short", 50},
		{"a b", 3},
	}

	for _, tc := range testCases {
		if got := Truncate(tc.text, tc.n); got != tc.text {
			t.Errorf("Truncate(%q, %d): expected unchanged, got %q", tc.text, tc.n, got)
		}
	}
}

func TestAC511_Truncate_CutsAtWordBoundary(t *testing.T) {
	testCases := []struct {
		name string
		text string
		n    int
		want string
	}{
		{"space right after cut", "the quick brown fox", 9, "the quick"},
		{"space at cut position", "the quick brown fox", 4, "the"},
		{"extends to next space", "the quickbrown fox", 9, "the quickbrown"},
		{"no later space", "nospaceshereatall", 5, "nospaceshereatall"},
		{"trims leading space", "  a bcd", 3, "a"},
		{"counts characters not bytes", "héllo wörld again", 3, "héllo"},
		{"empty text", "", 5, ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Truncate(tc.text, tc.n); got != tc.want {
				t.Errorf("Truncate(%q, %d) = %q, want %q", tc.text, tc.n, got, tc.want)
			}
		})
	}
}
