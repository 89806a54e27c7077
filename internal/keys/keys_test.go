package keys

import "testing"

func TestID(t *testing.T) {
	cases := map[string]string{
		"Fire Fang":   "fire_fang",
		" fire-fang ": "fire_fang",
		"fire_fang":   "fire_fang",
		"":            "",
		"PUDDLEFIN":   "puddlefin",
	}
	for in, want := range cases {
		if got := ID(in); got != want {
			t.Fatalf("ID(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestTypeSetKeyIgnoresOrder(t *testing.T) {
	a := TypeSetKey([]string{"Rock", "water"})
	b := TypeSetKey([]string{"water", "", "rock"})
	if a != b || a != "rock+water" {
		t.Fatalf("expected rock+water for both, got %q and %q", a, b)
	}
	if got := MatchupKey("Fire", []string{"water", "rock"}); got != "fire>rock+water" {
		t.Fatalf("unexpected matchup key %q", got)
	}
}
