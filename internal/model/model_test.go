package model

import "testing"

func strPtr(s string) *string { return &s }

func TestParseSkill(t *testing.T) {
	cases := []struct {
		name string
		in   *string
		want float64
	}{
		{"bracketed", strPtr("[16.66]"), 16.66},
		{"uncertainty suffix", strPtr("25.3 (±1.2)"), 25.3},
		{"plain", strPtr("42"), 42},
		{"integer with decoration", strPtr("~30 est"), 30},
		{"nil", nil, 0},
		{"empty", strPtr(""), 0},
		{"no digits", strPtr("unrated"), 0},
		{"trailing dot", strPtr("12."), 12},
	}
	for _, c := range cases {
		if got := ParseSkill(c.in); got != c.want {
			t.Errorf("%s: ParseSkill(%v) = %v, want %v", c.name, c.in, got, c.want)
		}
	}
}

func TestParsePreset(t *testing.T) {
	for _, s := range []string{"duel", "team", "ffa", "all"} {
		p, err := ParsePreset(s)
		if err != nil {
			t.Fatalf("ParsePreset(%q): %v", s, err)
		}
		if p.String() != s {
			t.Errorf("round trip %q → %q", s, p.String())
		}
	}
	if _, err := ParsePreset("ranked"); err == nil {
		t.Error("expected error for unknown preset")
	}
}

func TestPresetValues(t *testing.T) {
	got := PresetAll.Values()
	want := []string{"duel", "ffa", "team"}
	if len(got) != len(want) {
		t.Fatalf("PresetAll.Values() = %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("PresetAll.Values()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
	if v := PresetDuel.Values(); len(v) != 1 || v[0] != "duel" {
		t.Errorf("PresetDuel.Values() = %v", v)
	}
}
