package models

import "testing"

func TestRequiredLines(t *testing.T) {
	cases := []struct {
		rule RuleType
		want int
	}{
		{RuleQuine, 1},
		{RuleDoubleQuine, 2},
		{RuleFullCard, 3},
	}
	for _, tc := range cases {
		if got := tc.rule.RequiredLines(); got != tc.want {
			t.Errorf("%s: required lines = %d, want %d", tc.rule, got, tc.want)
		}
	}
}

func TestRuleValid(t *testing.T) {
	for _, r := range []RuleType{RuleQuine, RuleDoubleQuine, RuleFullCard} {
		if !r.Valid() {
			t.Errorf("%s should be valid", r)
		}
	}
	if RuleType("bingo").Valid() {
		t.Error("unknown rule should be invalid")
	}
}

func TestFreezeUnfreeze(t *testing.T) {
	var game Game
	game.Freeze(12)
	if !game.IsFrozen || game.FreezeOrderIndex == nil || *game.FreezeOrderIndex != 12 {
		t.Fatal("freeze must set both the flag and the index")
	}

	game.Unfreeze()
	if game.IsFrozen || game.FreezeOrderIndex != nil {
		t.Error("unfreeze must clear both the flag and the index")
	}
}
