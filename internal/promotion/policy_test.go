package promotion

import (
	"testing"
	"time"
)

func ts(s string) *time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return &t
}

func TestActiveAt(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		item Item
		want bool
	}{
		{"not promotional", Item{IsPromotional: false}, false},
		{"open window", Item{IsPromotional: true}, true},
		{"inside window", Item{IsPromotional: true, Start: ts("2026-03-01T00:00:00Z"), End: ts("2026-03-31T00:00:00Z")}, true},
		{"before start", Item{IsPromotional: true, Start: ts("2026-04-01T00:00:00Z")}, false},
		{"after end", Item{IsPromotional: true, End: ts("2026-03-01T00:00:00Z")}, false},
		{"start only, passed", Item{IsPromotional: true, Start: ts("2026-03-01T00:00:00Z")}, true},
		{"end only, not reached", Item{IsPromotional: true, End: ts("2026-03-31T00:00:00Z")}, true},
	}
	for _, tc := range cases {
		if got := tc.item.ActiveAt(now); got != tc.want {
			t.Errorf("%s: ActiveAt = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestQualifies(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	activePromo := Item{IsPromotional: true, IsQualifying: true}

	cases := []struct {
		name   string
		policy Policy
		item   Item
		want   bool
	}{
		{"qualifying plain item", Policy{}, Item{IsQualifying: true}, true},
		{"flag off always excludes", Policy{}, Item{IsQualifying: false}, false},
		{"flag off excludes even with override", Policy{ExcludePromotional: true}, Item{IsQualifying: false, QualifyOverride: true}, false},
		{"active promo, exclusion off", Policy{}, activePromo, true},
		{"active promo, exclusion on", Policy{ExcludePromotional: true}, activePromo, false},
		{"active promo, exclusion on, admin override", Policy{ExcludePromotional: true}, Item{IsPromotional: true, IsQualifying: true, QualifyOverride: true}, true},
		{"expired promo, exclusion on", Policy{ExcludePromotional: true}, Item{IsPromotional: true, IsQualifying: true, End: ts("2026-03-01T00:00:00Z")}, true},
	}
	for _, tc := range cases {
		if got := tc.policy.Qualifies(tc.item, now); got != tc.want {
			t.Errorf("%s: Qualifies = %v, want %v", tc.name, got, tc.want)
		}
	}
}
