package promotion

import "time"

// Item carries the promotion- and qualification-relevant attributes of a
// product line. It is the only view of a product this package needs.
type Item struct {
	IsPromotional   bool
	Start           *time.Time
	End             *time.Time
	IsQualifying    bool
	QualifyOverride bool
}

// ActiveAt reports whether the item sits inside its promotional window at t.
// A nil bound leaves the window open on that side.
func (it Item) ActiveAt(t time.Time) bool {
	if !it.IsPromotional {
		return false
	}
	if it.Start != nil && t.Before(*it.Start) {
		return false
	}
	if it.End != nil && t.After(*it.End) {
		return false
	}
	return true
}

// Policy decides whether a line accrues toward the membership threshold.
//
// Precedence: a line whose qualifying flag is off never accrues. With
// promotional exclusion enabled, a line inside an active promotional window
// is excluded as well, unless an admin set an explicit qualify override on
// the product.
type Policy struct {
	ExcludePromotional bool
}

// Qualifies applies the qualification rule to one line at the given instant.
func (p Policy) Qualifies(it Item, now time.Time) bool {
	if !it.IsQualifying {
		return false
	}
	if p.ExcludePromotional && it.ActiveAt(now) && !it.QualifyOverride {
		return false
	}
	return true
}
