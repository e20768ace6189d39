package models

// UrgencyTier classifies a demand's due date relative to today.
type UrgencyTier string

const (
	UrgencyOverdue  UrgencyTier = "overdue"
	UrgencyCurrent  UrgencyTier = "current"
	UrgencyUpcoming UrgencyTier = "upcoming"
)

// ClassifyUrgency maps a civil day difference (due date minus today) onto a
// tier. urgentWindow is the last difference still treated as current.
func ClassifyUrgency(diffDays, urgentWindow int) UrgencyTier {
	switch {
	case diffDays < 0:
		return UrgencyOverdue
	case diffDays <= urgentWindow:
		return UrgencyCurrent
	default:
		return UrgencyUpcoming
	}
}

// Score orders tiers; higher is more urgent.
func (t UrgencyTier) Score() int {
	switch t {
	case UrgencyOverdue:
		return 3
	case UrgencyCurrent:
		return 2
	case UrgencyUpcoming:
		return 1
	default:
		return 0
	}
}
