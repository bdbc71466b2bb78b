package domain

// Periodicity is the recurrence or reporting period of a record.
type Periodicity string

const (
	Daily      Periodicity = "DAILY"
	Weekly     Periodicity = "WEEKLY"
	Monthly    Periodicity = "MONTHLY"
	Quarterly  Periodicity = "QUARTERLY"
	HalfYearly Periodicity = "HALF_YEARLY"
	Yearly     Periodicity = "YEARLY"
	OneTime    Periodicity = "ONE_TIME"
)

// IsValid reports whether p is a known periodicity, ONE_TIME included.
func (p Periodicity) IsValid() bool {
	switch p {
	case Daily, Weekly, Monthly, Quarterly, HalfYearly, Yearly, OneTime:
		return true
	}
	return false
}

// IsRecurring reports whether p repeats.
func (p Periodicity) IsRecurring() bool {
	return p.IsValid() && p != OneTime
}
