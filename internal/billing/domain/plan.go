package billing

import "time"

// PricePlan is a named tariff: it maps one reading to a bill entry and
// defines a fixed daily standing charge. Plans are immutable and stateless;
// the set of implementations is fixed, plans are not user-extensible.
type PricePlan interface {
	Name() string
	PriceForReading(r Reading) BillEntry
	// StandingChargePerDay must return a debit. A credit here is a defect in
	// the plan implementation, not a runtime condition.
	StandingChargePerDay() BillEntry
}

// ClockBand is a time-of-day window (start, end] in minutes from midnight.
// A minute matches only strictly after Start and up to and including End.
type ClockBand struct {
	Start int
	End   int
}

// Contains reports whether minute-of-day m falls inside the band. A band
// whose start lies after its end covers the evening and the early morning,
// e.g. (23:00, 08:00] matches after 23:00 or at/before 08:00.
func (b ClockBand) Contains(m int) bool {
	if b.Start <= b.End {
		return m > b.Start && m <= b.End
	}
	return m > b.Start || m <= b.End
}

func minuteOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

func isWeekday(d time.Weekday) bool {
	return d >= time.Monday && d <= time.Friday
}

const daysPerYear = 365

// FlatRatePlan charges a single discounted import rate at every hour.
type FlatRatePlan struct {
	PlanName             string
	ImportRate           float64
	Discount             float64
	ExportRate           float64
	AnnualStandingCharge float64
}

// Name returns the plan name.
func (p FlatRatePlan) Name() string { return p.PlanName }

// PriceForReading prices one reading under the flat tariff.
func (p FlatRatePlan) PriceForReading(r Reading) BillEntry {
	if r.Direction == FlowExport {
		return Credit(p.ExportRate * r.ValueKWh)
	}
	return Debit(p.ImportRate * (1 - p.Discount) * r.ValueKWh)
}

// StandingChargePerDay returns the pro-rated daily standing charge.
func (p FlatRatePlan) StandingChargePerDay() BillEntry {
	return Debit(p.AnnualStandingCharge / daysPerYear)
}

// DayNightPlan selects the import rate by time of day: the peak band first,
// then the night band, then the standard day rate for every remaining hour.
// The check order matters at band boundaries and must not be rearranged.
type DayNightPlan struct {
	PlanName             string
	DayRate              float64
	PeakRate             float64
	NightRate            float64
	Peak                 ClockBand
	Night                ClockBand
	Discount             float64
	ExportRate           float64
	AnnualStandingCharge float64
}

// Name returns the plan name.
func (p DayNightPlan) Name() string { return p.PlanName }

// PriceForReading prices one reading under the day/night tariff.
func (p DayNightPlan) PriceForReading(r Reading) BillEntry {
	if r.Direction == FlowExport {
		return Credit(p.ExportRate * r.ValueKWh)
	}
	m := minuteOfDay(r.EndTime)
	rate := p.DayRate
	switch {
	case p.Peak.Contains(m):
		rate = p.PeakRate
	case p.Night.Contains(m):
		rate = p.NightRate
	}
	return Debit(rate * (1 - p.Discount) * r.ValueKWh)
}

// StandingChargePerDay returns the pro-rated daily standing charge.
func (p DayNightPlan) StandingChargePerDay() BillEntry {
	return Debit(p.AnnualStandingCharge / daysPerYear)
}

// WeekendFreePlan extends the day/night tariff with a zero-cost import
// window on one free day. The free window is checked before everything
// else; the peak band applies on weekdays only.
type WeekendFreePlan struct {
	PlanName             string
	DayRate              float64
	PeakRate             float64
	NightRate            float64
	Peak                 ClockBand
	Night                ClockBand
	Free                 ClockBand
	FreeDay              time.Weekday
	Discount             float64
	ExportRate           float64
	AnnualStandingCharge float64
}

// Name returns the plan name.
func (p WeekendFreePlan) Name() string { return p.PlanName }

// PriceForReading prices one reading under the weekend-free tariff.
func (p WeekendFreePlan) PriceForReading(r Reading) BillEntry {
	if r.Direction == FlowExport {
		return Credit(p.ExportRate * r.ValueKWh)
	}
	m := minuteOfDay(r.EndTime)
	weekday := r.EndTime.Weekday()
	if weekday == p.FreeDay && p.Free.Contains(m) {
		return Debit(0)
	}
	rate := p.DayRate
	switch {
	case isWeekday(weekday) && p.Peak.Contains(m):
		rate = p.PeakRate
	case p.Night.Contains(m):
		rate = p.NightRate
	}
	return Debit(rate * (1 - p.Discount) * r.ValueKWh)
}

// StandingChargePerDay returns the pro-rated daily standing charge.
func (p WeekendFreePlan) StandingChargePerDay() BillEntry {
	return Debit(p.AnnualStandingCharge / daysPerYear)
}
