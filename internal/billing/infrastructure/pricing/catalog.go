// Package pricing builds the tariff plan catalog: a fixed set of built-in
// reference plans, optionally replaced by plans loaded from a YAML file.
package pricing

import (
	"time"

	billing "meterbill/internal/billing/domain"
)

// DefaultPlans returns the built-in reference tariff catalog.
func DefaultPlans() []billing.PricePlan {
	return []billing.PricePlan{
		billing.FlatRatePlan{
			PlanName:             "home-flat-14",
			ImportRate:           0.3895,
			Discount:             0.14,
			ExportRate:           0.21,
			AnnualStandingCharge: 272.61,
		},
		billing.DayNightPlan{
			PlanName:             "day-night-boost",
			DayRate:              0.4241,
			PeakRate:             0.4852,
			NightRate:            0.2115,
			Peak:                 billing.ClockBand{Start: 17 * 60, End: 19 * 60},
			Night:                billing.ClockBand{Start: 23 * 60, End: 8 * 60},
			Discount:             0.10,
			ExportRate:           0.24,
			AnnualStandingCharge: 301.39,
		},
		billing.WeekendFreePlan{
			PlanName:             "free-sunday-saver",
			DayRate:              0.4705,
			PeakRate:             0.5258,
			NightRate:            0.2630,
			Peak:                 billing.ClockBand{Start: 17 * 60, End: 19 * 60},
			Night:                billing.ClockBand{Start: 23 * 60, End: 8 * 60},
			Free:                 billing.ClockBand{Start: 9 * 60, End: 18 * 60},
			FreeDay:              time.Sunday,
			Discount:             0.25,
			ExportRate:           0.185,
			AnnualStandingCharge: 297.18,
		},
	}
}
