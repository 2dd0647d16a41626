package application

import (
	"errors"
	"time"

	billing "meterbill/internal/billing/domain"
)

// Clock returns the current time.
type Clock interface {
	Now() time.Time
}

// SystemClock uses time.Now.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// EntryAmount is the serialisable form of a bill entry.
type EntryAmount struct {
	Kind   string  `json:"kind"`
	Amount float64 `json:"amount"`
}

// Statement is the computed bill for one plan over one reading set.
type Statement struct {
	PlanName       string      `json:"plan"`
	PeriodDays     int         `json:"period_days"`
	ReadingCount   int         `json:"reading_count"`
	ImportKWh      float64     `json:"import_kwh"`
	ExportKWh      float64     `json:"export_kwh"`
	Usage          EntryAmount `json:"usage"`
	StandingCharge EntryAmount `json:"standing_charge"`
	Total          EntryAmount `json:"total"`
	Currency       string      `json:"currency"`
	GeneratedAt    time.Time   `json:"generated_at"`
}

// BillingService computes a statement per catalog plan for one reading set.
// Plans are evaluated independently and sequentially; each plan folds the
// readings in input order so per-plan rounding stays deterministic.
type BillingService struct {
	plans    []billing.PricePlan
	currency string
	clock    Clock
}

// NewBillingService constructs the service.
func NewBillingService(plans []billing.PricePlan, currency string, clock Clock) (*BillingService, error) {
	if len(plans) == 0 {
		return nil, errors.New("billing service: empty plan catalog")
	}
	for _, p := range plans {
		if p == nil {
			return nil, billing.ErrNilPlan
		}
	}
	if currency == "" {
		currency = "EUR"
	}
	if clock == nil {
		clock = SystemClock{}
	}
	return &BillingService{plans: plans, currency: currency, clock: clock}, nil
}

// Plans returns the plan catalog in evaluation order.
func (s *BillingService) Plans() []billing.PricePlan { return s.plans }

// Run computes the statement for a single plan. The period day count is an
// explicit input; it is never inferred from the readings' timestamp span.
func (s *BillingService) Run(plan billing.PricePlan, readings []billing.Reading, periodDays int) (Statement, error) {
	if plan == nil {
		return Statement{}, billing.ErrNilPlan
	}
	if periodDays <= 0 {
		return Statement{}, billing.ErrInvalidPeriod
	}

	usage := billing.ComputeTotal(plan, readings)
	standing := billing.StandingChargeForDays(plan, periodDays)
	total := usage.Combine(standing)

	var importKWh, exportKWh float64
	for _, r := range readings {
		switch r.Direction {
		case billing.FlowImport:
			importKWh += r.ValueKWh
		case billing.FlowExport:
			exportKWh += r.ValueKWh
		}
	}

	return Statement{
		PlanName:       plan.Name(),
		PeriodDays:     periodDays,
		ReadingCount:   len(readings),
		ImportKWh:      importKWh,
		ExportKWh:      exportKWh,
		Usage:          entryAmount(usage),
		StandingCharge: entryAmount(standing),
		Total:          entryAmount(total),
		Currency:       s.currency,
		GeneratedAt:    s.clock.Now().UTC(),
	}, nil
}

// RunAll computes one statement per catalog plan.
func (s *BillingService) RunAll(readings []billing.Reading, periodDays int) ([]Statement, error) {
	statements := make([]Statement, 0, len(s.plans))
	for _, plan := range s.plans {
		stmt, err := s.Run(plan, readings, periodDays)
		if err != nil {
			return nil, err
		}
		statements = append(statements, stmt)
	}
	return statements, nil
}

func entryAmount(e billing.BillEntry) EntryAmount {
	return EntryAmount{Kind: string(e.Kind()), Amount: e.Amount()}
}
