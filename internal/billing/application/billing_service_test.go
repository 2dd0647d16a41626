package application

import (
	"math"
	"testing"
	"time"

	billing "meterbill/internal/billing/domain"
)

type fixedClock struct {
	at time.Time
}

func (c fixedClock) Now() time.Time { return c.at }

func testPlan() billing.FlatRatePlan {
	return billing.FlatRatePlan{
		PlanName:             "home-flat-14",
		ImportRate:           0.3895,
		Discount:             0.14,
		ExportRate:           0.21,
		AnnualStandingCharge: 272.61,
	}
}

func testReadings(t *testing.T) []billing.Reading {
	t.Helper()
	at := time.Date(2024, time.January, 8, 12, 0, 0, 0, time.UTC)
	imp, err := billing.NewReading("10308375697", "34996871", billing.FlowImport, 2.0, at)
	if err != nil {
		t.Fatalf("import reading: %v", err)
	}
	exp, err := billing.NewReading("10308375697", "34996871", billing.FlowExport, 1.0, at.Add(30*time.Minute))
	if err != nil {
		t.Fatalf("export reading: %v", err)
	}
	return []billing.Reading{imp, exp}
}

func TestRunBuildsStatement(t *testing.T) {
	now := time.Date(2024, time.February, 1, 9, 0, 0, 0, time.UTC)
	svc, err := NewBillingService([]billing.PricePlan{testPlan()}, "EUR", fixedClock{at: now})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	stmt, err := svc.Run(testPlan(), testReadings(t), 1)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if stmt.PlanName != "home-flat-14" || stmt.PeriodDays != 1 || stmt.ReadingCount != 2 {
		t.Fatalf("statement header: %+v", stmt)
	}
	if stmt.ImportKWh != 2.0 || stmt.ExportKWh != 1.0 {
		t.Fatalf("energy totals: import=%f export=%f", stmt.ImportKWh, stmt.ExportKWh)
	}
	if stmt.Usage.Kind != "debit" || math.Abs(stmt.Usage.Amount-(0.3895*0.86*2.0-0.21)) > 1e-9 {
		t.Fatalf("usage: %+v", stmt.Usage)
	}
	if stmt.StandingCharge.Kind != "debit" || math.Abs(stmt.StandingCharge.Amount-272.61/365) > 1e-9 {
		t.Fatalf("standing charge: %+v", stmt.StandingCharge)
	}
	want := 0.3895*0.86*2.0 - 0.21 + 272.61/365
	if stmt.Total.Kind != "debit" || math.Abs(stmt.Total.Amount-want) > 1e-9 {
		t.Fatalf("total: %+v, want debit %f", stmt.Total, want)
	}
	if !stmt.GeneratedAt.Equal(now) {
		t.Fatalf("generated at: %s", stmt.GeneratedAt)
	}
	if stmt.Currency != "EUR" {
		t.Fatalf("currency: %q", stmt.Currency)
	}
}

func TestRunAllIsIndependentPerPlan(t *testing.T) {
	plans := []billing.PricePlan{
		testPlan(),
		billing.FlatRatePlan{PlanName: "flat-zero", ImportRate: 0.40, ExportRate: 0.20, AnnualStandingCharge: 100},
	}
	svc, err := NewBillingService(plans, "EUR", nil)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	readings := testReadings(t)
	first, err := svc.RunAll(readings, 30)
	if err != nil {
		t.Fatalf("run all: %v", err)
	}
	if len(first) != 2 {
		t.Fatalf("expected 2 statements, got %d", len(first))
	}

	second, err := svc.RunAll(readings, 30)
	if err != nil {
		t.Fatalf("run all again: %v", err)
	}
	for i := range first {
		if first[i].Total != second[i].Total {
			t.Fatalf("plan %s diverged between runs: %+v vs %+v", first[i].PlanName, first[i].Total, second[i].Total)
		}
	}
}

func TestRunEmptyReadingsIsStandingChargeAlone(t *testing.T) {
	svc, err := NewBillingService([]billing.PricePlan{testPlan()}, "EUR", nil)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	stmt, err := svc.Run(testPlan(), nil, 7)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if stmt.Usage.Kind != "debit" || stmt.Usage.Amount != 0 {
		t.Fatalf("usage: %+v", stmt.Usage)
	}
	if math.Abs(stmt.Total.Amount-272.61/365*7) > 1e-9 {
		t.Fatalf("total: %+v", stmt.Total)
	}
}

func TestRunRejectsBadInputs(t *testing.T) {
	svc, err := NewBillingService([]billing.PricePlan{testPlan()}, "EUR", nil)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	if _, err := svc.Run(testPlan(), nil, 0); err == nil {
		t.Fatal("expected error for zero period days")
	}
	if _, err := svc.Run(nil, nil, 1); err == nil {
		t.Fatal("expected error for nil plan")
	}
}

func TestNewBillingServiceRejectsEmptyCatalog(t *testing.T) {
	if _, err := NewBillingService(nil, "EUR", nil); err == nil {
		t.Fatal("expected error for empty catalog")
	}
}
