package billing

import (
	"testing"
)

type creditStandingPlan struct{}

func (creditStandingPlan) Name() string { return "broken" }

func (creditStandingPlan) PriceForReading(Reading) BillEntry { return Debit(0) }

func (creditStandingPlan) StandingChargePerDay() BillEntry { return Credit(1) }

func TestComputeTotalEmptySequence(t *testing.T) {
	got := ComputeTotal(testFlatPlan(), nil)
	if !got.IsDebit() || got.Amount() != 0 {
		t.Fatalf("empty sequence: got %v, want Debit(0)", got)
	}
}

func TestStandingChargeForDaysScales(t *testing.T) {
	plan := testFlatPlan()
	got := StandingChargeForDays(plan, 30)
	want := 272.61 / 365 * 30
	if !got.IsDebit() || !almostEqual(got.Amount(), want) {
		t.Fatalf("30 days: got %v, want Debit(%f)", got, want)
	}
}

func TestBillForPeriodFlatScenario(t *testing.T) {
	plan := testFlatPlan()
	readings := []Reading{
		importReading(t, mondayAt(12, 0), 2.0),
		exportReading(t, mondayAt(12, 30), 1.0),
	}

	got := BillForPeriod(plan, readings, 1)
	want := 0.3895*0.86*2.0 - 0.21 + 272.61/365
	if !got.IsDebit() || !almostEqual(got.Amount(), want) {
		t.Fatalf("flat scenario: got %v, want Debit(%f)", got, want)
	}
}

func TestBillForPeriodEmptyReadingsIsStandingChargeAlone(t *testing.T) {
	plan := testDayNightPlan()
	got := BillForPeriod(plan, nil, 7)
	want := 301.39 / 365 * 7
	if !got.IsDebit() || !almostEqual(got.Amount(), want) {
		t.Fatalf("empty readings: got %v, want Debit(%f)", got, want)
	}
}

func TestBillForPeriodDeterministic(t *testing.T) {
	plan := testWeekendFreePlan()
	var readings []Reading
	for hour := 0; hour < 24; hour++ {
		readings = append(readings, importReading(t, sundayAt(hour, 30), 0.42))
		readings = append(readings, exportReading(t, mondayAt(hour, 30), 0.17))
	}

	first := BillForPeriod(plan, readings, 2)
	second := BillForPeriod(plan, readings, 2)
	if first.Kind() != second.Kind() || first.Amount() != second.Amount() {
		t.Fatalf("repeat run diverged: %v vs %v", first, second)
	}
}

func TestStandingChargeCreditPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for credit standing charge")
		}
	}()
	StandingChargeForDays(creditStandingPlan{}, 1)
}

func TestExportHeavyPeriodNetsToCredit(t *testing.T) {
	plan := testFlatPlan()
	readings := []Reading{
		exportReading(t, mondayAt(13, 0), 10.0),
		importReading(t, mondayAt(13, 30), 1.0),
	}

	got := ComputeTotal(plan, readings)
	want := 0.21*10.0 - 0.3895*0.86
	if !got.IsCredit() || !almostEqual(got.Amount(), want) {
		t.Fatalf("export heavy: got %v, want Credit(%f)", got, want)
	}
}
