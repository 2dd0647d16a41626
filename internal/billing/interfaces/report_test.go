package interfaces

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"meterbill/internal/billing/application"
)

func sampleStatements() []application.Statement {
	generated := time.Date(2024, time.February, 1, 9, 0, 0, 0, time.UTC)
	return []application.Statement{
		{
			PlanName:       "home-flat-14",
			PeriodDays:     365,
			ReadingCount:   2,
			ImportKWh:      2.0,
			ExportKWh:      1.0,
			Usage:          application.EntryAmount{Kind: "debit", Amount: 0.45994},
			StandingCharge: application.EntryAmount{Kind: "debit", Amount: 272.61},
			Total:          application.EntryAmount{Kind: "debit", Amount: 273.06994},
			Currency:       "EUR",
			GeneratedAt:    generated,
		},
		{
			PlanName:       "free-sunday-saver",
			PeriodDays:     365,
			ReadingCount:   2,
			ImportKWh:      2.0,
			ExportKWh:      1.0,
			Usage:          application.EntryAmount{Kind: "credit", Amount: 0.12},
			StandingCharge: application.EntryAmount{Kind: "debit", Amount: 297.18},
			Total:          application.EntryAmount{Kind: "debit", Amount: 297.06},
			Currency:       "EUR",
			GeneratedAt:    generated,
		},
	}
}

func TestWriteReport(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteReport(&buf, sampleStatements()); err != nil {
		t.Fatalf("write report: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"Billing period: 365 days, 2 readings",
		"home-flat-14",
		"free-sunday-saver",
		"273.07 EUR DR",
		"0.12 EUR CR",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("report missing %q:\n%s", want, out)
		}
	}
}

func TestWriteReportEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteReport(&buf, nil); err != nil {
		t.Fatalf("write report: %v", err)
	}
	if !strings.Contains(buf.String(), "no statements") {
		t.Fatalf("unexpected output: %q", buf.String())
	}
}
