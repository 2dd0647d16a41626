package interfaces

import (
	"fmt"
	"io"
	"strings"

	"meterbill/internal/billing/application"
)

// WriteReport renders a plain-text plan comparison for one billing run.
func WriteReport(w io.Writer, statements []application.Statement) error {
	if len(statements) == 0 {
		_, err := fmt.Fprintln(w, "no statements")
		return err
	}

	head := statements[0]
	if _, err := fmt.Fprintf(w, "Billing period: %d days, %d readings (%.3f kWh import, %.3f kWh export)\n\n",
		head.PeriodDays, head.ReadingCount, head.ImportKWh, head.ExportKWh); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(w, "%-24s %18s %18s %18s\n", "PLAN", "USAGE", "STANDING", "TOTAL"); err != nil {
		return err
	}
	for _, stmt := range statements {
		_, err := fmt.Fprintf(w, "%-24s %18s %18s %18s\n",
			stmt.PlanName,
			formatEntry(stmt.Usage, stmt.Currency),
			formatEntry(stmt.StandingCharge, stmt.Currency),
			formatEntry(stmt.Total, stmt.Currency),
		)
		if err != nil {
			return err
		}
	}
	return nil
}

func formatEntry(e application.EntryAmount, currency string) string {
	suffix := "DR"
	if e.Kind == "credit" {
		suffix = "CR"
	}
	return fmt.Sprintf("%.2f %s %s", e.Amount, strings.ToUpper(currency), suffix)
}
