package billing

import "fmt"

// ComputeTotal folds the readings through the plan in input order, starting
// from Debit(0). The netting rule is commutative in outcome, but the fold
// order is kept stable so floating-point rounding stays deterministic.
func ComputeTotal(plan PricePlan, readings []Reading) BillEntry {
	total := Debit(0)
	for _, r := range readings {
		total = total.Combine(plan.PriceForReading(r))
	}
	return total
}

// StandingChargeForDays scales the plan's daily standing charge over the
// billing period. Panics if the plan returns a credit standing charge; that
// breaks the PricePlan contract and aborts the computation.
func StandingChargeForDays(plan PricePlan, days int) BillEntry {
	perDay := plan.StandingChargePerDay()
	if perDay.IsCredit() {
		panic(fmt.Sprintf("billing: plan %q returned a credit standing charge", plan.Name()))
	}
	return Debit(perDay.Amount() * float64(days))
}

// BillForPeriod nets the usage total against the standing charge for the
// given period length. The day count is supplied by the caller; it is not
// derived from the readings' own timestamp span.
func BillForPeriod(plan PricePlan, readings []Reading, periodDays int) BillEntry {
	return ComputeTotal(plan, readings).Combine(StandingChargeForDays(plan, periodDays))
}
