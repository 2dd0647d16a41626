package billing

import "fmt"

// EntryKind tags a bill entry as money owed by or owed to the customer.
type EntryKind string

const (
	// EntryDebit increases the customer's net amount owed.
	EntryDebit EntryKind = "debit"
	// EntryCredit reduces the customer's net amount owed.
	EntryCredit EntryKind = "credit"
)

// BillEntry is a signed monetary value. The sign lives in the kind; the
// amount is never negative, before or after any combination.
type BillEntry struct {
	kind   EntryKind
	amount float64
}

// Debit builds a debit entry. Negative amounts are a programming error.
func Debit(amount float64) BillEntry {
	mustNonNegative(amount)
	return BillEntry{kind: EntryDebit, amount: amount}
}

// Credit builds a credit entry. Negative amounts are a programming error.
func Credit(amount float64) BillEntry {
	mustNonNegative(amount)
	return BillEntry{kind: EntryCredit, amount: amount}
}

// Kind returns the entry tag.
func (e BillEntry) Kind() EntryKind { return e.kind }

// Amount returns the magnitude, always >= 0.
func (e BillEntry) Amount() float64 { return e.amount }

// IsDebit reports whether the entry is a debit.
func (e BillEntry) IsDebit() bool { return e.kind == EntryDebit }

// IsCredit reports whether the entry is a credit.
func (e BillEntry) IsCredit() bool { return e.kind == EntryCredit }

// Signed returns the amount with debits positive and credits negative.
func (e BillEntry) Signed() float64 {
	if e.kind == EntryCredit {
		return -e.amount
	}
	return e.amount
}

// Combine nets two entries pairwise. Same kinds add under that kind;
// opposite kinds subtract the smaller magnitude from the larger and keep the
// kind of the strictly larger operand, so equal magnitudes net to Debit(0).
func (e BillEntry) Combine(other BillEntry) BillEntry {
	switch {
	case e.kind == other.kind:
		return BillEntry{kind: e.kind, amount: e.amount + other.amount}
	case e.kind == EntryCredit:
		if e.amount > other.amount {
			return BillEntry{kind: EntryCredit, amount: e.amount - other.amount}
		}
		return BillEntry{kind: EntryDebit, amount: other.amount - e.amount}
	default:
		if other.amount > e.amount {
			return BillEntry{kind: EntryCredit, amount: other.amount - e.amount}
		}
		return BillEntry{kind: EntryDebit, amount: e.amount - other.amount}
	}
}

// String renders the entry for diagnostics.
func (e BillEntry) String() string {
	if e.kind == EntryCredit {
		return fmt.Sprintf("Credit(%.5f)", e.amount)
	}
	return fmt.Sprintf("Debit(%.5f)", e.amount)
}

func mustNonNegative(amount float64) {
	if amount < 0 {
		panic(fmt.Sprintf("billing: negative bill entry amount %f", amount))
	}
}
