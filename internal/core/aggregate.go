package core

import (
	"fmt"
	"sort"
)

const (
	AlertOverdraft      AlertKind = "overdraft"
	AlertHighCreditCard AlertKind = "high_credit_card"
)

const (
	SeverityWarning AlertSeverity = "warning"
	SeverityError   AlertSeverity = "error"
)

// CreditCardLimit is the credit-card spending threshold above which an
// alert fires.
var CreditCardLimit = Money{Cents: 1000_00}

// OverdraftMonthlyInterestPct is the interest rate quoted in the overdraft
// alert message.
const OverdraftMonthlyInterestPct = 8

type (
	AlertKind     string
	AlertSeverity string

	// Alert is a derived warning computed from current aggregates. Alerts
	// are never persisted; every evaluation starts from the record set.
	Alert struct {
		Kind     AlertKind
		Message  string
		Severity AlertSeverity
	}
)

// TotalBalance returns income total minus expense total. An empty record
// set yields exactly zero.
func TotalBalance(records []Record) Money {
	var cents int64
	for _, r := range records {
		switch r.Type {
		case Income:
			cents += r.Amount.Cents
		case Expense:
			cents -= r.Amount.Cents
		}
	}
	return Money{Cents: cents}
}

// MajorExpenses returns every expense sorted descending by amount, plus the
// subset of expenses classified as non-essential. The sort is stable, so
// records with equal amounts keep their original relative order.
func MajorExpenses(records []Record) (expenses, nonEssential []Record) {
	for _, r := range records {
		if r.Type != Expense {
			continue
		}
		expenses = append(expenses, r)
		if r.Necessity == NonEssential {
			nonEssential = append(nonEssential, r)
		}
	}
	sort.SliceStable(expenses, func(i, j int) bool {
		return expenses[i].Amount.Cents > expenses[j].Amount.Cents
	})
	return expenses, nonEssential
}

// CreditCardExpenses sums all expenses paid by credit card.
func CreditCardExpenses(records []Record) Money {
	var cents int64
	for _, r := range records {
		if r.Type == Expense && r.PaymentMethod == CreditCard {
			cents += r.Amount.Cents
		}
	}
	return Money{Cents: cents}
}

// EvaluateAlerts computes the overdraft and credit-card alerts for a record
// set. The two checks are independent: zero, one, or both may fire.
func EvaluateAlerts(records []Record) []Alert {
	var alerts []Alert

	if balance := TotalBalance(records); balance.Cents < 0 {
		alerts = append(alerts, Alert{
			Kind:     AlertOverdraft,
			Severity: SeverityError,
			Message: fmt.Sprintf("You are overdrawn! Interest of %d%% per month applies. Balance: %s",
				OverdraftMonthlyInterestPct, FormatBRL(balance)),
		})
	}

	if spent := CreditCardExpenses(records); spent.Cents > CreditCardLimit.Cents {
		alerts = append(alerts, Alert{
			Kind:     AlertHighCreditCard,
			Severity: SeverityWarning,
			Message: fmt.Sprintf("Credit card spending is high (%s). Suggested limit: %s.",
				FormatBRL(spent), FormatBRL(CreditCardLimit)),
		})
	}

	return alerts
}
