package core

import (
	"strings"
	"testing"
)

func expense(desc string, cents int64, method PaymentMethod, necessity Necessity) Record {
	return Record{
		Username:      "ana",
		Date:          NewDate(2025, 1, 10),
		Description:   desc,
		Amount:        Money{Cents: cents},
		Type:          Expense,
		PaymentMethod: method,
		Installments:  1,
		Necessity:     necessity,
	}
}

func income(desc string, cents int64) Record {
	return Record{
		Username:      "ana",
		Date:          NewDate(2025, 1, 5),
		Description:   desc,
		Amount:        Money{Cents: cents},
		Type:          Income,
		PaymentMethod: Transfer,
		Installments:  1,
		Necessity:     Essential,
	}
}

func TestTotalBalance(t *testing.T) {
	if got := TotalBalance(nil); got.Cents != 0 {
		t.Fatalf("empty set: expected 0, got %d", got.Cents)
	}

	records := []Record{
		income("salary", 500000),
		expense("rent", 200000, Transfer, Essential),
		expense("dinner", 15000, CreditCard, NonEssential),
	}
	if got := TotalBalance(records); got.Cents != 285000 {
		t.Fatalf("expected 285000, got %d", got.Cents)
	}

	// Expenses only: balance goes negative.
	if got := TotalBalance(records[1:]); got.Cents != -215000 {
		t.Fatalf("expected -215000, got %d", got.Cents)
	}
}

func TestMajorExpenses(t *testing.T) {
	records := []Record{
		income("salary", 500000),
		expense("coffee", 800, Cash, NonEssential),
		expense("rent", 200000, Transfer, Essential),
		expense("books", 800, DebitCard, NonEssential),
		expense("groceries", 40000, CreditCard, Essential),
	}

	expenses, nonEssential := MajorExpenses(records)

	wantOrder := []string{"rent", "groceries", "coffee", "books"}
	if len(expenses) != len(wantOrder) {
		t.Fatalf("expected %d expenses, got %d", len(wantOrder), len(expenses))
	}
	for i, desc := range wantOrder {
		if expenses[i].Description != desc {
			t.Fatalf("position %d: expected %q, got %q", i, desc, expenses[i].Description)
		}
	}
	for i := 1; i < len(expenses); i++ {
		if expenses[i].Amount.Cents > expenses[i-1].Amount.Cents {
			t.Fatalf("expenses not sorted descending at %d", i)
		}
	}

	// Ties keep insertion order: coffee was inserted before books.
	if expenses[2].Description != "coffee" || expenses[3].Description != "books" {
		t.Fatal("stable sort broken for equal amounts")
	}

	if len(nonEssential) != 2 {
		t.Fatalf("expected 2 non-essential expenses, got %d", len(nonEssential))
	}
	if nonEssential[0].Description != "coffee" || nonEssential[1].Description != "books" {
		t.Fatal("non-essential subset should preserve original order")
	}
}

func TestMajorExpensesEmpty(t *testing.T) {
	expenses, nonEssential := MajorExpenses(nil)
	if len(expenses) != 0 || len(nonEssential) != 0 {
		t.Fatal("empty input should yield empty output")
	}
}

func TestEvaluateAlertsOverdraft(t *testing.T) {
	records := []Record{
		income("salary", 10000),
		expense("rent", 50000, Transfer, Essential),
	}
	alerts := EvaluateAlerts(records)
	if len(alerts) != 1 {
		t.Fatalf("expected 1 alert, got %d", len(alerts))
	}
	a := alerts[0]
	if a.Kind != AlertOverdraft || a.Severity != SeverityError {
		t.Fatalf("unexpected alert %+v", a)
	}
	if !strings.Contains(a.Message, "8%") {
		t.Fatalf("overdraft message should quote the monthly interest: %q", a.Message)
	}
	if !strings.Contains(a.Message, "-R$400,00") {
		t.Fatalf("overdraft message should include the negative balance: %q", a.Message)
	}
}

func TestEvaluateAlertsHighCreditCard(t *testing.T) {
	// Scenario from the product brief: +2000 income, 500 cash expense,
	// 1200 credit-card expense. Balance is 300, credit spend is 1200.
	records := []Record{
		income("salary", 200000),
		expense("market", 50000, Cash, Essential),
		expense("electronics", 120000, CreditCard, NonEssential),
	}

	if got := TotalBalance(records); got.Cents != 30000 {
		t.Fatalf("expected balance 30000, got %d", got.Cents)
	}

	alerts := EvaluateAlerts(records)
	if len(alerts) != 1 {
		t.Fatalf("expected only the credit-card alert, got %d alerts", len(alerts))
	}
	a := alerts[0]
	if a.Kind != AlertHighCreditCard || a.Severity != SeverityWarning {
		t.Fatalf("unexpected alert %+v", a)
	}
	if !strings.Contains(a.Message, "R$1.200,00") || !strings.Contains(a.Message, "R$1.000,00") {
		t.Fatalf("credit alert message should include sum and limit: %q", a.Message)
	}
}

func TestEvaluateAlertsBothFire(t *testing.T) {
	records := []Record{
		expense("electronics", 150000, CreditCard, NonEssential),
	}
	alerts := EvaluateAlerts(records)
	if len(alerts) != 2 {
		t.Fatalf("expected both alerts, got %d", len(alerts))
	}
	if alerts[0].Kind != AlertOverdraft || alerts[1].Kind != AlertHighCreditCard {
		t.Fatalf("unexpected alert kinds: %v, %v", alerts[0].Kind, alerts[1].Kind)
	}
}

func TestEvaluateAlertsQuiet(t *testing.T) {
	// Credit spend exactly at the limit does not fire.
	records := []Record{
		income("salary", 200000),
		expense("electronics", 100000, CreditCard, NonEssential),
	}
	if alerts := EvaluateAlerts(records); len(alerts) != 0 {
		t.Fatalf("expected no alerts, got %+v", alerts)
	}
	if alerts := EvaluateAlerts(nil); len(alerts) != 0 {
		t.Fatalf("empty set should yield no alerts, got %+v", alerts)
	}
}
