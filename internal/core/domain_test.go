package core

import (
	"errors"
	"testing"
)

func validRecord() Record {
	return Record{
		Username:      "ana",
		Date:          NewDate(2025, 3, 14),
		Description:   "groceries",
		Amount:        Money{Cents: 12500},
		Type:          Expense,
		PaymentMethod: Cash,
		Installments:  1,
		Necessity:     Essential,
	}
}

func TestRecordValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Record)
		want   error
	}{
		{"valid", func(r *Record) {}, nil},
		{"empty description allowed", func(r *Record) { r.Description = "" }, nil},
		{"max installments", func(r *Record) { r.Installments = 12 }, nil},
		{"empty username", func(r *Record) { r.Username = "" }, ErrEmptyUsername},
		{"zero date", func(r *Record) { r.Date = Date{} }, ErrInvalidDate},
		{"zero amount", func(r *Record) { r.Amount = Money{} }, ErrInvalidAmount},
		{"negative amount", func(r *Record) { r.Amount.Cents = -100 }, ErrInvalidAmount},
		{"bad type", func(r *Record) { r.Type = "transfer" }, ErrInvalidType},
		{"bad payment method", func(r *Record) { r.PaymentMethod = "check" }, ErrInvalidPaymentMethod},
		{"zero installments", func(r *Record) { r.Installments = 0 }, ErrInvalidInstallments},
		{"too many installments", func(r *Record) { r.Installments = 13 }, ErrInvalidInstallments},
		{"bad necessity", func(r *Record) { r.Necessity = "luxury" }, ErrInvalidNecessity},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := validRecord()
			tc.mutate(&r)
			err := r.Validate()
			if tc.want == nil {
				if err != nil {
					t.Fatalf("expected valid record, got %v", err)
				}
				return
			}
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestEnumValidate(t *testing.T) {
	for _, v := range []RecordType{Income, Expense} {
		if err := v.Validate(); err != nil {
			t.Fatalf("%q should be valid: %v", v, err)
		}
	}
	for _, v := range []PaymentMethod{Cash, CreditCard, DebitCard, Transfer} {
		if err := v.Validate(); err != nil {
			t.Fatalf("%q should be valid: %v", v, err)
		}
	}
	for _, v := range []Necessity{Essential, NonEssential} {
		if err := v.Validate(); err != nil {
			t.Fatalf("%q should be valid: %v", v, err)
		}
	}
	if err := RecordType("").Validate(); err == nil {
		t.Fatal("empty record type should be invalid")
	}
	if err := PaymentMethod("bitcoin").Validate(); err == nil {
		t.Fatal("unknown payment method should be invalid")
	}
}
