package core

import (
	"errors"
	"strings"
	"time"
)

const (
	Income  RecordType = "income"
	Expense RecordType = "expense"
)

const (
	Cash       PaymentMethod = "cash"
	CreditCard PaymentMethod = "credit_card"
	DebitCard  PaymentMethod = "debit_card"
	Transfer   PaymentMethod = "transfer"
)

const (
	Essential    Necessity = "essential"
	NonEssential Necessity = "non_essential"
)

const (
	MinInstallments = 1
	MaxInstallments = 12
)

type (
	// RecordType classifies a record as money coming in or going out.
	RecordType string

	// PaymentMethod is how an expense was paid.
	PaymentMethod string

	// Necessity is the binary essential/non-essential classification used
	// for spending alerts.
	Necessity string

	Date struct {
		time.Time
	}

	Money struct {
		Cents int64
	}

	// Record is one income or expense entry owned by a user.
	Record struct {
		ID            int64
		Username      string
		Date          Date
		Description   string // optional
		Amount        Money
		Type          RecordType
		PaymentMethod PaymentMethod
		Installments  int
		Necessity     Necessity
	}
)

var (
	ErrInvalidAmount        = errors.New("invalid amount")
	ErrInvalidDate          = errors.New("invalid date")
	ErrInvalidType          = errors.New("invalid record type")
	ErrInvalidPaymentMethod = errors.New("invalid payment method")
	ErrInvalidNecessity     = errors.New("invalid necessity")
	ErrInvalidInstallments  = errors.New("invalid installments")
	ErrEmptyUsername        = errors.New("empty username")
	ErrDescriptionTooLong   = errors.New("description too long (max 200 characters)")
)

func (t RecordType) Validate() error {
	switch t {
	case Income, Expense:
		return nil
	}
	return ErrInvalidType
}

func (p PaymentMethod) Validate() error {
	switch p {
	case Cash, CreditCard, DebitCard, Transfer:
		return nil
	}
	return ErrInvalidPaymentMethod
}

func (n Necessity) Validate() error {
	switch n {
	case Essential, NonEssential:
		return nil
	}
	return ErrInvalidNecessity
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

// NewDate creates a new Date from year, month, day
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

func (m Money) Validate() error {
	if m.Cents <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

// Validate checks a record before it reaches the store. The storage schema
// itself stays permissive; all range and enum checks live here.
func (r Record) Validate() error {
	if strings.TrimSpace(r.Username) == "" {
		return ErrEmptyUsername
	}
	if err := r.Date.Validate(); err != nil {
		return err
	}
	if len(r.Description) > 200 {
		return ErrDescriptionTooLong
	}
	if err := r.Amount.Validate(); err != nil {
		return err
	}
	if err := r.Type.Validate(); err != nil {
		return err
	}
	if err := r.PaymentMethod.Validate(); err != nil {
		return err
	}
	if r.Installments < MinInstallments || r.Installments > MaxInstallments {
		return ErrInvalidInstallments
	}
	return r.Necessity.Validate()
}
