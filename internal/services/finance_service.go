// Package services orchestrates credential handling, the record store and
// the aggregation functions behind the page handlers.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"finfusion/internal/auth"
	"finfusion/internal/core"
	"finfusion/internal/storage"
)

// MinPasswordLen is the registration password policy.
const MinPasswordLen = 6

var (
	ErrEmptyUsername    = errors.New("username required")
	ErrPasswordTooShort = fmt.Errorf("password too short (min %d)", MinPasswordLen)

	// ErrUsernameTaken re-exports the storage sentinel so handlers only
	// need this package for registration failures.
	ErrUsernameTaken = storage.ErrUsernameTaken
)

// Analysis is everything the analysis page renders in one call.
type Analysis struct {
	Balance      core.Money
	Expenses     []core.Record // all expenses, largest first
	NonEssential []core.Record // non-essential subset, original order
	Alerts       []core.Alert
}

// FinanceService wraps the SQLite store with validation, password hashing
// and the aggregate views.
type FinanceService struct {
	store *storage.SQLiteRepository
}

func NewFinanceService(store *storage.SQLiteRepository) *FinanceService {
	return &FinanceService{store: store}
}

// Register creates a new user with a salted password hash. Duplicate
// usernames surface as ErrUsernameTaken.
func (s *FinanceService) Register(ctx context.Context, username, password string) error {
	username = strings.TrimSpace(username)
	if username == "" {
		return ErrEmptyUsername
	}
	if len(password) < MinPasswordLen {
		return ErrPasswordTooShort
	}

	authHash, err := auth.HashPassword(password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	if err := s.store.CreateUser(ctx, username, authHash); err != nil {
		return err
	}

	slog.InfoContext(ctx, "User registered", "username", username)
	return nil
}

// Authenticate reports whether the credentials match a stored user. An
// unknown username is a plain false, not an error; only storage failures
// are returned.
func (s *FinanceService) Authenticate(ctx context.Context, username, password string) (bool, error) {
	authHash, err := s.store.GetUserAuthHash(ctx, strings.TrimSpace(username))
	if errors.Is(err, storage.ErrUserNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("authenticate: %w", err)
	}
	return auth.VerifyPassword(authHash, password), nil
}

// AddRecord validates and persists one record, returning its assigned id.
func (s *FinanceService) AddRecord(ctx context.Context, rec core.Record) (int64, error) {
	if err := rec.Validate(); err != nil {
		return 0, err
	}
	id, err := s.store.InsertRecord(ctx, rec)
	if err != nil {
		return 0, fmt.Errorf("add record: %w", err)
	}
	return id, nil
}

// Records returns the user's records in storage order.
func (s *FinanceService) Records(ctx context.Context, username string) ([]core.Record, error) {
	records, err := s.store.ListRecords(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	return records, nil
}

// DeleteRecords batch-deletes by id. An empty set is a no-op.
func (s *FinanceService) DeleteRecords(ctx context.Context, ids []int64) error {
	if err := s.store.DeleteRecords(ctx, ids); err != nil {
		return fmt.Errorf("delete records: %w", err)
	}
	return nil
}

// Balance computes the user's net balance.
func (s *FinanceService) Balance(ctx context.Context, username string) (core.Money, error) {
	records, err := s.store.ListRecords(ctx, username)
	if err != nil {
		return core.Money{}, fmt.Errorf("balance: %w", err)
	}
	return core.TotalBalance(records), nil
}

// Analyze computes the expense ranking and the alert set in one pass over
// the user's records.
func (s *FinanceService) Analyze(ctx context.Context, username string) (Analysis, error) {
	records, err := s.store.ListRecords(ctx, username)
	if err != nil {
		return Analysis{}, fmt.Errorf("analyze: %w", err)
	}

	expenses, nonEssential := core.MajorExpenses(records)
	return Analysis{
		Balance:      core.TotalBalance(records),
		Expenses:     expenses,
		NonEssential: nonEssential,
		Alerts:       core.EvaluateAlerts(records),
	}, nil
}

// Ping reports store reachability for the readiness probe.
func (s *FinanceService) Ping(ctx context.Context) error {
	return s.store.Ping(ctx)
}
