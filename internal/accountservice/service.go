// Package accountservice manages business logic layer of accounts.
package accountservice

import (
	"context"

	"github.com/clearledger/bank-office/internal/domain"
)

// Repo provides data access layer interface needed by account service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package accountservice
type Repo interface {
	Create(ctx context.Context, accountNumber string, userID int64, balance string) (domain.Account, error)
	Get(ctx context.Context, accountNumber string) (domain.Account, error)
}

// TransactionRepo provides the transaction listing interface needed by
// the account service layer.
type TransactionRepo interface {
	ListForAccount(ctx context.Context, accountNumber string, arg domain.ListTransactionsParams) ([]domain.Transaction, error)
}

// Service facilitates account service layer logic.
type Service struct {
	repo   Repo
	txRepo TransactionRepo
}

// New returns account service struct to manage account business logic.
func New(ar Repo, tr TransactionRepo) *Service {
	return &Service{
		repo:   ar,
		txRepo: tr,
	}
}

// Create creates an account with a zero balance for the given user.
func (s *Service) Create(ctx context.Context, userID int64, accountNumber string) (domain.Account, error) {
	account, err := s.repo.Create(ctx, accountNumber, userID, "0")
	if err != nil {
		return account, err
	}

	return account, nil
}

// Get returns the account with the given account number.
func (s *Service) Get(ctx context.Context, accountNumber string) (domain.Account, error) {
	return s.repo.Get(ctx, accountNumber)
}

// GetBalance returns the account's current balance.
func (s *Service) GetBalance(ctx context.Context, accountNumber string) (string, error) {
	account, err := s.repo.Get(ctx, accountNumber)
	if err != nil {
		return "", err
	}

	return account.Balance, nil
}

// ListTransactions returns one page of the account's transactions.
func (s *Service) ListTransactions(ctx context.Context, accountNumber string, arg domain.ListTransactionsParams) ([]domain.Transaction, error) {
	if err := arg.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.repo.Get(ctx, accountNumber); err != nil {
		return nil, err
	}

	return s.txRepo.ListForAccount(ctx, accountNumber, arg)
}
