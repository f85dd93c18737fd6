// Package transactionservice manages business logic layer of the
// deposit, withdraw and transfer operations.
package transactionservice

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/clearledger/bank-office/internal/accountdelivery"
	"github.com/clearledger/bank-office/internal/domain"
)

// Repo provides data access layer interface needed by transaction service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package transactionservice
type Repo interface {
	DepositTx(ctx context.Context, accountNumber, amount string) (domain.TransactionResult, error)
	WithdrawTx(ctx context.Context, accountNumber, amount string) (domain.TransactionResult, error)
	TransferTx(ctx context.Context, arg domain.CreateTransferParams) (domain.TransferTxResult, error)
}

// Service facilitates transaction service layer logic.
type Service struct {
	repo           Repo
	accountService accountdelivery.Service
}

// New returns transaction service struct to manage the mutation operations.
func New(tr Repo, as accountdelivery.Service) *Service {
	return &Service{
		repo:           tr,
		accountService: as,
	}
}

// Deposit credits the account and appends the DEPOSIT record.
func (s *Service) Deposit(ctx context.Context, accountNumber, amount string) (domain.TransactionResult, error) {
	amountDecimal, err := validAmount(ctx, amount)
	if err != nil {
		return domain.TransactionResult{}, err
	}

	if _, err := s.accountService.Get(ctx, accountNumber); err != nil {
		return domain.TransactionResult{}, err
	}

	return s.repo.DepositTx(ctx, accountNumber, amountDecimal.String())
}

// Withdraw debits the account and appends the WITHDRAWAL record.
func (s *Service) Withdraw(ctx context.Context, accountNumber, amount string) (domain.TransactionResult, error) {
	amountDecimal, err := validAmount(ctx, amount)
	if err != nil {
		return domain.TransactionResult{}, err
	}

	account, err := s.accountService.Get(ctx, accountNumber)
	if err != nil {
		return domain.TransactionResult{}, err
	}

	if err := checkBalance(ctx, account, amountDecimal); err != nil {
		return domain.TransactionResult{}, err
	}

	return s.repo.WithdrawTx(ctx, accountNumber, amountDecimal.String())
}

// Transfer moves money between two accounts atomically.
func (s *Service) Transfer(ctx context.Context, arg domain.CreateTransferParams) (domain.TransferTxResult, error) {
	amountDecimal, err := validAmount(ctx, arg.Amount)
	if err != nil {
		return domain.TransferTxResult{}, err
	}

	if arg.FromAccount == arg.ToAccount {
		return domain.TransferTxResult{}, domain.ErrSameAccountTransfer
	}

	fromAccount, err := s.accountService.Get(ctx, arg.FromAccount)
	if err != nil {
		return domain.TransferTxResult{}, err
	}

	if _, err := s.accountService.Get(ctx, arg.ToAccount); err != nil {
		return domain.TransferTxResult{}, err
	}

	if err := checkBalance(ctx, fromAccount, amountDecimal); err != nil {
		return domain.TransferTxResult{}, err
	}

	arg.Amount = amountDecimal.String()

	return s.repo.TransferTx(ctx, arg)
}

// validAmount parses the caller-supplied amount and requires it to be
// strictly positive. The sign of persisted records is applied
// internally, never taken from input.
func validAmount(ctx context.Context, amount string) (decimal.Decimal, error) {
	l := zerolog.Ctx(ctx)

	amountDecimal, err := decimal.NewFromString(amount)
	if err != nil {
		l.Info().Err(err).Send()
		return decimal.Decimal{}, domain.ErrInvalidAmount
	}

	if amountDecimal.LessThanOrEqual(decimal.Zero) {
		return decimal.Decimal{}, domain.ErrNonPositiveAmount
	}

	return amountDecimal, nil
}

// checkBalance fails early on insufficient funds. The balance check
// constraint in the store backs this up against concurrent mutation.
func checkBalance(ctx context.Context, account domain.Account, amount decimal.Decimal) error {
	l := zerolog.Ctx(ctx)

	balance, err := decimal.NewFromString(account.Balance)
	if err != nil {
		l.Error().Err(err).Send()
		return err
	}

	if balance.LessThan(amount) {
		return domain.ErrInsufficientBalance
	}

	return nil
}
