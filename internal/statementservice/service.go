// Package statementservice manages business logic layer of account statements.
package statementservice

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/clearledger/bank-office/internal/accountdelivery"
	"github.com/clearledger/bank-office/internal/domain"
	"github.com/clearledger/bank-office/pkg/errorspkg"
)

// Repo provides data access layer interface needed by statement service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package statementservice
type Repo interface {
	ListRangeForAccount(ctx context.Context, accountNumber string, fromDate, toDate *time.Time) ([]domain.Transaction, error)
	SumBefore(ctx context.Context, accountNumber string, before *time.Time) (string, error)
}

// Service facilitates statement service layer logic.
type Service struct {
	repo           Repo
	accountService accountdelivery.Service
}

// New returns statement service struct to build account statements.
func New(sr Repo, as accountdelivery.Service) *Service {
	return &Service{
		repo:           sr,
		accountService: as,
	}
}

// Generate builds the statement summary for the account over the
// inclusive date range: opening balance right before the range,
// closing balance after the last transaction in it, and the ordered
// transaction list in between. Rendering is left to the caller.
func (s *Service) Generate(ctx context.Context, accountNumber string, fromDate, toDate *time.Time) (domain.Statement, error) {
	l := zerolog.Ctx(ctx)

	if fromDate != nil && toDate != nil && fromDate.After(*toDate) {
		return domain.Statement{}, domain.ErrInvalidDateRange
	}

	account, err := s.accountService.Get(ctx, accountNumber)
	if err != nil {
		return domain.Statement{}, err
	}

	opening, err := s.repo.SumBefore(ctx, accountNumber, fromDate)
	if err != nil {
		return domain.Statement{}, err
	}

	openingDecimal, err := decimal.NewFromString(opening)
	if err != nil {
		l.Error().Err(err).Send()
		return domain.Statement{}, errorspkg.ErrInternal
	}

	transactions, err := s.repo.ListRangeForAccount(ctx, accountNumber, fromDate, toDate)
	if err != nil {
		return domain.Statement{}, err
	}

	closingDecimal := openingDecimal

	for _, tx := range transactions {
		amount, err := decimal.NewFromString(tx.Amount)
		if err != nil {
			l.Error().Err(err).Send()
			return domain.Statement{}, errorspkg.ErrInternal
		}

		closingDecimal = closingDecimal.Add(amount)
	}

	return domain.Statement{
		AccountNumber:  account.AccountNumber,
		UserID:         account.UserID,
		FromDate:       fromDate,
		ToDate:         toDate,
		OpeningBalance: openingDecimal.String(),
		ClosingBalance: closingDecimal.String(),
		Transactions:   transactions,
		GeneratedAt:    time.Now(),
	}, nil
}
