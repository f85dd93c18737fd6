// Package accountrepo manages repository layer of accounts.
package accountrepo

import (
	"context"
	"database/sql"

	"github.com/lib/pq"
	"github.com/rs/zerolog"

	"github.com/clearledger/bank-office/internal/domain"
	"github.com/clearledger/bank-office/pkg/dbpkg"
	"github.com/clearledger/bank-office/pkg/errorspkg"
)

// RepoPGS facilitates account repository layer logic.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns account RepoPGS.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{
		db: db,
	}
}

const createQuery = `
INSERT INTO
    accounts (account_number, user_id, balance)
VALUES
    ($1, $2, $3)
RETURNING account_number, user_id, balance, created_at
`

// Create creates the account and then returns it.
func (r *RepoPGS) Create(ctx context.Context, accountNumber string, userID int64, balance string) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, createQuery, accountNumber, userID, balance)

	var a domain.Account

	err := row.Scan(
		&a.AccountNumber,
		&a.UserID,
		&a.Balance,
		&a.CreatedAt,
	)

	if err != nil {
		l.Error().Err(err).Send()

		if pqErr, ok := err.(*pq.Error); ok {
			switch pqErr.Constraint {
			case "accounts_pkey":
				return a, domain.ErrAccountAlreadyExists
			case "accounts_user_id_fkey":
				return a, domain.ErrUserNotFound
			}
		}

		if dbpkg.IsUnavailable(err) {
			return a, errorspkg.ErrUnavailable
		}

		return a, errorspkg.ErrInternal
	}

	return a, nil
}

const getQuery = `
SELECT
	account_number, user_id, balance, created_at
FROM accounts
WHERE account_number = $1
`

// Get returns the account with the given account number.
func (r *RepoPGS) Get(ctx context.Context, accountNumber string) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, getQuery, accountNumber)

	var a domain.Account

	err := row.Scan(
		&a.AccountNumber,
		&a.UserID,
		&a.Balance,
		&a.CreatedAt,
	)

	if err != nil {
		l.Error().Err(err).Send()

		if err == sql.ErrNoRows {
			return a, domain.ErrAccountNotFound
		}

		if dbpkg.IsUnavailable(err) {
			return a, errorspkg.ErrUnavailable
		}

		return a, errorspkg.ErrInternal
	}

	return a, nil
}

const addBalanceQuery = `
UPDATE accounts
SET balance = balance + $1
WHERE account_number = $2
RETURNING account_number, user_id, balance, created_at
`

// AddBalance changes the account's balance and returns the changed account.
//
// A negative amount that would take the balance below zero trips the
// accounts_balance_check constraint and maps to ErrInsufficientBalance.
func (r *RepoPGS) AddBalance(ctx context.Context, amount, accountNumber string) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, addBalanceQuery, amount, accountNumber)

	var a domain.Account

	err := row.Scan(
		&a.AccountNumber,
		&a.UserID,
		&a.Balance,
		&a.CreatedAt,
	)

	if err != nil {
		l.Error().Err(err).Send()

		if err == sql.ErrNoRows {
			return a, domain.ErrAccountNotFound
		}

		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Constraint == "accounts_balance_check" {
				return a, domain.ErrInsufficientBalance
			}
		}

		if dbpkg.IsUnavailable(err) {
			return a, errorspkg.ErrUnavailable
		}

		return a, errorspkg.ErrInternal
	}

	return a, nil
}
