// Package transactionrepo manages repository layer of ledger transactions.
package transactionrepo

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"
	"github.com/rs/zerolog"

	"github.com/clearledger/bank-office/internal/accountrepo"
	"github.com/clearledger/bank-office/internal/domain"
	"github.com/clearledger/bank-office/pkg/dbpkg"
	"github.com/clearledger/bank-office/pkg/errorspkg"
)

// RepoPGS facilitates transaction repository layer logic.
type RepoPGS struct {
	db   dbpkg.SQLInterface
	conn *sql.DB
}

// NewTxRepoPGS returns transaction RepoPGS bound to an open transaction.
func NewTxRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{
		db: db,
	}
}

// NewRepoPGS returns transaction RepoPGS with a connection to start transactions.
func NewRepoPGS(db *sql.DB) *RepoPGS {
	return &RepoPGS{
		db:   db,
		conn: db,
	}
}

const createQuery = `
INSERT INTO
    transactions (account_number, type, amount, counterparty)
VALUES
    ($1, $2, $3, $4)
RETURNING id, account_number, type, amount, counterparty, created_at
`

// Create appends the transaction record and then returns it.
func (r *RepoPGS) Create(ctx context.Context, arg domain.CreateTransactionParams) (domain.Transaction, error) {
	l := zerolog.Ctx(ctx)

	counterparty := sql.NullString{String: arg.Counterparty, Valid: arg.Counterparty != ""}

	row := r.db.QueryRowContext(ctx, createQuery, arg.AccountNumber, arg.Type, arg.Amount, counterparty)

	t, err := scanTransaction(row)
	if err != nil {
		l.Error().Err(err).Msgf("Create(ctx, %+v)", arg)

		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Constraint == "transactions_account_number_fkey" {
				return t, domain.ErrAccountNotFound
			}
		}

		if dbpkg.IsUnavailable(err) {
			return t, errorspkg.ErrUnavailable
		}

		return t, errorspkg.ErrInternal
	}

	return t, nil
}

const getQuery = `
SELECT
	id, account_number, type, amount, counterparty, created_at
FROM transactions
WHERE id = $1
`

// Get returns the transaction with the given id.
func (r *RepoPGS) Get(ctx context.Context, id int64) (domain.Transaction, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, getQuery, id)

	t, err := scanTransaction(row)
	if err != nil {
		l.Error().Err(err).Send()

		if err == sql.ErrNoRows {
			return t, domain.ErrTransactionNotFound
		}

		if dbpkg.IsUnavailable(err) {
			return t, errorspkg.ErrUnavailable
		}

		return t, errorspkg.ErrInternal
	}

	return t, nil
}

// ListForAccount returns one page of the account's transactions.
func (r *RepoPGS) ListForAccount(ctx context.Context, accountNumber string, arg domain.ListTransactionsParams) ([]domain.Transaction, error) {
	order, err := orderClause(arg.SortBy, arg.Direction, "")
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`
SELECT
	id, account_number, type, amount, counterparty, created_at
FROM transactions
WHERE
	account_number = $1
	AND ($2::date IS NULL OR created_at::date >= $2::date)
	AND ($3::date IS NULL OR created_at::date <= $3::date)
%s
LIMIT $4 OFFSET $5
`, order)

	return r.list(ctx, query,
		accountNumber,
		nullDate(arg.FromDate),
		nullDate(arg.ToDate),
		arg.Size,
		int64(arg.Page)*int64(arg.Size),
	)
}

// ListForUser returns one page of transactions across all the user's accounts.
func (r *RepoPGS) ListForUser(ctx context.Context, userID int64, arg domain.ListTransactionsParams) ([]domain.Transaction, error) {
	order, err := orderClause(arg.SortBy, arg.Direction, "t.")
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`
SELECT
	t.id, t.account_number, t.type, t.amount, t.counterparty, t.created_at
FROM transactions t
JOIN accounts a ON a.account_number = t.account_number
WHERE
	a.user_id = $1
	AND ($2::date IS NULL OR t.created_at::date >= $2::date)
	AND ($3::date IS NULL OR t.created_at::date <= $3::date)
%s
LIMIT $4 OFFSET $5
`, order)

	return r.list(ctx, query,
		userID,
		nullDate(arg.FromDate),
		nullDate(arg.ToDate),
		arg.Size,
		int64(arg.Page)*int64(arg.Size),
	)
}

const listRangeQuery = `
SELECT
	id, account_number, type, amount, counterparty, created_at
FROM transactions
WHERE
	account_number = $1
	AND ($2::date IS NULL OR created_at::date >= $2::date)
	AND ($3::date IS NULL OR created_at::date <= $3::date)
ORDER BY created_at ASC, id ASC
`

// ListRangeForAccount returns all the account's transactions within the
// inclusive date range, oldest first. It is used by statement generation.
func (r *RepoPGS) ListRangeForAccount(ctx context.Context, accountNumber string, fromDate, toDate *time.Time) ([]domain.Transaction, error) {
	return r.list(ctx, listRangeQuery, accountNumber, nullDate(fromDate), nullDate(toDate))
}

const sumBeforeQuery = `
SELECT COALESCE(SUM(amount), 0)::text
FROM transactions
WHERE
	account_number = $1
	AND ($2::date IS NULL OR created_at::date < $2::date)
`

// SumBefore returns the sum of the account's transaction amounts dated
// strictly before the given calendar date. With a nil date it returns "0":
// every account opens with a zero balance, so there is nothing to sum.
func (r *RepoPGS) SumBefore(ctx context.Context, accountNumber string, before *time.Time) (string, error) {
	l := zerolog.Ctx(ctx)

	if before == nil {
		return "0", nil
	}

	var sum string

	row := r.db.QueryRowContext(ctx, sumBeforeQuery, accountNumber, nullDate(before))
	if err := row.Scan(&sum); err != nil {
		l.Error().Err(err).Send()

		if dbpkg.IsUnavailable(err) {
			return "", errorspkg.ErrUnavailable
		}

		return "", errorspkg.ErrInternal
	}

	return sum, nil
}

// DepositTx credits the account and appends the DEPOSIT record within a
// single database transaction.
func (r *RepoPGS) DepositTx(ctx context.Context, accountNumber, amount string) (domain.TransactionResult, error) {
	var result domain.TransactionResult

	err := r.execTx(ctx, func(accounts *accountrepo.RepoPGS, transactions *RepoPGS) error {
		var err error

		result.Account, err = accounts.AddBalance(ctx, amount, accountNumber)
		if err != nil {
			return err
		}

		result.Transaction, err = transactions.Create(ctx, domain.CreateTransactionParams{
			AccountNumber: accountNumber,
			Type:          domain.TransactionDeposit,
			Amount:        amount,
		})

		return err
	})

	if err != nil {
		return domain.TransactionResult{}, err
	}

	return result, nil
}

// WithdrawTx debits the account and appends the WITHDRAWAL record within
// a single database transaction. The record carries a negative amount.
func (r *RepoPGS) WithdrawTx(ctx context.Context, accountNumber, amount string) (domain.TransactionResult, error) {
	var result domain.TransactionResult

	err := r.execTx(ctx, func(accounts *accountrepo.RepoPGS, transactions *RepoPGS) error {
		var err error

		result.Account, err = accounts.AddBalance(ctx, "-"+amount, accountNumber)
		if err != nil {
			return err
		}

		result.Transaction, err = transactions.Create(ctx, domain.CreateTransactionParams{
			AccountNumber: accountNumber,
			Type:          domain.TransactionWithdrawal,
			Amount:        "-" + amount,
		})

		return err
	})

	if err != nil {
		return domain.TransactionResult{}, err
	}

	return result, nil
}

// TransferTx moves money between two accounts.
//
// It updates both balances and appends the paired TRANSFER records
// within a single database transaction, so no intermediate state is
// ever visible. Balance updates run in lexical account number order to
// avoid deadlocks between opposing transfers.
func (r *RepoPGS) TransferTx(ctx context.Context, arg domain.CreateTransferParams) (domain.TransferTxResult, error) {
	var result domain.TransferTxResult

	err := r.execTx(ctx, func(accounts *accountrepo.RepoPGS, transactions *RepoPGS) error {
		var err error

		if arg.FromAccount < arg.ToAccount {
			result.FromAccount, err = accounts.AddBalance(ctx, "-"+arg.Amount, arg.FromAccount)
			if err != nil {
				return err
			}

			result.ToAccount, err = accounts.AddBalance(ctx, arg.Amount, arg.ToAccount)
		} else {
			result.ToAccount, err = accounts.AddBalance(ctx, arg.Amount, arg.ToAccount)
			if err != nil {
				return err
			}

			result.FromAccount, err = accounts.AddBalance(ctx, "-"+arg.Amount, arg.FromAccount)
		}

		if err != nil {
			return err
		}

		result.FromTransaction, err = transactions.Create(ctx, domain.CreateTransactionParams{
			AccountNumber: arg.FromAccount,
			Type:          domain.TransactionTransfer,
			Amount:        "-" + arg.Amount,
			Counterparty:  arg.ToAccount,
		})
		if err != nil {
			return err
		}

		result.ToTransaction, err = transactions.Create(ctx, domain.CreateTransactionParams{
			AccountNumber: arg.ToAccount,
			Type:          domain.TransactionTransfer,
			Amount:        arg.Amount,
			Counterparty:  arg.FromAccount,
		})

		return err
	})

	if err != nil {
		return domain.TransferTxResult{}, err
	}

	return result, nil
}

// execTx runs fn with account and transaction repos bound to one
// database transaction, committing only if fn succeeds.
func (r *RepoPGS) execTx(ctx context.Context, fn func(*accountrepo.RepoPGS, *RepoPGS) error) error {
	l := zerolog.Ctx(ctx)

	tx, err := r.conn.BeginTx(ctx, nil)
	if err != nil {
		l.Error().Err(err).Send()

		if dbpkg.IsUnavailable(err) {
			return errorspkg.ErrUnavailable
		}

		return errorspkg.ErrInternal
	}

	defer func() {
		if err := tx.Rollback(); err != nil && err != sql.ErrTxDone {
			l.Error().Err(err).Send()
		}
	}()

	if err := fn(accountrepo.NewRepoPGS(tx), NewTxRepoPGS(tx)); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		l.Error().Err(err).Send()

		if dbpkg.IsUnavailable(err) {
			return errorspkg.ErrUnavailable
		}

		return errorspkg.ErrInternal
	}

	return nil
}

func (r *RepoPGS) list(ctx context.Context, query string, args ...interface{}) ([]domain.Transaction, error) {
	l := zerolog.Ctx(ctx)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		l.Error().Err(err).Send()

		if dbpkg.IsUnavailable(err) {
			return nil, errorspkg.ErrUnavailable
		}

		return nil, errorspkg.ErrInternal
	}
	defer rows.Close()

	items := []domain.Transaction{}

	for rows.Next() {
		var (
			t            domain.Transaction
			counterparty sql.NullString
		)

		if err := rows.Scan(&t.ID, &t.AccountNumber, &t.Type, &t.Amount, &counterparty, &t.CreatedAt); err != nil {
			l.Error().Err(err).Send()
			return nil, errorspkg.ErrInternal
		}

		t.Counterparty = counterparty.String

		items = append(items, t)
	}

	if err := rows.Err(); err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	return items, nil
}

type row interface {
	Scan(dest ...interface{}) error
}

func scanTransaction(r row) (domain.Transaction, error) {
	var (
		t            domain.Transaction
		counterparty sql.NullString
	)

	err := r.Scan(
		&t.ID,
		&t.AccountNumber,
		&t.Type,
		&t.Amount,
		&counterparty,
		&t.CreatedAt,
	)

	t.Counterparty = counterparty.String

	return t, err
}

// orderClause maps the exposed sort parameters onto SQL. Values are
// whitelisted, never interpolated from raw input.
func orderClause(sortBy, direction, prefix string) (string, error) {
	var column string

	switch sortBy {
	case "", domain.SortByCreatedAt:
		column = "created_at"
	case domain.SortByAmount:
		column = "amount"
	case domain.SortByID:
		column = "id"
	default:
		return "", domain.ErrInvalidSortField
	}

	dir := "DESC"
	if direction == domain.SortAsc {
		dir = "ASC"
	}

	// Secondary id ordering keeps listings stable when timestamps collide.
	return fmt.Sprintf("ORDER BY %s%s %s, %sid %s", prefix, column, dir, prefix, dir), nil
}

func nullDate(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}

	return sql.NullTime{Time: *t, Valid: true}
}
