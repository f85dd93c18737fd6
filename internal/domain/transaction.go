package domain

import (
	"errors"
	"time"
)

var (
	// ErrTransactionNotFound indicates that the transaction is not found.
	ErrTransactionNotFound = errors.New("transaction not found")
	// ErrInvalidAmount indicates that the amount is not a valid decimal number.
	ErrInvalidAmount = errors.New("invalid amount")
	// ErrNonPositiveAmount indicates a zero or negative amount input.
	ErrNonPositiveAmount = errors.New("amount must be positive")
	// ErrInsufficientBalance indicates that the account does not have sufficient balance.
	ErrInsufficientBalance = errors.New("insufficient balance")
	// ErrSameAccountTransfer indicates a transfer where source and destination match.
	ErrSameAccountTransfer = errors.New("cannot transfer to the same account")
	// ErrInvalidDate indicates a date filter that is not a calendar date.
	ErrInvalidDate = errors.New("invalid date, expected YYYY-MM-DD")
	// ErrInvalidDateRange indicates that fromDate is after toDate.
	ErrInvalidDateRange = errors.New("fromDate is after toDate")
	// ErrInvalidPagination indicates negative page or size input.
	ErrInvalidPagination = errors.New("page and size must be non-negative")
	// ErrInvalidSortField indicates an unsupported sortBy value.
	ErrInvalidSortField = errors.New("unsupported sort field")
	// ErrInvalidDirection indicates an unsupported direction value.
	ErrInvalidDirection = errors.New("unsupported sort direction")
)

// TransactionType enumerates the kinds of ledger transactions.
type TransactionType string

// Supported transaction types.
const (
	TransactionDeposit    TransactionType = "DEPOSIT"
	TransactionWithdrawal TransactionType = "WITHDRAWAL"
	TransactionTransfer   TransactionType = "TRANSFER"
)

// Transaction is an immutable ledger record.
//
// Amount is signed relative to the account the record belongs to:
// positive for credits, negative for debits. Counterparty is set only
// for TRANSFER records and names the other account.
type Transaction struct {
	ID            int64           `json:"id"`
	AccountNumber string          `json:"accountNumber"`
	Type          TransactionType `json:"type"`
	Amount        string          `json:"amount"`
	Counterparty  string          `json:"counterparty,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// CreateTransactionParams is the input data to append a ledger record.
type CreateTransactionParams struct {
	AccountNumber string
	Type          TransactionType
	Amount        string
	Counterparty  string
}

// CreateTransferParams is the input data for the transfer transaction.
type CreateTransferParams struct {
	FromAccount string `json:"fromAccount"`
	ToAccount   string `json:"toAccount"`
	Amount      string `json:"amount"`
}

// TransactionResult is the outcome of a single-account mutation.
type TransactionResult struct {
	Account     Account     `json:"account"`
	Transaction Transaction `json:"transaction"`
}

// TransferTxResult is the outcome of the transfer transaction.
type TransferTxResult struct {
	FromAccount     Account     `json:"fromAccount"`
	ToAccount       Account     `json:"toAccount"`
	FromTransaction Transaction `json:"fromTransaction"`
	ToTransaction   Transaction `json:"toTransaction"`
}

// Sort fields accepted by transaction listings.
const (
	SortByCreatedAt = "createdAt"
	SortByAmount    = "amount"
	SortByID        = "id"
)

// Sort directions accepted by transaction listings.
const (
	SortAsc  = "asc"
	SortDesc = "desc"
)

// ListTransactionsParams holds pagination, ordering and date filters
// for transaction listings. Page is zero-based. FromDate and ToDate
// are inclusive calendar dates.
type ListTransactionsParams struct {
	Page      int32
	Size      int32
	SortBy    string
	Direction string
	FromDate  *time.Time
	ToDate    *time.Time
}

// Validate checks pagination, ordering and date-range inputs.
func (p ListTransactionsParams) Validate() error {
	if p.Page < 0 || p.Size < 0 {
		return ErrInvalidPagination
	}

	switch p.SortBy {
	case "", SortByCreatedAt, SortByAmount, SortByID:
	default:
		return ErrInvalidSortField
	}

	switch p.Direction {
	case "", SortAsc, SortDesc:
	default:
		return ErrInvalidDirection
	}

	if p.FromDate != nil && p.ToDate != nil && p.FromDate.After(*p.ToDate) {
		return ErrInvalidDateRange
	}

	return nil
}
