package domain

import (
	"errors"
	"time"
)

var (
	// ErrAccountNotFound indicates that the account is not found.
	ErrAccountNotFound = errors.New("account not found")
	// ErrAccountAlreadyExists indicates that the account number is already taken.
	ErrAccountAlreadyExists = errors.New("account number already exists")
)

// Account holds balance data for a single account number.
//
// Balance is a fixed-point decimal carried as a string; it is never
// negative after a committed operation.
type Account struct {
	AccountNumber string    `json:"accountNumber"`
	UserID        int64     `json:"userId"`
	Balance       string    `json:"balance"`
	CreatedAt     time.Time `json:"createdAt"`
}
