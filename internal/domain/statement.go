package domain

import "time"

// Statement aggregates an account's transactions over a date range
// together with the balances bracketing the range.
type Statement struct {
	AccountNumber  string        `json:"accountNumber"`
	UserID         int64         `json:"userId"`
	FromDate       *time.Time    `json:"fromDate,omitempty"`
	ToDate         *time.Time    `json:"toDate,omitempty"`
	OpeningBalance string        `json:"openingBalance"`
	ClosingBalance string        `json:"closingBalance"`
	Transactions   []Transaction `json:"transactions"`
	GeneratedAt    time.Time     `json:"generatedAt"`
}
