// Package test provides shared test helpers.
package test

import (
	"context"
	"testing"

	"github.com/clearledger/bank-office/internal/accountrepo"
	"github.com/clearledger/bank-office/internal/domain"
	"github.com/clearledger/bank-office/internal/kycrepo"
	"github.com/clearledger/bank-office/internal/transactionrepo"
	"github.com/clearledger/bank-office/internal/userrepo"
	"github.com/clearledger/bank-office/pkg/dbpkg"
	"github.com/clearledger/bank-office/pkg/passpkg"
	"github.com/clearledger/bank-office/pkg/randompkg"
)

// SeedUser creates a random User.
func SeedUser(t *testing.T, db dbpkg.SQLInterface) domain.User {
	t.Helper()

	hashedPassword, err := passpkg.Hash(randompkg.String(32))
	if err != nil {
		t.Fatalf("passpkg.Hash(randompkg.String(32)) returned error: %v", err)
	}

	arg := domain.CreateUserParams{
		Username:       randompkg.Username(),
		HashedPassword: hashedPassword,
		Email:          randompkg.Email(),
	}

	userRepo := userrepo.NewRepoPGS(db)

	user, err := userRepo.Create(context.Background(), arg)
	if err != nil {
		t.Fatalf("userRepo.Create(context.Background(), %+v) returned error: %v", arg, err)
	}

	return user
}

// SeedAccountWith1000Balance creates an Account with 1000 on balance.
func SeedAccountWith1000Balance(t *testing.T, db dbpkg.SQLInterface, userID int64) domain.Account {
	t.Helper()

	accountRepo := accountrepo.NewRepoPGS(db)

	accountNumber := randompkg.AccountNumber()

	const balance = "1000"

	account, err := accountRepo.Create(context.Background(), accountNumber, userID, balance)
	if err != nil {
		stmt := `accountRepo.Create(context.Background(), %v, %v, %v) returned error: %v`
		t.Fatalf(stmt, accountNumber, userID, balance, err)
	}

	return account
}

// SeedDeposit credits an account through the deposit transaction.
func SeedDeposit(t *testing.T, db *transactionrepo.RepoPGS, accountNumber, amount string) domain.TransactionResult {
	t.Helper()

	result, err := db.DepositTx(context.Background(), accountNumber, amount)
	if err != nil {
		t.Fatalf("DepositTx(context.Background(), %v, %v) returned error: %v", accountNumber, amount, err)
	}

	return result
}

// SeedKYCRecord creates a pending KYC record for the given user.
func SeedKYCRecord(t *testing.T, db dbpkg.SQLInterface, userID int64) domain.KYCRecord {
	t.Helper()

	arg := domain.CreateKYCParams{
		UserID:         userID,
		DocumentType:   domain.DocumentPassport,
		DocumentNumber: randompkg.DocumentNumber(),
		Address:        randompkg.Address(),
	}

	kycRepo := kycrepo.NewRepoPGS(db)

	record, err := kycRepo.Create(context.Background(), arg)
	if err != nil {
		t.Fatalf("kycRepo.Create(context.Background(), %+v) returned error: %v", arg, err)
	}

	return record
}
